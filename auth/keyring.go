// Package auth stores the YouTube Data API key in the system keyring.
package auth

import (
	"errors"

	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/constant"
	"github.com/ytune-cli/ytune/key"
	"github.com/ytune-cli/ytune/log"
	"github.com/zalando/go-keyring"
)

const user = "youtube-api-key"

// SetAPIKey persists the key to the system keyring.
func SetAPIKey(apiKey string) error {
	return keyring.Set(constant.App, user, apiKey)
}

// GetAPIKey reads the key from the system keyring.
func GetAPIKey() (string, error) {
	return keyring.Get(constant.App, user)
}

// DeleteAPIKey removes the key from the system keyring.
// Deleting a key that was never stored is not an error.
func DeleteAPIKey() error {
	err := keyring.Delete(constant.App, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// Source names where the resolved key came from.
type Source string

const (
	SourceNone    Source = "none"
	SourceConfig  Source = "config"
	SourceKeyring Source = "keyring"
)

// APIKey resolves the key: environment and config file first (via viper), keyring last.
// An empty result means the key is not configured.
func APIKey() (string, Source) {
	if k := viper.GetString(key.YouTubeAPIKey); k != "" {
		return k, SourceConfig
	}

	k, err := GetAPIKey()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			log.Warnf("keyring: %s", err)
		}
		return "", SourceNone
	}

	return k, SourceKeyring
}
