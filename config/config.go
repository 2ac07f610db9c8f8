// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/constant"
	"github.com/ytune-cli/ytune/filesystem"
	"github.com/ytune-cli/ytune/key"
	"github.com/ytune-cli/ytune/where"
)

// EnvKeyReplacer normalizes configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// EnvAPIKeyAlias is accepted in addition to YTUNE_YOUTUBE_API_KEY.
const EnvAPIKeyAlias = "YOUTUBE_API_KEY"

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	// The first bound name wins, so the prefixed variable keeps precedence over the alias.
	apiKeyField := Default[key.YouTubeAPIKey]
	viper.MustBindEnv(key.YouTubeAPIKey, apiKeyField.Env(), EnvAPIKeyAlias)

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}
