package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/ytune-cli/ytune/filesystem"
	"github.com/ytune-cli/ytune/network"
	"github.com/ytune-cli/ytune/util"
	"github.com/ytune-cli/ytune/where"
)

// ReleasesURL is the endpoint describing the latest published release.
var ReleasesURL = "https://api.github.com/repos/ytune-cli/ytune/releases/latest"

var cacher = gache.New[string](&gache.Options{
	Path:       where.Version(),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest released version without the "v" prefix.
// Lookups are cached for two days to stay under the GitHub rate limit.
func Latest() (string, error) {
	cached, expired, err := cacher.Get()
	if err == nil && !expired && cached != "" {
		return cached, nil
	}

	resp, err := network.Client.Get(ReleasesURL)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup: unexpected status %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err = json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	_ = cacher.Set(latest)
	return latest, nil
}
