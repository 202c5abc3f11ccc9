// Package version checks the published releases for a newer build.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/yogaland/yogaland/constant"
	"github.com/yogaland/yogaland/filesystem"
	"github.com/yogaland/yogaland/util"
	"github.com/yogaland/yogaland/where"
)

// ReleasesURL answers with the latest release of the repository.
var ReleasesURL = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"

// CacheLifetime is how long a looked up version is trusted.
const CacheLifetime = 48 * time.Hour

var cacher *gache.Cache[string]

func cache() *gache.Cache[string] {
	if cacher == nil {
		cacher = gache.New[string](&gache.Options{
			Path:       filepath.Join(where.Cache(), "version.json"),
			Lifetime:   CacheLifetime,
			FileSystem: &filesystem.GacheFs{},
		})
	}
	return cacher
}

// Latest returns the newest released version without the leading "v".
func Latest(ctx context.Context) (string, error) {
	if cached, expired, err := cache().Get(); err == nil && !expired && cached != "" {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: unexpected status %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	version := strings.TrimPrefix(release.TagName, "v")
	if version == "" {
		return "", errors.New("releases: empty tag name")
	}

	_ = cache().Set(version)
	return version, nil
}
