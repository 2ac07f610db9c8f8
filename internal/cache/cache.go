// Package cache prunes files ytune leaves behind: player sockets of sessions
// that are gone and cache entries nobody refreshed for a long time.
package cache

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/ytune-cli/ytune/filesystem"
	"github.com/ytune-cli/ytune/log"
	"github.com/ytune-cli/ytune/where"
)

const TTL = 7 * 24 * time.Hour

// alive reports whether something still listens on the socket at path.
// Another ytune may be running, so live sockets must survive.
var alive = func(path string) bool {
	conn, err := net.DialTimeout("unix", path, 200*time.Millisecond)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// CollectGarbage removes dead sockets from where.Temp() and files older
// than TTL from where.Cache().
func CollectGarbage() {
	removed := sweep(where.Temp(), func(path string, info os.FileInfo) bool {
		return strings.HasSuffix(path, ".sock") && !alive(path)
	})

	now := time.Now()
	removed += sweep(where.Cache(), func(_ string, info os.FileInfo) bool {
		return now.Sub(info.ModTime()) > TTL
	})

	if removed > 0 {
		log.Infof("removed %d stale files", removed)
	}
}

func sweep(dir string, stale func(path string, info os.FileInfo) bool) (removed int) {
	fs := filesystem.API()

	_ = afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if !stale(path, info) {
			return nil
		}

		if err := fs.Remove(path); err != nil {
			log.Warnf("remove %s: %s", filepath.Base(path), err)
			return nil
		}

		removed++
		return nil
	})

	return removed
}
