// Package cache prunes stale files from the cache directory.
package cache

import (
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/yogaland/yogaland/filesystem"
	"github.com/yogaland/yogaland/log"
	"github.com/yogaland/yogaland/where"
)

// TTL is the age after which an untouched cache file is removed.
const TTL = 7 * 24 * time.Hour

// CollectGarbage prunes the cache directory in the background.
func CollectGarbage() {
	go func() {
		removed, err := Prune(where.Cache(), TTL, time.Now())
		if err != nil {
			log.Warnf("cache: %v", err)
			return
		}
		if removed > 0 {
			log.Infof("cache: removed %d stale files", removed)
		}
	}()
}

// Prune removes regular files under dir last modified more than ttl before now.
func Prune(dir string, ttl time.Duration, now time.Time) (removed int, err error) {
	fs := filesystem.API()

	err = afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if now.Sub(info.ModTime()) <= ttl {
			return nil
		}

		if err := fs.Remove(path); err != nil {
			log.Warnf("cache: remove %s: %v", path, err)
			return nil
		}

		removed++
		return nil
	})

	return removed, err
}
