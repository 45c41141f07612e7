package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cristianoliveira/folio/internal/colors"
	"github.com/cristianoliveira/folio/internal/config"
	"github.com/cristianoliveira/folio/internal/storage/sqlite"
)

// CacheFileName is the database file inside the state directory.
const CacheFileName = "cache.db"

// FileModeDir is the permission for the state directory.
const FileModeDir os.FileMode = 0o755

// CachePath returns the cache database path under stateDir.
func CachePath(stateDir string) string {
	return filepath.Join(stateDir, CacheFileName)
}

// NewFromConfig opens the cache described by the loaded configuration. A
// disabled cache, or one that cannot be opened, yields a NoopCache.
func NewFromConfig() Cache {
	config.EnsureLoaded()
	if !config.GetBool("cache_enabled", true) {
		colors.Debug("response cache disabled")
		return NoopCache{}
	}
	c, err := Open(config.Get("state_dir", ""))
	if err != nil {
		colors.Warning(fmt.Sprintf("response cache unavailable, continuing without it: %v", err))
		return NoopCache{}
	}
	return c
}

// Open opens the SQLite cache inside stateDir, creating the directory.
func Open(stateDir string) (*sqlite.Cache, error) {
	if stateDir == "" {
		return nil, fmt.Errorf("storage: state directory not configured")
	}
	if err := os.MkdirAll(stateDir, FileModeDir); err != nil {
		return nil, fmt.Errorf("storage: create state directory: %w", err)
	}
	return sqlite.Open(CachePath(stateDir))
}
