// Package storage persists perft counts and search results between runs.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName = "chessmask"
	envDB   = "CHESSMASK_DB"
)

// GetCacheDir returns the per-user cache directory for the application:
//   - macOS: ~/Library/Caches/chessmask/
//   - Linux: $XDG_CACHE_HOME/chessmask/ or ~/.cache/chessmask/
//   - Windows: %LocalAppData%/chessmask/
func GetCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache directory: %w", err)
	}
	return ensureDir(filepath.Join(base, appName))
}

// GetDatabaseDir returns the directory holding the BadgerDB files.
// CHESSMASK_DB overrides the platform default.
func GetDatabaseDir() (string, error) {
	if dir := os.Getenv(envDB); dir != "" {
		return ensureDir(dir)
	}

	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(cacheDir, "db"))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
