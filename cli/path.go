package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/fbxtree/pkg"
)

const (
	// baseConfig is the base name of the configuration files.
	baseConfig = "config"
	// baseCatalog is the file name of the default scene catalog.
	baseCatalog = "catalog.db"
)

// DefaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// dataPath is like [configPath] for the data directory.
func dataPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.DataDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories. The data
// directory is created on demand by the catalog.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
