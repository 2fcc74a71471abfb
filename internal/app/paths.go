package app

import (
	"os"
	"path/filepath"
)

// defaultAppDir returns the per-user application directory, ~/.gopoem.
// When the home directory cannot be resolved it falls back to a relative
// .gopoem so the tool keeps working in constrained environments.
func defaultAppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gopoem"
	}
	return filepath.Join(home, ".gopoem")
}

// DefaultCacheDir is the stock response cache location.
func DefaultCacheDir() string {
	return filepath.Join(defaultAppDir(), "cache")
}

// DefaultUsageFile is the stock usage store location.
func DefaultUsageFile() string {
	return filepath.Join(defaultAppDir(), "usage.json")
}

// DefaultConfigFile is the stock config file location; it need not exist.
func DefaultConfigFile() string {
	return filepath.Join(defaultAppDir(), "config.yaml")
}
