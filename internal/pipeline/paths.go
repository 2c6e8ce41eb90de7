package pipeline

import (
	"os"
	"path/filepath"
)

// CacheDir returns the XDG-compliant cache directory for revcalc.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "revcalc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "revcalc")
}

// DataPath returns the full path to the scenario database.
func DataPath() string {
	return filepath.Join(CacheDir(), "revcalc.db")
}
