// Package filex holds small filesystem helpers for the local data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) with owner-only permissions and returns
// its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// EnsureParentDir makes sure the directory that will contain file exists.
func EnsureParentDir(file string) error {
	_, err := EnsureDir(filepath.Dir(file))
	return err
}

// DefaultDataDir returns the per-user data directory for app, falling back to
// a dot-directory in the working directory when no config dir is available.
func DefaultDataDir(app string) string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "." + app
	}
	return filepath.Join(base, app)
}
