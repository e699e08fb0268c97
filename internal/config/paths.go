package config

import (
	"os"
	"path/filepath"
)

// DefaultDir returns the directory vetline reads/writes its config and
// audit log from: $VETLINE_CONFIG_DIR if set, else $XDG_CONFIG_HOME/vetline,
// else $HOME/.config/vetline.
func DefaultDir() (string, error) {
	if dir := os.Getenv("VETLINE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vetline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vetline"), nil
}

// DefaultConfigPath returns the default config.yaml location.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultAuditDBPath returns the default audit log sqlite database path.
func DefaultAuditDBPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "audit.db"), nil
}

// EnsureDir creates dir (and parents) if it doesn't already exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
