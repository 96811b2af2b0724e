// Package xdg provides helpers to resolve XDG Base Directory paths for imply-druid-mcp.
// It implements the XDG Base Directory specification for determining appropriate
// locations for configuration files and state data on Unix-like systems.
//
// The package handles fallback to traditional locations when XDG environment
// variables are not set and ensures private permissions for the created directories.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "imply-druid-mcp"

// ConfigDir returns the XDG config directory for imply-druid-mcp.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/imply-druid-mcp when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for imply-druid-mcp.
// It falls back to ~/.local/state/imply-druid-mcp when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// ConfigFile returns the path of the YAML config file without creating it.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func ensure(envVar, homeRel string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
