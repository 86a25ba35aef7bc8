// Package config loads appraise settings and resolves the paths they refer to.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "appraise"

// ExpandPath resolves a leading ~ to the home directory, then $VAR references.
// A ~ is left alone when the home directory is unknown.
func ExpandPath(path string) string {
	switch {
	case path == "~":
		path = homeOr(path)
	case strings.HasPrefix(path, "~/"):
		path = filepath.Join(homeOr("~"), path[2:])
	}
	return os.ExpandEnv(path)
}

func homeOr(fallback string) string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return fallback
}

// ConfigDir is searched for config.yaml: $XDG_CONFIG_HOME/appraise, else ~/.config/appraise.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", filepath.Join("~", ".config"))
}

// StateDir holds the UI log: $XDG_STATE_HOME/appraise, else ~/.local/state/appraise.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join("~", ".local", "state"))
}

// DefaultLogFile is where the interactive UI writes its log.
func DefaultLogFile() string {
	return filepath.Join(StateDir(), appName+".log")
}

func xdgDir(env, fallback string) string {
	base := os.Getenv(env)
	if base == "" {
		base = fallback
	}
	return filepath.Join(ExpandPath(base), appName)
}
