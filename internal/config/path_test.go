package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("APPRAISE_TEST_DIR", "/srv/appraise")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "home", path: "~", want: home},
		{name: "under home", path: "~/.config/appraise/config.yaml", want: filepath.Join(home, ".config/appraise/config.yaml")},
		{name: "env var", path: "$APPRAISE_TEST_DIR/app.log", want: "/srv/appraise/app.log"},
		{name: "plain", path: "/var/log/appraise.log", want: "/var/log/appraise.log"},
		{name: "tilde not leading", path: "logs/~/x", want: "logs/~/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}

func TestAppDirs(t *testing.T) {
	t.Run("xdg overrides", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		t.Setenv("XDG_STATE_HOME", "/xdg/state")

		assert.Equal(t, "/xdg/config/appraise", ConfigDir())
		assert.Equal(t, "/xdg/state/appraise", StateDir())
		assert.Equal(t, "/xdg/state/appraise/appraise.log", DefaultLogFile())
	})

	t.Run("home fallback", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("XDG_STATE_HOME", "")

		assert.Equal(t, filepath.Join(home, ".config", "appraise"), ConfigDir())
		assert.Equal(t, filepath.Join(home, ".local", "state", "appraise", "appraise.log"), DefaultLogFile())
	})
}
