package tui

import (
	"time"

	"github.com/Veraticus/appraise/internal/api"
	"github.com/Veraticus/appraise/internal/tui/themes"
)

// DefaultErrorTimeout is how long an error banner stays on screen.
const DefaultErrorTimeout = 5 * time.Second

// Config holds TUI configuration.
type Config struct {
	Client       api.Client
	Theme        themes.Theme
	RecordDir    string
	Timeout      time.Duration
	ErrorTimeout time.Duration
	Width        int
	Height       int
	Record       bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Timeout:      api.DefaultTimeout,
		ErrorTimeout: DefaultErrorTimeout,
		Width:        80,
		Height:       24,
	}
}

// WithClient sets the prediction service client.
func WithClient(client api.Client) Option {
	return func(c *Config) {
		c.Client = client
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTimeout bounds each request issued by the UI.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithErrorTimeout sets how long error banners stay visible.
func WithErrorTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.ErrorTimeout = d
		}
	}
}

// WithRecording captures every frame to dir. An empty dir uses a fresh temp directory.
func WithRecording(dir string) Option {
	return func(c *Config) {
		c.Record = true
		c.RecordDir = dir
	}
}
