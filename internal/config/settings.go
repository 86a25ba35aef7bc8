package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/appraise/internal/api"
	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/tui/themes"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. APPRAISE_API_URL.
const EnvPrefix = "APPRAISE"

// Configuration keys.
const (
	KeyAPIURL     = "api.url"
	KeyAPITimeout = "api.timeout"
	KeyTheme      = "ui.theme"
	KeyLogLevel   = "logging.level"
	KeyLogFormat  = "logging.format"
	KeyLogFile    = "logging.file"
)

// Settings is the resolved application configuration.
type Settings struct {
	APIURL     string
	Theme      string
	LogLevel   string
	LogFormat  string
	LogFile    string
	APITimeout time.Duration
}

// SetDefaults registers default values and environment lookup on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIURL, api.DefaultBaseURL)
	v.SetDefault(KeyAPITimeout, api.DefaultTimeout)
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, DefaultLogFile())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads and validates settings from v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		APIURL:     strings.TrimSpace(v.GetString(KeyAPIURL)),
		APITimeout: v.GetDuration(KeyAPITimeout),
		Theme:      v.GetString(KeyTheme),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFormat:  v.GetString(KeyLogFormat),
		LogFile:    ExpandPath(v.GetString(KeyLogFile)),
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks that every setting is usable.
func (s Settings) Validate() error {
	if s.APIURL == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyAPIURL)
	}
	u, err := url.Parse(s.APIURL)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyAPIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute http(s) URL, got %q", common.ErrInvalidConfig, KeyAPIURL, s.APIURL)
	}

	if s.APITimeout <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %s", common.ErrInvalidConfig, KeyAPITimeout, s.APITimeout)
	}

	if !themes.Valid(s.Theme) {
		return fmt.Errorf("%w: unknown theme %q (available: %s)", common.ErrInvalidConfig, s.Theme, strings.Join(themes.Names, ", "))
	}

	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		return err
	}

	switch s.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, s.LogFormat)
	}

	return nil
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		path = ExpandPath(path)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}
