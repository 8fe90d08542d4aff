// Package config handles the XDG configuration directory, file paths, and
// the config.yaml settings file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "devbase"

	// ConfigFile is the settings filename.
	ConfigFile = "config.yaml"

	// TokenFile is the stored access token filename.
	TokenFile = "token"

	// UserFile is the cached user profile filename.
	UserFile = "user.json"

	// ThemeFile is the stored theme preference filename.
	ThemeFile = "theme"

	// PrefsFile is the local notification preferences filename.
	PrefsFile = "prefs.json"
)

// DefaultBaseURL is used when neither config.yaml nor the environment sets
// a base URL.
const DefaultBaseURL = "http://localhost:4000"

// EnvBaseURL overrides the configured API base URL when set.
const EnvBaseURL = "DEVBASE_API_BASE_URL"

// Config holds configuration paths and settings. BaseURL and Debug are read
// once at startup and immutable afterwards.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// BaseURL is the API base URL.
	BaseURL string `yaml:"base_url"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-"`
}

// New creates a Config rooted at configDir, layering defaults, config.yaml
// (if present), and the environment. If configDir is empty, uses
// XDG_CONFIG_HOME/devbase or $HOME/.config/devbase.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{Dir: dir, BaseURL: DefaultBaseURL}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	if env := os.Getenv(EnvBaseURL); env != "" {
		cfg.BaseURL = env
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL: %q", c.BaseURL)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored access token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// UserPath returns the path to the cached user profile file.
func (c *Config) UserPath() string {
	return filepath.Join(c.Dir, UserFile)
}

// ThemePath returns the path to the stored theme preference file.
func (c *Config) ThemePath() string {
	return filepath.Join(c.Dir, ThemeFile)
}

// PrefsPath returns the path to the notification preferences file.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.Dir, PrefsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
