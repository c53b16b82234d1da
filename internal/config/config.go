// Package config handles the configuration directory, the config file and the
// stored API token.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/oauth2"
)

const (
	// AppName is the application directory name.
	AppName = "taskpad"

	// ConfigFile is the optional YAML config filename.
	ConfigFile = "config.yaml"

	// TokenFile is the stored bearer token filename.
	TokenFile = "token.json"

	// EnvPrefix prefixes environment overrides (TASKPAD_BASE_URL, ...).
	EnvPrefix = "TASKPAD"

	// DefaultBaseURL is where the Task API is expected when nothing is configured.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"dir"`

	// BaseURL is the Task API root, without the /api/tasks suffix.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each HTTP request made by the backend.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TraceFile, when set, receives OpenTelemetry spans as JSON.
	TraceFile string `yaml:"trace_file,omitempty" mapstructure:"trace_file"`

	// MetricsAddr, when set, serves Prometheus metrics while the TUI runs.
	MetricsAddr string `yaml:"metrics_addr,omitempty" mapstructure:"metrics_addr"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"quiet"`

	// Location is used when rendering timestamps. Nil means time.Local.
	Location *time.Location `yaml:"-"`

	// Logger receives structured logs. Nil means discard.
	Logger *slog.Logger `yaml:"-"`
}

// New creates a Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskpad or $HOME/.config/taskpad.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:     dir,
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}, nil
}

// Load creates a Config and applies config.yaml from the config directory
// (if present) and TASKPAD_* environment variables, in that order.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("base_url", cfg.BaseURL)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("trace_file", "")
	v.SetDefault("metrics_addr", "")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(cfg.ConfigPath()); err == nil {
		v.SetConfigFile(cfg.ConfigPath())
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(v.GetString("base_url")), "/")
	cfg.Timeout = v.GetDuration("timeout")
	cfg.TraceFile = v.GetString("trace_file")
	cfg.MetricsAddr = v.GetString("metrics_addr")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that settings are usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must start with http:// or https://: %s", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
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

// ConfigPath returns the path to the YAML config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// LoadToken reads the stored token. Returns nil, nil when no token is stored.
func (c *Config) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.TokenPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TokenFile, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("invalid %s: empty access token", TokenFile)
	}
	return &token, nil
}

// SaveToken writes the token with mode 0600, creating the directory if needed.
func (c *Config) SaveToken(token *oauth2.Token) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.TokenPath(), data, 0600)
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// Log returns the configured logger, or a logger that discards everything.
func (c *Config) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// Loc returns the location used to render timestamps.
func (c *Config) Loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}
