package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/studiowebux/catalog/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// DefaultAPIURL is where the products API is expected when nothing is configured
	DefaultAPIURL = "http://localhost:8080"
	// DefaultNotificationTimeout is how long a notification stays on screen
	DefaultNotificationTimeout = 3 * time.Second
)

var (
	// ConfigDir is the global configuration directory (~/.catalog)
	ConfigDir string

	// ConfigFile is the YAML settings file
	ConfigFile string

	// DatabasePath is the SQLite database file for the activity log
	DatabasePath string

	// LogFile receives the structured diagnostic log
	LogFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string
)

// Config holds all user settings
type Config struct {
	APIURL              string          `yaml:"api_url"`
	NotificationTimeout time.Duration   `yaml:"notification_timeout"`
	RequestTimeout      time.Duration   `yaml:"request_timeout"`
	LogLevel            string          `yaml:"log_level"`
	HistoryEnabled      *bool           `yaml:"history_enabled,omitempty"`
	TLS                 types.TLSConfig `yaml:"tls,omitempty"`
	Server              ServerConfig    `yaml:"server"`
}

// ServerConfig configures the bundled demo products server
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Initialize sets up the configuration directories
// It creates ~/.catalog/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".catalog"))
}

// InitializeAt sets all global paths relative to dir and creates it
func InitializeAt(dir string) error {
	ConfigDir = dir
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	DatabasePath = filepath.Join(ConfigDir, "catalog.db")
	LogFile = filepath.Join(ConfigDir, "catalog.log")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// Default returns the built-in settings
func Default() *Config {
	enabled := true
	return &Config{
		APIURL:              DefaultAPIURL,
		NotificationTimeout: DefaultNotificationTimeout,
		LogLevel:            "info",
		HistoryEnabled:      &enabled,
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
	}
}

// Load reads the settings file (if any) on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the settings as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	c.APIURL = getEnv("CATALOG_API_URL", c.APIURL)
	c.LogLevel = getEnv("CATALOG_LOG_LEVEL", c.LogLevel)
	c.NotificationTimeout = getEnvAsDuration("CATALOG_NOTIFY_TIMEOUT", c.NotificationTimeout)
	c.RequestTimeout = getEnvAsDuration("CATALOG_REQUEST_TIMEOUT", c.RequestTimeout)

	if value := os.Getenv("CATALOG_HISTORY"); value != "" {
		if enabled, err := strconv.ParseBool(value); err == nil {
			c.HistoryEnabled = &enabled
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("api_url must start with http:// or https://: %s", c.APIURL)
	}

	if c.NotificationTimeout <= 0 {
		return fmt.Errorf("notification_timeout must be positive")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout cannot be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	return nil
}

// IsHistoryEnabled reports whether API calls are recorded (default true)
func (c *Config) IsHistoryEnabled() bool {
	return c.HistoryEnabled == nil || *c.HistoryEnabled
}

// ServerAddr returns host:port for the demo server
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
