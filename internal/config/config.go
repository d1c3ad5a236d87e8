package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ViewMode selects how the catalog is laid out
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds backend configuration
type ServerConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"` // Per-request deadline
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultView ViewMode `mapstructure:"default_view"`
	Locale      string   `mapstructure:"locale"` // BCP 47 tag used for sorting
}

// CacheConfig holds local cache configuration
type CacheConfig struct {
	Dir string `mapstructure:"dir"` // Empty disables persistence
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://127.0.0.1:5500",
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			DefaultView: ViewGrid,
			Locale:      "en",
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shelf", "shelf.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "shelf", "shelf.log")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "shelf")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "shelf", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "shelf", "cache")
	}
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configDir == "" {
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	} else {
		v.AddConfigPath(configDir)
	}

	// Environment variable overrides (SHELF_SERVER_URL, SHELF_LOGGING_LEVEL, ...)
	v.SetEnvPrefix("SHELF")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()

	// Defaults must be registered for AutomaticEnv to see nested keys
	def := DefaultConfig()
	v.SetDefault("server.url", def.Server.URL)
	v.SetDefault("server.timeout", def.Server.Timeout)
	v.SetDefault("ui.default_view", string(def.UI.DefaultView))
	v.SetDefault("ui.locale", def.UI.Locale)
	v.SetDefault("cache.dir", def.Cache.Dir)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)
	return v
}

// Load loads configuration from configDir (or the default locations when empty)
// and the environment
func Load(configDir string) (*Config, error) {
	v := newViper(configDir)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot run with
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return errors.New("server.url must be set")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	switch c.UI.DefaultView {
	case ViewGrid, ViewList:
	default:
		return fmt.Errorf("ui.default_view must be %q or %q, got %q", ViewGrid, ViewList, c.UI.DefaultView)
	}
	return nil
}

// Save writes the configuration to configDir/config.yaml
func Save(cfg *Config, configDir string) error {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.timeout", cfg.Server.Timeout.String())
	v.Set("ui.default_view", string(cfg.UI.DefaultView))
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configDir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ClearCache removes all cached data
func (c *Config) ClearCache() error {
	if c.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(c.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

var envReplacer = strings.NewReplacer(".", "_")
