// Package config loads CCS configuration from .ccs/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete CCS configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	// Threshold is the minimum complexity a function must reach to be reported
	Threshold int `json:"threshold" mapstructure:"threshold"`

	// Ignore holds file path patterns excluded from directory runs.
	// Each pattern is a regular expression; a pattern that does not
	// compile degrades to a plain substring match.
	Ignore []string `json:"ignore" mapstructure:"ignore"`

	// Jobs is the number of files analyzed concurrently (0 = NumCPU)
	Jobs int `json:"jobs" mapstructure:"jobs"`

	Cache   CacheConfig   `json:"cache" mapstructure:"cache"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// CacheConfig contains result cache configuration
type CacheConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration.
// File, when set, mirrors log output to that path for 'ccs log'.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
	File   string `json:"file,omitempty" mapstructure:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		Threshold: 0,
		Ignore: []string{
			`(^|/)\.git/`,
			`(^|/)node_modules/`,
			`(^|/)build/`,
			`(^|/)vendor/`,
			`(^|/)__pycache__/`,
		},
		Jobs: 0,
		Cache: CacheConfig{
			Enabled: true,
			Path:    ".ccs/ccs.db",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.ccs/config.json.
// A missing config file yields the defaults, not an error.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("threshold", def.Threshold)
	v.SetDefault("ignore", def.Ignore)
	v.SetDefault("jobs", def.Jobs)
	v.SetDefault("cache.enabled", def.Cache.Enabled)
	v.SetDefault("cache.path", def.Cache.Path)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.file", def.Logging.File)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".ccs"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to <root>/.ccs/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".ccs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Threshold < 0 {
		return &ConfigError{Field: "threshold", Message: "must be non-negative"}
	}
	if c.Jobs < 0 {
		return &ConfigError{Field: "jobs", Message: "must be non-negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
