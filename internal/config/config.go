// Package config loads and saves the client configuration. Values come
// from ~/.recipefinder/config.json and may be overridden by RECIPES_*
// environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultServerURL is the recipe API base URL used when none is configured
	DefaultServerURL = "http://localhost:8000/api/v1"

	// DefaultPageSize is the number of favorites fetched per page
	DefaultPageSize = 5

	// DefaultRequestTimeout bounds every API call
	DefaultRequestTimeout = 30 * time.Second

	// HomeEnv overrides the config directory
	HomeEnv = "RECIPES_HOME"

	configDirName  = ".recipefinder"
	configFileName = "config.json"
	logFileName    = "recipes.log"
)

// Config represents the application configuration
type Config struct {
	// API server URL
	ServerURL string `json:"server_url" mapstructure:"server_url"`

	// Favorites page size
	PageSize int `json:"page_size,omitempty" mapstructure:"page_size"`

	// Request timeout, as a Go duration string
	RequestTimeout string `json:"request_timeout,omitempty" mapstructure:"request_timeout"`

	// User information, populated after login
	Email string `json:"email,omitempty" mapstructure:"email"`

	// Logging
	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level"`
	LogFile  string `json:"log_file,omitempty" mapstructure:"log_file"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		ServerURL:      DefaultServerURL,
		PageSize:       DefaultPageSize,
		RequestTimeout: DefaultRequestTimeout.String(),
		LogLevel:       "info",
	}
}

// Timeout returns the parsed request timeout, falling back to the default
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return DefaultRequestTimeout
	}
	return d
}

// Load loads the configuration from the given file path. A missing file
// yields the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	return load(path, true)
}

// LoadFile loads only what the file at path holds, over the defaults.
// Use it to read-modify-write the file so that RECIPES_* overrides
// are not persisted.
func LoadFile(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, withEnv bool) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	if withEnv {
		v.SetEnvPrefix("RECIPES")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		v.AutomaticEnv()
	}

	def := Default()
	v.SetDefault("server_url", def.ServerURL)
	v.SetDefault("page_size", def.PageSize)
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("email", "")
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", "")

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}

	return &cfg, nil
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetGlobalConfigDir returns the directory holding config, token and log files
func GetGlobalConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return filepath.Join(homeDir, configDirName), nil
}

// GetGlobalConfigPath returns the path of the config file
func GetGlobalConfigPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DefaultLogPath returns the log file used when none is configured
func DefaultLogPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

// LoadGlobalConfig loads the config file from the global config directory
func LoadGlobalConfig() (*Config, error) {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// LoadGlobalConfigFile loads the global config file without environment
// overrides, for callers that save it back
func LoadGlobalConfigFile() (*Config, error) {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// SaveGlobalConfig writes cfg to the global config directory
func SaveGlobalConfig(cfg *Config) error {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return err
	}
	return cfg.Save(path)
}
