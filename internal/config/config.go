package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/taskpilot/internal/storage"
)

// Environment variables that override the config file
const (
	EnvDataDir    = "TASKPILOT_DATA_DIR"
	EnvLogLevel   = "TASKPILOT_LOG_LEVEL"
	EnvQuotaBytes = "TASKPILOT_QUOTA_BYTES"
	EnvSession    = "TASKPILOT_SESSION"
	EnvThemeFile  = "TASKPILOT_THEME_FILE"
)

// DefaultSignInDelay is how long the sign-in form shows its spinner
const DefaultSignInDelay = 2 * time.Second

// Config represents the application configuration
type Config struct {
	DataDir     string        `yaml:"data_dir"`
	LogLevel    string        `yaml:"log_level"`
	Session     string        `yaml:"session"`
	Storage     StorageConfig `yaml:"storage"`
	DefaultUser UserConfig    `yaml:"default_user"`
	Auth        AuthConfig    `yaml:"auth"`
	KeyMappings KeyMappings   `yaml:"key_mappings"`
	ColorScheme ColorScheme   `yaml:"theme"`
}

// StorageConfig bounds the storage areas
type StorageConfig struct {
	QuotaBytes int64 `yaml:"quota_bytes"`
}

// UserConfig is the identity shown before any profile override
type UserConfig struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Email  string `yaml:"email"`
	Avatar string `yaml:"avatar"`
}

// AuthConfig tunes the sign-in flow
type AuthConfig struct {
	SignInDelay time.Duration `yaml:"sign_in_delay"`
}

// Default returns a config with every field set to its default.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// loadThemeFile loads and merges theme from TASKPILOT_THEME_FILE
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		slog.Warn("theme file unreadable", "path", themeFile, "error", err)
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// loadDotEnv reads .env from the working directory into the environment.
// Variables already set win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
}

// Load loads config from the user's config directory, then applies .env and
// environment overrides. Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	loadDotEnv()

	config := &Config{}
	configPath, err := Path()
	if err == nil {
		data, readErr := os.ReadFile(configPath)
		switch {
		case readErr == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		case !errors.Is(readErr, os.ErrNotExist):
			return nil, readErr
		}
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	// Theme file merges over the config's theme
	loadThemeFile(config)

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Path returns the path to the config file
func Path() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "taskpilot", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "taskpilot", "config.yaml"), nil
}

// defaultDataDir is ~/.taskpilot, or a relative .taskpilot without a home
func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".taskpilot"
	}
	return filepath.Join(homeDir, ".taskpilot")
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Storage.QuotaBytes == 0 {
		c.Storage.QuotaBytes = storage.DefaultQuotaBytes
	}
	if c.Auth.SignInDelay == 0 {
		c.Auth.SignInDelay = DefaultSignInDelay
	}
	c.DefaultUser.applyDefaults()
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

func (u *UserConfig) applyDefaults() {
	if u.ID == "" {
		u.ID = "1"
	}
	if u.Name == "" {
		u.Name = "John Doe"
	}
	if u.Email == "" {
		u.Email = "john@example.com"
	}
	if u.Avatar == "" {
		u.Avatar = "https://api.dicebear.com/7.x/avataaars/svg?seed=john"
	}
}

// applyEnv overrides file values with TASKPILOT_* variables
func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvSession); v != "" {
		c.Session = v
	}
	if v := os.Getenv(EnvQuotaBytes); v != "" {
		quota, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvQuotaBytes, v, err)
		}
		c.Storage.QuotaBytes = quota
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level; unknown names mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
