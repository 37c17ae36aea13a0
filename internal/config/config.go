package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name looked up when none is given.
const DefaultConfigFile = "config.yaml"

// AppConfig holds command-line level application options.
type AppConfig struct {
	ConfigPath string
}

// JWTConfig holds JWT signing settings.
type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpiryHours int    `yaml:"expiry-hours"`
}

// Expiry returns the token lifetime.
func (c JWTConfig) Expiry() time.Duration {
	hours := c.ExpiryHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// AIConfig holds settings for the external generation provider.
type AIConfig struct {
	APIKey         string `yaml:"api-key"`
	BaseURL        string `yaml:"base-url"`
	Model          string `yaml:"model"`
	MaxTokens      int    `yaml:"max-tokens"`
	TimeoutSeconds int    `yaml:"timeout-seconds"`
}

// Timeout returns the bounded provider call timeout.
func (c AIConfig) Timeout() time.Duration {
	seconds := c.TimeoutSeconds
	if seconds <= 0 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}

// LogConfig holds log output settings.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max-size-mb"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAgeDays int    `yaml:"max-age-days"`
}

// Config is the full YAML application configuration.
type Config struct {
	Listen   string `yaml:"listen"`
	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	JWT JWTConfig `yaml:"jwt"`
	AI  AIConfig  `yaml:"ai"`
	Log LogConfig `yaml:"log"`
}

// ResolveConfigPath returns an absolute config path, defaulting to
// config.yaml in the working directory.
func ResolveConfigPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = DefaultConfigFile
	}
	abs, errAbs := filepath.Abs(trimmed)
	if errAbs != nil {
		return trimmed
	}
	return abs
}

// Load reads and validates the configuration file. Environment variables
// ANTHROPIC_API_KEY and INNOVTEC_JWT_SECRET override their file values so
// secrets can stay out of the config on disk.
func Load(path string) (*Config, error) {
	data, errRead := os.ReadFile(path)
	if errRead != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, errRead)
	}

	cfg := &Config{}
	if errUnmarshal := yaml.Unmarshal(data, cfg); errUnmarshal != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
	}

	if envKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); envKey != "" {
		cfg.AI.APIKey = envKey
	}
	if envSecret := strings.TrimSpace(os.Getenv("INNOVTEC_JWT_SECRET")); envSecret != "" {
		cfg.JWT.Secret = envSecret
	}

	cfg.applyDefaults()

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, fmt.Errorf("config: missing database.dsn")
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, fmt.Errorf("config: missing jwt.secret")
	}
	return cfg, nil
}

// applyDefaults fills unset fields with their defaults.
func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Listen) == "" {
		c.Listen = ":8317"
	}
	if strings.TrimSpace(c.AI.BaseURL) == "" {
		c.AI.BaseURL = "https://api.anthropic.com"
	}
	if strings.TrimSpace(c.AI.Model) == "" {
		c.AI.Model = "claude-sonnet-4-20250514"
	}
	if c.AI.MaxTokens <= 0 {
		c.AI.MaxTokens = 2048
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = "info"
	}
}

// LoadDatabaseDSN reads only the database DSN from the config file. It skips
// the full validation so migrate-only runs do not need JWT settings.
func LoadDatabaseDSN(path string) (string, error) {
	data, errRead := os.ReadFile(path)
	if errRead != nil {
		return "", fmt.Errorf("config: read %s: %w", path, errRead)
	}

	cfg := &Config{}
	if errUnmarshal := yaml.Unmarshal(data, cfg); errUnmarshal != nil {
		return "", fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
	}

	dsn := strings.TrimSpace(cfg.Database.DSN)
	if dsn == "" {
		return "", fmt.Errorf("config: missing database.dsn")
	}
	return dsn, nil
}
