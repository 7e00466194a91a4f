package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultAgentURL is the production agent flow used when no override is set.
const DefaultAgentURL = "https://alara-agents-prod.fintra.ai/api/v1/run/33bc0a25-9d65-4a2a-9d1f-11a921c2c4cf?stream=true"

// Theme names
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config represents the application configuration
type Config struct {
	AgentURL              string `json:"agent_url"`
	AgentKey              string `json:"agent_key"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"` // 0 disables the client timeout
	LoadingIntervalMs     int    `json:"loading_interval_ms"`
	Theme                 string `json:"theme"`
	DryRun                bool   `json:"dry_run"`
	LogLevel              string `json:"log_level"`
	LogFormat             string `json:"log_format"`
	LogFile               string `json:"log_file"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		AgentURL:              DefaultAgentURL,
		AgentKey:              "",
		RequestTimeoutSeconds: 0,
		LoadingIntervalMs:     3000,
		Theme:                 ThemeDark,
		DryRun:                false,
		LogLevel:              "info",
		LogFormat:             "json",
		LogFile:               "",
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Fields missing from an existing file keep their defaults.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if strings.TrimSpace(cfg.AgentURL) == "" {
		cfg.AgentURL = DefaultAgentURL
	}
	if strings.TrimSpace(cfg.Theme) == "" {
		cfg.Theme = ThemeDark
	}

	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	// The stub server supplies its own URL in dry-run mode
	if !c.DryRun {
		u, err := url.Parse(strings.TrimSpace(c.AgentURL))
		if err != nil {
			return fmt.Errorf("agent_url is invalid: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("agent_url must be an http(s) URL, got: %q", c.AgentURL)
		}
		if u.Host == "" {
			return fmt.Errorf("agent_url must include a host, got: %q", c.AgentURL)
		}
	}

	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must not be negative, got: %d", c.RequestTimeoutSeconds)
	}

	if c.LoadingIntervalMs <= 0 {
		return fmt.Errorf("loading_interval_ms must be positive, got: %d", c.LoadingIntervalMs)
	}

	switch c.Theme {
	case ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unsupported theme: %s", c.Theme)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".agentbuddy/config.json"
	}
	return filepath.Join(homeDir, ".agentbuddy", "config.json")
}

// LoadingInterval returns the loading placeholder period.
func (c Config) LoadingInterval() time.Duration {
	return time.Duration(c.LoadingIntervalMs) * time.Millisecond
}

// RequestTimeout returns the agent request timeout; zero means none.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
