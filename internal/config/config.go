// Package config provides configuration loading and validation for the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the server configuration that can be loaded from a
// JSON file, with environment variables filling in anything missing.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// LLM
	GeminiAPIKey string  `json:"gemini_api_key,omitempty"` // Gemini API key
	Model        string  `json:"model,omitempty"`          // Gemini model name
	Temperature  float64 `json:"temperature,omitempty"`    // Sampling temperature

	// Chat persistence
	ChatFlushDelayMS int `json:"chat_flush_delay_ms,omitempty"` // Debounce window for chat writes

	// Logging
	LogJSON  bool `json:"log_json,omitempty"`  // JSON log encoding
	LogDebug bool `json:"log_debug,omitempty"` // Debug log level
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Model:        os.Getenv("GEMINI_MODEL"),
		LogJSON:      os.Getenv("LOG_JSON") == "true",
		LogDebug:     os.Getenv("LOG_DEBUG") == "true",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if delayStr := os.Getenv("CHAT_FLUSH_DELAY_MS"); delayStr != "" {
		delay, err := strconv.Atoi(delayStr)
		if err != nil {
			return nil, fmt.Errorf("invalid CHAT_FLUSH_DELAY_MS: %v", err)
		}
		cfg.ChatFlushDelayMS = delay
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.ChatFlushDelayMS < 0 {
		return fmt.Errorf("config error: 'chat_flush_delay_ms' must be non-negative")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Config file values win over environment defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = 8000
		}
	}
	if result.ChatFlushDelayMS == 0 {
		result.ChatFlushDelayMS = defaults.ChatFlushDelayMS
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (flags should always win for bools)

	return result
}
