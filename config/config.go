// Package config holds client configuration: API and gateway endpoints and
// the per-phase request deadline.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the Helix client configuration.
type Config struct {
	// APIBaseURL is the Helix API endpoint (auth, upload, file registry).
	APIBaseURL string `json:"api_base_url"`

	// GatewayBaseURL is the Arweave gateway used for downloads, price
	// queries, and building permanent URLs.
	GatewayBaseURL string `json:"gateway_base_url"`

	// TimeoutSeconds is the deadline applied to each network-bound pipeline
	// phase. A phase that exceeds it fails with a timeout; the operation is
	// not resumed.
	TimeoutSeconds int `json:"timeout_seconds"`

	// Debug enables debug logging on the client when a logger is attached.
	Debug bool `json:"debug"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:     "https://heyx-production.up.railway.app",
		GatewayBaseURL: "https://arweave.net",
		TimeoutSeconds: 30,
	}
}

// RequestTimeout returns TimeoutSeconds as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SaveConfig writes the configuration to path as JSON, creating parent
// directories as needed.
func SaveConfig(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("config: write file: %w", err)
	}
	return nil
}

// LoadConfig reads a configuration previously written by SaveConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, ErrConfigNotFound
		}
		return Config{}, fmt.Errorf("config: read file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse file: %w", err)
	}
	return cfg, nil
}
