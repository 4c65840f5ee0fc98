package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Id strategy constants
const (
	IDStrategySequence = "sequence" // MISSION-NNN, continuing after the fixtures
	IDStrategyUUID     = "uuid"     // MISSION-<uuid v7>
)

// CurrentVersion is written by SaveConfig when the config carries none.
const CurrentVersion = "1"

// Config represents the flat fleet configuration
type Config struct {
	Version      string `json:"version"`
	FixturesPath string `json:"fixtures_path,omitempty"` // YAML fixture file; empty means the built-in set
	IDStrategy   string `json:"id_strategy,omitempty"`   // "sequence" or "uuid"
	RecentLimit  int    `json:"recent_limit,omitempty"`  // missions listed on the overview
	DueSoonDays  int    `json:"due_soon_days,omitempty"` // analytics window
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Version:     CurrentVersion,
		IDStrategy:  IDStrategySequence,
		RecentLimit: 5,
		DueSoonDays: 7,
	}
}

// LoadConfig reads .fleet/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".fleet", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault is LoadConfig with a missing file treated as Default().
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}

	fleetDir := filepath.Join(dir, ".fleet")
	if err := os.MkdirAll(fleetDir, 0755); err != nil {
		return fmt.Errorf("failed to create .fleet dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(fleetDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the enumerated and numeric fields.
func (c *Config) Validate() error {
	switch c.IDStrategy {
	case "", IDStrategySequence, IDStrategyUUID:
	default:
		return fmt.Errorf("invalid id_strategy %q: must be %q or %q", c.IDStrategy, IDStrategySequence, IDStrategyUUID)
	}
	if c.RecentLimit < 0 {
		return fmt.Errorf("invalid recent_limit %d: must not be negative", c.RecentLimit)
	}
	if c.DueSoonDays < 0 {
		return fmt.Errorf("invalid due_soon_days %d: must not be negative", c.DueSoonDays)
	}
	return nil
}

// DueSoon returns the analytics window as a duration.
func (c *Config) DueSoon() time.Duration {
	return time.Duration(c.DueSoonDays) * 24 * time.Hour
}
