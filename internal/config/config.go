// Package config loads the service's fixed configuration: connection
// settings from the environment plus an optional YAML file that can
// override the spatial registry tables. Loaded once at startup; nothing
// here is mutable at runtime.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/NWFWMD-IT/Wells/internal/spatial"
	"github.com/goccy/go-yaml"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is empty")

type Config struct {
	// DatabaseURL is the Postgres DSN for the GIS database. The upstream
	// regulatory tables are reachable through it as foreign tables.
	DatabaseURL string `yaml:"database_url"`

	// Port for the HTTP refresh surface.
	Port string `yaml:"port"`

	// APIKeyHash is the bcrypt hash the refresh endpoints compare the
	// X-API-Key header against. Empty disables the check (local use).
	APIKeyHash string `yaml:"api_key_hash"`

	// Spatial carries the reference-id table and envelope bounds. A YAML
	// section, when present, replaces the corresponding defaults wholesale.
	Spatial spatial.Config `yaml:"spatial"`
}

// Load builds the configuration from defaults, then the YAML file named by
// WELLS_CONFIG (if set), then environment variables, in that order.
func Load() (Config, error) {
	cfg := Config{
		Port:    "5050",
		Spatial: spatial.DefaultConfig(),
	}

	if path := os.Getenv("WELLS_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("REFRESH_API_KEY_HASH"); v != "" {
		cfg.APIKeyHash = v
	}

	return cfg, nil
}

// Validate checks the settings a refresh cannot run without.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if len(c.Spatial.References) == 0 {
		return errors.New("spatial reference table is empty")
	}
	return nil
}
