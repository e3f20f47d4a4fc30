// Package config provides configuration management for the catalog jobs.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingRoot      = errors.New("catalog.root is required")
	ErrMissingIndex     = errors.New("catalog.index is required")
	ErrInvalidLimit     = errors.New("limit must be at least 1")
	ErrInvalidLogLevel  = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat = errors.New("logging.format must be 'text' or 'json'")
)

// Config is the complete configuration for both batch jobs.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Limits  LimitsConfig  `yaml:"limits"`
	Git     GitConfig     `yaml:"git"`
	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig locates the document tree and the index document.
type CatalogConfig struct {
	Root   string   `yaml:"root"`
	Index  string   `yaml:"index"`
	Ignore []string `yaml:"ignore"` // basenames never treated as candidates
}

// LimitsConfig caps the rendered projections.
type LimitsConfig struct {
	Recent       int `yaml:"recent"`
	Topics       int `yaml:"topics"`
	Contributors int `yaml:"contributors"`
	Tags         int `yaml:"tags"`
}

// GitConfig configures changed-document discovery.
type GitConfig struct {
	// Base is the revision diffed against HEAD. Empty means "use the
	// worktree status" so the gate also runs on uncommitted checkouts.
	Base string `yaml:"base"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration both jobs run with when no file is
// present.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Root:   "articles",
			Index:  "README.md",
			Ignore: []string{"TEMPLATE.md"},
		},
		Limits: LimitsConfig{
			Recent:       5,
			Topics:       5,
			Contributors: 5,
			Tags:         10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from a YAML file layered over the defaults, then
// applies environment overrides. An empty path loads defaults plus
// environment only.
func Load(path string) (*Config, error) {
	// A .env file in the working directory may carry the overrides.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CATALOG_ROOT"); v != "" {
		cfg.Catalog.Root = v
	}

	if v := os.Getenv("CATALOG_INDEX"); v != "" {
		cfg.Catalog.Index = v
	}

	if v := os.Getenv("CATALOG_GIT_BASE"); v != "" {
		cfg.Git.Base = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Catalog.Root == "" {
		return ErrMissingRoot
	}

	if c.Catalog.Index == "" {
		return ErrMissingIndex
	}

	limits := []struct {
		name  string
		value int
	}{
		{"limits.recent", c.Limits.Recent},
		{"limits.topics", c.Limits.Topics},
		{"limits.contributors", c.Limits.Contributors},
		{"limits.tags", c.Limits.Tags},
	}

	for _, l := range limits {
		if l.value < 1 {
			return fmt.Errorf("%w: %s is %d", ErrInvalidLimit, l.name, l.value)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// String returns a short summary of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Root: %s, Index: %s, Recent: %d}",
		c.Catalog.Root, c.Catalog.Index, c.Limits.Recent)
}
