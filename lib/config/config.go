// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Cadenza components.
//
// Configuration is loaded from a single file specified by:
//   - CADENZA_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures deterministic,
// auditable configuration with no hidden overrides.
//
// The config file may contain environment-specific sections (development,
// staging, production) that override base values when the environment matches.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for Cadenza.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Store configures the ledger database.
	Store StoreConfig `yaml:"store"`

	// Collector configures the collection daemon.
	Collector CollectorConfig `yaml:"collector"`

	// Log configures logging output.
	Log LogConfig `yaml:"log"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Store     *StoreConfig     `yaml:"store,omitempty"`
	Collector *CollectorConfig `yaml:"collector,omitempty"`
	Log       *LogConfig       `yaml:"log,omitempty"`
}

// StoreConfig configures the ledger database.
type StoreConfig struct {
	// Path is the SQLite database file holding the ledger.
	// Default: ${HOME}/.cache/cadenza/ledger.db
	Path string `yaml:"path"`
}

// CollectorConfig configures the collection daemon.
type CollectorConfig struct {
	// Interval is how often the daemon polls the due queue,
	// as a Go duration string. Default: 1m
	Interval string `yaml:"interval"`

	// BatchLimit caps how many due entries one poll collects.
	// Default: 30
	BatchLimit int `yaml:"batch_limit"`
}

// LogConfig configures logging output.
type LogConfig struct {
	// Level is the minimum level emitted: debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
// They exist primarily to ensure all fields have sensible zero-values,
// not as a fallback - the config file is required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "cadenza")

	return &Config{
		Environment: Development,
		Store: StoreConfig{
			Path: filepath.Join(defaultRoot, "ledger.db"),
		},
		Collector: CollectorConfig{
			Interval:   "1m",
			BatchLimit: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the CADENZA_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit path.
// There are no fallbacks or defaults - if CADENZA_CONFIG is not set, this
// fails. This ensures deterministic, auditable configuration with no hidden
// overrides.
func Load() (*Config, error) {
	configPath := os.Getenv("CADENZA_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("CADENZA_CONFIG environment variable not set; " +
			"set it to the path of your cadenza.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables do
// not override config values. The only expansion performed is ${HOME} and
// similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.Store != nil && overrides.Store.Path != "" {
		c.Store.Path = overrides.Store.Path
	}

	if overrides.Collector != nil {
		if overrides.Collector.Interval != "" {
			c.Collector.Interval = overrides.Collector.Interval
		}
		if overrides.Collector.BatchLimit != 0 {
			c.Collector.BatchLimit = overrides.Collector.BatchLimit
		}
	}

	if overrides.Log != nil && overrides.Log.Level != "" {
		c.Log.Level = overrides.Log.Level
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Store.Path = expandVars(c.Store.Path, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// PollInterval parses the collector interval.
func (c *Config) PollInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Collector.Interval)
	if err != nil {
		return 0, fmt.Errorf("collector.interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("collector.interval must be positive, got %s", c.Collector.Interval)
	}
	return d, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}
	if c.Store.Path == "" {
		errs = append(errs, fmt.Errorf("store.path is required"))
	}
	if _, err := c.PollInterval(); err != nil {
		errs = append(errs, err)
	}
	if c.Collector.BatchLimit <= 0 {
		errs = append(errs, fmt.Errorf("collector.batch_limit must be positive, got %d", c.Collector.BatchLimit))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level: %s", c.Log.Level))
	}

	return errors.Join(errs...)
}
