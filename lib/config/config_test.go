// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	if cfg.Collector.Interval != "1m" {
		t.Errorf("expected interval=1m, got %s", cfg.Collector.Interval)
	}
	if cfg.Collector.BatchLimit != 30 {
		t.Errorf("expected batch_limit=30, got %d", cfg.Collector.BatchLimit)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected level=info, got %s", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadRequiresCadenzaConfig(t *testing.T) {
	orig := os.Getenv("CADENZA_CONFIG")
	defer os.Setenv("CADENZA_CONFIG", orig)

	os.Unsetenv("CADENZA_CONFIG")
	if _, err := Load(); err == nil {
		t.Error("Load() without CADENZA_CONFIG should fail")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cadenza.yaml")
	content := `
environment: production
store:
  path: /var/lib/cadenza/ledger.db
collector:
  interval: 30s
log:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Store.Path != "/var/lib/cadenza/ledger.db" {
		t.Errorf("store.path = %s", cfg.Store.Path)
	}
	if cfg.Collector.Interval != "30s" {
		t.Errorf("interval = %s", cfg.Collector.Interval)
	}
	// Unset fields keep their defaults.
	if cfg.Collector.BatchLimit != 30 {
		t.Errorf("batch_limit = %d, want default 30", cfg.Collector.BatchLimit)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("level = %s", cfg.Log.Level)
	}

	interval, err := cfg.PollInterval()
	if err != nil {
		t.Fatalf("PollInterval: %v", err)
	}
	if interval != 30*time.Second {
		t.Errorf("PollInterval = %s", interval)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cadenza.yaml")
	content := `
environment: production
store:
  path: /tmp/base.db
production:
  store:
    path: /var/lib/cadenza/ledger.db
  log:
    level: error
development:
  store:
    path: /tmp/dev.db
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Store.Path != "/var/lib/cadenza/ledger.db" {
		t.Errorf("store.path = %s, want production override", cfg.Store.Path)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("level = %s, want production override", cfg.Log.Level)
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("HOME", "/home/alice")

	path := filepath.Join(t.TempDir(), "cadenza.yaml")
	content := "store:\n  path: ${HOME}/cadenza/ledger.db\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Store.Path != "/home/alice/cadenza/ledger.db" {
		t.Errorf("store.path = %s", cfg.Store.Path)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad environment", func(c *Config) { c.Environment = "qa" }},
		{"empty store path", func(c *Config) { c.Store.Path = "" }},
		{"bad interval", func(c *Config) { c.Collector.Interval = "soon" }},
		{"negative interval", func(c *Config) { c.Collector.Interval = "-1m" }},
		{"zero batch limit", func(c *Config) { c.Collector.BatchLimit = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}
