// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cadenza-foundation/cadenza/lib/billing"
	"github.com/cadenza-foundation/cadenza/lib/config"
	"github.com/cadenza-foundation/cadenza/lib/kv/sqlitekv"
)

// StoreConfig is an embeddable params struct for commands that operate
// on the ledger store. It provides the --config and --store flags.
type StoreConfig struct {
	// ConfigPath overrides the CADENZA_CONFIG environment variable.
	ConfigPath string `flag:"config" desc:"path to cadenza.yaml config file"`

	// StorePath overrides the store path from the config file. With
	// this flag set, no config file is required.
	StorePath string `flag:"store" desc:"path to the ledger database"`
}

// OpenEngine opens the ledger store and returns a ready billing engine.
// The returned close function must be called when the command is done.
//
// Resolution order for the store path: --store flag, then the config
// file named by --config, then the file named by CADENZA_CONFIG.
func (sc *StoreConfig) OpenEngine() (*billing.Engine, func() error, error) {
	path := sc.StorePath
	if path == "" {
		cfg, err := sc.loadConfig()
		if err != nil {
			return nil, nil, err
		}
		path = cfg.Store.Path
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating store directory: %w", err)
	}

	logger := NewCommandLogger()
	store, err := sqlitekv.Open(path, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening ledger store: %w", err)
	}

	return billing.New(store, nil, logger), store.Close, nil
}

func (sc *StoreConfig) loadConfig() (*config.Config, error) {
	if sc.ConfigPath != "" {
		return config.LoadFile(sc.ConfigPath)
	}
	return config.Load()
}
