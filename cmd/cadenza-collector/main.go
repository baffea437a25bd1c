// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/cadenza-foundation/cadenza/lib/billing"
	"github.com/cadenza-foundation/cadenza/lib/clock"
	"github.com/cadenza-foundation/cadenza/lib/config"
	"github.com/cadenza-foundation/cadenza/lib/kv/sqlitekv"
	"github.com/cadenza-foundation/cadenza/lib/version"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		storePath   string
		interval    time.Duration
		batchLimit  int
		showVersion bool
	)

	pflag.StringVar(&configPath, "config", "", "path to cadenza.yaml config file (default: $CADENZA_CONFIG)")
	pflag.StringVar(&storePath, "store", "", "ledger database path (overrides config)")
	pflag.DurationVar(&interval, "interval", 0, "poll interval (overrides config)")
	pflag.IntVar(&batchLimit, "limit", 0, "max entries per collection page (overrides config)")
	pflag.BoolVar(&showVersion, "version", false, "print version information and exit")
	pflag.Parse()

	if showVersion {
		fmt.Printf("cadenza-collector %s\n", version.Full())
		return nil
	}

	cfg, err := loadConfig(configPath, storePath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if storePath == "" {
		storePath = cfg.Store.Path
	}
	if interval == 0 {
		interval, err = cfg.PollInterval()
		if err != nil {
			return err
		}
	}
	if batchLimit == 0 {
		batchLimit = cfg.Collector.BatchLimit
	}

	logger := newLogger(cfg.Log.Level)
	logger.Info("collector starting",
		"version", version.Info(),
		"store", storePath,
		"interval", interval,
		"batch_limit", batchLimit)

	store, err := sqlitekv.Open(storePath, logger)
	if err != nil {
		return fmt.Errorf("opening ledger store: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := billing.New(store, clock.Real(), logger)
	collector := NewCollector(engine, clock.Real(), interval, batchLimit, logger)

	err = collector.Run(ctx)
	logger.Info("collector stopped")
	return err
}

func loadConfig(path, storePath string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	// With an explicit --store and no config file anywhere, run on
	// defaults. Flags then override everything that matters.
	if storePath != "" && os.Getenv("CADENZA_CONFIG") == "" {
		return config.Default(), nil
	}
	return config.Load()
}

// newLogger builds the daemon's JSON logger at the configured level.
func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
}
