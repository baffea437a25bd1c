// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/cadenza-foundation/cadenza/lib/billing"
	"github.com/cadenza-foundation/cadenza/lib/clock"
)

// Collector runs the periodic collection loop against a billing engine.
type Collector struct {
	engine   *billing.Engine
	clock    clock.Clock
	interval time.Duration
	limit    int
	logger   *slog.Logger
}

// NewCollector returns a Collector polling every interval, collecting
// at most limit entries per page.
func NewCollector(engine *billing.Engine, clk clock.Clock, interval time.Duration, limit int, logger *slog.Logger) *Collector {
	return &Collector{
		engine:   engine,
		clock:    clk,
		interval: interval,
		limit:    limit,
		logger:   logger,
	}
}

// Run polls the due queue until ctx is cancelled. One pass runs
// immediately on startup so a restarted daemon drains its backlog
// without waiting out the first interval.
func (c *Collector) Run(ctx context.Context) error {
	c.pass()

	ticker := c.clock.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.pass()
		}
	}
}

// pass drains everything currently due, page by page. Errors are
// logged, not returned: a failed page must not stop the loop, the
// next tick retries from the queue head.
func (c *Collector) pass() {
	now := c.clock.Now().Unix()

	var cursor []byte
	for {
		items, next, err := c.engine.ProposeCollections(now, c.limit, cursor)
		if err != nil {
			c.logger.Error("scanning due queue", "err", err)
			return
		}

		if len(items) > 0 {
			result, err := c.engine.Collect(items)
			if err != nil {
				c.logger.Error("collection batch failed", "err", err, "items", len(items))
				return
			}
			for _, collection := range result.Collections {
				c.logger.Info("collected",
					"plan_id", collection.PlanID,
					"subscriber", collection.Subscriber,
					"owner", collection.Owner,
					"amount", collection.Amount,
					"token", collection.Token)
			}
		}

		if next == nil {
			return
		}
		cursor = next
	}
}
