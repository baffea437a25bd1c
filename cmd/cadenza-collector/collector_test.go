// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cadenza-foundation/cadenza/lib/billing"
	"github.com/cadenza-foundation/cadenza/lib/clock"
	"github.com/cadenza-foundation/cadenza/lib/cron"
	"github.com/cadenza-foundation/cadenza/lib/kv"
)

var collectorStart = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func collectorMidnight(day int) int64 {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC).Unix()
}

func newCollectorFixture(t *testing.T) (*billing.Engine, *clock.FakeClock) {
	t.Helper()
	fc := clock.Fake(collectorStart)
	engine := billing.New(kv.NewMemory(), fc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	content := billing.PlanContent{
		Title:    "storage",
		Token:    "uusd",
		Amount:   500,
		Schedule: cron.MustCompile("0 0 * * *"),
	}
	plan, _, err := engine.CreatePlan("alice", content)
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if _, err := engine.Subscribe("bob", plan.ID, 0, collectorMidnight(2)); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	return engine, fc
}

func TestPassCollectsDueEntries(t *testing.T) {
	engine, fc := newCollectorFixture(t)
	collector := NewCollector(engine, fc, time.Minute, 10, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Nothing is due yet: the pass must not touch the subscription.
	collector.pass()
	sub, err := engine.Subscription(1, "bob")
	if err != nil {
		t.Fatalf("Subscription: %v", err)
	}
	if sub.NextCollectionTime != collectorMidnight(2) {
		t.Errorf("NextCollectionTime = %d after idle pass", sub.NextCollectionTime)
	}

	// Past the due time, one pass collects and reschedules.
	fc.Advance(13 * time.Hour)
	collector.pass()
	sub, err = engine.Subscription(1, "bob")
	if err != nil {
		t.Fatalf("Subscription: %v", err)
	}
	if sub.LastCollectionTime != collectorMidnight(2) || sub.NextCollectionTime != collectorMidnight(3) {
		t.Errorf("subscription = %+v", sub)
	}
}

func TestPassDrainsBacklogAcrossPages(t *testing.T) {
	engine, fc := newCollectorFixture(t)
	for _, subscriber := range []string{"carol", "dave", "erin"} {
		if _, err := engine.Subscribe(subscriber, 1, 0, collectorMidnight(2)); err != nil {
			t.Fatalf("Subscribe %s: %v", subscriber, err)
		}
	}

	// A page size of 2 forces the pass to paginate.
	collector := NewCollector(engine, fc, time.Minute, 2, slog.New(slog.NewTextHandler(io.Discard, nil)))
	fc.Advance(13 * time.Hour)
	collector.pass()

	due, err := engine.Collectible(collectorMidnight(2), 30, nil)
	if err != nil {
		t.Fatalf("Collectible: %v", err)
	}
	if len(due) != 0 {
		t.Errorf("entries still due after pass: %+v", due)
	}
}

func TestRunCollectsOnTick(t *testing.T) {
	engine, fc := newCollectorFixture(t)
	collector := NewCollector(engine, fc, time.Minute, 10, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- collector.Run(ctx) }()

	// Wait for the ticker to be armed, then advance past the due time.
	fc.WaitForWaiters(1)
	fc.Advance(13 * time.Hour)

	deadline := time.After(5 * time.Second)
	for {
		sub, err := engine.Subscription(1, "bob")
		if err != nil {
			t.Fatalf("Subscription: %v", err)
		}
		if sub.NextCollectionTime == collectorMidnight(3) {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("collection did not happen, subscription = %+v", sub)
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}
