// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for
// testability.
//
// Production code accepts a Clock parameter instead of calling
// time.Now, time.After, time.NewTicker, or time.Sleep directly. In
// production, Real() provides standard library behavior. In tests,
// Fake() provides a deterministic clock that advances only when
// Advance is called, so the billing engine and the collector loop can
// be driven through exact instants without real sleeping.
//
// When a goroutine calls Sleep, After, or NewTicker on a FakeClock it
// registers a pending waiter. Use WaitForWaiters to block until a
// given number of waiters exist before calling Advance; that removes
// the race between waiter registration and time advancement.
package clock
