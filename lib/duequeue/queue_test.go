// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package duequeue

import (
	"errors"
	"math"
	"testing"

	"github.com/cadenza-foundation/cadenza/lib/kv"
)

func TestScheduleAndDueBefore(t *testing.T) {
	queue := New(kv.NewMemory())

	if err := queue.Schedule(1, "alice", 100); err != nil {
		t.Fatal(err)
	}

	entries, err := queue.DueBefore(100, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("DueBefore(100) = %d entries, want 1", len(entries))
	}
	want := Key{Due: 100, Plan: 1, Subscriber: "alice"}
	if entries[0].Key != want {
		t.Errorf("entry = %+v, want %+v", entries[0].Key, want)
	}

	// Not yet due at 99.
	entries, err = queue.DueBefore(99, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("DueBefore(99) = %d entries, want 0", len(entries))
	}
}

func TestSchedulePreconditions(t *testing.T) {
	queue := New(kv.NewMemory())

	if err := queue.Schedule(1, "alice", 100); err != nil {
		t.Fatal(err)
	}
	if err := queue.Schedule(1, "alice", 100); !errors.Is(err, ErrExists) {
		t.Errorf("double Schedule = %v, want ErrExists", err)
	}
	if err := queue.Unschedule(1, "alice", 50); !errors.Is(err, ErrMissing) {
		t.Errorf("Unschedule at wrong time = %v, want ErrMissing", err)
	}
	if err := queue.Unschedule(1, "alice", 100); err != nil {
		t.Errorf("Unschedule = %v", err)
	}
	if err := queue.Unschedule(1, "alice", 100); !errors.Is(err, ErrMissing) {
		t.Errorf("double Unschedule = %v, want ErrMissing", err)
	}
}

func TestReschedule(t *testing.T) {
	queue := New(kv.NewMemory())
	queue.Schedule(1, "alice", 100)

	if err := queue.Reschedule(1, "alice", 100, 200); err != nil {
		t.Fatal(err)
	}

	entries, _ := queue.DueBefore(150, 10, nil)
	if len(entries) != 0 {
		t.Errorf("entry still at old due time: %+v", entries)
	}
	entries, _ = queue.DueBefore(200, 10, nil)
	if len(entries) != 1 || entries[0].Key.Due != 200 {
		t.Errorf("entry not at new due time: %+v", entries)
	}
}

// A failure between the two halves of Reschedule must leave the index
// untouched when run under the store's transaction boundary.
func TestRescheduleRollsBackWithTransaction(t *testing.T) {
	store := kv.NewMemory()
	queue := New(store)
	queue.Schedule(1, "alice", 100)

	boom := errors.New("boom")
	err := store.Update(func(tx kv.Store) error {
		txQueue := New(tx)
		if err := txQueue.Unschedule(1, "alice", 100); err != nil {
			return err
		}
		// The reinsert never happens.
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update = %v, want boom", err)
	}

	entries, _ := queue.DueBefore(100, 10, nil)
	if len(entries) != 1 {
		t.Fatalf("index corrupted: %d entries after rollback, want 1", len(entries))
	}
}

func TestDueBeforeOrdering(t *testing.T) {
	queue := New(kv.NewMemory())

	// Inserted out of order on every component.
	queue.Schedule(2, "bob", 300)
	queue.Schedule(1, "bob", 100)
	queue.Schedule(1, "alice", 300)
	queue.Schedule(2, "alice", 300)
	queue.Schedule(1, "alice", 100)
	queue.Schedule(1, "alice", 200)

	entries, err := queue.DueBefore(300, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Key{
		{Due: 100, Plan: 1, Subscriber: "alice"},
		{Due: 100, Plan: 1, Subscriber: "bob"},
		{Due: 200, Plan: 1, Subscriber: "alice"},
		{Due: 300, Plan: 1, Subscriber: "alice"},
		{Due: 300, Plan: 2, Subscriber: "alice"},
		{Due: 300, Plan: 2, Subscriber: "bob"},
	}
	if len(entries) != len(want) {
		t.Fatalf("DueBefore = %d entries, want %d", len(entries), len(want))
	}
	for i, entry := range entries {
		if entry.Key != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entry.Key, want[i])
		}
	}
}

func TestDueBeforeLimitAndCursor(t *testing.T) {
	queue := New(kv.NewMemory())
	for due := int64(1); due <= 5; due++ {
		queue.Schedule(1, "alice", due)
	}

	var seen []int64
	var cursor []byte
	for {
		entries, err := queue.DueBefore(5, 2, cursor)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) > 2 {
			t.Fatalf("page exceeds limit: %d", len(entries))
		}
		if len(entries) == 0 {
			break
		}
		for _, entry := range entries {
			seen = append(seen, entry.Key.Due)
		}
		cursor = entries[len(entries)-1].Cursor
	}

	if len(seen) != 5 {
		t.Fatalf("paged scan saw %d entries, want 5", len(seen))
	}
	for i, due := range seen {
		if due != int64(i+1) {
			t.Errorf("paged scan position %d = due %d, want %d", i, due, i+1)
		}
	}
}

func TestDueBeforeRejectsBadLimit(t *testing.T) {
	queue := New(kv.NewMemory())
	if _, err := queue.DueBefore(100, 0, nil); err == nil {
		t.Error("limit 0 accepted")
	}
}

func TestNegativeDueTimes(t *testing.T) {
	queue := New(kv.NewMemory())
	queue.Schedule(1, "alice", -100)
	queue.Schedule(1, "alice", 100)

	entries, err := queue.DueBefore(0, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Key.Due != -100 {
		t.Errorf("DueBefore(0) = %+v, want only the negative-time entry", entries)
	}
}

func TestDueBeforeAtMaximumTime(t *testing.T) {
	queue := New(kv.NewMemory())
	queue.Schedule(1, "alice", 100)
	queue.Schedule(1, "bob", math.MaxInt64)

	// MaxInt64 has no successor to use as an exclusive bound; every
	// entry qualifies.
	entries, err := queue.DueBefore(math.MaxInt64, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[1].Key.Due != math.MaxInt64 {
		t.Errorf("DueBefore(MaxInt64) = %+v, want both entries", entries)
	}
}
