// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"fmt"
	"testing"
)

func TestProposeCollections(t *testing.T) {
	engine, _ := newTestEngine(t)
	plan, _, _ := engine.CreatePlan("alice", testContent())
	if _, err := engine.Subscribe("bob", plan.ID, 0, midnight(2)); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if _, err := engine.Subscribe("carol", plan.ID, 0, midnight(3)); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	// Only bob is due at midnight(2); the proposal advances him one
	// occurrence.
	items, cursor, err := engine.ProposeCollections(midnight(2), 10, nil)
	if err != nil {
		t.Fatalf("ProposeCollections: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %+v, want one", items)
	}
	want := CollectionItem{PlanID: plan.ID, Subscriber: "bob", Current: midnight(2), Next: midnight(3)}
	if items[0] != want {
		t.Errorf("item = %+v, want %+v", items[0], want)
	}
	if cursor != nil {
		t.Errorf("cursor = %x, want nil on final page", cursor)
	}

	// The proposal feeds straight into Collect.
	result, err := engine.Collect(items)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(result.Collections) != 1 || len(result.Skipped) != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestProposeCollectionsPaginates(t *testing.T) {
	engine, _ := newTestEngine(t)
	plan, _, _ := engine.CreatePlan("alice", testContent())
	for _, subscriber := range []string{"bob", "carol"} {
		if _, err := engine.Subscribe(subscriber, plan.ID, 0, midnight(2)); err != nil {
			t.Fatalf("Subscribe %s: %v", subscriber, err)
		}
	}

	items, cursor, err := engine.ProposeCollections(midnight(2), 1, nil)
	if err != nil {
		t.Fatalf("ProposeCollections: %v", err)
	}
	if len(items) != 1 || items[0].Subscriber != "bob" {
		t.Fatalf("first page = %+v", items)
	}
	if cursor == nil {
		t.Fatal("expected resume cursor on full page")
	}

	items, cursor, err = engine.ProposeCollections(midnight(2), 1, cursor)
	if err != nil {
		t.Fatalf("ProposeCollections: %v", err)
	}
	if len(items) != 1 || items[0].Subscriber != "carol" {
		t.Errorf("second page = %+v", items)
	}
	// carol's entry filled the page, so one more (empty) page follows.
	if cursor != nil {
		items, cursor, err = engine.ProposeCollections(midnight(2), 1, cursor)
		if err != nil {
			t.Fatalf("ProposeCollections: %v", err)
		}
		if len(items) != 0 || cursor != nil {
			t.Errorf("trailing page = %+v, cursor %x", items, cursor)
		}
	}
}

func TestProposeCollectionsClampsLimit(t *testing.T) {
	engine, _ := newTestEngine(t)
	plan, _, _ := engine.CreatePlan("alice", testContent())
	for i := 0; i < maxPageLimit+1; i++ {
		subscriber := fmt.Sprintf("user-%02d", i)
		if _, err := engine.Subscribe(subscriber, plan.ID, 0, midnight(2)); err != nil {
			t.Fatalf("Subscribe %s: %v", subscriber, err)
		}
	}

	// A limit over the page cap still pages: the first page is capped
	// and carries a cursor for the remainder.
	items, cursor, err := engine.ProposeCollections(midnight(2), maxPageLimit+50, nil)
	if err != nil {
		t.Fatalf("ProposeCollections: %v", err)
	}
	if len(items) != maxPageLimit {
		t.Fatalf("first page = %d items, want %d", len(items), maxPageLimit)
	}
	if cursor == nil {
		t.Fatal("expected resume cursor with due entries remaining")
	}

	items, cursor, err = engine.ProposeCollections(midnight(2), maxPageLimit+50, cursor)
	if err != nil {
		t.Fatalf("ProposeCollections: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("second page = %d items, want 1", len(items))
	}
	if cursor != nil {
		t.Errorf("cursor = %x, want nil on final page", cursor)
	}
}
