// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package kv

import (
	"bytes"
	"errors"
	"testing"
)

func TestMemoryGetSetDelete(t *testing.T) {
	store := NewMemory()

	if _, err := store.Get([]byte("a")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty store = %v, want ErrNotFound", err)
	}

	if err := store.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatal(err)
	}
	value, err := store.Get([]byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	if string(value) != "1" {
		t.Errorf("Get = %q, want %q", value, "1")
	}

	// Overwrite.
	if err := store.Set([]byte("a"), []byte("2")); err != nil {
		t.Fatal(err)
	}
	value, _ = store.Get([]byte("a"))
	if string(value) != "2" {
		t.Errorf("Get after overwrite = %q, want %q", value, "2")
	}

	if err := store.Delete([]byte("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get([]byte("a")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is a no-op.
	if err := store.Delete([]byte("missing")); err != nil {
		t.Errorf("Delete missing = %v, want nil", err)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	store := NewMemory()
	value := []byte("original")
	store.Set([]byte("k"), value)
	value[0] = 'X'

	got, _ := store.Get([]byte("k"))
	if string(got) != "original" {
		t.Errorf("stored value aliased caller slice: %q", got)
	}

	got[0] = 'Y'
	again, _ := store.Get([]byte("k"))
	if string(again) != "original" {
		t.Errorf("returned value aliased stored slice: %q", again)
	}
}

func TestMemoryRange(t *testing.T) {
	store := NewMemory()
	for _, key := range []string{"d", "b", "a", "c", "e"} {
		store.Set([]byte(key), []byte("v-"+key))
	}

	entries, err := store.Range([]byte("b"), []byte("e"), 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"b", "c", "d"}
	if len(entries) != len(want) {
		t.Fatalf("Range returned %d entries, want %d", len(entries), len(want))
	}
	for i, entry := range entries {
		if string(entry.Key) != want[i] {
			t.Errorf("entry %d key = %q, want %q", i, entry.Key, want[i])
		}
	}

	// Nil bounds scan everything; limit caps the page.
	entries, err = store.Range(nil, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || string(entries[0].Key) != "a" || string(entries[1].Key) != "b" {
		t.Errorf("limited scan = %v", entries)
	}
}

func TestMemoryRangeByteOrder(t *testing.T) {
	store := NewMemory()
	// 0xff single byte sorts after any key starting with a lower
	// byte, regardless of length.
	keys := [][]byte{{0x00}, {0x00, 0x00}, {0x01}, {0x7f, 0xff}, {0x80}, {0xff}}
	for _, key := range keys {
		store.Set(key, []byte{})
	}

	entries, err := store.Range(nil, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(entries); i++ {
		if bytes.Compare(entries[i-1].Key, entries[i].Key) >= 0 {
			t.Errorf("scan out of order at %d: %x >= %x", i, entries[i-1].Key, entries[i].Key)
		}
	}
}

func TestKeySuccessor(t *testing.T) {
	store := NewMemory()
	store.Set([]byte("a"), nil)
	store.Set([]byte("a\x00"), nil)
	store.Set([]byte("b"), nil)

	// Resuming from successor("a") must include "a\x00" but not "a".
	entries, err := store.Range(KeySuccessor([]byte("a")), nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || string(entries[0].Key) != "a\x00" {
		t.Errorf("resume scan = %v", entries)
	}
}

func TestMemoryUpdateCommit(t *testing.T) {
	store := NewMemory()
	store.Set([]byte("kept"), []byte("old"))

	err := store.Update(func(tx Store) error {
		tx.Set([]byte("kept"), []byte("new"))
		tx.Set([]byte("added"), []byte("1"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	value, _ := store.Get([]byte("kept"))
	if string(value) != "new" {
		t.Errorf("kept = %q, want %q", value, "new")
	}
	if _, err := store.Get([]byte("added")); err != nil {
		t.Errorf("added missing after commit: %v", err)
	}
}

func TestMemoryUpdateRollback(t *testing.T) {
	store := NewMemory()
	store.Set([]byte("kept"), []byte("old"))

	boom := errors.New("boom")
	err := store.Update(func(tx Store) error {
		tx.Set([]byte("kept"), []byte("new"))
		tx.Delete([]byte("kept"))
		tx.Set([]byte("added"), []byte("1"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update = %v, want boom", err)
	}

	value, err := store.Get([]byte("kept"))
	if err != nil || string(value) != "old" {
		t.Errorf("kept = %q, %v; want rollback to %q", value, err, "old")
	}
	if _, err := store.Get([]byte("added")); !errors.Is(err, ErrNotFound) {
		t.Errorf("added survived rollback: %v", err)
	}
}
