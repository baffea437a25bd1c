// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package sqlitekv

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cadenza-foundation/cadenza/lib/kv"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "kv.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetSetDelete(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Get([]byte("a")); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("Get on empty store = %v, want kv.ErrNotFound", err)
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
	if _, err := store.Get([]byte("a")); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("Get after delete = %v, want kv.ErrNotFound", err)
	}
}

// The durable backend must order binary keys exactly like kv.Memory:
// unsigned bytewise comparison, length as tiebreaker.
func TestRangeAgreesWithMemory(t *testing.T) {
	store := openTestStore(t)
	memory := kv.NewMemory()

	keys := [][]byte{
		{0x00}, {0x00, 0x00}, {0x00, 0xff}, {0x01},
		{0x7f, 0xff, 0xff}, {0x80, 0x00}, {0xfe}, {0xff},
	}
	for i, key := range keys {
		value := []byte{byte(i)}
		store.Set(key, value)
		memory.Set(key, value)
	}

	bounds := []struct{ lower, upper []byte }{
		{nil, nil},
		{[]byte{0x00, 0x01}, nil},
		{nil, []byte{0x80}},
		{[]byte{0x00, 0xff}, []byte{0xfe}},
	}
	for _, b := range bounds {
		got, err := store.Range(b.lower, b.upper, 0)
		if err != nil {
			t.Fatal(err)
		}
		want, err := memory.Range(b.lower, b.upper, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(want) {
			t.Fatalf("bounds %x-%x: %d entries, memory has %d", b.lower, b.upper, len(got), len(want))
		}
		for i := range got {
			if !bytes.Equal(got[i].Key, want[i].Key) {
				t.Errorf("bounds %x-%x entry %d: key %x, memory has %x",
					b.lower, b.upper, i, got[i].Key, want[i].Key)
			}
		}
	}
}

func TestRangeLimit(t *testing.T) {
	store := openTestStore(t)
	for _, key := range []string{"a", "b", "c", "d"} {
		store.Set([]byte(key), nil)
	}

	entries, err := store.Range(nil, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || string(entries[0].Key) != "a" || string(entries[1].Key) != "b" {
		t.Errorf("limited scan = %v", entries)
	}
}

func TestUpdateCommitAndRollback(t *testing.T) {
	store := openTestStore(t)
	store.Set([]byte("kept"), []byte("old"))

	err := store.Update(func(tx kv.Store) error {
		return tx.Set([]byte("kept"), []byte("new"))
	})
	if err != nil {
		t.Fatal(err)
	}
	value, _ := store.Get([]byte("kept"))
	if string(value) != "new" {
		t.Errorf("after commit kept = %q, want %q", value, "new")
	}

	boom := errors.New("boom")
	err = store.Update(func(tx kv.Store) error {
		tx.Set([]byte("kept"), []byte("poisoned"))
		tx.Set([]byte("added"), []byte("1"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update = %v, want boom", err)
	}
	value, _ = store.Get([]byte("kept"))
	if string(value) != "new" {
		t.Errorf("after rollback kept = %q, want %q", value, "new")
	}
	if _, err := store.Get([]byte("added")); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("added survived rollback: %v", err)
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	store, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	store.Set([]byte("k"), []byte("v"))
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	value, err := reopened.Get([]byte("k"))
	if err != nil || string(value) != "v" {
		t.Errorf("Get after reopen = %q, %v", value, err)
	}
}
