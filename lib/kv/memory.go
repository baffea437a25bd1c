// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package kv

import (
	"maps"
	"slices"
	"sync"
)

// Memory is an in-memory ordered store. It is the test double for
// everything built on Store and the reference for backend behavior:
// sqlitekv's tests assert agreement with it.
//
// Construct with NewMemory. A single mutex serializes all operations,
// matching the one-writer semantics of the SQLite backend.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// Get implements Store.
func (m *Memory) Get(key []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(key)
}

// Set implements Store.
func (m *Memory) Set(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set(key, value)
}

// Delete implements Store.
func (m *Memory) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delete(key)
}

// Range implements Store.
func (m *Memory) Range(lower, upper []byte, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scan(lower, upper, limit)
}

// Update implements Transactional by snapshotting the whole map and
// restoring it when fn fails or panics. Linear in store size, which
// is fine for a test double. The mutex is held for the whole
// transaction, so fn sees an isolated store.
func (m *Memory) Update(fn func(Store) error) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := maps.Clone(m.data)
	defer func() {
		if r := recover(); r != nil {
			m.data = snapshot
			panic(r)
		}
		if err != nil {
			m.data = snapshot
		}
	}()
	return fn(view{m})
}

// view exposes the store inside an Update callback. It skips the
// mutex, which the enclosing Update already holds.
type view struct {
	m *Memory
}

func (v view) Get(key []byte) ([]byte, error) { return v.m.get(key) }
func (v view) Set(key, value []byte) error    { return v.m.set(key, value) }
func (v view) Delete(key []byte) error        { return v.m.delete(key) }
func (v view) Range(lower, upper []byte, limit int) ([]Entry, error) {
	return v.m.scan(lower, upper, limit)
}

func (m *Memory) get(key []byte) ([]byte, error) {
	value, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(value), nil
}

func (m *Memory) set(key, value []byte) error {
	m.data[string(key)] = slices.Clone(value)
	return nil
}

func (m *Memory) delete(key []byte) error {
	delete(m.data, string(key))
	return nil
}

func (m *Memory) scan(lower, upper []byte, limit int) ([]Entry, error) {
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		if lower != nil && key < string(lower) {
			continue
		}
		if upper != nil && key >= string(upper) {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	entries := make([]Entry, len(keys))
	for i, key := range keys {
		entries[i] = Entry{
			Key:   []byte(key),
			Value: slices.Clone(m.data[key]),
		}
	}
	return entries, nil
}
