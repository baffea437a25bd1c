// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package kv

import (
	"bytes"
	"slices"
)

// Prefixed returns a view of store confined to keys carrying the
// given prefix. Keys pass through the view with the prefix stripped,
// so components built on a view (the due-queue in particular) keep
// their own byte-exact key layout while several of them share one
// physical store without colliding.
//
// The view and the underlying store stay interchangeable: a Prefixed
// view of a transactional store's Update argument is how the billing
// state buckets participate in one transaction.
func Prefixed(store Store, prefix []byte) Store {
	return &prefixed{store: store, prefix: slices.Clone(prefix)}
}

type prefixed struct {
	store  Store
	prefix []byte
}

func (p *prefixed) apply(key []byte) []byte {
	full := make([]byte, 0, len(p.prefix)+len(key))
	full = append(full, p.prefix...)
	return append(full, key...)
}

func (p *prefixed) Get(key []byte) ([]byte, error) {
	return p.store.Get(p.apply(key))
}

func (p *prefixed) Set(key, value []byte) error {
	return p.store.Set(p.apply(key), value)
}

func (p *prefixed) Delete(key []byte) error {
	return p.store.Delete(p.apply(key))
}

func (p *prefixed) Range(lower, upper []byte, limit int) ([]Entry, error) {
	fullLower := p.apply(nil)
	if lower != nil {
		fullLower = p.apply(lower)
	}
	fullUpper := prefixEnd(p.prefix)
	if upper != nil {
		fullUpper = p.apply(upper)
	}

	entries, err := p.store.Range(fullLower, fullUpper, limit)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Key = bytes.TrimPrefix(entries[i].Key, p.prefix)
	}
	return entries, nil
}

// prefixEnd returns the smallest key greater than every key starting
// with prefix, or nil (scan to the end) when no such key exists
// because the prefix is all 0xff bytes.
func prefixEnd(prefix []byte) []byte {
	end := slices.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] != 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
