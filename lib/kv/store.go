// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package kv

import "errors"

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("kv: key not found")

// Entry is one key-value pair yielded by a range scan.
type Entry struct {
	Key   []byte
	Value []byte
}

// Store is a byte-ordered key-value store. Implementations must copy
// key and value slices on Set rather than retain them, and must
// return copies from Get and Range so callers can mutate results
// freely.
//
// The core runs single-invocation (one external call at a time, run
// to completion), so Store implementations are not required to be
// safe for concurrent use.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key []byte) ([]byte, error)

	// Set stores value under key, overwriting any existing value.
	Set(key, value []byte) error

	// Delete removes key. Deleting a missing key is not an error;
	// callers that need presence semantics check with Get first.
	Delete(key []byte) error

	// Range returns the entries with lower <= key < upper in
	// ascending byte order. A nil lower means scan from the start; a
	// nil upper means scan to the end. Limit caps the number of
	// entries returned; limit <= 0 means no cap. Restart a scan by
	// passing the successor of the last seen key as the new lower
	// bound.
	Range(lower, upper []byte, limit int) ([]Entry, error)
}

// Transactional is a Store that can apply a batch of mutations
// atomically. Every engine operation runs inside Update: on a nil
// return all mutations made through the argument store are applied
// together, on error every one of them is discarded.
type Transactional interface {
	Store

	// Update runs fn against a transactional view of the store.
	// Mutations become visible to other calls only after fn returns
	// nil. If fn returns an error (or panics), the store is left
	// exactly as it was before Update.
	Update(fn func(Store) error) error
}

// KeySuccessor returns the smallest key strictly greater than key in
// byte order: the key with a zero byte appended. Use it to turn a
// last-seen key into the exclusive lower bound of the next page.
func KeySuccessor(key []byte) []byte {
	successor := make([]byte, len(key)+1)
	copy(successor, key)
	return successor
}
