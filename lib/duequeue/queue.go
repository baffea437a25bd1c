// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package duequeue

import (
	"errors"
	"fmt"

	"github.com/cadenza-foundation/cadenza/lib/kv"
)

// Precondition violations. Each one means the queue no longer agrees
// with the subscription table — a consistency fault the caller must
// surface, never swallow. Under the host transaction boundary the
// enclosing call's writes are then discarded wholesale.
var (
	// ErrExists reports an insert for a subscription that already has
	// an entry at that due time.
	ErrExists = errors.New("duequeue: entry already scheduled")

	// ErrMissing reports a removal for an entry that is not there.
	ErrMissing = errors.New("duequeue: entry not scheduled")
)

// presence is the unit value stored under every entry key.
var presence = []byte{}

// Queue is the collection index over an ordered store. Mutating
// methods must run inside the store's Update boundary; Queue itself
// holds no state beyond the store handle.
type Queue struct {
	store kv.Store
}

// New returns a Queue over store.
func New(store kv.Store) *Queue {
	return &Queue{store: store}
}

// Schedule inserts the entry for (plan, subscriber) at due.
// Precondition: no entry exists for that pair at that time — each
// subscription passes through the queue exactly once per due time.
func (q *Queue) Schedule(plan uint64, subscriber string, due int64) error {
	key := Key{Due: due, Plan: plan, Subscriber: subscriber}.Encode()
	if _, err := q.store.Get(key); err == nil {
		return fmt.Errorf("%w: plan %d subscriber %q at %d", ErrExists, plan, subscriber, due)
	} else if !errors.Is(err, kv.ErrNotFound) {
		return err
	}
	return q.store.Set(key, presence)
}

// Unschedule removes the entry for (plan, subscriber) at due.
// Precondition: the entry exists.
func (q *Queue) Unschedule(plan uint64, subscriber string, due int64) error {
	key := Key{Due: due, Plan: plan, Subscriber: subscriber}.Encode()
	if _, err := q.store.Get(key); errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("%w: plan %d subscriber %q at %d", ErrMissing, plan, subscriber, due)
	} else if err != nil {
		return err
	}
	return q.store.Delete(key)
}

// Reschedule moves the subscription's entry from oldDue to newDue as
// one logical step. There is no lock making the two halves atomic —
// the caller's Update boundary is what guarantees that a failure
// after the removal discards the removal too.
func (q *Queue) Reschedule(plan uint64, subscriber string, oldDue, newDue int64) error {
	if err := q.Unschedule(plan, subscriber, oldDue); err != nil {
		return err
	}
	return q.Schedule(plan, subscriber, newDue)
}

// DueBefore returns up to limit entries with due time <= now, in
// ascending (due, plan, subscriber) order — the order is inherited
// from the key encoding, not sorted here. A non-nil cursor (the
// Cursor field of a previous page's last entry, opaque to callers)
// resumes the scan immediately after that entry.
//
// limit must be positive; the page may be shorter than limit only
// when the scan is exhausted.
func (q *Queue) DueBefore(now int64, limit int, cursor []byte) ([]Entry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("duequeue: non-positive limit %d", limit)
	}

	var lower []byte
	if cursor != nil {
		lower = kv.KeySuccessor(cursor)
	}

	raw, err := q.store.Range(lower, dueUpperBound(now), limit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	for _, pair := range raw {
		key, err := DecodeKey(pair.Key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Cursor: pair.Key})
	}
	return entries, nil
}

// Entry is one due subscription yielded by DueBefore.
type Entry struct {
	// Key identifies the entry.
	Key Key

	// Cursor resumes a scan after this entry when passed back to
	// DueBefore. It is the encoded key; treat it as opaque.
	Cursor []byte
}
