// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package duequeue maintains the time-ordered collection index: one
// entry per active subscription, keyed by (due time, plan, subscriber)
// so that "everything due by T" is an ordered range scan instead of a
// full table walk.
//
// Ordering correctness lives entirely in the key bytes. The due time
// is sign-biased so that unsigned byte comparison preserves signed
// numeric order, and the plan identifier is length-prefixed so
// neighboring key components can never be confused — see [Key].
// Any byte-ordered store then serves as the index; the store, not
// process memory, is the durable source of truth.
//
// The paired remove-and-insert in Reschedule has no lock protecting
// it. It relies on the host transaction boundary (kv.Transactional's
// Update): if the second half fails, the enclosing call's writes are
// discarded as a whole and the one-entry-per-subscription invariant
// holds. Callers must invoke every mutating method inside Update.
package duequeue
