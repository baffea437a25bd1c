// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package kv defines the ordered key-value store contract the
// scheduling core runs on, plus an in-memory implementation used as
// the test double throughout the module.
//
// The core needs exactly four primitives: point get, set, delete, and
// ascending byte-ordered range iteration. Ordering correctness lives
// entirely in key construction (see lib/duequeue), so any store with
// byte-lexicographic ordering can serve — the durable backend is
// lib/kv/sqlitekv.
//
// Transactional adds the all-or-nothing boundary every engine
// operation runs inside: either every mutation made during Update is
// applied, or none is. This boundary is what makes paired
// remove-and-reinsert index moves safe without locks.
package kv
