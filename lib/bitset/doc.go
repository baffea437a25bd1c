// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package bitset provides a compact non-empty set over the integers
// 0-63, backed by a single uint64.
//
// The cron engine compiles each recurrence field (minute, hour,
// day-of-month, month, weekday) into one Set, so membership tests,
// unions, and min/max queries are single machine instructions with no
// allocation.
//
// Two invariants are enforced by construction rather than checked at
// use sites:
//
//   - Index values are always in [0, 64). NewIndex is the only way to
//     build one from untrusted input; it returns ErrOutOfBound instead
//     of clamping.
//   - A Set is never empty. Every constructor either starts from at
//     least one Index or reports an error, so Min and Max are total.
package bitset
