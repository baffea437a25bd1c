// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package bitset

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrOutOfBound reports an attempt to build an Index outside [0, 64).
var ErrOutOfBound = errors.New("bitset: index out of bound")

// Index is an integer guaranteed to be in [0, 64) by construction.
// The zero value is a valid Index (position 0).
type Index uint8

// NewIndex validates n as a bit position. Returns ErrOutOfBound
// (wrapped with the offending value) for anything outside [0, 64).
// Negative input is rejected, never truncated.
func NewIndex(n int) (Index, error) {
	if n < 0 || n > 63 {
		return 0, fmt.Errorf("%w: %d", ErrOutOfBound, n)
	}
	return Index(n), nil
}

// Int returns the index as a plain int.
func (i Index) Int() int { return int(i) }

// Set is a non-empty set of Index values packed into a uint64. Bit i
// is set exactly when value i is a member.
//
// The zero Set violates the non-emptiness invariant; always construct
// through Single, FromValues, Union, or Range. Min and Max are defined
// only because constructors never produce an empty set.
type Set uint64

// Single returns the set containing exactly i.
func Single(i Index) Set { return 1 << i }

// FromValues unions an arbitrary sequence of integer values into a
// Set. Each value must be a legal Index. Returns an error if any value
// is out of bound or if the sequence is empty (the resulting set would
// violate non-emptiness).
func FromValues(values ...int) (Set, error) {
	var s Set
	for _, v := range values {
		i, err := NewIndex(v)
		if err != nil {
			return 0, err
		}
		s |= Single(i)
	}
	if s == 0 {
		return 0, errors.New("bitset: empty value sequence")
	}
	return s, nil
}

// Union merges one or more sets by bitwise union. Requiring the first
// set as a separate argument keeps the result non-empty without a
// runtime check.
func Union(first Set, rest ...Set) Set {
	s := first
	for _, other := range rest {
		s |= other
	}
	return s
}

// Range returns the set of all indices in the inclusive range
// [start, end]. It is intended for package-level domain constants
// with statically known arguments (for example hours 0-23) and
// panics if start > end or either bound is outside [0, 64). Use
// FromValues for untrusted input.
func Range(start, end int) Set {
	if start < 0 || end > 63 || start > end {
		panic(fmt.Sprintf("bitset: invalid static range %d-%d", start, end))
	}
	var s Set
	for v := start; v <= end; v++ {
		s |= 1 << uint(v)
	}
	return s
}

// Has reports whether value n is a member. Values outside [0, 64)
// are never members.
func (s Set) Has(n int) bool {
	if n < 0 || n > 63 {
		return false
	}
	return s&(1<<uint(n)) != 0
}

// UnionWith adds all members of other to s in place.
func (s *Set) UnionWith(other Set) { *s |= other }

// Len returns the number of members. Always at least 1 for a Set
// built through the package constructors.
func (s Set) Len() int { return bits.OnesCount64(uint64(s)) }

// Min returns the smallest member, via trailing-zero count on the
// underlying word.
func (s Set) Min() Index { return Index(bits.TrailingZeros64(uint64(s))) }

// Max returns the largest member, via leading-zero count on the
// underlying word.
func (s Set) Max() Index { return Index(63 - bits.LeadingZeros64(uint64(s))) }

// NextSetFrom returns the smallest member >= i, or false if no member
// at or above i exists. Shifts the mask down by i and bit-scans the
// remainder, so it is O(1) like the other queries.
func (s Set) NextSetFrom(i Index) (Index, bool) {
	shifted := uint64(s) >> i
	if shifted == 0 {
		return 0, false
	}
	return i + Index(bits.TrailingZeros64(shifted)), true
}
