// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package bitset

import (
	"errors"
	"testing"
)

func TestNewIndexBounds(t *testing.T) {
	for n := 0; n < 64; n++ {
		i, err := NewIndex(n)
		if err != nil {
			t.Fatalf("NewIndex(%d) failed: %v", n, err)
		}
		if i.Int() != n {
			t.Fatalf("NewIndex(%d).Int() = %d", n, i.Int())
		}
	}
	for _, n := range []int{-1, 64, 65, 1000} {
		if _, err := NewIndex(n); !errors.Is(err, ErrOutOfBound) {
			t.Errorf("NewIndex(%d) = %v, want ErrOutOfBound", n, err)
		}
	}
}

func TestSingle(t *testing.T) {
	s := Single(5)
	if !s.Has(5) {
		t.Error("Single(5) does not contain 5")
	}
	if s.Has(4) || s.Has(6) {
		t.Error("Single(5) contains neighbors")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if s.Min() != 5 || s.Max() != 5 {
		t.Errorf("Min/Max = %d/%d, want 5/5", s.Min(), s.Max())
	}
}

func TestFromValues(t *testing.T) {
	s, err := FromValues(3, 1, 4, 1, 5, 9)
	if err != nil {
		t.Fatalf("FromValues failed: %v", err)
	}
	if s.Min() != 1 {
		t.Errorf("Min() = %d, want 1", s.Min())
	}
	if s.Max() != 9 {
		t.Errorf("Max() = %d, want 9", s.Max())
	}
	// Distinct values only: 1 appears twice in the input.
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}

	if _, err := FromValues(); err == nil {
		t.Error("FromValues() with no values should fail")
	}
	if _, err := FromValues(1, 64); !errors.Is(err, ErrOutOfBound) {
		t.Errorf("FromValues(1, 64) = %v, want ErrOutOfBound", err)
	}
}

func TestRange(t *testing.T) {
	s := Range(10, 20)
	if s.Len() != 11 {
		t.Errorf("Len() = %d, want 11", s.Len())
	}
	if s.Min() != 10 || s.Max() != 20 {
		t.Errorf("Min/Max = %d/%d, want 10/20", s.Min(), s.Max())
	}
	for v := 10; v <= 20; v++ {
		if !s.Has(v) {
			t.Errorf("Range(10, 20) missing %d", v)
		}
	}
	if s.Has(9) || s.Has(21) {
		t.Error("Range(10, 20) contains out-of-range value")
	}

	full := Range(0, 63)
	if full.Len() != 64 {
		t.Errorf("full range Len() = %d, want 64", full.Len())
	}
	if full.Min() != 0 || full.Max() != 63 {
		t.Errorf("full range Min/Max = %d/%d", full.Min(), full.Max())
	}
}

func TestRangePanicsOnStaticMisuse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Range(5, 4) did not panic")
		}
	}()
	Range(5, 4)
}

func TestUnion(t *testing.T) {
	s := Union(Single(1), Single(2), Single(2), Single(63))
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if !s.Has(1) || !s.Has(2) || !s.Has(63) {
		t.Error("union missing member")
	}
}

func TestUnionWith(t *testing.T) {
	s := Single(3)
	s.UnionWith(Range(40, 42))
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if !s.Has(3) || !s.Has(41) {
		t.Error("UnionWith lost a member")
	}
}

func TestHasOutOfBound(t *testing.T) {
	s := Range(0, 63)
	if s.Has(-1) || s.Has(64) {
		t.Error("Has accepted out-of-bound value")
	}
}

func TestNextSetFrom(t *testing.T) {
	s, err := FromValues(5, 17, 63)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		from Index
		want Index
		ok   bool
	}{
		{0, 5, true},
		{5, 5, true}, // inclusive of the current index
		{6, 17, true},
		{17, 17, true},
		{18, 63, true},
		{63, 63, true},
	}
	for _, tt := range tests {
		got, ok := s.NextSetFrom(tt.from)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NextSetFrom(%d) = %d, %v; want %d, %v", tt.from, got, ok, tt.want, tt.ok)
		}
	}

	single := Single(10)
	if _, ok := single.NextSetFrom(11); ok {
		t.Error("NextSetFrom past the last member should report false")
	}
}
