// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cadenza-foundation/cadenza/lib/bitset"
)

// Parse error taxonomy. Every parse failure wraps exactly one of
// these sentinels, so callers can classify with errors.Is while the
// message carries the field and offending text.
var (
	// ErrFieldCount reports an expression without exactly 5 fields.
	ErrFieldCount = errors.New("cron: expected 5 fields")

	// ErrSyntax reports a malformed item: more than one '/' or more
	// than one '-' inside a single comma-separated item.
	ErrSyntax = errors.New("cron: malformed item")

	// ErrNumber reports a non-numeric token, a number outside the
	// 0-63 token bound, or a non-positive step.
	ErrNumber = errors.New("cron: invalid number")
)

// Term is one comma-separated item of a cron field: either a single
// [Value] or an inclusive stepped [Span].
type Term interface {
	// compile returns the term's member set, or false when the term
	// covers no values (an inverted range like 2-1).
	compile() (bitset.Set, bool)
}

// Value is a term matching a single value, e.g. "15".
type Value bitset.Index

func (v Value) compile() (bitset.Set, bool) {
	return bitset.Single(bitset.Index(v)), true
}

// Span is a term matching an inclusive stepped range, e.g. "1-30/5".
// The wildcard "*" parses to a Span covering the field's full domain.
type Span struct {
	// Start and End are the inclusive range bounds.
	Start, End bitset.Index
	// Step is the stride between members, at least 1.
	Step bitset.Index
}

func (r Span) compile() (bitset.Set, bool) {
	if r.Step == 0 {
		return 0, false
	}
	var s bitset.Set
	for v := r.Start; v <= r.End; v += r.Step {
		s.UnionWith(bitset.Single(v))
	}
	return s, s != 0
}

// Spec is the parsed form of a cron expression: one term list per
// field, in field order. An empty list means the field is
// unrestricted; Compile substitutes the field's full domain. Term
// order within a field never affects semantics (the union is
// commutative) but is preserved from the source text.
type Spec struct {
	Minute     []Term
	Hour       []Term
	DayOfMonth []Term
	Month      []Term
	Weekday    []Term
}

// Parse parses a 5-field cron expression into a Spec. Fields are
// whitespace-separated in the fixed order minute, hour, day-of-month,
// month, weekday. Any malformed item aborts the whole parse — no
// partial Spec is ever returned and no value is silently clamped.
//
// Numbers are validated here only against the bitset token bound
// [0, 64); per-field domain checking happens in [Spec.Compile].
func Parse(expression string) (Spec, error) {
	fields := strings.Fields(expression)
	if len(fields) != 5 {
		return Spec{}, fmt.Errorf("%w, got %d", ErrFieldCount, len(fields))
	}

	spec := Spec{}
	for i, field := range []struct {
		name     string
		min, max bitset.Index
		out      *[]Term
	}{
		{"minute", 0, 59, &spec.Minute},
		{"hour", 0, 23, &spec.Hour},
		{"day-of-month", 1, 31, &spec.DayOfMonth},
		{"month", 1, 12, &spec.Month},
		{"weekday", 0, 6, &spec.Weekday},
	} {
		terms, err := parseField(fields[i], field.min, field.max)
		if err != nil {
			return Spec{}, fmt.Errorf("%s field: %w", field.name, err)
		}
		*field.out = terms
	}
	return spec, nil
}

// parseField parses one comma-separated field into terms. The min and
// max bounds are used only to expand the wildcard; explicit numbers
// are not checked against them here.
func parseField(field string, min, max bitset.Index) ([]Term, error) {
	var terms []Term
	for _, item := range strings.Split(field, ",") {
		term, err := parseItem(item, min, max)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// parseItem parses a single item: *, */N, V, V-V, or V-V/N.
func parseItem(item string, min, max bitset.Index) (Term, error) {
	parts := strings.Split(item, "/")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w %q: more than one '/'", ErrSyntax, item)
	}
	step := bitset.Index(1)
	if len(parts) == 2 {
		parsed, err := parseNumber(parts[1])
		if err != nil {
			return nil, err
		}
		if parsed == 0 {
			return nil, fmt.Errorf("%w: step must be positive", ErrNumber)
		}
		step = parsed
	}

	base := strings.Split(parts[0], "-")
	switch len(base) {
	case 1:
		if base[0] == "*" {
			return Span{Start: min, End: max, Step: step}, nil
		}
		value, err := parseNumber(base[0])
		if err != nil {
			return nil, err
		}
		return Value(value), nil
	case 2:
		start, err := parseNumber(base[0])
		if err != nil {
			return nil, err
		}
		end, err := parseNumber(base[1])
		if err != nil {
			return nil, err
		}
		return Span{Start: start, End: end, Step: step}, nil
	default:
		return nil, fmt.Errorf("%w %q: more than one '-'", ErrSyntax, item)
	}
}

// parseNumber parses a decimal number and bounds it as a bitset
// index. Both failure modes (non-numeric, out of bound) surface as
// ErrNumber: at this stage 60 in a minute field and 99 anywhere are
// equally illegal tokens.
func parseNumber(text string) (bitset.Index, error) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrNumber, text)
	}
	index, err := bitset.NewIndex(n)
	if err != nil {
		return 0, fmt.Errorf("%w: %d exceeds token bound", ErrNumber, n)
	}
	return index, nil
}
