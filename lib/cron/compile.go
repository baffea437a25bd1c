// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"errors"
	"fmt"

	"github.com/cadenza-foundation/cadenza/lib/bitset"
)

// Compile error taxonomy. Both are fatal to plan creation: a plan is
// never persisted with an invalid schedule.
var (
	// ErrEmpty reports a field whose term union contains no values,
	// e.g. the inverted range "2-1".
	ErrEmpty = errors.New("cron: field matches no values")

	// ErrOutOfRange reports a field whose compiled set extends
	// outside the field's numeric domain, e.g. minute 60 or
	// day-of-month 0.
	ErrOutOfRange = errors.New("cron: value outside field domain")
)

// Per-field full domains. Range arguments are static, so the panic
// path in bitset.Range is unreachable.
var (
	minuteDomain     = bitset.Range(0, 59)
	hourDomain       = bitset.Range(0, 23)
	dayOfMonthDomain = bitset.Range(1, 31)
	monthDomain      = bitset.Range(1, 12)
	weekdayDomain    = bitset.Range(0, 6)
)

// Schedule is the compiled, matchable form of a cron expression:
// one non-empty bit set per field, each within its domain. Fields are
// exported for CBOR persistence inside the plan record; construct
// only through [Spec.Compile] — hand-built schedules bypass domain
// validation.
type Schedule struct {
	Minute     bitset.Set `cbor:"minute"`
	Hour       bitset.Set `cbor:"hour"`
	DayOfMonth bitset.Set `cbor:"mday"`
	Month      bitset.Set `cbor:"month"`
	Weekday    bitset.Set `cbor:"wday"`
}

// Compile validates the Spec and produces its Schedule. Each field's
// terms are unioned; an empty term list means "unrestricted" and
// substitutes the field's full domain. Fields are checked in the
// fixed order minute, hour, day-of-month, month, weekday and the
// first violation is returned; no multi-error aggregation.
//
// Month and day-of-month are validated independently: "0 0 30 2 *"
// (Feb 30) compiles fine and simply never matches a real date.
func (s Spec) Compile() (Schedule, error) {
	var schedule Schedule
	for _, field := range []struct {
		name   string
		terms  []Term
		domain bitset.Set
		out    *bitset.Set
	}{
		{"minute", s.Minute, minuteDomain, &schedule.Minute},
		{"hour", s.Hour, hourDomain, &schedule.Hour},
		{"day-of-month", s.DayOfMonth, dayOfMonthDomain, &schedule.DayOfMonth},
		{"month", s.Month, monthDomain, &schedule.Month},
		{"weekday", s.Weekday, weekdayDomain, &schedule.Weekday},
	} {
		set, err := compileField(field.terms, field.domain)
		if err != nil {
			return Schedule{}, fmt.Errorf("%s field: %w", field.name, err)
		}
		*field.out = set
	}
	return schedule, nil
}

// compileField unions the terms' member sets and checks the result
// against the field domain.
func compileField(terms []Term, domain bitset.Set) (bitset.Set, error) {
	if len(terms) == 0 {
		// Unrestricted shorthand: no tokens to union, so the full
		// domain stands in.
		return domain, nil
	}

	var set bitset.Set
	for _, term := range terms {
		bits, ok := term.compile()
		if !ok {
			continue
		}
		set.UnionWith(bits)
	}
	if set == 0 {
		return 0, ErrEmpty
	}

	// The set is non-empty, so Min and Max are defined.
	if set.Min() < domain.Min() || set.Max() > domain.Max() {
		return 0, fmt.Errorf("%w: got %d-%d, want %d-%d",
			ErrOutOfRange, set.Min(), set.Max(), domain.Min(), domain.Max())
	}
	return set, nil
}

// MustCompile parses and compiles an expression known to be valid,
// panicking on failure. For tests and static schedules only.
func MustCompile(expression string) Schedule {
	spec, err := Parse(expression)
	if err != nil {
		panic(err)
	}
	schedule, err := spec.Compile()
	if err != nil {
		panic(err)
	}
	return schedule
}
