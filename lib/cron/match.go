// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"fmt"
	"time"
)

// maxOffsetSeconds bounds a plan's timezone offset: strictly less
// than 24 hours east or west of UTC.
const maxOffsetSeconds = 24 * 60 * 60

// ValidOffset reports whether seconds is a legal fixed UTC offset for
// a plan. Plan creation rejects invalid offsets before the schedule
// is ever evaluated.
func ValidOffset(seconds int) bool {
	return seconds > -maxOffsetSeconds && seconds < maxOffsetSeconds
}

// zone returns the fixed time.Location for a plan offset.
func zone(offsetSeconds int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetSeconds), offsetSeconds)
}

// Matches reports whether the instant t is a legal occurrence of the
// schedule at the given fixed UTC offset (seconds east of UTC).
//
// The instant is converted to local wall clock at the offset, and
// matches iff its second and sub-second components are zero (the
// schedule resolves to one-minute granularity) and its minute, hour,
// day-of-month, month, and weekday are each members of the
// corresponding field set. All five fields are evaluated
// independently — a weekday restriction can make an otherwise valid
// month/day combination unreachable.
func (s Schedule) Matches(t time.Time, offsetSeconds int) bool {
	if t.Nanosecond() != 0 {
		return false
	}
	local := t.In(zone(offsetSeconds))
	if local.Second() != 0 {
		return false
	}
	return s.Minute.Has(local.Minute()) &&
		s.Hour.Has(local.Hour()) &&
		s.DayOfMonth.Has(local.Day()) &&
		s.Month.Has(int(local.Month())) &&
		s.Weekday.Has(int(local.Weekday()))
}

// MatchesUnix is Matches for a Unix timestamp in seconds. Collection
// times cross the wire as Unix seconds, so this is the form the
// billing engine uses.
func (s Schedule) MatchesUnix(ts int64, offsetSeconds int) bool {
	return s.Matches(time.Unix(ts, 0), offsetSeconds)
}

// Next returns the earliest instant strictly after t that matches the
// schedule at the given offset. The collector uses it to propose the
// next collection time after a successful collection.
//
// Returns an error if no matching instant exists within 4 years of t
// (covers the leap cycle; prevents an infinite walk on impossible
// schedules like Feb 30).
func (s Schedule) Next(t time.Time, offsetSeconds int) (time.Time, error) {
	local := t.In(zone(offsetSeconds))

	// Start from the next local minute boundary after t.
	local = time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), 0, 0, local.Location()).Add(time.Minute)

	limit := local.AddDate(4, 0, 0)

	for local.Before(limit) {
		if !s.Month.Has(int(local.Month())) {
			// Jump to the first minute of the next month.
			local = time.Date(local.Year(), local.Month()+1, 1, 0, 0, 0, 0, local.Location())
			continue
		}

		// Day-of-month and weekday are both AND constraints here,
		// unlike classic cron's OR-when-both-restricted rule: the
		// matcher evaluates all five fields independently, and Next
		// must agree with the matcher.
		if !s.DayOfMonth.Has(local.Day()) || !s.Weekday.Has(int(local.Weekday())) {
			local = time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, local.Location())
			continue
		}

		if !s.Hour.Has(local.Hour()) {
			local = time.Date(local.Year(), local.Month(), local.Day(), local.Hour()+1, 0, 0, 0, local.Location())
			continue
		}

		if !s.Minute.Has(local.Minute()) {
			local = local.Add(time.Minute)
			continue
		}

		return local, nil
	}

	return time.Time{}, fmt.Errorf("cron: no matching time within 4 years of %s", t.Format(time.RFC3339))
}
