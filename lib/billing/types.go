// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"fmt"

	"github.com/cadenza-foundation/cadenza/lib/cron"
)

// PlanID identifies a plan. IDs are assigned from a self-incrementing
// counter at creation and never reused while the plan exists.
type PlanID uint64

func (id PlanID) String() string { return fmt.Sprintf("%d", uint64(id)) }

// Content limits, enforced at plan creation.
const (
	MaxTitleLength       = 140
	MaxDescriptionLength = 5000
)

// PlanContent is the creator-supplied definition of a plan. It is
// immutable once the plan is created: plans are stopped, never edited
// in place.
type PlanContent struct {
	// Title is a short human-readable name, at most MaxTitleLength
	// bytes.
	Title string `cbor:"title"`

	// Description is free-form text, at most MaxDescriptionLength
	// bytes.
	Description string `cbor:"description"`

	// Token is the denomination collected each period.
	Token string `cbor:"token"`

	// Amount is how much of Token one collection transfers.
	Amount uint64 `cbor:"amount"`

	// Schedule is the compiled recurrence. Collection times must be
	// occurrences of this schedule at TZOffset.
	Schedule cron.Schedule `cbor:"cron"`

	// TZOffset is the plan's fixed timezone, seconds east of UTC.
	TZOffset int `cbor:"tzoffset"`
}

// Validate checks the content limits. The schedule itself was already
// validated by cron compilation; this covers everything around it.
func (c PlanContent) Validate() error {
	if len(c.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(c.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if c.Token == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidContent)
	}
	if !cron.ValidOffset(c.TZOffset) {
		return ErrInvalidTimezoneOffset
	}
	return nil
}

// VerifyTimestamp reports whether ts (Unix seconds) is a legal
// occurrence of the plan's schedule in the plan's timezone.
func (c PlanContent) VerifyTimestamp(ts int64) bool {
	return c.Schedule.MatchesUnix(ts, c.TZOffset)
}

// Plan is a persisted plan record.
type Plan struct {
	ID      PlanID      `cbor:"id"`
	Owner   string      `cbor:"owner"`
	Content PlanContent `cbor:"content"`
}

// Subscription is one account's membership in a plan. The pair
// (plan ID, subscriber) identifies it; both live in the store key,
// not the record.
type Subscription struct {
	// Expires is the Unix time after which the subscription may no
	// longer be modified. Zero means never expires.
	Expires int64 `cbor:"expires"`

	// LastCollectionTime is the most recent successfully collected
	// occurrence, initialized to the subscription time.
	LastCollectionTime int64 `cbor:"last_collection_time"`

	// NextCollectionTime is the next permitted collection instant.
	// Invariant: always an occurrence of the owning plan's schedule,
	// and always equal to this subscription's due-queue entry time.
	NextCollectionTime int64 `cbor:"next_collection_time"`
}

// Expired reports whether the subscription has expired at now.
func (s Subscription) Expired(now int64) bool {
	return s.Expires != 0 && s.Expires <= now
}
