// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package billing

import "errors"

// Operation failures surfaced to the host. Each aborts its operation;
// under the store's Update boundary the operation's writes are then
// discarded as a whole.
var (
	// ErrPlanNotFound reports an operation against a plan ID with no
	// stored plan.
	ErrPlanNotFound = errors.New("billing: plan not found")

	// ErrNotPlanOwner reports an owner-only operation attempted by
	// someone else.
	ErrNotPlanOwner = errors.New("billing: caller is not the plan owner")

	// ErrSubscriptionExists reports a subscribe for an account that
	// already subscribes to the plan.
	ErrSubscriptionExists = errors.New("billing: subscription already exists")

	// ErrSubscriptionNotFound reports an operation against a missing
	// subscription.
	ErrSubscriptionNotFound = errors.New("billing: subscription not found")

	// ErrInvalidExpires reports an expiry that is already in the past.
	ErrInvalidExpires = errors.New("billing: invalid expiration")

	// ErrInvalidCollectionTime reports a proposed collection time that
	// is in the past or is not an occurrence of the plan's schedule.
	ErrInvalidCollectionTime = errors.New("billing: invalid collection time")

	// ErrInvalidTimezoneOffset reports a plan timezone outside the
	// valid fixed-offset range.
	ErrInvalidTimezoneOffset = errors.New("billing: invalid timezone offset")

	// ErrTitleTooLong and ErrDescriptionTooLong report content over
	// the fixed limits.
	ErrTitleTooLong       = errors.New("billing: title too long")
	ErrDescriptionTooLong = errors.New("billing: description too long")

	// ErrInvalidContent reports plan content that fails validation in
	// some other way (for example an empty token denomination).
	ErrInvalidContent = errors.New("billing: invalid plan content")
)
