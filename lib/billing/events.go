// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package billing

// Event actions, one per mutating operation.
const (
	ActionCreatePlan         = "create-plan"
	ActionStopPlan           = "stop-plan"
	ActionSubscribe          = "subscribe"
	ActionUnsubscribe        = "unsubscribe"
	ActionUpdateSubscription = "update-subscription"
)

// Event records one state change for the host's audit trail. The
// engine returns events rather than emitting them anywhere itself;
// the collector daemon logs them, other hosts may forward them.
type Event struct {
	Action     string `json:"action"`
	PlanID     PlanID `json:"plan_id"`
	Subscriber string `json:"subscriber,omitempty"`
}
