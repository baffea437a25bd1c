// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cadenza-foundation/cadenza/lib/codec"
	"github.com/cadenza-foundation/cadenza/lib/duequeue"
	"github.com/cadenza-foundation/cadenza/lib/kv"
)

// Bucket prefixes within the shared store.
var (
	prefixMeta  = []byte("meta/")
	prefixPlans = []byte("plans/")
	prefixSubs  = []byte("plan-subs/")
	prefixQueue = []byte("q-collection/")
)

// planIDCounterKey holds the last assigned plan ID inside the meta
// bucket.
var planIDCounterKey = []byte("planid")

// state bundles the bucket views over one store handle. Built per
// operation, over either the transactional view (mutations) or the
// plain store (queries), so a single Update covers every bucket.
type state struct {
	meta  kv.Store
	plans kv.Store
	subs  kv.Store
	queue *duequeue.Queue
}

func newState(store kv.Store) *state {
	return &state{
		meta:  kv.Prefixed(store, prefixMeta),
		plans: kv.Prefixed(store, prefixPlans),
		subs:  kv.Prefixed(store, prefixSubs),
		queue: duequeue.New(kv.Prefixed(store, prefixQueue)),
	}
}

// planKey is the plan's key inside the plans bucket: 8-byte
// big-endian, so ascending scans ascend numerically.
func planKey(id PlanID) []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(id))
}

// subscriptionKey is the subscription's key inside the subscriptions
// bucket: the plan key followed by the subscriber identifier. The
// subscriber is the final component and needs no framing.
func subscriptionKey(id PlanID, subscriber string) []byte {
	return append(planKey(id), subscriber...)
}

func (s *state) nextPlanID() (PlanID, error) {
	var last uint64
	raw, err := s.meta.Get(planIDCounterKey)
	switch {
	case err == nil:
		if err := codec.Unmarshal(raw, &last); err != nil {
			return 0, fmt.Errorf("billing: decoding plan-id counter: %w", err)
		}
	case errors.Is(err, kv.ErrNotFound):
		// First plan ever.
	default:
		return 0, err
	}

	// Advance past any ID that is still occupied. The counter wraps
	// only after 2^64 plans, but the occupancy check keeps even that
	// case correct.
	id := last + 1
	for {
		_, err := s.plans.Get(planKey(PlanID(id)))
		if errors.Is(err, kv.ErrNotFound) {
			break
		}
		if err != nil {
			return 0, err
		}
		id++
	}

	encoded, err := codec.Marshal(id)
	if err != nil {
		return 0, err
	}
	if err := s.meta.Set(planIDCounterKey, encoded); err != nil {
		return 0, err
	}
	return PlanID(id), nil
}

func (s *state) getPlan(id PlanID) (Plan, error) {
	raw, err := s.plans.Get(planKey(id))
	if errors.Is(err, kv.ErrNotFound) {
		return Plan{}, fmt.Errorf("%w: %d", ErrPlanNotFound, id)
	}
	if err != nil {
		return Plan{}, err
	}
	var plan Plan
	if err := codec.Unmarshal(raw, &plan); err != nil {
		return Plan{}, fmt.Errorf("billing: decoding plan %d: %w", id, err)
	}
	return plan, nil
}

func (s *state) putPlan(plan Plan) error {
	encoded, err := codec.Marshal(plan)
	if err != nil {
		return err
	}
	return s.plans.Set(planKey(plan.ID), encoded)
}

func (s *state) deletePlan(id PlanID) error {
	return s.plans.Delete(planKey(id))
}

func (s *state) getSubscription(id PlanID, subscriber string) (Subscription, error) {
	raw, err := s.subs.Get(subscriptionKey(id, subscriber))
	if errors.Is(err, kv.ErrNotFound) {
		return Subscription{}, fmt.Errorf("%w: plan %d subscriber %q", ErrSubscriptionNotFound, id, subscriber)
	}
	if err != nil {
		return Subscription{}, err
	}
	var sub Subscription
	if err := codec.Unmarshal(raw, &sub); err != nil {
		return Subscription{}, fmt.Errorf("billing: decoding subscription: %w", err)
	}
	return sub, nil
}

func (s *state) hasSubscription(id PlanID, subscriber string) (bool, error) {
	_, err := s.subs.Get(subscriptionKey(id, subscriber))
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *state) putSubscription(id PlanID, subscriber string, sub Subscription) error {
	encoded, err := codec.Marshal(sub)
	if err != nil {
		return err
	}
	return s.subs.Set(subscriptionKey(id, subscriber), encoded)
}

func (s *state) deleteSubscription(id PlanID, subscriber string) error {
	return s.subs.Delete(subscriptionKey(id, subscriber))
}

// SubscriptionEntry pairs a subscriber with their subscription record
// in listings.
type SubscriptionEntry struct {
	Subscriber   string       `json:"subscriber"`
	Subscription Subscription `json:"subscription"`
}

// listSubscriptions scans the plan's subscribers in ascending
// subscriber order, starting strictly after startAfter when non-empty.
// limit <= 0 means no cap (plan termination walks everything).
func (s *state) listSubscriptions(id PlanID, startAfter string, limit int) ([]SubscriptionEntry, error) {
	lower := planKey(id)
	if startAfter != "" {
		lower = kv.KeySuccessor(subscriptionKey(id, startAfter))
	}
	upper := planKey(id + 1)
	if id == ^PlanID(0) {
		upper = nil
	}

	raw, err := s.subs.Range(lower, upper, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]SubscriptionEntry, 0, len(raw))
	for _, pair := range raw {
		var sub Subscription
		if err := codec.Unmarshal(pair.Value, &sub); err != nil {
			return nil, fmt.Errorf("billing: decoding subscription: %w", err)
		}
		entries = append(entries, SubscriptionEntry{
			Subscriber:   string(pair.Key[8:]),
			Subscription: sub,
		})
	}
	return entries, nil
}

// listPlans scans plans in ascending ID order, starting strictly
// after startAfter when non-zero.
func (s *state) listPlans(startAfter PlanID, limit int) ([]Plan, error) {
	var lower []byte
	if startAfter != 0 {
		lower = kv.KeySuccessor(planKey(startAfter))
	}
	raw, err := s.plans.Range(lower, nil, limit)
	if err != nil {
		return nil, err
	}

	plans := make([]Plan, 0, len(raw))
	for _, pair := range raw {
		var plan Plan
		if err := codec.Unmarshal(pair.Value, &plan); err != nil {
			return nil, fmt.Errorf("billing: decoding plan: %w", err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
