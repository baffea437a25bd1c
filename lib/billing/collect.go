// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"errors"
	"fmt"

	"github.com/cadenza-foundation/cadenza/lib/kv"
)

// CollectionItem is one proposed collection: the subscription to
// collect from, the due time being collected (Current, which must be
// the subscription's recorded next collection time), and the proposed
// new next collection time.
type CollectionItem struct {
	PlanID     PlanID `json:"plan_id"`
	Subscriber string `json:"subscriber"`
	Current    int64  `json:"current"`
	Next       int64  `json:"next"`
}

// Collection is a transfer instruction produced by a successful
// collection. The engine does not move funds itself; the caller
// settles each instruction against its payment rail.
type Collection struct {
	PlanID     PlanID `json:"plan_id"`
	Subscriber string `json:"subscriber"`
	Owner      string `json:"owner"`
	Token      string `json:"token"`
	Amount     uint64 `json:"amount"`
}

// Skip records one item the engine declined to collect, with the
// reason. Skipped items leave the store untouched; the remainder of
// the batch still commits.
type Skip struct {
	Item   CollectionItem `json:"item"`
	Reason string         `json:"reason"`
}

// CollectResult reports the outcome of a Collect batch.
type CollectResult struct {
	Collections []Collection `json:"collections"`
	Skipped     []Skip       `json:"skipped,omitempty"`
}

// Collect processes a batch of proposed collections in one
// transaction. For each item it checks that the plan and subscription
// still exist, that Current matches the subscription's recorded next
// collection time, that both Current and Next are occurrences of the
// plan's schedule, and that Next advances past Current. Items failing
// any check are skipped and reported; valid items advance the
// subscription and reschedule its due-queue entry.
//
// A store fault past the checks — a failed queue move or subscription
// write — is not a skip: it means the index and the subscription
// table disagree, so the error aborts the batch and the transaction
// discards every write, including the other items'.
//
// Collection past a subscription's expiry is permitted when the due
// time itself precedes the expiry: the subscriber owes every
// occurrence that fell within the paid-up window.
func (e *Engine) Collect(items []CollectionItem) (CollectResult, error) {
	var result CollectResult
	err := e.store.Update(func(tx kv.Store) error {
		state := newState(tx)
		for _, item := range items {
			reason, err := state.collectOne(item, &result)
			if err != nil {
				return err
			}
			if reason != "" {
				result.Skipped = append(result.Skipped, Skip{Item: item, Reason: reason})
			}
		}
		return nil
	})
	if err != nil {
		return CollectResult{}, err
	}

	for _, skip := range result.Skipped {
		e.logger.Warn("collection skipped",
			"plan_id", skip.Item.PlanID,
			"subscriber", skip.Item.Subscriber,
			"due", skip.Item.Current,
			"reason", skip.Reason)
	}
	e.logger.Debug("collection batch processed",
		"collected", len(result.Collections), "skipped", len(result.Skipped))
	return result, nil
}

// collectOne applies a single item, returning a non-empty skip reason
// when the item cannot be collected. It writes to the store only
// after every check passes, so a skipped item never leaves partial
// state; an error from those writes is a consistency fault that must
// abort the enclosing transaction, never a skip.
func (s *state) collectOne(item CollectionItem, result *CollectResult) (string, error) {
	if item.Next <= item.Current {
		return fmt.Sprintf("next collection time %d does not advance past %d", item.Next, item.Current), nil
	}

	plan, err := s.getPlan(item.PlanID)
	if errors.Is(err, ErrPlanNotFound) {
		return fmt.Sprintf("plan lookup: %v", err), nil
	} else if err != nil {
		return "", err
	}
	sub, err := s.getSubscription(item.PlanID, item.Subscriber)
	if errors.Is(err, ErrSubscriptionNotFound) {
		return fmt.Sprintf("subscription lookup: %v", err), nil
	} else if err != nil {
		return "", err
	}

	if item.Current != sub.NextCollectionTime {
		return fmt.Sprintf("due time %d does not match recorded next collection time %d",
			item.Current, sub.NextCollectionTime), nil
	}
	if item.Current <= sub.LastCollectionTime {
		return fmt.Sprintf("due time %d does not advance past last collection time %d",
			item.Current, sub.LastCollectionTime), nil
	}
	if sub.Expired(item.Current) {
		return fmt.Sprintf("subscription expired at %d", sub.Expires), nil
	}
	if !plan.Content.VerifyTimestamp(item.Current) {
		return fmt.Sprintf("due time %d is not an occurrence of the schedule", item.Current), nil
	}
	if !plan.Content.VerifyTimestamp(item.Next) {
		return fmt.Sprintf("next collection time %d is not an occurrence of the schedule", item.Next), nil
	}

	if err := s.queue.Reschedule(uint64(item.PlanID), item.Subscriber,
		sub.NextCollectionTime, item.Next); err != nil {
		return "", fmt.Errorf("billing: collecting plan %d subscriber %q: %w",
			item.PlanID, item.Subscriber, err)
	}
	sub.LastCollectionTime = item.Current
	sub.NextCollectionTime = item.Next
	if err := s.putSubscription(item.PlanID, item.Subscriber, sub); err != nil {
		return "", fmt.Errorf("billing: collecting plan %d subscriber %q: %w",
			item.PlanID, item.Subscriber, err)
	}

	result.Collections = append(result.Collections, Collection{
		PlanID:     item.PlanID,
		Subscriber: item.Subscriber,
		Owner:      plan.Owner,
		Token:      plan.Content.Token,
		Amount:     plan.Content.Amount,
	})
	return "", nil
}
