// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cadenza-foundation/cadenza/lib/clock"
	"github.com/cadenza-foundation/cadenza/lib/duequeue"
	"github.com/cadenza-foundation/cadenza/lib/kv"
)

// Page limits for listing queries, matching the wire defaults.
const (
	defaultPageLimit = 10
	maxPageLimit     = 30
)

// Engine executes ledger operations over a transactional store. One
// external call maps to one Engine method call; each mutating method
// applies all of its writes or none.
//
// Engine is not safe for concurrent use — the execution model is
// single-invocation, run-to-completion.
type Engine struct {
	store  kv.Transactional
	clock  clock.Clock
	logger *slog.Logger
}

// New returns an Engine over store. A nil clk defaults to the real
// clock; a nil logger discards debug output.
func New(store kv.Transactional, clk clock.Clock, logger *slog.Logger) *Engine {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{store: store, clock: clk, logger: logger}
}

// CreatePlan validates content, assigns the next plan ID, and
// persists the plan. The caller is the owner.
func (e *Engine) CreatePlan(owner string, content PlanContent) (Plan, []Event, error) {
	if owner == "" {
		return Plan{}, nil, fmt.Errorf("%w: empty owner", ErrInvalidContent)
	}
	if err := content.Validate(); err != nil {
		return Plan{}, nil, err
	}

	var plan Plan
	err := e.store.Update(func(tx kv.Store) error {
		state := newState(tx)
		id, err := state.nextPlanID()
		if err != nil {
			return err
		}
		plan = Plan{ID: id, Owner: owner, Content: content}
		return state.putPlan(plan)
	})
	if err != nil {
		return Plan{}, nil, err
	}

	e.logger.Debug("plan created", "plan_id", plan.ID, "owner", owner, "title", content.Title)
	return plan, []Event{{Action: ActionCreatePlan, PlanID: plan.ID}}, nil
}

// StopPlan terminates a plan: every subscriber is unsubscribed, every
// due-queue entry removed, and the plan deleted, all in one
// transaction. Only the owner may stop a plan.
func (e *Engine) StopPlan(caller string, id PlanID) ([]Event, error) {
	var events []Event
	err := e.store.Update(func(tx kv.Store) error {
		state := newState(tx)
		plan, err := state.getPlan(id)
		if err != nil {
			return err
		}
		if plan.Owner != caller {
			return fmt.Errorf("%w: plan %d", ErrNotPlanOwner, id)
		}

		entries, err := state.listSubscriptions(id, "", 0)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := state.deleteSubscription(id, entry.Subscriber); err != nil {
				return err
			}
			if err := state.queue.Unschedule(uint64(id), entry.Subscriber,
				entry.Subscription.NextCollectionTime); err != nil {
				return err
			}
			events = append(events, Event{
				Action:     ActionUnsubscribe,
				PlanID:     id,
				Subscriber: entry.Subscriber,
			})
		}

		if err := state.deletePlan(id); err != nil {
			return err
		}
		events = append(events, Event{Action: ActionStopPlan, PlanID: id})
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("plan stopped", "plan_id", id, "unsubscribed", len(events)-1)
	return events, nil
}

// Subscribe creates the subscription and its due-queue entry. The
// proposed next collection time must lie in the future and be an
// occurrence of the plan's schedule.
func (e *Engine) Subscribe(subscriber string, id PlanID, expires, nextCollectionTime int64) ([]Event, error) {
	if subscriber == "" {
		return nil, fmt.Errorf("%w: empty subscriber", ErrInvalidContent)
	}
	now := e.clock.Now().Unix()
	if expires != 0 && expires <= now {
		return nil, fmt.Errorf("%w: %d is not in the future", ErrInvalidExpires, expires)
	}

	err := e.store.Update(func(tx kv.Store) error {
		state := newState(tx)
		plan, err := state.getPlan(id)
		if err != nil {
			return err
		}

		exists, err := state.hasSubscription(id, subscriber)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: plan %d subscriber %q", ErrSubscriptionExists, id, subscriber)
		}

		if nextCollectionTime <= now {
			return fmt.Errorf("%w: %d is not in the future", ErrInvalidCollectionTime, nextCollectionTime)
		}
		if !plan.Content.VerifyTimestamp(nextCollectionTime) {
			return fmt.Errorf("%w: %d is not an occurrence of plan %d",
				ErrInvalidCollectionTime, nextCollectionTime, id)
		}

		sub := Subscription{
			Expires:            expires,
			LastCollectionTime: now,
			NextCollectionTime: nextCollectionTime,
		}
		if err := state.putSubscription(id, subscriber, sub); err != nil {
			return err
		}
		return state.queue.Schedule(uint64(id), subscriber, nextCollectionTime)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("subscribed", "plan_id", id, "subscriber", subscriber, "next", nextCollectionTime)
	return []Event{{Action: ActionSubscribe, PlanID: id, Subscriber: subscriber}}, nil
}

// Unsubscribe removes the caller's own subscription and its queue
// entry.
func (e *Engine) Unsubscribe(subscriber string, id PlanID) ([]Event, error) {
	err := e.store.Update(func(tx kv.Store) error {
		return newState(tx).removeSubscription(id, subscriber)
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("unsubscribed", "plan_id", id, "subscriber", subscriber)
	return []Event{{Action: ActionUnsubscribe, PlanID: id, Subscriber: subscriber}}, nil
}

// UnsubscribeUser removes a subscription on the subscriber's behalf.
// Only the plan owner may do this.
func (e *Engine) UnsubscribeUser(caller string, id PlanID, subscriber string) ([]Event, error) {
	err := e.store.Update(func(tx kv.Store) error {
		state := newState(tx)
		plan, err := state.getPlan(id)
		if err != nil {
			return err
		}
		if plan.Owner != caller {
			return fmt.Errorf("%w: plan %d", ErrNotPlanOwner, id)
		}
		return state.removeSubscription(id, subscriber)
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("unsubscribed by owner", "plan_id", id, "subscriber", subscriber)
	return []Event{{Action: ActionUnsubscribe, PlanID: id, Subscriber: subscriber}}, nil
}

// removeSubscription deletes the record and its queue entry together.
func (s *state) removeSubscription(id PlanID, subscriber string) error {
	sub, err := s.getSubscription(id, subscriber)
	if err != nil {
		return err
	}
	if err := s.deleteSubscription(id, subscriber); err != nil {
		return err
	}
	return s.queue.Unschedule(uint64(id), subscriber, sub.NextCollectionTime)
}

// UpdateExpires replaces the subscription's expiry. The new expiry
// must be in the future (or zero for never).
func (e *Engine) UpdateExpires(subscriber string, id PlanID, expires int64) ([]Event, error) {
	now := e.clock.Now().Unix()
	if expires != 0 && expires <= now {
		return nil, fmt.Errorf("%w: %d is not in the future", ErrInvalidExpires, expires)
	}

	err := e.store.Update(func(tx kv.Store) error {
		state := newState(tx)
		sub, err := state.getSubscription(id, subscriber)
		if err != nil {
			return err
		}
		sub.Expires = expires
		return state.putSubscription(id, subscriber, sub)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("subscription updated", "plan_id", id, "subscriber", subscriber, "expires", expires)
	return []Event{{Action: ActionUpdateSubscription, PlanID: id, Subscriber: subscriber}}, nil
}

// Plan returns the stored plan.
func (e *Engine) Plan(id PlanID) (Plan, error) {
	return newState(e.store).getPlan(id)
}

// ListPlans returns up to limit plans in ascending ID order, starting
// strictly after startAfter (zero to start from the beginning).
// limit <= 0 applies the default page size; larger requests are
// capped.
func (e *Engine) ListPlans(startAfter PlanID, limit int) ([]Plan, error) {
	return newState(e.store).listPlans(startAfter, clampLimit(limit))
}

// Subscription returns one subscriber's record for a plan.
func (e *Engine) Subscription(id PlanID, subscriber string) (Subscription, error) {
	return newState(e.store).getSubscription(id, subscriber)
}

// ListSubscriptions returns up to limit of the plan's subscriptions
// in ascending subscriber order, starting strictly after startAfter
// (empty to start from the beginning).
func (e *Engine) ListSubscriptions(id PlanID, startAfter string, limit int) ([]SubscriptionEntry, error) {
	return newState(e.store).listSubscriptions(id, startAfter, clampLimit(limit))
}

// Collectible returns up to limit due-queue entries with due time <=
// now, oldest first. The cursor of the last entry resumes the scan.
func (e *Engine) Collectible(now int64, limit int, cursor []byte) ([]duequeue.Entry, error) {
	return newState(e.store).queue.DueBefore(now, clampLimit(limit), cursor)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}
