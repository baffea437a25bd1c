// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package billing

import (
	"time"
)

// ProposeCollections scans the due queue for entries due at or before
// now and turns each into a CollectionItem whose Next is the first
// schedule occurrence after the due time. limit is clamped to the
// query page cap. The returned cursor resumes the scan where this
// page ended; it is nil when the scan is exhausted.
//
// Entries whose plan has vanished or whose schedule yields no further
// occurrence are logged and left out of the proposal; Collect will
// later report them if they are still inconsistent.
func (e *Engine) ProposeCollections(now int64, limit int, cursor []byte) ([]CollectionItem, []byte, error) {
	// Collectible clamps too; clamping here keeps the end-of-scan
	// comparison below in agreement with the page actually fetched.
	limit = clampLimit(limit)
	entries, err := e.Collectible(now, limit, cursor)
	if err != nil {
		return nil, nil, err
	}

	var items []CollectionItem
	var last []byte
	for _, entry := range entries {
		last = entry.Cursor
		item, ok := e.proposeOne(entry.Key.Plan, entry.Key.Subscriber, entry.Key.Due)
		if !ok {
			continue
		}
		items = append(items, item)
	}

	if len(entries) < limit {
		last = nil
	}
	return items, last, nil
}

func (e *Engine) proposeOne(planID uint64, subscriber string, due int64) (CollectionItem, bool) {
	plan, err := e.Plan(PlanID(planID))
	if err != nil {
		e.logger.Warn("due entry without plan", "plan_id", planID, "subscriber", subscriber, "err", err)
		return CollectionItem{}, false
	}

	next, err := plan.Content.Schedule.Next(time.Unix(due, 0), plan.Content.TZOffset)
	if err != nil {
		e.logger.Warn("no next occurrence for due entry",
			"plan_id", planID, "subscriber", subscriber, "due", due, "err", err)
		return CollectionItem{}, false
	}

	return CollectionItem{
		PlanID:     PlanID(planID),
		Subscriber: subscriber,
		Current:    due,
		Next:       next.Unix(),
	}, true
}
