// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package billing implements the subscription ledger: plans carrying
// a compiled collection schedule, subscriptions carrying their next
// collection time, and the operations that keep the two — plus the
// due-queue index — consistent.
//
// The Engine is the single entry point. Every mutating operation runs
// inside the store's Update boundary and either applies all of its
// writes or none of them; that boundary, not a lock, is what keeps
// the due-queue's one-entry-per-subscription invariant intact when a
// queue move fails halfway.
//
// The engine stays inside the store. It validates, persists, and
// indexes, and for collections it returns transfer instructions for
// the host to dispatch — constructing and sending the actual fund
// transfer (or refund) messages is the host's concern, as is any
// retry policy.
//
// Store layout, all values CBOR:
//
//	meta/planid                      next plan-id counter
//	plans/<id8>                      Plan
//	plan-subs/<id8><subscriber>      Subscription
//	q-collection/<due-queue key>     presence (see lib/duequeue)
//
// <id8> is the plan ID in big-endian, so plan scans ascend
// numerically.
package billing
