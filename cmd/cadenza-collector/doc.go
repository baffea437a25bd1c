// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Cadenza-collector is the collection daemon. On a fixed poll interval
// it scans the due queue for subscriptions whose collection time has
// arrived, collects each exactly once, and reschedules them to their
// next schedule occurrence.
//
// The daemon emits one structured log line per collected transfer and
// per skipped (inconsistent) entry. It does not move funds itself: the
// log stream is the feed a settlement process consumes.
package main
