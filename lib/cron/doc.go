// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package cron parses, compiles, and matches 5-field crontab
// expressions describing recurring collection instants.
//
// Supported syntax:
//
//	┌───────────── minute (0-59)
//	│ ┌───────────── hour (0-23)
//	│ │ ┌───────────── day of month (1-31)
//	│ │ │ ┌───────────── month (1-12)
//	│ │ │ │ ┌───────────── day of week (0-6, 0=Sunday)
//	│ │ │ │ │
//	* * * * *
//
// Each field supports single values (5), ranges (1-5), lists (1,3,5),
// steps (*/15, 1-30/5), and the wildcard. No @yearly shortcuts, no
// seconds field, no named days/months.
//
// The pipeline has three stages:
//
//	text --Parse--> Spec --Compile--> Schedule
//
// Parse turns the expression into a Spec, a list of terms per field
// validated only against the 0-63 token bound. Compile checks each
// field against its numeric domain and produces a Schedule of five
// [bitset.Set] values — the compact form persisted inside a plan. A
// Spec is transient, living only between parse and compile at
// plan-creation time; the Schedule is immutable once stored (plans
// are stopped, never edited).
//
// Matching evaluates a timestamp against a Schedule at a fixed UTC
// offset and resolves to one-minute granularity: a timestamp whose
// local wall-clock second or sub-second component is non-zero never
// matches any schedule.
package cron
