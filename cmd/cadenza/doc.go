// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Cadenza is the unified CLI for a Cadenza ledger. It provides
// subcommands for plan management (plan), subscription management
// (subscription), running and inspecting collections (collect), and
// authoring cron schedules (cron).
package main
