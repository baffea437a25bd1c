// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package cron implements the "cadenza cron" command group: tools for
// validating cron expressions and previewing their occurrences without
// touching the ledger.
package cron

import "github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"

// Command returns the "cron" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "cron",
		Summary: "Validate and preview cron schedules",
		Description: `Work with cron recurrence expressions.

Cadenza schedules use the classic five-field cron syntax (minute, hour,
day of month, month, day of week) evaluated at a fixed UTC offset. These
commands compile expressions and preview their occurrences without
touching the ledger, which is useful when authoring plan definitions.`,
		Subcommands: []*cli.Command{
			checkCommand(),
			nextCommand(),
		},
	}
}
