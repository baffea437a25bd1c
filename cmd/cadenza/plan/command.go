// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package plan implements the "cadenza plan" command group for
// creating, inspecting, and stopping payment plans.
package plan

import "github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"

// Command returns the "plan" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "plan",
		Summary: "Manage payment plans",
		Description: `Create, inspect, and stop payment plans.

A plan names a token, an amount, and a cron schedule at a fixed UTC
offset. Accounts subscribe to plans; the collector daemon then collects
the amount from each subscriber at every schedule occurrence. Plans are
immutable once created: to change one, stop it and create a successor.`,
		Subcommands: []*cli.Command{
			createCommand(),
			listCommand(),
			showCommand(),
			stopCommand(),
		},
	}
}
