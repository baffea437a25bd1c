// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package subscription implements the "cadenza subscription" command
// group for joining, leaving, and inspecting plan subscriptions.
package subscription

import "github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"

// Command returns the "subscription" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "subscription",
		Summary: "Manage plan subscriptions",
		Description: `Join, leave, and inspect plan subscriptions.

A subscription makes an account collectible under a plan: at every
schedule occurrence from the subscription's next collection time
onward, the collector daemon collects the plan's amount from the
subscriber. An optional expiry bounds how long the subscription keeps
collecting.`,
		Subcommands: []*cli.Command{
			addCommand(),
			removeCommand(),
			expiresCommand(),
			listCommand(),
		},
	}
}
