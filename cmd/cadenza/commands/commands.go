// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete Cadenza CLI command tree.
package commands

import (
	"fmt"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
	collectcmd "github.com/cadenza-foundation/cadenza/cmd/cadenza/collect"
	croncmd "github.com/cadenza-foundation/cadenza/cmd/cadenza/cron"
	plancmd "github.com/cadenza-foundation/cadenza/cmd/cadenza/plan"
	subscriptioncmd "github.com/cadenza-foundation/cadenza/cmd/cadenza/subscription"
	"github.com/cadenza-foundation/cadenza/lib/version"
)

// Root builds and returns the complete Cadenza CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "cadenza",
		Description: `Cadenza: recurring payment collection scheduler.

Define payment plans on cron schedules, subscribe accounts to them,
and collect every due payment exactly once through a time-ordered due
queue.`,
		Subcommands: []*cli.Command{
			plancmd.Command(),
			subscriptioncmd.Command(),
			collectcmd.Command(),
			croncmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("cadenza %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
