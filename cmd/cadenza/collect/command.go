// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package collect implements the "cadenza collect" command group: a
// one-shot view of the due queue and a manual collection pass, the
// same operations the collector daemon runs on a timer.
package collect

import "github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"

// Command returns the "collect" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "collect",
		Summary: "Inspect and run collections",
		Subcommands: []*cli.Command{
			dueCommand(),
			runCommand(),
		},
	}
}
