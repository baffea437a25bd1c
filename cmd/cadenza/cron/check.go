// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"fmt"
	"strconv"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
	libcron "github.com/cadenza-foundation/cadenza/lib/cron"
)

type checkParams struct {
	cli.JSONOutput
	TZOffset int `flag:"tz-offset" desc:"schedule timezone, seconds east of UTC"`
}

type checkResult struct {
	Expression string `json:"expression"`
	Timestamp  int64  `json:"timestamp"`
	Matches    bool   `json:"matches"`
}

func checkCommand() *cli.Command {
	var params checkParams

	return &cli.Command{
		Name:    "check",
		Summary: "Test whether a timestamp is an occurrence",
		Usage:   "cadenza cron check [flags] <expression> <unix-timestamp>",
		Description: `Compile a cron expression and test a Unix timestamp against it.

Exits 0 when the timestamp is an occurrence of the schedule, 1 when it
is not. Compilation errors (bad syntax, out-of-range values, empty
fields) exit with an error message.`,
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected <expression> and <unix-timestamp>, got %d args", len(args))
			}
			if !libcron.ValidOffset(params.TZOffset) {
				return fmt.Errorf("tz-offset %d out of range", params.TZOffset)
			}

			spec, err := libcron.Parse(args[0])
			if err != nil {
				return err
			}
			schedule, err := spec.Compile()
			if err != nil {
				return err
			}

			timestamp, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid timestamp %q: %w", args[1], err)
			}

			matches := schedule.MatchesUnix(timestamp, params.TZOffset)
			result := checkResult{Expression: args[0], Timestamp: timestamp, Matches: matches}
			if done, err := params.EmitJSON(result); done {
				if err != nil {
					return err
				}
			} else if matches {
				fmt.Printf("%d is an occurrence of %q\n", timestamp, args[0])
			} else {
				fmt.Printf("%d is not an occurrence of %q\n", timestamp, args[0])
			}

			if !matches {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
		Examples: []cli.Example{
			{
				Description: "Midnight on the first of the month",
				Command:     "cadenza cron check '0 0 1 * *' 1767225600",
			},
			{
				Description: "Evaluate in UTC+9",
				Command:     "cadenza cron check --tz-offset 32400 '0 9 * * 1' 1767430800",
			},
		},
	}
}
