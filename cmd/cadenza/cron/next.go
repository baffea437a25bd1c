// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"fmt"
	"time"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
	libcron "github.com/cadenza-foundation/cadenza/lib/cron"
)

type nextParams struct {
	cli.JSONOutput
	From     int64 `flag:"from" desc:"start scanning after this Unix timestamp (default: now)"`
	Count    int   `flag:"count,n" default:"1" desc:"number of occurrences to print"`
	TZOffset int   `flag:"tz-offset" desc:"schedule timezone, seconds east of UTC"`
}

type occurrence struct {
	Timestamp int64  `json:"timestamp"`
	Time      string `json:"time"`
}

func nextCommand() *cli.Command {
	var params nextParams

	return &cli.Command{
		Name:    "next",
		Summary: "Print upcoming occurrences of a schedule",
		Usage:   "cadenza cron next [flags] <expression>",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected <expression>, got %d args", len(args))
			}
			if !libcron.ValidOffset(params.TZOffset) {
				return fmt.Errorf("tz-offset %d out of range", params.TZOffset)
			}
			if params.Count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", params.Count)
			}

			spec, err := libcron.Parse(args[0])
			if err != nil {
				return err
			}
			schedule, err := spec.Compile()
			if err != nil {
				return err
			}

			from := time.Now()
			if params.From != 0 {
				from = time.Unix(params.From, 0)
			}

			var occurrences []occurrence
			cursor := from
			for i := 0; i < params.Count; i++ {
				next, err := schedule.Next(cursor, params.TZOffset)
				if err != nil {
					return err
				}
				occurrences = append(occurrences, occurrence{
					Timestamp: next.Unix(),
					Time:      next.UTC().Format(time.RFC3339),
				})
				cursor = next
			}

			if done, err := params.EmitJSON(occurrences); done {
				return err
			}
			for _, occ := range occurrences {
				fmt.Printf("%d\t%s\n", occ.Timestamp, occ.Time)
			}
			return nil
		},
		Examples: []cli.Example{
			{
				Description: "Next five weekday-morning occurrences",
				Command:     "cadenza cron next -n 5 '0 9 * * 1-5'",
			},
			{
				Description: "First occurrence after a fixed instant",
				Command:     "cadenza cron next --from 1767225600 '0 0 1 * *'",
			},
		},
	}
}
