// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package collect

import (
	"fmt"
	"time"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
	"github.com/cadenza-foundation/cadenza/lib/billing"
)

type runParams struct {
	cli.JSONOutput
	cli.StoreConfig
	Now    int64 `flag:"now" desc:"evaluate due-ness at this Unix time (default: now)"`
	Limit  int   `flag:"limit,l" default:"30" desc:"max collections per pass (max 30)"`
	DryRun bool  `flag:"dry-run" desc:"print proposed collections without applying them"`
}

func runCommand() *cli.Command {
	var params runParams

	return &cli.Command{
		Name:    "run",
		Summary: "Collect everything currently due",
		Description: `Run one collection pass over the due queue.

Each due entry is proposed for collection at its recorded due time and
rescheduled to the next schedule occurrence. Inconsistent entries are
skipped and reported, never silently dropped. This is the same pass
the collector daemon runs on its poll interval.`,
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected args %v", args)
			}

			engine, closeStore, err := params.OpenEngine()
			if err != nil {
				return err
			}
			defer closeStore()

			now := params.Now
			if now == 0 {
				now = time.Now().Unix()
			}

			items, _, err := engine.ProposeCollections(now, params.Limit, nil)
			if err != nil {
				return err
			}

			if params.DryRun {
				if done, err := params.EmitJSON(items); done {
					return err
				}
				for _, item := range items {
					fmt.Printf("would collect plan %d from %s (due %d, next %d)\n",
						item.PlanID, item.Subscriber, item.Current, item.Next)
				}
				return nil
			}

			result, err := engine.Collect(items)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(result); done {
				return err
			}
			printResult(result)
			return nil
		},
		Examples: []cli.Example{
			{
				Description: "Preview without collecting",
				Command:     "cadenza collect run --dry-run",
			},
		},
	}
}

func printResult(result billing.CollectResult) {
	for _, c := range result.Collections {
		fmt.Printf("collected %d %s from %s for plan %d (owner %s)\n",
			c.Amount, c.Token, c.Subscriber, c.PlanID, c.Owner)
	}
	for _, skip := range result.Skipped {
		fmt.Printf("skipped plan %d subscriber %s: %s\n",
			skip.Item.PlanID, skip.Item.Subscriber, skip.Reason)
	}
	fmt.Printf("%d collected, %d skipped\n", len(result.Collections), len(result.Skipped))
}
