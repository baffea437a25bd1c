// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package subscription

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
	"github.com/cadenza-foundation/cadenza/lib/billing"
)

type addParams struct {
	cli.JSONOutput
	cli.StoreConfig
	Subscriber string `flag:"subscriber" desc:"account to subscribe"`
	Expires    int64  `flag:"expires" desc:"Unix time the subscription expires (0: never)"`
	Next       int64  `flag:"next" desc:"first collection time (default: first occurrence after now)"`
}

func addCommand() *cli.Command {
	var params addParams

	return &cli.Command{
		Name:    "add",
		Summary: "Subscribe an account to a plan",
		Usage:   "cadenza subscription add --subscriber <account> [flags] <plan-id>",
		Description: `Subscribe an account to a plan.

The first collection time must be a future occurrence of the plan's
schedule. When --next is omitted, the first occurrence after now is
used.`,
		Params: func() any { return &params },
		Run: func(args []string) error {
			id, err := planIDArg(args)
			if err != nil {
				return err
			}
			if params.Subscriber == "" {
				return fmt.Errorf("--subscriber is required")
			}

			engine, closeStore, err := params.OpenEngine()
			if err != nil {
				return err
			}
			defer closeStore()

			next := params.Next
			if next == 0 {
				target, err := engine.Plan(id)
				if err != nil {
					return err
				}
				occurrence, err := target.Content.Schedule.Next(time.Now(), target.Content.TZOffset)
				if err != nil {
					return err
				}
				next = occurrence.Unix()
			}

			events, err := engine.Subscribe(params.Subscriber, id, params.Expires, next)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(events); done {
				return err
			}
			fmt.Printf("subscribed %s to plan %d, first collection at %d\n", params.Subscriber, id, next)
			return nil
		},
		Examples: []cli.Example{
			{
				Description: "Subscribe starting at the next occurrence",
				Command:     "cadenza subscription add --subscriber bob 3",
			},
			{
				Description: "Subscribe with an expiry",
				Command:     "cadenza subscription add --subscriber bob --expires 1798761600 3",
			},
		},
	}
}

// planIDArg parses the single positional plan-ID argument.
func planIDArg(args []string) (billing.PlanID, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected <plan-id>, got %d args", len(args))
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid plan ID %q: %w", args[0], err)
	}
	return billing.PlanID(id), nil
}
