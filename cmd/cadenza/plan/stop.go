// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
)

type stopParams struct {
	cli.JSONOutput
	cli.StoreConfig
	Owner string `flag:"owner" desc:"the plan's owner (only the owner may stop it)"`
}

func stopCommand() *cli.Command {
	var params stopParams

	return &cli.Command{
		Name:    "stop",
		Summary: "Stop a plan and unsubscribe everyone",
		Usage:   "cadenza plan stop --owner <account> <plan-id>",
		Description: `Terminate a plan.

Every subscriber is unsubscribed, every pending collection is removed
from the due queue, and the plan record is deleted, atomically.`,
		Params: func() any { return &params },
		Run: func(args []string) error {
			id, err := planIDArg(args)
			if err != nil {
				return err
			}
			if params.Owner == "" {
				return fmt.Errorf("--owner is required")
			}

			engine, closeStore, err := params.OpenEngine()
			if err != nil {
				return err
			}
			defer closeStore()

			events, err := engine.StopPlan(params.Owner, id)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(events); done {
				return err
			}
			fmt.Printf("stopped plan %d (%d subscriptions removed)\n", id, len(events)-1)
			return nil
		},
	}
}
