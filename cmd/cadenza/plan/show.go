// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"
	"strconv"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
	"github.com/cadenza-foundation/cadenza/lib/billing"
)

type showParams struct {
	cli.JSONOutput
	cli.StoreConfig
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show one plan",
		Usage:   "cadenza plan show <plan-id>",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			id, err := planIDArg(args)
			if err != nil {
				return err
			}

			engine, closeStore, err := params.OpenEngine()
			if err != nil {
				return err
			}
			defer closeStore()

			found, err := engine.Plan(id)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(found); done {
				return err
			}
			fmt.Printf("plan %d\n", found.ID)
			fmt.Printf("  owner:     %s\n", found.Owner)
			fmt.Printf("  title:     %s\n", found.Content.Title)
			if found.Content.Description != "" {
				fmt.Printf("  about:     %s\n", found.Content.Description)
			}
			fmt.Printf("  amount:    %d %s\n", found.Content.Amount, found.Content.Token)
			fmt.Printf("  tz-offset: %+d\n", found.Content.TZOffset)
			return nil
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
