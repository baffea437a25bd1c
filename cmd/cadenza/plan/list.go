// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
	"github.com/cadenza-foundation/cadenza/lib/billing"
)

type listParams struct {
	cli.JSONOutput
	cli.StoreConfig
	After uint64 `flag:"after" desc:"resume listing after this plan ID"`
	Limit int    `flag:"limit,l" default:"10" desc:"page size (max 30)"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List plans in ID order",
		Params:  func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected args %v", args)
			}

			engine, closeStore, err := params.OpenEngine()
			if err != nil {
				return err
			}
			defer closeStore()

			plans, err := engine.ListPlans(billing.PlanID(params.After), params.Limit)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(plans); done {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tOWNER\tTITLE\tAMOUNT\tTOKEN")
			for _, p := range plans {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
					p.ID, p.Owner, p.Content.Title, p.Content.Amount, p.Content.Token)
			}
			return tw.Flush()
		},
		Examples: []cli.Example{
			{
				Description: "Second page of plans",
				Command:     "cadenza plan list --after 10",
			},
		},
	}
}
