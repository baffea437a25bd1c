// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package subscription

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
)

type listParams struct {
	cli.JSONOutput
	cli.StoreConfig
	After string `flag:"after" desc:"resume listing after this subscriber"`
	Limit int    `flag:"limit,l" default:"10" desc:"page size (max 30)"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List a plan's subscriptions",
		Usage:   "cadenza subscription list [flags] <plan-id>",
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

			entries, err := engine.ListSubscriptions(id, params.After, params.Limit)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(entries); done {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "SUBSCRIBER\tNEXT\tLAST\tEXPIRES")
			for _, entry := range entries {
				expires := "never"
				if entry.Subscription.Expires != 0 {
					expires = fmt.Sprintf("%d", entry.Subscription.Expires)
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n",
					entry.Subscriber,
					entry.Subscription.NextCollectionTime,
					entry.Subscription.LastCollectionTime,
					expires)
			}
			return tw.Flush()
		},
	}
}
