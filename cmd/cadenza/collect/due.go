// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package collect

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
)

type dueParams struct {
	cli.JSONOutput
	cli.StoreConfig
	Now   int64 `flag:"now" desc:"evaluate due-ness at this Unix time (default: now)"`
	Limit int   `flag:"limit,l" default:"10" desc:"page size (max 30)"`
}

func dueCommand() *cli.Command {
	var params dueParams

	return &cli.Command{
		Name:    "due",
		Summary: "List queue entries due for collection",
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

			now := params.Now
			if now == 0 {
				now = time.Now().Unix()
			}

			entries, err := engine.Collectible(now, params.Limit, nil)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(entries); done {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "DUE\tPLAN\tSUBSCRIBER")
			for _, entry := range entries {
				fmt.Fprintf(tw, "%d\t%d\t%s\n", entry.Key.Due, entry.Key.Plan, entry.Key.Subscriber)
			}
			return tw.Flush()
		},
	}
}
