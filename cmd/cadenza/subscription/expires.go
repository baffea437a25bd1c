// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package subscription

import (
	"fmt"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
)

type expiresParams struct {
	cli.JSONOutput
	cli.StoreConfig
	Subscriber string `flag:"subscriber" desc:"the subscribing account"`
	Expires    int64  `flag:"expires" desc:"new expiry as Unix time (0: never)"`
}

func expiresCommand() *cli.Command {
	var params expiresParams

	return &cli.Command{
		Name:    "expires",
		Summary: "Change a subscription's expiry",
		Usage:   "cadenza subscription expires --subscriber <account> --expires <unix-time> <plan-id>",
		Params:  func() any { return &params },
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

			events, err := engine.UpdateExpires(params.Subscriber, id, params.Expires)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(events); done {
				return err
			}
			if params.Expires == 0 {
				fmt.Printf("subscription of %s to plan %d no longer expires\n", params.Subscriber, id)
			} else {
				fmt.Printf("subscription of %s to plan %d now expires at %d\n", params.Subscriber, id, params.Expires)
			}
			return nil
		},
	}
}
