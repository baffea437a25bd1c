// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package subscription

import (
	"fmt"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
	"github.com/cadenza-foundation/cadenza/lib/billing"
)

type removeParams struct {
	cli.JSONOutput
	cli.StoreConfig
	Subscriber string `flag:"subscriber" desc:"account to unsubscribe"`
	Owner      string `flag:"owner" desc:"remove on the subscriber's behalf as the plan owner"`
}

func removeCommand() *cli.Command {
	var params removeParams

	return &cli.Command{
		Name:    "remove",
		Summary: "Remove a subscription",
		Usage:   "cadenza subscription remove --subscriber <account> [--owner <account>] <plan-id>",
		Description: `Remove a subscription and its pending collection.

By default this acts as the subscriber leaving the plan. With --owner,
it acts as the plan owner removing the subscriber; the owner check is
enforced.`,
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

			events, err := func() ([]billing.Event, error) {
				if params.Owner != "" {
					return engine.UnsubscribeUser(params.Owner, id, params.Subscriber)
				}
				return engine.Unsubscribe(params.Subscriber, id)
			}()
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(events); done {
				return err
			}
			fmt.Printf("unsubscribed %s from plan %d\n", params.Subscriber, id)
			return nil
		},
	}
}
