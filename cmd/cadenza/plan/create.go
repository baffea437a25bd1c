// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/cadenza-foundation/cadenza/cmd/cadenza/cli"
	"github.com/cadenza-foundation/cadenza/lib/billing"
	"github.com/cadenza-foundation/cadenza/lib/cron"
)

type createParams struct {
	cli.JSONOutput
	cli.StoreConfig
	Owner string `flag:"owner" desc:"account that owns the plan and receives collections"`
}

// definition is the on-disk plan definition format. The file is JSONC:
// JSON with // and /* */ comments and trailing commas, so definitions
// can be annotated and kept in version control.
type definition struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Token       string `json:"token"`
	Amount      uint64 `json:"amount"`
	Cron        string `json:"cron"`
	TZOffset    int    `json:"tz_offset"`
}

func createCommand() *cli.Command {
	var params createParams

	return &cli.Command{
		Name:    "create",
		Summary: "Create a plan from a definition file",
		Usage:   "cadenza plan create --owner <account> <definition.jsonc>",
		Description: `Create a payment plan from a JSONC definition file.

The definition names the plan's title, token, amount, cron expression,
and timezone offset. The cron expression is compiled at creation time;
definitions that can never fire (an empty field set) are rejected.`,
		Params: func() any { return &params },
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected <definition-file>, got %d args", len(args))
			}
			if params.Owner == "" {
				return fmt.Errorf("--owner is required")
			}

			content, err := loadDefinition(args[0])
			if err != nil {
				return err
			}

			engine, closeStore, err := params.OpenEngine()
			if err != nil {
				return err
			}
			defer closeStore()

			created, _, err := engine.CreatePlan(params.Owner, content)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(created); done {
				return err
			}
			fmt.Printf("created plan %d (%s: %d %s)\n",
				created.ID, created.Content.Title, created.Content.Amount, created.Content.Token)
			return nil
		},
		Examples: []cli.Example{
			{
				Description: "Create a plan owned by the merchant account",
				Command:     "cadenza plan create --owner merchant gym.jsonc",
			},
		},
	}
}

// loadDefinition reads and compiles a JSONC plan definition file.
func loadDefinition(path string) (billing.PlanContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return billing.PlanContent{}, err
	}

	var def definition
	if err := json.Unmarshal(jsonc.ToJSON(data), &def); err != nil {
		return billing.PlanContent{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	spec, err := cron.Parse(def.Cron)
	if err != nil {
		return billing.PlanContent{}, fmt.Errorf("%s: cron expression: %w", path, err)
	}
	schedule, err := spec.Compile()
	if err != nil {
		return billing.PlanContent{}, fmt.Errorf("%s: cron expression: %w", path, err)
	}

	content := billing.PlanContent{
		Title:       def.Title,
		Description: def.Description,
		Token:       def.Token,
		Amount:      def.Amount,
		Schedule:    schedule,
		TZOffset:    def.TZOffset,
	}
	if err := content.Validate(); err != nil {
		return billing.PlanContent{}, fmt.Errorf("%s: %w", path, err)
	}
	return content, nil
}
