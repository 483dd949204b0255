package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/violet-vault/backend/internal/funding"
)

func newPlanCommand() *cobra.Command {
	var (
		amount    float64
		mode      string
		envelopes string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print how a paycheck would be distributed across envelopes",
		Long: `Print how a paycheck would be distributed across envelopes.

The envelopes are read from a JSON file containing an array of envelopes
with numeric amounts. Nothing is stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := funding.ParseMode(mode)
			if err != nil {
				return err
			}

			list, err := readEnvelopes(envelopes)
			if err != nil {
				return err
			}

			plan := funding.Calculate(amount, m, list)
			if plan == nil {
				return fmt.Errorf("nothing to plan: the amount must be a positive number")
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(plan)
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "paycheck amount")
	cmd.Flags().StringVar(&mode, "mode", string(funding.ModeAllocate), "allocation mode, allocate or leftover")
	cmd.Flags().StringVar(&envelopes, "envelopes", "", "path to a JSON file with the envelopes")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("envelopes")

	return cmd
}

func readEnvelopes(path string) ([]funding.Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read envelopes: %w", err)
	}

	var envelopes []funding.Envelope
	err = json.Unmarshal(data, &envelopes)
	if err != nil {
		return nil, fmt.Errorf("could not parse envelopes in %s: %w", path, err)
	}

	return envelopes, nil
}
