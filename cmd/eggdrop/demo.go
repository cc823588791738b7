package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/observe-l/eggdrop/locate"
)

// Fixed demo parameters.
const (
	demoTotal              = 100
	demoDeterministicValue = 63
	demoStochasticValue    = 75
	demoAlpha              = locate.DefaultAlpha
)

func (a *app) demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run both searches on 100 positions (critical 63 and 75, alpha 0.5)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rule := "----------------------------------------------------------------"
			fmt.Fprintln(a.out, rule)
			if _, err := a.runDeterministic(a.out, demoTotal, demoDeterministicValue); err != nil {
				return err
			}
			fmt.Fprintln(a.out, rule)
			if _, err := a.runStochastic(a.out, demoTotal, demoStochasticValue, demoAlpha, a.cfg.Seed, nil); err != nil {
				return err
			}
			fmt.Fprintln(a.out, rule)
			fmt.Fprintln(a.out, "the stochastic result varies with --seed")
			return nil
		},
	}
	cmd.Flags().Int64("seed", 42, "random seed of the stochastic search")
	return cmd
}
