package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/observe-l/eggdrop/internal/sim"
	"github.com/observe-l/eggdrop/locate"
)

func (a *app) evalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Monte Carlo evaluation of the stochastic search over a list of alphas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base := sim.Scenario{
				TotalSize:     a.cfg.TotalSize,
				CriticalValue: a.cfg.CriticalValue,
				MaxAttempts:   a.cfg.MaxAttempts,
				Trials:        a.cfg.Trials,
				Seed:          a.cfg.Seed,
				Workers:       a.cfg.Workers,
			}
			sums, err := sim.Sweep(cmd.Context(), base, a.cfg.Alphas, nil)
			if err != nil {
				return err
			}
			for _, s := range sums {
				a.log.Info("scenario finished",
					zap.Float64("alpha", s.Scenario.Alpha),
					zap.Int("trials", s.Trials),
					zap.Float64("hit_rate", s.HitRate()),
					zap.Float64("mean_drops", s.MeanDrops),
				)
			}
			fmt.Fprintf(a.out, "range 1..%d, critical value %d, %d trials per alpha\n",
				base.TotalSize, base.CriticalValue, base.Trials)
			sim.WriteReport(a.out, sums)
			if a.cfg.Report != "" {
				if err := sim.WriteMarkdownReport(a.cfg.Report, sums); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Fprintf(a.out, "report written to %s\n", a.cfg.Report)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	rangeFlags(fs)
	fs.Int64("seed", 42, "base random seed; worker i uses seed+i")
	fs.Int("max-attempts", locate.DefaultMaxAttempts, "attempt budget of each search")
	fs.Int("trials", 1000, "searches per alpha")
	fs.Int("workers", 4, "parallel workers")
	fs.Float64Slice("alphas", []float64{0, 0.1, 0.25, 0.5, 0.75}, "false-break probabilities to evaluate")
	fs.String("report", "", "optional markdown report path, e.g. docs/reports/eval.md")
	return cmd
}
