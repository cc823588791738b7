package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/observe-l/eggdrop/internal/tracewire"
	"github.com/observe-l/eggdrop/locate"
)

func (a *app) binaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "binary",
		Aliases: []string{"deterministic"},
		Short:   "Bisect the range and report the attempts taken",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.runDeterministic(a.out, a.cfg.TotalSize, a.cfg.CriticalValue)
			return err
		},
	}
	rangeFlags(cmd.Flags())
	return cmd
}

func (a *app) stochasticCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stochastic",
		Short: "Random search with false breaks, bounded by an attempt budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var tw *tracewire.Writer
			if a.cfg.TraceOut != "" {
				f, err := os.Create(a.cfg.TraceOut)
				if err != nil {
					return err
				}
				defer f.Close()
				tw = tracewire.NewWriter(f)
			}
			o, err := a.runStochastic(a.out, a.cfg.TotalSize, a.cfg.CriticalValue, a.cfg.Alpha, a.cfg.Seed, tw)
			if err != nil {
				return err
			}
			if tw == nil {
				return nil
			}
			if err := tw.WriteOutcome(o); err != nil {
				return err
			}
			return tw.Flush()
		},
	}
	rangeFlags(cmd.Flags())
	stochasticFlags(cmd.Flags())
	cmd.Flags().String("trace-out", "", "write a JSON-lines probe trace to this file")
	return cmd
}

func (a *app) runDeterministic(w io.Writer, total, critical int) (int, error) {
	fmt.Fprintf(w, "--- Deterministic search on %d positions ---\n", total)
	fmt.Fprintf(w, "goal: critical value %d\n", critical)
	l := locate.DeterministicLocator{Observer: a.probeObserver(w)}
	n, err := l.Locate(total, critical)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(w, "attempts required to find critical value %d: %d\n", critical, n)
	a.log.Info("deterministic search finished",
		zap.Int("total", total),
		zap.Int("critical", critical),
		zap.Int("attempts", n),
	)
	return n, nil
}

func (a *app) runStochastic(w io.Writer, total, critical int, alpha float64, seed int64, tw *tracewire.Writer) (locate.Outcome, error) {
	fmt.Fprintf(w, "--- Stochastic search on %d positions (alpha=%.2f, seed=%d) ---\n", total, alpha, seed)
	fmt.Fprintf(w, "goal: critical value %d\n", critical)
	obs := a.probeObserver(w)
	if tw != nil {
		obs = locate.Observers{obs, tw}
	}
	l := locate.StochasticLocator{
		Source:      locate.NewSource(seed),
		MaxAttempts: a.cfg.MaxAttempts,
		Observer:    obs,
	}
	o, err := l.Locate(total, critical, alpha)
	if err != nil {
		return o, err
	}
	printOutcome(w, o)
	a.log.Info("stochastic search finished",
		zap.Int("total", total),
		zap.Int("critical", critical),
		zap.Float64("alpha", alpha),
		zap.Int64("seed", seed),
		zap.Stringer("outcome", o),
	)
	return o, nil
}
