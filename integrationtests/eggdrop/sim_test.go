package eggdrop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/observe-l/eggdrop/internal/sim"
	"github.com/observe-l/eggdrop/locate"
)

// Test that more false breaks make exact hits rarer.
func TestHitRateFallsWithAlpha(t *testing.T) {
	base := sim.Scenario{TotalSize: 100, CriticalValue: 75, Trials: 2000, Seed: 42, Workers: 4}
	sums, err := sim.Sweep(context.Background(), base, []float64{0, 0.1, 0.3, 0.9}, nil)
	require.NoError(t, err)
	require.Equal(t, 1.0, sums[0].HitRate())
	require.Less(t, sums[1].HitRate(), sums[0].HitRate())
	require.Less(t, sums[2].HitRate(), sums[1].HitRate())
	require.LessOrEqual(t, sums[3].HitRate(), sums[2].HitRate())
	for _, s := range sums {
		require.LessOrEqual(t, s.MaxDrops, locate.DefaultMaxAttempts)
		require.Equal(t, s.Trials, s.ByCertainty[0]+s.ByCertainty[1]+s.ByCertainty[2])
		t.Logf("alpha=%.2f hit=%.3f mean=%.2f", s.Scenario.Alpha, s.HitRate(), s.MeanDrops)
	}
}

// Test that a tight budget leaves ranges open on a large range.
func TestTightBudgetLeavesRange(t *testing.T) {
	sc := sim.Scenario{TotalSize: 1 << 30, CriticalValue: 1 << 29, Alpha: 0, MaxAttempts: 3, Trials: 200, Seed: 1, Workers: 2}
	s, err := sim.Run(context.Background(), sc, nil)
	require.NoError(t, err)
	require.Equal(t, 200, s.ByCertainty[locate.RangeRemaining])
	require.Equal(t, 3, s.MaxDrops)
	require.Equal(t, 3, s.MinDrops)
}
