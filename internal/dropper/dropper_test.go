package dropper

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixed []float64

func (f *fixed) Float64() float64 {
	v := (*f)[0]
	*f = (*f)[1:]
	return v
}

func TestBernoulliEdges(t *testing.T) {
	draws := fixed{0.0, 0.999, 0.3, 0.7}
	never := New(0, &draws)
	require.False(t, never.Drop())
	always := New(1, &draws)
	require.True(t, always.Drop())
	half := New(0.5, &draws)
	require.True(t, half.Drop())
	require.False(t, half.Drop())
	require.Empty(t, draws, "every Drop must consume exactly one draw")
}

// Test that the empirical rate tracks p.
func TestBernoulliRate(t *testing.T) {
	const n = 200000
	b := New(0.25, rand.New(rand.NewSource(7)))
	hits := 0
	for i := 0; i < n; i++ {
		if b.Drop() {
			hits++
		}
	}
	rate := float64(hits) / n
	require.InDelta(t, 0.25, rate, 0.01)
	t.Logf("rate=%.4f", rate)
}
