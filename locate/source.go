package locate

import (
	"math/rand"
	"time"
)

//go:generate mockgen -destination=mock_source_test.go -package=locate_test . Source

// Source is the random stream consumed by StochasticLocator. *rand.Rand
// satisfies it.
type Source interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// NewSource returns a seeded Source. Identical seeds yield identical streams.
func NewSource(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

// TimeSeed returns a seed derived from the wall clock.
func TimeSeed() int64 { return time.Now().UnixNano() }

// between returns a uniform integer in [lo, hi].
func between(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo+1)
}
