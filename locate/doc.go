// Package locate implements two strategies for finding the critical value of
// an egg-drop style search: the highest position in [1, N] at which a probe
// still survives.
//
// DeterministicLocator bisects the range and always probes the midpoint.
// StochasticLocator probes a uniformly random position of the remaining range
// and models noisy observations: a probe at or below the critical value is
// misreported as a break with probability alpha. Because of those false breaks
// the stochastic search converges to an interval, not necessarily to the
// critical value itself.
package locate
