// Package metrics exports search activity as Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/observe-l/eggdrop/locate"
)

// Probe results used as the "result" label.
const (
	ResultSurvive    = "survive"
	ResultBreak      = "break"
	ResultFalseBreak = "false_break"
)

// Collector counts probes and outcomes. It implements locate.Observer and is
// safe for concurrent use.
type Collector struct {
	probes   *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	attempts *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg. A nil reg skips
// registration.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eggdrop",
			Name:      "probes_total",
			Help:      "Probes performed, by variant and observed result.",
		}, []string{"variant", "result"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eggdrop",
			Name:      "outcomes_total",
			Help:      "Finished stochastic searches, by certainty.",
		}, []string{"certainty"}),
		attempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eggdrop",
			Name:      "attempts",
			Help:      "Attempts per finished search.",
			Buckets:   []float64{0, 1, 2, 4, 7, 10, 15, 25, 50, 75, 100},
		}, []string{"variant"}),
	}
	if reg != nil {
		for _, col := range []prometheus.Collector{c.probes, c.outcomes, c.attempts} {
			if err := reg.Register(col); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *Collector) OnProbe(p locate.Probe) {
	result := ResultSurvive
	switch {
	case p.FalseBreak:
		result = ResultFalseBreak
	case p.Broke:
		result = ResultBreak
	}
	c.probes.WithLabelValues(string(p.Variant), result).Inc()
}

// ObserveOutcome records a finished stochastic search.
func (c *Collector) ObserveOutcome(o locate.Outcome) {
	c.outcomes.WithLabelValues(o.Certainty.String()).Inc()
	c.attempts.WithLabelValues(string(locate.VariantStochastic)).Observe(float64(o.Drops))
}

// ObserveAttempts records a finished deterministic search.
func (c *Collector) ObserveAttempts(n int) {
	c.attempts.WithLabelValues(string(locate.VariantDeterministic)).Observe(float64(n))
}
