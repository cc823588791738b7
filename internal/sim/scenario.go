// Package sim runs Monte Carlo evaluations of the stochastic locator.
package sim

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/observe-l/eggdrop/locate"
)

// Scenario describes one Monte Carlo evaluation.
type Scenario struct {
	TotalSize     int
	CriticalValue int
	Alpha         float64
	MaxAttempts   int
	Trials        int
	Seed          int64
	// Workers run trials in parallel; worker i draws from a source seeded
	// with Seed+i, so results depend on Workers as well as Seed.
	Workers int
}

func (s Scenario) workers() int {
	w := s.Workers
	if w < 1 {
		w = 1
	}
	if w > s.Trials {
		w = s.Trials
	}
	return w
}

// Summary aggregates the outcomes of a scenario.
type Summary struct {
	Scenario Scenario
	Trials   int
	// ByCertainty counts outcomes per locate.Certainty.
	ByCertainty [3]int
	// ExactHits counts closed searches that landed on the critical value.
	ExactHits  int
	FalseBreak int
	Probes     int
	MinDrops   int
	MaxDrops   int
	MeanDrops  float64
	// Deterministic is the attempt count of the bisection search on the
	// same range, for comparison.
	Deterministic int
}

// HitRate returns the fraction of trials that landed on the critical value.
func (s Summary) HitRate() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.ExactHits) / float64(s.Trials)
}

// Rate returns the fraction of trials that ended with certainty c.
func (s Summary) Rate(c locate.Certainty) float64 {
	if s.Trials == 0 || int(c) >= len(s.ByCertainty) {
		return 0
	}
	return float64(s.ByCertainty[c]) / float64(s.Trials)
}

type partial struct {
	trials, hits, falseBreaks, probes int
	byCert                            [3]int
	minDrops, maxDrops, sumDrops      int
}

func (p *partial) add(o locate.Outcome, critical int) {
	p.trials++
	p.byCert[o.Certainty]++
	if v, ok := o.Value(); ok && v == critical {
		p.hits++
	}
	if p.trials == 1 || o.Drops < p.minDrops {
		p.minDrops = o.Drops
	}
	if o.Drops > p.maxDrops {
		p.maxDrops = o.Drops
	}
	p.sumDrops += o.Drops
}

// Run executes sc.Trials stochastic searches split over sc.Workers
// goroutines. obs, if non-nil, receives every probe and must be safe for
// concurrent use. Cancelling ctx stops the workers between trials.
func Run(ctx context.Context, sc Scenario, obs locate.Observer) (Summary, error) {
	if sc.Trials < 1 {
		return Summary{}, fmt.Errorf("sim: trials must be positive, got %d", sc.Trials)
	}
	det, err := locate.Locate(sc.TotalSize, sc.CriticalValue)
	if err != nil {
		return Summary{}, err
	}
	nw := sc.workers()
	parts := make([]partial, nw)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < nw; w++ {
		w := w
		n := sc.Trials / nw
		if w < sc.Trials%nw {
			n++
		}
		g.Go(func() error {
			p := &parts[w]
			l := &locate.StochasticLocator{
				Source:      locate.NewSource(sc.Seed + int64(w)),
				MaxAttempts: sc.MaxAttempts,
				Observer: locate.ObserverFunc(func(pr locate.Probe) {
					p.probes++
					if pr.FalseBreak {
						p.falseBreaks++
					}
					if obs != nil {
						obs.OnProbe(pr)
					}
				}),
			}
			for i := 0; i < n; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				o, err := l.Locate(sc.TotalSize, sc.CriticalValue, sc.Alpha)
				if err != nil {
					return err
				}
				p.add(o, sc.CriticalValue)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	s := Summary{Scenario: sc, Deterministic: det, MinDrops: math.MaxInt}
	sum := 0
	for _, p := range parts {
		if p.trials == 0 {
			continue
		}
		s.Trials += p.trials
		s.ExactHits += p.hits
		s.FalseBreak += p.falseBreaks
		s.Probes += p.probes
		for i := range s.ByCertainty {
			s.ByCertainty[i] += p.byCert[i]
		}
		if p.minDrops < s.MinDrops {
			s.MinDrops = p.minDrops
		}
		if p.maxDrops > s.MaxDrops {
			s.MaxDrops = p.maxDrops
		}
		sum += p.sumDrops
	}
	s.MeanDrops = float64(sum) / float64(s.Trials)
	return s, nil
}

// Sweep runs base once per alpha, in order.
func Sweep(ctx context.Context, base Scenario, alphas []float64, obs locate.Observer) ([]Summary, error) {
	out := make([]Summary, 0, len(alphas))
	for _, a := range alphas {
		sc := base
		sc.Alpha = a
		s, err := Run(ctx, sc, obs)
		if err != nil {
			return out, fmt.Errorf("sim: alpha=%.3f: %w", a, err)
		}
		out = append(out, s)
	}
	return out, nil
}
