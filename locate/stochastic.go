package locate

import (
	"fmt"

	"github.com/observe-l/eggdrop/internal/dropper"
)

const (
	// DefaultAlpha is the false-break probability used by the demo and CLI.
	DefaultAlpha = 0.5
	// DefaultMaxAttempts bounds a stochastic search.
	DefaultMaxAttempts = 100
)

// StochasticLocator searches by probing uniformly random positions of the
// remaining range. A probe above the critical value always breaks; a probe
// at or below it breaks with probability alpha. A locator is not safe for
// concurrent use because it draws from Source.
type StochasticLocator struct {
	Source Source
	// MaxAttempts bounds the number of probes; DefaultMaxAttempts if <= 0.
	MaxAttempts int
	Observer    Observer
}

// NewStochasticLocator returns a locator drawing from a Source seeded with seed.
func NewStochasticLocator(seed int64) *StochasticLocator {
	return &StochasticLocator{Source: NewSource(seed), MaxAttempts: DefaultMaxAttempts}
}

func (l *StochasticLocator) maxAttempts() int {
	if l.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return l.MaxAttempts
}

// Locate runs one noisy search for criticalValue in [1, totalSize].
//
// When the range closes the located value is the final upper bound. If it
// closed on the attempt that used up the budget the outcome is
// LimitedByMaxAttempts rather than ExactlyFound: the budget check wins ties.
func (l *StochasticLocator) Locate(totalSize, criticalValue int, alpha float64) (Outcome, error) {
	if err := validate(totalSize, criticalValue); err != nil {
		return Outcome{}, err
	}
	if err := ValidateAlpha(alpha); err != nil {
		return Outcome{}, err
	}
	if criticalValue == 0 {
		return Outcome{
			Certainty: ExactlyFound,
			Reason:    "breaks at the lowest position",
		}, nil
	}
	src := l.Source
	if src == nil {
		src = NewSource(TimeSeed())
	}
	falseBreak := dropper.New(alpha, src)
	budget := l.maxAttempts()

	r := SearchRange{Low: 1, High: totalSize}
	drops := 0
	closed := false
	for drops < budget && !closed && r.Active() {
		drops++
		pos := between(src, r.Low, r.High)
		p := Probe{Variant: VariantStochastic, Attempt: drops, Position: pos, Range: r}
		if pos > criticalValue {
			p.Broke = true
		} else {
			p.Broke = falseBreak.Drop()
			p.FalseBreak = p.Broke
		}
		notify(l.Observer, p)
		switch {
		case p.Broke:
			r.High = pos - 1
		case pos == r.High:
			// pos+1 overflows when High is math.MaxInt.
			closed = true
		default:
			r.Low = pos + 1
		}
	}

	var o Outcome
	o.Drops = drops
	if closed || !r.Active() {
		o.FoundRange = SearchRange{Low: r.High, High: r.High}
		if drops < budget {
			o.Certainty = ExactlyFound
		} else {
			o.Certainty = LimitedByMaxAttempts
		}
	} else {
		o.FoundRange = r
		o.Certainty = RangeRemaining
	}
	o.Reason = fmt.Sprintf("critical value lies between %d and %d", o.FoundRange.Low, o.FoundRange.High)
	return o, nil
}
