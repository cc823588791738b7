package locate

// Variant names the strategy that produced a probe.
type Variant string

const (
	VariantDeterministic Variant = "deterministic"
	VariantStochastic    Variant = "stochastic"
)

// Probe describes one attempt. Range is the search range before the probe
// was applied.
type Probe struct {
	Variant  Variant
	Attempt  int
	Position int
	Range    SearchRange
	Broke    bool
	// FalseBreak is set when the probe broke although Position was at or
	// below the critical value.
	FalseBreak bool
}

// An Observer receives every probe of a search, in order. Observers must not
// retain the locator.
type Observer interface {
	OnProbe(Probe)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Probe)

func (f ObserverFunc) OnProbe(p Probe) { f(p) }

// Observers fans a probe out to each non-nil observer.
type Observers []Observer

func (obs Observers) OnProbe(p Probe) {
	for _, o := range obs {
		if o != nil {
			o.OnProbe(p)
		}
	}
}

// Recorder collects the probed positions.
type Recorder struct {
	Probes []Probe
}

func (r *Recorder) OnProbe(p Probe) { r.Probes = append(r.Probes, p) }

// Positions returns the probed positions in order.
func (r *Recorder) Positions() []int {
	out := make([]int, len(r.Probes))
	for i, p := range r.Probes {
		out[i] = p.Position
	}
	return out
}

func notify(o Observer, p Probe) {
	if o != nil {
		o.OnProbe(p)
	}
}
