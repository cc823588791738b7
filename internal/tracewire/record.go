package tracewire

import (
	"fmt"

	"github.com/francoispqt/gojay"

	"github.com/observe-l/eggdrop/locate"
)

// Record kinds on the wire.
const (
	KindProbe   = "probe"
	KindOutcome = "outcome"
)

// Record is one JSON line of a trace. Probe records carry the range before
// the probe in Low/High; outcome records carry the found range there.
type Record struct {
	Kind string

	Variant    string
	Attempt    int
	Position   int
	Broke      bool
	FalseBreak bool

	Drops     int
	Certainty string
	Reason    string

	Low  int
	High int
}

// FromProbe converts a probe to its wire record.
func FromProbe(p locate.Probe) Record {
	return Record{
		Kind:       KindProbe,
		Variant:    string(p.Variant),
		Attempt:    p.Attempt,
		Position:   p.Position,
		Broke:      p.Broke,
		FalseBreak: p.FalseBreak,
		Low:        p.Range.Low,
		High:       p.Range.High,
	}
}

// FromOutcome converts a stochastic outcome to its wire record.
func FromOutcome(o locate.Outcome) Record {
	return Record{
		Kind:      KindOutcome,
		Variant:   string(locate.VariantStochastic),
		Drops:     o.Drops,
		Certainty: o.Certainty.String(),
		Reason:    o.Reason,
		Low:       o.FoundRange.Low,
		High:      o.FoundRange.High,
	}
}

// Probe converts a probe record back.
func (r *Record) Probe() (locate.Probe, error) {
	if r.Kind != KindProbe {
		return locate.Probe{}, fmt.Errorf("tracewire: record kind %q is not a probe", r.Kind)
	}
	return locate.Probe{
		Variant:    locate.Variant(r.Variant),
		Attempt:    r.Attempt,
		Position:   r.Position,
		Range:      locate.SearchRange{Low: r.Low, High: r.High},
		Broke:      r.Broke,
		FalseBreak: r.FalseBreak,
	}, nil
}

// Outcome converts an outcome record back.
func (r *Record) Outcome() (locate.Outcome, error) {
	if r.Kind != KindOutcome {
		return locate.Outcome{}, fmt.Errorf("tracewire: record kind %q is not an outcome", r.Kind)
	}
	c, err := locate.ParseCertainty(r.Certainty)
	if err != nil {
		return locate.Outcome{}, err
	}
	return locate.Outcome{
		Drops:      r.Drops,
		FoundRange: locate.SearchRange{Low: r.Low, High: r.High},
		Certainty:  c,
		Reason:     r.Reason,
	}, nil
}

// MarshalJSONObject implements gojay.MarshalerJSONObject.
func (r *Record) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("kind", r.Kind)
	enc.StringKey("variant", r.Variant)
	switch r.Kind {
	case KindProbe:
		enc.IntKey("attempt", r.Attempt)
		enc.IntKey("position", r.Position)
		enc.IntKey("low", r.Low)
		enc.IntKey("high", r.High)
		enc.BoolKey("broke", r.Broke)
		enc.BoolKey("false_break", r.FalseBreak)
	case KindOutcome:
		enc.IntKey("drops", r.Drops)
		enc.IntKey("low", r.Low)
		enc.IntKey("high", r.High)
		enc.StringKey("certainty", r.Certainty)
		enc.StringKey("reason", r.Reason)
	}
}

func (r *Record) IsNil() bool { return r == nil }

// UnmarshalJSONObject implements gojay.UnmarshalerJSONObject. Unknown keys
// are skipped.
func (r *Record) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "kind":
		return dec.String(&r.Kind)
	case "variant":
		return dec.String(&r.Variant)
	case "attempt":
		return dec.Int(&r.Attempt)
	case "position":
		return dec.Int(&r.Position)
	case "low":
		return dec.Int(&r.Low)
	case "high":
		return dec.Int(&r.High)
	case "broke":
		return dec.Bool(&r.Broke)
	case "false_break":
		return dec.Bool(&r.FalseBreak)
	case "drops":
		return dec.Int(&r.Drops)
	case "certainty":
		return dec.String(&r.Certainty)
	case "reason":
		return dec.String(&r.Reason)
	}
	return nil
}

func (r *Record) NKeys() int { return 0 }
