package service

import (
	"github.com/francoispqt/gojay"

	"github.com/observe-l/eggdrop/internal/tracewire"
	"github.com/observe-l/eggdrop/locate"
)

// LocateRequest is the input of both Locator methods. Alpha and Seed are
// only used by Stochastic; the Has* flags record whether they were sent.
type LocateRequest struct {
	TotalSize     int
	CriticalValue int
	Alpha         float64
	HasAlpha      bool
	Seed          int64
	HasSeed       bool
	MaxAttempts   int
}

// WithAlpha sets Alpha and marks it present.
func (r *LocateRequest) WithAlpha(a float64) *LocateRequest {
	r.Alpha, r.HasAlpha = a, true
	return r
}

// WithSeed sets Seed and marks it present.
func (r *LocateRequest) WithSeed(s int64) *LocateRequest {
	r.Seed, r.HasSeed = s, true
	return r
}

func (r *LocateRequest) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("total_size", r.TotalSize)
	enc.IntKey("critical_value", r.CriticalValue)
	if r.HasAlpha {
		enc.Float64Key("alpha", r.Alpha)
	}
	if r.HasSeed {
		enc.Int64Key("seed", r.Seed)
	}
	enc.IntKeyOmitEmpty("max_attempts", r.MaxAttempts)
}

func (r *LocateRequest) IsNil() bool { return r == nil }

func (r *LocateRequest) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "total_size":
		return dec.Int(&r.TotalSize)
	case "critical_value":
		return dec.Int(&r.CriticalValue)
	case "alpha":
		r.HasAlpha = true
		return dec.Float64(&r.Alpha)
	case "seed":
		r.HasSeed = true
		return dec.Int64(&r.Seed)
	case "max_attempts":
		return dec.Int(&r.MaxAttempts)
	}
	return nil
}

func (r *LocateRequest) NKeys() int { return 0 }

// records is a probe list on the wire.
type records []tracewire.Record

func (rs records) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range rs {
		enc.Object(&rs[i])
	}
}

func (rs records) IsNil() bool { return rs == nil }

func (rs *records) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var r tracewire.Record
	if err := dec.Object(&r); err != nil {
		return err
	}
	*rs = append(*rs, r)
	return nil
}

func toRecords(ps []locate.Probe) records {
	out := make(records, len(ps))
	for i, p := range ps {
		out[i] = tracewire.FromProbe(p)
	}
	return out
}

// DeterministicReply carries the attempt count and every probe.
type DeterministicReply struct {
	Attempts int
	Probes   []tracewire.Record
}

func (r *DeterministicReply) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("attempts", r.Attempts)
	enc.ArrayKey("probes", records(r.Probes))
}

func (r *DeterministicReply) IsNil() bool { return r == nil }

func (r *DeterministicReply) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "attempts":
		return dec.Int(&r.Attempts)
	case "probes":
		return dec.Array((*records)(&r.Probes))
	}
	return nil
}

func (r *DeterministicReply) NKeys() int { return 0 }

// StochasticReply carries the outcome, the seed that produced it and every
// probe.
type StochasticReply struct {
	Drops     int
	Low       int
	High      int
	Certainty string
	Reason    string
	Seed      int64
	Probes    []tracewire.Record
}

func newStochasticReply(o locate.Outcome, seed int64, ps []locate.Probe) *StochasticReply {
	return &StochasticReply{
		Drops:     o.Drops,
		Low:       o.FoundRange.Low,
		High:      o.FoundRange.High,
		Certainty: o.Certainty.String(),
		Reason:    o.Reason,
		Seed:      seed,
		Probes:    toRecords(ps),
	}
}

// Outcome converts the reply back to a locate.Outcome.
func (r *StochasticReply) Outcome() (locate.Outcome, error) {
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

func (r *StochasticReply) MarshalJSONObject(enc *gojay.Encoder) {
	enc.IntKey("drops", r.Drops)
	enc.IntKey("low", r.Low)
	enc.IntKey("high", r.High)
	enc.StringKey("certainty", r.Certainty)
	enc.StringKey("reason", r.Reason)
	enc.Int64Key("seed", r.Seed)
	enc.ArrayKey("probes", records(r.Probes))
}

func (r *StochasticReply) IsNil() bool { return r == nil }

func (r *StochasticReply) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "drops":
		return dec.Int(&r.Drops)
	case "low":
		return dec.Int(&r.Low)
	case "high":
		return dec.Int(&r.High)
	case "certainty":
		return dec.String(&r.Certainty)
	case "reason":
		return dec.String(&r.Reason)
	case "seed":
		return dec.Int64(&r.Seed)
	case "probes":
		return dec.Array((*records)(&r.Probes))
	}
	return nil
}

func (r *StochasticReply) NKeys() int { return 0 }
