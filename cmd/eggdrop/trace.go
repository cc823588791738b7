package main

import (
	"fmt"
	"io"

	"github.com/observe-l/eggdrop/locate"
)

// textTracer narrates probes for a human reader.
type textTracer struct {
	w io.Writer
}

func newTextTracer(w io.Writer) *textTracer { return &textTracer{w: w} }

func (t *textTracer) OnProbe(p locate.Probe) {
	fmt.Fprintf(t.w, "attempt %d: probe position %d (range %d-%d)\n", p.Attempt, p.Position, p.Range.Low, p.Range.High)
	switch {
	case p.FalseBreak:
		fmt.Fprintf(t.w, "  breaks (false break): critical value treated as below %d\n", p.Position)
	case p.Broke:
		fmt.Fprintf(t.w, "  breaks: critical value is below %d\n", p.Position)
	default:
		fmt.Fprintf(t.w, "  survives: critical value is at or above %d\n", p.Position)
	}
}

func printOutcome(w io.Writer, o locate.Outcome) {
	fmt.Fprintf(w, "drops performed:  %d\n", o.Drops)
	fmt.Fprintf(w, "found range:      (%d, %d)\n", o.FoundRange.Low, o.FoundRange.High)
	fmt.Fprintf(w, "certainty:        %s\n", o.Certainty)
	fmt.Fprintf(w, "reason:           %s\n", o.Reason)
}
