package locate

import "fmt"

// Certainty classifies how a stochastic search ended.
type Certainty uint8

const (
	// ExactlyFound: the range closed before the attempt budget ran out.
	ExactlyFound Certainty = iota
	// LimitedByMaxAttempts: the range closed on the attempt that exhausted
	// the budget.
	LimitedByMaxAttempts
	// RangeRemaining: the budget ran out with positions still in range.
	RangeRemaining
)

var certaintyNames = [...]string{
	ExactlyFound:         "exactly-found",
	LimitedByMaxAttempts: "limited-by-max-attempts",
	RangeRemaining:       "range-remaining",
}

func (c Certainty) String() string {
	if int(c) < len(certaintyNames) {
		return certaintyNames[c]
	}
	return fmt.Sprintf("certainty(%d)", uint8(c))
}

// ParseCertainty is the inverse of Certainty.String.
func ParseCertainty(s string) (Certainty, error) {
	for i, n := range certaintyNames {
		if n == s {
			return Certainty(i), nil
		}
	}
	return 0, fmt.Errorf("locate: unknown certainty %q", s)
}

// Outcome is the result of a stochastic search. When the range closed,
// FoundRange holds the located value twice; otherwise it is the remaining
// uncertainty interval.
type Outcome struct {
	Drops      int
	FoundRange SearchRange
	Certainty  Certainty
	Reason     string
}

// Value returns the located value and whether the search closed on one.
func (o Outcome) Value() (int, bool) {
	if o.Certainty == RangeRemaining {
		return 0, false
	}
	return o.FoundRange.High, true
}

func (o Outcome) String() string {
	return fmt.Sprintf("drops=%d range=(%d,%d) certainty=%s", o.Drops, o.FoundRange.Low, o.FoundRange.High, o.Certainty)
}
