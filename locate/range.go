package locate

import (
	"fmt"
	"math/bits"
)

// SearchRange is the interval of positions still consistent with every
// observation so far. The search is active while Low <= High.
type SearchRange struct {
	Low  int
	High int
}

// Active reports whether the range still holds at least one position.
func (r SearchRange) Active() bool { return r.Low <= r.High }

// Width returns the number of positions left, 0 once the range has closed.
func (r SearchRange) Width() int {
	if !r.Active() {
		return 0
	}
	return r.High - r.Low + 1
}

func (r SearchRange) String() string { return fmt.Sprintf("[%d,%d]", r.Low, r.High) }

// MaxDeterministicAttempts returns floor(log2(totalSize)) + 2, the attempt
// bound of DeterministicLocator for any critical value in range.
func MaxDeterministicAttempts(totalSize int) int {
	if totalSize < 1 {
		return 0
	}
	return bits.Len(uint(totalSize)) - 1 + 2
}
