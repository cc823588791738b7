package locate

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidRange is returned when the total size is smaller than 1.
	ErrInvalidRange = errors.New("locate: invalid range")
	// ErrCriticalValueOutOfBounds is returned when the critical value is outside [0, total size].
	ErrCriticalValueOutOfBounds = errors.New("locate: critical value out of bounds")
	// ErrInvalidProbability is returned when alpha is outside [0, 1].
	ErrInvalidProbability = errors.New("locate: invalid probability")
)

func validate(totalSize, criticalValue int) error {
	if totalSize < 1 {
		return fmt.Errorf("total size %d: %w", totalSize, ErrInvalidRange)
	}
	if criticalValue < 0 || criticalValue > totalSize {
		return fmt.Errorf("critical value %d not in [0,%d]: %w", criticalValue, totalSize, ErrCriticalValueOutOfBounds)
	}
	return nil
}

// ValidateAlpha reports an ErrInvalidProbability unless alpha is in [0, 1].
func ValidateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return fmt.Errorf("alpha %v not in [0,1]: %w", alpha, ErrInvalidProbability)
	}
	return nil
}
