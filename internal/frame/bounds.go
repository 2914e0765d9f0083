package frame

import (
	"fmt"
	"math"
)

// Default inclusive limits for a split fraction.
const (
	DefaultFractionMin = 0.1
	DefaultFractionMax = 0.9
)

// Bounds holds the configured fraction range.
type Bounds struct {
	FractionMin float64
	FractionMax float64
}

// DefaultBounds returns [DefaultFractionMin, DefaultFractionMax].
func DefaultBounds() Bounds {
	return Bounds{FractionMin: DefaultFractionMin, FractionMax: DefaultFractionMax}
}

// OpenBounds admits every fraction strictly between 0 and 1. Trees already
// stored are checked against it, so narrowing the configured bounds only
// affects layouts built afterwards.
func OpenBounds() Bounds {
	return Bounds{FractionMin: math.SmallestNonzeroFloat64, FractionMax: math.Nextafter(1, 0)}
}

// CheckFraction reports whether f lies within the bounds.
func (b Bounds) CheckFraction(f float64) error {
	// Written as a negated range test so NaN is rejected.
	if !(f >= b.FractionMin && f <= b.FractionMax) {
		return fmt.Errorf("fraction %v out of range [%v, %v]", f, b.FractionMin, b.FractionMax)
	}
	return nil
}

// Validate checks the bounds themselves.
func (b Bounds) Validate() error {
	if !(b.FractionMin > 0 && b.FractionMin <= b.FractionMax && b.FractionMax < 1) {
		return fmt.Errorf("fraction bounds [%v, %v] must satisfy 0 < min <= max < 1", b.FractionMin, b.FractionMax)
	}
	return nil
}
