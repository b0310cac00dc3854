package engine

import "math"

// inRange reports whether a measured value falls within a reference range
// expanded by a symmetric additive tolerance.
//
// Both bounds absent means there is no reference data to compare against:
// the outcome is unmatched, not an error. A single present bound collapses
// the range to that point.
func inRange(measured float64, min, max *float64, tolerance float64) bool {
	if min == nil && max == nil {
		return false
	}
	lo, hi := rangeBounds(min, max)
	return measured >= lo-tolerance && measured <= hi+tolerance
}

// rangeBounds resolves optional bounds; a missing bound takes the value
// of the present one. At least one bound must be non-nil.
func rangeBounds(min, max *float64) (float64, float64) {
	switch {
	case min == nil:
		return *max, *max
	case max == nil:
		return *min, *min
	default:
		return *min, *max
	}
}

// rangeDeviation returns the absolute distance from the midpoint of the
// reference range. Diagnostic display only, never used for scoring.
// Undefined (nil) when either bound is absent.
func rangeDeviation(measured float64, min, max *float64) *float64 {
	if min == nil || max == nil {
		return nil
	}
	mid := (*min + *max) / 2
	d := math.Abs(measured - mid)
	return &d
}
