package engine

import (
	"math"
	"testing"
)

func f64(v float64) *float64 {
	return &v
}

func TestInRange_BothBounds(t *testing.T) {
	tests := []struct {
		name      string
		measured  float64
		min, max  float64
		tolerance float64
		want      bool
	}{
		{"inside range", 1.55, 1.54, 1.56, 0.0, true},
		{"at lower bound", 1.54, 1.54, 1.56, 0.0, true},
		{"at upper bound", 1.56, 1.54, 1.56, 0.0, true},
		{"below without tolerance", 1.53, 1.54, 1.56, 0.0, false},
		{"below within tolerance", 1.53, 1.54, 1.56, 0.01, true},
		{"above within tolerance", 1.57, 1.54, 1.56, 0.01, true},
		{"above beyond tolerance", 1.58, 1.54, 1.56, 0.01, false},
		{"point range exact", 2.417, 2.417, 2.417, 0.0, true},
		{"point range with tolerance", 2.42, 2.417, 2.417, 0.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inRange(tt.measured, f64(tt.min), f64(tt.max), tt.tolerance)
			if got != tt.want {
				t.Errorf("inRange(%v, %v, %v, %v) = %v, want %v",
					tt.measured, tt.min, tt.max, tt.tolerance, got, tt.want)
			}
		})
	}
}

func TestInRange_MissingBounds(t *testing.T) {
	// Both bounds absent: no reference data, unmatched outcome.
	if inRange(1.55, nil, nil, 1.0) {
		t.Error("Expected false when both bounds are absent")
	}

	// A missing bound takes the value of the present one.
	if !inRange(1.55, f64(1.55), nil, 0.0) {
		t.Error("Expected match against collapsed range [min, min]")
	}
	if !inRange(1.55, nil, f64(1.55), 0.0) {
		t.Error("Expected match against collapsed range [max, max]")
	}
	if inRange(1.60, f64(1.55), nil, 0.01) {
		t.Error("Expected no match outside collapsed range plus tolerance")
	}
}

func TestRangeDeviation(t *testing.T) {
	dev := rangeDeviation(1.60, f64(1.50), f64(1.54))
	if dev == nil {
		t.Fatal("Expected deviation when both bounds present")
	}
	if math.Abs(*dev-0.08) > 1e-9 {
		t.Errorf("Expected deviation 0.08 from midpoint 1.52, got %v", *dev)
	}

	if rangeDeviation(1.60, f64(1.50), nil) != nil {
		t.Error("Expected nil deviation when max is absent")
	}
	if rangeDeviation(1.60, nil, f64(1.54)) != nil {
		t.Error("Expected nil deviation when min is absent")
	}
	if rangeDeviation(1.60, nil, nil) != nil {
		t.Error("Expected nil deviation when both bounds are absent")
	}
}
