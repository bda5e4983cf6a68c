package linearmodel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// validateFinite returns ErrInvalidValue for the first NaN or infinite entry
func validateFinite(name string, vals []float64) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s has value %v at index %d, %w", name, v, i, ErrInvalidValue)
		}
	}
	return nil
}

// isConstant reports whether every value is identical. The slice must not be empty.
func isConstant(vals []float64) bool {
	return floats.Max(vals) == floats.Min(vals)
}

// degenerate reports whether the deviation about the mean cannot be used as a divisor
func degenerate(vals []float64, deviation float64) bool {
	return deviation <= 0 || isConstant(vals)
}

// allFinite reports whether none of the values is NaN or infinite
func allFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// targetSlice flattens the first column of the target matrix
func targetSlice(y mat.Matrix) []float64 {
	return mat.Col(nil, 0, y)
}

func validateObservations(m, ym int) error {
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}
	if m < 2 {
		return fmt.Errorf("got %d observations, %w", m, ErrInsufficientData)
	}
	return nil
}
