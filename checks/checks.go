/*
Package checks provides utilities to check for certain properties of
energies and temperature schedules.
*/
package checks

import "math"

// IsFinite accepts an energy value and returns whether it is an ordinary
// real number: not NaN and not ±Inf. Non-finite energies from an evaluator
// are treated as fatal by the packages that consume them.
func IsFinite(energy float64) bool {
	return !math.IsNaN(energy) && !math.IsInf(energy, 0)
}

// IsStrictlyPositive returns whether every value is greater than zero.
func IsStrictlyPositive(values []float64) bool {
	for _, v := range values {
		if !(v > 0) {
			return false
		}
	}
	return true
}

// IsStrictlyDecreasing returns whether each value is strictly smaller than
// the one before it. Slices of length zero or one are trivially decreasing.
func IsStrictlyDecreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if !(values[i] < values[i-1]) {
			return false
		}
	}
	return true
}
