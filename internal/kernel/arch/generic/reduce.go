// Package generic holds the reference implementations of the channel
// reductions. Other variants are tested for bit-identity against these.
package generic

import "math"

// Sum returns the sum of all elements in x, accumulated left to right.
// Returns 0 for an empty slice.
func Sum(x []float64) float64 {
	s := 0.0
	for i := range x {
		s += x[i]
	}

	return s
}

// AbsDevSum returns the sum of |x[i] - mean|, accumulated left to right.
// Returns 0 for an empty slice.
func AbsDevSum(x []float64, mean float64) float64 {
	s := 0.0
	for i := range x {
		s += math.Abs(x[i] - mean)
	}

	return s
}
