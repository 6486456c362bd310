// Package unrolled holds four-way unrolled channel reductions.
//
// The loops walk the column in re-sliced blocks of four so the compiler can
// drop bounds checks, but they still feed a single accumulator in index
// order. Results are bit-identical to the generic package.
package unrolled

import "math"

// Sum returns the sum of all elements in x, accumulated left to right.
func Sum(x []float64) float64 {
	s := 0.0
	i := 0
	for ; i+4 <= len(x); i += 4 {
		v := x[i : i+4 : i+4]
		s += v[0]
		s += v[1]
		s += v[2]
		s += v[3]
	}
	for ; i < len(x); i++ {
		s += x[i]
	}

	return s
}

// AbsDevSum returns the sum of |x[i] - mean|, accumulated left to right.
func AbsDevSum(x []float64, mean float64) float64 {
	s := 0.0
	i := 0
	for ; i+4 <= len(x); i += 4 {
		v := x[i : i+4 : i+4]
		s += math.Abs(v[0] - mean)
		s += math.Abs(v[1] - mean)
		s += math.Abs(v[2] - mean)
		s += math.Abs(v[3] - mean)
	}
	for ; i < len(x); i++ {
		s += math.Abs(x[i] - mean)
	}

	return s
}
