package testutil

import (
	"math"
	"testing"
)

func TestRequireBitIdenticalAcceptsEqualNaN(t *testing.T) {
	nan := math.NaN()
	RequireBitIdentical(t, []float64{1, nan}, []float64{1, nan})
}

func TestRequireNonNegative(t *testing.T) {
	RequireNonNegative(t, []float64{0, 1.5, math.Inf(1)})
}
