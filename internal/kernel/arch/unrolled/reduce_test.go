package unrolled

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-avgdev/internal/kernel/arch/generic"
)

func TestParityWithGeneric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sizes := []int{0, 1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 17, 63, 64, 65, 1000, 1023}

	for _, n := range sizes {
		x := make([]float64, n)
		for i := range x {
			// Wide dynamic range so any reordering would change the low bits.
			x[i] = (rng.Float64()*2 - 1) * math.Pow(10, float64(rng.Intn(12)-6))
		}

		gotSum, wantSum := Sum(x), generic.Sum(x)
		if math.Float64bits(gotSum) != math.Float64bits(wantSum) {
			t.Fatalf("n=%d: Sum = %v, generic = %v", n, gotSum, wantSum)
		}

		mean := 0.0
		if n > 0 {
			mean = wantSum / float64(n)
		}
		gotDev, wantDev := AbsDevSum(x, mean), generic.AbsDevSum(x, mean)
		if math.Float64bits(gotDev) != math.Float64bits(wantDev) {
			t.Fatalf("n=%d: AbsDevSum = %v, generic = %v", n, gotDev, wantDev)
		}
	}
}

func TestSumIsOrdered(t *testing.T) {
	x := []float64{1e16, 1, 1, 1, 1, 1}
	if got := Sum(x); got != 1e16 {
		t.Fatalf("Sum() = %v, want 1e16 (left-to-right rounding)", got)
	}
}
