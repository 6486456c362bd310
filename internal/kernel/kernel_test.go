package kernel

import (
	"math"
	"runtime"
	"testing"

	"github.com/cwbudde/algo-avgdev/internal/cpu"
	"github.com/cwbudde/algo-avgdev/internal/kernel/registry"
)

func testColumn(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(float64(i)*0.1) * float64(i-n/3)
	}

	return x
}

func TestForceGeneric(t *testing.T) {
	cpu.SetForcedFeatures(cpu.Features{ForceGeneric: true, Architecture: runtime.GOARCH})
	Reset()
	defer func() {
		cpu.ResetDetection()
		Reset()
	}()

	if got := Current().Name; got != "generic" {
		t.Fatalf("Current() = %q, want generic", got)
	}
}

func TestDefaultSelection(t *testing.T) {
	cpu.ResetDetection()
	Reset()
	defer Reset()

	want := "generic"
	if runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64" {
		want = "unrolled"
	}
	if got := Current().Name; got != want {
		t.Fatalf("Current() = %q, want %q on %s", got, want, runtime.GOARCH)
	}
}

func TestDispatchParity(t *testing.T) {
	entries := registry.Global.ListEntries()
	if len(entries) == 0 {
		t.Fatal("no kernels registered")
	}

	x := testColumn(1025)
	ref := registry.Global.Entry("generic")
	if ref == nil {
		t.Fatal("generic kernel not registered")
	}
	wantSum := ref.Sum(x)
	mean := wantSum / float64(len(x))
	wantDev := ref.AbsDevSum(x, mean)

	for _, e := range entries {
		t.Run(e.Name, func(t *testing.T) {
			if got := e.Sum(x); math.Float64bits(got) != math.Float64bits(wantSum) {
				t.Fatalf("Sum = %v, want %v", got, wantSum)
			}
			if got := e.AbsDevSum(x, mean); math.Float64bits(got) != math.Float64bits(wantDev) {
				t.Fatalf("AbsDevSum = %v, want %v", got, wantDev)
			}
		})
	}
}
