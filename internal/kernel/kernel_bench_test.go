package kernel

import (
	"testing"

	"github.com/cwbudde/algo-avgdev/internal/kernel/registry"
)

func BenchmarkAbsDevSum(b *testing.B) {
	x := testColumn(4096)
	for _, e := range registry.Global.ListEntries() {
		b.Run(e.Name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(x) * 8))

			for range b.N {
				e.AbsDevSum(x, 0.25)
			}
		})
	}
}
