//go:build amd64

package unrolled

import (
	"github.com/cwbudde/algo-avgdev/internal/cpu"
	"github.com/cwbudde/algo-avgdev/internal/kernel/registry"
)

// Priority: 10 (preferred over generic on any SSE2 host).
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "unrolled",
		SIMDLevel: cpu.SIMDSSE2,
		Priority:  10,

		Sum:       Sum,
		AbsDevSum: AbsDevSum,
	})
}
