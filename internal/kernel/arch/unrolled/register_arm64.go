//go:build arm64

package unrolled

import (
	"github.com/cwbudde/algo-avgdev/internal/cpu"
	"github.com/cwbudde/algo-avgdev/internal/kernel/registry"
)

// Priority: 10 (preferred over generic on any NEON host).
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "unrolled",
		SIMDLevel: cpu.SIMDNEON,
		Priority:  10,

		Sum:       Sum,
		AbsDevSum: AbsDevSum,
	})
}
