package generic

import (
	"github.com/cwbudde/algo-avgdev/internal/cpu"
	"github.com/cwbudde/algo-avgdev/internal/kernel/registry"
)

// init registers the reference loops. They are the fallback when no other
// variant is compatible and the only variant under ForceGeneric.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,

		Sum:       Sum,
		AbsDevSum: AbsDevSum,
	})
}
