// Package kernel dispatches the ordered channel reductions to the best
// registered variant for the current CPU.
package kernel

import (
	"sync/atomic"

	"github.com/cwbudde/algo-avgdev/internal/cpu"
	"github.com/cwbudde/algo-avgdev/internal/kernel/registry"

	// Variant packages register themselves from init().
	_ "github.com/cwbudde/algo-avgdev/internal/kernel/arch/generic"
	_ "github.com/cwbudde/algo-avgdev/internal/kernel/arch/unrolled"
)

var active atomic.Pointer[registry.OpEntry]

// Current returns the selected kernel variant, resolving it on first use.
// It panics if no variant is registered, which is a build error.
func Current() *registry.OpEntry {
	if e := active.Load(); e != nil {
		return e
	}

	entry := registry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("kernel: no implementation registered")
	}
	if entry.Sum == nil || entry.AbsDevSum == nil {
		panic("kernel: selected implementation " + entry.Name + " is incomplete")
	}

	active.Store(entry)

	return entry
}

// Reset drops the cached selection so the next call re-reads CPU features.
// Used together with cpu.SetForcedFeatures in tests.
func Reset() {
	active.Store(nil)
}
