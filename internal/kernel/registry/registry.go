// Package registry provides the implementation registry for channel kernels.
//
// Several implementation variants of the ordered reductions used by the
// deviation computation can coexist. Variant packages register themselves
// from init() functions and the kernel package selects the highest-priority
// variant compatible with the detected CPU at runtime.
//
// Every variant must accumulate strictly from index 0 to len-1 into a single
// running sum. Variants may differ in how they walk memory, never in the
// order of floating-point additions, so all of them are bit-identical.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-avgdev/internal/cpu"
)

// OpEntry represents a registered kernel variant.
type OpEntry struct {
	// Name is a human-readable identifier (e.g., "generic", "unrolled").
	Name string

	// SIMDLevel is the CPU capability the variant is tuned for.
	SIMDLevel cpu.SIMDLevel

	// Priority determines selection order among compatible variants.
	// Generic: 0, unrolled: 10.
	Priority int

	// Sum returns x[0] + x[1] + ... + x[n-1], accumulated left to right.
	Sum func(x []float64) float64

	// AbsDevSum returns |x[0]-mean| + ... + |x[n-1]-mean|, left to right.
	AbsDevSum func(x []float64, mean float64) float64
}

// OpRegistry manages registration and lookup of kernel variants.
type OpRegistry struct {
	mu      sync.Mutex
	entries []OpEntry
	sorted  bool
}

// Global is the registry used by the kernel package.
var Global = &OpRegistry{}

// Register adds a variant. Safe for concurrent use; all registrations
// should complete (init time) before the first Lookup.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority entry compatible with features, or nil
// if none is registered.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureSorted()

	for i := range r.entries {
		entry := &r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel) {
			return entry
		}
	}

	return nil
}

// Entry returns the variant registered under name, or nil.
func (r *OpRegistry) Entry(name string) *OpEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureSorted()

	for i := range r.entries {
		if r.entries[i].Name == name {
			return &r.entries[i]
		}
	}

	return nil
}

// ListEntries returns a copy of all registered entries, highest priority first.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureSorted()

	entries := make([]OpEntry, len(r.entries))
	copy(entries, r.entries)

	return entries
}

// ensureSorted sorts entries once after the last registration. Pointers
// handed out by Lookup and Entry stay valid until the next Register.
func (r *OpRegistry) ensureSorted() {
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
}

// sortByPriority orders entries by descending priority. Must be called with
// r.mu held for writing.
func (r *OpRegistry) sortByPriority() {
	// Insertion sort; the registry holds a handful of entries.
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}
