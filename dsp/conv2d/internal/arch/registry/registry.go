// Package registry holds the correlation backends available to conv2d.
//
// Backend packages register an OpEntry from init(). The conv2d package
// resolves an entry by name when the caller picks an engine mode, or by CPU
// features when it asks for the best available engine.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Plane is one row-major channel of an image.
type Plane struct {
	Data   []float64
	Height int
	Width  int
}

// Taps is a square row-major kernel.
type Taps struct {
	Data []float64
	Size int
}

// CorrelateFn writes the valid cross-correlation of src with k into dst.
// dst must hold ((H-k)/stride+1)*((W-k)/stride+1) samples. Inputs are
// assumed validated.
type CorrelateFn func(dst []float64, src Plane, k Taps, stride int)

// OpEntry is one registered correlation backend.
type OpEntry struct {
	Name      string
	Lanes     int
	SIMDLevel cpu.SIMDLevel
	Priority  int

	// KernelSizes lists the kernel sizes the backend handles. Empty means
	// every size.
	KernelSizes []int

	Correlate CorrelateFn
}

// SupportsKernel reports whether the backend handles kernels of the given size.
func (e *OpEntry) SupportsKernel(size int) bool {
	if len(e.KernelSizes) == 0 {
		return true
	}
	for _, s := range e.KernelSizes {
		if s == size {
			return true
		}
	}
	return false
}

// OpRegistry stores available backends.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool
}

// Global is the default backend registry.
var Global = &OpRegistry{}

// Register adds a backend entry. A later entry with the same name replaces
// the earlier one.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].Name == entry.Name {
			r.entries[i] = entry
			r.sorted = false
			return
		}
	}

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority backend supported by features.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel) {
			e := *entry
			return &e
		}
	}

	return nil
}

// LookupName returns the backend registered under name, or nil.
func (r *OpRegistry) LookupName(name string) *OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].Name == name {
			e := r.entries[i]
			return &e
		}
	}

	return nil
}

func (r *OpRegistry) ensureSorted() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sorted {
		return
	}
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
	r.sorted = true
}

// ListEntries returns a copy of entries sorted by priority, highest first.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]OpEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Reset clears all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
