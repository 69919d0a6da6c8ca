package conv2d

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d/internal/arch/generic"
	"github.com/cwbudde/algo-conv2d/dsp/conv2d/internal/arch/registry"
	"github.com/cwbudde/algo-conv2d/dsp/conv2d/internal/arch/vec4"
	"github.com/cwbudde/algo-conv2d/dsp/conv2d/internal/arch/vec8"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// EngineMode selects the backend that executes a convolution.
type EngineMode int

const (
	// EngineBaseline is the scalar reference backend.
	EngineBaseline EngineMode = iota + 1

	// EngineVec4 is the 4-lane backend (historically "SSE").
	EngineVec4

	// EngineVec8 is the 8-lane backend (historically "AVX").
	EngineVec8
)

// Valid reports whether m is one of the known engine modes.
func (m EngineMode) Valid() bool {
	switch m {
	case EngineBaseline, EngineVec4, EngineVec8:
		return true
	default:
		return false
	}
}

// String returns the registry name of the mode's backend.
func (m EngineMode) String() string {
	switch m {
	case EngineBaseline:
		return generic.Name
	case EngineVec4:
		return vec4.Name
	case EngineVec8:
		return vec8.Name
	default:
		return fmt.Sprintf("EngineMode(%d)", int(m))
	}
}

// Lanes returns the vector width of the mode's backend.
func (m EngineMode) Lanes() int {
	switch m {
	case EngineVec4:
		return 4
	case EngineVec8:
		return 8
	default:
		return 1
	}
}

// ParseEngineMode accepts backend names, the historical names "sse" and
// "avx", and the numeric codes 1, 2 and 3.
func ParseEngineMode(s string) (EngineMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case generic.Name, "scalar":
		return EngineBaseline, nil
	case vec4.Name, "sse":
		return EngineVec4, nil
	case vec8.Name, "avx":
		return EngineVec8, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		if m := EngineMode(n); m.Valid() {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown engine mode %q: %w", ErrInvalidArgument, s, ErrNotSupported)
}

func modeFromName(name string) (EngineMode, bool) {
	for _, m := range []EngineMode{EngineBaseline, EngineVec4, EngineVec8} {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

// BestEngine returns the highest-priority engine whose SIMD level the
// running CPU supports.
func BestEngine() EngineMode {
	entry := registry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		return EngineBaseline
	}
	if m, ok := modeFromName(entry.Name); ok {
		return m
	}
	return EngineBaseline
}

// EngineInfo describes a registered backend.
type EngineInfo struct {
	Mode        EngineMode
	Name        string
	Lanes       int
	SIMDLevel   string
	KernelSizes []int
	Supported   bool // SIMD level available on this CPU
}

// Engines lists the registered backends, highest priority first.
func Engines() []EngineInfo {
	features := cpu.DetectFeatures()
	entries := registry.Global.ListEntries()

	infos := make([]EngineInfo, 0, len(entries))
	for _, e := range entries {
		m, ok := modeFromName(e.Name)
		if !ok {
			continue
		}
		sizes := e.KernelSizes
		if len(sizes) == 0 {
			sizes = append([]int(nil), supportedKernelSizes...)
		}
		infos = append(infos, EngineInfo{
			Mode:        m,
			Name:        e.Name,
			Lanes:       e.Lanes,
			SIMDLevel:   e.SIMDLevel.String(),
			KernelSizes: sizes,
			Supported:   cpu.Supports(features, e.SIMDLevel),
		})
	}
	return infos
}
