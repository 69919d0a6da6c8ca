package vec4

import (
	"github.com/cwbudde/algo-conv2d/dsp/conv2d/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Name is the registry name of the 4-lane backend.
const Name = "vec4"

// init registers the 4-lane kernel. It is plain Go, so the SIMD level only
// steers automatic engine selection.
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        Name,
		Lanes:       lanes,
		SIMDLevel:   cpu.SIMDSSE2,
		Priority:    10,
		KernelSizes: []int{3},
		Correlate:   Correlate,
	})
}
