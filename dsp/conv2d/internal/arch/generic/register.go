package generic

import (
	"github.com/cwbudde/algo-conv2d/dsp/conv2d/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Name is the registry name of the scalar backend.
const Name = "baseline"

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      Name,
		Lanes:     1,
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Correlate: Correlate,
	})
}
