// Package generic is the scalar reference correlation backend. It handles
// every kernel size and is the fallback for sizes the lane backends reject.
package generic

import "github.com/cwbudde/algo-conv2d/dsp/conv2d/internal/arch/registry"

// Correlate computes the valid cross-correlation of src with k.
// The kernel is not flipped.
func Correlate(dst []float64, src registry.Plane, k registry.Taps, stride int) {
	outH := (src.Height-k.Size)/stride + 1
	outW := (src.Width-k.Size)/stride + 1
	if len(dst) != outH*outW {
		panic("conv2d: output length mismatch")
	}

	for i := 0; i < outH; i++ {
		baseI := i * stride
		for j := 0; j < outW; j++ {
			baseJ := j * stride

			sum := 0.0
			for u := 0; u < k.Size; u++ {
				row := src.Data[(baseI+u)*src.Width+baseJ:]
				taps := k.Data[u*k.Size : (u+1)*k.Size]
				for v, t := range taps {
					sum += row[v] * t
				}
			}

			dst[i*outW+j] = sum
		}
	}
}
