// Package vec8 is the 8-lane correlation backend for 3x3 kernels.
// Trailing output columns that do not fill a vector use scalar taps.
package vec8

import "github.com/cwbudde/algo-conv2d/dsp/conv2d/internal/arch/registry"

// Correlate computes the valid 3x3 cross-correlation of src with k.
func Correlate(dst []float64, src registry.Plane, k registry.Taps, stride int) {
	if k.Size != 3 || len(k.Data) != 9 {
		panic("conv2d: vec8 backend requires a 3x3 kernel")
	}

	width := src.Width
	outH := (src.Height-3)/stride + 1
	outW := (width-3)/stride + 1
	if len(dst) != outH*outW {
		panic("conv2d: output length mismatch")
	}

	// Taps are broadcast once per call.
	var taps [3][3]vec
	for ky := range taps {
		for kx := range taps[ky] {
			taps[ky][kx] = set1(k.Data[ky*3+kx])
		}
	}

	var rows [3][]float64
	for i := 0; i < outH; i++ {
		for ky := range rows {
			start := (i*stride + ky) * width
			rows[ky] = src.Data[start : start+width]
		}
		out := dst[i*outW : (i+1)*outW]

		j := 0
		// The rightmost tap of the last lane must stay inside the row.
		for ; j+lanes <= outW && (j+lanes-1)*stride+2 < width; j += lanes {
			base := j * stride

			var sum vec
			for ky, row := range rows {
				sum = mulAdd(sum, load(row, base+0, stride), taps[ky][0])
				sum = mulAdd(sum, load(row, base+1, stride), taps[ky][1])
				sum = mulAdd(sum, load(row, base+2, stride), taps[ky][2])
			}

			store(out, j, sum)
		}

		for ; j < outW; j++ {
			base := j * stride
			s := 0.0
			for ky, row := range rows {
				for kx := 0; kx < 3; kx++ {
					s += row[base+kx] * k.Data[ky*3+kx]
				}
			}
			out[j] = s
		}
	}
}
