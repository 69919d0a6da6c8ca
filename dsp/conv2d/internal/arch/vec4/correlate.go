// Package vec4 is the 4-lane correlation backend. It is specialized for
// 3x3 kernels; output columns that do not fill a whole vector are computed
// with the scalar per-tap formula.
package vec4

import "github.com/cwbudde/algo-conv2d/dsp/conv2d/internal/arch/registry"

// Correlate computes the valid 3x3 cross-correlation of src with k.
func Correlate(dst []float64, src registry.Plane, k registry.Taps, stride int) {
	if k.Size != 3 || len(k.Data) != 9 {
		panic("conv2d: vec4 backend requires a 3x3 kernel")
	}

	width := src.Width
	outH := (src.Height-3)/stride + 1
	outW := (width-3)/stride + 1
	if len(dst) != outH*outW {
		panic("conv2d: output length mismatch")
	}

	k00, k01, k02 := set1(k.Data[0]), set1(k.Data[1]), set1(k.Data[2])
	k10, k11, k12 := set1(k.Data[3]), set1(k.Data[4]), set1(k.Data[5])
	k20, k21, k22 := set1(k.Data[6]), set1(k.Data[7]), set1(k.Data[8])

	for i := 0; i < outH; i++ {
		r0 := src.Data[(i*stride+0)*width : (i*stride+1)*width]
		r1 := src.Data[(i*stride+1)*width : (i*stride+2)*width]
		r2 := src.Data[(i*stride+2)*width : (i*stride+3)*width]
		out := dst[i*outW : (i+1)*outW]

		j := 0
		// The rightmost tap of the last lane must stay inside the row.
		for ; j+lanes <= outW && (j+lanes-1)*stride+2 < width; j += lanes {
			base := j * stride

			var sum vec
			sum = mulAdd(sum, load(r0, base+0, stride), k00)
			sum = mulAdd(sum, load(r0, base+1, stride), k01)
			sum = mulAdd(sum, load(r0, base+2, stride), k02)

			sum = mulAdd(sum, load(r1, base+0, stride), k10)
			sum = mulAdd(sum, load(r1, base+1, stride), k11)
			sum = mulAdd(sum, load(r1, base+2, stride), k12)

			sum = mulAdd(sum, load(r2, base+0, stride), k20)
			sum = mulAdd(sum, load(r2, base+1, stride), k21)
			sum = mulAdd(sum, load(r2, base+2, stride), k22)

			store(out, j, sum)
		}

		rows := [3][]float64{r0, r1, r2}
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
