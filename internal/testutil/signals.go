package testutil

import (
	"math/rand"
)

// DeterministicNoise returns uniform samples in [-amplitude, amplitude)
// from a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Ramp returns 1, 2, ..., n.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

// Impulse returns an h*w row-major plane with a single 1 at (y, x).
func Impulse(h, w, y, x int) []float64 {
	out := make([]float64, h*w)
	if y >= 0 && y < h && x >= 0 && x < w {
		out[y*w+x] = 1
	}
	return out
}

// DC returns a constant-valued slice.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Repeat concatenates count copies of plane.
func Repeat(plane []float64, count int) []float64 {
	out := make([]float64, 0, len(plane)*count)
	for i := 0; i < count; i++ {
		out = append(out, plane...)
	}
	return out
}
