// Package core holds numeric helpers shared by the image packages.
package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps, absolute for
// values near zero and relative otherwise.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// RelativeError returns |got-want| / max(|want|, 1).
// The floor of 1 keeps samples near zero from dominating.
func RelativeError(got, want float64) float64 {
	return math.Abs(got-want) / math.Max(math.Abs(want), 1)
}

// MaxRelativeError returns the largest RelativeError over paired elements
// and the index where it occurs. Slices must have equal length.
func MaxRelativeError(got, want []float64) (maxErr float64, index int) {
	if len(got) != len(want) {
		panic("core: slice length mismatch")
	}
	index = -1
	for i := range got {
		if e := RelativeError(got[i], want[i]); e > maxErr || index < 0 {
			maxErr, index = e, i
		}
	}
	return maxErr, index
}

// QuantizeUnit maps a sample in [0,1] to an 8-bit level, clamping first and
// rounding to nearest. NaN maps to 0.
func QuantizeUnit(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(Clamp(v, 0, 1) * 255))
}
