package plane

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
)

// Stats holds statistics of one image plane.
type Stats struct {
	Length   int
	Mean     float64
	RMS      float64
	Max      float64
	MaxPos   int
	Min      float64
	MinPos   int
	Range    float64 // max - min
	Variance float64
	StdDev   float64
	Energy   float64 // sum of squares

	// Clipped counts samples below 0 or above 1.
	Clipped int
}

// ClippedFraction returns Clipped / Length.
func (s Stats) ClippedFraction() float64 {
	if s.Length == 0 {
		return 0
	}
	return float64(s.Clipped) / float64(s.Length)
}

func (s Stats) String() string {
	return fmt.Sprintf("mean=%.4g std=%.4g min=%.4g max=%.4g clipped=%.2f%%",
		s.Mean, s.StdDev, s.Min, s.Max, 100*s.ClippedFraction())
}

// Calculate computes all statistics of data in a single pass.
func Calculate(data []float64) Stats {
	n := len(data)
	if n == 0 {
		return Stats{}
	}

	var (
		mean    float64
		m2      float64
		sumSq   float64
		maxVal  = data[0]
		maxPos  int
		minVal  = data[0]
		minPos  int
		clipped int
	)

	for i, x := range data {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}
		if x < minVal {
			minVal = x
			minPos = i
		}

		if x < 0 || x > 1 {
			clipped++
		}
	}

	nf := float64(n)
	variance := m2 / nf

	return Stats{
		Length:   n,
		Mean:     mean,
		RMS:      math.Sqrt(sumSq / nf),
		Max:      maxVal,
		MaxPos:   maxPos,
		Min:      minVal,
		MinPos:   minPos,
		Range:    maxVal - minVal,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Energy:   sumSq,
		Clipped:  clipped,
	}
}

// Channels returns one Stats per channel of img, or nil for a nil or
// released image.
func Channels(img *conv2d.Image) []Stats {
	if img == nil || img.Data == nil {
		return nil
	}
	out := make([]Stats, img.Channels)
	for c := range out {
		out[c] = Calculate(img.Plane(c))
	}
	return out
}

// Image returns statistics over all channels of img together.
func Image(img *conv2d.Image) Stats {
	if img == nil {
		return Stats{}
	}
	return Calculate(img.Data)
}
