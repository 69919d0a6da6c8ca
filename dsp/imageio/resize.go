package imageio

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
)

// Resize returns a bilinear resampling of img to width x height.
//
// Source coordinates use the half-pixel transform src = (dst+0.5)*scale-0.5.
// Neighbors outside the image are clamped to the nearest edge sample.
func Resize(img *conv2d.Image, width, height int) (*conv2d.Image, error) {
	if img == nil || img.Data == nil {
		return nil, fmt.Errorf("%w: nil image", conv2d.ErrInvalidArgument)
	}
	out, err := conv2d.NewImage(height, width, img.Channels)
	if err != nil {
		return nil, err
	}

	oldW, oldH := img.Width, img.Height
	scaleX := float64(oldW) / float64(width)
	scaleY := float64(oldH) / float64(height)

	for c := 0; c < img.Channels; c++ {
		src, dst := img.Plane(c), out.Plane(c)
		for y := 0; y < height; y++ {
			sy := (float64(y)+0.5)*scaleY - 0.5
			fy := math.Floor(sy)
			dy := sy - fy
			y0, y1 := clampIndex(int(fy), oldH), clampIndex(int(fy)+1, oldH)

			for x := 0; x < width; x++ {
				sx := (float64(x)+0.5)*scaleX - 0.5
				fx := math.Floor(sx)
				dx := sx - fx
				x0, x1 := clampIndex(int(fx), oldW), clampIndex(int(fx)+1, oldW)

				v00 := src[y0*oldW+x0]
				v01 := src[y0*oldW+x1]
				v10 := src[y1*oldW+x0]
				v11 := src[y1*oldW+x1]

				dst[y*width+x] = (1-dx)*(1-dy)*v00 +
					dx*(1-dy)*v01 +
					(1-dx)*dy*v10 +
					dx*dy*v11
			}
		}
	}
	return out, nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
