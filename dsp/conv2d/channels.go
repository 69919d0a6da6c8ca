package conv2d

import "fmt"

// ConvolveChannels correlates every channel of a planar image with the same
// kernel and reassembles the results into one planar output image.
//
// Channels are processed in order. If any channel fails, the partially
// filled output is released and the channel's error is returned.
func ConvolveChannels(mode EngineMode, p Params) (*Image, error) {
	if err := Validate(mode, p); err != nil {
		return nil, err
	}

	im := p.Image
	outH, outW := OutputSize(im.Height, im.Width, p.Kernel.Size, p.Stride)
	out := &Image{
		Data:     make([]float64, outH*outW*im.Channels),
		Height:   outH,
		Width:    outW,
		Channels: im.Channels,
	}

	for c := 0; c < im.Channels; c++ {
		chParams := p
		chParams.Image = im.PlaneImage(c)

		chOut, err := Convolve(mode, chParams)
		if err != nil {
			out.Release()
			return nil, fmt.Errorf("conv2d: channel %d: %w", c, err)
		}

		copy(out.Plane(c), chOut.Data)
		chOut.Release()
	}

	return out, nil
}
