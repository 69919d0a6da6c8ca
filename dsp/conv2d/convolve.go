package conv2d

import (
	"fmt"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d/internal/arch/generic"
	"github.com/cwbudde/algo-conv2d/dsp/conv2d/internal/arch/registry"
)

// Convolve correlates a single-channel image with the kernel using the
// backend selected by mode and returns a newly allocated image.
//
// Multi-channel images are rejected; use ConvolveChannels.
func Convolve(mode EngineMode, p Params) (*Image, error) {
	if err := Validate(mode, p); err != nil {
		return nil, err
	}
	if p.Image.Channels != 1 {
		return nil, fmt.Errorf("%w: Convolve takes 1 channel, got %d", ErrInvalidArgument, p.Image.Channels)
	}

	entry, err := resolveBackend(registry.Global, mode, p.Kernel.Size)
	if err != nil {
		return nil, err
	}

	return run(entry, p), nil
}

// resolveBackend picks the registry entry for mode. Kernel sizes the entry
// cannot handle route to the baseline for the whole call.
func resolveBackend(reg *registry.OpRegistry, mode EngineMode, kernelSize int) (*registry.OpEntry, error) {
	entry := reg.LookupName(mode.String())
	if entry == nil || entry.Correlate == nil {
		return nil, fmt.Errorf("%w: no backend registered for %s", ErrNotSupported, mode)
	}
	if entry.SupportsKernel(kernelSize) {
		return entry, nil
	}

	fallback := reg.LookupName(generic.Name)
	if fallback == nil || fallback.Correlate == nil {
		return nil, fmt.Errorf("%w: %s cannot run %dx%d kernels and no baseline is registered",
			ErrUnsupportedConfiguration, mode, kernelSize, kernelSize)
	}
	return fallback, nil
}

// run allocates the output and invokes the backend on validated params.
func run(entry *registry.OpEntry, p Params) *Image {
	im, k := p.Image, p.Kernel
	outH, outW := OutputSize(im.Height, im.Width, k.Size, p.Stride)

	out := &Image{
		Data:     make([]float64, outH*outW),
		Height:   outH,
		Width:    outW,
		Channels: 1,
	}

	entry.Correlate(
		out.Data,
		registry.Plane{Data: im.Data[:im.PlaneSize()], Height: im.Height, Width: im.Width},
		registry.Taps{Data: k.Data, Size: k.Size},
		p.Stride,
	)

	return out
}
