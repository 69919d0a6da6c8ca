package conv2d

import "fmt"

// supportedKernelSizes are the kernel sizes accepted by Validate.
var supportedKernelSizes = []int{3, 5, 7}

// Params groups the inputs of one convolution.
type Params struct {
	Image  *Image
	Kernel *Kernel
	Stride int
}

// Validate checks mode and params before any computation. It returns nil
// when the call may proceed, or an error wrapping ErrInvalidArgument.
// Checks run in order: engine mode, kernel, image, stride, kernel extent.
func Validate(mode EngineMode, p Params) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: engine mode %d: %w", ErrInvalidArgument, int(mode), ErrNotSupported)
	}
	if err := validateKernel(p.Kernel); err != nil {
		return err
	}
	if err := validateImage(p.Image); err != nil {
		return err
	}
	// Only stride 1 is implemented.
	if p.Stride != 1 {
		return fmt.Errorf("%w: stride %d, only 1 is supported", ErrInvalidArgument, p.Stride)
	}
	if p.Image.Height < p.Kernel.Size || p.Image.Width < p.Kernel.Size {
		return fmt.Errorf("%w: %dx%d kernel larger than %dx%d image",
			ErrInvalidArgument, p.Kernel.Size, p.Kernel.Size, p.Image.Height, p.Image.Width)
	}
	return nil
}

func validateKernel(k *Kernel) error {
	if k == nil || k.Data == nil {
		return fmt.Errorf("%w: nil kernel", ErrInvalidArgument)
	}
	if !isSupportedKernelSize(k.Size) {
		return fmt.Errorf("%w: kernel size %d not in %v", ErrInvalidArgument, k.Size, supportedKernelSizes)
	}
	if len(k.Data) != k.Size*k.Size {
		return fmt.Errorf("%w: kernel has %d coefficients, want %d", ErrInvalidArgument, len(k.Data), k.Size*k.Size)
	}
	if !k.Type.Valid() {
		return fmt.Errorf("%w: unknown kernel type %d", ErrInvalidArgument, int(k.Type))
	}
	return nil
}

func validateImage(im *Image) error {
	if im == nil || im.Data == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}
	if im.Height <= 0 || im.Width <= 0 || im.Channels <= 0 {
		return fmt.Errorf("%w: image dimensions %dx%dx%d", ErrInvalidArgument, im.Height, im.Width, im.Channels)
	}
	if want := im.Height * im.Width * im.Channels; len(im.Data) != want {
		return fmt.Errorf("%w: image buffer length %d, want %d", ErrInvalidArgument, len(im.Data), want)
	}
	return nil
}

func isSupportedKernelSize(size int) bool {
	for _, s := range supportedKernelSizes {
		if s == size {
			return true
		}
	}
	return false
}

// OutputSize returns the output dimensions for an h x w image and a
// k x k kernel at the given stride.
func OutputSize(h, w, k, stride int) (outH, outW int) {
	return (h-k)/stride + 1, (w-k)/stride + 1
}
