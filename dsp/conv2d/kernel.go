package conv2d

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// KernelType identifies a kernel family.
type KernelType int

const (
	KernelSharpen KernelType = iota
	KernelBoxBlur
	KernelGaussianBlur
	KernelSobelX
	KernelSobelY

	// KernelCustom tags coefficients that were not generated by BuildKernel.
	KernelCustom
)

var kernelTypeNames = map[KernelType]string{
	KernelSharpen:      "sharpen",
	KernelBoxBlur:      "box-blur",
	KernelGaussianBlur: "gaussian-blur",
	KernelSobelX:       "sobel-x",
	KernelSobelY:       "sobel-y",
	KernelCustom:       "custom",
}

// String returns the kernel type's CLI name.
func (t KernelType) String() string {
	if name, ok := kernelTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("KernelType(%d)", int(t))
}

// Valid reports whether t is a known kernel type.
func (t KernelType) Valid() bool {
	_, ok := kernelTypeNames[t]
	return ok
}

// ParseKernelType resolves a CLI name such as "sharpen" or "sobel-x".
// Underscores are accepted in place of dashes.
func ParseKernelType(name string) (KernelType, error) {
	name = strings.ReplaceAll(strings.ToLower(name), "_", "-")
	aliases := map[string]KernelType{
		"blur":     KernelBoxBlur,
		"box":      KernelBoxBlur,
		"gaussian": KernelGaussianBlur,
		"edge":     KernelSobelX,
	}
	if t, ok := aliases[name]; ok {
		return t, nil
	}
	for t, n := range kernelTypeNames {
		if n == name && t != KernelCustom {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kernel type %q", ErrUnsupportedConfiguration, name)
}

// Kernel is a square row-major coefficient matrix.
type Kernel struct {
	Data []float64
	Size int
	Type KernelType
}

// NewKernel wraps externally produced coefficients. Size must be odd and
// at least 3, and len(data) must equal size*size. The slice is not copied.
func NewKernel(data []float64, size int, t KernelType) (*Kernel, error) {
	if size < 3 || size%2 == 0 {
		return nil, fmt.Errorf("%w: kernel size %d must be odd and >= 3", ErrInvalidArgument, size)
	}
	if len(data) != size*size {
		return nil, fmt.Errorf("%w: kernel has %d coefficients, want %d", ErrInvalidArgument, len(data), size*size)
	}
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown kernel type %d", ErrInvalidArgument, int(t))
	}
	return &Kernel{Data: data, Size: size, Type: t}, nil
}

// At returns the coefficient at row u, column v.
func (k *Kernel) At(u, v int) float64 {
	return k.Data[u*k.Size+v]
}

// Sum returns the sum of all coefficients.
func (k *Kernel) Sum() float64 {
	return vecmath.Sum(k.Data)
}

// Release drops the coefficient buffer. Calling it more than once is safe.
func (k *Kernel) Release() {
	if k == nil {
		return
	}
	k.Data = nil
}

// KernelOption configures kernel generation.
type KernelOption func(*kernelConfig)

type kernelConfig struct {
	sigma float64
}

// WithSigma overrides the Gaussian standard deviation (default size/3).
// Non-positive values are ignored.
func WithSigma(sigma float64) KernelOption {
	return func(c *kernelConfig) {
		if sigma > 0 {
			c.sigma = sigma
		}
	}
}

var (
	sharpen3 = [9]float64{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	}
	sobelX3 = [9]float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}
	sobelY3 = [9]float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	}
)

// BuildKernel returns freshly allocated coefficients for kernel type t.
//
// Sharpen, SobelX and SobelY require size 3. BoxBlur and GaussianBlur accept
// any odd size >= 3. Any other combination returns a nil kernel and an error
// wrapping ErrUnsupportedConfiguration.
func BuildKernel(t KernelType, size int, opts ...KernelOption) (*Kernel, error) {
	if size < 3 || size%2 == 0 {
		return nil, fmt.Errorf("%w: %s kernel size %d must be odd and >= 3", ErrUnsupportedConfiguration, t, size)
	}

	cfg := kernelConfig{sigma: float64(size) / 3}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var data []float64
	switch t {
	case KernelSharpen:
		data = fixed3(sharpen3, size)
	case KernelSobelX:
		data = fixed3(sobelX3, size)
	case KernelSobelY:
		data = fixed3(sobelY3, size)
	case KernelBoxBlur:
		data = boxBlur(size)
	case KernelGaussianBlur:
		data = gaussianBlur(size, cfg.sigma)
	default:
		return nil, fmt.Errorf("%w: kernel type %s cannot be generated", ErrUnsupportedConfiguration, t)
	}

	if data == nil {
		return nil, fmt.Errorf("%w: %s kernel exists only as 3x3, got size %d", ErrUnsupportedConfiguration, t, size)
	}

	return &Kernel{Data: data, Size: size, Type: t}, nil
}

// fixed3 copies a 3x3 table, or returns nil for any other size.
func fixed3(table [9]float64, size int) []float64 {
	if size != 3 {
		return nil
	}
	data := make([]float64, 9)
	copy(data, table[:])
	return data
}

func boxBlur(size int) []float64 {
	n := size * size
	data := make([]float64, n)
	c := 1 / float64(n)
	for i := range data {
		data[i] = c
	}
	return data
}

// gaussianBlur samples exp(-(x²+y²)/(2σ²)) around the center and
// renormalizes to unit sum.
func gaussianBlur(size int, sigma float64) []float64 {
	data := make([]float64, size*size)
	half := size / 2
	den := 2 * sigma * sigma

	for u := 0; u < size; u++ {
		y := float64(u - half)
		for v := 0; v < size; v++ {
			x := float64(v - half)
			data[u*size+v] = math.Exp(-(x*x + y*y) / den)
		}
	}

	vecmath.ScaleBlockInPlace(data, 1/vecmath.Sum(data))
	return data
}
