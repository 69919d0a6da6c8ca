package cnn

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
	"github.com/cwbudde/algo-conv2d/dsp/imageio"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrShape reports weights or inputs whose dimensions do not match the
	// model.
	ErrShape = errors.New("cnn: shape mismatch")

	// ErrEmptyDataset reports an evaluation directory without samples.
	ErrEmptyDataset = errors.New("cnn: empty dataset")
)

// Model is a conv -> ReLU -> linear classifier.
type Model struct {
	Kernel *conv2d.Kernel

	// Weight is OutFeatures x InFeatures, row-major.
	Weight []float64
	Bias   []float64

	InFeatures  int
	OutFeatures int

	InputHeight int
	InputWidth  int
}

// Paths names the model's weight files.
type Paths struct {
	Kernel string
	Weight string
	Bias   string
}

// Option configures LoadModel.
type Option func(*config)

type config struct {
	kernelSize  int
	inputHeight int
	inputWidth  int
	classes     int
}

func defaultConfig() config {
	return config{
		kernelSize:  3,
		inputHeight: 64,
		inputWidth:  64,
		classes:     2,
	}
}

// WithKernelSize sets the convolution kernel size (default 3).
func WithKernelSize(size int) Option {
	return func(c *config) {
		c.kernelSize = size
	}
}

// WithInputSize sets the expected input tensor dimensions (default 64x64).
func WithInputSize(height, width int) Option {
	return func(c *config) {
		c.inputHeight = height
		c.inputWidth = width
	}
}

// WithClasses sets the number of output classes (default 2).
func WithClasses(n int) Option {
	return func(c *config) {
		c.classes = n
	}
}

// LoadModel reads the kernel, weight matrix and bias vector.
func LoadModel(paths Paths, opts ...Option) (*Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.inputHeight < cfg.kernelSize || cfg.inputWidth < cfg.kernelSize {
		return nil, fmt.Errorf("%w: %dx%d input smaller than %dx%d kernel",
			ErrShape, cfg.inputHeight, cfg.inputWidth, cfg.kernelSize, cfg.kernelSize)
	}
	if cfg.classes < 1 {
		return nil, fmt.Errorf("%w: %d classes", ErrShape, cfg.classes)
	}

	k, err := imageio.LoadKernel(paths.Kernel, cfg.kernelSize)
	if err != nil {
		return nil, fmt.Errorf("cnn: kernel: %w", err)
	}

	outH, outW := conv2d.OutputSize(cfg.inputHeight, cfg.inputWidth, k.Size, 1)
	in := outH * outW

	weight, err := imageio.LoadMatrix(paths.Weight, cfg.classes, in)
	if err != nil {
		return nil, fmt.Errorf("cnn: weight: %w", err)
	}
	bias, err := imageio.LoadVector(paths.Bias, cfg.classes)
	if err != nil {
		return nil, fmt.Errorf("cnn: bias: %w", err)
	}

	return NewModel(k, weight, bias, cfg.inputHeight, cfg.inputWidth)
}

// NewModel assembles a model from in-memory weights. The number of classes
// is len(bias).
func NewModel(k *conv2d.Kernel, weight, bias []float64, inputHeight, inputWidth int) (*Model, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: nil kernel", ErrShape)
	}
	if len(bias) == 0 {
		return nil, fmt.Errorf("%w: no classes", ErrShape)
	}

	outH, outW := conv2d.OutputSize(inputHeight, inputWidth, k.Size, 1)
	if outH <= 0 || outW <= 0 {
		return nil, fmt.Errorf("%w: %dx%d input smaller than %dx%d kernel",
			ErrShape, inputHeight, inputWidth, k.Size, k.Size)
	}

	m := &Model{
		Kernel:      k,
		Weight:      weight,
		Bias:        bias,
		InFeatures:  outH * outW,
		OutFeatures: len(bias),
		InputHeight: inputHeight,
		InputWidth:  inputWidth,
	}
	if len(weight) != m.InFeatures*m.OutFeatures {
		return nil, fmt.Errorf("%w: weight has %d values, want %dx%d",
			ErrShape, len(weight), m.OutFeatures, m.InFeatures)
	}
	return m, nil
}

// Logits runs the network on img and returns one score per class.
func (m *Model) Logits(mode conv2d.EngineMode, img *conv2d.Image) ([]float64, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil input", conv2d.ErrInvalidArgument)
	}
	if img.Height != m.InputHeight || img.Width != m.InputWidth {
		return nil, fmt.Errorf("%w: input %v, want %dx%d", ErrShape, img, m.InputHeight, m.InputWidth)
	}

	features, err := conv2d.ConvolveChannels(mode, conv2d.Params{Image: img, Kernel: m.Kernel, Stride: 1})
	if err != nil {
		return nil, err
	}
	defer features.Release()

	flat := features.Data
	if len(flat) != m.InFeatures {
		return nil, fmt.Errorf("%w: %d features, want %d", ErrShape, len(flat), m.InFeatures)
	}
	relu(flat)

	logits := make([]float64, m.OutFeatures)
	for o := range logits {
		row := m.Weight[o*m.InFeatures : (o+1)*m.InFeatures]
		logits[o] = m.Bias[o] + vecmath.DotProduct(flat, row)
	}
	return logits, nil
}

// Classify returns the index of the highest logit. Ties resolve to the
// lower class.
func (m *Model) Classify(mode conv2d.EngineMode, img *conv2d.Image) (int, error) {
	logits, err := m.Logits(mode, img)
	if err != nil {
		return 0, err
	}
	return argmax(logits), nil
}

func relu(x []float64) {
	for i, v := range x {
		if v < 0 {
			x[i] = 0
		}
	}
}

func argmax(x []float64) int {
	best := 0
	for i := 1; i < len(x); i++ {
		if x[i] > x[best] {
			best = i
		}
	}
	return best
}
