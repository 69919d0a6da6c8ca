package cnn

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
	"github.com/cwbudde/algo-conv2d/dsp/imageio"
)

var modes = []conv2d.EngineMode{conv2d.EngineBaseline, conv2d.EngineVec4, conv2d.EngineVec8}

// centerKernel passes the window center through unchanged.
func centerKernel(t *testing.T) *conv2d.Kernel {
	t.Helper()
	k, err := conv2d.NewKernel([]float64{0, 0, 0, 0, 1, 0, 0, 0, 0}, 3, conv2d.KernelCustom)
	require.NoError(t, err)
	return k
}

// image4 returns a 4x4 image whose inner 2x2 block is inner.
func image4(t *testing.T, inner [4]float64) *conv2d.Image {
	t.Helper()
	img, err := conv2d.NewImage(4, 4, 1)
	require.NoError(t, err)
	img.Set(0, 1, 1, inner[0])
	img.Set(0, 1, 2, inner[1])
	img.Set(0, 2, 1, inner[2])
	img.Set(0, 2, 2, inner[3])
	return img
}

func TestNewModel(t *testing.T) {
	m, err := NewModel(centerKernel(t), make([]float64, 8), []float64{0, 0}, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, m.InFeatures)
	assert.Equal(t, 2, m.OutFeatures)

	_, err = NewModel(centerKernel(t), make([]float64, 7), []float64{0, 0}, 4, 4)
	assert.ErrorIs(t, err, ErrShape)

	_, err = NewModel(centerKernel(t), nil, nil, 4, 4)
	assert.ErrorIs(t, err, ErrShape)

	_, err = NewModel(centerKernel(t), nil, []float64{0}, 2, 4)
	assert.ErrorIs(t, err, ErrShape)

	_, err = NewModel(nil, nil, []float64{0}, 4, 4)
	assert.ErrorIs(t, err, ErrShape)
}

func TestLogits_ReLUAndLinear(t *testing.T) {
	m, err := NewModel(centerKernel(t),
		[]float64{
			1, 1, 0, 0,
			0, 0, 1, 1,
		},
		[]float64{0.5, 0}, 4, 4)
	require.NoError(t, err)

	img := image4(t, [4]float64{3, -1, -4, 2})
	for _, mode := range modes {
		logits, err := m.Logits(mode, img)
		require.NoError(t, err, mode)
		// ReLU zeroes -1 and -4 before the linear layer.
		assert.InDeltaSlice(t, []float64{3.5, 2}, logits, 1e-12, mode)

		class, err := m.Classify(mode, img)
		require.NoError(t, err)
		assert.Equal(t, 0, class, mode)
	}
}

func TestClassify_TieKeepsLowerClass(t *testing.T) {
	m, err := NewModel(centerKernel(t), make([]float64, 12), []float64{1, 1, 0}, 4, 4)
	require.NoError(t, err)

	class, err := m.Classify(conv2d.EngineBaseline, image4(t, [4]float64{}))
	require.NoError(t, err)
	assert.Equal(t, 0, class)
}

func TestLogits_RejectsWrongInput(t *testing.T) {
	m, err := NewModel(centerKernel(t), make([]float64, 8), []float64{0, 0}, 4, 4)
	require.NoError(t, err)

	other, _ := conv2d.NewImage(5, 4, 1)
	_, err = m.Logits(conv2d.EngineBaseline, other)
	assert.ErrorIs(t, err, ErrShape)

	_, err = m.Logits(conv2d.EngineBaseline, nil)
	assert.ErrorIs(t, err, conv2d.ErrInvalidArgument)

	_, err = m.Logits(conv2d.EngineMode(0), image4(t, [4]float64{}))
	assert.ErrorIs(t, err, conv2d.ErrNotSupported)
}

func writeText(t *testing.T, dir, name string, values ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(values, " ")+"\n"), 0o600))
	return path
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Kernel: writeText(t, dir, "kernel.txt", "0", "0", "0", "0", "1", "0", "0", "0", "0"),
		Weight: writeText(t, dir, "fc_weight.txt", "1", "1", "0", "0", "0", "0", "1", "1"),
		Bias:   writeText(t, dir, "fc_bias.txt", "0.5", "0"),
	}

	m, err := LoadModel(paths, WithInputSize(4, 4))
	require.NoError(t, err)
	assert.Equal(t, conv2d.KernelCustom, m.Kernel.Type)
	assert.Equal(t, 4, m.InFeatures)
	assert.Equal(t, 2, m.OutFeatures)

	class, err := m.Classify(conv2d.EngineVec8, image4(t, [4]float64{0, 0, 1, 1}))
	require.NoError(t, err)
	assert.Equal(t, 1, class)

	// The default 64x64 input needs 2x3844 weights.
	_, err = LoadModel(paths)
	assert.ErrorIs(t, err, imageio.ErrMalformed)

	_, err = LoadModel(paths, WithInputSize(4, 4), WithClasses(3))
	assert.ErrorIs(t, err, imageio.ErrMalformed)

	_, err = LoadModel(paths, WithInputSize(4, 4), WithKernelSize(5))
	assert.ErrorIs(t, err, ErrShape)

	_, err = LoadModel(paths, WithInputSize(4, 4), WithClasses(0))
	assert.ErrorIs(t, err, ErrShape)
}
