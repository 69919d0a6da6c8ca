package cnn

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
	"github.com/cwbudde/algo-conv2d/dsp/imageio"
)

// thresholdModel predicts class 1 when the top-left inner pixel exceeds 0.5.
func thresholdModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(centerKernel(t), []float64{0, 0, 0, 0, 1, 0, 0, 0}, []float64{0.5, 0}, 4, 4)
	require.NoError(t, err)
	return m
}

func writeTensor(t *testing.T, path string, img *conv2d.Image) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, imageio.WriteTensor(f, img))
	require.NoError(t, f.Close())
}

func TestInfer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bin")
	writeTensor(t, path, image4(t, [4]float64{1, 0, 0, 0}))

	class, err := Infer(conv2d.EngineVec4, thresholdModel(t), path)
	require.NoError(t, err)
	assert.Equal(t, 1, class)

	bad := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(bad, make([]byte, 10), 0o600))
	_, err = Infer(conv2d.EngineVec4, thresholdModel(t), bad)
	assert.ErrorIs(t, err, imageio.ErrMalformed)
}

func TestEvaluate(t *testing.T) {
	dir := t.TempDir()
	writeTensor(t, filepath.Join(dir, "NORMAL", "a.bin"), image4(t, [4]float64{}))
	writeTensor(t, filepath.Join(dir, "NORMAL", "b.bin"), image4(t, [4]float64{0.1, 1, 1, 1}))
	writeTensor(t, filepath.Join(dir, "PNEUMONIA", "c.bin"), image4(t, [4]float64{1, 0, 0, 0}))
	writeTensor(t, filepath.Join(dir, "PNEUMONIA", "d.bin"), image4(t, [4]float64{}))
	writeTensor(t, filepath.Join(dir, "OTHER", "e.bin"), image4(t, [4]float64{}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "NORMAL", "notes.txt"), []byte("x"), 0o600))

	for _, mode := range modes {
		rep, err := Evaluate(mode, thresholdModel(t), dir)
		require.NoError(t, err, mode)
		assert.Equal(t, 4, rep.Samples, mode)
		assert.Equal(t, 3, rep.Correct, mode)
		assert.InDelta(t, 0.75, rep.Accuracy(), 1e-12)
		assert.Equal(t, rep.Elapsed/4, rep.PerSample())
	}
}

func TestEvaluate_CustomLabels(t *testing.T) {
	dir := t.TempDir()
	writeTensor(t, filepath.Join(dir, "pos", "a.bin"), image4(t, [4]float64{1, 0, 0, 0}))
	writeTensor(t, filepath.Join(dir, "NORMAL", "b.bin"), image4(t, [4]float64{}))

	rep, err := Evaluate(conv2d.EngineBaseline, thresholdModel(t), dir, WithLabels(map[string]int{"pos": 1}))
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Samples)
	assert.Equal(t, 1, rep.Correct)
}

func TestEvaluate_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "NORMAL"), 0o755))
	_, err := Evaluate(conv2d.EngineBaseline, thresholdModel(t), dir)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = Evaluate(conv2d.EngineBaseline, thresholdModel(t), filepath.Join(dir, "missing"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "NORMAL", "bad.bin"), []byte{1, 2, 3}, 0o600))
	_, err = Evaluate(conv2d.EngineBaseline, thresholdModel(t), dir)
	assert.ErrorIs(t, err, imageio.ErrMalformed)
}

func TestReport(t *testing.T) {
	var empty Report
	assert.Zero(t, empty.Accuracy())
	assert.Zero(t, empty.PerSample())

	r := Report{Samples: 4, Correct: 1, Elapsed: 8 * time.Millisecond}
	assert.InDelta(t, 0.25, r.Accuracy(), 1e-12)
	assert.Equal(t, 2*time.Millisecond, r.PerSample())
	assert.Equal(t, "samples=4 accuracy=25.00% total=8ms per-sample=2ms", r.String())
}
