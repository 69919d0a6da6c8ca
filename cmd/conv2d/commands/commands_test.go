package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
	"github.com/cwbudde/algo-conv2d/dsp/imageio"
	"github.com/cwbudde/algo-conv2d/internal/config"
)

// run executes a fresh command tree inside an empty working directory so
// no conv2d.yaml is picked up.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runLogged(t, args...)
	return out, err
}

// runLogged is run that also returns what the command logged.
func runLogged(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeImage(t *testing.T, path string, h, w, c int) {
	t.Helper()
	img, err := conv2d.NewImage(h, w, c)
	require.NoError(t, err)
	for i := range img.Data {
		img.Data[i] = float64(i%7) / 6
	}
	require.NoError(t, imageio.Save(path, img))
}

func TestSetup_MissingFlagBinding(t *testing.T) {
	a := &app{v: config.New(), bindings: make(map[*cobra.Command]binding)}
	cmd := &cobra.Command{Use: "lone"}
	a.bind(cmd, binding{"engine": "no-such-flag"})

	err := a.setup(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--no-such-flag")
	assert.Nil(t, a.cfg)
}

func TestRoot_PersistentFlagsBound(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "run.log")
	out, err := run(t, "engines", "--log-file", logFile, "--engine", "baseline")
	require.NoError(t, err)
	assert.Contains(t, out, "selected: baseline")

	_, err = os.Stat(logFile)
	assert.NoError(t, err)
}

func TestEngines(t *testing.T) {
	out, err := run(t, "engines", "--engine", "vec4")
	require.NoError(t, err)

	for _, name := range []string{"baseline", "vec4", "vec8", "3x3,5x5,7x7", "auto:"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "selected: vec4")
}

func TestFilter(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeImage(t, in, 10, 12, 3)

	stdout, err := run(t, "filter", "-i", in, "-o", out, "--kernel", "gaussian-blur", "--size", "5", "--engine", "vec8")
	require.NoError(t, err)
	assert.Contains(t, stdout, "vec8 gaussian-blur 5x5")

	res, err := imageio.Load(out, imageio.RGB)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Height)
	assert.Equal(t, 8, res.Width)
}

func TestFilter_Gray(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "edges.png")
	writeImage(t, in, 6, 6, 1)

	_, err := run(t, "filter", "-i", in, "-o", out, "-k", "sobel_x", "-c", "gray", "-e", "baseline")
	require.NoError(t, err)

	res, err := imageio.Load(out, imageio.Gray)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Height)
}

func TestFilter_Errors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeImage(t, in, 6, 6, 1)

	_, err := run(t, "filter")
	assert.Error(t, err)

	_, err = run(t, "filter", "-i", in, "--kernel", "sharpen", "--size", "5")
	assert.ErrorIs(t, err, conv2d.ErrUnsupportedConfiguration)

	_, err = run(t, "filter", "-i", in, "--engine", "gpu")
	assert.ErrorIs(t, err, conv2d.ErrNotSupported)

	_, err = run(t, "filter", "-i", filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestSpeed(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "images")
	require.NoError(t, os.MkdirAll(in, 0o755))
	writeImage(t, filepath.Join(in, "a.png"), 8, 8, 3)
	writeImage(t, filepath.Join(in, "b.png"), 9, 11, 3)
	require.NoError(t, os.WriteFile(filepath.Join(in, "readme.txt"), []byte("x"), 0o600))

	outDir := filepath.Join(dir, "out")
	stdout, logged, err := runLogged(t, "speed", "-i", in, "-o", outDir, "-k", "box-blur", "-e", "vec4", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "engine=vec4 images=2")
	assert.Contains(t, logged, "skipping readme.txt")

	for _, name := range []string{"a.png", "b.png"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}

	_, err = run(t, "speed", "-i", outDir+"-missing")
	assert.Error(t, err)
}

func writeModel(t *testing.T, dir string) []string {
	t.Helper()
	files := map[string]string{
		"k.txt": "0 0 0\n0 1 0\n0 0 0\n",
		"w.txt": "0 0 0 0\n1 0 0 0\n",
		"b.txt": "0.5 0\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return []string{
		"--kernel-path", filepath.Join(dir, "k.txt"),
		"--fc-weight", filepath.Join(dir, "w.txt"),
		"--fc-bias", filepath.Join(dir, "b.txt"),
		"--input-height", "4",
		"--input-width", "4",
	}
}

func writeTensor(t *testing.T, path string, center float64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img, _ := conv2d.NewImage(4, 4, 1)
	img.Set(0, 1, 1, center)

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, imageio.WriteTensor(f, img))
	require.NoError(t, f.Close())
}

func TestInfer(t *testing.T) {
	dir := t.TempDir()
	model := writeModel(t, dir)
	x := filepath.Join(dir, "x.bin")
	writeTensor(t, x, 1)

	out, err := run(t, append([]string{"infer", "-i", x}, model...)...)
	require.NoError(t, err)
	assert.Equal(t, "predicted class: 1\n", out)
}

func TestInfer_Eval(t *testing.T) {
	dir := t.TempDir()
	model := writeModel(t, dir)
	data := filepath.Join(dir, "test")
	writeTensor(t, filepath.Join(data, "NORMAL", "a.bin"), 0)
	writeTensor(t, filepath.Join(data, "PNEUMONIA", "b.bin"), 1)

	out, err := run(t, append([]string{"infer", "--eval", "-i", data, "-e", "vec8"}, model...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "samples: 2\n")
	assert.Contains(t, out, "accuracy: 100.00%\n")
}

func TestInfer_MissingModel(t *testing.T) {
	x := filepath.Join(t.TempDir(), "x.bin")
	writeTensor(t, x, 0)

	_, err := run(t, "infer", "-i", x)
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	out, err := run(t, "config", "--engine", "vec8", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "engine: vec8")
	assert.Contains(t, out, "level: warn")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestConfig_Environment(t *testing.T) {
	t.Setenv("CONV2D_FILTER_KERNEL", "sobel-y")
	out, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "kernel: sobel-y")
}
