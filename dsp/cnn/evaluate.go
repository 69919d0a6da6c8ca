package cnn

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
	"github.com/cwbudde/algo-conv2d/dsp/imageio"
)

// DefaultLabels maps class directory names to class indices.
var DefaultLabels = map[string]int{
	"NORMAL":    0,
	"PNEUMONIA": 1,
}

// TensorExt is the file extension of evaluation samples.
const TensorExt = ".bin"

// Report summarizes a dataset evaluation.
type Report struct {
	Samples int
	Correct int
	Elapsed time.Duration
}

// Accuracy returns the fraction of correctly classified samples.
func (r Report) Accuracy() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Samples)
}

// PerSample returns the mean wall time per sample.
func (r Report) PerSample() time.Duration {
	if r.Samples == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Samples)
}

func (r Report) String() string {
	return fmt.Sprintf("samples=%d accuracy=%.2f%% total=%s per-sample=%s",
		r.Samples, 100*r.Accuracy(), r.Elapsed, r.PerSample())
}

// EvalOption configures Evaluate.
type EvalOption func(*evalConfig)

type evalConfig struct {
	labels map[string]int
}

// WithLabels replaces DefaultLabels.
func WithLabels(labels map[string]int) EvalOption {
	return func(c *evalConfig) {
		c.labels = labels
	}
}

// Infer loads one tensor file and classifies it.
func Infer(mode conv2d.EngineMode, m *Model, path string) (int, error) {
	img, err := imageio.LoadTensor(path, m.InputHeight, m.InputWidth)
	if err != nil {
		return 0, err
	}
	defer img.Release()

	class, err := m.Classify(mode, img)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return class, nil
}

// Evaluate classifies every tensor under dir/<label>/ and counts matches.
// Directories whose name is not a known label are skipped. The first
// failing sample aborts the evaluation.
func Evaluate(mode conv2d.EngineMode, m *Model, dir string, opts ...EvalOption) (Report, error) {
	cfg := evalConfig{labels: DefaultLabels}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Report{}, err
	}

	var rep Report
	start := time.Now()

	for _, e := range entries {
		label, ok := cfg.labels[e.Name()]
		if !e.IsDir() || !ok {
			continue
		}

		files, err := tensorFiles(filepath.Join(dir, e.Name()))
		if err != nil {
			return rep, err
		}
		for _, path := range files {
			predicted, err := Infer(mode, m, path)
			if err != nil {
				return rep, err
			}
			if predicted == label {
				rep.Correct++
			}
			rep.Samples++
		}
	}

	rep.Elapsed = time.Since(start)
	if rep.Samples == 0 {
		return rep, fmt.Errorf("%w: no %s files under %s", ErrEmptyDataset, TensorExt, dir)
	}
	return rep, nil
}

func tensorFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), TensorExt) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
