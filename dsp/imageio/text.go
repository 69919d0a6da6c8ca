package imageio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
)

// ReadFloats reads exactly n whitespace-separated floats from r. Values
// after the first n are ignored.
func ReadFloats(r io.Reader, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: value count %d", conv2d.ErrInvalidArgument, n)
	}

	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	out := make([]float64, 0, n)
	for len(out) < n && sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d: %q is not a number", ErrMalformed, len(out), sc.Text())
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) < n {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrMalformed, len(out), n)
	}
	return out, nil
}

func readFloatsFile(path string, n int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := ReadFloats(f, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// LoadKernel reads a size x size kernel. The result is tagged
// conv2d.KernelCustom.
func LoadKernel(path string, size int) (*conv2d.Kernel, error) {
	if size < 3 || size%2 == 0 {
		return nil, fmt.Errorf("%w: kernel size %d must be odd and >= 3", conv2d.ErrInvalidArgument, size)
	}
	data, err := readFloatsFile(path, size*size)
	if err != nil {
		return nil, err
	}
	return conv2d.NewKernel(data, size, conv2d.KernelCustom)
}

// LoadMatrix reads a rows x cols row-major matrix.
func LoadMatrix(path string, rows, cols int) ([]float64, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: matrix %dx%d", conv2d.ErrInvalidArgument, rows, cols)
	}
	return readFloatsFile(path, rows*cols)
}

// LoadVector reads n values.
func LoadVector(path string, n int) ([]float64, error) {
	return readFloatsFile(path, n)
}
