package imageio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
)

const float32Size = 4

// ReadTensor decodes h*w little-endian float32 samples into a
// single-channel image. data must hold exactly h*w*4 bytes.
func ReadTensor(data []byte, h, w int) (*conv2d.Image, error) {
	img, err := conv2d.NewImage(h, w, 1)
	if err != nil {
		return nil, err
	}
	if want := h * w * float32Size; len(data) != want {
		return nil, fmt.Errorf("%w: tensor is %d bytes, want %d", ErrMalformed, len(data), want)
	}

	for i := range img.Data {
		bits := binary.LittleEndian.Uint32(data[i*float32Size:])
		img.Data[i] = float64(math.Float32frombits(bits))
	}
	return img, nil
}

// LoadTensor reads a raw float32 tensor file of exactly h*w samples.
func LoadTensor(path string, h, w int) (*conv2d.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := ReadTensor(data, h, w)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// WriteTensor writes every sample of img as little-endian float32.
func WriteTensor(w io.Writer, img *conv2d.Image) error {
	if img == nil || img.Data == nil {
		return fmt.Errorf("%w: nil image", conv2d.ErrInvalidArgument)
	}
	buf := make([]byte, len(img.Data)*float32Size)
	for i, v := range img.Data {
		binary.LittleEndian.PutUint32(buf[i*float32Size:], math.Float32bits(float32(v)))
	}
	_, err := w.Write(buf)
	return err
}
