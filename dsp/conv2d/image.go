package conv2d

import "fmt"

// Image is a planar multi-channel image. Channel c occupies
// Data[c*Height*Width : (c+1)*Height*Width] in row-major order.
type Image struct {
	Data     []float64
	Height   int
	Width    int
	Channels int
}

// NewImage returns a zero-filled image.
func NewImage(height, width, channels int) (*Image, error) {
	if height <= 0 || width <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: image dimensions %dx%dx%d", ErrInvalidArgument, height, width, channels)
	}
	return &Image{
		Data:     make([]float64, height*width*channels),
		Height:   height,
		Width:    width,
		Channels: channels,
	}, nil
}

// ImageFromSlice wraps data without copying.
// len(data) must equal height*width*channels.
func ImageFromSlice(data []float64, height, width, channels int) (*Image, error) {
	if height <= 0 || width <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: image dimensions %dx%dx%d", ErrInvalidArgument, height, width, channels)
	}
	if len(data) != height*width*channels {
		return nil, fmt.Errorf("%w: buffer length %d, want %d", ErrInvalidArgument, len(data), height*width*channels)
	}
	return &Image{Data: data, Height: height, Width: width, Channels: channels}, nil
}

// PlaneSize returns the number of samples in one channel.
func (im *Image) PlaneSize() int {
	return im.Height * im.Width
}

// Plane returns channel c's samples. The slice aliases the image buffer.
func (im *Image) Plane(c int) []float64 {
	if c < 0 || c >= im.Channels || im.Data == nil {
		return nil
	}
	n := im.PlaneSize()
	return im.Data[c*n : (c+1)*n : (c+1)*n]
}

// PlaneImage returns channel c as a single-channel image sharing storage
// with im.
func (im *Image) PlaneImage(c int) *Image {
	return &Image{
		Data:     im.Plane(c),
		Height:   im.Height,
		Width:    im.Width,
		Channels: 1,
	}
}

// At returns the sample at row y, column x of channel c.
func (im *Image) At(c, y, x int) float64 {
	return im.Data[c*im.PlaneSize()+y*im.Width+x]
}

// Set stores v at row y, column x of channel c.
func (im *Image) Set(c, y, x int, v float64) {
	im.Data[c*im.PlaneSize()+y*im.Width+x] = v
}

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	data := make([]float64, len(im.Data))
	copy(data, im.Data)
	return &Image{Data: data, Height: im.Height, Width: im.Width, Channels: im.Channels}
}

// Release drops the sample buffer. The image must not be used afterwards.
// Calling Release more than once is safe.
func (im *Image) Release() {
	if im == nil {
		return
	}
	im.Data = nil
}

func (im *Image) String() string {
	return fmt.Sprintf("Image(%dx%dx%d)", im.Height, im.Width, im.Channels)
}
