package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
	"github.com/cwbudde/algo-conv2d/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// ColorMode selects how decoded pixels map to planes.
type ColorMode int

const (
	// Gray decodes to a single luminance plane.
	Gray ColorMode = iota

	// RGB decodes to three planes in R, G, B order.
	RGB
)

// Channels returns the number of planes the mode produces.
func (m ColorMode) Channels() int {
	if m == RGB {
		return 3
	}
	return 1
}

func (m ColorMode) String() string {
	switch m {
	case Gray:
		return "gray"
	case RGB:
		return "rgb"
	default:
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
}

// ParseColorMode accepts "gray", "grey", "grayscale", "rgb" and "color".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "gray", "grey", "grayscale":
		return Gray, nil
	case "rgb", "color", "colour":
		return RGB, nil
	default:
		return 0, fmt.Errorf("imageio: unknown color mode %q", s)
	}
}

// Format is an encoded image container.
type Format int

const (
	PNG Format = iota
	JPEG
	GIF
)

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".gif":
		return GIF, nil
	default:
		return 0, fmt.Errorf("%w: extension %q", ErrFormat, filepath.Ext(path))
	}
}

// Decode reads a PNG, JPEG or GIF image from r.
func Decode(r io.Reader, mode ColorMode) (*conv2d.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return FromImage(src, mode)
}

// FromImage converts a decoded image into normalized planes.
func FromImage(src image.Image, mode ColorMode) (*conv2d.Image, error) {
	b := src.Bounds()
	h, w := b.Dy(), b.Dx()

	out, err := conv2d.NewImage(h, w, mode.Channels())
	if err != nil {
		return nil, err
	}

	plane := out.PlaneSize()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			px := src.At(b.Min.X+x, b.Min.Y+y)
			if mode == Gray {
				out.Data[i] = float64(color.GrayModel.Convert(px).(color.Gray).Y)
				continue
			}
			c := color.NRGBAModel.Convert(px).(color.NRGBA)
			out.Data[i] = float64(c.R)
			out.Data[plane+i] = float64(c.G)
			out.Data[2*plane+i] = float64(c.B)
		}
	}

	vecmath.ScaleBlockInPlace(out.Data, 1.0/255)
	return out, nil
}

// ToImage quantizes img into an 8-bit image. One channel yields
// *image.Gray, three channels yield *image.NRGBA.
func ToImage(img *conv2d.Image) (image.Image, error) {
	if img == nil || img.Data == nil {
		return nil, fmt.Errorf("%w: nil image", conv2d.ErrInvalidArgument)
	}
	if img.Height <= 0 || img.Width <= 0 {
		return nil, fmt.Errorf("%w: image is %dx%d", conv2d.ErrInvalidArgument, img.Height, img.Width)
	}
	if want := img.Height * img.Width * img.Channels; len(img.Data) != want {
		return nil, fmt.Errorf("%w: image buffer length %d, want %d", conv2d.ErrInvalidArgument, len(img.Data), want)
	}

	h, w := img.Height, img.Width
	rect := image.Rect(0, 0, w, h)

	switch img.Channels {
	case 1:
		dst := image.NewGray(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Pix[y*dst.Stride+x] = core.QuantizeUnit(img.At(0, y, x))
			}
		}
		return dst, nil
	case 3:
		dst := image.NewNRGBA(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				o := y*dst.Stride + 4*x
				dst.Pix[o+0] = core.QuantizeUnit(img.At(0, y, x))
				dst.Pix[o+1] = core.QuantizeUnit(img.At(1, y, x))
				dst.Pix[o+2] = core.QuantizeUnit(img.At(2, y, x))
				dst.Pix[o+3] = 0xff
			}
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrChannels, img.Channels)
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img *conv2d.Image, f Format) error {
	dst, err := ToImage(img)
	if err != nil {
		return err
	}

	switch f {
	case PNG:
		return png.Encode(w, dst)
	case JPEG:
		return jpeg.Encode(w, dst, &jpeg.Options{Quality: 95})
	case GIF:
		return gif.Encode(w, dst, nil)
	default:
		return fmt.Errorf("%w: format %d", ErrFormat, int(f))
	}
}

// Load decodes the image file at path.
func Load(path string, mode ColorMode) (*conv2d.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Save encodes img to path, picking the format from the extension.
func Save(path string, img *conv2d.Image) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Encode(f, img, format)
}
