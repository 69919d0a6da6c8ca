package imageio

import "errors"

var (
	// ErrFormat reports an unknown or unsupported file format.
	ErrFormat = errors.New("imageio: unsupported format")

	// ErrMalformed reports a file whose contents do not match the
	// expected layout.
	ErrMalformed = errors.New("imageio: malformed input")

	// ErrChannels reports an image whose channel count cannot be encoded.
	ErrChannels = errors.New("imageio: unsupported channel count")
)
