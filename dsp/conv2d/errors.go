package conv2d

import "errors"

// Errors returned by conv2d functions.
var (
	// ErrInvalidArgument reports nil buffers, non-positive dimensions,
	// mismatched buffer lengths or an unsupported stride.
	ErrInvalidArgument = errors.New("conv2d: invalid argument")

	// ErrUnsupportedConfiguration reports a kernel type and size combination
	// that is not implemented.
	ErrUnsupportedConfiguration = errors.New("conv2d: unsupported configuration")

	// ErrNotSupported reports an engine mode without a backend.
	ErrNotSupported = errors.New("conv2d: engine not supported")
)
