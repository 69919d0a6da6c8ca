// Package conv2d provides 2D cross-correlation of planar images with small
// square kernels, computed by one of several interchangeable backends.
//
// Three engines are available:
//
//   - EngineBaseline: scalar nested-loop reference, any supported kernel size
//   - EngineVec4: 4-lane vector backend, 3x3 kernels
//   - EngineVec8: 8-lane vector backend, 3x3 kernels
//
// The vector engines agree with the baseline up to floating-point
// summation order. A kernel size a vector engine cannot handle is routed to
// the baseline for the whole call.
//
// # Usage
//
//	k, err := conv2d.BuildKernel(conv2d.KernelGaussianBlur, 5)
//	img, err := conv2d.NewImage(480, 640, 3)
//	out, err := conv2d.ConvolveChannels(conv2d.EngineVec8, conv2d.Params{
//		Image:  img,
//		Kernel: k,
//		Stride: 1,
//	})
//
// Output dimensions follow the valid-correlation law
//
//	outH = (H - k)/stride + 1
//	outW = (W - k)/stride + 1
//
// Only stride 1 is accepted. Parameters are validated before any backend
// runs; Validate exposes the same checks.
//
// # Kernels
//
// BuildKernel returns freshly allocated coefficients for the named kernel
// types. Sharpen, SobelX and SobelY exist only as 3x3. BoxBlur and
// GaussianBlur are generated for any odd size and sum to 1. NewKernel wraps
// coefficients produced elsewhere, for example loaded from a file.
//
// # Errors
//
// All failures wrap one of ErrInvalidArgument, ErrUnsupportedConfiguration
// or ErrNotSupported and can be tested with errors.Is.
package conv2d
