// Package plane computes per-channel sample statistics of conv2d images.
//
// Statistics are gathered in a single pass. Mean and variance use
// Welford's online update. Clipped counts samples outside the [0, 1]
// range that imageio clamps on encode, which is how much of a sharpen or
// Sobel response is lost when the result is saved as 8-bit.
package plane
