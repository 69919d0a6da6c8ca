// Package imageio moves images and model tensors between files and
// conv2d.Image values.
//
// Decoded samples are normalized to [0, 1]. Grayscale images have one
// plane; color images have three planes in R, G, B order. Encoding clamps
// to [0, 1] and rounds to 8 bits.
//
// Text files (kernels, weight matrices, bias vectors) hold
// whitespace-separated floats in row-major order. Tensor files hold raw
// little-endian float32 samples.
package imageio
