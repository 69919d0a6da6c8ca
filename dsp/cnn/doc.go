// Package cnn runs a single-layer convolutional classifier on top of
// conv2d.
//
// The network is conv (one kernel, stride 1) -> ReLU -> flatten ->
// fully connected -> argmax. Weights are loaded from whitespace-separated
// text files; inputs are raw float32 tensors.
package cnn
