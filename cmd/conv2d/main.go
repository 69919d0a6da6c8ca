// Command conv2d filters images and runs a small CNN classifier with a
// selectable convolution engine.
//
// Usage:
//
//	conv2d [command] [flags]
//
// Examples:
//
//	conv2d filter --input in.png --output out.png --kernel gaussian-blur --size 5
//	conv2d speed --input ./images --engine vec4
//	conv2d infer --input x.bin
//	conv2d infer --eval --input ./dataset/test
//	conv2d engines
package main

import (
	"os"

	"github.com/cwbudde/algo-conv2d/cmd/conv2d/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
