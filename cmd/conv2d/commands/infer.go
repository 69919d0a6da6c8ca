package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-conv2d/dsp/cnn"
)

func (a *app) newInferCmd() *cobra.Command {
	var (
		input string
		eval  bool
	)

	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Classify raw float32 tensors with the CNN model",
		Long: `Load the convolution kernel and fully connected layer, then classify
one tensor file, or with --eval every .bin file under the NORMAL and
PNEUMONIA subdirectories of --input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				return errors.New("--input is required")
			}

			mode, err := a.engine()
			if err != nil {
				return err
			}

			mc := a.cfg.Model
			model, err := cnn.LoadModel(
				cnn.Paths{Kernel: mc.Kernel, Weight: mc.Weight, Bias: mc.Bias},
				cnn.WithKernelSize(mc.KernelSize),
				cnn.WithInputSize(mc.InputHeight, mc.InputWidth),
				cnn.WithClasses(mc.Classes),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !eval {
				class, err := cnn.Infer(mode, model, input)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "predicted class: %d\n", class)
				return nil
			}

			rep, err := cnn.Evaluate(mode, model, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "samples: %d\n", rep.Samples)
			fmt.Fprintf(out, "accuracy: %.2f%%\n", 100*rep.Accuracy())
			fmt.Fprintf(out, "total time: %s\n", rep.Elapsed)
			fmt.Fprintf(out, "time per sample: %s\n", rep.PerSample())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "tensor file, or dataset directory with --eval")
	f.BoolVar(&eval, "eval", false, "evaluate a labeled dataset")
	f.StringP("kernel-path", "p", "models/conv_kernel.txt", "convolution kernel file")
	f.StringP("fc-weight", "w", "models/fc_weight.txt", "fully connected weight file")
	f.StringP("fc-bias", "b", "models/fc_bias.txt", "fully connected bias file")
	f.Int("kernel-size", 3, "convolution kernel size")
	f.Int("input-height", 64, "tensor height")
	f.Int("input-width", 64, "tensor width")
	f.Int("classes", 2, "number of output classes")

	a.bind(cmd, binding{
		"model.kernel":       "kernel-path",
		"model.weight":       "fc-weight",
		"model.bias":         "fc-bias",
		"model.kernel_size":  "kernel-size",
		"model.input_height": "input-height",
		"model.input_width":  "input-width",
		"model.classes":      "classes",
	})

	return cmd
}
