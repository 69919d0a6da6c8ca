package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newFilterCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Convolve one image with a generated kernel",
		Long: `Load an image, correlate every channel with a sharpen, blur or Sobel
kernel and write the result. Without --output only the timing is logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				return errors.New("--input is required")
			}

			mode, err := a.engine()
			if err != nil {
				return err
			}
			k, err := a.kernel()
			if err != nil {
				return err
			}
			color, err := a.colorMode()
			if err != nil {
				return err
			}

			out := a.cfg.Filter.Output
			elapsed, err := filterFile(mode, k, color, input, out)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %dx%d: %s\n", mode, k.Type, k.Size, k.Size, elapsed)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "input image (png, jpeg, gif)")
	f.StringP("output", "o", "", "output image, format from extension")
	addFilterFlags(cmd)
	a.bind(cmd, filterBindings)

	return cmd
}

// filterBindings maps the kernel and color flags shared by filter and speed
// to their config keys.
var filterBindings = binding{
	"filter.output": "output",
	"filter.kernel": "kernel",
	"filter.size":   "size",
	"filter.sigma":  "sigma",
	"filter.color":  "color",
}

func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("kernel", "k", "sharpen", "kernel: sharpen, box-blur, gaussian-blur, sobel-x, sobel-y")
	f.IntP("size", "s", 3, "kernel size (odd)")
	f.Float64("sigma", 0, "gaussian sigma (default size/3)")
	f.StringP("color", "c", "rgb", "color mode: gray or rgb")
}
