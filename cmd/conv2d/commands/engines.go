package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func (a *app) newEnginesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List convolution engines and the automatic choice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			features := cpu.DetectFeatures()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ENGINE\tLANES\tSIMD\tKERNELS\tAVAILABLE")
			for _, e := range conv2d.Engines() {
				sizes := make([]string, len(e.KernelSizes))
				for i, s := range e.KernelSizes {
					sizes[i] = fmt.Sprintf("%dx%d", s, s)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%v\n",
					e.Name, e.Lanes, e.SIMDLevel, strings.Join(sizes, ","), e.Supported)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			mode, err := a.cfg.EngineMode()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\narch: %s\nauto: %s\nselected: %s\n",
				features.Architecture, conv2d.BestEngine(), mode)
			return nil
		},
	}
}
