package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-conv2d/internal/logging"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

func (a *app) newSpeedCmd() *cobra.Command {
	var input, outputDir string

	cmd := &cobra.Command{
		Use:   "speed",
		Short: "Time the selected engine over a directory of images",
		Long: `Filter every image in --input with the configured kernel and report the
convolution time per image and in total. With --output-dir the results
are written there under the same file names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				return errors.New("--input is required")
			}

			paths, err := listImages(input)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no images in %s", input)
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

			if outputDir != "" {
				if err := os.MkdirAll(outputDir, 0o755); err != nil {
					return err
				}
			}

			var total time.Duration
			for _, p := range paths {
				out := ""
				if outputDir != "" {
					out = filepath.Join(outputDir, filepath.Base(p))
				}
				elapsed, err := filterFile(mode, k, color, p, out)
				if err != nil {
					return err
				}
				total += elapsed
			}

			logging.Infof("processed %d images with %s", len(paths), mode)
			fmt.Fprintf(cmd.OutOrStdout(), "engine=%s images=%d total=%s per-image=%s\n",
				mode, len(paths), total, total/time.Duration(len(paths)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "directory of input images")
	f.StringVarP(&outputDir, "output-dir", "o", "", "write filtered images here")
	addFilterFlags(cmd)

	b := binding{}
	for key, name := range filterBindings {
		if key != "filter.output" {
			b[key] = name
		}
	}
	a.bind(cmd, b)

	return cmd
}

// listImages returns the image files directly inside dir, sorted.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			logging.Warnf("skipping %s: unsupported image extension", e.Name())
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
