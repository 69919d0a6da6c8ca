package commands

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
	"github.com/cwbudde/algo-conv2d/dsp/imageio"
	"github.com/cwbudde/algo-conv2d/internal/logging"
	"github.com/cwbudde/algo-conv2d/stats/plane"
	"github.com/cwbudde/algo-vecmath"
)

// engine resolves the configured engine mode and logs the choice.
func (a *app) engine() (conv2d.EngineMode, error) {
	mode, err := a.cfg.EngineMode()
	if err != nil {
		return 0, err
	}
	logging.WithFields(logrus.Fields{
		"engine":     mode.String(),
		"configured": a.cfg.Engine,
	}).Debug("engine selected")
	return mode, nil
}

func (a *app) kernel() (*conv2d.Kernel, error) {
	t, err := conv2d.ParseKernelType(a.cfg.Filter.Kernel)
	if err != nil {
		return nil, err
	}
	var opts []conv2d.KernelOption
	if a.cfg.Filter.Sigma > 0 {
		opts = append(opts, conv2d.WithSigma(a.cfg.Filter.Sigma))
	}
	return conv2d.BuildKernel(t, a.cfg.Filter.Size, opts...)
}

func (a *app) colorMode() (imageio.ColorMode, error) {
	return imageio.ParseColorMode(a.cfg.Filter.Color)
}

// filterFile runs one image through the kernel and optionally saves it.
func filterFile(mode conv2d.EngineMode, k *conv2d.Kernel, color imageio.ColorMode, in, out string) (time.Duration, error) {
	img, err := imageio.Load(in, color)
	if err != nil {
		return 0, err
	}
	defer img.Release()

	start := time.Now()
	res, err := conv2d.ConvolveChannels(mode, conv2d.Params{Image: img, Kernel: k, Stride: 1})
	elapsed := time.Since(start)
	if err != nil {
		return 0, err
	}
	defer res.Release()

	logging.WithFields(logrus.Fields{
		"input":   in,
		"in":      img.String(),
		"out":     res.String(),
		"peak":    vecmath.MaxAbs(res.Data),
		"clipped": fmt.Sprintf("%.2f%%", 100*plane.Image(res).ClippedFraction()),
		"elapsed": elapsed,
	}).Info("filtered")
	for c, st := range plane.Channels(res) {
		logging.Debugf("channel %d: %s", c, st)
	}

	if out != "" {
		if err := imageio.Save(out, res); err != nil {
			return 0, err
		}
		logging.Debugf("wrote %s", out)
	}
	return elapsed, nil
}
