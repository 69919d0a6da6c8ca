package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-conv2d/internal/config"
	"github.com/cwbudde/algo-conv2d/internal/logging"
)

// binding maps config keys to flag names of one command.
type binding map[string]string

// app carries the state shared by one command tree.
type app struct {
	v        *viper.Viper
	cfgFile  string
	noColor  bool
	cfg      *config.Config
	bindings map[*cobra.Command]binding
}

// Execute runs the root command
func Execute() error {
	defer logging.Close()
	return NewRootCmd().Execute()
}

// NewRootCmd builds a fresh command tree with its own configuration.
func NewRootCmd() *cobra.Command {
	a := &app{
		v:        config.New(),
		bindings: make(map[*cobra.Command]binding),
	}

	root := &cobra.Command{
		Use:   "conv2d",
		Short: "2D image convolution with selectable engines",
		Long: `conv2d correlates images with small square kernels using a scalar
baseline or a 4- or 8-lane vector engine, and runs a single-layer CNN
classifier on raw float32 tensors.

Configuration is read from flags, CONV2D_* environment variables and an
optional conv2d.yaml file, in that order of precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./conv2d.yaml or $HOME/.conv2d/conv2d.yaml)")
	pf.StringP("engine", "e", config.EngineAuto, "engine: auto, baseline, vec4 (sse) or vec8 (avx)")
	pf.String("log-level", "info", "log level: trace, debug, info, warn, error")
	pf.String("log-file", "", "also append logs to this file")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored log output")

	a.bind(root, binding{
		"engine":        "engine",
		"logging.level": "log-level",
		"logging.file":  "log-file",
	})

	root.AddCommand(
		a.newFilterCmd(),
		a.newSpeedCmd(),
		a.newInferCmd(),
		a.newEnginesCmd(),
		a.newConfigCmd(),
	)

	return root
}

// bind records flag bindings that take effect only when cmd runs. Several
// commands share config keys, and viper keeps one flag per key.
func (a *app) bind(cmd *cobra.Command, b binding) {
	a.bindings[cmd] = b
}

// setup binds the running command's flags, loads the configuration and
// initializes logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	root := cmd.Root()
	if err := a.bindFlags(root.PersistentFlags(), a.bindings[root]); err != nil {
		return err
	}
	if cmd != root {
		if err := a.bindFlags(cmd.Flags(), a.bindings[cmd]); err != nil {
			return err
		}
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	return logging.Init(logging.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		NoColor: a.noColor,
		Writer:  cmd.ErrOrStderr(),
	})
}

func (a *app) bindFlags(flags *pflag.FlagSet, b binding) error {
	for key, name := range b {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s to %s: %w", name, key, err)
		}
	}
	return nil
}
