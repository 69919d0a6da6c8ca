package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-conv2d/dsp/conv2d"
	"github.com/cwbudde/algo-conv2d/dsp/imageio"
)

// EnvPrefix is prepended to environment variable overrides, e.g.
// CONV2D_ENGINE or CONV2D_FILTER_KERNEL.
const EnvPrefix = "CONV2D"

// EngineAuto selects the best engine for the running CPU.
const EngineAuto = "auto"

// Config represents the CLI configuration
type Config struct {
	Engine  string        `mapstructure:"engine" yaml:"engine"`
	Filter  FilterConfig  `mapstructure:"filter" yaml:"filter"`
	Model   ModelConfig   `mapstructure:"model" yaml:"model"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

type FilterConfig struct {
	Kernel string  `mapstructure:"kernel" yaml:"kernel"`
	Size   int     `mapstructure:"size" yaml:"size"`
	Sigma  float64 `mapstructure:"sigma" yaml:"sigma"`
	Color  string  `mapstructure:"color" yaml:"color"`
	Output string  `mapstructure:"output" yaml:"output"`
}

type ModelConfig struct {
	Kernel      string `mapstructure:"kernel" yaml:"kernel"`
	Weight      string `mapstructure:"weight" yaml:"weight"`
	Bias        string `mapstructure:"bias" yaml:"bias"`
	KernelSize  int    `mapstructure:"kernel_size" yaml:"kernel_size"`
	InputHeight int    `mapstructure:"input_height" yaml:"input_height"`
	InputWidth  int    `mapstructure:"input_width" yaml:"input_width"`
	Classes     int    `mapstructure:"classes" yaml:"classes"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	File    string `mapstructure:"file" yaml:"file"`
	Console bool   `mapstructure:"console" yaml:"console"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineAuto,
		Filter: FilterConfig{
			Kernel: conv2d.KernelSharpen.String(),
			Size:   3,
			Color:  imageio.RGB.String(),
		},
		Model: ModelConfig{
			Kernel:      "models/conv_kernel.txt",
			Weight:      "models/fc_weight.txt",
			Bias:        "models/fc_bias.txt",
			KernelSize:  3,
			InputHeight: 64,
			InputWidth:  64,
			Classes:     2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// New returns a viper instance carrying the defaults and environment
// binding. Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if any, and unmarshals v into a validated
// Config. Without cfgFile, conv2d.yaml is searched in the working
// directory and $HOME/.conv2d; a missing file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".conv2d"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("conv2d")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Engine != EngineAuto {
		if _, err := conv2d.ParseEngineMode(c.Engine); err != nil {
			return fmt.Errorf("engine: %w", err)
		}
	}

	if _, err := conv2d.ParseKernelType(c.Filter.Kernel); err != nil {
		return fmt.Errorf("filter.kernel: %w", err)
	}
	if c.Filter.Size < 3 || c.Filter.Size%2 == 0 {
		return fmt.Errorf("filter.size must be odd and >= 3, got %d", c.Filter.Size)
	}
	if c.Filter.Sigma < 0 {
		return fmt.Errorf("filter.sigma must not be negative, got %v", c.Filter.Sigma)
	}
	if _, err := imageio.ParseColorMode(c.Filter.Color); err != nil {
		return fmt.Errorf("filter.color: %w", err)
	}

	if c.Model.InputHeight <= 0 || c.Model.InputWidth <= 0 || c.Model.Classes < 1 {
		return fmt.Errorf("model: input %dx%d with %d classes",
			c.Model.InputHeight, c.Model.InputWidth, c.Model.Classes)
	}

	validLevels := []string{"trace", "debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	return nil
}

// EngineMode resolves Engine, mapping "auto" to conv2d.BestEngine.
func (c *Config) EngineMode() (conv2d.EngineMode, error) {
	if c.Engine == EngineAuto || c.Engine == "" {
		return conv2d.BestEngine(), nil
	}
	return conv2d.ParseEngineMode(c.Engine)
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("engine", cfg.Engine)

	v.SetDefault("filter.kernel", cfg.Filter.Kernel)
	v.SetDefault("filter.size", cfg.Filter.Size)
	v.SetDefault("filter.sigma", cfg.Filter.Sigma)
	v.SetDefault("filter.color", cfg.Filter.Color)
	v.SetDefault("filter.output", cfg.Filter.Output)

	v.SetDefault("model.kernel", cfg.Model.Kernel)
	v.SetDefault("model.weight", cfg.Model.Weight)
	v.SetDefault("model.bias", cfg.Model.Bias)
	v.SetDefault("model.kernel_size", cfg.Model.KernelSize)
	v.SetDefault("model.input_height", cfg.Model.InputHeight)
	v.SetDefault("model.input_width", cfg.Model.InputWidth)
	v.SetDefault("model.classes", cfg.Model.Classes)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.console", cfg.Logging.Console)
}
