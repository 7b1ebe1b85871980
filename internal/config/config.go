// Package config loads the TOML configuration of batch runs.
package config

import (
	"fmt"
	"runtime"

	"pixelops/internal/logger"
	"pixelops/internal/processing/chain"

	"github.com/BurntSushi/toml"
)

// Image I/O backends.
const (
	BackendNative = "native"
	BackendOpenCV = "opencv"
)

type Config struct {
	Log      LogConfig      `toml:"log"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Steps    []StepConfig   `toml:"steps"`
}

type LogConfig struct {
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

type PipelineConfig struct {
	Workers   int    `toml:"workers"`
	Backend   string `toml:"backend"`
	OutputDir string `toml:"output_dir"`
	Suffix    string `toml:"suffix"`
	// Extension overrides the output file type; empty keeps the input's.
	Extension string `toml:"extension"`
}

type StepConfig struct {
	Name      string `toml:"name"`
	Threshold int    `toml:"threshold"`
}

// Default returns the configuration used when no file is given: normalize,
// Otsu-binarize, and write next to the input with a "_bin" suffix.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Console: true},
		Pipeline: PipelineConfig{
			Workers: runtime.NumCPU(),
			Backend: BackendNative,
			Suffix:  "_bin",
		},
		Steps: []StepConfig{
			{Name: chain.StepNormalize},
			{Name: chain.StepOtsu},
		},
	}
}

// Load reads path on top of Default. Keys absent from the file keep their
// default values; a [[steps]] list replaces the default steps.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.Steps = nil

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	if !md.IsDefined("steps") {
		cfg.Steps = Default().Steps
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline.workers must be at least 1, got: %d", c.Pipeline.Workers)
	}
	switch c.Pipeline.Backend {
	case BackendNative, BackendOpenCV:
	default:
		return fmt.Errorf("pipeline.backend must be %q or %q, got: %q",
			BackendNative, BackendOpenCV, c.Pipeline.Backend)
	}
	if c.Pipeline.OutputDir == "" && c.Pipeline.Suffix == "" && c.Pipeline.Extension == "" {
		return fmt.Errorf("pipeline needs output_dir, suffix or extension so inputs are not overwritten")
	}
	if len(c.Steps) == 0 {
		return fmt.Errorf("at least one processing step is required")
	}
	if _, err := c.Chain(nil); err != nil {
		return err
	}
	return nil
}

// Chain builds the processing chain described by Steps.
func (c *Config) Chain(log logger.Logger) (*chain.ProcessingChain, error) {
	steps := make([]chain.ProcessingStep, 0, len(c.Steps))
	for i, sc := range c.Steps {
		step, err := chain.NewStep(sc.Name, sc.Threshold)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		steps = append(steps, step)
	}
	return chain.NewProcessingChain(log, steps), nil
}
