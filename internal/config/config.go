// Package config loads the yaml configuration of the autoctl CLI.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSettleBand       = 0.02
	DefaultIgnoreDelayBelow = 0.5
	DefaultPadeDegree       = 5
	DefaultRefineSpan       = 0.3
	DefaultRefineSteps      = 5
)

type Config struct {
	Method     string       `yaml:"method"`    // identification method
	Tuner      string       `yaml:"tuner"`     // gain-approximation method
	Structure  string       `yaml:"structure"` // P, PI or PID
	SampleTime float64      `yaml:"sample_time"`
	StepSignal float64      `yaml:"step_signal"`
	PadeDegree int          `yaml:"pade_degree"`
	Ident      IdentConfig  `yaml:"ident"`
	Refine     RefineConfig `yaml:"refine"`
	Report     ReportConfig `yaml:"report"`
}

type IdentConfig struct {
	SettleBand       float64 `yaml:"settle_band"`
	IgnoreDelayBelow float64 `yaml:"ignore_delay_below"`
}

type RefineConfig struct {
	Enabled bool    `yaml:"enabled"`
	Span    float64 `yaml:"span"`
	Steps   int     `yaml:"steps"`
}

type ReportConfig struct {
	Terminal bool   `yaml:"terminal"`
	PlotPath string `yaml:"plot_path"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:     "smith",
		Tuner:      "cohen_coon",
		Structure:  "PID",
		PadeDegree: DefaultPadeDegree,
		Ident: IdentConfig{
			SettleBand:       DefaultSettleBand,
			IgnoreDelayBelow: DefaultIgnoreDelayBelow,
		},
		Refine: RefineConfig{
			Span:  DefaultRefineSpan,
			Steps: DefaultRefineSteps,
		},
		Report: ReportConfig{Terminal: true},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
