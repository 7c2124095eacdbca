// Package config holds the CLI configuration: logging, export defaults
// and the optional default-factor table override. Configuration is plain
// YAML; every field has a working default so the zero config runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is absent or partial.
const (
	DefaultLogLevel     = "info"
	DefaultOutputFormat = "json"
	DefaultOutputDir    = "reports"
	DefaultBrand        = "CarbonNet"
)

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ExportConfig controls artifact output.
type ExportConfig struct {
	DefaultFormat string `yaml:"default_format"`
	OutputDir     string `yaml:"output_dir"`
}

// Config is the full CLI configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Export  ExportConfig  `yaml:"export"`

	// FactorTablePath points at a YAML default-factor table replacing the
	// built-in defaults. Empty uses the compiled-in table.
	FactorTablePath string `yaml:"factor_table"`

	// Brand is the name stamped on exported artifacts.
	Brand string `yaml:"brand"`
}

// Default returns the zero-file configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: DefaultLogLevel},
		Export:  ExportConfig{DefaultFormat: DefaultOutputFormat, OutputDir: DefaultOutputDir},
		Brand:   DefaultBrand,
	}
}

// Load reads a YAML config file, filling unset fields from Default. A
// missing path returns the defaults without error; a malformed file is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Export.DefaultFormat == "" {
		cfg.Export.DefaultFormat = DefaultOutputFormat
	}
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = DefaultOutputDir
	}
	if cfg.Brand == "" {
		cfg.Brand = DefaultBrand
	}

	return cfg, nil
}
