// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package config loads settings from an optional file, NAMEAGE_* environment
// variables, and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/derat/nameage/vital"
)

// EnvPrefix is prepended to environment variables, e.g. NAMEAGE_ANALYSIS_THRESHOLD.
const EnvPrefix = "NAMEAGE"

// Config holds all settings.
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DataConfig locates input and derived files.
type DataConfig struct {
	NamesDir     string `mapstructure:"names_dir"`     // directory containing yobYYYY.txt files
	RawMortality string `mapstructure:"raw_mortality"` // life table CSV indexed by age
	Artifact     string `mapstructure:"artifact"`      // adjusted table indexed by birth year
}

// AnalysisConfig controls the pipeline.
type AnalysisConfig struct {
	FirstYear     int   `mapstructure:"first_year"`
	LastYear      int   `mapstructure:"last_year"`
	ReferenceYear int   `mapstructure:"reference_year"`
	Threshold     int64 `mapstructure:"threshold"`
	Workers       int   `mapstructure:"workers"`
}

// Years returns the analyzed range of birth years.
func (ac AnalysisConfig) Years() vital.Range {
	return vital.Range{First: ac.FirstYear, Last: ac.LastYear}
}

// LoggingConfig controls logrus.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.names_dir", "names")
	v.SetDefault("data.raw_mortality", "actuarial_2014.csv")
	v.SetDefault("data.artifact", "adj_act_data_2014.txt")

	v.SetDefault("analysis.first_year", 1880)
	v.SetDefault("analysis.last_year", 2017)
	v.SetDefault("analysis.reference_year", 2017)
	v.SetDefault("analysis.threshold", 400000)
	v.SetDefault("analysis.workers", 1)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Flags maps config keys to the names of the flags that override them.
var Flags = map[string]string{
	"data.names_dir":          "names",
	"data.raw_mortality":      "raw-mortality",
	"data.artifact":           "artifact",
	"analysis.first_year":     "first-year",
	"analysis.last_year":      "last-year",
	"analysis.reference_year": "ref-year",
	"analysis.threshold":      "threshold",
	"analysis.workers":        "workers",
	"logging.level":           "log-level",
	"logging.format":          "log-format",
}

// Load reads the file at path (if non-empty), applies environment variables
// and any flags in fs (which may be nil) that were explicitly set, and
// validates the result.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if fs != nil {
		for key, name := range Flags {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Data.NamesDir == "" {
		return fmt.Errorf("data.names_dir is required")
	}
	if c.Data.Artifact == "" {
		return fmt.Errorf("data.artifact is required")
	}

	a := c.Analysis
	if a.FirstYear > a.LastYear {
		return fmt.Errorf("analysis.first_year (%d) is after analysis.last_year (%d)", a.FirstYear, a.LastYear)
	}
	if a.ReferenceYear < a.LastYear {
		return fmt.Errorf("analysis.reference_year (%d) is before analysis.last_year (%d)", a.ReferenceYear, a.LastYear)
	}
	if a.Threshold < 0 {
		return fmt.Errorf("analysis.threshold must be non-negative")
	}
	if a.Workers < 1 {
		return fmt.Errorf("analysis.workers must be at least 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be one of: text, json")
	}
	return nil
}
