package domain

import (
	"fmt"
	"strings"
)

// ValidLogLevels enumerates the accepted log.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// EngineConfig holds run-time settings loaded from .filegate.yaml and
// FILEGATE_* environment variables.
type EngineConfig struct {
	MaxSamples  int           `koanf:"max_samples"  yaml:"max_samples"  json:"max_samples"  validate:"gte=1,lte=1000"`
	Workers     int           `koanf:"workers"      yaml:"workers"      json:"workers"      validate:"gte=1,lte=256"`
	NullValues  []string      `koanf:"null_values"  yaml:"null_values"  json:"null_values"`
	TrimSpace   bool          `koanf:"trim_space"   yaml:"trim_space"   json:"trim_space"`
	MetricsFile string        `koanf:"metrics_file" yaml:"metrics_file" json:"metrics_file,omitempty"`
	Log         LogConfig     `koanf:"log"          yaml:"log"          json:"log"`
	History     HistoryConfig `koanf:"history"      yaml:"history"      json:"history"`
	Cache       CacheConfig   `koanf:"cache"        yaml:"cache"        json:"cache"`
}

// LogConfig selects the log level and an optional rotated JSON log file.
type LogConfig struct {
	Level string `koanf:"level" yaml:"level" json:"level"`
	File  string `koanf:"file"  yaml:"file"  json:"file,omitempty"`
}

// HistoryConfig controls the per-directory run history.
type HistoryConfig struct {
	Enabled bool `koanf:"enabled" yaml:"enabled" json:"enabled"`
	Limit   int  `koanf:"limit"   yaml:"limit"   json:"limit" validate:"gte=0"`
}

// CacheConfig controls the built-schema cache.
type CacheConfig struct {
	Enabled bool `koanf:"enabled" yaml:"enabled" json:"enabled"`
}

// DefaultEngineConfig returns the settings used when no config file exists.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxSamples: 10,
		Workers:    4,
		NullValues: []string{""},
		Log:        LogConfig{Level: "warn"},
		History:    HistoryConfig{Enabled: true, Limit: 100},
		Cache:      CacheConfig{Enabled: true},
	}
}

// Validate checks semantic constraints struct tags cannot express.
func (c EngineConfig) Validate() error {
	// 1. log level must be known
	if c.Log.Level != "" {
		valid := false
		for _, l := range ValidLogLevels {
			if strings.EqualFold(c.Log.Level, l) {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown log.level %q (valid: %s)", c.Log.Level, strings.Join(ValidLogLevels, ", "))
		}
	}

	// 2. null_values must not repeat
	seen := make(map[string]bool, len(c.NullValues))
	for _, v := range c.NullValues {
		if seen[v] {
			return fmt.Errorf("null_values lists %q more than once", v)
		}
		seen[v] = true
	}

	// 3. metrics file must be a .prom textfile
	if c.MetricsFile != "" && !strings.HasSuffix(c.MetricsFile, ".prom") {
		return fmt.Errorf("metrics_file %q must end in .prom", c.MetricsFile)
	}

	return nil
}
