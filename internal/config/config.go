// Package config loads the actl tool configuration.
//
// Settings are grouped into sections:
//   - log: level and output format
//   - alloc: which storage provider backs script containers and its budget
//   - script: execution timeout and watch debounce
//   - metrics: allocator metrics collection
//
// A file is decoded over Default(), so it only needs the settings it
// changes. TOML and YAML are accepted, chosen by extension. Environment
// variables prefixed with ACTL_ override file values.
package config

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/actl/internal/alloc"
)

// Config is the complete tool configuration.
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log"`
	Alloc   AllocConfig   `toml:"alloc" yaml:"alloc"`
	Script  ScriptConfig  `toml:"script" yaml:"script"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is a logrus level name: trace, debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// Format is "text", "json", or "auto" (text on a terminal, json otherwise).
	Format string `toml:"format" yaml:"format"`
}

// AllocConfig selects the storage provider for script containers.
type AllocConfig struct {
	// Kind is "heap" or "pool".
	Kind string `toml:"kind" yaml:"kind"`
	// Limit is a byte budget per element type. Zero means unlimited.
	Limit int64 `toml:"limit" yaml:"limit"`
}

// ScriptConfig configures script execution.
type ScriptConfig struct {
	// Timeout bounds one script run. Zero disables the timeout.
	Timeout Duration `toml:"timeout" yaml:"timeout"`
	// Debounce is the quiet period before a watched script re-runs.
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// MetricsConfig configures allocator metrics.
type MetricsConfig struct {
	// Enabled turns on allocation tracking.
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Namespace prefixes metric names.
	Namespace string `toml:"namespace" yaml:"namespace"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Alloc: AllocConfig{
			Kind: string(alloc.KindHeap),
		},
		Script: ScriptConfig{
			Timeout:  Duration(30 * time.Second),
			Debounce: Duration(200 * time.Millisecond),
		},
		Metrics: MetricsConfig{
			Namespace: "actl",
		},
	}
}

// Validate checks every setting and returns all problems joined together.
// Each problem is a *ValidationError and matches ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, &ValidationError{Path: "log.level", Message: "unknown level", Value: c.Log.Level})
	}
	switch c.Log.Format {
	case "text", "json", "auto":
	default:
		errs = append(errs, &ValidationError{Path: "log.format", Message: "must be text, json, or auto", Value: c.Log.Format})
	}

	if _, err := alloc.ParseKind(c.Alloc.Kind); err != nil {
		errs = append(errs, &ValidationError{Path: "alloc.kind", Message: "must be heap or pool", Value: c.Alloc.Kind})
	}
	if c.Alloc.Limit < 0 {
		errs = append(errs, &ValidationError{Path: "alloc.limit", Message: "must not be negative", Value: c.Alloc.Limit})
	}

	if c.Script.Timeout < 0 {
		errs = append(errs, &ValidationError{Path: "script.timeout", Message: "must not be negative", Value: c.Script.Timeout})
	}
	if c.Script.Debounce < 0 {
		errs = append(errs, &ValidationError{Path: "script.debounce", Message: "must not be negative", Value: c.Script.Debounce})
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		errs = append(errs, &ValidationError{Path: "metrics.namespace", Message: "required when metrics are enabled", Value: ""})
	}

	return errors.Join(errs...)
}

// AllocKind returns the validated provider kind.
func (c *Config) AllocKind() alloc.Kind {
	kind, err := alloc.ParseKind(c.Alloc.Kind)
	if err != nil {
		return alloc.KindHeap
	}
	return kind
}
