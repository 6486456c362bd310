// Package config loads the adev command configuration from YAML.
//
// Every field has a default, so an empty file (or no file) is valid.
// Command-line flags override whatever the file sets.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-avgdev/internal/report"
	"github.com/cwbudde/algo-avgdev/stats/deviation"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultFormat       = string(report.FormatText)
	DefaultDelimiter    = ","
	DefaultMetricPrefix = "adev"
	DefaultLogLevel     = "info"
)

// Config is the top-level command configuration.
type Config struct {
	// Format selects the report writer: text | csv | json | prom.
	Format string `yaml:"format"`

	// Delimiter separates values in input tables. "ws" splits on runs of
	// whitespace instead of a single character.
	Delimiter string `yaml:"delimiter"`

	// Header marks the first input row as channel names.
	Header bool `yaml:"header"`

	// Mean adds each channel's mean to the report.
	Mean bool `yaml:"mean"`

	// Workers bounds the goroutines channels are spread across; 0 uses
	// GOMAXPROCS.
	Workers int `yaml:"workers"`

	// ParallelThreshold is the minimum samples*channels before work is
	// partitioned.
	ParallelThreshold int `yaml:"parallel_threshold"`

	// MetricPrefix names the Prometheus metric families (prom format).
	MetricPrefix string `yaml:"metric_prefix"`

	Log LogConfig `yaml:"log"`
}

// LogConfig controls the command's slog handler.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// JSON switches from the text handler to the JSON handler.
	JSON bool `yaml:"json"`
}

// SlogLevel maps Level to a slog.Level. Validate guarantees it parses.
func (l LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Format:            DefaultFormat,
		Delimiter:         DefaultDelimiter,
		ParallelThreshold: deviation.DefaultParallelThreshold,
		MetricPrefix:      DefaultMetricPrefix,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML bytes on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks field values and structural constraints.
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}

	if c.Delimiter != "ws" && len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("delimiter: must be a single character or \"ws\", got %q", c.Delimiter)
	}
	if c.Delimiter == "\"" || c.Delimiter == "\n" || c.Delimiter == "\r" {
		return fmt.Errorf("delimiter: %q cannot separate fields", c.Delimiter)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers: must be >= 0, got %d", c.Workers)
	}
	if c.ParallelThreshold < 0 {
		return fmt.Errorf("parallel_threshold: must be >= 0, got %d", c.ParallelThreshold)
	}

	if c.MetricPrefix == "" || strings.ContainsAny(c.MetricPrefix, " -.{}\"") {
		return fmt.Errorf("metric_prefix: invalid metric name prefix %q", c.MetricPrefix)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// Options converts the computation settings into deviation options.
func (c *Config) Options() []deviation.Option {
	return []deviation.Option{
		deviation.WithWorkers(c.Workers),
		deviation.WithParallelThreshold(c.ParallelThreshold),
	}
}
