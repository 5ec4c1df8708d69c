// Package config holds the settings of an addlabels run and loads them from
// YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/addlabels/pkg/label"
)

// Output formats.
const (
	OutputNTriples = "ntriples"
	OutputTurtle   = "turtle"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the full configuration of a run. Input and output locations are
// not part of it; they always come from the command line.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`

	// Classification names the classification strategy.
	Classification string `yaml:"classification"`

	// OutputFormat is ntriples or turtle.
	OutputFormat string `yaml:"output_format"`

	// MetricsFile, if set, receives the run counters in Prometheus text format.
	MetricsFile string `yaml:"metrics_file,omitempty"`

	// IncludeHidden processes dot-files in a directory input.
	IncludeHidden bool `yaml:"include_hidden"`

	// Include restricts a directory input to file names matching any of these
	// doublestar patterns. Empty means every file.
	Include []string `yaml:"include,omitempty"`

	// Watch keeps watching a directory input after the first batch.
	Watch bool `yaml:"watch"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel:       "info",
		LogFormat:      LogFormatText,
		Classification: string(label.StrategyStatementOrder),
		OutputFormat:   OutputNTriples,
	}
}

// Load reads a YAML config file. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("log_format must be %s or %s, got %q", LogFormatText, LogFormatJSON, c.LogFormat)
	}

	if _, err := label.ParseStrategy(c.Classification); err != nil {
		return err
	}

	switch c.OutputFormat {
	case OutputNTriples, OutputTurtle:
	default:
		return fmt.Errorf("output_format must be %s or %s, got %q", OutputNTriples, OutputTurtle, c.OutputFormat)
	}

	for _, pattern := range c.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("include pattern %q is malformed", pattern)
		}
	}

	return nil
}

// Strategy returns the configured classification strategy.
func (c Config) Strategy() label.Strategy {
	strategy, err := label.ParseStrategy(c.Classification)
	if err != nil {
		return label.StrategyStatementOrder
	}
	return strategy
}

// ParseLevel maps a level name to a slog level. Matching ignores case.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level must be debug, info, warn or error, got %q", name)
	}
}
