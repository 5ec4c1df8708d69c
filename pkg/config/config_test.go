package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/addlabels/pkg/label"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "addlabels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
	assert.Equal(t, OutputNTriples, cfg.OutputFormat)
	assert.Equal(t, label.StrategyStatementOrder, cfg.Strategy())
	assert.False(t, cfg.Watch)
	assert.Empty(t, cfg.Include)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
log_format: json
classification: priority
output_format: turtle
metrics_file: /tmp/addlabels.prom
include_hidden: true
include:
  - "*.nt"
  - "catalog-*.ttl"
watch: true
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Config{
		LogLevel:       "debug",
		LogFormat:      LogFormatJSON,
		Classification: "priority",
		OutputFormat:   OutputTurtle,
		MetricsFile:    "/tmp/addlabels.prom",
		IncludeHidden:  true,
		Include:        []string{"*.nt", "catalog-*.ttl"},
		Watch:          true,
	}, cfg)
	assert.Equal(t, label.StrategyPriority, cfg.Strategy())
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "output_format: turtle\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, OutputTurtle, cfg.OutputFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, string(label.StrategyStatementOrder), cfg.Classification)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "log_level: [unterminated\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"log format", func(c *Config) { c.LogFormat = "xml" }},
		{"classification", func(c *Config) { c.Classification = "random" }},
		{"output format", func(c *Config) { c.OutputFormat = "jsonld" }},
		{"include pattern", func(c *Config) { c.Include = []string{"[unclosed"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}
