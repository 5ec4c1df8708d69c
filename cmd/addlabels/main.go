// Package main provides the addlabels binary entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coolbeans/addlabels/pkg/config"
	"github.com/coolbeans/addlabels/pkg/pipeline"
)

var version = "0.1.0"

const appName = "addlabels"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	input          string
	outdir         string
	configPath     string
	logLevel       string
	logFormat      string
	format         string
	classification string
	metricsFile    string
	watch          bool
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Add rdfs:label statements to RDF graphs",
		Long: `Addlabels gives every resource in an RDF graph a human-readable
rdfs:label.

Resources without a label get one built from their type: a work from its
title, a person or organization from its name, a topic from its preferred
label, anything else from its rdf:value and type name. Existing labels that
name a bare role, such as "Author", are rewritten to their canonical form.

Each input file is written to a timestamped directory under --outdir.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags parsed; from here on failures are not usage errors.
			cmd.SilenceUsage = true
			return run(cmd.Context(), cmd.Flags(), f, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Input file or directory of RDF files")
	cmd.Flags().StringVarP(&f.outdir, "outdir", "o", "", "Output directory; each run writes to a timestamped subdirectory")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.logFormat, "log-format", config.LogFormatText, "Log format (text, json)")
	cmd.Flags().StringVar(&f.format, "format", config.OutputNTriples, "Output format (ntriples, turtle)")
	cmd.Flags().StringVar(&f.classification, "classification", "statement-order", "Type classification strategy (statement-order, priority)")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write run counters to this file in Prometheus text format")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Keep watching a directory input for new or changed files")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("outdir")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, version)
		},
	})

	return cmd
}

// loadConfig reads the config file, if any, and lets explicitly set flags
// override it.
func loadConfig(set *pflag.FlagSet, f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	overrides := map[string]func(){
		"log-level":      func() { cfg.LogLevel = f.logLevel },
		"log-format":     func() { cfg.LogFormat = f.logFormat },
		"format":         func() { cfg.OutputFormat = f.format },
		"classification": func() { cfg.Classification = f.classification },
		"metrics-file":   func() { cfg.MetricsFile = f.metricsFile },
		"watch":          func() { cfg.Watch = f.watch },
	}
	for name, apply := range overrides {
		if set.Changed(name) {
			apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupLogger(cfg config.Config, w io.Writer) *slog.Logger {
	level, _ := config.ParseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("service", appName, "version", version)
}

func run(ctx context.Context, set *pflag.FlagSet, f flags, stderr io.Writer) error {
	cfg, err := loadConfig(set, f)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg, stderr)
	slog.SetDefault(logger)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := pipeline.Run(ctx, pipeline.Options{
		Input:  f.input,
		OutDir: f.outdir,
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "%s: %s\n", report.RunDir, report)
	return nil
}
