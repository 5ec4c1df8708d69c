package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/coolbeans/addlabels/pkg/config"
	"github.com/coolbeans/addlabels/pkg/label"
)

// Options configures a run.
type Options struct {
	Input  string
	OutDir string
	Config config.Config
	Logger *slog.Logger

	// Now stamps the run directory. Defaults to time.Now.
	Now func() time.Time

	// Registry collects the run counters. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// Run processes every input file and returns the run report. Only path
// resolution failures are returned as errors, and only before any file has
// been processed. In watch mode Run keeps going until ctx is cancelled.
func Run(ctx context.Context, opts Options) (*RunReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	serializer, err := SerializerFor(opts.Config.OutputFormat)
	if err != nil {
		return nil, err
	}

	input, err := ResolveInput(opts.Input)
	if err != nil {
		return nil, err
	}

	filter := Filter{IncludeHidden: opts.Config.IncludeHidden, Include: opts.Config.Include}
	files := []string{input.Path}
	if input.IsDir {
		if files, err = ListInputs(input.Path, filter); err != nil {
			return nil, err
		}
	}

	runDir, err := CreateRunDir(opts.OutDir, now())
	if err != nil {
		return nil, err
	}

	metrics, err := NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	report := &RunReport{RunID: uuid.NewString(), RunDir: runDir}
	logger = logger.With("run_id", report.RunID)

	builder := label.NewBuilder(label.WithStrategy(opts.Config.Strategy()))
	processor := NewProcessor(builder, serializer, metrics, logger)

	logger.Info("Starting run",
		"input", input.Path,
		"run_dir", runDir,
		"files", len(files),
		"classification", opts.Config.Strategy(),
		"format", opts.Config.OutputFormat)

	for _, file := range files {
		if ctx.Err() != nil {
			logger.Warn("Run interrupted", "remaining", len(files)-len(report.Files))
			break
		}
		report.Add(processor.ProcessFile(file, runDir))
	}

	if opts.Config.Watch && input.IsDir && ctx.Err() == nil {
		err := Watch(ctx, input.Path, filter, logger, func(path string) {
			report.Add(processor.ProcessFile(path, runDir))
		})
		if err != nil {
			logger.Error("Watch stopped", "error", err)
		}
	}

	logSummary(logger, report)

	if opts.Config.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.Config.MetricsFile, registry); err != nil {
			logger.Error("Failed to write metrics file", "path", opts.Config.MetricsFile, "error", err)
		}
	}

	return report, nil
}

func logSummary(logger *slog.Logger, report *RunReport) {
	logger.Info("Run complete",
		"run_dir", report.RunDir,
		"files", len(report.Files),
		"ok", report.Count(StatusOK),
		"parse_errors", report.Count(StatusParseError),
		"write_errors", report.Count(StatusWriteError),
		"subjects", report.Totals.Subjects,
		"new", report.Totals.NewLabels,
		"modified", report.Totals.ModifiedLabels,
		"retained", report.Totals.RetainedLabels,
		"none", report.Totals.NoLabelMade)
}

// String returns a one-line summary of the run.
func (r *RunReport) String() string {
	return fmt.Sprintf("%d files (%d ok, %d parse errors, %d write errors), %d subjects: %d new, %d modified, %d retained, %d without label",
		len(r.Files), r.Count(StatusOK), r.Count(StatusParseError), r.Count(StatusWriteError),
		r.Totals.Subjects, r.Totals.NewLabels, r.Totals.ModifiedLabels, r.Totals.RetainedLabels, r.Totals.NoLabelMade)
}
