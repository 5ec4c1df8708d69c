package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/coolbeans/addlabels/pkg/config"
	"github.com/coolbeans/addlabels/pkg/label"
	"github.com/coolbeans/addlabels/pkg/store"
	"github.com/coolbeans/addlabels/pkg/vocab"
)

// SerializerFor returns the serializer for a configured output format.
func SerializerFor(format string) (store.Serializer, error) {
	switch format {
	case config.OutputNTriples, "":
		return store.NewNTriplesSerializer(), nil
	case config.OutputTurtle:
		return store.NewTurtleSerializer(store.WithPrefixes(vocab.Prefixes())), nil
	default:
		return nil, fmt.Errorf("%w: output format %q", store.ErrUnsupportedFormat, format)
	}
}

// Processor labels single files.
type Processor struct {
	builder    *label.Builder
	serializer store.Serializer
	metrics    *Metrics
	logger     *slog.Logger
}

// NewProcessor creates a processor. metrics may be nil.
func NewProcessor(builder *label.Builder, serializer store.Serializer, metrics *Metrics, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		builder:    builder,
		serializer: serializer,
		metrics:    metrics,
		logger:     logger,
	}
}

// ProcessFile loads path, labels it and writes the result into runDir.
// Failures are logged and reported, never returned: one bad file does not
// stop the run.
func (p *Processor) ProcessFile(path, runDir string) FileReport {
	report := FileReport{Input: path, Status: StatusOK}
	logger := p.logger.With("file", filepath.Base(path))

	ts, err := store.Load(path)
	if err != nil {
		var parseErr *store.ParseError
		if !errors.As(err, &parseErr) {
			logger.Error("Failed to read input", "error", err)
			report.Status, report.Error = StatusParseError, err.Error()
			p.metrics.Observe(report)
			return report
		}
		logger.Error("Parse error, continuing with partial graph",
			"parsed", parseErr.Parsed, "error", parseErr.Err)
		report.Status, report.Error = StatusParseError, err.Error()
	}
	report.Triples = ts.Count()

	stats := ts.Stats()
	logger.Debug("Loaded graph",
		"triples", stats.TotalTriples,
		"subjects", stats.UniqueSubjects,
		"predicates", stats.UniquePredicates)

	changes := p.builder.Build(ts)
	report.Stats = changes.Stats
	report.Diagnostics = len(changes.Diagnostics)
	p.logDiagnostics(logger, changes.Diagnostics)

	if changes.Empty() {
		logger.Debug("No label changes")
	} else if err := changes.Apply(ts); err != nil {
		logger.Warn("Some labels could not be added", "error", err)
	}

	output := filepath.Join(runDir, OutputName(path, p.serializer.Extension()))
	if err := writeFile(output, p.serializer.Serialize(ts)); err != nil {
		logger.Error("Failed to write output", "output", output, "error", err)
		report.Status, report.Error = StatusWriteError, err.Error()
		p.metrics.Observe(report)
		return report
	}
	report.Output = output

	logger.Info("Labelled file",
		"output", filepath.Base(output),
		"subjects", changes.Stats.Subjects,
		"new", changes.Stats.NewLabels,
		"modified", changes.Stats.ModifiedLabels,
		"retained", changes.Stats.RetainedLabels,
		"none", changes.Stats.NoLabelMade)

	p.metrics.Observe(report)
	return report
}

func (p *Processor) logDiagnostics(logger *slog.Logger, diagnostics []label.Diagnostic) {
	for _, diagnostic := range diagnostics {
		attrs := []any{
			"subject", diagnostic.Subject.String(),
			"rule", diagnostic.Rule,
			"error", diagnostic.Err,
		}
		if diagnostic.Kind == label.DiagnosticDispatchFailure {
			logger.Warn("Label rule failed", attrs...)
		} else {
			logger.Debug("Label rule found no value", attrs...)
		}
	}
}

// writeFile writes data to a hidden temp file beside path, then renames it
// into place so path never holds a partial graph.
func writeFile(path, data string) error {
	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp")
	if err := os.WriteFile(tmpPath, []byte(data), 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}

	return nil
}
