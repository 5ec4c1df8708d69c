package pipeline

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/addlabels/pkg/config"
	"github.com/coolbeans/addlabels/pkg/label"
	"github.com/coolbeans/addlabels/pkg/store"
)

const (
	rdfType    = "<http://www.w3.org/1999/02/22-rdf-syntax-ns#type>"
	rdfValue   = "<http://www.w3.org/1999/02/22-rdf-syntax-ns#value>"
	rdfsLabel  = "<http://www.w3.org/2000/01/rdf-schema#label>"
	foafName   = "<http://xmlns.com/foaf/0.1/name>"
	foafPerson = "<http://xmlns.com/foaf/0.1/Person>"
)

var fixedNow = time.Date(2024, 3, 5, 14, 5, 6, 0, time.UTC)

var goodGraph = strings.Join([]string{
	`<http://example.org/person> ` + rdfType + ` ` + foafPerson + ` .`,
	`<http://example.org/person> ` + foafName + ` "Herman Melville" .`,
	`<http://example.org/role> ` + rdfsLabel + ` "Author" .`,
	`<http://example.org/shelf> ` + rdfType + ` <http://example.org/ShelfMark> .`,
	`<http://example.org/shelf> ` + rdfValue + ` "QA76" .`,
	``,
}, "\n")

var brokenGraph = strings.Join([]string{
	`<http://example.org/other> ` + rdfType + ` ` + foafPerson + ` .`,
	`<http://example.org/other> ` + foafName + ` "Ishmael" .`,
	`<http://example.org/broken> this is not ntriples`,
	`<http://example.org/lost> ` + rdfsLabel + ` "Never read" .`,
	``,
}, "\n")

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestRun_GoodAndBrokenFiles(t *testing.T) {
	inputDir, outDir := t.TempDir(), t.TempDir()
	writeInput(t, inputDir, "good.nt", goodGraph)
	writeInput(t, inputDir, "broken.nt", brokenGraph)
	logger, logs := bufferLogger()
	registry := prometheus.NewRegistry()

	report, err := Run(context.Background(), Options{
		Input:    inputDir,
		OutDir:   outDir,
		Config:   config.Default(),
		Logger:   logger,
		Now:      func() time.Time { return fixedNow },
		Registry: registry,
	})

	require.NoError(t, err)
	runDir := filepath.Join(outDir, "2024-03-05-140506")
	assert.Equal(t, runDir, report.RunDir)
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Files, 2)

	broken, good := report.Files[0], report.Files[1]
	assert.Equal(t, StatusParseError, broken.Status)
	assert.Equal(t, 2, broken.Triples)
	assert.Equal(t, StatusOK, good.Status)
	assert.Equal(t, label.Stats{Subjects: 3, NewLabels: 2, ModifiedLabels: 1}, good.Stats)

	output, err := os.ReadFile(filepath.Join(runDir, "good.nt"))
	require.NoError(t, err)
	assert.Contains(t, string(output), `<http://example.org/person> `+rdfsLabel+` "Herman Melville" .`)
	assert.Contains(t, string(output), `<http://example.org/role> `+rdfsLabel+` "Author Contribution" .`)
	assert.Contains(t, string(output), `<http://example.org/shelf> `+rdfsLabel+` "QA76 (Shelf Mark)" .`)
	assert.NotContains(t, string(output), `"Author" .`)

	partial, err := os.ReadFile(filepath.Join(runDir, "broken.nt"))
	require.NoError(t, err)
	assert.Contains(t, string(partial), `"Ishmael"`)
	assert.NotContains(t, string(partial), "Never read")

	assert.Contains(t, logs.String(), "broken.nt")
	assert.Contains(t, logs.String(), "Parse error")
	assert.Contains(t, logs.String(), "run_id="+report.RunID)

	assert.Equal(t, 4, report.Totals.Subjects)
	assert.Equal(t, report.Totals.Subjects, report.Totals.Outcomes())
	count, err := testutil.GatherAndCount(registry, "addlabels_subjects_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRun_SingleFileTurtle(t *testing.T) {
	inputDir, outDir := t.TempDir(), t.TempDir()
	input := writeInput(t, inputDir, "catalog.nt", goodGraph)
	cfg := config.Default()
	cfg.OutputFormat = config.OutputTurtle
	logger, _ := bufferLogger()

	report, err := Run(context.Background(), Options{
		Input:  input,
		OutDir: outDir,
		Config: cfg,
		Logger: logger,
		Now:    func() time.Time { return fixedNow },
	})

	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, filepath.Join(report.RunDir, "catalog.ttl"), report.Files[0].Output)

	ts, err := store.Load(report.Files[0].Output)
	require.NoError(t, err)
	assert.True(t, ts.Exists(
		store.NewIRI("http://example.org/person"), store.RDFSLabel, store.NewLiteral("Herman Melville")))
}

func TestRun_OutputIsIdempotent(t *testing.T) {
	inputDir := t.TempDir()
	writeInput(t, inputDir, "good.nt", goodGraph)
	logger, _ := bufferLogger()

	first, err := Run(context.Background(), Options{
		Input: inputDir, OutDir: t.TempDir(), Config: config.Default(), Logger: logger,
	})
	require.NoError(t, err)

	second, err := Run(context.Background(), Options{
		Input: first.RunDir, OutDir: t.TempDir(), Config: config.Default(), Logger: logger,
	})
	require.NoError(t, err)

	require.Len(t, second.Files, 1)
	assert.Zero(t, second.Totals.NewLabels)
	assert.Zero(t, second.Totals.ModifiedLabels)

	before, err := os.ReadFile(first.Files[0].Output)
	require.NoError(t, err)
	after, err := os.ReadFile(second.Files[0].Output)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestRun_PathResolutionFailures(t *testing.T) {
	logger, _ := bufferLogger()
	outDir := t.TempDir()

	_, err := Run(context.Background(), Options{
		Input: filepath.Join(t.TempDir(), "missing"), OutDir: outDir, Config: config.Default(), Logger: logger,
	})
	assert.ErrorIs(t, err, ErrPathResolution)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no run directory is created when the input is missing")

	blocker := writeInput(t, t.TempDir(), "file", "")
	_, err = Run(context.Background(), Options{
		Input: writeInput(t, t.TempDir(), "good.nt", goodGraph), OutDir: blocker, Config: config.Default(), Logger: logger,
	})
	assert.ErrorIs(t, err, ErrPathResolution)
}

func TestRun_WriteFailureContinues(t *testing.T) {
	inputDir, outDir := t.TempDir(), t.TempDir()
	writeInput(t, inputDir, "a.nt", goodGraph)
	writeInput(t, inputDir, "b.nt", goodGraph)
	runDir := filepath.Join(outDir, "2024-03-05-140506")
	// A directory where the first output file should go makes its write fail.
	require.NoError(t, os.MkdirAll(filepath.Join(runDir, "a.nt"), 0o755))
	logger, logs := bufferLogger()

	report, err := Run(context.Background(), Options{
		Input:  inputDir,
		OutDir: outDir,
		Config: config.Default(),
		Logger: logger,
		Now:    func() time.Time { return fixedNow },
	})

	require.NoError(t, err)
	require.Len(t, report.Files, 2)
	assert.Equal(t, StatusWriteError, report.Files[0].Status)
	assert.Empty(t, report.Files[0].Output)
	assert.Equal(t, StatusOK, report.Files[1].Status)
	assert.Contains(t, logs.String(), "Failed to write output")
}

func TestRun_MetricsFile(t *testing.T) {
	inputDir, outDir := t.TempDir(), t.TempDir()
	writeInput(t, inputDir, "good.nt", goodGraph)
	cfg := config.Default()
	cfg.MetricsFile = filepath.Join(t.TempDir(), "addlabels.prom")
	logger, _ := bufferLogger()

	_, err := Run(context.Background(), Options{Input: inputDir, OutDir: outDir, Config: cfg, Logger: logger})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "addlabels_subjects_total 3")
	assert.Contains(t, text, `addlabels_labels_total{outcome="new"} 2`)
	assert.Contains(t, text, `addlabels_labels_total{outcome="modified"} 1`)
	assert.Contains(t, text, `addlabels_files_total{status="ok"} 1`)
	assert.Contains(t, text, `addlabels_files_total{status="parse_error"} 0`)
}

func TestRun_IncludeFilter(t *testing.T) {
	inputDir := t.TempDir()
	writeInput(t, inputDir, "keep.nt", goodGraph)
	writeInput(t, inputDir, "skip.txt", goodGraph)
	cfg := config.Default()
	cfg.Include = []string{"*.nt"}
	logger, _ := bufferLogger()

	report, err := Run(context.Background(), Options{Input: inputDir, OutDir: t.TempDir(), Config: cfg, Logger: logger})

	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	assert.Equal(t, filepath.Join(inputDir, "keep.nt"), report.Files[0].Input)
}

func TestRun_CancelledContextProcessesNothing(t *testing.T) {
	inputDir := t.TempDir()
	writeInput(t, inputDir, "good.nt", goodGraph)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	logger, _ := bufferLogger()

	report, err := Run(ctx, Options{Input: inputDir, OutDir: t.TempDir(), Config: config.Default(), Logger: logger})

	require.NoError(t, err)
	assert.Empty(t, report.Files)
}

func TestRunReport_String(t *testing.T) {
	report := &RunReport{}
	report.Add(FileReport{Status: StatusOK, Stats: label.Stats{Subjects: 2, NewLabels: 1, RetainedLabels: 1}})
	report.Add(FileReport{Status: StatusParseError, Stats: label.Stats{Subjects: 1, NoLabelMade: 1}})

	assert.Equal(t,
		"2 files (1 ok, 1 parse errors, 0 write errors), 3 subjects: 1 new, 0 modified, 1 retained, 1 without label",
		report.String())
}
