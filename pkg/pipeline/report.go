package pipeline

import (
	"github.com/coolbeans/addlabels/pkg/label"
)

// FileStatus is the outcome of processing one input file.
type FileStatus string

const (
	// StatusOK means the file parsed cleanly and its output was written.
	StatusOK FileStatus = "ok"

	// StatusParseError means the file was only partly readable. Whatever was
	// decoded before the error was still labelled and written.
	StatusParseError FileStatus = "parse_error"

	// StatusWriteError means the output could not be written.
	StatusWriteError FileStatus = "write_error"
)

// FileReport describes one processed file.
type FileReport struct {
	Input       string      `json:"input"`
	Output      string      `json:"output,omitempty"`
	Status      FileStatus  `json:"status"`
	Triples     int         `json:"triples"`
	Stats       label.Stats `json:"stats"`
	Diagnostics int         `json:"diagnostics"`
	Error       string      `json:"error,omitempty"`
}

// RunReport summarises a whole run.
type RunReport struct {
	RunID  string       `json:"run_id"`
	RunDir string       `json:"run_dir"`
	Files  []FileReport `json:"files"`
	Totals label.Stats  `json:"totals"`
}

// Add records a file and folds its counters into the totals.
func (r *RunReport) Add(file FileReport) {
	r.Files = append(r.Files, file)
	r.Totals.Add(file.Stats)
}

// Count returns the number of files that ended with status.
func (r *RunReport) Count(status FileStatus) int {
	n := 0
	for _, file := range r.Files {
		if file.Status == status {
			n++
		}
	}
	return n
}
