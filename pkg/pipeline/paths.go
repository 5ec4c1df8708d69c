// Package pipeline drives labelling runs: it resolves inputs, processes each
// file through the label builder and writes the results to a timestamped run
// directory.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// RunDirLayout is the time layout of run directory names.
const RunDirLayout = "2006-01-02-150405"

// ErrPathResolution is returned when the input or the output location cannot
// be used. Nothing has been processed when it is returned.
var ErrPathResolution = errors.New("path resolution failed")

// Input is a resolved input location.
type Input struct {
	Path  string
	IsDir bool
}

// ResolveInput checks that path exists and is readable.
func ResolveInput(path string) (Input, error) {
	if path == "" {
		return Input{}, fmt.Errorf("%w: no input given", ErrPathResolution)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrPathResolution, err)
	}

	if info.IsDir() {
		if _, err := os.ReadDir(path); err != nil {
			return Input{}, fmt.Errorf("%w: %v", ErrPathResolution, err)
		}
		return Input{Path: path, IsDir: true}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrPathResolution, err)
	}
	file.Close()

	return Input{Path: path}, nil
}

// CreateRunDir creates outdir/<timestamp> and returns its path.
func CreateRunDir(outdir string, now time.Time) (string, error) {
	if outdir == "" {
		return "", fmt.Errorf("%w: no output directory given", ErrPathResolution)
	}

	runDir := filepath.Join(outdir, now.Format(RunDirLayout))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPathResolution, err)
	}
	return runDir, nil
}

// Filter selects files of a directory input by name.
type Filter struct {
	IncludeHidden bool

	// Include holds doublestar patterns; a file must match one of them.
	// Empty accepts every name.
	Include []string
}

// Accept reports whether a file with the given base name is processed.
func (f Filter) Accept(name string) bool {
	if !f.IncludeHidden && strings.HasPrefix(name, ".") {
		return false
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, pattern := range f.Include {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// ListInputs returns the regular files directly inside dir that pass filter,
// sorted by name. Subdirectories are not descended into.
func ListInputs(dir string, filter Filter) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPathResolution, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !filter.Accept(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}

// OutputName returns the output file name for an input path: the base name
// without its extension, plus ext.
func OutputName(inputPath, ext string) string {
	base := filepath.Base(inputPath)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		base = stem
	}
	return base + ext
}
