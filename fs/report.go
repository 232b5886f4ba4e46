// Package fs provides file-based output for provider directory reports.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/provdir/provdir"
)

// DefaultReportFilename is the report filename used when the target path
// points at a directory.
const DefaultReportFilename = "doctor_analysis_report.json"

// Ensure Writer implements provdir.ReportWriter at compile time.
var _ provdir.ReportWriter = (*Writer)(nil)

// Writer writes aggregate reports to disk as indented JSON.
type Writer struct {
	path string
}

// NewWriter creates a new Writer targeting the given path. A path ending in
// a separator, or naming an existing directory, gets DefaultReportFilename
// appended.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the full file path the writer will write to.
func (w *Writer) Path() string {
	if w.path == "" {
		return DefaultReportFilename
	}
	if w.path[len(w.path)-1] == filepath.Separator || w.path[len(w.path)-1] == '/' {
		return filepath.Join(w.path, DefaultReportFilename)
	}
	if info, err := os.Stat(w.path); err == nil && info.IsDir() {
		return filepath.Join(w.path, DefaultReportFilename)
	}
	return w.path
}

// WriteReport serializes the report as indented JSON and writes it to disk,
// creating parent directories as needed.
func (w *Writer) WriteReport(ctx context.Context, report *provdir.Report) error {
	if report == nil {
		return provdir.Errorf(provdir.EINVALID, "report is required")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	fullPath := w.Path()
	if dir := filepath.Dir(fullPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(fullPath, data, 0644)
}
