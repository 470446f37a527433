// Package fs stores evaluation reports on the local filesystem.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/sourceeval"
)

// ReportFile writes a report to Path atomically. The report is rendered to
// Path+".tmp" first and renamed over Path only when rendering succeeded, so
// an interrupted run never leaves a truncated report behind.
type ReportFile struct {
	Path   string
	Writer sourceeval.ReportWriter
}

// NewReportFile creates a ReportFile rendering with w.
func NewReportFile(path string, w sourceeval.ReportWriter) *ReportFile {
	return &ReportFile{Path: path, Writer: w}
}

func (f *ReportFile) tempPath() string {
	return f.Path + ".tmp"
}

// Save renders report and replaces Path with the result, creating parent
// directories as needed.
func (f *ReportFile) Save(report *sourceeval.Report) error {
	if f.Path == "" {
		return sourceeval.Errorf(sourceeval.ECONFIG, "report path required")
	}

	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	tmp, err := os.Create(f.tempPath())
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := f.Writer.WriteReport(tmp, report); err != nil {
		tmp.Close()
		f.abort()
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		f.abort()
		return fmt.Errorf("write report: %w", err)
	}

	if err := os.Rename(f.tempPath(), f.Path); err != nil {
		f.abort()
		return fmt.Errorf("commit report: %w", err)
	}
	return nil
}

func (f *ReportFile) abort() {
	_ = os.Remove(f.tempPath())
}
