// Package csv exports evaluation reports as CSV and reads pre-built link
// lists from CSV.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fwojciec/sourceeval"
)

// Ensure ReportWriter implements sourceeval.ReportWriter at compile time.
var _ sourceeval.ReportWriter = (*ReportWriter)(nil)

// ReportWriter writes a header row followed by one row per evaluated link,
// in report order. Checks that did not run are left empty.
type ReportWriter struct {
	// Comma is the field delimiter. Defaults to ','.
	Comma rune
}

// NewReportWriter creates a ReportWriter using comma-separated fields.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{Comma: ','}
}

// WriteReport writes report to w.
func (rw *ReportWriter) WriteReport(w io.Writer, report *sourceeval.Report) error {
	cw := csv.NewWriter(w)
	if rw.Comma != 0 {
		cw.Comma = rw.Comma
	}

	if err := cw.Write(sourceeval.ReportColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range report.Rows {
		if err := cw.Write(row.Cells()); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
