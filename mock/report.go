package mock

import (
	"io"

	"github.com/fwojciec/sourceeval"
)

var _ sourceeval.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of sourceeval.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(w io.Writer, report *sourceeval.Report) error
}

func (r *ReportWriter) WriteReport(w io.Writer, report *sourceeval.Report) error {
	return r.WriteReportFn(w, report)
}
