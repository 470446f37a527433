// Package markdown renders evaluation reports as Markdown documents with a
// summary section, using nao1215/markdown.
package markdown

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fwojciec/sourceeval"
	"github.com/nao1215/markdown"
)

// Ensure ReportWriter implements sourceeval.ReportWriter at compile time.
var _ sourceeval.ReportWriter = (*ReportWriter)(nil)

// ReportWriter writes a titled Markdown report: run metadata, a summary and
// the full results table.
type ReportWriter struct {
	Title string
}

// NewReportWriter creates a ReportWriter.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{Title: "Source Evaluation Report"}
}

// WriteReport writes report to w.
func (rw *ReportWriter) WriteReport(w io.Writer, report *sourceeval.Report) error {
	md := markdown.NewMarkdown(w)

	md.H1(rw.Title)
	md.PlainText("")
	rw.writeRun(md, report)
	rw.writeSummary(md, report.Summary())
	rw.writeResults(md, report)

	return md.Build()
}

func (rw *ReportWriter) writeRun(md *markdown.Markdown, report *sourceeval.Report) {
	rows := [][]string{}
	if report.RunID != "" {
		rows = append(rows, []string{"Run", "`" + report.RunID + "`"})
	}
	if !report.StartedAt.IsZero() {
		rows = append(rows, []string{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")})
	}
	if !report.FinishedAt.IsZero() && !report.StartedAt.IsZero() {
		rows = append(rows, []string{"Duration", report.FinishedAt.Sub(report.StartedAt).Round(1e6).String()})
	}
	if len(rows) == 0 {
		return
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (rw *ReportWriter) writeSummary(md *markdown.Markdown, s sourceeval.Summary) {
	md.H2("Summary")
	md.PlainText("")

	if s.Total == 0 {
		md.Note("No links were found in the scanned pages.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Measure", "Value"},
		Rows: [][]string{
			{"Sources", strconv.Itoa(s.Total)},
			{"Scraping permitted", ratio(s.Permitted, s.CheckedPermitted)},
			{"Engine capable", ratio(s.Scrapable, s.CheckedScrapable)},
			{"Mean categorization", mean(s.MeanCategorization)},
			{"Mean secondary category", mean(s.MeanSecondaryCategory)},
		},
	})
	md.PlainText("")

	if s.CheckedPermitted > 0 && s.Permitted == 0 {
		md.Warning("No source permits automated scraping.")
		md.PlainText("")
	}
}

func (rw *ReportWriter) writeResults(md *markdown.Markdown, report *sourceeval.Report) {
	md.H2("Results")
	md.PlainText("")

	rows := make([][]string, len(report.Rows))
	for i, row := range report.Rows {
		cells := row.Cells()
		for j, c := range cells {
			if c == "" {
				cells[j] = "-"
			}
		}
		rows[i] = cells
	}
	md.Table(markdown.TableSet{
		Header: sourceeval.ReportColumns,
		Rows:   rows,
	})
}

// ratio renders "n/of", or "-" when the check never ran.
func ratio(n, of int) string {
	if of == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", n, of)
}

func mean(f *float64) string {
	if f == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *f)
}
