// Package pretty renders evaluation reports as console tables with go-pretty.
package pretty

import (
	"io"

	"github.com/fwojciec/sourceeval"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Ensure TableWriter implements sourceeval.ReportWriter at compile time.
var _ sourceeval.ReportWriter = (*TableWriter)(nil)

// TableWriter renders a report as a boxed table, one row per link.
type TableWriter struct {
	Style table.Style
	// MaxURLWidth truncates long URLs. Zero leaves them intact.
	MaxURLWidth int
}

// NewTableWriter creates a TableWriter using the light box style.
func NewTableWriter() *TableWriter {
	return &TableWriter{Style: table.StyleLight}
}

// WriteReport renders report to w.
func (tw *TableWriter) WriteReport(w io.Writer, report *sourceeval.Report) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(tw.Style)

	header := make(table.Row, len(sourceeval.ReportColumns))
	for i, col := range sourceeval.ReportColumns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range report.Rows {
		cells := row.Cells()
		r := make(table.Row, len(cells))
		for i, c := range cells {
			r[i] = c
		}
		t.AppendRow(r)
	}

	configs := []table.ColumnConfig{
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, Align: text.AlignCenter},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	}
	if tw.MaxURLWidth > 0 {
		configs = append(configs, table.ColumnConfig{
			Number:           2,
			WidthMax:         tw.MaxURLWidth,
			WidthMaxEnforcer: text.Trim,
		})
	}
	t.SetColumnConfigs(configs)

	t.Render()
	return nil
}
