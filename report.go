package sourceeval

import (
	"io"
	"strconv"
	"time"
)

// Report column names, in export order.
var ReportColumns = []string{"website", "url", "scrape", "scrapegraph", "categorization", "secondary_category"}

// Checks selects which checkers an evaluation runs.
type Checks struct {
	// Scrape checks robots.txt permission.
	Scrape bool
	// Scrapegraph runs the capability probe.
	Scrapegraph bool
	// Category runs the category probe.
	Category bool
	// SecondaryCategory runs the secondary category probe.
	SecondaryCategory bool
}

// Interactive reports whether any enabled checker needs a Labeler.
func (c Checks) Interactive() bool {
	return c.Category || c.SecondaryCategory
}

// EvaluationRow is the result of evaluating one link. A nil field means the
// checker was not requested, or for scores, that no score was available.
type EvaluationRow struct {
	Website           string   `json:"website"`
	URL               string   `json:"url"`
	Scrape            *bool    `json:"scrape"`
	Scrapegraph       *bool    `json:"scrapegraph"`
	Categorization    *float64 `json:"categorization"`
	SecondaryCategory *float64 `json:"secondary_category"`
}

// Cells returns the row's values in ReportColumns order. Missing values are
// empty strings.
func (r EvaluationRow) Cells() []string {
	return []string{r.Website, r.URL, FormatBool(r.Scrape), FormatBool(r.Scrapegraph),
		FormatScore(r.Categorization), FormatScore(r.SecondaryCategory)}
}

// FormatBool renders an optional check result as "true", "false" or "".
func FormatBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

// FormatScore renders an optional score with the shortest exact
// representation, or "" when absent.
func FormatScore(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// Report is the ordered result of an evaluation run. Row i always
// corresponds to link i of the evaluated collection.
type Report struct {
	RunID      string          `json:"runId"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Rows       []EvaluationRow `json:"rows"`
}

// Summary aggregates a report's rows.
type Summary struct {
	Total int

	// Permitted and Scrapable count rows where the check ran and passed;
	// Checked* count rows where the check ran at all.
	Permitted        int
	CheckedPermitted int
	Scrapable        int
	CheckedScrapable int

	// MeanCategorization and MeanSecondaryCategory are nil when no row has a score.
	MeanCategorization    *float64
	MeanSecondaryCategory *float64
}

// Summary computes aggregate counts over the report's rows.
func (r *Report) Summary() Summary {
	s := Summary{Total: len(r.Rows)}
	var catSum, secSum float64
	var catN, secN int
	for _, row := range r.Rows {
		if row.Scrape != nil {
			s.CheckedPermitted++
			if *row.Scrape {
				s.Permitted++
			}
		}
		if row.Scrapegraph != nil {
			s.CheckedScrapable++
			if *row.Scrapegraph {
				s.Scrapable++
			}
		}
		if row.Categorization != nil {
			catSum += *row.Categorization
			catN++
		}
		if row.SecondaryCategory != nil {
			secSum += *row.SecondaryCategory
			secN++
		}
	}
	if catN > 0 {
		m := catSum / float64(catN)
		s.MeanCategorization = &m
	}
	if secN > 0 {
		m := secSum / float64(secN)
		s.MeanSecondaryCategory = &m
	}
	return s
}

// ReportWriter renders a report to w.
type ReportWriter interface {
	WriteReport(w io.Writer, report *Report) error
}
