// Package evaluate drives a source evaluation run: it resolves the links to
// evaluate, normalizes their names once, runs the enabled checkers against
// every link and collects one report row per link.
//
// Only document access and configuration errors abort a run. Every other
// failure is confined to a single (link, checker) pair and recorded in that
// row as a denial, a failed probe or a missing score.
package evaluate

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/sourceeval"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// State is a stage of an evaluation run.
type State int

// Run states, in order.
const (
	StateInit State = iota
	StateLinksResolved
	StateNamesCleaned
	StateEvaluating
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateLinksResolved:
		return "links_resolved"
	case StateNamesCleaned:
		return "names_cleaned"
	case StateEvaluating:
		return "evaluating"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressState reports a state transition.
	ProgressState ProgressType = iota
	// ProgressLink reports that a link's row is complete.
	ProgressLink
)

// ProgressEvent reports progress during an evaluation run.
type ProgressEvent struct {
	Type      ProgressType
	State     State
	Completed int
	Total     int
	URL       string
}

// ProgressFunc is a callback for reporting evaluation progress. It may be
// called from several goroutines at once when Concurrency is above one.
type ProgressFunc func(event ProgressEvent)

// Evaluator runs the enabled checkers against a collection of links.
type Evaluator struct {
	// Links and Document are used when no collection is passed to Evaluate.
	Links    sourceeval.LinkExtractor
	Document string
	// Pages defaults to sourceeval.DefaultPageRange.
	Pages *sourceeval.PageRange

	Permissions sourceeval.PermissionChecker
	Prober      sourceeval.Prober

	// Limiter, if set, is waited on with the link's host before every
	// network-bound check.
	Limiter sourceeval.DomainLimiter

	// Concurrency is the number of links evaluated at once. Defaults to 1.
	// Checkers for a single link always run one after another.
	Concurrency int

	// CheckTimeout bounds each checker invocation. Zero means no bound.
	CheckTimeout time.Duration

	Logger   *slog.Logger
	Progress ProgressFunc
}

// Evaluate runs the checks selected by checks over links, or over the links
// extracted from Document when links is nil. The returned report has one
// row per link, in collection order.
//
// Evaluate returns EDOCUMENT if the document cannot be read and ECONFIG if
// a selected check has no checker. If ctx is canceled mid-run, the complete
// report is returned along with ctx's error; unfinished checks are recorded
// as failures.
func (e *Evaluator) Evaluate(ctx context.Context, links *sourceeval.LinkCollection, checks sourceeval.Checks) (*sourceeval.Report, error) {
	report := &sourceeval.Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	logger := e.logger().With("run", report.RunID)

	if err := e.validate(links, checks); err != nil {
		return nil, err
	}
	logger.Debug("state", "state", StateInit)

	if links == nil {
		pages := sourceeval.DefaultPageRange
		if e.Pages != nil {
			pages = *e.Pages
		}
		extracted, err := e.Links.ExtractLinks(ctx, e.Document, pages)
		if err != nil {
			return nil, err
		}
		links = sourceeval.NewLinkCollection(extracted)
	}
	e.transition(logger, StateLinksResolved, links.Len())

	if !links.Clean() {
		logger.Debug("names already normalized")
	}
	e.transition(logger, StateNamesCleaned, links.Len())

	items := links.Links()
	report.Rows = make([]sourceeval.EvaluationRow, len(items))
	e.transition(logger, StateEvaluating, len(items))

	var completed atomic.Int64
	var g errgroup.Group
	g.SetLimit(max(e.Concurrency, 1))
	for i, link := range items {
		g.Go(func() error {
			report.Rows[i] = e.evaluateLink(ctx, logger, link, checks)
			n := int(completed.Add(1))
			if e.Progress != nil {
				e.Progress(ProgressEvent{
					Type:      ProgressLink,
					State:     StateEvaluating,
					Completed: n,
					Total:     len(items),
					URL:       link.URL,
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	report.FinishedAt = time.Now().UTC()
	e.transition(logger, StateDone, len(items))

	return report, ctx.Err()
}

// validate returns ECONFIG if a selected check cannot run.
func (e *Evaluator) validate(links *sourceeval.LinkCollection, checks sourceeval.Checks) error {
	if links == nil && e.Links == nil {
		return sourceeval.Errorf(sourceeval.ECONFIG, "no links supplied and no link extractor configured")
	}
	if links == nil && e.Document == "" {
		return sourceeval.Errorf(sourceeval.ECONFIG, "document path required")
	}
	if checks.Scrape && e.Permissions == nil {
		return sourceeval.Errorf(sourceeval.ECONFIG, "scrape check enabled without a permission checker")
	}
	if (checks.Scrapegraph || checks.Interactive()) && e.Prober == nil {
		return sourceeval.Errorf(sourceeval.ECONFIG, "engine probes enabled without a prober")
	}
	return nil
}

// evaluateLink runs each enabled checker for link; disabled checkers leave
// their field nil and are never called.
func (e *Evaluator) evaluateLink(ctx context.Context, logger *slog.Logger, link sourceeval.Link, checks sourceeval.Checks) sourceeval.EvaluationRow {
	row := sourceeval.EvaluationRow{Website: link.Name, URL: link.URL}
	logger = logger.With("url", link.URL)

	if checks.Scrape {
		allowed := false
		e.isolate(ctx, logger, "scrape", link.URL, func(ctx context.Context) {
			allowed = sourceeval.CanFetch(ctx, e.Permissions, link.URL)
		})
		row.Scrape = &allowed
	}
	if checks.Scrapegraph {
		capable := false
		e.isolate(ctx, logger, "scrapegraph", link.URL, func(ctx context.Context) {
			capable = e.Prober.Capability(ctx, link.URL)
		})
		row.Scrapegraph = &capable
	}
	if checks.Category {
		e.isolate(ctx, logger, "categorization", link.URL, func(ctx context.Context) {
			row.Categorization = e.Prober.Score(ctx, link.URL, sourceeval.ProbeCategory)
		})
	}
	if checks.SecondaryCategory {
		e.isolate(ctx, logger, "secondary_category", link.URL, func(ctx context.Context) {
			row.SecondaryCategory = e.Prober.Score(ctx, link.URL, sourceeval.ProbeSecondaryCategory)
		})
	}

	logger.Debug("evaluated", "website", link.Name,
		"scrape", fmtBool(row.Scrape), "scrapegraph", fmtBool(row.Scrapegraph))
	return row
}

// isolate runs one checker under the rate limit and timeout. A panic is
// recovered and leaves the checker's zero result in place.
func (e *Evaluator) isolate(ctx context.Context, logger *slog.Logger, check, rawURL string, fn func(ctx context.Context)) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("checker panicked", "check", check, "panic", rec)
		}
	}()

	if e.Limiter != nil {
		if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
			if err := e.Limiter.Wait(ctx, u.Host); err != nil {
				logger.Warn("rate limit wait failed", "check", check, "err", err)
				return
			}
		}
	}

	if e.CheckTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.CheckTimeout)
		defer cancel()
	}
	fn(ctx)
}

func (e *Evaluator) transition(logger *slog.Logger, s State, total int) {
	logger.Info("state", "state", s, "links", total)
	if e.Progress != nil {
		e.Progress(ProgressEvent{Type: ProgressState, State: s, Total: total})
	}
}

func (e *Evaluator) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func fmtBool(b *bool) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprint(*b)
}
