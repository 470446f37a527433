// Package probe runs scraping-capability probes against source URLs.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/sourceeval"
)

// Ensure Runner implements sourceeval.Prober at compile time.
var _ sourceeval.Prober = (*Runner)(nil)

// Runner invokes the scraping engine with the prompt of each probe kind.
// Every failure is absorbed and logged: Capability reports false and Score
// reports nil. Runner is safe for concurrent use; labeling sessions are
// serialized so that interactive prompts never interleave.
type Runner struct {
	scraper sourceeval.Scraper
	config  sourceeval.ProbeConfig
	labeler sourceeval.Labeler
	timeout time.Duration
	logger  *slog.Logger

	labelMu sync.Mutex
}

// Option configures a Runner.
type Option func(*Runner)

// WithLabeler sets the labeler used by scored probes. Without one, scored
// probes are unavailable.
func WithLabeler(l sourceeval.Labeler) Option {
	return func(r *Runner) {
		r.labeler = l
	}
}

// WithTimeout bounds each engine invocation. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the logger for absorbed probe failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a Runner bound to scraper and cfg.
func NewRunner(scraper sourceeval.Scraper, cfg sourceeval.ProbeConfig, opts ...Option) *Runner {
	r := &Runner{
		scraper: scraper,
		config:  cfg,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Capability reports whether the engine completes the capability prompt on
// url without failing. The returned content is not inspected.
func (r *Runner) Capability(ctx context.Context, url string) bool {
	if _, err := r.scrape(ctx, url, sourceeval.ProbeCapability); err != nil {
		r.fail(url, sourceeval.ProbeCapability, err)
		return false
	}
	return true
}

// Score runs a category or secondary category probe and returns the
// fraction of extracted fields the labeler accepted.
func (r *Runner) Score(ctx context.Context, url string, kind sourceeval.ProbeKind) *float64 {
	score, err := r.score(ctx, url, kind)
	if err != nil {
		r.fail(url, kind, err)
		return nil
	}
	return &score
}

func (r *Runner) score(ctx context.Context, url string, kind sourceeval.ProbeKind) (float64, error) {
	if kind != sourceeval.ProbeCategory && kind != sourceeval.ProbeSecondaryCategory {
		return 0, fmt.Errorf("%s is not a scored probe", kind)
	}
	if r.labeler == nil {
		return 0, errors.New("no labeler configured")
	}

	res, err := r.scrape(ctx, url, kind)
	if err != nil {
		return 0, err
	}
	items, err := Items(res)
	if err != nil {
		return 0, err
	}
	return r.label(items)
}

// label asks the labeler about every field of every item.
func (r *Runner) label(items []Item) (float64, error) {
	r.labelMu.Lock()
	defer r.labelMu.Unlock()

	var correct, total int
	for _, item := range items {
		for _, f := range item {
			ok, err := r.labeler.Label(f.Name, f.Value)
			if err != nil {
				return 0, fmt.Errorf("labeling %q: %w", f.Name, err)
			}
			total++
			if ok {
				correct++
			}
		}
	}
	if total == 0 {
		return 0, ErrNoItems
	}
	return float64(correct) / float64(total), nil
}

func (r *Runner) scrape(ctx context.Context, url string, kind sourceeval.ProbeKind) (*sourceeval.ScrapeResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.scraper.Scrape(ctx, url, r.config.Prompt(kind), r.config)
}

func (r *Runner) fail(url string, kind sourceeval.ProbeKind, err error) {
	r.logger.Warn("probe failed", "url", url, "probe", string(kind), "err", err)
}
