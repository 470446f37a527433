package mock

import (
	"context"

	"github.com/fwojciec/sourceeval"
)

var _ sourceeval.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of sourceeval.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, url, prompt string, cfg sourceeval.ProbeConfig) (*sourceeval.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, url, prompt string, cfg sourceeval.ProbeConfig) (*sourceeval.ScrapeResult, error) {
	return s.ScrapeFn(ctx, url, prompt, cfg)
}

var _ sourceeval.Labeler = (*Labeler)(nil)

// Labeler is a mock implementation of sourceeval.Labeler.
type Labeler struct {
	LabelFn func(field, value string) (bool, error)
}

func (l *Labeler) Label(field, value string) (bool, error) {
	return l.LabelFn(field, value)
}

var _ sourceeval.Prober = (*Prober)(nil)

// Prober is a mock implementation of sourceeval.Prober.
type Prober struct {
	CapabilityFn func(ctx context.Context, url string) bool
	ScoreFn      func(ctx context.Context, url string, kind sourceeval.ProbeKind) *float64
}

func (p *Prober) Capability(ctx context.Context, url string) bool {
	return p.CapabilityFn(ctx, url)
}

func (p *Prober) Score(ctx context.Context, url string, kind sourceeval.ProbeKind) *float64 {
	return p.ScoreFn(ctx, url, kind)
}

var _ sourceeval.Completer = (*Completer)(nil)

// Completer is a mock implementation of sourceeval.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, req sourceeval.CompletionRequest) (string, error)
}

func (c *Completer) Complete(ctx context.Context, req sourceeval.CompletionRequest) (string, error) {
	return c.CompleteFn(ctx, req)
}
