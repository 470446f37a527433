package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sourceeval"
)

// Ensure LoggingScraper implements sourceeval.Scraper.
var _ sourceeval.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging.
type LoggingScraper struct {
	next   sourceeval.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next sourceeval.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape logs the URL, model and result size of each engine run. The
// prompt and API key are not logged.
func (s *LoggingScraper) Scrape(ctx context.Context, url, prompt string, cfg sourceeval.ProbeConfig) (res *sourceeval.ScrapeResult, err error) {
	defer func(begin time.Time) {
		size := 0
		if res != nil {
			size = len(res.JSON)
		}
		s.logger.Info("scrape",
			"url", url,
			"provider", cfg.Provider,
			"model", cfg.Model,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, url, prompt, cfg)
}

// Ensure LoggingCompleter implements sourceeval.Completer.
var _ sourceeval.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging.
type LoggingCompleter struct {
	next   sourceeval.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next sourceeval.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete logs prompt and answer sizes of each LLM call.
func (c *LoggingCompleter) Complete(ctx context.Context, req sourceeval.CompletionRequest) (answer string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("complete",
			"model", req.Model,
			"prompt_bytes", len(req.Prompt),
			"answer_bytes", len(answer),
			"json", req.JSON,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, req)
}
