package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sourceeval"
)

// Ensure LoggingLinkExtractor implements sourceeval.LinkExtractor.
var _ sourceeval.LinkExtractor = (*LoggingLinkExtractor)(nil)

// LoggingLinkExtractor wraps a LinkExtractor with logging.
type LoggingLinkExtractor struct {
	next   sourceeval.LinkExtractor
	logger *slog.Logger
}

// NewLoggingLinkExtractor creates a new LoggingLinkExtractor.
func NewLoggingLinkExtractor(next sourceeval.LinkExtractor, logger *slog.Logger) *LoggingLinkExtractor {
	return &LoggingLinkExtractor{next: next, logger: logger}
}

// ExtractLinks logs the document, page range and number of links found.
func (e *LoggingLinkExtractor) ExtractLinks(ctx context.Context, path string, pages sourceeval.PageRange) (links []sourceeval.Link, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract links",
			"path", path,
			"pages", slog.GroupValue(slog.Int("start", pages.Start), slog.Int("end", pages.End)),
			"links", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractLinks(ctx, path, pages)
}
