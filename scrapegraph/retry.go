package scrapegraph

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/sourceeval"
)

// Ensure RetryFetcher implements sourceeval.Fetcher at compile time.
var _ sourceeval.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher retries failed page fetches with a fixed backoff schedule,
// one retry per delay. Invalid requests and context errors are not retried.
type RetryFetcher struct {
	Fetcher sourceeval.Fetcher
	Delays  []time.Duration
	Logger  *slog.Logger
}

// NewRetryFetcher wraps f with the given retry delays.
func NewRetryFetcher(f sourceeval.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryFetcher {
	return &RetryFetcher{Fetcher: f, Delays: delays, Logger: logger}
}

// Fetch returns the first successful fetch of url, or the last error.
func (r *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(r.Delays); attempt++ {
		html, err := r.Fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(r.Delays) || !retryable(ctx, err) {
			break
		}

		if r.Logger != nil {
			r.Logger.Debug("retrying fetch", "url", url, "attempt", attempt+2, "error", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.Delays[attempt]):
		}
	}
	return "", lastErr
}

// Close closes the wrapped fetcher.
func (r *RetryFetcher) Close() error {
	return r.Fetcher.Close()
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return sourceeval.ErrorCode(err) != sourceeval.EINVALID
}
