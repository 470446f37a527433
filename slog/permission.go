package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sourceeval"
)

// Ensure LoggingPermissionChecker implements sourceeval.PermissionChecker.
var _ sourceeval.PermissionChecker = (*LoggingPermissionChecker)(nil)

// LoggingPermissionChecker wraps a PermissionChecker with logging.
type LoggingPermissionChecker struct {
	next   sourceeval.PermissionChecker
	logger *slog.Logger
}

// NewLoggingPermissionChecker creates a new LoggingPermissionChecker.
func NewLoggingPermissionChecker(next sourceeval.PermissionChecker, logger *slog.Logger) *LoggingPermissionChecker {
	return &LoggingPermissionChecker{next: next, logger: logger}
}

// Check logs each robots.txt decision at Debug, and undetermined policies,
// which callers count as denials, at Warn.
func (c *LoggingPermissionChecker) Check(ctx context.Context, url string) (allowed bool, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		c.logger.Log(ctx, level, "robots check",
			"url", url,
			"allowed", allowed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Check(ctx, url)
}
