package mock

import (
	"context"

	"github.com/fwojciec/sourceeval"
)

var _ sourceeval.PermissionChecker = (*PermissionChecker)(nil)

// PermissionChecker is a mock implementation of sourceeval.PermissionChecker.
type PermissionChecker struct {
	CheckFn func(ctx context.Context, url string) (bool, error)
}

func (c *PermissionChecker) Check(ctx context.Context, url string) (bool, error) {
	return c.CheckFn(ctx, url)
}
