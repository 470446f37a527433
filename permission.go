package sourceeval

import "context"

// PermissionChecker decides whether a URL may be scraped according to its
// site's robots.txt policy.
type PermissionChecker interface {
	// Check reports whether the generic user agent "*" may fetch url.
	// A non-nil error means the policy could not be determined; callers
	// must treat it as a denial.
	Check(ctx context.Context, url string) (bool, error)
}

// CanFetch asks checker about url and folds any error into a denial.
func CanFetch(ctx context.Context, checker PermissionChecker, url string) bool {
	allowed, err := checker.Check(ctx, url)
	if err != nil {
		return false
	}
	return allowed
}
