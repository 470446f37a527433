// Package robots decides crawl permission from a site's robots.txt.
//
// Checking is fail-closed: a URL is only reported as fetchable when its
// origin's robots.txt was retrieved, parsed and allows it.
package robots

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/sourceeval"
	"github.com/temoto/robotstxt"
)

// DefaultTimeout is the default timeout for fetching a robots.txt file.
const DefaultTimeout = 10 * time.Second

// UserAgent is the agent robots.txt groups are matched against.
const UserAgent = "*"

// robotsTxtPath is the well-known path for robots.txt files.
const robotsTxtPath = "/robots.txt"

// maxBodyBytes limits the size of robots.txt responses we will read.
const maxBodyBytes = 512 * 1024

// disallowAll is the policy applied when robots.txt is access protected.
const disallowAll = "User-agent: *\nDisallow: /\n"

// ErrUnavailable is wrapped by every error meaning the policy could not be
// determined: bad URL, network failure, unexpected status or parse failure.
var ErrUnavailable = errors.New("robots.txt unavailable")

// Ensure Checker implements sourceeval.PermissionChecker at compile time.
var _ sourceeval.PermissionChecker = (*Checker)(nil)

// Checker fetches, caches and evaluates robots.txt files per origin.
// Only successfully parsed policies are cached, so a transient failure for
// one link does not deny the rest of the origin's links.
// Checker is safe for concurrent use.
type Checker struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string

	mu    sync.RWMutex
	cache map[string]*robotstxt.RobotsData // keyed by origin
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets the HTTP client used to fetch robots.txt.
func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) {
		ch.client = c
	}
}

// WithTimeout sets the timeout for robots.txt requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(ch *Checker) {
		ch.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with robots.txt requests.
// Rules are always evaluated for the generic agent "*".
func WithUserAgent(ua string) Option {
	return func(ch *Checker) {
		ch.userAgent = ua
	}
}

// NewChecker creates a new Checker.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		timeout: DefaultTimeout,
		cache:   make(map[string]*robotstxt.RobotsData),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Check reports whether the generic user agent may fetch rawURL. Explicit
// disallows return (false, nil); errors wrap ErrUnavailable and must be
// treated as a denial.
func (c *Checker) Check(ctx context.Context, rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("%w: parse url: %v", ErrUnavailable, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false, fmt.Errorf("%w: unsupported scheme in %q", ErrUnavailable, rawURL)
	}
	if u.Host == "" {
		return false, fmt.Errorf("%w: empty host in %q", ErrUnavailable, rawURL)
	}

	robots, err := c.policy(ctx, Origin(u))
	if err != nil {
		return false, err
	}

	return robots.TestAgent(u.RequestURI(), UserAgent), nil
}

// Origin returns the scheme and host of u, e.g. "https://example.com".
func Origin(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}

// policy returns the cached robots data for origin, fetching it on a miss.
func (c *Checker) policy(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	c.mu.RLock()
	robots, ok := c.cache[origin]
	c.mu.RUnlock()
	if ok {
		return robots, nil
	}

	robots, err := c.fetch(ctx, origin)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[origin] = robots
	c.mu.Unlock()

	return robots, nil
}

// fetch retrieves and parses origin's robots.txt. A 2xx body is parsed;
// 401 and 403 disallow everything; any other status is an error.
func (c *Checker) fetch(ctx context.Context, origin string) (*robotstxt.RobotsData, error) {
	robotsURL := origin + robotsTxtPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrUnavailable, robotsURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return robotstxt.FromString(disallowAll)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: HTTP %d for %s", ErrUnavailable, resp.StatusCode, robotsURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, robotsURL, err)
	}

	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, robotsURL, err)
	}
	return robots, nil
}
