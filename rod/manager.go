package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/sourceeval"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// session is one browser process and the connection to it.
type session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func (s *session) close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

// BrowserManager owns the browser process and restarts it every maxPages
// rendered pages. News front pages are heavy, and Chrome's memory keeps
// growing over a long run.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	maxPages int64
	headless bool

	mu       sync.Mutex
	current  *session
	recycles int

	rendered atomic.Int64
	closed   atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of rendered pages after which the browser is
// restarted. Defaults to DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

func withHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// NewBrowserManager launches Chrome. Close must be called when the
// BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		headless: true,
	}
	for _, opt := range opts {
		opt(bm)
	}

	s, err := launch(bm.headless)
	if err != nil {
		return nil, err
	}
	bm.current = s
	return bm, nil
}

// Browser returns the browser to open the next page in, restarting it first
// when maxPages pages have been rendered. If the restart fails the old
// browser stays in service. Returns EINVALID after Close.
func (bm *BrowserManager) Browser() (*rod.Browser, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.current == nil {
		return nil, sourceeval.Errorf(sourceeval.EINVALID, "browser closed")
	}
	if bm.maxPages > 0 && bm.rendered.Load() >= bm.maxPages {
		if fresh, err := launch(bm.headless); err == nil {
			_ = bm.current.close()
			bm.current = fresh
			bm.recycles++
			bm.rendered.Store(0)
		}
	}
	return bm.current.browser, nil
}

// PageDone counts a rendered page toward the recycling threshold.
func (bm *BrowserManager) PageDone() {
	bm.rendered.Add(1)
}

// Recycles returns how many times the browser has been restarted.
func (bm *BrowserManager) Recycles() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.recycles
}

// LauncherPID returns the process ID of the browser launcher, or 0 once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

// Close stops the browser. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	s := bm.current
	bm.current = nil
	return s.close()
}

// launch starts Chrome with media and background throttling disabled, so
// that autoplaying video and timers do not stall the load event.
func launch(headless bool) (*session, error) {
	l := launcher.New().
		Set("mute-audio").
		Set("autoplay-policy", "user-gesture-required").
		Set("disable-notifications").
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(headless)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &session{browser: browser, launcher: l}, nil
}
