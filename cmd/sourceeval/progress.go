package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/sourceeval/evaluate"
)

// progress shows evaluation progress on a terminal spinner.
type progress struct {
	mu sync.Mutex
	s  *spinner.Spinner
}

func newProgress(w io.Writer) *progress {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " starting"
	return &progress{s: s}
}

// Update is an evaluate.ProgressFunc.
func (p *progress) Update(ev evaluate.ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Type {
	case evaluate.ProgressState:
		switch ev.State {
		case evaluate.StateEvaluating:
			p.setSuffix(fmt.Sprintf(" evaluating %d links", ev.Total))
			p.s.Start()
		case evaluate.StateDone:
			p.s.Stop()
		}
	case evaluate.ProgressLink:
		p.setSuffix(fmt.Sprintf(" [%d/%d] %s", ev.Completed, ev.Total, ev.URL))
	}
}

// setSuffix updates the label under the spinner's own lock, since the
// spinner goroutine reads it while running.
func (p *progress) setSuffix(suffix string) {
	p.s.Lock()
	p.s.Suffix = suffix
	p.s.Unlock()
}

// Stop halts the spinner if it is still running.
func (p *progress) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.s.Stop()
}
