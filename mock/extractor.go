package mock

import "github.com/fwojciec/sourceeval"

var _ sourceeval.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sourceeval.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sourceeval.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*sourceeval.ExtractResult, error) {
	return e.ExtractFn(html)
}
