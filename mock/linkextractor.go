package mock

import (
	"context"

	"github.com/fwojciec/sourceeval"
)

var _ sourceeval.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of sourceeval.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(ctx context.Context, path string, pages sourceeval.PageRange) ([]sourceeval.Link, error)
}

func (e *LinkExtractor) ExtractLinks(ctx context.Context, path string, pages sourceeval.PageRange) ([]sourceeval.Link, error) {
	return e.ExtractLinksFn(ctx, path, pages)
}
