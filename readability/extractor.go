// Package readability extracts article content with go-readability, the
// port of Mozilla's Reader View.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sourceeval"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements sourceeval.Extractor at compile time.
var _ sourceeval.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	pageURL *url.URL
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ForURL returns an Extractor that resolves relative links against pageURL.
func ForURL(pageURL string) (*Extractor, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, sourceeval.Errorf(sourceeval.EINVALID, "invalid page URL %q", pageURL)
	}
	return &Extractor{pageURL: u}, nil
}

// Extract returns the main content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*sourceeval.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sourceeval.Errorf(sourceeval.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, err
	}

	return &sourceeval.ExtractResult{
		Title:       article.Title,
		Language:    article.Language,
		ContentHTML: article.Content,
	}, nil
}
