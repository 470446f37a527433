// Package trafilatura extracts article content from news pages with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/sourceeval"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sourceeval.Extractor at compile time.
var _ sourceeval.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Reader comments and hyperlinks are
// dropped and the readability fallback is enabled. The detected language is
// reported in ExtractResult.Language.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the main content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*sourceeval.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sourceeval.Errorf(sourceeval.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	out := &sourceeval.ExtractResult{
		Title:    result.Metadata.Title,
		Language: result.Metadata.Language,
	}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		out.ContentHTML = buf.String()
	}
	return out, nil
}
