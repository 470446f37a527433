package sourceeval

import (
	"context"
	"strings"
	"sync"
	"unicode"
)

// Link is a news source discovered in a document: a display name and the
// URL it points at. Name is empty when the link has no visible anchor text.
type Link struct {
	Name string `json:"website"`
	URL  string `json:"url"`
}

// Validate returns an error if the link has no URL.
func (l Link) Validate() error {
	if strings.TrimSpace(l.URL) == "" {
		return Errorf(EINVALID, "link URL required")
	}
	return nil
}

// PageRange is a zero-indexed, half-open range of document pages [Start, End).
type PageRange struct {
	Start int
	End   int
}

// DefaultPageRange covers pages 4 through 10 of the source document, where the
// curated source list lives.
var DefaultPageRange = PageRange{Start: 3, End: 10}

// LinkExtractor reads hyperlinks from a document.
type LinkExtractor interface {
	// ExtractLinks returns one Link per hyperlink found on the pages in
	// the range, in page and appearance order. Pages outside the document
	// contribute nothing. Returns EDOCUMENT if the document cannot be opened.
	ExtractLinks(ctx context.Context, path string, pages PageRange) ([]Link, error)
}

// LinkCollection is an ordered list of links whose display names are
// normalized at most once over the collection's lifetime.
// LinkCollection is safe for concurrent use.
type LinkCollection struct {
	mu      sync.Mutex
	links   []Link
	cleaned bool
}

// NewLinkCollection returns a collection holding a copy of links.
func NewLinkCollection(links []Link) *LinkCollection {
	c := &LinkCollection{links: make([]Link, len(links))}
	copy(c.links, links)
	return c
}

// Len returns the number of links in the collection.
func (c *LinkCollection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.links)
}

// Links returns a copy of the links in insertion order.
func (c *LinkCollection) Links() []Link {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Link, len(c.links))
	copy(out, c.links)
	return out
}

// Cleaned reports whether Clean has already normalized the collection.
func (c *LinkCollection) Cleaned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleaned
}

// Clean replaces every display name with its NormalizeName form.
// Only the first call does any work; it returns true if this call
// performed the normalization.
func (c *LinkCollection) Clean() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cleaned {
		return false
	}
	for i := range c.links {
		c.links[i].Name = NormalizeName(c.links[i].Name)
	}
	c.cleaned = true
	return true
}

// NormalizeName returns the maximal runs of letters in s joined by single
// spaces. Digits, punctuation and any other non-letter runes separate words
// and are dropped.
//
//	NormalizeName("ABC, Inc. - News!") == "ABC Inc News"
func NormalizeName(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	}), " ")
}
