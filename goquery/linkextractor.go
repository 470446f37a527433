// Package goquery extracts source links from HTML source lists.
package goquery

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sourceeval"
)

// Ensure LinkExtractor implements sourceeval.LinkExtractor at compile time.
var _ sourceeval.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor reads anchors from a local HTML document.
//
// An HTML document is a single page, so the page range is ignored. Relative
// hrefs are resolved against the document's <base href> and dropped when
// there is none. Duplicate URLs are kept.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns every http(s) anchor in document order.
func (e *LinkExtractor) ExtractLinks(ctx context.Context, path string, _ sourceeval.PageRange) ([]sourceeval.Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, sourceeval.Errorf(sourceeval.EDOCUMENT, "cannot open %q: %v", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, sourceeval.Errorf(sourceeval.EDOCUMENT, "failed to parse HTML %q: %v", path, err)
	}

	var base *url.URL
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		base, _ = url.Parse(strings.TrimSpace(href))
	}

	var links []sourceeval.Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		links = append(links, sourceeval.Link{
			Name: strings.Join(strings.Fields(sel.Text()), " "),
			URL:  resolved,
		})
	})
	return links, nil
}

// resolveURL returns href as an absolute http(s) URL, resolving it against
// base when it is relative. Returns "" if that is not possible.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if !ref.IsAbs() {
		if base == nil || !base.IsAbs() {
			return ""
		}
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	return ref.String()
}

// isNonHTTPLink reports whether href uses a scheme that can never be a source.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return href == "" ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
