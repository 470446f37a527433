package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sourceeval"
)

// Ensure ContentExtractor implements sourceeval.Extractor at compile time.
var _ sourceeval.Extractor = (*ContentExtractor)(nil)

// contentSelectors are tried in order; the first non-empty match wins.
var contentSelectors = []string{
	"main",
	`[role="main"]`,
	"#main-content, #content, .main-content",
	".content, .site-content, .page-content",
	"body",
}

// boilerplateSelectors are removed before the content container is chosen.
var boilerplateSelectors = strings.Join([]string{
	"script", "style", "noscript", "iframe", "template", "svg",
	"nav", `[role="navigation"]`, ".nav", ".menu", ".navbar",
	"footer", ".footer", `[role="contentinfo"]`,
	"aside", ".sidebar",
	".cookie", ".cookies", "#cookie-banner", ".advertisement", ".ads", ".banner",
	"form",
}, ", ")

// ContentExtractor picks a page's main content with CSS selectors. It is
// cruder than the trafilatura and readability extractors but keeps every
// headline on section front pages, which article-oriented extractors tend
// to drop.
type ContentExtractor struct{}

// NewContentExtractor creates a new ContentExtractor.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Extract returns the first main content container of rawHTML with
// navigation, footers, sidebars and scripts removed.
func (e *ContentExtractor) Extract(rawHTML string) (*sourceeval.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sourceeval.Errorf(sourceeval.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, sourceeval.Errorf(sourceeval.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &sourceeval.ExtractResult{
		Title:    pageTitle(doc),
		Language: strings.TrimSpace(doc.Find("html").AttrOr("lang", "")),
	}

	doc.Find(boilerplateSelectors).Remove()

	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 || strings.TrimSpace(sel.Text()) == "" {
			continue
		}
		html, err := sel.Html()
		if err != nil {
			return nil, sourceeval.Errorf(sourceeval.EINTERNAL, "failed to render content: %v", err)
		}
		result.ContentHTML = strings.TrimSpace(html)
		break
	}
	return result, nil
}

// pageTitle prefers og:title, which news sites fill without the site suffix.
func pageTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
