// Package scrapegraph implements the LLM-driven scraping engine: a page is
// fetched, reduced to its main content, converted to Markdown and handed to
// an LLM together with a natural-language extraction prompt. The LLM answers
// with a JSON object.
package scrapegraph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/sourceeval"
	"github.com/tidwall/gjson"
)

// DefaultMaxContentBytes caps the Markdown sent to the LLM.
const DefaultMaxContentBytes = 60_000

// SystemInstruction tells the model how to shape its answer.
const SystemInstruction = "You extract structured information from web pages. " +
	"Answer only with a JSON object. The object's first key must hold an array of objects, " +
	"one object per extracted item, with one string field per requested attribute. " +
	"If nothing can be extracted, answer with the first key holding an empty array."

// Ensure Scraper implements sourceeval.Scraper at compile time.
var _ sourceeval.Scraper = (*Scraper)(nil)

// Scraper composes a Fetcher, an optional Extractor, a Converter and a
// Completer into a scraping engine.
type Scraper struct {
	Fetcher   sourceeval.Fetcher
	Extractor sourceeval.Extractor // optional; raw HTML is converted when nil
	Converter sourceeval.Converter
	Completer sourceeval.Completer

	// MaxContentBytes truncates the page Markdown; DefaultMaxContentBytes if zero.
	MaxContentBytes int
}

// Scrape extracts the information described by prompt from the page at url.
func (s *Scraper) Scrape(ctx context.Context, url, prompt string, cfg sourceeval.ProbeConfig) (*sourceeval.ScrapeResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, sourceeval.Errorf(sourceeval.EINVALID, "extraction prompt required")
	}

	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	title, language, content := "", "", html
	if s.Extractor != nil {
		// Extraction failures fall back to the full page.
		if res, err := s.Extractor.Extract(html); err == nil && strings.TrimSpace(res.ContentHTML) != "" {
			title, language, content = res.Title, res.Language, res.ContentHTML
		}
	}

	markdown, err := s.Converter.Convert(content)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", url, err)
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, sourceeval.Errorf(sourceeval.EINVALID, "page %s has no content", url)
	}

	answer, err := s.Completer.Complete(ctx, sourceeval.CompletionRequest{
		Model:       cfg.Model,
		System:      SystemInstruction,
		Prompt:      BuildUserPrompt(url, title, language, s.truncate(markdown), prompt),
		Temperature: cfg.Temperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("complete %s: %w", url, err)
	}

	raw, err := ParseAnswer(answer)
	if err != nil {
		return nil, err
	}
	return &sourceeval.ScrapeResult{JSON: raw}, nil
}

func (s *Scraper) truncate(markdown string) string {
	limit := s.MaxContentBytes
	if limit <= 0 {
		limit = DefaultMaxContentBytes
	}
	if len(markdown) <= limit {
		return markdown
	}
	// Back off to a rune boundary.
	for limit > 0 && !isRuneStart(markdown[limit]) {
		limit--
	}
	return markdown[:limit]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// BuildUserPrompt builds the user prompt containing the page and the request.
// Title and language are omitted when unknown. The language is the page's
// declared or detected ISO 639-1 code, which prompts asking for each item's
// language can fall back on.
func BuildUserPrompt(url, title, language, markdown, prompt string) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	fmt.Fprintf(&sb, "<source>%s</source>\n", url)
	if title != "" {
		fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	}
	if language != "" {
		fmt.Fprintf(&sb, "<language>%s</language>\n", language)
	}
	fmt.Fprintf(&sb, "<content>\n%s\n</content>\n", markdown)
	sb.WriteString("</page>\n\n")
	fmt.Fprintf(&sb, "Request: %s", prompt)
	return sb.String()
}

// ParseAnswer returns the JSON object in an LLM answer, tolerating a
// surrounding Markdown code fence.
func ParseAnswer(answer string) ([]byte, error) {
	raw := strings.TrimSpace(answer)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
		raw = strings.TrimSpace(raw)
	}
	if raw == "" {
		return nil, errors.New("empty answer")
	}
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("answer is not valid JSON: %.80q", raw)
	}
	if !gjson.Parse(raw).IsObject() {
		return nil, errors.New("answer is not a JSON object")
	}
	return []byte(raw), nil
}
