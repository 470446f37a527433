package sourceeval

import "context"

// Fetcher retrieves the HTML of a source page for the scraping engine.
type Fetcher interface {
	// Fetch returns the HTML of the page at url. Browser-backed fetchers
	// return the document after scripts have run.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any browser or connection resources.
	Close() error
}

// ExtractResult is the main content of a page with boilerplate removed.
type ExtractResult struct {
	Title string

	// Language is the page's declared or detected language, if known.
	Language string

	// ContentHTML holds the main content without navigation, footers,
	// sidebars or ads.
	ContentHTML string
}

// Extractor reduces a page to its main content.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter turns HTML into Markdown for the LLM prompt.
type Converter interface {
	Convert(html string) (string, error)
}
