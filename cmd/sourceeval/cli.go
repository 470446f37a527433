package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	PDF   string `name:"pdf" env:"PDF_PATH" help:"Source document listing the news sites (PDF, or HTML by extension)"`
	Links string `type:"existingfile" help:"CSV link list with website,url columns, used instead of the document"`

	APIKey      string  `name:"api-key" env:"LLM_API_KEY" help:"LLM API key for the scraping engine"`
	Provider    string  `enum:"gemini,anthropic" default:"gemini" help:"LLM provider (${enum})"`
	Model       string  `help:"LLM model (defaults to the provider's default)"`
	Temperature float32 `default:"0" help:"LLM sampling temperature"`
	Headless    bool    `default:"true" negatable:"" help:"Run the engine's browser without a window"`

	Scrape            bool `default:"true" negatable:"" help:"Check robots.txt permission"`
	Scrapegraph       bool `default:"true" negatable:"" help:"Run the engine capability probe"`
	Category          bool `help:"Run the category probe (interactive labeling)"`
	SecondaryCategory bool `help:"Run the secondary category probe (interactive labeling)"`

	Fetcher   string `enum:"browser,http" default:"browser" help:"Page fetcher used by the engine (${enum})"`
	Extractor string `enum:"trafilatura,readability,goquery,none" default:"trafilatura" help:"Main content extractor (${enum})"`
	Retries   int    `default:"2" help:"Page fetch retries with exponential backoff"`
	UserAgent string `name:"user-agent" help:"User-Agent sent with robots.txt and page requests"`

	Out    string `short:"o" default:"result.csv" help:"CSV report path"`
	Format string `enum:"table,markdown,none" default:"table" help:"Report printed to stdout (${enum})"`

	Concurrency int           `short:"c" default:"1" help:"Links evaluated at once"`
	Timeout     time.Duration `short:"t" default:"60s" help:"Timeout per check"`
	Rate        float64       `default:"1" help:"Requests per second per host (0 disables)"`

	Verbose  bool `short:"v" help:"Log debug output"`
	Progress bool `help:"Show a progress spinner (ignored with interactive probes)"`
}
