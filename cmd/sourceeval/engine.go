package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sourceeval"
	"github.com/fwojciec/sourceeval/anthropic"
	"github.com/fwojciec/sourceeval/console"
	"github.com/fwojciec/sourceeval/gemini"
	"github.com/fwojciec/sourceeval/goquery"
	"github.com/fwojciec/sourceeval/htmltomarkdown"
	sehttp "github.com/fwojciec/sourceeval/http"
	"github.com/fwojciec/sourceeval/probe"
	"github.com/fwojciec/sourceeval/readability"
	"github.com/fwojciec/sourceeval/rod"
	"github.com/fwojciec/sourceeval/scrapegraph"
	seslog "github.com/fwojciec/sourceeval/slog"
	"github.com/fwojciec/sourceeval/trafilatura"
)

// probeConfig builds and validates the engine configuration from flags.
func probeConfig(cli *CLI) (sourceeval.ProbeConfig, error) {
	provider := sourceeval.Provider(cli.Provider)
	model := cli.Model
	if model == "" {
		switch provider {
		case sourceeval.ProviderAnthropic:
			model = anthropic.DefaultModel
		default:
			model = gemini.DefaultModel
		}
	}
	cfg := sourceeval.NewProbeConfig(provider, model, cli.APIKey,
		sourceeval.WithTemperature(cli.Temperature),
		sourceeval.WithHeadless(cli.Headless),
	)
	if err := cfg.Validate(); err != nil {
		return sourceeval.ProbeConfig{}, err
	}
	return cfg, nil
}

// newProber wires the scraping engine and the probe runner. The returned
// closer releases the page fetcher.
func newProber(ctx context.Context, cli *CLI, checks sourceeval.Checks, stdin io.Reader, stderr io.Writer, logger *slog.Logger) (sourceeval.Prober, io.Closer, error) {
	cfg, err := probeConfig(cli)
	if err != nil {
		return nil, nil, err
	}

	completer, err := newCompleter(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	fetcher, err := newFetcher(cli, cfg)
	if err != nil {
		return nil, nil, err
	}

	scraper := &scrapegraph.Scraper{
		Fetcher:   seslog.NewLoggingFetcher(scrapegraph.NewRetryFetcher(fetcher, retryDelays(cli.Retries), logger), logger),
		Extractor: newExtractor(cli.Extractor),
		Converter: htmltomarkdown.NewConverter(),
		Completer: seslog.NewLoggingCompleter(completer, logger),
	}

	opts := []probe.Option{probe.WithTimeout(cli.Timeout), probe.WithLogger(logger)}
	if checks.Interactive() {
		opts = append(opts, probe.WithLabeler(console.NewLabeler(stdin, stderr)))
	}
	runner := probe.NewRunner(seslog.NewLoggingScraper(scraper, logger), cfg, opts...)
	return runner, fetcher, nil
}

// retryDelays doubles from one second: 1s, 2s, 4s...
func retryDelays(n int) []time.Duration {
	delays := make([]time.Duration, max(n, 0))
	for i := range delays {
		delays[i] = time.Second << i
	}
	return delays
}

func newCompleter(ctx context.Context, cfg sourceeval.ProbeConfig) (sourceeval.Completer, error) {
	switch cfg.Provider {
	case sourceeval.ProviderAnthropic:
		return anthropic.NewCompleter(cfg.APIKey)
	default:
		client, err := gemini.NewClient(ctx, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewCompleter(client), nil
	}
}

func newFetcher(cli *CLI, cfg sourceeval.ProbeConfig) (sourceeval.Fetcher, error) {
	if cli.Fetcher == "http" {
		opts := []sehttp.Option{sehttp.WithTimeout(cli.Timeout)}
		if cli.UserAgent != "" {
			opts = append(opts, sehttp.WithUserAgent(cli.UserAgent))
		}
		return sehttp.NewFetcher(opts...), nil
	}
	f, err := rod.NewFetcher(rod.WithHeadless(cfg.Headless), rod.WithFetchTimeout(cli.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed, or use --fetcher=http): %w", err)
	}
	return f, nil
}

func newExtractor(name string) sourceeval.Extractor {
	switch name {
	case "readability":
		return readability.NewExtractor()
	case "goquery":
		return goquery.NewContentExtractor()
	case "none":
		return nil
	default:
		return trafilatura.NewExtractor()
	}
}
