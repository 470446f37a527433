// Command sourceeval evaluates a curated list of news sources: it checks
// each site's robots.txt policy and probes whether an LLM scraping engine
// can extract news from it, then writes a CSV report.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"github.com/fwojciec/sourceeval"
	"github.com/fwojciec/sourceeval/csv"
	"github.com/fwojciec/sourceeval/evaluate"
	"github.com/fwojciec/sourceeval/fs"
	"github.com/fwojciec/sourceeval/goquery"
	"github.com/fwojciec/sourceeval/markdown"
	"github.com/fwojciec/sourceeval/pdf"
	"github.com/fwojciec/sourceeval/pretty"
	"github.com/fwojciec/sourceeval/robots"
	seslog "github.com/fwojciec/sourceeval/slog"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: .env:", err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin feeds the interactive labeler.
	Stdin io.Reader

	// Services for end-to-end testing. When nil they are built from flags.
	Permissions sourceeval.PermissionChecker
	Prober      sourceeval.Prober
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sourceeval"),
		kong.Description("Evaluate news sources for robots.txt permission and LLM scrapability"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	checks := sourceeval.Checks{
		Scrape:            cli.Scrape,
		Scrapegraph:       cli.Scrapegraph,
		Category:          cli.Category,
		SecondaryCategory: cli.SecondaryCategory,
	}

	// Configuration errors surface before any link is evaluated.
	links, err := m.loadLinks(cli)
	if err != nil {
		return err
	}
	if links == nil && cli.PDF == "" {
		return sourceeval.Errorf(sourceeval.ECONFIG, "source document required: set PDF_PATH or --pdf, or pass --links")
	}

	e := &evaluate.Evaluator{
		Document:     cli.PDF,
		Links:        seslog.NewLoggingLinkExtractor(linkExtractorFor(cli.PDF), logger),
		Permissions:  m.Permissions,
		Prober:       m.Prober,
		Concurrency:  cli.Concurrency,
		CheckTimeout: cli.Timeout,
		Logger:       logger,
	}
	if cli.Rate > 0 {
		e.Limiter = evaluate.NewDomainLimiter(cli.Rate)
	}
	if checks.Scrape && e.Permissions == nil {
		e.Permissions = seslog.NewLoggingPermissionChecker(newPermissionChecker(cli), logger)
	}
	if (checks.Scrapegraph || checks.Interactive()) && e.Prober == nil {
		prober, closer, err := newProber(ctx, cli, checks, m.Stdin, stderr, logger)
		if err != nil {
			return err
		}
		defer closer.Close()
		e.Prober = prober
	}
	if cli.Progress && !checks.Interactive() {
		p := newProgress(stderr)
		defer p.Stop()
		e.Progress = p.Update
	}

	report, err := e.Evaluate(ctx, links, checks)
	if report == nil {
		return err
	}
	if werr := writeReport(cli, report, stdout); werr != nil {
		return werr
	}
	logSummary(logger, cli.Out, report.Summary())
	return err
}

// loadLinks reads the --links file, or returns nil when links come from
// the document.
func (m *Main) loadLinks(cli *CLI) (*sourceeval.LinkCollection, error) {
	if cli.Links == "" {
		return nil, nil
	}
	f, err := os.Open(cli.Links)
	if err != nil {
		return nil, sourceeval.Errorf(sourceeval.EDOCUMENT, "cannot open link list %q: %v", cli.Links, err)
	}
	defer f.Close()

	links, err := csv.ReadLinks(f)
	if err != nil {
		return nil, err
	}
	return sourceeval.NewLinkCollection(links), nil
}

// linkExtractorFor picks the extractor from the document's extension.
func linkExtractorFor(path string) sourceeval.LinkExtractor {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return goquery.NewLinkExtractor()
	default:
		return pdf.NewLinkExtractor()
	}
}

func newPermissionChecker(cli *CLI) *robots.Checker {
	opts := []robots.Option{robots.WithTimeout(cli.Timeout)}
	if cli.UserAgent != "" {
		opts = append(opts, robots.WithUserAgent(cli.UserAgent))
	}
	return robots.NewChecker(opts...)
}

// writeReport saves the CSV report and prints the selected rendering.
func writeReport(cli *CLI, report *sourceeval.Report, stdout io.Writer) error {
	if err := fs.NewReportFile(cli.Out, csv.NewReportWriter()).Save(report); err != nil {
		return err
	}

	var rw sourceeval.ReportWriter
	switch cli.Format {
	case "table":
		rw = pretty.NewTableWriter()
	case "markdown":
		rw = markdown.NewReportWriter()
	default:
		return nil
	}
	return rw.WriteReport(stdout, report)
}

func logSummary(logger *slog.Logger, out string, s sourceeval.Summary) {
	attrs := []any{
		"out", out,
		"sources", s.Total,
		"permitted", s.Permitted,
		"capable", s.Scrapable,
	}
	if s.MeanCategorization != nil {
		attrs = append(attrs, "categorization", *s.MeanCategorization)
	}
	if s.MeanSecondaryCategory != nil {
		attrs = append(attrs, "secondary_category", *s.MeanSecondaryCategory)
	}
	logger.Info("report written", attrs...)
}

// newLogger returns a slog.Logger backed by a charmbracelet/log handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return slog.New(handler)
}
