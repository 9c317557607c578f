package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/config"
	"github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/export"
	"github.com/sadopc/zencrawl/internal/export/codegen"
	"github.com/sadopc/zencrawl/internal/logging"
	"github.com/sadopc/zencrawl/internal/playground"
	"github.com/sadopc/zencrawl/internal/protocol"
	"github.com/sadopc/zencrawl/internal/render"
	"github.com/sadopc/zencrawl/internal/runner"
)

type extractOptions struct {
	form playground.Form

	output        string
	color         bool
	curl          bool
	code          string
	clientTimeout time.Duration
	apiURL        string
	noHistory     bool
	quiet         bool
	verbose       bool
}

func newExtractFlags(kind protocol.Kind, stderr io.Writer) (*flag.FlagSet, *extractOptions) {
	name := commandName(kind)
	o := &extractOptions{form: playground.DefaultForm()}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.output, "output", "text", "Output format: text, json, markdown, html")
	fs.BoolVar(&o.color, "color", false, "Syntax-highlight output")
	fs.BoolVar(&o.curl, "curl", false, "Print the equivalent curl command instead of sending")
	fs.StringVar(&o.code, "code", "", "Print a snippet instead of sending (curl, python, javascript, go)")
	fs.DurationVar(&o.clientTimeout, "client-timeout", 0, "Abort the call after this duration (e.g. 90s)")
	fs.StringVar(&o.apiURL, "api-url", "", "API base URL")
	fs.BoolVar(&o.noHistory, "no-history", false, "Do not record the extraction in history")
	fs.BoolVar(&o.quiet, "quiet", false, "Suppress the summary line")
	fs.BoolVar(&o.verbose, "verbose", false, "Log request details to stderr")

	f := &o.form
	switch kind {
	case protocol.KindSingle, protocol.KindCrawl:
		fs.StringVar(&f.WaitFor, "wait-for", f.WaitFor, "Milliseconds to wait for the page")
		fs.StringVar(&f.Timeout, "timeout", f.Timeout, "Page timeout in milliseconds")
		fs.StringVar(&f.ExcludeTags, "exclude-tags", f.ExcludeTags, "Comma-separated selectors to exclude")
		fs.StringVar(&f.IncludeTags, "include-tags", f.IncludeTags, "Comma-separated selectors to include")
		fs.BoolVar(&f.ExtractMainContent, "main-content", f.ExtractMainContent, "Extract only the main content")
		fs.BoolVar(&f.Stealth, "stealth", f.Stealth, "Use stealth mode")
		fs.BoolVar(&f.Markdown, "markdown", f.Markdown, "Request markdown output")
		fs.BoolVar(&f.Links, "links", f.Links, "Request links")
		fs.Func("html", "HTML variant: cleaned, raw (default cleaned)", func(s string) error {
			switch playground.HTMLMode(s) {
			case playground.HTMLCleaned, playground.HTMLRaw:
				f.HTML = playground.HTMLMode(s)
				return nil
			}
			return errors.New("must be cleaned or raw")
		})
		fs.Func("screenshot", "Capture a screenshot: viewport, full", func(s string) error {
			switch playground.ScreenshotMode(s) {
			case playground.ScreenshotViewport, playground.ScreenshotFull:
				f.Screenshot = playground.ScreenshotMode(s)
				return nil
			}
			return errors.New("must be viewport or full")
		})
	}

	switch kind {
	case protocol.KindCrawl:
		fs.StringVar(&f.CrawlLimit, "limit", f.CrawlLimit, "Maximum pages to crawl")
		fs.StringVar(&f.MaxDepth, "max-depth", f.MaxDepth, "Maximum link depth")
		fs.StringVar(&f.ExcludePaths, "exclude-paths", f.ExcludePaths, "Comma-separated path patterns to skip")
		fs.StringVar(&f.IncludePaths, "include-paths", f.IncludePaths, "Comma-separated path patterns to keep")
		fs.BoolVar(&f.IgnoreSitemap, "ignore-sitemap", f.IgnoreSitemap, "Ignore the sitemap")
		fs.BoolVar(&f.AllowBackwardsLinks, "backward-links", f.AllowBackwardsLinks, "Follow links above the root URL")
	case protocol.KindMap:
		fs.StringVar(&f.MapSearch, "search", f.MapSearch, "Only return URLs matching this term")
		fs.BoolVar(&f.MapSubdomains, "subdomains", f.MapSubdomains, "Include subdomains")
		fs.BoolVar(&f.MapIgnoreSitemap, "ignore-sitemap", f.MapIgnoreSitemap, "Ignore the sitemap")
	case protocol.KindSearch:
		fs.StringVar(&f.SearchLimit, "limit", f.SearchLimit, "Number of results")
		fs.StringVar(&f.Language, "lang", f.Language, "Result language")
		fs.StringVar(&f.Country, "country", f.Country, "Result country")
		fs.BoolVar(&f.ScrapeContent, "scrape", f.ScrapeContent, "Scrape the content of each hit")
	}

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: zencrawl %s <%s> [flags]\n\n", name, targetName(kind))
		fmt.Fprintf(stderr, "%s\n\nFlags:\n", commandSummary(kind))
		fs.PrintDefaults()
	}
	return fs, o
}

func extractCmd(kind protocol.Kind, args []string, stdout, stderr io.Writer) int {
	fs, o := newExtractFlags(kind, stderr)
	positional, err := parseArgs(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if len(positional) != 1 {
		fmt.Fprintf(stderr, "Error: exactly one %s is required\n\n", targetName(kind))
		fs.Usage()
		return 2
	}
	if kind.TargetsQuery() {
		o.form.Query = positional[0]
	} else {
		o.form.URL = positional[0]
	}

	var view render.View
	if o.output != "json" {
		if view, err = render.ParseView(o.output); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
	}

	cfg := config.Load()
	if o.apiURL != "" {
		cfg.APIURL = o.apiURL
	}
	client, err := newClient(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if o.curl || o.code != "" {
		return printSnippet(client, kind, o, stdout, stderr)
	}

	level := log.WarnLevel
	if o.verbose {
		level = log.DebugLevel
	}
	logger := logging.New(stderr, level)

	var store *history.Store
	if o.noHistory {
		store, err = history.Open(":memory:")
	} else {
		store, err = openHistory(cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	res, err := runner.New(client, store, logger).Run(ctx, runner.Config{
		Kind:    kind,
		Form:    o.form,
		Timeout: o.clientTimeout,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	switch {
	case o.output == "json":
		if err := runner.PrintJSON(stdout, res); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	case !res.Failed():
		runner.PrintText(stdout, res, view, o.color)
	}
	if !o.quiet {
		runner.PrintSummary(stderr, res)
	}
	return runner.ExitCode(res)
}

// printSnippet prints the request the flags describe without sending it.
func printSnippet(client *api.Client, kind protocol.Kind, o *extractOptions, stdout, stderr io.Writer) int {
	lang := codegen.LangCurl
	if o.code != "" {
		var err error
		if lang, err = codegen.ParseLanguage(o.code); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
	}

	call, err := o.form.Call(kind)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	req, err := export.FromCall(client, call)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if lang == codegen.LangCurl {
		fmt.Fprintln(stdout, export.AsCurl(req))
		return 0
	}
	snippet, err := codegen.Generate(req, lang)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, snippet)
	return 0
}

func commandName(kind protocol.Kind) string {
	if kind == protocol.KindSingle {
		return "scrape"
	}
	return string(kind)
}

func targetName(kind protocol.Kind) string {
	if kind.TargetsQuery() {
		return "query"
	}
	return "url"
}

func commandSummary(kind protocol.Kind) string {
	switch kind {
	case protocol.KindCrawl:
		return "Crawl a site starting at url and print every page."
	case protocol.KindMap:
		return "List the URLs of the site at url."
	case protocol.KindSearch:
		return "Search the web for query."
	default:
		return "Scrape a single page."
	}
}
