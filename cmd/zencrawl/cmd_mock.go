package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"

	"github.com/sadopc/zencrawl/internal/logging"
	"github.com/sadopc/zencrawl/internal/mock"
)

func mockCmd(args []string) int {
	fs := flag.NewFlagSet("mock", flag.ContinueOnError)
	addrFlag := fs.String("addr", ":3000", "Address to listen on")
	latencyFlag := fs.Duration("latency", 0, "Artificial response latency (e.g., 200ms, 1s)")
	errorRateFlag := fs.Float64("error-rate", 0, "Random error rate (0.0-1.0)")
	corsOriginFlag := fs.String("cors-origin", "*", "Access-Control-Allow-Origin header value")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: zencrawl mock [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Start a local mock of the scraping API.\n\n")
		fmt.Fprintf(os.Stderr, "The server answers POST /api/scrape, /api/crawl, /api/map and\n")
		fmt.Fprintf(os.Stderr, "/api/search with canned results built from the request. A target\n")
		fmt.Fprintf(os.Stderr, "containing \"fail\" is rejected with 422, and ?fail=<status> forces\n")
		fmt.Fprintf(os.Stderr, "that status.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  zencrawl mock\n")
		fmt.Fprintf(os.Stderr, "  zencrawl mock --addr :8080\n")
		fmt.Fprintf(os.Stderr, "  zencrawl mock --latency 500ms --error-rate 0.1\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected argument %q\n\n", fs.Arg(0))
		fs.Usage()
		return 2
	}

	if *errorRateFlag < 0 || *errorRateFlag > 1 {
		fmt.Fprintf(os.Stderr, "Error: error-rate must be between 0.0 and 1.0\n")
		return 2
	}
	if *latencyFlag < 0 {
		fmt.Fprintf(os.Stderr, "Error: latency must not be negative\n")
		return 2
	}

	logging.SetupStderr(log.InfoLevel)
	srv := mock.New(
		mock.WithAddr(*addrFlag),
		mock.WithLatency(*latencyFlag),
		mock.WithErrorRate(*errorRateFlag),
		mock.WithCORSOrigin(*corsOriginFlag),
		mock.WithLogger(log.Default()),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *latencyFlag > 0 {
		fmt.Fprintf(os.Stderr, "Artificial latency: %s\n", latencyFlag.String())
	}
	if *errorRateFlag > 0 {
		fmt.Fprintf(os.Stderr, "Error rate: %.0f%%\n", *errorRateFlag*100)
	}

	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
