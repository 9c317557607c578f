package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/sadopc/zencrawl/internal/config"
	"github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/render"
	"github.com/sadopc/zencrawl/internal/runner"
)

func historyCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outputFlag := fs.String("output", "text", "Output format: text, json")
	viewFlag := fs.String("view", "preview", "Result view for show: preview, json, markdown, html")
	colorFlag := fs.Bool("color", false, "Syntax-highlight the result of show")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: zencrawl history [list|show <id>|rm <id>|clear] [flags]\n\n")
		fmt.Fprintf(stderr, "Inspect the most recent %d extractions.\n\n", history.MaxEntries)
		fmt.Fprintf(stderr, "An id may be abbreviated to any unique prefix.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	positional, err := parseArgs(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *outputFlag != "text" && *outputFlag != "json" {
		fmt.Fprintf(stderr, "Error: unknown output %q (want text or json)\n", *outputFlag)
		return 2
	}
	view, err := render.ParseView(*viewFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	sub := "list"
	if len(positional) > 0 {
		sub, positional = positional[0], positional[1:]
	}
	needsID := sub == "show" || sub == "rm" || sub == "remove"
	switch {
	case needsID && len(positional) != 1:
		fmt.Fprintf(stderr, "Error: %s requires exactly one id\n\n", sub)
		fs.Usage()
		return 2
	case !needsID && len(positional) != 0:
		fmt.Fprintf(stderr, "Error: unexpected argument %q\n\n", positional[0])
		fs.Usage()
		return 2
	}

	store, err := openHistory(config.Load())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer store.Close()

	json := *outputFlag == "json"
	switch sub {
	case "list", "ls":
		records := store.List()
		if json {
			return printJSON(stdout, stderr, records)
		}
		runner.PrintHistory(stdout, records, time.Now())

	case "show":
		rec, err := runner.FindRecord(store.List(), positional[0])
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if json {
			return printJSON(stdout, stderr, rec)
		}
		if err := runner.PrintRecord(stdout, rec, view, *colorFlag); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}

	case "rm", "remove":
		rec, err := runner.FindRecord(store.List(), positional[0])
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if err := store.Remove(rec.ID); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Removed %s (%s %s)\n", rec.ID, rec.Kind.Label(), rec.Target)

	case "clear":
		n := store.Len()
		if err := store.Clear(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Cleared %d entries\n", n)

	default:
		fmt.Fprintf(stderr, "Error: unknown history command %q\n\n", sub)
		fs.Usage()
		return 2
	}
	return 0
}

func printJSON(stdout, stderr io.Writer, v any) int {
	if err := runner.PrintJSON(stdout, v); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
