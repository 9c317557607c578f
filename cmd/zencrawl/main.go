package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/app"
	"github.com/sadopc/zencrawl/internal/config"
	"github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/logging"
	"github.com/sadopc/zencrawl/internal/protocol"
	"github.com/sadopc/zencrawl/pkg/version"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: reading .env: %v\n", err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "scrape", "crawl", "map", "search":
			kind, _ := protocol.ParseKind(os.Args[1])
			os.Exit(extractCmd(kind, os.Args[2:], os.Stdout, os.Stderr))
		case "history":
			os.Exit(historyCmd(os.Args[2:], os.Stdout, os.Stderr))
		case "mock":
			os.Exit(mockCmd(os.Args[2:]))
		case "completion":
			completionCmd()
			return
		case "version":
			fmt.Printf("zencrawl %s (%s) built %s\n", version.Version, version.Commit, version.Date)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}
	os.Exit(tuiCmd())
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `zencrawl - a terminal playground for a web scraping API

Usage:
  zencrawl [flags]                    Launch TUI (interactive mode)
  zencrawl <command> [args] [flags]   Run a subcommand

Commands:
  scrape      Scrape a single URL
  crawl       Crawl a site from a root URL
  map         List the URLs of a site
  search      Search the web and optionally scrape the hits
  history     List, show, remove or clear past extractions
  mock        Run a local mock of the scraping API
  completion  Generate shell completion scripts (bash, zsh, fish)
  version     Print version information
  help        Show this help message

TUI Flags:
  --api-url <url>   API base URL (default from config or ZENCRAWL_API_URL)
  --theme <name>    Color theme
  --version         Print version and exit

Run 'zencrawl <command> --help' for more information about a command.
`)
}

func tuiCmd() int {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	apiURLFlag := flag.String("api-url", "", "API base URL")
	themeFlag := flag.String("theme", "", "Color theme")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("zencrawl %s (%s) built %s\n", version.Version, version.Commit, version.Date)
		return 0
	}
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", flag.Arg(0))
		printHelp()
		return 2
	}

	cfg := config.Load()
	if *apiURLFlag != "" {
		cfg.APIURL = *apiURLFlag
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}

	if logFile := setupTUILogging(cfg); logFile != nil {
		defer logFile.Close()
	}

	client, err := newClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	store, err := openHistory(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	p := tea.NewProgram(
		app.New(cfg, client, store),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// setupTUILogging sends logs to the configured file. When the file
// cannot be opened logging is discarded, since the TUI owns the terminal.
func setupTUILogging(cfg config.Config) io.Closer {
	logFile, err := logging.Setup(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (logging disabled)\n", err)
		log.SetDefault(logging.New(io.Discard, log.InfoLevel))
		return nil
	}
	return logFile
}

// newClient creates the API client described by cfg.
func newClient(cfg config.Config) (*api.Client, error) {
	client := api.New(cfg.APIURL)
	if cfg.RequestTimeout > 0 {
		client.SetTimeout(cfg.RequestTimeout)
	}
	if err := client.SetProxy(cfg.Proxy, cfg.NoProxy); err != nil {
		return nil, fmt.Errorf("configuring proxy: %w", err)
	}
	return client, nil
}

// openHistory opens the history database, creating its directory.
func openHistory(cfg config.Config) (*history.Store, error) {
	path := cfg.HistoryFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	return history.Open(path)
}

// parseArgs parses flags that may appear before or after the
// positional arguments, which flag.Parse alone does not allow.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}
