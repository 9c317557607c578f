package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sadopc/zencrawl/internal/config"
	"github.com/sadopc/zencrawl/internal/mock"
	"github.com/sadopc/zencrawl/internal/protocol"
)

// setupEnv points the CLI at a mock API and a throwaway home directory.
func setupEnv(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(mock.New(mock.WithLogger(log.New(io.Discard))).Handler())
	t.Cleanup(srv.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("ZENCRAWL_API_URL", srv.URL)
	t.Setenv("NEXT_PUBLIC_API_URL", "")
}

func runExtract(t *testing.T, kind protocol.Kind, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := extractCmd(kind, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func runHistory(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := historyCmd(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExtractCmd(t *testing.T) {
	tests := []struct {
		name       string
		kind       protocol.Kind
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"scrape markdown", protocol.KindSingle, []string{"https://example.com", "--output", "markdown"}, 0, "Mock content for https://example.com", "✓ Single URL"},
		{"flags before target", protocol.KindSingle, []string{"--output", "html", "https://example.com"}, 0, "<h1>example.com</h1>", "✓"},
		{"crawl", protocol.KindCrawl, []string{"https://example.com", "--limit", "2", "--output", "markdown"}, 0, "https://example.com/docs", "2 items"},
		{"map", protocol.KindMap, []string{"https://example.com", "--search", "blog", "--output", "json"}, 0, "https://example.com/blog/launch", ""},
		{"search", protocol.KindSearch, []string{"go scrapers", "--limit", "3", "--output", "json"}, 0, "go scrapers, result 3", ""},
		{"remote failure", protocol.KindSingle, []string{"https://fail.example.com"}, 1, "", "Failed to fetch https://fail.example.com"},
		{"invalid number", protocol.KindSingle, []string{"https://example.com", "--wait-for", "soon"}, 2, "", "waitFor"},
		{"missing target", protocol.KindSingle, nil, 2, "", "exactly one url is required"},
		{"missing query", protocol.KindSearch, nil, 2, "", "exactly one query is required"},
		{"bad output", protocol.KindSingle, []string{"https://example.com", "--output", "yaml"}, 2, "", "unknown output"},
		{"bad html mode", protocol.KindSingle, []string{"https://example.com", "--html", "pretty"}, 2, "", "must be cleaned or raw"},
		{"crawl flag on map", protocol.KindMap, []string{"https://example.com", "--max-depth", "2"}, 2, "", "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			code, stdout, stderr := runExtract(t, tt.kind, tt.args...)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\nstderr: %s", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stdout, tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, stdout)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr)
			}
		})
	}
}

func TestExtractCmd_JSONEnvelope(t *testing.T) {
	setupEnv(t)
	code, stdout, _ := runExtract(t, protocol.KindSingle, "https://fail.example.com", "--output", "json", "--quiet")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	var got struct {
		Kind      string `json:"kind"`
		Status    string `json:"status"`
		Error     string `json:"error"`
		HistoryID string `json:"history_id"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if got.Kind != "single" || got.Status != "failed" {
		t.Errorf("got kind=%q status=%q", got.Kind, got.Status)
	}
	if got.Error != "Failed to fetch https://fail.example.com" {
		t.Errorf("error = %q", got.Error)
	}
	if got.HistoryID == "" {
		t.Error("failed extraction should still be recorded")
	}
}

func TestExtractCmd_Quiet(t *testing.T) {
	setupEnv(t)
	code, _, stderr := runExtract(t, protocol.KindMap, "https://example.com", "--quiet")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if stderr != "" {
		t.Errorf("quiet run wrote to stderr: %q", stderr)
	}
}

func TestExtractCmd_Snippets(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"curl", []string{"--curl"}, []string{"curl -X POST", "/api/scrape", `"url":"https://example.com"`}},
		{"python", []string{"--code", "python"}, []string{"import requests", "/api/scrape"}},
		{"go", []string{"--code", "golang"}, []string{"package main", "/api/scrape"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			code, stdout, stderr := runExtract(t, protocol.KindSingle, append([]string{"https://example.com"}, tt.args...)...)
			if code != 0 {
				t.Fatalf("exit code = %d\nstderr: %s", code, stderr)
			}
			for _, w := range tt.want {
				if !strings.Contains(stdout, w) {
					t.Errorf("snippet missing %q:\n%s", w, stdout)
				}
			}

			// nothing was sent, so nothing was recorded
			_, list, _ := runHistory(t)
			if !strings.Contains(list, "No extractions yet.") {
				t.Errorf("snippet should not touch history:\n%s", list)
			}
		})
	}
}

func TestExtractCmd_UnknownLanguage(t *testing.T) {
	setupEnv(t)
	code, _, stderr := runExtract(t, protocol.KindSingle, "https://example.com", "--code", "cobol")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "unsupported language") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestExtractCmd_NoHistory(t *testing.T) {
	setupEnv(t)
	if code, _, _ := runExtract(t, protocol.KindSingle, "https://example.com", "--no-history", "--quiet"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	_, list, _ := runHistory(t, "list")
	if !strings.Contains(list, "No extractions yet.") {
		t.Errorf("--no-history run was recorded:\n%s", list)
	}
}

func TestExtractCmd_Help(t *testing.T) {
	code, _, stderr := runExtract(t, protocol.KindCrawl, "--help")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stderr, "Usage: zencrawl crawl <url>") || !strings.Contains(stderr, "-max-depth") {
		t.Errorf("unexpected usage:\n%s", stderr)
	}
}

func TestHistoryCmd(t *testing.T) {
	setupEnv(t)
	runExtract(t, protocol.KindSingle, "https://example.com", "--quiet")
	runExtract(t, protocol.KindMap, "https://fail.example.com", "--quiet")

	code, stdout, _ := runHistory(t)
	if code != 0 {
		t.Fatalf("list exit code = %d", code)
	}
	if !strings.Contains(stdout, "✗") || !strings.Contains(stdout, "✓") {
		t.Errorf("list should show both outcomes:\n%s", stdout)
	}
	if !strings.Contains(stdout, "History: 2 of 50 entries") {
		t.Errorf("list footer missing:\n%s", stdout)
	}

	code, stdout, _ = runHistory(t, "list", "--output", "json")
	if code != 0 {
		t.Fatalf("list json exit code = %d", code)
	}
	var records []struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Target string `json:"target"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(stdout), &records); err != nil {
		t.Fatalf("list json: %v\n%s", err, stdout)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// newest first
	failed, done := records[0], records[1]
	if failed.Status != "failed" || done.Status != "completed" {
		t.Fatalf("unexpected order: %+v", records)
	}

	code, stdout, _ = runHistory(t, "show", done.ID[:8], "--view", "markdown")
	if code != 0 {
		t.Fatalf("show exit code = %d", code)
	}
	if !strings.Contains(stdout, "Target:  https://example.com") || !strings.Contains(stdout, "Mock content for") {
		t.Errorf("unexpected show output:\n%s", stdout)
	}

	code, stdout, _ = runHistory(t, "show", failed.ID)
	if code != 0 {
		t.Fatalf("show failed exit code = %d", code)
	}
	if !strings.Contains(stdout, "Error:   Failed to fetch https://fail.example.com") {
		t.Errorf("failed record should show its error:\n%s", stdout)
	}

	code, stdout, _ = runHistory(t, "rm", failed.ID)
	if code != 0 || !strings.Contains(stdout, "Removed "+failed.ID) {
		t.Fatalf("rm: code=%d out=%q", code, stdout)
	}
	if code, _, stderr := runHistory(t, "show", failed.ID); code != 1 || !strings.Contains(stderr, "no history entry matches") {
		t.Errorf("show after rm: code=%d stderr=%q", code, stderr)
	}

	code, stdout, _ = runHistory(t, "clear")
	if code != 0 || !strings.Contains(stdout, "Cleared 1 entries") {
		t.Fatalf("clear: code=%d out=%q", code, stdout)
	}
	_, stdout, _ = runHistory(t)
	if !strings.Contains(stdout, "No extractions yet.") {
		t.Errorf("history not empty after clear:\n%s", stdout)
	}
}

func TestHistoryCmd_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown action", []string{"purge"}, `unknown history command "purge"`},
		{"show without id", []string{"show"}, "show requires exactly one id"},
		{"list with argument", []string{"list", "extra"}, `unexpected argument "extra"`},
		{"bad output", []string{"--output", "yaml"}, `unknown output "yaml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)
			code, _, stderr := runHistory(t, tt.args...)
			if code != 2 {
				t.Fatalf("exit code = %d, want 2", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr missing %q:\n%s", tt.want, stderr)
			}
		})
	}
}

func TestParseArgs_Interspersed(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "")
	name := fs.String("name", "", "")

	got, err := parseArgs(fs, []string{"one", "-v", "two", "--name", "x", "three"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if strings.Join(got, ",") != "one,two,three" {
		t.Errorf("positional = %v", got)
	}
	if !*verbose || *name != "x" {
		t.Errorf("flags not parsed: v=%v name=%q", *verbose, *name)
	}
}

func TestSetupTUILogging_UnwritableFileDiscardsLogs(t *testing.T) {
	oldLogger := log.Default()
	t.Cleanup(func() { log.SetDefault(oldLogger) })

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(blocker, "zencrawl.log")

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	oldStderr := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = oldStderr }()

	if closer := setupTUILogging(cfg); closer != nil {
		closer.Close()
		t.Fatal("expected no log file")
	}
	log.Warn("extraction failed", "target", "https://example.com")
	_ = w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading stderr: %v", err)
	}
	if !strings.Contains(string(out), "logging disabled") {
		t.Errorf("expected a warning, got %q", out)
	}
	if strings.Contains(string(out), "extraction failed") {
		t.Errorf("log line reached stderr: %q", out)
	}
}

func TestSetupTUILogging_WritesFile(t *testing.T) {
	oldLogger := log.Default()
	t.Cleanup(func() { log.SetDefault(oldLogger) })

	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "zencrawl.log")

	closer := setupTUILogging(cfg)
	if closer == nil {
		t.Fatal("expected a log file")
	}
	log.Info("extraction started", "kind", "single")
	closer.Close()

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "extraction started") {
		t.Errorf("log file missing entry: %q", data)
	}
}
