package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/mock"
	"github.com/sadopc/zencrawl/internal/playground"
	"github.com/sadopc/zencrawl/internal/protocol"
	"github.com/sadopc/zencrawl/internal/render"
)

func newTestRunner(t *testing.T) (*Runner, *history.Store) {
	t.Helper()
	quiet := log.New(io.Discard)

	srv := httptest.NewServer(mock.New(mock.WithLogger(quiet)).Handler())
	t.Cleanup(srv.Close)

	store, err := history.Open(":memory:")
	if err != nil {
		t.Fatalf("opening history: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(api.New(srv.URL), store, quiet), store
}

func TestRunCompleted(t *testing.T) {
	tests := []struct {
		name      string
		kind      protocol.Kind
		target    string
		wantItems bool
	}{
		{"scrape", protocol.KindSingle, "https://example.com", false},
		{"crawl", protocol.KindCrawl, "https://example.com", true},
		{"map", protocol.KindMap, "https://example.com", true},
		{"search", protocol.KindSearch, "golang scraping", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := newTestRunner(t)
			form := playground.DefaultForm()
			form.URL = tt.target
			form.Query = tt.target

			res, err := r.Run(context.Background(), Config{Kind: tt.kind, Form: form})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res.Failed() || ExitCode(res) != 0 {
				t.Fatalf("expected success, got error %q", res.Error)
			}
			if res.Target != tt.target || res.Kind != tt.kind {
				t.Errorf("result = %s %q", res.Kind, res.Target)
			}
			if res.Size == 0 || res.Result == nil {
				t.Error("expected a result body")
			}
			if tt.wantItems && res.Items == 0 {
				t.Error("expected items")
			}

			rec, ok := store.Get(res.RecordID)
			if !ok || rec.Status != history.StatusCompleted {
				t.Errorf("expected a completed history record, got %+v", rec)
			}
		})
	}
}

func TestRunRemoteFailure(t *testing.T) {
	r, store := newTestRunner(t)
	form := playground.DefaultForm()
	form.URL = "https://fail.example"

	res, err := r.Run(context.Background(), Config{Kind: protocol.KindSingle, Form: form})
	if err != nil {
		t.Fatalf("remote failures are not returned as errors: %v", err)
	}
	if !res.Failed() || ExitCode(res) != 1 {
		t.Fatal("expected a failed result")
	}
	if res.Error == "" || res.Result != nil {
		t.Errorf("result = %+v", res)
	}
	if store.Len() != 1 || store.List()[0].Error != res.Error {
		t.Error("expected the failure recorded with its message")
	}
}

func TestRunValidationError(t *testing.T) {
	r, store := newTestRunner(t)
	form := playground.DefaultForm()
	form.CrawlLimit = "ten"

	_, err := r.Run(context.Background(), Config{Kind: protocol.KindCrawl, Form: form})
	var verr *playground.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.Len() != 0 {
		t.Error("rejected input must not be recorded")
	}
}

func TestRunTimeout(t *testing.T) {
	quiet := log.New(io.Discard)
	srv := httptest.NewServer(mock.New(mock.WithLogger(quiet), mock.WithLatency(time.Second)).Handler())
	defer srv.Close()
	store, err := history.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	r := New(api.New(srv.URL), store, quiet)
	res, err := r.Run(context.Background(), Config{
		Kind:    protocol.KindSingle,
		Form:    playground.DefaultForm(),
		Timeout: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Failed() {
		t.Error("expected the client timeout to fail the extraction")
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, Result{
		Kind: protocol.KindCrawl, Target: "https://example.com", Status: history.StatusCompleted,
		Duration: 1500 * time.Millisecond, Size: 2048, Items: 3,
	})
	out := buf.String()
	for _, want := range []string{"✓", "Crawl", "https://example.com", "1.5s", "2.0 kB", "3 items"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q: %s", want, out)
		}
	}

	buf.Reset()
	PrintSummary(&buf, Result{Kind: protocol.KindMap, Target: "x", Status: history.StatusFailed, Error: "boom"})
	if !strings.Contains(buf.String(), "Error: boom") {
		t.Errorf("failed summary: %s", buf.String())
	}
}

func TestPrintTextAndJSON(t *testing.T) {
	r, _ := newTestRunner(t)
	res, err := r.Run(context.Background(), Config{Kind: protocol.KindSingle, Form: playground.DefaultForm()})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	PrintText(&buf, res, render.Markdown, false)
	if !strings.Contains(buf.String(), "Mock content for") {
		t.Errorf("markdown output: %s", buf.String())
	}

	buf.Reset()
	if err := PrintJSON(&buf, res); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["status"] != "completed" || decoded["result"] == nil {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestPrintHistory(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []history.Record{
		{ID: "0123456789", Kind: protocol.KindSearch, Target: "go", Timestamp: now.Add(-time.Hour), Status: history.StatusCompleted},
		{ID: "abcdef", Kind: protocol.KindSingle, Target: "https://x.example", Timestamp: now.Add(-2 * time.Hour), Status: history.StatusFailed, Error: "boom"},
	}

	var buf bytes.Buffer
	PrintHistory(&buf, records, now)
	out := buf.String()
	for _, want := range []string{"01234567 ", "Search", "1 hour ago", "✗ abcdef", "2 of 50"} {
		if !strings.Contains(out, want) {
			t.Errorf("history missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintHistory(&buf, nil, now)
	if !strings.Contains(buf.String(), "No extractions") {
		t.Errorf("empty history: %q", buf.String())
	}
}

func TestFindRecord(t *testing.T) {
	records := []history.Record{{ID: "abc123"}, {ID: "abd456"}, {ID: "ab"}}

	tests := []struct {
		prefix  string
		want    string
		wantErr bool
	}{
		{"abc", "abc123", false},
		{"abd456", "abd456", false},
		{"ab", "ab", false}, // exact match wins over prefixes
		{"a", "", true},
		{"zzz", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		rec, err := FindRecord(records, tt.prefix)
		if (err != nil) != tt.wantErr {
			t.Errorf("FindRecord(%q) error = %v", tt.prefix, err)
			continue
		}
		if rec.ID != tt.want {
			t.Errorf("FindRecord(%q) = %q, want %q", tt.prefix, rec.ID, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{250 * time.Millisecond, "250ms"},
		{2500 * time.Millisecond, "2.5s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
