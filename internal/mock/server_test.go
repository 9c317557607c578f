package mock

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/protocol"
)

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	handler := New().Handler()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"scrape", "POST", "/api/scrape", `{"url":"https://example.com"}`, http.StatusOK},
		{"map", "POST", "/api/map", `{"rootUrl":"https://example.com"}`, http.StatusOK},
		{"crawl", "POST", "/api/crawl", `{"rootUrl":"https://example.com","limit":2}`, http.StatusOK},
		{"search", "POST", "/api/search", `{"query":"golang"}`, http.StatusOK},
		{"missing target", "POST", "/api/scrape", `{"options":{}}`, http.StatusBadRequest},
		{"bad json", "POST", "/api/map", `{`, http.StatusBadRequest},
		{"unknown path", "POST", "/api/extract", `{}`, http.StatusNotFound},
		{"wrong method", "GET", "/api/scrape", ``, http.StatusMethodNotAllowed},
		{"fail target", "POST", "/api/scrape", `{"url":"https://fail.example"}`, http.StatusUnprocessableEntity},
		{"fail query", "POST", "/api/search?fail=429", `{"query":"golang"}`, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("got Content-Type %q", ct)
			}
			if rec.Code >= 400 {
				var resp map[string]any
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("error body is not JSON: %v", err)
				}
				if msg, _ := resp["error"].(string); msg == "" {
					t.Error("expected error field in body")
				}
			}
		})
	}
}

func TestCrawlHonoursLimitAndExcludes(t *testing.T) {
	rec := post(t, New().Handler(), "/api/crawl", `{"rootUrl":"https://example.com","limit":10,"excludePaths":["(blog/","*/about/.*)"]}`)

	var resp struct {
		Data []struct {
			Metadata struct {
				SourceURL string `json:"sourceURL"`
			} `json:"metadata"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(resp.Data))
	}
	for _, p := range resp.Data {
		if strings.Contains(p.Metadata.SourceURL, "blog") || strings.Contains(p.Metadata.SourceURL, "about") {
			t.Errorf("excluded page returned: %s", p.Metadata.SourceURL)
		}
	}

	rec = post(t, New().Handler(), "/api/crawl", `{"rootUrl":"https://example.com","limit":2}`)
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Data) != 2 {
		t.Errorf("expected limit of 2 pages, got %d", len(resp.Data))
	}
}

func TestScrapeOutputOptions(t *testing.T) {
	rec := post(t, New().Handler(), "/api/scrape", `{"url":"https://example.com","options":{"output":{"markdown":false,"links":true,"html":"raw","screenshot":"full"}}}`)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if _, ok := resp.Data["markdown"]; ok {
		t.Error("markdown should be omitted")
	}
	for _, k := range []string{"html", "links", "screenshot"} {
		if _, ok := resp.Data[k]; !ok {
			t.Errorf("expected %s in response", k)
		}
	}
}

func TestCORS(t *testing.T) {
	handler := New(WithCORSOrigin("https://playground.example")).Handler()

	req := httptest.NewRequest("OPTIONS", "/api/scrape", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("OPTIONS got status %d, want %d", rec.Code, http.StatusNoContent)
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "https://playground.example" {
		t.Errorf("got ACAO %q", origin)
	}
}

func TestErrorRate(t *testing.T) {
	handler := New(WithErrorRate(1.0)).Handler()
	rec := post(t, handler, "/api/map", `{"rootUrl":"https://example.com"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("got status %d, want 500 with error rate 1.0", rec.Code)
	}
}

func TestLatency(t *testing.T) {
	latency := 30 * time.Millisecond
	handler := New(WithLatency(latency)).Handler()

	start := time.Now()
	post(t, handler, "/api/search", `{"query":"go"}`)
	if elapsed := time.Since(start); elapsed < latency {
		t.Errorf("request took %v, expected at least %v", elapsed, latency)
	}
}

func TestClientAgainstMock(t *testing.T) {
	server := httptest.NewServer(New().Handler())
	defer server.Close()

	client := api.New(server.URL)
	ctx := context.Background()

	res, err := client.Scrape(ctx, "https://example.com", api.ScrapeOptions{Output: &api.OutputOptions{Markdown: true}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res.Markdown, "# example.com") {
		t.Errorf("unexpected markdown %q", res.Markdown)
	}

	res, err = client.Search(ctx, "go tui", api.SearchOptions{Num: 3})
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != protocol.KindSearch || len(res.Items) != 3 || res.Items[0].URL == "" {
		t.Errorf("unexpected search result %+v", res.Items)
	}

	_, err = client.Map(ctx, "https://fail.example", api.MapOptions{})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != api.ErrRemote || apiErr.Message != "Failed to fetch https://fail.example" {
		t.Errorf("expected remote error from mock, got %v", err)
	}
}

func TestServeShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New().Serve(ctx, ln) }()

	resp, err := http.Post("http://"+ln.Addr().String()+"/api/map", "application/json", strings.NewReader(`{"rootUrl":"https://example.com"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("got status %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
