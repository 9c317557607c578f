// Package api is the client for the remote scraping service. Every
// operation is exactly one POST with a JSON body; nothing is retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sadopc/zencrawl/pkg/version"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:3000"

// maxBodySize bounds how much of a response body is read. Larger
// bodies fail the call.
var maxBodySize int64 = 64 << 20

// Client issues calls against the scraping service. It holds no
// per-call state and may be shared.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// New creates a client for baseURL. An empty baseURL selects
// DefaultBaseURL.
func New(baseURL string) *Client {
	c := &Client{
		httpClient: &http.Client{},
		userAgent:  version.UserAgent(),
	}
	c.SetBaseURL(baseURL)
	return c
}

// SetBaseURL changes the service base URL.
func (c *Client) SetBaseURL(baseURL string) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c.baseURL = baseURL
}

func (c *Client) BaseURL() string { return c.baseURL }

// SetTimeout sets a client-side limit for a whole call. Zero disables
// it, which is the default; the playground's timeout fields are
// forwarded to the service instead.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SetProxy configures proxy settings for the client.
func (c *Client) SetProxy(proxyURL, noProxy string) error {
	if proxyURL == "" {
		c.httpClient.Transport = nil
		return nil
	}
	conf := &ProxyConfig{URL: proxyURL, NoProxy: noProxy}
	transport, err := buildTransport(conf)
	if err != nil {
		return err
	}
	c.httpClient.Transport = transport
	return nil
}

// URL returns the absolute endpoint URL for call.
func (c *Client) URL(call Call) string {
	return c.baseURL + call.Path
}

// Headers returns the headers sent with every call.
func (c *Client) Headers() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   c.userAgent,
	}
}

// Do sends call and decodes the response. Failures are returned as
// *Error; a call that could not be encoded returns a plain error.
func (c *Client) Do(ctx context.Context, call Call) (*Result, error) {
	body, err := call.Encode()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(call), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range c.Headers() {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, transportError(fmt.Errorf("reading response: %w", err))
	}
	if int64(len(respBody)) > maxBodySize {
		return nil, transportError(fmt.Errorf("response body exceeds %d bytes", maxBodySize))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		// non-JSON error bodies fall back to the status code
		_ = json.Unmarshal(respBody, &eb)
		return nil, remoteError(resp.StatusCode, eb)
	}

	return ParseResult(call.Kind, respBody)
}

// Scrape posts {url, options} to /api/scrape.
func (c *Client) Scrape(ctx context.Context, url string, opts ScrapeOptions) (*Result, error) {
	call, err := NewScrapeCall(url, opts)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, call)
}

// Map posts {rootUrl, ...options} to /api/map.
func (c *Client) Map(ctx context.Context, rootURL string, opts MapOptions) (*Result, error) {
	call, err := NewMapCall(rootURL, opts)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, call)
}

// Crawl posts {rootUrl, ...options} to /api/crawl.
func (c *Client) Crawl(ctx context.Context, rootURL string, opts CrawlOptions) (*Result, error) {
	call, err := NewCrawlCall(rootURL, opts)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, call)
}

// Search posts {query, ...options} to /api/search.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*Result, error) {
	call, err := NewSearchCall(query, opts)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, call)
}
