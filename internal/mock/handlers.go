package mock

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sadopc/zencrawl/internal/api"
)

var samplePaths = []string{"/", "/docs", "/docs/getting-started", "/blog", "/blog/launch", "/pricing", "/about"}

type scrapeRequest struct {
	URL     string            `json:"url"`
	Options api.ScrapeOptions `json:"options"`
}

type crawlRequest struct {
	RootURL string `json:"rootUrl"`
	api.CrawlOptions
}

type mapRequest struct {
	RootURL string `json:"rootUrl"`
	api.MapOptions
}

type searchRequest struct {
	Query string `json:"query"`
	api.SearchOptions
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if !decode(w, r, &req, "url", &req.URL) {
		return
	}
	s.logger.Debug("mock scrape", "url", req.URL)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    page(req.URL, req.Options.Output),
	})
}

func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	var req crawlRequest
	if !decode(w, r, &req, "rootUrl", &req.RootURL) {
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > len(samplePaths) {
		limit = len(samplePaths)
	}
	pages := make([]map[string]any, 0, limit)
	for _, p := range samplePaths {
		if len(pages) == limit {
			break
		}
		if excluded(p, req.ExcludePaths) {
			continue
		}
		pages = append(pages, page(pageURL(req.RootURL, p), req.Output))
	}
	s.logger.Debug("mock crawl", "rootUrl", req.RootURL, "pages", len(pages))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"status":    "completed",
		"total":     len(pages),
		"completed": len(pages),
		"data":      pages,
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	var req mapRequest
	if !decode(w, r, &req, "rootUrl", &req.RootURL) {
		return
	}

	links := make([]string, 0, len(samplePaths)+1)
	for _, p := range samplePaths {
		if req.Search != "" && !strings.Contains(p, strings.ToLower(req.Search)) {
			continue
		}
		links = append(links, pageURL(req.RootURL, p))
	}
	if req.Subdomains {
		links = append(links, "https://docs."+hostOf(req.RootURL)+"/")
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "links": links})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decode(w, r, &req, "query", &req.Query) {
		return
	}

	num := req.Num
	if num <= 0 {
		num = 5
	}
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(req.Query)), " ", "-")
	hits := make([]map[string]any, 0, num)
	for i := 1; i <= num; i++ {
		u := fmt.Sprintf("https://example.com/%s/%d", slug, i)
		hit := map[string]any{
			"title":       fmt.Sprintf("%s, result %d", req.Query, i),
			"url":         u,
			"description": fmt.Sprintf("Result %d for %q (%s-%s).", i, req.Query, req.Language, req.Country),
		}
		if req.ScrapeContent {
			hit["markdown"] = fmt.Sprintf("# %s\n\nScraped content of result %d.", req.Query, i)
		}
		hits = append(hits, hit)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": hits})
}

func page(u string, out *api.OutputOptions) map[string]any {
	host := hostOf(u)
	doc := map[string]any{
		"markdown": fmt.Sprintf("# %s\n\nMock content for %s.\n\n- [Docs](%s)\n- [Blog](%s)",
			host, u, pageURL(u, "/docs"), pageURL(u, "/blog")),
		"metadata": map[string]any{
			"title":      host,
			"sourceURL":  u,
			"statusCode": 200,
		},
	}
	if out == nil {
		return doc
	}
	if !out.Markdown {
		delete(doc, "markdown")
	}
	if out.HTML != "" {
		doc["html"] = fmt.Sprintf("<h1>%s</h1><p>Mock content for %s.</p>", host, u)
	}
	if out.Links {
		doc["links"] = []string{pageURL(u, "/docs"), pageURL(u, "/blog")}
	}
	if out.Screenshot != "" {
		doc["screenshot"] = fmt.Sprintf("https://screenshots.example.com/%s-%s.png", host, out.Screenshot)
	}
	return doc
}

func excluded(path string, patterns []string) bool {
	for _, p := range patterns {
		p = strings.Trim(p, "()*/. ")
		if p != "" && strings.Contains(path, p) {
			return true
		}
	}
	return false
}
