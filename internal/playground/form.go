package playground

import (
	"strconv"
	"strings"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/protocol"
)

// HTMLMode selects the html output variant.
type HTMLMode string

const (
	HTMLCleaned HTMLMode = "cleaned"
	HTMLRaw     HTMLMode = "raw"
)

// ScreenshotMode selects the screenshot output, if any.
type ScreenshotMode string

const (
	ScreenshotNone     ScreenshotMode = ""
	ScreenshotViewport ScreenshotMode = "viewport"
	ScreenshotFull     ScreenshotMode = "full"
)

// Defaults applied when a numeric field is left empty.
const (
	DefaultWaitFor     = 1000
	DefaultTimeout     = 30000
	DefaultCrawlLimit  = 10
	DefaultSearchLimit = 5
)

// Form holds the raw text and toggle values of the playground inputs.
// Numeric fields stay text until a call is built.
type Form struct {
	URL   string
	Query string

	// page options, shared by single and crawl
	ExcludeTags        string
	IncludeTags        string
	WaitFor            string
	Timeout            string
	ExtractMainContent bool
	Stealth            bool

	// crawl
	CrawlLimit          string
	MaxDepth            string
	ExcludePaths        string
	IncludePaths        string
	IgnoreSitemap       bool
	AllowBackwardsLinks bool

	// map
	MapSearch        string
	MapSubdomains    bool
	MapIgnoreSitemap bool

	// search
	SearchLimit   string
	Language      string
	Country       string
	ScrapeContent bool

	// output, shared by single and crawl
	Markdown   bool
	Links      bool
	HTML       HTMLMode
	Screenshot ScreenshotMode
}

// DefaultForm returns the form as the playground first shows it.
func DefaultForm() Form {
	return Form{
		URL:                "https://docs.firecrawl.dev",
		Query:              "Top restaurants in San Francisco",
		ExcludeTags:        "script, ad, footer",
		IncludeTags:        "script, ad, footer",
		WaitFor:            strconv.Itoa(DefaultWaitFor),
		Timeout:            strconv.Itoa(DefaultTimeout),
		ExtractMainContent: true,
		CrawlLimit:         strconv.Itoa(DefaultCrawlLimit),
		ExcludePaths:       "(blog/, */about/.*)",
		IncludePaths:       "articles/.*",
		MapSearch:          "blog",
		SearchLimit:        strconv.Itoa(DefaultSearchLimit),
		Language:           "en",
		Country:            "us",
		Markdown:           true,
		HTML:               HTMLCleaned,
	}
}

// Target returns the URL, or the query for search.
func (f Form) Target(kind protocol.Kind) string {
	if kind.TargetsQuery() {
		return strings.TrimSpace(f.Query)
	}
	return strings.TrimSpace(f.URL)
}

// Call builds the API call for kind from the form. Malformed numeric
// fields and invalid values are reported together as a
// *ValidationError.
func (f Form) Call(kind protocol.Kind) (api.Call, error) {
	p := &numberParser{}

	var (
		call api.Call
		err  error
	)
	switch kind {
	case protocol.KindSingle:
		opts := api.ScrapeOptions{
			Timeout:            p.int("timeout", f.Timeout, DefaultTimeout),
			WaitFor:            p.int("waitFor", f.WaitFor, DefaultWaitFor),
			ExtractMainContent: f.ExtractMainContent,
			UseStealth:         f.Stealth,
			ExcludeSelectors:   splitList(f.ExcludeTags),
			IncludeSelectors:   splitList(f.IncludeTags),
			Output:             f.output(),
		}
		if p.failed() {
			return api.Call{}, p.err()
		}
		call, err = api.NewScrapeCall(f.URL, opts)

	case protocol.KindCrawl:
		opts := api.CrawlOptions{
			Limit:               p.int("limit", f.CrawlLimit, DefaultCrawlLimit),
			MaxDepth:            p.optionalInt("maxDepth", f.MaxDepth),
			ExcludePaths:        splitList(f.ExcludePaths),
			IncludeOnlyPaths:    splitList(f.IncludePaths),
			IgnoreSitemap:       f.IgnoreSitemap,
			AllowBackwardsLinks: f.AllowBackwardsLinks,
			PageOptions: &api.PageOptions{
				ExcludeTags:        f.ExcludeTags,
				IncludeOnlyTags:    f.IncludeTags,
				WaitFor:            p.int("pageOptions.waitFor", f.WaitFor, DefaultWaitFor),
				Timeout:            p.int("pageOptions.timeout", f.Timeout, DefaultTimeout),
				ExtractMainContent: f.ExtractMainContent,
				UseStealth:         f.Stealth,
			},
			Output: f.output(),
		}
		if p.failed() {
			return api.Call{}, p.err()
		}
		call, err = api.NewCrawlCall(f.URL, opts)

	case protocol.KindMap:
		call, err = api.NewMapCall(f.URL, api.MapOptions{
			Search:        strings.TrimSpace(f.MapSearch),
			Subdomains:    f.MapSubdomains,
			IgnoreSitemap: f.MapIgnoreSitemap,
		})

	case protocol.KindSearch:
		opts := api.SearchOptions{
			Country:       strings.TrimSpace(f.Country),
			Language:      strings.TrimSpace(f.Language),
			Num:           p.int("num", f.SearchLimit, DefaultSearchLimit),
			ScrapeContent: f.ScrapeContent,
		}
		if p.failed() {
			return api.Call{}, p.err()
		}
		call, err = api.NewSearchCall(f.Query, opts)

	default:
		return api.Call{}, &ValidationError{Fields: []api.FieldProblem{{Field: "kind", Problem: "must be one of: single, crawl, map, search"}}}
	}
	return call, err
}

func (f Form) output() *api.OutputOptions {
	html := f.HTML
	if html == "" {
		html = HTMLCleaned
	}
	return &api.OutputOptions{
		Markdown:   f.Markdown,
		Links:      f.Links,
		HTML:       string(html),
		Screenshot: string(f.Screenshot),
	}
}

// splitList splits comma-separated text into trimmed, non-empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type numberParser struct {
	problems []api.FieldProblem
}

func (p *numberParser) parse(field, text string) (int, bool) {
	text = strings.TrimSpace(text)
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		p.problems = append(p.problems, api.FieldProblem{Field: field, Problem: "must be a non-negative whole number"})
		return 0, false
	}
	return n, true
}

// int parses text, using def when it is empty.
func (p *numberParser) int(field, text string, def int) int {
	if strings.TrimSpace(text) == "" {
		return def
	}
	n, _ := p.parse(field, text)
	return n
}

// optionalInt parses text, returning nil when it is empty.
func (p *numberParser) optionalInt(field, text string) *int {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	n, ok := p.parse(field, text)
	if !ok {
		return nil
	}
	return &n
}

func (p *numberParser) failed() bool { return len(p.problems) > 0 }

func (p *numberParser) err() error {
	return &ValidationError{Fields: p.problems}
}
