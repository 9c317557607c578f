package api

// OutputOptions selects the formats the remote service returns.
type OutputOptions struct {
	Markdown   bool   `json:"markdown"`
	Links      bool   `json:"links"`
	HTML       string `json:"html,omitempty" validate:"omitempty,oneof=cleaned raw"`
	Screenshot string `json:"screenshot,omitempty" validate:"omitempty,oneof=viewport full"`
}

// Viewport is the browser viewport used for rendering.
type Viewport struct {
	Width  int `json:"width" validate:"gt=0"`
	Height int `json:"height" validate:"gt=0"`
}

// ScrapeOptions configures a single-URL scrape. Durations are in
// milliseconds and are forwarded to the remote service, never enforced
// locally.
type ScrapeOptions struct {
	Timeout            int            `json:"timeout" validate:"gte=0"`
	WaitForSelector    string         `json:"waitForSelector,omitempty"`
	ExtractMainContent bool           `json:"extractMainContent"`
	ExcludeSelectors   []string       `json:"excludeSelectors,omitempty"`
	IncludeSelectors   []string       `json:"includeSelectors,omitempty"`
	UserAgent          string         `json:"userAgent,omitempty"`
	Viewport           *Viewport      `json:"viewport,omitempty"`
	WaitFor            int            `json:"waitFor" validate:"gte=0"`
	UseStealth         bool           `json:"useStealth"`
	Output             *OutputOptions `json:"output,omitempty"`
}

type MapOptions struct {
	Search        string `json:"search,omitempty"`
	Subdomains    bool   `json:"subdomains"`
	IgnoreSitemap bool   `json:"ignoreSitemap"`
}

// PageOptions are the per-page settings of a crawl. The tag lists are
// sent as the raw comma-separated text.
type PageOptions struct {
	ExcludeTags        string `json:"excludeTags,omitempty"`
	IncludeOnlyTags    string `json:"includeOnlyTags,omitempty"`
	WaitFor            int    `json:"waitFor" validate:"gte=0"`
	Timeout            int    `json:"timeout" validate:"gte=0"`
	ExtractMainContent bool   `json:"extractMainContent"`
	UseStealth         bool   `json:"useStealth"`
}

type CrawlOptions struct {
	Limit               int            `json:"limit" validate:"gte=0"`
	MaxDepth            *int           `json:"maxDepth,omitempty" validate:"omitempty,gte=0"`
	ExcludePaths        []string       `json:"excludePaths,omitempty"`
	IncludeOnlyPaths    []string       `json:"includeOnlyPaths,omitempty"`
	IgnoreSitemap       bool           `json:"ignoreSitemap"`
	AllowBackwardsLinks bool           `json:"allowBackwardsLinks"`
	PageOptions         *PageOptions   `json:"pageOptions,omitempty"`
	Output              *OutputOptions `json:"output,omitempty"`
}

type SearchOptions struct {
	Country       string `json:"country,omitempty"`
	Language      string `json:"language,omitempty"`
	Num           int    `json:"num" validate:"gte=0"`
	ScrapeContent bool   `json:"scrapeContent"`
}
