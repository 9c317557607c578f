package editor

import (
	"github.com/sadopc/zencrawl/internal/playground"
	"github.com/sadopc/zencrawl/internal/protocol"
)

type fieldType int

const (
	fieldText fieldType = iota
	fieldToggle
	fieldChoice
)

// field is one row of the form. Text fields edit a string of the
// playground form in place; toggles flip a bool; choices cycle through
// a fixed list.
type field struct {
	label   string
	typ     fieldType
	hint    string
	choices []string
	numeric bool

	text func(*playground.Form) *string
	flag func(*playground.Form) *bool
	get  func(playground.Form) string
	set  func(*playground.Form, string)
}

func (f field) value(form playground.Form) string {
	switch f.typ {
	case fieldText:
		return *f.text(&form)
	case fieldToggle:
		if *f.flag(&form) {
			return "on"
		}
		return "off"
	default:
		return f.get(form)
	}
}

func textField(label, hint string, ptr func(*playground.Form) *string) field {
	return field{label: label, typ: fieldText, hint: hint, text: ptr}
}

func numberField(label, hint string, ptr func(*playground.Form) *string) field {
	f := textField(label, hint, ptr)
	f.numeric = true
	return f
}

func toggleField(label string, ptr func(*playground.Form) *bool) field {
	return field{label: label, typ: fieldToggle, flag: ptr}
}

var (
	urlField = textField("URL", "https://example.com", func(f *playground.Form) *string { return &f.URL })

	pageFields = []field{
		numberField("Wait for (ms)", "1000", func(f *playground.Form) *string { return &f.WaitFor }),
		numberField("Timeout (ms)", "30000", func(f *playground.Form) *string { return &f.Timeout }),
		textField("Exclude tags", "script, ad, footer", func(f *playground.Form) *string { return &f.ExcludeTags }),
		textField("Include tags", "article, main", func(f *playground.Form) *string { return &f.IncludeTags }),
		toggleField("Main content", func(f *playground.Form) *bool { return &f.ExtractMainContent }),
		toggleField("Stealth mode", func(f *playground.Form) *bool { return &f.Stealth }),
	}

	outputFields = []field{
		toggleField("Markdown", func(f *playground.Form) *bool { return &f.Markdown }),
		toggleField("Links", func(f *playground.Form) *bool { return &f.Links }),
		{
			label:   "HTML",
			typ:     fieldChoice,
			choices: []string{string(playground.HTMLCleaned), string(playground.HTMLRaw)},
			get:     func(f playground.Form) string { return string(f.HTML) },
			set:     func(f *playground.Form, v string) { f.HTML = playground.HTMLMode(v) },
		},
		{
			label:   "Screenshot",
			typ:     fieldChoice,
			choices: []string{"none", string(playground.ScreenshotViewport), string(playground.ScreenshotFull)},
			get: func(f playground.Form) string {
				if f.Screenshot == playground.ScreenshotNone {
					return "none"
				}
				return string(f.Screenshot)
			},
			set: func(f *playground.Form, v string) {
				if v == "none" {
					v = ""
				}
				f.Screenshot = playground.ScreenshotMode(v)
			},
		},
	}
)

// fieldsFor returns the rows shown for kind, in display order.
func fieldsFor(kind protocol.Kind) []field {
	switch kind {
	case protocol.KindCrawl:
		fs := []field{
			urlField,
			numberField("Limit", "10", func(f *playground.Form) *string { return &f.CrawlLimit }),
			numberField("Max depth", "unlimited", func(f *playground.Form) *string { return &f.MaxDepth }),
			textField("Exclude paths", "blog/, */about/.*", func(f *playground.Form) *string { return &f.ExcludePaths }),
			textField("Include paths", "articles/.*", func(f *playground.Form) *string { return &f.IncludePaths }),
			toggleField("Ignore sitemap", func(f *playground.Form) *bool { return &f.IgnoreSitemap }),
			toggleField("Backward links", func(f *playground.Form) *bool { return &f.AllowBackwardsLinks }),
		}
		fs = append(fs, pageFields...)
		return append(fs, outputFields...)
	case protocol.KindMap:
		return []field{
			urlField,
			textField("Search", "filter links", func(f *playground.Form) *string { return &f.MapSearch }),
			toggleField("Subdomains", func(f *playground.Form) *bool { return &f.MapSubdomains }),
			toggleField("Ignore sitemap", func(f *playground.Form) *bool { return &f.MapIgnoreSitemap }),
		}
	case protocol.KindSearch:
		return []field{
			textField("Query", "what to search for", func(f *playground.Form) *string { return &f.Query }),
			numberField("Results", "5", func(f *playground.Form) *string { return &f.SearchLimit }),
			textField("Language", "en", func(f *playground.Form) *string { return &f.Language }),
			textField("Country", "us", func(f *playground.Form) *string { return &f.Country }),
			toggleField("Scrape results", func(f *playground.Form) *bool { return &f.ScrapeContent }),
		}
	default:
		fs := []field{urlField}
		fs = append(fs, pageFields...)
		return append(fs, outputFields...)
	}
}
