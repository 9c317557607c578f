// Package render turns an extraction result into the text of one of
// the result views.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/pretty"

	"github.com/sadopc/zencrawl/internal/api"
)

// View is one of the result tabs.
type View int

const (
	Preview View = iota
	JSON
	Markdown
	HTML
)

// Views lists the result tabs in display order.
var Views = []View{Preview, JSON, Markdown, HTML}

func (v View) String() string {
	switch v {
	case Preview:
		return "Preview"
	case JSON:
		return "JSON"
	case Markdown:
		return "Markdown"
	case HTML:
		return "HTML"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// ParseView parses a view name as used by the --output flag. "text" is
// accepted for Preview.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preview", "text", "":
		return Preview, nil
	case "json":
		return JSON, nil
	case "markdown", "md":
		return Markdown, nil
	case "html":
		return HTML, nil
	}
	return Preview, fmt.Errorf("unknown output %q (want text, json, markdown or html)", s)
}

const (
	NoMarkdown = "No markdown content available"
	NoHTML     = "No HTML content available"
	NoPreview  = "No preview available"
)

var (
	sanitizer   = bluemonday.UGCPolicy()
	mdConverter = converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
)

// Text returns the unstyled content of view v for r.
func Text(r *api.Result, v View) string {
	if r == nil {
		return ""
	}
	switch v {
	case JSON:
		return strings.TrimRight(string(pretty.Pretty(r.Raw)), "\n")
	case Markdown:
		if md := collect(r, func(d *api.Result) string { return d.Markdown }); md != "" {
			return md
		}
		return NoMarkdown
	case HTML:
		if html := collect(r, func(d *api.Result) string { return d.HTML }); html != "" {
			return html
		}
		return NoHTML
	default:
		return preview(r)
	}
}

// Lexer returns the chroma lexer name for the content of view v.
func Lexer(v View) string {
	switch v {
	case JSON:
		return "json"
	case HTML:
		return "html"
	default:
		return "markdown"
	}
}

// collect joins field over r and its items, separated by rules.
func collect(r *api.Result, field func(*api.Result) string) string {
	var parts []string
	if s := strings.TrimSpace(field(r)); s != "" {
		parts = append(parts, s)
	}
	for i := range r.Items {
		if s := strings.TrimSpace(field(&r.Items[i])); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n---\n\n")
}

func preview(r *api.Result) string {
	var b strings.Builder

	if body := documentPreview(r, ""); body != "" {
		b.WriteString(body)
	}

	for i := range r.Items {
		item := &r.Items[i]
		if b.Len() > 0 {
			b.WriteString("\n\n---\n\n")
		}
		b.WriteString("## " + itemTitle(item, i) + "\n\n")
		if body := documentPreview(item, sourceURL(item)); body != "" {
			b.WriteString(body)
		} else {
			b.WriteString("_" + NoPreview + "_")
		}
	}

	if len(r.Links) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(linkList(r))
	}

	if r.Screenshot != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Screenshot: " + r.Screenshot)
	}

	// nothing displayable: show the body itself
	if b.Len() == 0 {
		return Text(r, JSON)
	}
	if meta := metadata(r.Metadata); meta != "" {
		b.WriteString("\n\n")
		b.WriteString(meta)
	}
	return b.String()
}

// documentPreview prefers markdown and falls back to the HTML, sanitized
// and converted to markdown.
func documentPreview(r *api.Result, domain string) string {
	if md := strings.TrimSpace(r.Markdown); md != "" {
		return md
	}
	if strings.TrimSpace(r.HTML) != "" {
		return HTMLToMarkdown(r.HTML, domain)
	}
	return strings.TrimSpace(r.Description)
}

// HTMLToMarkdown sanitizes html and converts it to markdown. Relative
// links are resolved against domain when it is set. If conversion fails
// the sanitized HTML is returned.
func HTMLToMarkdown(html, domain string) string {
	clean := sanitizer.Sanitize(html)
	var opts []converter.ConvertOptionFunc
	if domain != "" {
		opts = append(opts, converter.WithDomain(domain))
	}
	md, err := mdConverter.ConvertString(clean, opts...)
	if err != nil {
		return clean
	}
	return strings.TrimSpace(md)
}

func linkList(r *api.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s found\n", humanize.Comma(int64(len(r.Links))), plural(len(r.Links), "link", "links"))
	for _, l := range r.Links {
		b.WriteString("\n- ")
		if l.Text != "" {
			fmt.Fprintf(&b, "[%s](%s)", l.Text, l.URL)
		} else {
			b.WriteString(l.URL)
		}
	}
	return b.String()
}

func metadata(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Metadata")
	for _, k := range keys {
		switch v := m[k].(type) {
		case string, float64, bool:
			fmt.Fprintf(&b, "\n  %s: %v", k, v)
		}
	}
	return b.String()
}

func itemTitle(r *api.Result, i int) string {
	if r.Title != "" {
		return r.Title
	}
	if t, ok := r.Metadata["title"].(string); ok && t != "" {
		return t
	}
	if u := sourceURL(r); u != "" {
		return u
	}
	return fmt.Sprintf("Result %d", i+1)
}

func sourceURL(r *api.Result) string {
	if r.URL != "" {
		return r.URL
	}
	for _, k := range []string{"sourceURL", "sourceUrl", "url"} {
		if u, ok := r.Metadata[k].(string); ok && u != "" {
			return u
		}
	}
	return ""
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
