package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sadopc/zencrawl/internal/protocol"
)

// Result is the parsed body of a successful call. The known optional
// fields are decoded; the full body is kept verbatim in Raw.
type Result struct {
	Kind       protocol.Kind
	Markdown   string
	HTML       string
	Links      []Link
	Metadata   map[string]any
	Screenshot string
	// Title, URL and Description are set on search hits.
	Title       string
	URL         string
	Description string
	// Items holds per-page documents for crawl and search bodies that
	// carry a list.
	Items []Result
	Raw   json.RawMessage
}

// Empty reports whether none of the displayable fields are set.
func (r *Result) Empty() bool {
	return r.Markdown == "" && r.HTML == "" && len(r.Links) == 0 &&
		r.Screenshot == "" && len(r.Items) == 0 && len(r.Metadata) == 0 &&
		r.Title == "" && r.URL == "" && r.Description == ""
}

// Link is a discovered link. The service sends either a bare URL string
// or an object with url and text.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text,omitempty"`
}

func (l *Link) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &l.URL)
	}
	type plain Link
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*l = Link(p)
	return nil
}

type document struct {
	Markdown   string          `json:"markdown"`
	HTML       string          `json:"html"`
	Content    string          `json:"content"`
	Links      []Link          `json:"links"`
	Metadata   map[string]any  `json:"metadata"`
	Screenshot string          `json:"screenshot"`
	Title      string          `json:"title"`
	URL        string          `json:"url"`
	Desc       string          `json:"description"`
	Data       json.RawMessage `json:"data"`
	Results    json.RawMessage `json:"results"`
}

// ParseResult decodes a response body for the given operation kind.
// An empty body decodes to an empty object; a body that is not JSON is
// kept as a JSON string.
func ParseResult(kind protocol.Kind, body []byte) (*Result, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte(`{}`)
	}
	if !json.Valid(body) {
		quoted, err := json.Marshal(string(body))
		if err != nil {
			return nil, fmt.Errorf("encoding response body: %w", err)
		}
		return &Result{Kind: kind, Raw: quoted}, nil
	}

	r := &Result{Kind: kind, Raw: json.RawMessage(body)}
	if err := r.fill(body); err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", kind, err)
	}
	return r, nil
}

func (r *Result) fill(data []byte) error {
	switch data[0] {
	case '[':
		return r.fillList(data)
	case '{':
	default:
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Markdown == "" {
		doc.Markdown = doc.Content
	}
	if doc.Markdown != "" {
		r.Markdown = doc.Markdown
	}
	if doc.HTML != "" {
		r.HTML = doc.HTML
	}
	if doc.Screenshot != "" {
		r.Screenshot = doc.Screenshot
	}
	if doc.Title != "" {
		r.Title = doc.Title
	}
	if doc.URL != "" {
		r.URL = doc.URL
	}
	if doc.Desc != "" {
		r.Description = doc.Desc
	}
	if doc.Metadata != nil {
		r.Metadata = doc.Metadata
	}
	r.Links = append(r.Links, doc.Links...)

	// envelope bodies: {success, data: {...}} or {data: [...]}
	for _, nested := range []json.RawMessage{doc.Data, doc.Results} {
		nested = bytes.TrimSpace(nested)
		if len(nested) == 0 || bytes.Equal(nested, []byte("null")) {
			continue
		}
		if err := r.fill(nested); err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) fillList(data []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}
	for _, e := range elems {
		e = bytes.TrimSpace(e)
		if len(e) == 0 {
			continue
		}
		// a list of bare URLs is a map result
		if e[0] == '"' {
			var l Link
			if err := json.Unmarshal(e, &l); err != nil {
				return err
			}
			r.Links = append(r.Links, l)
			continue
		}
		item := Result{Kind: r.Kind, Raw: e}
		if err := item.fill(e); err != nil {
			return err
		}
		r.Items = append(r.Items, item)
	}
	return nil
}
