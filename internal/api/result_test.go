package api

import (
	"testing"

	"github.com/sadopc/zencrawl/internal/protocol"
)

func TestParseResult(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		r, err := ParseResult(protocol.KindSingle, nil)
		if err != nil {
			t.Fatal(err)
		}
		if string(r.Raw) != "{}" || !r.Empty() {
			t.Errorf("expected empty object, got %s", r.Raw)
		}
	})

	t.Run("envelope", func(t *testing.T) {
		r, err := ParseResult(protocol.KindSingle, []byte(`{"success":true,"data":{"markdown":"# Doc","html":"<h1>Doc</h1>","links":["https://a.example",{"url":"https://b.example","text":"B"}]}}`))
		if err != nil {
			t.Fatal(err)
		}
		if r.Markdown != "# Doc" || r.HTML != "<h1>Doc</h1>" {
			t.Errorf("unexpected fields: %+v", r)
		}
		if len(r.Links) != 2 || r.Links[0].URL != "https://a.example" || r.Links[1].Text != "B" {
			t.Errorf("unexpected links: %+v", r.Links)
		}
	})

	t.Run("map list", func(t *testing.T) {
		r, err := ParseResult(protocol.KindMap, []byte(`["https://a.example","https://b.example"]`))
		if err != nil {
			t.Fatal(err)
		}
		if len(r.Links) != 2 || len(r.Items) != 0 {
			t.Errorf("expected two links, got %+v", r)
		}
	})

	t.Run("crawl pages", func(t *testing.T) {
		r, err := ParseResult(protocol.KindCrawl, []byte(`{"data":[{"markdown":"one"},{"markdown":"two"}]}`))
		if err != nil {
			t.Fatal(err)
		}
		if len(r.Items) != 2 || r.Items[1].Markdown != "two" {
			t.Errorf("expected two pages, got %+v", r.Items)
		}
		if r.Items[0].Kind != protocol.KindCrawl {
			t.Errorf("expected items to carry kind, got %q", r.Items[0].Kind)
		}
	})

	t.Run("not json", func(t *testing.T) {
		r, err := ParseResult(protocol.KindSearch, []byte("plain text"))
		if err != nil {
			t.Fatal(err)
		}
		if string(r.Raw) != `"plain text"` {
			t.Errorf("expected quoted body, got %s", r.Raw)
		}
	})
}
