package protocol

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"single", KindSingle, false},
		{"scrape", KindSingle, false},
		{" Crawl ", KindCrawl, false},
		{"map", KindMap, false},
		{"SEARCH", KindSearch, false},
		{"extract", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKindPaths(t *testing.T) {
	want := map[Kind]string{
		KindSingle: "/api/scrape",
		KindCrawl:  "/api/crawl",
		KindMap:    "/api/map",
		KindSearch: "/api/search",
	}
	for k, path := range want {
		if got := k.Path(); got != path {
			t.Errorf("%s.Path() = %q, want %q", k, got, path)
		}
		if !k.Valid() {
			t.Errorf("%s.Valid() = false", k)
		}
	}
	if Kind("bogus").Valid() {
		t.Error("bogus kind should not be valid")
	}
	if !KindSearch.TargetsQuery() || KindMap.TargetsQuery() {
		t.Error("only search should target a query")
	}
}
