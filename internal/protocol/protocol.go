package protocol

import (
	"fmt"
	"strings"
)

// Kind is the operation kind of an extraction attempt. It selects the
// request shape and the endpoint.
type Kind string

const (
	KindSingle Kind = "single"
	KindCrawl  Kind = "crawl"
	KindMap    Kind = "map"
	KindSearch Kind = "search"
)

// Kinds lists every operation kind in playground tab order.
var Kinds = []Kind{KindSingle, KindCrawl, KindMap, KindSearch}

// ParseKind parses a kind name. "scrape" is accepted for KindSingle.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "scrape":
		return KindSingle, nil
	case "crawl":
		return KindCrawl, nil
	case "map":
		return KindMap, nil
	case "search":
		return KindSearch, nil
	}
	return "", fmt.Errorf("unknown operation kind %q", s)
}

// Valid reports whether k is one of the four known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSingle, KindCrawl, KindMap, KindSearch:
		return true
	}
	return false
}

// Label returns the display name used in tabs and history.
func (k Kind) Label() string {
	switch k {
	case KindSingle:
		return "Single URL"
	case KindCrawl:
		return "Crawl"
	case KindMap:
		return "Map"
	case KindSearch:
		return "Search"
	default:
		return string(k)
	}
}

// Path returns the API endpoint path for the kind.
func (k Kind) Path() string {
	switch k {
	case KindSingle:
		return "/api/scrape"
	case KindCrawl:
		return "/api/crawl"
	case KindMap:
		return "/api/map"
	case KindSearch:
		return "/api/search"
	default:
		return ""
	}
}

// TargetsQuery reports whether the kind's target is a search query
// rather than a URL.
func (k Kind) TargetsQuery() bool {
	return k == KindSearch
}
