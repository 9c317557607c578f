package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sadopc/zencrawl/internal/protocol"
)

// Call is a fully built request for one operation: the endpoint and the
// JSON body. A Call is immutable once built.
type Call struct {
	Kind   protocol.Kind
	Target string
	Path   string
	Body   any
}

// Encode returns the JSON request body.
func (c Call) Encode() ([]byte, error) {
	data, err := json.Marshal(c.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", c.Kind, err)
	}
	return data, nil
}

type scrapeBody struct {
	URL     string        `json:"url"`
	Options ScrapeOptions `json:"options"`
}

type mapBody struct {
	RootURL string `json:"rootUrl"`
	MapOptions
}

type crawlBody struct {
	RootURL string `json:"rootUrl"`
	CrawlOptions
}

type searchBody struct {
	Query string `json:"query"`
	SearchOptions
}

// NewScrapeCall builds a POST /api/scrape call with body {url, options}.
func NewScrapeCall(url string, opts ScrapeOptions) (Call, error) {
	url = strings.TrimSpace(url)
	if err := check(protocol.KindSingle, url, opts); err != nil {
		return Call{}, err
	}
	return Call{
		Kind:   protocol.KindSingle,
		Target: url,
		Path:   protocol.KindSingle.Path(),
		Body:   scrapeBody{URL: url, Options: opts},
	}, nil
}

// NewMapCall builds a POST /api/map call with body {rootUrl, ...options}.
func NewMapCall(rootURL string, opts MapOptions) (Call, error) {
	rootURL = strings.TrimSpace(rootURL)
	if err := check(protocol.KindMap, rootURL, opts); err != nil {
		return Call{}, err
	}
	return Call{
		Kind:   protocol.KindMap,
		Target: rootURL,
		Path:   protocol.KindMap.Path(),
		Body:   mapBody{RootURL: rootURL, MapOptions: opts},
	}, nil
}

// NewCrawlCall builds a POST /api/crawl call with body {rootUrl, ...options}.
func NewCrawlCall(rootURL string, opts CrawlOptions) (Call, error) {
	rootURL = strings.TrimSpace(rootURL)
	if err := check(protocol.KindCrawl, rootURL, opts); err != nil {
		return Call{}, err
	}
	return Call{
		Kind:   protocol.KindCrawl,
		Target: rootURL,
		Path:   protocol.KindCrawl.Path(),
		Body:   crawlBody{RootURL: rootURL, CrawlOptions: opts},
	}, nil
}

// NewSearchCall builds a POST /api/search call with body {query, ...options}.
func NewSearchCall(query string, opts SearchOptions) (Call, error) {
	query = strings.TrimSpace(query)
	if err := check(protocol.KindSearch, query, opts); err != nil {
		return Call{}, err
	}
	return Call{
		Kind:   protocol.KindSearch,
		Target: query,
		Path:   protocol.KindSearch.Path(),
		Body:   searchBody{Query: query, SearchOptions: opts},
	}, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func check(kind protocol.Kind, target string, opts any) error {
	var problems []FieldProblem

	targetField, targetTag := "url", "required,url"
	if kind.TargetsQuery() {
		targetField, targetTag = "query", "required"
	}
	if err := validate.Var(target, targetTag); err != nil {
		problems = append(problems, fieldProblems(err, targetField)...)
	}
	if err := validate.Struct(opts); err != nil {
		problems = append(problems, fieldProblems(err, "")...)
	}

	if len(problems) > 0 {
		return &ValidationError{Fields: problems}
	}
	return nil
}

func fieldProblems(err error, field string) []FieldProblem {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldProblem{{Field: field, Problem: err.Error()}}
	}
	out := make([]FieldProblem, 0, len(verrs))
	for _, fe := range verrs {
		name := field
		if name == "" {
			// drop the struct type prefix
			_, name, _ = strings.Cut(fe.Namespace(), ".")
		}
		out = append(out, FieldProblem{Field: name, Problem: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be an absolute URL"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed " + fe.Tag() + " check"
	}
}
