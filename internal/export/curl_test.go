package export

import (
	"strings"
	"testing"

	"github.com/sadopc/zencrawl/internal/api"
)

func TestAsCurl(t *testing.T) {
	req := Request{
		Method:  "POST",
		URL:     "http://localhost:3000/api/scrape",
		Headers: map[string]string{"Content-Type": "application/json", "Accept": "application/json"},
		Body:    []byte(`{"url":"https://example.com"}`),
	}

	result := AsCurl(req)
	if !strings.HasPrefix(result, "curl -X POST") {
		t.Errorf("expected POST curl, got %s", result)
	}
	if !strings.Contains(result, "-d '{\"url\":\"https://example.com\"}'") {
		t.Error("should contain body")
	}
	if strings.Index(result, "Accept") > strings.Index(result, "Content-Type") {
		t.Error("headers should be sorted")
	}
	if !strings.HasSuffix(result, "'http://localhost:3000/api/scrape'") {
		t.Error("should end with URL")
	}
}

func TestAsCurl_QuoteEscaping(t *testing.T) {
	result := AsCurl(Request{Method: "POST", URL: "http://x", Body: []byte(`{"query":"it's"}`)})
	if !strings.Contains(result, `it'\''s`) {
		t.Errorf("single quote should be escaped, got %s", result)
	}
}

func TestFromCall(t *testing.T) {
	client := api.New("https://api.example.com")
	call, err := api.NewSearchCall("golang", api.SearchOptions{Num: 5})
	if err != nil {
		t.Fatal(err)
	}

	req, err := FromCall(client, call)
	if err != nil {
		t.Fatal(err)
	}
	if req.URL != "https://api.example.com/api/search" {
		t.Errorf("unexpected URL %s", req.URL)
	}
	if _, ok := req.Headers["User-Agent"]; ok {
		t.Error("User-Agent should be omitted")
	}
	if !strings.Contains(string(req.Body), `"query":"golang"`) {
		t.Errorf("unexpected body %s", req.Body)
	}
}
