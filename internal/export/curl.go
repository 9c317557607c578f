package export

import (
	"fmt"
	"sort"
	"strings"
)

// AsCurl converts a request to a single-line curl command.
func AsCurl(req Request) string {
	var parts []string
	parts = append(parts, "curl")

	if req.Method != "" && req.Method != "GET" {
		parts = append(parts, "-X", req.Method)
	}

	for _, k := range SortedKeys(req.Headers) {
		parts = append(parts, "-H", quote(k+": "+req.Headers[k]))
	}

	if len(req.Body) > 0 {
		parts = append(parts, "-d", quote(string(req.Body)))
	}

	parts = append(parts, quote(req.URL))
	return strings.Join(parts, " ")
}

func quote(s string) string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(s, "'", "'\\''"))
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
