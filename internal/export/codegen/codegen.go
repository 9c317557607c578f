// Package codegen produces runnable snippets that reproduce an API call.
package codegen

import (
	"fmt"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/sadopc/zencrawl/internal/export"
)

// Language represents a target programming language.
type Language string

const (
	LangCurl       Language = "curl"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangGo         Language = "go"
)

// Languages returns all supported languages.
func Languages() []Language {
	return []Language{LangCurl, LangPython, LangJavaScript, LangGo}
}

// ParseLanguage accepts a language name or a common alias.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "curl", "sh", "shell":
		return LangCurl, nil
	case "python", "py":
		return LangPython, nil
	case "javascript", "js", "node":
		return LangJavaScript, nil
	case "go", "golang":
		return LangGo, nil
	}
	return "", fmt.Errorf("unsupported language: %s", s)
}

// Generate generates a code snippet for the request in the given language.
func Generate(req export.Request, lang Language) (string, error) {
	switch lang {
	case LangCurl:
		return generateCurl(req), nil
	case LangPython:
		return generatePython(req), nil
	case LangJavaScript:
		return generateJavaScript(req), nil
	case LangGo:
		return generateGo(req), nil
	default:
		return "", fmt.Errorf("unsupported language: %s", lang)
	}
}

func indentedBody(req export.Request) string {
	return strings.TrimRight(string(pretty.Pretty(req.Body)), "\n")
}

func generateCurl(req export.Request) string {
	var parts []string
	parts = append(parts, "curl -X "+req.Method)
	for _, k := range export.SortedKeys(req.Headers) {
		parts = append(parts, fmt.Sprintf("-H '%s: %s'", k, req.Headers[k]))
	}
	if len(req.Body) > 0 {
		body := strings.ReplaceAll(indentedBody(req), "'", "'\\''")
		parts = append(parts, fmt.Sprintf("-d '%s'", body))
	}
	parts = append(parts, fmt.Sprintf("'%s'", req.URL))
	return strings.Join(parts, " \\\n  ") + "\n"
}

func generatePython(req export.Request) string {
	var b strings.Builder

	b.WriteString("import json\n")
	b.WriteString("import requests\n\n")

	if len(req.Headers) > 0 {
		b.WriteString("headers = {\n")
		for _, k := range export.SortedKeys(req.Headers) {
			fmt.Fprintf(&b, "    %q: %q,\n", k, req.Headers[k])
		}
		b.WriteString("}\n\n")
	}

	args := fmt.Sprintf("%q", req.URL)
	if len(req.Headers) > 0 {
		args += ", headers=headers"
	}
	if len(req.Body) > 0 {
		fmt.Fprintf(&b, "payload = json.loads('''%s''')\n\n", indentedBody(req))
		args += ", json=payload"
	}

	fmt.Fprintf(&b, "response = requests.%s(%s)\n", strings.ToLower(req.Method), args)
	b.WriteString("response.raise_for_status()\n")
	b.WriteString("print(json.dumps(response.json(), indent=2))\n")
	return b.String()
}

func generateJavaScript(req export.Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "const response = await fetch(%q, {\n", req.URL)
	fmt.Fprintf(&b, "  method: %q,\n", req.Method)
	if len(req.Headers) > 0 {
		b.WriteString("  headers: {\n")
		for _, k := range export.SortedKeys(req.Headers) {
			fmt.Fprintf(&b, "    %q: %q,\n", k, req.Headers[k])
		}
		b.WriteString("  },\n")
	}
	if len(req.Body) > 0 {
		body := strings.ReplaceAll(indentedBody(req), "\n", "\n  ")
		fmt.Fprintf(&b, "  body: JSON.stringify(%s),\n", body)
	}
	b.WriteString("});\n\n")
	b.WriteString("if (!response.ok) {\n")
	b.WriteString("  const { error } = await response.json();\n")
	b.WriteString("  throw new Error(error ?? `Request failed with status code ${response.status}`);\n")
	b.WriteString("}\n")
	b.WriteString("console.log(await response.json());\n")
	return b.String()
}

func generateGo(req export.Request) string {
	var b strings.Builder
	hasBody := len(req.Body) > 0

	b.WriteString("package main\n\n")
	b.WriteString("import (\n")
	b.WriteString("\t\"fmt\"\n")
	b.WriteString("\t\"io\"\n")
	b.WriteString("\t\"net/http\"\n")
	if hasBody {
		b.WriteString("\t\"strings\"\n")
	}
	b.WriteString(")\n\n")
	b.WriteString("func main() {\n")

	if hasBody {
		fmt.Fprintf(&b, "\tbody := strings.NewReader(`%s`)\n", strings.ReplaceAll(indentedBody(req), "`", "`+\"`\"+`"))
		fmt.Fprintf(&b, "\treq, err := http.NewRequest(%q, %q, body)\n", req.Method, req.URL)
	} else {
		fmt.Fprintf(&b, "\treq, err := http.NewRequest(%q, %q, nil)\n", req.Method, req.URL)
	}
	b.WriteString("\tif err != nil {\n\t\tpanic(err)\n\t}\n")
	for _, k := range export.SortedKeys(req.Headers) {
		fmt.Fprintf(&b, "\treq.Header.Set(%q, %q)\n", k, req.Headers[k])
	}
	b.WriteString("\n")

	b.WriteString("\tresp, err := http.DefaultClient.Do(req)\n")
	b.WriteString("\tif err != nil {\n\t\tpanic(err)\n\t}\n")
	b.WriteString("\tdefer resp.Body.Close()\n\n")
	b.WriteString("\tdata, _ := io.ReadAll(resp.Body)\n")
	b.WriteString("\tfmt.Println(resp.Status)\n")
	b.WriteString("\tfmt.Println(string(data))\n")
	b.WriteString("}\n")
	return b.String()
}
