package render

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/sadopc/zencrawl/internal/api"
)

// Highlight applies chroma syntax highlighting for a terminal. On any
// failure the source is returned unchanged.
func Highlight(source, lexerName string) string {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get("monokai")
	if style == nil {
		style = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return buf.String()
}

// Styled returns the highlighted content of view v for r. Placeholder
// texts are returned unhighlighted.
func Styled(r *api.Result, v View) string {
	text := Text(r, v)
	switch text {
	case "", NoMarkdown, NoHTML, NoPreview:
		return text
	}
	return Highlight(text, Lexer(v))
}
