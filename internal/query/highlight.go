package query

import (
	"bytes"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Highlight colors rendered result text for a 256-color terminal. Unknown styles fall back to
// DefaultStyle; any highlighting failure returns the text unchanged.
func Highlight(text string, format Format, style string) string {
	if text == "" {
		return text
	}
	if style == "" || styles.Get(style) == styles.Fallback {
		style = DefaultStyle
	}
	lexer := "json"
	if format == FormatYAML {
		lexer = "yaml"
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, text, lexer, "terminal256", style); err != nil {
		return text
	}
	return buf.String()
}
