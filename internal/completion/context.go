package completion

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classify decides whether the text before cursor is completing a field path or a built-in,
// and returns the partial token being typed. cursor is a rune column and is clamped to the
// text.
func Classify(text string, cursor int) (SuggestionContext, string) {
	return classifyBefore(textBefore(text, cursor))
}

func classifyBefore(before string) (SuggestionContext, string) {
	if before == "" {
		return FunctionContext, ""
	}

	runes := []rune(before)
	end := len(runes)
	for end > 0 && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if end == 0 {
		return FunctionContext, ""
	}
	if runes[end-1] == '.' {
		return FieldContext, ""
	}

	start := end
	for start > 0 && !isDelimiter(runes[start-1]) {
		start--
	}
	partial := string(runes[start:end])

	if strings.HasPrefix(partial, ".") {
		return FieldContext, partial[strings.LastIndex(partial, ".")+1:]
	}

	// ". na": whitespace between a dot and the token still means field access.
	j := start
	for j > 0 && unicode.IsSpace(runes[j-1]) {
		j--
	}
	if j > 0 && runes[j-1] == '.' {
		return FieldContext, partial
	}
	return FunctionContext, partial
}

func isDelimiter(r rune) bool {
	switch r {
	case '|', ';', '(', ')', '[', ']', '{', '}', ',', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// PathBeforeField returns the path whose fields are being completed: the text before the
// last dot, cleaned by CleanPath. A dot at offset 0 or no dot at all means the root, "".
//
//	".products.ty"         -> ".products"
//	".services[].service"  -> ".services[]"
//	"map(.items) | .na"    -> ""
func PathBeforeField(before string) string {
	idx := strings.LastIndex(before, ".")
	if idx <= 0 {
		return ""
	}
	return CleanPath(before[:idx])
}

// CleanPath keeps the path expression after the last pipe, open paren or semicolon. Anything
// that does not then start with a dot is not a path and yields "".
func CleanPath(text string) string {
	cut := strings.LastIndexAny(text, "|(;")
	path := strings.TrimSpace(text[cut+1:])
	if path != "" && !strings.HasPrefix(path, ".") {
		return ""
	}
	return path
}

// GetSuggestions computes the suggestion list for the query at cursor. Field context draws
// from fields; function context draws from the built-in catalog. A nil fields source yields
// no field suggestions.
func GetSuggestions(query string, cursor int, fields FieldSource) []Suggestion {
	before := textBefore(query, cursor)
	ctx, partial := classifyBefore(before)

	switch ctx {
	case FieldContext:
		if fields == nil {
			return nil
		}
		return fields.FieldSuggestions(PathBeforeField(before), partial)
	default:
		if partial == "" {
			return nil
		}
		return Builtins().Filter(partial)
	}
}

// textBefore returns text up to rune column cursor, clamped to [0, len].
func textBefore(text string, cursor int) string {
	if cursor <= 0 {
		return ""
	}
	if cursor >= utf8.RuneCountInString(text) {
		return text
	}
	offset := 0
	for i := 0; i < cursor; i++ {
		_, size := utf8.DecodeRuneInString(text[offset:])
		offset += size
	}
	return text[:offset]
}
