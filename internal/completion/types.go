//revive:disable:exported
package completion

// SuggestionType tags where a suggestion came from and how it renders in the popup.
type SuggestionType int

const (
	Field    SuggestionType = iota // Document field path, ".name"
	Function                       // Query-language built-in
	Operator                       // Pipe, alternative, logic and assignment operators
	Pattern                        // Path patterns such as ".[]" and ".."
)

func (t SuggestionType) String() string {
	switch t {
	case Field:
		return "field"
	case Function:
		return "function"
	case Operator:
		return "operator"
	case Pattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// Suggestion is a single autocomplete entry. Two suggestions are the same entry when their
// Text matches.
type Suggestion struct {
	Text        string         // Text that replaces the query when accepted
	Type        SuggestionType // Kind of entry
	Description string         // One-line help shown next to the entry
}

// SuggestionContext says which source a refresh draws from.
type SuggestionContext int

const (
	FunctionContext SuggestionContext = iota // Built-ins, operators and patterns
	FieldContext                             // Field paths from the document
)

func (c SuggestionContext) String() string {
	if c == FieldContext {
		return "field"
	}
	return "function"
}

// FieldSource resolves field suggestions for a path into the document.
type FieldSource interface {
	FieldSuggestions(path, prefix string) []Suggestion
}

//revive:enable:exported
