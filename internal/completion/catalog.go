package completion

import (
	"strings"
	"sync"
)

// Catalog categories, in display order.
const (
	CategoryPattern    = "pattern"
	CategoryOperator   = "operator"
	CategoryArray      = "array"
	CategoryObject     = "object"
	CategoryString     = "string"
	CategoryType       = "type"
	CategoryMath       = "math"
	CategoryDate       = "date"
	CategoryFormat     = "format"
	CategoryAdvanced   = "advanced"
	CategoryControl    = "control"
	CategoryAssignment = "assignment"
)

// Catalog is the fixed, order-stable set of jq built-ins offered in function context.
// It is immutable once built and safe to share.
type Catalog struct {
	entries    []Suggestion
	categories []string
	byCategory map[string][]Suggestion
	byText     map[string]int
}

// Builtins returns the shared catalog, building it on first use.
var Builtins = sync.OnceValue(func() *Catalog {
	return newCatalog(builtinSections())
})

type section struct {
	category string
	entries  []Suggestion
}

func newCatalog(sections []section) *Catalog {
	c := &Catalog{
		byCategory: make(map[string][]Suggestion, len(sections)),
		byText:     make(map[string]int),
	}
	for _, s := range sections {
		for _, e := range s.entries {
			// First occurrence wins; later duplicates (values) are dropped.
			if _, dup := c.byText[e.Text]; dup {
				continue
			}
			c.byText[e.Text] = len(c.entries)
			c.entries = append(c.entries, e)
			if len(c.byCategory[s.category]) == 0 {
				c.categories = append(c.categories, s.category)
			}
			c.byCategory[s.category] = append(c.byCategory[s.category], e)
		}
	}
	return c
}

// Filter returns entries whose text starts with prefix, ignoring case, in catalog order.
// An empty prefix matches nothing.
func (c *Catalog) Filter(prefix string) []Suggestion {
	if prefix == "" {
		return nil
	}
	lower := strings.ToLower(prefix)
	var out []Suggestion
	for _, e := range c.entries {
		if strings.HasPrefix(strings.ToLower(e.Text), lower) {
			out = append(out, e)
		}
	}
	return out
}

// All returns a copy of every entry in catalog order.
func (c *Catalog) All() []Suggestion {
	out := make([]Suggestion, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup finds an entry by exact text.
func (c *Catalog) Lookup(text string) (Suggestion, bool) {
	i, ok := c.byText[text]
	if !ok {
		return Suggestion{}, false
	}
	return c.entries[i], true
}

// Categories returns the categories that hold entries, in display order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// ByCategory returns the entries of one category in catalog order.
func (c *Catalog) ByCategory(category string) []Suggestion {
	entries := c.byCategory[category]
	out := make([]Suggestion, len(entries))
	copy(out, entries)
	return out
}

// Size is the number of unique entries.
func (c *Catalog) Size() int {
	return len(c.entries)
}

func fn(text, description string) Suggestion {
	return Suggestion{Text: text, Type: Function, Description: description}
}

func op(text, description string) Suggestion {
	return Suggestion{Text: text, Type: Operator, Description: description}
}

func pattern(text, description string) Suggestion {
	return Suggestion{Text: text, Type: Pattern, Description: description}
}

func builtinSections() []section {
	return []section{
		{CategoryPattern, []Suggestion{
			pattern(".[]", "Iterate over array/object values"),
			pattern(".[0]", "First array element"),
			pattern(".[-1]", "Last array element"),
			pattern("..", "Recursive descent (all values)"),
		}},
		{CategoryOperator, []Suggestion{
			op("|", "Pipe operator"),
			op("//", "Alternative operator (default value)"),
			op("and", "Logical AND"),
			op("or", "Logical OR"),
			op("not", "Logical NOT"),
		}},
		{CategoryArray, []Suggestion{
			fn("map", "Apply expression to each element"),
			fn("select", "Filter elements by condition"),
			fn("sort", "Sort array"),
			fn("sort_by", "Sort array by expression"),
			fn("reverse", "Reverse array"),
			fn("unique", "Remove duplicate values"),
			fn("unique_by", "Remove duplicates by expression"),
			fn("group_by", "Group array elements by expression"),
			fn("flatten", "Flatten nested arrays"),
			fn("add", "Sum array elements or concatenate"),
			fn("length", "Length of array/object/string"),
			fn("first", "First element"),
			fn("last", "Last element"),
			fn("nth", "Nth element"),
			fn("indices", "Find all indices of value"),
			fn("index", "Find first index of value"),
			fn("rindex", "Find last index of value"),
			fn("inside", "Check if element is inside array"),
			fn("contains", "Check if contains value"),
			fn("startswith", "Check if starts with value"),
			fn("endswith", "Check if ends with value"),
			fn("limit", "Limit output count"),
			fn("range", "Generate range"),
			fn("min", "Minimum value"),
			fn("max", "Maximum value"),
			fn("min_by", "Minimum by expression"),
			fn("max_by", "Maximum by expression"),
		}},
		{CategoryObject, []Suggestion{
			fn("keys", "Get object keys or array indices"),
			fn("keys_unsorted", "Get object keys (unsorted)"),
			fn("values", "Get all values"),
			fn("to_entries", "Convert object to key-value pairs"),
			fn("from_entries", "Convert key-value pairs to object"),
			fn("with_entries", "Transform object entries"),
			fn("has", "Check if key exists"),
			fn("in", "Check if value is in object"),
			fn("del", "Delete key/path"),
			fn("getpath", "Get value at path"),
			fn("setpath", "Set value at path"),
			fn("delpaths", "Delete multiple paths"),
			fn("paths", "Get all paths (leaf paths)"),
			fn("leaf_paths", "Get all leaf paths"),
		}},
		{CategoryString, []Suggestion{
			fn("tostring", "Convert to string"),
			fn("tonumber", "Convert to number"),
			fn("split", "Split string by delimiter"),
			fn("join", "Join array with delimiter"),
			fn("ltrimstr", "Remove prefix string"),
			fn("rtrimstr", "Remove suffix string"),
			fn("ascii_downcase", "Convert to lowercase"),
			fn("ascii_upcase", "Convert to uppercase"),
			fn("test", "Test regex match"),
			fn("match", "Match regex"),
			fn("capture", "Capture regex groups"),
			fn("scan", "Scan for all regex matches"),
			fn("splits", "Split by regex"),
			fn("sub", "Replace first regex match"),
			fn("gsub", "Replace all regex matches"),
		}},
		{CategoryType, []Suggestion{
			fn("type", "Get value type"),
			fn("arrays", "Select arrays"),
			fn("objects", "Select objects"),
			fn("iterables", "Select arrays/objects"),
			fn("booleans", "Select booleans"),
			fn("numbers", "Select numbers"),
			fn("strings", "Select strings"),
			fn("nulls", "Select nulls"),
			fn("values", "Select non-null values"),
			fn("scalars", "Select non-iterable values"),
		}},
		{CategoryMath, []Suggestion{
			fn("floor", "Round down"),
			fn("ceil", "Round up"),
			fn("round", "Round to nearest"),
			fn("sqrt", "Square root"),
			fn("abs", "Absolute value"),
		}},
		{CategoryDate, []Suggestion{
			fn("now", "Current Unix timestamp"),
			fn("fromdateiso8601", "Parse ISO8601 date"),
			fn("todateiso8601", "Format as ISO8601 date"),
			fn("fromdate", "Parse date string"),
			fn("todate", "Format date"),
			fn("strftime", "Format timestamp"),
			fn("strptime", "Parse timestamp"),
		}},
		{CategoryFormat, []Suggestion{
			fn("@json", "Format as JSON string"),
			fn("@uri", "URL encode"),
			fn("@csv", "Format as CSV"),
			fn("@tsv", "Format as TSV"),
			fn("@html", "HTML encode"),
			fn("@base64", "Base64 encode"),
			fn("@base64d", "Base64 decode"),
		}},
		{CategoryAdvanced, []Suggestion{
			fn("recurse", "Apply recursively"),
			fn("walk", "Apply to all values recursively"),
			fn("transpose", "Transpose matrix"),
			fn("until", "Repeat until condition"),
			fn("while", "Repeat while condition"),
			fn("repeat", "Repeat expression infinitely"),
			fn("env", "Access environment variables"),
			fn("$ENV", "Environment object"),
			fn("error", "Raise error"),
			fn("empty", "Produce no output"),
		}},
		{CategoryControl, []Suggestion{
			fn("if", "Conditional expression"),
			fn("then", "Then clause"),
			fn("else", "Else clause"),
			fn("elif", "Else-if clause"),
			fn("end", "End block"),
		}},
		{CategoryAssignment, []Suggestion{
			fn("as", "Bind variable"),
			op("|=", "Update assignment"),
			op("+=", "Addition assignment"),
			op("-=", "Subtraction assignment"),
			op("*=", "Multiplication assignment"),
			op("/=", "Division assignment"),
			op("//=", "Alternative assignment"),
		}},
	}
}
