package completion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type fakeFields struct {
	calls []string
	out   []Suggestion
}

func (f *fakeFields) FieldSuggestions(path, prefix string) []Suggestion {
	f.calls = append(f.calls, path+"|"+prefix)
	return f.out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		cursor      int
		wantCtx     SuggestionContext
		wantPartial string
	}{
		{name: "empty", text: "", cursor: 0, wantCtx: FunctionContext},
		{name: "whitespace only", text: "   ", cursor: 3, wantCtx: FunctionContext},
		{name: "function", text: "ma", cursor: 2, wantCtx: FunctionContext, wantPartial: "ma"},
		{name: "full function name", text: "select", cursor: 6, wantCtx: FunctionContext, wantPartial: "select"},
		{name: "field", text: ".na", cursor: 3, wantCtx: FieldContext, wantPartial: "na"},
		{name: "just dot", text: ".", cursor: 1, wantCtx: FieldContext},
		{name: "dot then space", text: ". ", cursor: 2, wantCtx: FieldContext},
		{name: "after pipe", text: ".name | ma", cursor: 10, wantCtx: FunctionContext, wantPartial: "ma"},
		{name: "nested field", text: ".user.na", cursor: 8, wantCtx: FieldContext, wantPartial: "na"},
		{name: "array access", text: ".items[0].na", cursor: 12, wantCtx: FieldContext, wantPartial: "na"},
		{name: "inside call", text: "map(.na", cursor: 7, wantCtx: FieldContext, wantPartial: "na"},
		{name: "dot separated by space", text: ". na", cursor: 4, wantCtx: FieldContext, wantPartial: "na"},
		{name: "cursor mid token", text: ".name | select", cursor: 10, wantCtx: FunctionContext, wantPartial: "se"},
		{name: "cursor past end clamps", text: "ke", cursor: 99, wantCtx: FunctionContext, wantPartial: "ke"},
		{name: "negative cursor", text: "ke", cursor: -1, wantCtx: FunctionContext},
		{name: "multibyte text", text: ".名前.fi", cursor: 6, wantCtx: FieldContext, wantPartial: "fi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, partial := Classify(tt.text, tt.cursor)
			assert.Equal(t, tt.wantCtx, ctx)
			assert.Equal(t, tt.wantPartial, partial)
		})
	}
}

func TestPathBeforeField(t *testing.T) {
	tests := map[string]string{
		".":                   "",
		".na":                 "",
		"na":                  "",
		".products.ty":        ".products",
		".services.items.":    ".services.items",
		".services[].service": ".services[]",
		".items[0].na":        ".items[0]",
		"map(.items | .na":    "",
		"map(.items.na":       ".items",
		".a | keys | .b.c":    ".b",
	}
	for before, want := range tests {
		assert.Equal(t, want, PathBeforeField(before), before)
	}
}

func TestCleanPath(t *testing.T) {
	tests := map[string]string{
		"":                          "",
		".products":                 ".products",
		"map(.items) | .products":   ".products",
		"  .a.b  ":                  ".a.b",
		"select(.x":                 ".x",
		"reduce .[] as $x (0; .acc": ".acc",
		"keys":                      "",
	}
	for text, want := range tests {
		assert.Equal(t, want, CleanPath(text), text)
	}
}

func TestGetSuggestions(t *testing.T) {
	t.Run("field context asks the field source", func(t *testing.T) {
		fields := &fakeFields{out: []Suggestion{{Text: ".type", Type: Field}}}
		got := GetSuggestions(".products.ty", 12, fields)
		assert.Equal(t, []string{".products|ty"}, fields.calls)
		if diff := cmp.Diff([]Suggestion{{Text: ".type", Type: Field}}, got); diff != "" {
			t.Errorf("GetSuggestions() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("root field context", func(t *testing.T) {
		fields := &fakeFields{}
		GetSuggestions(".", 1, fields)
		assert.Equal(t, []string{"|"}, fields.calls)
	})

	t.Run("nil field source", func(t *testing.T) {
		assert.Empty(t, GetSuggestions(".na", 3, nil))
	})

	t.Run("function context filters the catalog", func(t *testing.T) {
		fields := &fakeFields{}
		got := GetSuggestions(".a | sel", 8, fields)
		assert.Empty(t, fields.calls)
		assert.Equal(t, []Suggestion{{Text: "select", Type: Function, Description: "Filter elements by condition"}}, got)
	})

	t.Run("empty function partial", func(t *testing.T) {
		assert.Empty(t, GetSuggestions(".a | ", 5, &fakeFields{}))
	})
}
