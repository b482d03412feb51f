package jsonindex

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jqi/internal/completion"
)

const sampleDoc = `{
  "services": {"items": [{"service": {"name": "api"}, "port": 80}]},
  "products": {"type": "xyz", "sku": "123"},
  "Owner": "ops",
  "empty": []
}`

func texts(suggestions []completion.Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Text)
	}
	return out
}

func newIndex(t *testing.T, doc string) *Index {
	t.Helper()
	x := New(logr.Discard())
	require.NoError(t, x.Analyze(doc))
	return x
}

func TestAnalyze(t *testing.T) {
	x := newIndex(t, sampleDoc)
	assert.Equal(t,
		[]string{"Owner", "empty", "items", "name", "port", "products", "service", "services", "sku", "type"},
		x.AllFields())
}

func TestAnalyzeFailureKeepsPreviousDocument(t *testing.T) {
	x := newIndex(t, `{"a": {"b": 1}}`)

	err := x.Analyze(`{"broken": `)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")

	assert.Equal(t, []string{"a", "b"}, x.AllFields())
	assert.Equal(t, []string{".b"}, texts(x.FieldSuggestions(".a", "")))
}

func TestEmptyIndex(t *testing.T) {
	x := New(logr.Discard())
	assert.Empty(t, x.FieldSuggestions("", ""))
	assert.Empty(t, x.AllFields())
	_, ok := x.Resolve(".a")
	assert.False(t, ok)
	_, err := x.Root()
	assert.ErrorIs(t, err, ErrNotIndexed)

	var nilIndex *Index
	assert.Empty(t, nilIndex.FieldSuggestions(".", "a"))
}

func TestFieldSuggestions(t *testing.T) {
	x := newIndex(t, `{"services":{"items":[]},"products":{"type":"xyz","sku":"123"}}`)

	tests := []struct {
		name   string
		path   string
		prefix string
		want   []string
	}{
		{name: "root fields", path: "", prefix: "", want: []string{".products", ".services"}},
		{name: "root as dot", path: ".", prefix: "", want: []string{".products", ".services"}},
		{name: "nested fields sorted", path: ".products", prefix: "", want: []string{".sku", ".type"}},
		{name: "prefix filter", path: ".products", prefix: "ty", want: []string{".type"}},
		{name: "prefix ignores case", path: ".products", prefix: "SK", want: []string{".sku"}},
		{name: "empty array", path: ".services.items[]", prefix: "", want: []string{}},
		{name: "missing path", path: ".nope", prefix: "", want: []string{}},
		{name: "scalar", path: ".products.sku", prefix: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, texts(x.FieldSuggestions(tt.path, tt.prefix)))
		})
	}

	t.Run("sibling fields excluded", func(t *testing.T) {
		got := texts(x.FieldSuggestions(".products", ""))
		assert.NotContains(t, got, ".items")
		assert.NotContains(t, got, ".services")
	})
}

func TestFieldSuggestionsAreFieldType(t *testing.T) {
	x := newIndex(t, sampleDoc)
	want := []completion.Suggestion{
		{Text: ".sku", Type: completion.Field},
		{Text: ".type", Type: completion.Field},
	}
	if diff := cmp.Diff(want, x.FieldSuggestions(".products", "")); diff != "" {
		t.Errorf("FieldSuggestions() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	x := newIndex(t, sampleDoc)

	tests := []struct {
		name   string
		path   string
		wantOK bool
		want   interface{}
	}{
		{name: "leading dot optional", path: "products.type", wantOK: true, want: "xyz"},
		{name: "array step", path: ".services.items[].port", wantOK: true, want: float64(80)},
		{name: "indexed array step samples first", path: ".services.items[3].service.name", wantOK: true, want: "api"},
		{name: "double dots skipped", path: "..products..sku", wantOK: true, want: "123"},
		{name: "missing key", path: ".products.price", wantOK: false},
		{name: "index into scalar", path: ".Owner.x", wantOK: false},
		{name: "empty array", path: ".empty[]", wantOK: false},
		{name: "array step on object", path: ".products[]", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := x.Resolve(tt.path)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveArrayRoot(t *testing.T) {
	x := newIndex(t, `[{"id": 1, "tags": ["a"]}]`)
	assert.Equal(t, []string{".id", ".tags"}, texts(x.FieldSuggestions("", "")))
	assert.Equal(t, []string{".id", ".tags"}, texts(x.FieldSuggestions(".[]", "")))
	assert.Empty(t, x.FieldSuggestions(".[].tags[]", ""))
}

func TestFieldsAt(t *testing.T) {
	node := map[string]interface{}{"beta": 1, "alpha": 2, "Alps": 3}
	assert.Equal(t, []string{".Alps", ".alpha"}, texts(FieldsAt(node, "al")))
	assert.Equal(t, []string{".alpha"}, texts(FieldsAt([]interface{}{map[string]interface{}{"alpha": 1}}, "")))
	assert.Empty(t, FieldsAt("scalar", ""))
	assert.Empty(t, FieldsAt([]interface{}{}, ""))
}
