// Package jsonindex parses the session document once and answers field questions about it:
// which keys exist anywhere, and which keys are reachable at a given path.
package jsonindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jqi/internal/completion"
)

// ErrNotIndexed is returned by lookups made before a document was analyzed successfully.
var ErrNotIndexed = errors.New("no document indexed")

// Index is a read-only view over one parsed JSON document.
type Index struct {
	root   interface{}
	fields map[string]struct{}
	loaded bool
	log    logr.Logger
}

// New returns an empty index. Until Analyze succeeds every lookup comes back empty.
func New(log logr.Logger) *Index {
	return &Index{log: log.WithName("jsonindex")}
}

// Analyze parses text and replaces the indexed document. On a parse failure the previous
// document stays in place.
func (x *Index) Analyze(text string) error {
	var root interface{}
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		x.log.V(1).Info("analyze failed, keeping previous document", "error", err.Error())
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	fields := make(map[string]struct{})
	collectFields(root, fields)

	x.root = root
	x.fields = fields
	x.loaded = true
	x.log.V(1).Info("document indexed", "fields", len(fields))
	return nil
}

func collectFields(node interface{}, into map[string]struct{}) {
	switch n := node.(type) {
	case map[string]interface{}:
		for k, v := range n {
			into[k] = struct{}{}
			collectFields(v, into)
		}
	case []interface{}:
		for _, v := range n {
			collectFields(v, into)
		}
	}
}

// Root returns the indexed document.
func (x *Index) Root() (interface{}, error) {
	if x == nil || !x.loaded {
		return nil, ErrNotIndexed
	}
	return x.root, nil
}

// AllFields returns every field name found at any depth, sorted.
func (x *Index) AllFields() []string {
	if x == nil {
		return nil
	}
	out := make([]string, 0, len(x.fields))
	for k := range x.fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Resolve walks a dotted path from the root. The leading dot is optional and empty segments
// are skipped. A segment with a bracket suffix ("items[]", "items[0]") steps into the
// first element of that array; only element 0 is ever sampled.
func (x *Index) Resolve(path string) (interface{}, bool) {
	if x == nil || !x.loaded {
		return nil, false
	}
	current := x.root
	for _, segment := range strings.Split(strings.TrimPrefix(path, "."), ".") {
		if segment == "" {
			continue
		}
		name, isArray := segment, false
		if idx := strings.IndexByte(segment, '['); idx >= 0 {
			name, isArray = segment[:idx], true
		}

		// ".[]" on an array root has no field name to look up.
		if name != "" || !isArray {
			obj, ok := current.(map[string]interface{})
			if !ok {
				return nil, false
			}
			if current, ok = obj[name]; !ok {
				return nil, false
			}
		}

		if isArray {
			arr, ok := current.([]interface{})
			if !ok || len(arr) == 0 {
				return nil, false
			}
			current = arr[0]
		}
	}
	return current, true
}

// FieldsAt lists the keys of node whose lowercase form starts with the lowercase prefix,
// as ".key" field suggestions sorted by text. Arrays are sampled through their first
// element; scalars have no fields.
func FieldsAt(node interface{}, prefix string) []completion.Suggestion {
	switch n := node.(type) {
	case map[string]interface{}:
		lower := strings.ToLower(prefix)
		out := make([]completion.Suggestion, 0, len(n))
		for k := range n {
			if strings.HasPrefix(strings.ToLower(k), lower) {
				out = append(out, completion.Suggestion{Text: "." + k, Type: completion.Field})
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Text < out[j].Text })
		return out
	case []interface{}:
		if len(n) == 0 {
			return nil
		}
		return FieldsAt(n[0], prefix)
	default:
		return nil
	}
}

// FieldSuggestions returns the fields available at path that match prefix. An empty path or
// "." means the root. An unresolvable path yields no suggestions.
func (x *Index) FieldSuggestions(path, prefix string) []completion.Suggestion {
	if x == nil || !x.loaded {
		return nil
	}
	if path == "" || path == "." {
		return FieldsAt(x.root, prefix)
	}
	node, ok := x.Resolve(path)
	if !ok {
		x.log.V(2).Info("path not resolved", "path", path)
		return nil
	}
	return FieldsAt(node, prefix)
}
