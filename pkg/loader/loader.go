// Package loader reads the session document and normalizes it into the JSON text
// the query engine and field index operate on.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrEmptyInput is returned when the input contains nothing but whitespace.
var ErrEmptyInput = errors.New("empty input")

// Format names the syntax an input document was detected as.
type Format string

const (
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
)

var (
	// TOML section headers: [server], [[items]], ["table name"], [database.credentials].
	// JSON arrays such as [1, 2, 3] do not match.
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// TOML key = value (YAML uses key: value).
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// Document is a loaded input: the parsed tree plus the format it was read as.
type Document struct {
	Root   interface{}
	Format Format
}

// ReadInput returns the raw input text from path, or from stdin when path is empty.
func ReadInput(path string, stdin io.Reader) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(data), nil
	}
	if stdin == nil {
		return "", ErrEmptyInput
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// Load parses input, auto-detecting JSON, newline-delimited JSON, YAML (single or
// multi-document) and TOML. Multi-document inputs become a single array root.
func Load(input string) (Document, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Document{}, ErrEmptyInput
	}

	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		docs, err := loadMultiDocYAML(input)
		if err != nil {
			return Document{}, err
		}
		return Document{Root: collapse(docs), Format: FormatYAML}, nil
	}

	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		if docs, err := loadNDJSON(lines); err == nil {
			return Document{Root: collapse(docs), Format: FormatNDJSON}, nil
		}
	}

	// TOML [section] headers look like JSON arrays, so TOML is checked first.
	if isLikelyTOML(lines) {
		var data map[string]interface{}
		if err := toml.Unmarshal([]byte(input), &data); err != nil {
			return Document{}, fmt.Errorf("invalid TOML: %w", err)
		}
		return Document{Root: data, Format: FormatTOML}, nil
	}

	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		var data interface{}
		if err := json.Unmarshal([]byte(input), &data); err == nil {
			return Document{Root: data, Format: FormatJSON}, nil
		}
	}

	var data interface{}
	if err := yaml.Unmarshal([]byte(input), &data); err != nil {
		return Document{}, fmt.Errorf("invalid YAML: %w", err)
	}
	return Document{Root: normalizeYAML(data), Format: FormatYAML}, nil
}

// JSON renders the document as compact JSON text.
func (d Document) JSON() (string, error) {
	data, err := json.Marshal(d.Root)
	if err != nil {
		return "", fmt.Errorf("encode document as JSON: %w", err)
	}
	return string(data), nil
}

// LoadJSON is Load followed by Document.JSON.
func LoadJSON(input string) (string, Format, error) {
	doc, err := Load(input)
	if err != nil {
		return "", "", err
	}
	text, err := doc.JSON()
	if err != nil {
		return "", "", err
	}
	return text, doc.Format, nil
}

func collapse(docs []interface{}) interface{} {
	if len(docs) == 1 {
		return docs[0]
	}
	return docs
}

func loadMultiDocYAML(input string) ([]interface{}, error) {
	var results []interface{}
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc interface{}
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			results = append(results, normalizeYAML(doc))
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no documents found in multi-document YAML")
	}
	return results, nil
}

// loadNDJSON requires every non-empty line to be valid JSON; a stray line means the input
// is something else (pretty-printed JSON, YAML flow syntax).
func loadNDJSON(lines []string) ([]interface{}, error) {
	results := make([]interface{}, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		results = append(results, obj)
	}
	if len(results) == 0 {
		return nil, ErrEmptyInput
	}
	return results, nil
}

// isLikelyNDJSON reports whether a majority of non-empty lines start with '{' or '['.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

func isLikelyTOML(lines []string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++
		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}
	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}

// normalizeYAML converts map[interface{}]interface{} values (non-string YAML keys) into
// map[string]interface{} so the tree can be encoded as JSON.
func normalizeYAML(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
