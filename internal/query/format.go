package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"
)

// Format is the text encoding of query results.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json" or "yaml", ignoring case. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown result format %q (want json or yaml)", s)
	}
}

// FormatOptions control how each query output value is rendered.
type FormatOptions struct {
	Format Format
	Indent int // spaces per level; 0 renders compact JSON
}

// DefaultFormatOptions renders indented JSON like the jq command line.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Format: FormatJSON, Indent: 2}
}

// formatValue renders one output value.
func formatValue(v interface{}, opts FormatOptions) (string, error) {
	if opts.Format == FormatYAML {
		return formatYAML(v, opts.Indent)
	}
	return formatJSON(v, opts.Indent)
}

// formatJSON uses gojq's encoder so numbers, NaN and key order match jq, then re-indents.
func formatJSON(v interface{}, indent int) (string, error) {
	compact, err := gojq.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	if indent <= 0 {
		return string(compact), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", strings.Repeat(" ", indent)); err != nil {
		return "", fmt.Errorf("indent result: %w", err)
	}
	return buf.String(), nil
}

// formatYAML renders v as a YAML document; multi-line strings become literal blocks.
func formatYAML(v interface{}, indent int) (string, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	literalBlocks(&node)

	if indent <= 0 {
		indent = 2
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&node); err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func literalBlocks(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	for _, c := range n.Content {
		literalBlocks(c)
	}
}
