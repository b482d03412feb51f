// Package query runs jq queries against the session document with gojq and renders the
// outputs as text.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/itchyny/gojq"
)

// DefaultMaxOutputs caps how many values one query may emit before it is stopped.
const DefaultMaxOutputs = 10000

// ErrTooManyOutputs is returned when a query emits more than the output cap.
var ErrTooManyOutputs = errors.New("query produced too many results")

// Executor evaluates queries against one fixed document. It is not safe for concurrent use.
type Executor struct {
	doc        interface{}
	opts       FormatOptions
	maxOutputs int
	log        logr.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithFormat sets the result rendering.
func WithFormat(opts FormatOptions) Option {
	return func(e *Executor) { e.opts = opts }
}

// WithMaxOutputs overrides DefaultMaxOutputs. Values <= 0 keep the default.
func WithMaxOutputs(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.maxOutputs = n
		}
	}
}

// WithLogger sets the logger used for execution traces.
func WithLogger(log logr.Logger) Option {
	return func(e *Executor) { e.log = log.WithName("query") }
}

// NewExecutor decodes the JSON document text and returns an executor over it.
func NewExecutor(document string, opts ...Option) (*Executor, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return NewExecutorForValue(doc, opts...), nil
}

// NewExecutorForValue returns an executor over an already decoded document.
func NewExecutorForValue(doc interface{}, opts ...Option) *Executor {
	e := &Executor{
		doc:        doc,
		opts:       DefaultFormatOptions(),
		maxOutputs: DefaultMaxOutputs,
		log:        logr.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs query and returns every output rendered, one per line (JSON) or one per
// document (YAML). A blank query behaves like ".". Parse, compile and runtime failures are
// returned with jq's message.
func (e *Executor) Execute(query string) (string, error) {
	start := time.Now()
	values, err := e.Run(query)
	if err != nil {
		e.log.V(1).Info("query failed", "query", query, "error", err.Error())
		return "", err
	}

	parts := make([]string, 0, len(values))
	for _, v := range values {
		text, err := formatValue(v, e.opts)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}

	sep := "\n"
	if e.opts.Format == FormatYAML {
		sep = "\n---\n"
	}
	e.log.V(1).Info("query executed", "query", query, "outputs", len(values), "elapsed", time.Since(start))
	return strings.Join(parts, sep), nil
}

// Run evaluates query and returns the raw output values.
func (e *Executor) Run(query string) ([]interface{}, error) {
	if strings.TrimSpace(query) == "" {
		query = "."
	}
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, err
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, err
	}

	var out []interface{}
	iter := code.Run(e.doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				break
			}
			return nil, err
		}
		if len(out) >= e.maxOutputs {
			return nil, fmt.Errorf("%w (limit %d)", ErrTooManyOutputs, e.maxOutputs)
		}
		out = append(out, v)
	}
	return out, nil
}

// Validate reports whether query parses and compiles, without running it.
func Validate(query string) error {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return err
	}
	_, err = gojq.Compile(parsed)
	return err
}
