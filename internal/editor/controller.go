// Package editor is the modal key-handling state machine for the query console. It owns the
// query buffer, the focus and mode, the results scroll state and the autocomplete popup, and
// re-runs the query whenever the text changes.
package editor

import (
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jqi/internal/buffer"
	"github.com/oakwood-commons/jqi/internal/completion"
)

// Executor runs a query against the session document. The error text is what the results
// pane shows on failure.
type Executor interface {
	Execute(query string) (string, error)
}

// Buffer is the single-line text buffer the controller edits. Columns are rune offsets.
type Buffer interface {
	Input(msg tea.KeyPressMsg) bool
	MoveCursor(m buffer.CursorMove)
	Cursor() (row, col int)
	Lines() []string
	InsertString(s string) bool
	DeleteNextChar() bool
	DeleteChar() bool
	DeleteLineByEnd() bool
	DeleteLineByHead() bool
	StartSelection()
	CancelSelection()
	Cut() bool
	Undo() bool
	Redo() bool
	SetLine(s string)
}

// Controller dispatches key presses over the (Focus, Mode) state.
type Controller struct {
	buf          Buffer
	exec         Executor
	autocomplete *completion.Engine
	log          logr.Logger

	mode       Mode
	focus      Focus
	view       ResultView
	result     Result
	outputMode OutputMode
	quit       bool

	globals []globalRule
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for mode transitions and executions.
func WithLogger(log logr.Logger) Option {
	return func(c *Controller) { c.log = log.WithName("editor") }
}

// WithViewportHeight sets the initial results viewport height.
func WithViewportHeight(h int) Option {
	return func(c *Controller) { c.view.ViewportHeight = max(h, 0) }
}

// NewController wires a buffer, an executor and a field source for autocomplete, then runs
// the buffer's current text once so the results pane starts populated.
func NewController(buf Buffer, exec Executor, fields completion.FieldSource, opts ...Option) *Controller {
	c := &Controller{
		buf:          buf,
		exec:         exec,
		autocomplete: completion.NewEngine(fields),
		log:          logr.Discard(),
		mode:         ModeInsert,
		focus:        InputField,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.globals = defaultGlobalRules()
	c.execute()
	return c
}

// HandleKey processes one key press: global rules first, then the focused pane.
func (c *Controller) HandleKey(msg tea.KeyPressMsg) {
	k := msg.String()
	if c.handleGlobal(k) {
		return
	}
	switch c.focus {
	case InputField:
		c.handleInputField(k, msg)
	case ResultsPane:
		c.handleResults(k)
	}
}

// Autocomplete returns the popup state for rendering.
func (c *Controller) Autocomplete() *completion.Engine { return c.autocomplete }

// Mode returns the current editing mode.
func (c *Controller) Mode() Mode { return c.mode }

// Focus returns the focused pane.
func (c *Controller) Focus() Focus { return c.focus }

// ResultView returns the results scroll state.
func (c *Controller) ResultView() ResultView { return c.view }

// Result returns the most recent execution outcome.
func (c *Controller) Result() Result { return c.result }

// Query returns the buffer text.
func (c *Controller) Query() string { return c.line() }

// Cursor returns the buffer cursor column.
func (c *Controller) Cursor() int {
	_, col := c.buf.Cursor()
	return col
}

// ShouldQuit reports whether the session is over.
func (c *Controller) ShouldQuit() bool { return c.quit }

// OutputMode returns what to print on exit.
func (c *Controller) OutputMode() OutputMode { return c.outputMode }

// SetViewportHeight updates the results viewport, keeping the offset in range.
func (c *Controller) SetViewportHeight(h int) {
	c.view.ViewportHeight = max(h, 0)
	c.view.ScrollTo(c.view.ScrollOffset)
}

// DisplayText is what the results pane shows: the current output on success, else the last
// successful output, else the error.
func (c *Controller) DisplayText() string {
	switch {
	case c.result.OK():
		return c.result.Text
	case c.view.HasLast:
		return c.view.LastSuccessful
	default:
		return c.result.Err.Error()
	}
}

// OutputText is what the program prints after quitting, per OutputMode.
func (c *Controller) OutputText() string {
	switch c.outputMode {
	case OutputQuery:
		return c.line()
	case OutputResults:
		if c.result.OK() {
			return c.result.Text
		}
		if c.view.HasLast {
			return c.view.LastSuccessful
		}
	}
	return ""
}

func (c *Controller) line() string {
	lines := c.buf.Lines()
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

func (c *Controller) setMode(m Mode) {
	if c.mode == m {
		return
	}
	c.log.V(1).Info("mode change", "from", c.mode.String(), "to", m.String())
	c.mode = m
}

// execute re-runs the query, caches a successful output and scrolls back to the top.
func (c *Controller) execute() {
	query := c.line()
	text, err := c.exec.Execute(query)
	c.result = Result{Text: text, Err: err}
	if err == nil {
		c.view.LastSuccessful = text
		c.view.HasLast = true
	} else {
		c.log.V(1).Info("query error", "query", query, "error", err.Error())
	}
	c.view.ContentLines = lineCount(c.DisplayText())
	c.view.ScrollOffset = 0
}

func (c *Controller) refreshAutocomplete() {
	c.autocomplete.Refresh(c.line(), c.Cursor())
}
