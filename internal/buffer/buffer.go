// Package buffer implements the single-line query buffer the editor drives: raw key input,
// cursor motions, a selection anchor for operators, cut and undo/redo history.
package buffer

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// CursorMove names a cursor motion within the line.
type CursorMove int

const (
	Back        CursorMove = iota // One rune left
	Forward                       // One rune right
	Head                          // Start of line
	End                           // End of line
	WordForward                   // Start of the next word
	WordBack                      // Start of the current or previous word
	WordEnd                       // Last rune of the current or next word
)

func (m CursorMove) String() string {
	switch m {
	case Back:
		return "back"
	case Forward:
		return "forward"
	case Head:
		return "head"
	case End:
		return "end"
	case WordForward:
		return "word-forward"
	case WordBack:
		return "word-back"
	case WordEnd:
		return "word-end"
	default:
		return "unknown"
	}
}

// DefaultMaxHistory bounds the undo stack.
const DefaultMaxHistory = 50

type snapshot struct {
	value  string
	cursor int
}

// TextBuffer is a single logical line. Raw typing goes through a bubbles textinput; every
// other edit is applied here and synced back into it. Columns are rune offsets.
type TextBuffer struct {
	input      textinput.Model
	anchor     int
	selecting  bool
	yank       string
	undo       []snapshot
	redo       []snapshot
	maxHistory int
}

// New returns an empty, focused buffer.
func New() *TextBuffer {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.Focus()
	return &TextBuffer{input: ti, maxHistory: DefaultMaxHistory}
}

// NewWithText returns a buffer holding text with the cursor at its end. The initial text is
// not part of the undo history.
func NewWithText(text string) *TextBuffer {
	b := New()
	b.set(snapshot{value: text, cursor: len([]rune(text))})
	return b
}

// SetMaxHistory bounds the undo stack. Values below 1 restore DefaultMaxHistory.
func (b *TextBuffer) SetMaxHistory(n int) {
	if n < 1 {
		n = DefaultMaxHistory
	}
	b.maxHistory = n
	if len(b.undo) > n {
		b.undo = b.undo[len(b.undo)-n:]
	}
}

// Input applies a raw key press (typing, backspace, arrows and the textinput's emacs
// bindings). It reports whether the text changed; cursor-only keys return false.
func (b *TextBuffer) Input(msg tea.KeyPressMsg) bool {
	before := b.current()
	b.selecting = false
	b.input, _ = b.input.Update(msg)
	if b.input.Value() == before.value {
		return false
	}
	b.record(before)
	return true
}

// Cursor returns the cursor position. The buffer has one row, so row is always 0.
func (b *TextBuffer) Cursor() (row, col int) {
	return 0, b.input.Position()
}

// Lines returns the buffer contents; always exactly one line.
func (b *TextBuffer) Lines() []string {
	return []string{b.input.Value()}
}

// Text returns the line.
func (b *TextBuffer) Text() string {
	return b.input.Value()
}

// Yank returns the text removed by the last Cut.
func (b *TextBuffer) Yank() string {
	return b.yank
}

// IsSelecting reports whether a selection anchor is set.
func (b *TextBuffer) IsSelecting() bool {
	return b.selecting
}

// Selection returns the selected column range [start, end) while selecting.
func (b *TextBuffer) Selection() (start, end int, ok bool) {
	if !b.selecting {
		return 0, 0, false
	}
	col := b.input.Position()
	return min(b.anchor, col), max(b.anchor, col), true
}

// MoveCursor applies a motion. Motions never change the text.
func (b *TextBuffer) MoveCursor(m CursorMove) {
	line := []rune(b.input.Value())
	col := b.input.Position()
	switch m {
	case Back:
		if col > 0 {
			col--
		}
	case Forward:
		if col < len(line) {
			col++
		}
	case Head:
		col = 0
	case End:
		col = len(line)
	case WordForward:
		if c, ok := wordStartForward(line, col); ok {
			col = c
		} else {
			col = len(line)
		}
	case WordBack:
		if c, ok := wordStartBackward(line, col); ok {
			col = c
		} else {
			col = 0
		}
	case WordEnd:
		if c, ok := wordEndForward(line, col+1); ok {
			col = c
		} else {
			col = len(line)
		}
	}
	b.input.SetCursor(col)
}

// InsertString inserts s at the cursor and leaves the cursor after it.
func (b *TextBuffer) InsertString(s string) bool {
	if s == "" {
		return false
	}
	line := []rune(b.input.Value())
	col := b.input.Position()
	ins := []rune(s)
	out := make([]rune, 0, len(line)+len(ins))
	out = append(out, line[:col]...)
	out = append(out, ins...)
	out = append(out, line[col:]...)
	return b.apply(snapshot{value: string(out), cursor: col + len(ins)})
}

// DeleteNextChar removes the rune under the cursor.
func (b *TextBuffer) DeleteNextChar() bool {
	line := []rune(b.input.Value())
	col := b.input.Position()
	if col >= len(line) {
		return false
	}
	return b.apply(snapshot{value: string(line[:col]) + string(line[col+1:]), cursor: col})
}

// DeleteChar removes the rune before the cursor.
func (b *TextBuffer) DeleteChar() bool {
	line := []rune(b.input.Value())
	col := b.input.Position()
	if col == 0 {
		return false
	}
	return b.apply(snapshot{value: string(line[:col-1]) + string(line[col:]), cursor: col - 1})
}

// DeleteLineByEnd removes everything from the cursor to the end of the line.
func (b *TextBuffer) DeleteLineByEnd() bool {
	line := []rune(b.input.Value())
	col := b.input.Position()
	if col >= len(line) {
		return false
	}
	b.yank = string(line[col:])
	return b.apply(snapshot{value: string(line[:col]), cursor: col})
}

// DeleteLineByHead removes everything from the start of the line to the cursor.
func (b *TextBuffer) DeleteLineByHead() bool {
	line := []rune(b.input.Value())
	col := b.input.Position()
	if col == 0 {
		return false
	}
	b.yank = string(line[:col])
	return b.apply(snapshot{value: string(line[col:]), cursor: 0})
}

// StartSelection anchors a selection at the cursor.
func (b *TextBuffer) StartSelection() {
	b.anchor = b.input.Position()
	b.selecting = true
}

// CancelSelection drops the anchor without touching the text.
func (b *TextBuffer) CancelSelection() {
	b.selecting = false
}

// Cut removes the text between the anchor and the cursor and ends the selection. An empty
// range leaves the text alone.
func (b *TextBuffer) Cut() bool {
	start, end, ok := b.Selection()
	b.selecting = false
	if !ok || start == end {
		return false
	}
	line := []rune(b.input.Value())
	b.yank = string(line[start:end])
	return b.apply(snapshot{value: string(line[:start]) + string(line[end:]), cursor: start})
}

// SetLine replaces the whole line and moves the cursor to its end.
func (b *TextBuffer) SetLine(s string) {
	b.selecting = false
	b.apply(snapshot{value: s, cursor: len([]rune(s))})
}

// Undo restores the state before the last edit.
func (b *TextBuffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	prev := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.redo = append(b.redo, b.current())
	b.selecting = false
	b.set(prev)
	return true
}

// Redo reapplies the last undone edit.
func (b *TextBuffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	next := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]
	b.undo = append(b.undo, b.current())
	b.selecting = false
	b.set(next)
	return true
}

func (b *TextBuffer) current() snapshot {
	return snapshot{value: b.input.Value(), cursor: b.input.Position()}
}

func (b *TextBuffer) set(s snapshot) {
	b.input.SetValue(s.value)
	b.input.SetCursor(s.cursor)
}

// apply records the current state and replaces it with next. A no-op edit is not recorded.
func (b *TextBuffer) apply(next snapshot) bool {
	before := b.current()
	if next.value == before.value {
		b.input.SetCursor(next.cursor)
		return false
	}
	b.record(before)
	b.set(next)
	return true
}

func (b *TextBuffer) record(before snapshot) {
	b.undo = append(b.undo, before)
	if len(b.undo) > b.maxHistory {
		b.undo = b.undo[len(b.undo)-b.maxHistory:]
	}
	b.redo = b.redo[:0]
}
