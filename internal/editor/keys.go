package editor

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jqi/internal/buffer"
)

// globalRule is checked before focus dispatch. Rules run in order and the first whose key
// matches and whose guard passes handles the key.
type globalRule struct {
	keys   []string
	guard  func(c *Controller) bool
	action func(c *Controller)
}

func (r globalRule) matches(k string) bool {
	for _, key := range r.keys {
		if key == k {
			return true
		}
	}
	return false
}

func defaultGlobalRules() []globalRule {
	return []globalRule{
		{
			keys:   []string{"ctrl+c"},
			action: func(c *Controller) { c.quit = true },
		},
		{
			keys: []string{"tab"},
			guard: func(c *Controller) bool {
				return c.focus == InputField && c.autocomplete.IsVisible()
			},
			action: (*Controller).acceptSuggestion,
		},
		{
			keys: []string{"shift+tab"},
			action: func(c *Controller) {
				if c.focus == InputField {
					c.focus = ResultsPane
				} else {
					c.focus = InputField
				}
				c.log.V(1).Info("focus change", "focus", c.focus.String())
			},
		},
		{
			keys:   []string{"q"},
			guard:  func(c *Controller) bool { return c.mode.Kind != Insert },
			action: func(c *Controller) { c.quit = true },
		},
		{
			keys: []string{"shift+enter", "alt+enter"},
			action: func(c *Controller) {
				c.outputMode = OutputQuery
				c.quit = true
			},
		},
		{
			keys: []string{"enter"},
			action: func(c *Controller) {
				c.outputMode = OutputResults
				c.quit = true
			},
		},
	}
}

func (c *Controller) handleGlobal(k string) bool {
	for _, r := range c.globals {
		if !r.matches(k) {
			continue
		}
		if r.guard != nil && !r.guard(c) {
			continue
		}
		r.action(c)
		return true
	}
	return false
}

// acceptSuggestion replaces the whole line with the selected suggestion.
func (c *Controller) acceptSuggestion() {
	s, ok := c.autocomplete.Selected()
	if !ok {
		return
	}
	c.buf.SetLine(s.Text)
	c.autocomplete.Hide()
	c.execute()
}

func (c *Controller) handleInputField(k string, msg tea.KeyPressMsg) {
	switch c.mode.Kind {
	case Insert:
		c.handleInsert(k, msg)
	case Normal:
		c.handleNormal(k)
	case Operator:
		c.handleOperator(k)
	}
}

func (c *Controller) handleInsert(k string, msg tea.KeyPressMsg) {
	switch k {
	case "esc":
		if c.autocomplete.IsVisible() {
			c.autocomplete.Hide()
			return
		}
		c.setMode(ModeNormal)
		return
	case "down":
		if c.autocomplete.IsVisible() {
			c.autocomplete.SelectNext()
			return
		}
	case "up":
		if c.autocomplete.IsVisible() {
			c.autocomplete.SelectPrevious()
			return
		}
	}

	if c.buf.Input(msg) {
		c.execute()
		c.refreshAutocomplete()
	}
}

// motions are the keys that move the cursor in Normal mode and complete an operator.
var motions = map[string]buffer.CursorMove{
	"h":     buffer.Back,
	"left":  buffer.Back,
	"l":     buffer.Forward,
	"right": buffer.Forward,
	"0":     buffer.Head,
	"home":  buffer.Head,
	"$":     buffer.End,
	"end":   buffer.End,
	"w":     buffer.WordForward,
	"b":     buffer.WordBack,
	"e":     buffer.WordEnd,
}

func (c *Controller) handleNormal(k string) {
	if m, ok := motions[k]; ok {
		c.buf.MoveCursor(m)
		return
	}

	switch k {
	case "i":
		c.setMode(ModeInsert)
	case "a":
		c.buf.MoveCursor(buffer.Forward)
		c.setMode(ModeInsert)
	case "I":
		c.buf.MoveCursor(buffer.Head)
		c.setMode(ModeInsert)
	case "A":
		c.buf.MoveCursor(buffer.End)
		c.setMode(ModeInsert)
	case "x":
		c.buf.DeleteNextChar()
		c.execute()
	case "X":
		c.buf.DeleteChar()
		c.execute()
	case "D":
		c.buf.DeleteLineByEnd()
		c.execute()
	case "C":
		c.buf.DeleteLineByEnd()
		c.buf.CancelSelection()
		c.setMode(ModeInsert)
		c.execute()
	case "u":
		c.buf.Undo()
		c.execute()
	case "ctrl+r":
		c.buf.Redo()
		c.execute()
	case "d", "c":
		c.setMode(OperatorMode(rune(k[0])))
		c.buf.StartSelection()
	}
}

// afterOperator is the mode an operator leaves behind: c changes, so it ends in Insert.
func afterOperator(op rune) Mode {
	if op == 'c' {
		return ModeInsert
	}
	return ModeNormal
}

func (c *Controller) handleOperator(k string) {
	op := c.mode.Op

	if k == string(op) {
		c.buf.CancelSelection()
		c.buf.DeleteLineByHead()
		c.buf.DeleteLineByEnd()
		c.setMode(afterOperator(op))
		c.execute()
		return
	}

	m, ok := motions[k]
	if !ok {
		c.buf.CancelSelection()
		c.setMode(ModeNormal)
		return
	}
	c.buf.MoveCursor(m)
	if m == buffer.WordEnd {
		// e is inclusive of the rune it lands on.
		c.buf.MoveCursor(buffer.Forward)
	}
	c.buf.Cut()
	c.setMode(afterOperator(op))
	c.execute()
}

func (c *Controller) handleResults(k string) {
	v := &c.view
	switch k {
	case "j", "down":
		v.ScrollBy(1)
	case "k", "up":
		v.ScrollBy(-1)
	case "J":
		v.ScrollBy(10)
	case "K":
		v.ScrollBy(-10)
	case "g", "home":
		v.ScrollTo(0)
	case "G":
		v.ScrollTo(v.MaxScroll())
	case "pgup", "ctrl+u":
		v.ScrollBy(-v.HalfPage())
	case "pgdown", "ctrl+d":
		v.ScrollBy(v.HalfPage())
	}
}
