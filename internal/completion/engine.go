package completion

// Engine holds the autocomplete popup state: the current suggestion list, which row is
// selected and whether the popup shows. It never touches the query text.
//
// The popup is visible exactly when the list is non-empty, and the selection always points
// inside the list.
type Engine struct {
	fields      FieldSource
	suggestions []Suggestion
	selected    int
	visible     bool
}

// NewEngine creates an engine that draws field suggestions from fields (may be nil).
func NewEngine(fields FieldSource) *Engine {
	return &Engine{fields: fields, selected: -1}
}

// Refresh recomputes suggestions for query with the cursor at rune column cursor.
func (e *Engine) Refresh(query string, cursor int) {
	e.Update(GetSuggestions(query, cursor, e.fields))
}

// Update replaces the list and resets the selection to the first row.
func (e *Engine) Update(suggestions []Suggestion) {
	e.suggestions = suggestions
	if len(suggestions) == 0 {
		e.selected = -1
		e.visible = false
		return
	}
	e.selected = 0
	e.visible = true
}

// IsVisible reports whether the popup shows.
func (e *Engine) IsVisible() bool {
	return e.visible
}

// Suggestions returns the current list.
func (e *Engine) Suggestions() []Suggestion {
	return e.suggestions
}

// SelectedIndex returns the selected row, or -1 when the list is empty.
func (e *Engine) SelectedIndex() int {
	return e.selected
}

// Selected returns the selected suggestion.
func (e *Engine) Selected() (Suggestion, bool) {
	if e.selected < 0 || e.selected >= len(e.suggestions) {
		return Suggestion{}, false
	}
	return e.suggestions[e.selected], true
}

// SelectNext moves the selection down one row, wrapping to the top.
func (e *Engine) SelectNext() {
	if len(e.suggestions) == 0 {
		return
	}
	e.selected = (e.selected + 1) % len(e.suggestions)
}

// SelectPrevious moves the selection up one row, wrapping to the bottom.
func (e *Engine) SelectPrevious() {
	if len(e.suggestions) == 0 {
		return
	}
	if e.selected <= 0 {
		e.selected = len(e.suggestions) - 1
		return
	}
	e.selected--
}

// Hide clears the list and hides the popup.
func (e *Engine) Hide() {
	e.Update(nil)
}
