package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/jqi/internal/completion"
)

// Theme defines the colors of the console.
type Theme struct {
	PromptFG     color.Color // "> " before the query
	ErrorFG      color.Color // Error line text
	StatusFG     color.Color // Mode line text
	StatusBG     color.Color // Mode line background
	InsertBG     color.Color // Mode badge in Insert mode
	NormalBG     color.Color // Mode badge in Normal and Operator mode
	PopupFG      color.Color // Popup rows
	PopupBG      color.Color // Popup background
	SelectedFG   color.Color // Selected popup row
	SelectedBG   color.Color // Selected popup row background
	DescFG       color.Color // Description column
	FieldFG      color.Color // Type label of field suggestions
	FunctionFG   color.Color // Type label of built-ins
	PatternFG    color.Color // Type label of operators and patterns
	ResultsFocus color.Color // Separator when the results pane has focus
}

// DefaultTheme is the dark palette.
func DefaultTheme() Theme {
	return Theme{
		PromptFG:     lipgloss.Color("#7aa2f7"),
		ErrorFG:      lipgloss.Color("#f7768e"),
		StatusFG:     lipgloss.Color("#c0caf5"),
		StatusBG:     lipgloss.Color("#24283b"),
		InsertBG:     lipgloss.Color("#9ece6a"),
		NormalBG:     lipgloss.Color("#7aa2f7"),
		PopupFG:      lipgloss.Color("#c0caf5"),
		PopupBG:      lipgloss.Color("#1f2335"),
		SelectedFG:   lipgloss.Color("#1a1b26"),
		SelectedBG:   lipgloss.Color("#bb9af7"),
		DescFG:       lipgloss.Color("#565f89"),
		FieldFG:      lipgloss.Color("#e0af68"),
		FunctionFG:   lipgloss.Color("#7dcfff"),
		PatternFG:    lipgloss.Color("#ff9e64"),
		ResultsFocus: lipgloss.Color("#bb9af7"),
	}
}

// styles are the lipgloss styles derived from a Theme. With noColor every style is plain
// except the cursor, which stays reverse video so the position is still visible.
type styles struct {
	prompt    lipgloss.Style
	cursor    lipgloss.Style
	err       lipgloss.Style
	status    lipgloss.Style
	insert    lipgloss.Style
	normal    lipgloss.Style
	popup     lipgloss.Style
	selected  lipgloss.Style
	desc      lipgloss.Style
	kind      map[completion.SuggestionType]lipgloss.Style
	separator lipgloss.Style
	focused   lipgloss.Style
}

func newStyles(th Theme, noColor bool) styles {
	plain := lipgloss.NewStyle()
	s := styles{
		cursor: plain.Reverse(true),
		kind:   map[completion.SuggestionType]lipgloss.Style{},
	}
	if noColor {
		s.prompt, s.err, s.status, s.insert, s.normal = plain, plain, plain, plain, plain
		s.popup, s.selected, s.desc, s.separator, s.focused = plain, plain, plain, plain, plain
		return s
	}

	s.prompt = plain.Foreground(th.PromptFG).Bold(true)
	s.err = plain.Foreground(th.ErrorFG)
	s.status = plain.Foreground(th.StatusFG).Background(th.StatusBG)
	s.insert = plain.Foreground(th.SelectedFG).Background(th.InsertBG).Bold(true)
	s.normal = plain.Foreground(th.SelectedFG).Background(th.NormalBG).Bold(true)
	s.popup = plain.Foreground(th.PopupFG).Background(th.PopupBG)
	s.selected = plain.Foreground(th.SelectedFG).Background(th.SelectedBG)
	s.desc = plain.Foreground(th.DescFG).Background(th.PopupBG)
	s.kind[completion.Field] = plain.Foreground(th.FieldFG).Background(th.PopupBG)
	s.kind[completion.Function] = plain.Foreground(th.FunctionFG).Background(th.PopupBG)
	s.kind[completion.Operator] = plain.Foreground(th.PatternFG).Background(th.PopupBG)
	s.kind[completion.Pattern] = plain.Foreground(th.PatternFG).Background(th.PopupBG)
	s.separator = plain.Foreground(th.DescFG)
	s.focused = plain.Foreground(th.ResultsFocus)
	return s
}

func (s styles) kindStyle(t completion.SuggestionType) lipgloss.Style {
	if st, ok := s.kind[t]; ok {
		return st
	}
	return s.popup
}
