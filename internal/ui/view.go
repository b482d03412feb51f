package ui

import (
	"fmt"
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/jqi/internal/completion"
	"github.com/oakwood-commons/jqi/internal/editor"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}

const (
	prompt        = "> "
	popupMaxText  = 28
	popupKindCol  = 9
	popupMinWidth = 20
)

// renderResults returns exactly resultsHeight rows of the results window.
func (m *Model) renderResults() []string {
	h := m.resultsHeight()
	window := m.ctrl.ResultView().Window(m.displayText())
	clip := lipgloss.NewStyle().MaxWidth(m.width)
	errStyle := lipgloss.NewStyle()
	if !m.ctrl.Result().OK() && !m.ctrl.ResultView().HasLast {
		errStyle = m.styles.err
	}

	out := make([]string, 0, h)
	for _, line := range window {
		if len(out) == h {
			break
		}
		out = append(out, clip.Render(errStyle.Render(line)))
	}
	for len(out) < h {
		out = append(out, "")
	}
	return out
}

// overlayPopup draws the suggestion popup over the bottom rows of the results pane.
func (m *Model) overlayPopup(lines []string) []string {
	ac := m.ctrl.Autocomplete()
	if !ac.IsVisible() || m.ctrl.Focus() != editor.InputField {
		return lines
	}
	rows := m.popupRows(ac)
	if len(rows) > len(lines) {
		rows = rows[len(rows)-len(lines):]
	}
	copy(lines[len(lines)-len(rows):], rows)
	return lines
}

// popupRows renders at most MaxItems suggestions, scrolled so the selection stays visible.
func (m *Model) popupRows(ac *completion.Engine) []string {
	items := ac.Suggestions()
	sel := ac.SelectedIndex()
	n := min(len(items), m.opts.MaxItems)
	start := 0
	if sel >= n {
		start = sel - n + 1
	}

	textW := 0
	for _, s := range items[start : start+n] {
		textW = max(textW, runewidth.StringWidth(s.Text))
	}
	textW = min(textW, popupMaxText)
	width := max(popupMinWidth, min(m.width, textW+popupKindCol+2+32))
	descW := max(width-textW-popupKindCol-2, 0)

	rows := make([]string, 0, n)
	for i, s := range items[start : start+n] {
		text := runewidth.FillRight(runewidth.Truncate(s.Text, textW, "…"), textW)
		kind := runewidth.FillRight(s.Type.String(), popupKindCol)
		desc := runewidth.FillRight(runewidth.Truncate(s.Description, descW, "…"), descW)
		if start+i == sel {
			rows = append(rows, m.styles.selected.Render(" "+text+" "+kind+desc))
			continue
		}
		rows = append(rows,
			m.styles.popup.Render(" "+text+" ")+
				m.styles.kindStyle(s.Type).Render(kind)+
				m.styles.desc.Render(desc))
	}
	return rows
}

func (m *Model) renderSeparator() string {
	v := m.ctrl.ResultView()
	info := ""
	if v.ContentLines > 0 {
		last := min(v.ScrollOffset+v.ViewportHeight, v.ContentLines)
		info = fmt.Sprintf(" %d-%d/%d ", v.ScrollOffset+1, last, v.ContentLines)
	}
	fill := max(m.width-runewidth.StringWidth(info), 0)
	line := strings.Repeat("─", fill) + info
	if m.ctrl.Focus() == editor.ResultsPane {
		return m.styles.focused.Render(line)
	}
	return m.styles.separator.Render(line)
}

func (m *Model) renderError() string {
	r := m.ctrl.Result()
	if r.OK() {
		return ""
	}
	msg := strings.ReplaceAll(r.Err.Error(), "\n", " ")
	return m.styles.err.Render(runewidth.Truncate("error: "+msg, m.width, "…"))
}

// renderInput draws the query line with the cursor cell in reverse video.
func (m *Model) renderInput() string {
	runes := []rune(m.ctrl.Query())
	col := min(max(m.ctrl.Cursor(), 0), len(runes))
	at := " "
	after := ""
	if col < len(runes) {
		at = string(runes[col])
		after = string(runes[col+1:])
	}
	return m.styles.prompt.Render(prompt) + string(runes[:col]) + m.styles.cursor.Render(at) + after
}

func (m *Model) renderStatus() string {
	mode := m.ctrl.Mode()
	badge := m.styles.normal
	if mode.Kind == editor.Insert {
		badge = m.styles.insert
	}
	left := badge.Render(" "+mode.String()+" ") + m.styles.status.Render(" "+m.ctrl.Focus().String()+" ")
	right := "shift+tab focus · enter print results · shift+enter print query · ctrl+c quit"
	gap := m.width - runewidth.StringWidth(stripANSI(left)) - runewidth.StringWidth(right) - 1
	if gap < 1 {
		return left
	}
	return left + m.styles.status.Render(strings.Repeat(" ", gap)+right+" ")
}
