// Package ui is the bubbletea shell around the editor controller: it forwards key presses,
// tracks the window size and draws the results pane, popup, query line and mode line.
package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jqi/internal/editor"
	"github.com/oakwood-commons/jqi/internal/query"
)

const (
	// chromeLines are the rows below the results pane: separator, error, query and mode line.
	chromeLines = 4

	defaultWidth    = 80
	defaultHeight   = 24
	defaultMaxItems = 10
)

// Options configure rendering.
type Options struct {
	NoColor   bool
	Highlight bool
	Style     string       // chroma style for result highlighting
	Format    query.Format // lexer used for highlighting
	MaxItems  int          // popup rows
	Theme     *Theme
}

// Model is the bubbletea model for the console.
type Model struct {
	ctrl   *editor.Controller
	opts   Options
	styles styles

	width  int
	height int

	// highlighted output is cached per display text
	hlSource string
	hlText   string
}

// NewModel wraps ctrl. The viewport starts at the default terminal size until the first
// WindowSizeMsg arrives.
func NewModel(ctrl *editor.Controller, opts Options) *Model {
	if opts.MaxItems <= 0 {
		opts.MaxItems = defaultMaxItems
	}
	th := DefaultTheme()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	m := &Model{
		ctrl:   ctrl,
		opts:   opts,
		styles: newStyles(th, opts.NoColor),
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Controller returns the wrapped controller.
func (m *Model) Controller() *editor.Controller { return m.ctrl }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyPressMsg:
		m.ctrl.HandleKey(msg)
		if m.ctrl.ShouldQuit() {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	// Terminals that honor this also send release and repeat events; Update acts on presses only.
	v.KeyboardEnhancements.ReportEventTypes = true
	return v
}

func (m *Model) resize(w, h int) {
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	m.width, m.height = w, h
	m.ctrl.SetViewportHeight(m.resultsHeight())
}

func (m *Model) resultsHeight() int {
	return max(m.height-chromeLines, 1)
}

func (m *Model) render() string {
	lines := m.renderResults()
	lines = m.overlayPopup(lines)
	lines = append(lines,
		m.renderSeparator(),
		m.renderError(),
		m.renderInput(),
		m.renderStatus(),
	)
	return strings.Join(lines, "\n")
}

// displayText is the results text, highlighted when enabled. Errors are never highlighted.
func (m *Model) displayText() string {
	text := m.ctrl.DisplayText()
	if m.opts.NoColor || !m.opts.Highlight || !m.ctrl.ResultView().HasLast {
		return text
	}
	if text != m.hlSource || m.hlText == "" {
		m.hlSource = text
		m.hlText = strings.TrimRight(query.Highlight(text, m.opts.Format, m.opts.Style), "\n")
	}
	return m.hlText
}
