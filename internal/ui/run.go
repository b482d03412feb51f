package ui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// Run starts the program and blocks until the session ends. The returned model carries the
// controller's final state, so the caller can print its OutputText.
func Run(m *Model, opts ...tea.ProgramOption) (*Model, error) {
	prog := tea.NewProgram(m, opts...)
	final, err := prog.Run()
	if err != nil {
		return m, fmt.Errorf("run console: %w", err)
	}
	if fm, ok := final.(*Model); ok && fm != nil {
		return fm, nil
	}
	return m, nil
}
