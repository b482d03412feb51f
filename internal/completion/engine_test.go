package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeSuggestions() []Suggestion {
	return []Suggestion{
		{Text: ".a", Type: Field},
		{Text: ".b", Type: Field},
		{Text: ".c", Type: Field},
	}
}

func TestEngineStartsHidden(t *testing.T) {
	e := NewEngine(nil)
	assert.False(t, e.IsVisible())
	assert.Equal(t, -1, e.SelectedIndex())
	_, ok := e.Selected()
	assert.False(t, ok)
}

func TestEngineUpdate(t *testing.T) {
	e := NewEngine(nil)
	e.Update(threeSuggestions())
	assert.True(t, e.IsVisible())
	assert.Equal(t, 0, e.SelectedIndex())

	e.Update(nil)
	assert.False(t, e.IsVisible())
	assert.Equal(t, -1, e.SelectedIndex())
}

func TestEngineSelectionWraps(t *testing.T) {
	e := NewEngine(nil)
	e.Update(threeSuggestions())

	e.SelectNext()
	e.SelectNext()
	assert.Equal(t, 2, e.SelectedIndex())
	e.SelectNext()
	assert.Equal(t, 0, e.SelectedIndex())

	e.SelectPrevious()
	assert.Equal(t, 2, e.SelectedIndex())
	s, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, ".c", s.Text)
}

func TestEngineSelectionOnEmptyListIsNoop(t *testing.T) {
	e := NewEngine(nil)
	e.SelectNext()
	e.SelectPrevious()
	assert.Equal(t, -1, e.SelectedIndex())
	assert.False(t, e.IsVisible())
}

func TestEngineUpdateResetsSelection(t *testing.T) {
	e := NewEngine(nil)
	e.Update(threeSuggestions())
	e.SelectNext()
	e.Update(threeSuggestions()[:2])
	assert.Equal(t, 0, e.SelectedIndex())
}

func TestEngineHide(t *testing.T) {
	e := NewEngine(nil)
	e.Update(threeSuggestions())
	e.Hide()
	assert.False(t, e.IsVisible())
	assert.Empty(t, e.Suggestions())
}

func TestEngineRefresh(t *testing.T) {
	fields := &fakeFields{out: []Suggestion{{Text: ".name", Type: Field}}}
	e := NewEngine(fields)

	e.Refresh(".na", 3)
	require.True(t, e.IsVisible())
	s, _ := e.Selected()
	assert.Equal(t, ".name", s.Text)

	e.Refresh("map", 3)
	assert.Equal(t, "map", e.Suggestions()[0].Text)

	e.Refresh("", 0)
	assert.False(t, e.IsVisible())
}
