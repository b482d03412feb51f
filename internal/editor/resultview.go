package editor

import "strings"

// ResultView is the scroll state of the results pane. ScrollOffset never goes below 0 or
// past MaxScroll.
type ResultView struct {
	ScrollOffset   int
	ViewportHeight int
	ContentLines   int
	LastSuccessful string
	HasLast        bool
}

// MaxScroll is the largest offset that still fills the viewport.
func (v ResultView) MaxScroll() int {
	return max(0, v.ContentLines-v.ViewportHeight)
}

// ScrollBy moves the offset by delta, saturating at both ends.
func (v *ResultView) ScrollBy(delta int) {
	v.ScrollTo(v.ScrollOffset + delta)
}

// ScrollTo sets the offset, clamped to [0, MaxScroll].
func (v *ResultView) ScrollTo(offset int) {
	v.ScrollOffset = min(max(offset, 0), v.MaxScroll())
}

// HalfPage is the distance pgup/pgdown move.
func (v ResultView) HalfPage() int {
	return v.ViewportHeight / 2
}

// Window returns the lines of text visible at the current offset.
func (v ResultView) Window(text string) []string {
	lines := splitLines(text)
	start := min(v.ScrollOffset, len(lines))
	end := len(lines)
	if v.ViewportHeight > 0 {
		end = min(start+v.ViewportHeight, len(lines))
	}
	return lines[start:end]
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func lineCount(text string) int {
	return len(splitLines(text))
}
