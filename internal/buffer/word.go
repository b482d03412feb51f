package buffer

import (
	"strings"
	"unicode"
)

type charKind int

const (
	kindSpace charKind = iota
	kindPunct
	kindOther
)

const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func kindOf(r rune) charKind {
	switch {
	case unicode.IsSpace(r):
		return kindSpace
	case r < 0x80 && strings.ContainsRune(asciiPunct, r):
		return kindPunct
	default:
		return kindOther
	}
}

// wordStartForward finds the next column after col where a non-space run of a different
// kind begins.
func wordStartForward(line []rune, col int) (int, bool) {
	if col >= len(line) {
		return 0, false
	}
	prev := kindOf(line[col])
	for c := col + 1; c < len(line); c++ {
		cur := kindOf(line[c])
		if cur != kindSpace && cur != prev {
			return c, true
		}
		prev = cur
	}
	return 0, false
}

// wordStartBackward scans left from col for the start of the word the cursor is in or
// follows.
func wordStartBackward(line []rune, col int) (int, bool) {
	col = min(col, len(line))
	if col == 0 {
		return 0, false
	}
	cur := kindOf(line[col-1])
	for i := 1; i < col; i++ {
		next := kindOf(line[col-1-i])
		if cur != kindSpace && next != cur {
			return col - i, true
		}
		cur = next
	}
	if cur != kindSpace {
		return 0, true
	}
	return 0, false
}

// wordEndForward finds the last column of the word at or after col.
func wordEndForward(line []rune, col int) (int, bool) {
	if col >= len(line) {
		return 0, false
	}
	last := col
	prev := kindOf(line[col])
	for c := col + 1; c < len(line); c++ {
		cur := kindOf(line[c])
		if prev != kindSpace && cur != prev {
			return c - 1, true
		}
		prev = cur
		last = c
	}
	if prev != kindSpace {
		return last, true
	}
	return 0, false
}
