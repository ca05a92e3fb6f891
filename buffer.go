package shell

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// lineBuffer is the line currently being composed.
//
// cursor is the index before which the next inserted character lands and
// always satisfies 0 <= cursor <= len(chars). Every editing method reports
// whether it changed anything so callers can stay silent on boundary no-ops.
type lineBuffer struct {
	chars  []byte
	cursor int
}

func (b *lineBuffer) insert(c byte) {
	if b.cursor == len(b.chars) {
		b.chars = append(b.chars, c)
	} else {
		b.chars = append(b.chars[:b.cursor], append([]byte{c}, b.chars[b.cursor:]...)...)
	}
	b.cursor++
}

func (b *lineBuffer) backspace() bool {
	if b.cursor == 0 {
		return false
	}
	b.chars = append(b.chars[:b.cursor-1], b.chars[b.cursor:]...)
	b.cursor--
	return true
}

func (b *lineBuffer) deleteForward() bool {
	if b.cursor == len(b.chars) {
		return false
	}
	b.chars = append(b.chars[:b.cursor], b.chars[b.cursor+1:]...)
	return true
}

func (b *lineBuffer) moveLeft() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

func (b *lineBuffer) moveRight() bool {
	if b.cursor == len(b.chars) {
		return false
	}
	b.cursor++
	return true
}

// replace swaps the whole content for text and puts the cursor at its end.
func (b *lineBuffer) replace(text string) {
	b.chars = []byte(text)
	b.cursor = len(b.chars)
}

func (b *lineBuffer) clear() {
	b.chars = b.chars[:0]
	b.cursor = 0
}

func (b *lineBuffer) atEnd() bool {
	return b.cursor == len(b.chars)
}

func (b *lineBuffer) String() string {
	return string(b.chars)
}

// columnsAfterCursor is the display width of the text right of the cursor,
// i.e. how far the terminal cursor must travel back after a full redraw.
func (b *lineBuffer) columnsAfterCursor() int {
	return b.columns(b.cursor, len(b.chars))
}

// columnsAt is the number of columns the terminal cursor crosses when the
// cursor moves over the byte at index i.
func (b *lineBuffer) columnsAt(i int) int {
	return b.columns(i, i+1)
}

// columns measures chars[from:to] one byte at a time, so the widths of any
// split of the line add up to the width of the whole. A character's width is
// charged to its first byte and continuation bytes take no columns. A lead
// byte that does not begin a valid character is drawn as U+FFFD.
func (b *lineBuffer) columns(from, to int) int {
	width := 0
	for i := from; i < to; i++ {
		if !utf8.RuneStart(b.chars[i]) {
			continue
		}
		r, _ := utf8.DecodeRune(b.chars[i:])
		width += runewidth.RuneWidth(r)
	}
	return width
}
