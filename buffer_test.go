package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newLineBuffer(text string, cursor int) *lineBuffer {
	return &lineBuffer{chars: []byte(text), cursor: cursor}
}

func TestLineBufferInsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		text           string
		cursor         int
		char           byte
		expectedText   string
		expectedCursor int
	}{
		{name: "empty", text: "", cursor: 0, char: 'a', expectedText: "a", expectedCursor: 1},
		{name: "append", text: "ab", cursor: 2, char: 'c', expectedText: "abc", expectedCursor: 3},
		{name: "middle", text: "ac", cursor: 1, char: 'b', expectedText: "abc", expectedCursor: 2},
		{name: "front", text: "bc", cursor: 0, char: 'a', expectedText: "abc", expectedCursor: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newLineBuffer(tt.text, tt.cursor)
			b.insert(tt.char)

			assert.Equal(t, tt.expectedText, b.String())
			assert.Equal(t, tt.expectedCursor, b.cursor)
		})
	}
}

func TestLineBufferInsertSequence(t *testing.T) {
	t.Parallel()

	input := "hello, world"
	var b lineBuffer
	for i := range len(input) {
		b.insert(input[i])
	}

	assert.Equal(t, input, b.String())
	assert.Equal(t, len(input), b.cursor)
}

func TestLineBufferBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		cursor int
		op     func(*lineBuffer) bool
	}{
		{name: "backspace at start", text: "abc", cursor: 0, op: (*lineBuffer).backspace},
		{name: "backspace on empty", text: "", cursor: 0, op: (*lineBuffer).backspace},
		{name: "delete at end", text: "abc", cursor: 3, op: (*lineBuffer).deleteForward},
		{name: "delete on empty", text: "", cursor: 0, op: (*lineBuffer).deleteForward},
		{name: "left at start", text: "abc", cursor: 0, op: (*lineBuffer).moveLeft},
		{name: "right at end", text: "abc", cursor: 3, op: (*lineBuffer).moveRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newLineBuffer(tt.text, tt.cursor)
			changed := tt.op(b)

			assert.False(t, changed)
			assert.Equal(t, tt.text, b.String())
			assert.Equal(t, tt.cursor, b.cursor)
		})
	}
}

func TestLineBufferEditing(t *testing.T) {
	t.Parallel()

	b := newLineBuffer("abc", 3)

	assert.True(t, b.moveLeft())
	assert.True(t, b.moveLeft())
	assert.Equal(t, 1, b.cursor)

	assert.True(t, b.backspace())
	assert.Equal(t, "bc", b.String())
	assert.Equal(t, 0, b.cursor)

	assert.True(t, b.deleteForward())
	assert.Equal(t, "c", b.String())
	assert.Equal(t, 0, b.cursor)

	assert.True(t, b.moveRight())
	assert.Equal(t, 1, b.cursor)
	assert.True(t, b.atEnd())
}

func TestLineBufferReplaceAndClear(t *testing.T) {
	t.Parallel()

	b := newLineBuffer("abc", 1)
	b.replace("hello")
	assert.Equal(t, "hello", b.String())
	assert.Equal(t, 5, b.cursor)

	b.clear()
	assert.Equal(t, "", b.String())
	assert.Equal(t, 0, b.cursor)
}

func TestLineBufferColumns(t *testing.T) {
	t.Parallel()

	b := newLineBuffer("abcd", 1)
	assert.Equal(t, 3, b.columnsAfterCursor())
	assert.Equal(t, 1, b.columnsAt(1))

	b.cursor = 4
	assert.Equal(t, 0, b.columnsAfterCursor())
}

func TestLineBufferColumnsMultiByte(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
	}{
		{name: "ascii", text: "abc", width: 3},
		{name: "two byte character", text: "ñ", width: 1},
		{name: "wide character", text: "世", width: 2},
		{name: "mixed", text: "a世b", width: 4},
		{name: "control character", text: "\x1b", width: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newLineBuffer(tt.text, 0)
			assert.Equal(t, tt.width, b.columnsAfterCursor())

			// Stepping over every byte crosses exactly the whole width
			sum := 0
			for i := range len(tt.text) {
				sum += b.columnsAt(i)
			}
			assert.Equal(t, tt.width, sum)
		})
	}
}

func TestLineBufferColumnsSplitCharacter(t *testing.T) {
	t.Parallel()

	b := newLineBuffer("世", 1)
	assert.Equal(t, 2, b.columnsAt(0), "the first byte carries the character's width")
	assert.Equal(t, 0, b.columnsAt(1))
	assert.Equal(t, 0, b.columnsAfterCursor())
}
