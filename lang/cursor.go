package lang

import (
	"strconv"
	"unicode/utf8"
)

// Position identifies a location in source text.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number in runes, starting at 1
}

// String returns the position formatted as "line L, column C".
func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}

// cursor reads runes from source text while tracking line and column.
// It only moves forward.
type cursor struct {
	input []byte
	pos   int
	line  int
	col   int
}

func newCursor(input []byte) *cursor {
	return &cursor{input: input, line: 1, col: 1}
}

// eof reports whether all input has been consumed.
func (c *cursor) eof() bool {
	return c.pos >= len(c.input)
}

// peek returns the rune at the current position, or 0 at end of input.
func (c *cursor) peek() rune {
	if c.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(c.input[c.pos:])

	return r
}

// peekAt returns the rune n runes ahead of the current position, or 0 if
// that is beyond the end of input. peekAt(0) is equivalent to peek.
func (c *cursor) peekAt(n int) rune {
	off := c.pos
	for ; n > 0 && off < len(c.input); n-- {
		_, size := utf8.DecodeRune(c.input[off:])
		off += size
	}

	if off >= len(c.input) {
		return 0
	}

	r, _ := utf8.DecodeRune(c.input[off:])

	return r
}

// advance consumes one rune.
// A newline increments the line number and resets the column.
func (c *cursor) advance() {
	if c.eof() {
		return
	}

	r, size := utf8.DecodeRune(c.input[c.pos:])

	c.pos += size
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
}

// position returns the current position.
func (c *cursor) position() Position {
	return Position{
		Offset: c.pos,
		Line:   c.line,
		Column: c.col,
	}
}

// text returns the input between offset start and the current position.
func (c *cursor) text(start int) string {
	return string(c.input[start:c.pos])
}
