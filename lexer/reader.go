package lexer

import (
	"unicode/utf8"

	"github.com/teksel-io/teksel/token"
)

// EOF is returned by Reader.Next once the input is exhausted.
const EOF rune = -1

// Reader streams the characters of a source string while tracking the
// position of each one. Both "\r\n" and a lone "\r" are read as a single
// "\n".
type Reader struct {
	input  string
	offset int
	line   int
	column int
}

// NewReader returns a Reader positioned at the start of input.
func NewReader(input string) *Reader {
	return &Reader{input: input, line: 1, column: 1}
}

// Next returns the next character and its position. At the end of the input
// it returns EOF along with the position just past the last character, and
// keeps doing so on every later call.
func (r *Reader) Next() (rune, token.Position) {
	pos := r.Position()
	if r.offset >= len(r.input) {
		return EOF, pos
	}
	ch, size := utf8.DecodeRuneInString(r.input[r.offset:])
	r.offset += size
	if ch == '\r' {
		if r.offset < len(r.input) && r.input[r.offset] == '\n' {
			r.offset++
		}
		ch = '\n'
	}
	if ch == '\n' {
		r.line++
		r.column = 1
	} else {
		r.column++
	}
	return ch, pos
}

// Peek returns the next character without consuming it.
func (r *Reader) Peek() rune {
	if r.offset >= len(r.input) {
		return EOF
	}
	ch, _ := utf8.DecodeRuneInString(r.input[r.offset:])
	if ch == '\r' {
		return '\n'
	}
	return ch
}

// Position returns the position of the next character to be read.
func (r *Reader) Position() token.Position {
	return token.Position{Offset: r.offset, Line: r.line, Column: r.column}
}
