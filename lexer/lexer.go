// Package lexer turns teksel source code into a stream of tokens.
package lexer

import (
	"strings"

	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/token"
)

// Lexer produces tokens from source code one at a time. It holds one
// character of lookahead: ch is the current character and pos its position.
type Lexer struct {
	reader *Reader
	ch     rune
	pos    token.Position
}

// New returns a Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{reader: NewReader(input)}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	l.ch, l.pos = l.reader.Next()
}

// Next returns the next token. Once the input is exhausted it returns an EOF
// token on every call. Malformed input results in a SyntaxError.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()
	start := l.pos
	switch {
	case l.ch == EOF:
		return token.Token{Type: token.EOF, Position: start}, nil
	case isLetter(l.ch):
		return l.readIdentifier(start)
	case isDigit(l.ch):
		return l.readNumber(start)
	case l.ch == '"' || l.ch == '\'':
		return l.readString(start)
	}
	if next := l.reader.Peek(); next != EOF {
		op := string(l.ch) + string(next)
		if tokType, ok := token.LookupOperator(op); ok {
			l.readChar()
			l.readChar()
			return token.Token{Type: tokType, Literal: op, Position: start}, nil
		}
	}
	if tokType, ok := token.LookupPunctuation(l.ch); ok {
		lit := string(l.ch)
		l.readChar()
		return token.Token{Type: tokType, Literal: lit, Position: start}, nil
	}
	return token.Token{}, errors.NewSyntaxError(start, "unexpected character %q", l.ch)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n':
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != EOF {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readIdentifier(start token.Position) (token.Token, error) {
	var b strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) {
		if b.Len() == token.MaxIdentLength {
			return token.Token{}, errors.NewSyntaxError(start,
				"identifier exceeds the maximum length of %d", token.MaxIdentLength)
		}
		b.WriteRune(l.ch)
		l.readChar()
	}
	ident := b.String()
	if isCell(ident) {
		return token.Token{Type: token.CELL, Literal: ident, Position: start}, nil
	}
	return token.Token{Type: token.LookupIdentifier(ident), Literal: ident, Position: start}, nil
}

// isCell reports whether ident is an uppercase letter followed by one to
// three digits.
func isCell(ident string) bool {
	if len(ident) < 2 || len(ident) > 4 || ident[0] < 'A' || ident[0] > 'Z' {
		return false
	}
	for i := 1; i < len(ident); i++ {
		if !isDigit(rune(ident[i])) {
			return false
		}
	}
	return true
}

func (l *Lexer) readNumber(start token.Position) (token.Token, error) {
	var b strings.Builder
	var value int64
	for isDigit(l.ch) {
		if b.Len() == 1 && value == 0 {
			return token.Token{}, errors.NewSyntaxError(start, "leading zeros are not allowed in numbers")
		}
		value = value*10 + int64(l.ch-'0')
		if value > token.MaxInt {
			return token.Token{}, errors.NewSyntaxError(start,
				"integer literal exceeds the maximum value of %d", token.MaxInt)
		}
		b.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch != '.' {
		return token.Token{Type: token.INT, Literal: b.String(), Position: start, Int: value}, nil
	}
	b.WriteRune(l.ch)
	l.readChar()
	if !isDigit(l.ch) {
		return token.Token{}, errors.NewSyntaxError(l.pos, "expected a digit after the decimal point")
	}
	var fraction float64
	divisor := 1.0
	for digits := 0; isDigit(l.ch); digits++ {
		if digits == token.MaxIdentLength {
			return token.Token{}, errors.NewSyntaxError(start, "float literal has too many digits")
		}
		fraction = fraction*10 + float64(l.ch-'0')
		divisor *= 10
		b.WriteRune(l.ch)
		l.readChar()
	}
	return token.Token{
		Type:     token.FLOAT,
		Literal:  b.String(),
		Position: start,
		Float:    float64(value) + fraction/divisor,
	}, nil
}

func (l *Lexer) readString(start token.Position) (token.Token, error) {
	quote := l.ch
	l.readChar()
	var b strings.Builder
	length := 0
	for l.ch != quote {
		if l.ch == EOF {
			return token.Token{}, errors.NewSyntaxError(start, "unterminated string literal")
		}
		ch := l.ch
		if ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				ch = '\n'
			case 't':
				ch = '\t'
			case '"', '\'', '\\':
				ch = l.ch
			case EOF:
				return token.Token{}, errors.NewSyntaxError(start, "unterminated string literal")
			default:
				return token.Token{}, errors.NewSyntaxError(l.pos, "invalid escape sequence '\\%c'", l.ch)
			}
		}
		if length == token.MaxStringLength {
			return token.Token{}, errors.NewSyntaxError(start,
				"string literal exceeds the maximum length of %d", token.MaxStringLength)
		}
		b.WriteRune(ch)
		length++
		l.readChar()
	}
	l.readChar()
	return token.Token{Type: token.STRING, Literal: b.String(), Position: start}, nil
}

// Tokenize lexes the whole input. The returned slice ends with the EOF
// token. On error, the tokens read so far are returned with the error.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
