// Package errors defines the error taxonomy shared by the lexer, parser and
// interpreter, along with helpers to format errors for terminals.
package errors

import (
	"errors"
	"fmt"

	"github.com/teksel-io/teksel/token"
)

// Kind classifies an error.
type Kind string

const (
	SyntaxError    Kind = "SyntaxError"
	TypeError      Kind = "TypeError"
	ValueError     Kind = "ValueError"
	NameError      Kind = "NameError"
	RecursionError Kind = "RecursionError"
)

// Error is the single error type raised while lexing, parsing or evaluating
// a program. Pos is the zero Position when the location is unknown.
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Hint    string
}

func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
}

// New returns an error of the given kind.
func New(kind Kind, pos token.Position, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Pos: pos}
}

// Errorf returns an error of the given kind with a formatted message.
func Errorf(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func NewSyntaxError(pos token.Position, format string, args ...any) *Error {
	return Errorf(SyntaxError, pos, format, args...)
}

func NewTypeError(pos token.Position, format string, args ...any) *Error {
	return Errorf(TypeError, pos, format, args...)
}

func NewValueError(pos token.Position, format string, args ...any) *Error {
	return Errorf(ValueError, pos, format, args...)
}

func NewNameError(pos token.Position, format string, args ...any) *Error {
	return Errorf(NameError, pos, format, args...)
}

func NewRecursionError(pos token.Position, format string, args ...any) *Error {
	return Errorf(RecursionError, pos, format, args...)
}

// WithHint returns a copy of the error carrying the given hint.
func (e *Error) WithHint(hint string) *Error {
	cp := *e
	cp.Hint = hint
	return &cp
}

// WithPos sets the position of err if it is an *Error without one. Other
// errors are returned unchanged.
func WithPos(err error, pos token.Position) error {
	var e *Error
	if !errors.As(err, &e) || e.Pos.IsValid() {
		return err
	}
	cp := *e
	cp.Pos = pos
	return &cp
}

// KindOf returns the kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
