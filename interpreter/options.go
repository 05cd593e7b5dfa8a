package interpreter

import (
	"github.com/rs/zerolog"
	"github.com/teksel-io/teksel/sheet"
)

// Option is a configuration function for an Interpreter.
type Option func(*Interpreter)

// WithGrid runs programs against an existing grid. Formula cells in the grid
// are evaluated when the interpreter is created. The grid is modified in
// place.
func WithGrid(grid *sheet.Grid) Option {
	return func(in *Interpreter) {
		in.grid = grid
	}
}

// WithRows sets the highest row index of the grid created when no grid is
// supplied. The default is sheet.DefaultRows.
func WithRows(rows int) Option {
	return func(in *Interpreter) {
		in.rows = rows
	}
}

// WithLogger sets the logger used for debug tracing. The default discards
// everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithRecursionLimit sets how many consecutive calls of the same function
// are allowed before a RecursionError is raised. The call that reaches the
// limit is rejected. The default is DefaultRecursionLimit.
func WithRecursionLimit(limit int) Option {
	return func(in *Interpreter) {
		if limit > 0 {
			in.recursionLimit = limit
		}
	}
}

// WithMaxCallDepth bounds the total depth of the call stack, whatever
// functions it holds. The default is DefaultMaxCallDepth.
func WithMaxCallDepth(depth int) Option {
	return func(in *Interpreter) {
		if depth > 0 {
			in.maxCallDepth = depth
		}
	}
}

// WithObserver sets an observer for function calls and returns.
func WithObserver(observer Observer) Option {
	return func(in *Interpreter) {
		in.observer = observer
	}
}
