// Package interpreter runs teksel programs against a grid of cells.
//
// An Interpreter owns one grid. Creating it evaluates any formula cells in
// the supplied grid; Run then calls the program's main function, which may
// read and write cells, call other functions and assign formulas:
//
//	program, err := parser.Parse(ctx, source)
//	if err != nil {
//		return err
//	}
//	in, err := interpreter.New(interpreter.WithGrid(grid))
//	if err != nil {
//		return err
//	}
//	if err := in.Run(ctx, program); err != nil {
//		return err
//	}
//	fmt.Println(in.LastValue())
package interpreter

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/teksel-io/teksel/ast"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/sheet"
	"github.com/teksel-io/teksel/token"
)

const (
	// DefaultRecursionLimit is the number of consecutive calls of one
	// function at which a RecursionError is raised.
	DefaultRecursionLimit = 100

	// DefaultMaxCallDepth bounds the call stack as a whole. This is a
	// deliberate departure from the language's consecutive-call guard alone,
	// which leaves mutual recursion unbounded: such recursion still runs
	// past the guard but fails with a RecursionError at this depth instead
	// of exhausting the goroutine stack. Use WithMaxCallDepth to raise it.
	DefaultMaxCallDepth = 10000

	// MainFunction is the name of the entry point.
	MainFunction = "main"
)

// Interpreter evaluates programs. It is not safe for concurrent use.
type Interpreter struct {
	grid           *sheet.Grid
	rows           int
	logger         zerolog.Logger
	observer       Observer
	recursionLimit int
	maxCallDepth   int

	program *ast.Program
	scopes  scopes
	last    object.Value
}

// New creates an interpreter. Cells of a supplied grid that hold text
// starting with "=" are evaluated as formulas, row by row, and replaced with
// their results.
func New(options ...Option) (*Interpreter, error) {
	in := newInterpreter(options)
	if in.grid == nil {
		in.grid = sheet.New(in.rows)
		return in, nil
	}
	if err := in.evaluateGrid(context.Background()); err != nil {
		return nil, err
	}
	return in, nil
}

func newInterpreter(options []Option) *Interpreter {
	in := &Interpreter{
		rows:           sheet.DefaultRows,
		logger:         zerolog.Nop(),
		observer:       NoOpObserver{},
		recursionLimit: DefaultRecursionLimit,
		maxCallDepth:   DefaultMaxCallDepth,
	}
	for _, opt := range options {
		opt(in)
	}
	return in
}

// Grid returns the grid the interpreter reads and writes.
func (in *Interpreter) Grid() *sheet.Grid {
	return in.grid
}

// LastValue returns the value returned by main in the most recent Run, or
// nil if main returned nothing or the run failed.
func (in *Interpreter) LastValue() object.Value {
	return in.last
}

// Run calls the main function of program. The first error stops the program;
// cells written before it keep their new values. Cancelling ctx stops the
// program at the next function call or loop iteration.
func (in *Interpreter) Run(ctx context.Context, program *ast.Program) error {
	in.last = nil
	in.program = program
	in.scopes = scopes{}
	main, ok := program.Func(MainFunction)
	if !ok {
		return errors.NewNameError(token.Position{}, "no main function defined")
	}
	ec := &execContext{ctx: ctx}
	result, err := in.invoke(ec, main, nil, token.Position{})
	if err != nil {
		return err
	}
	in.last = result
	return nil
}
