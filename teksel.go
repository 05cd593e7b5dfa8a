// Package teksel evaluates programs written in the teksel spreadsheet
// language.
//
// A program is a set of functions. Eval parses the source, evaluates the
// formula cells of the grid and then calls main:
//
//	result, err := teksel.Eval(ctx, `def main() { A1 = 2; return A1 * 21 }`)
//	if err != nil {
//		return err
//	}
//	fmt.Println(result.Value) // 42
package teksel

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/teksel-io/teksel/ast"
	"github.com/teksel-io/teksel/interpreter"
	"github.com/teksel-io/teksel/lexer"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/parser"
	"github.com/teksel-io/teksel/sheet"
	"github.com/teksel-io/teksel/token"
)

// Option configures an evaluation.
type Option func(*options)

type options struct {
	grid           *sheet.Grid
	rows           int
	logger         *zerolog.Logger
	recursionLimit int
	observer       interpreter.Observer
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) interpreterOpts() []interpreter.Option {
	var opts []interpreter.Option
	if o.grid != nil {
		opts = append(opts, interpreter.WithGrid(o.grid))
	}
	if o.rows > 0 {
		opts = append(opts, interpreter.WithRows(o.rows))
	}
	if o.logger != nil {
		opts = append(opts, interpreter.WithLogger(*o.logger))
	}
	if o.recursionLimit > 0 {
		opts = append(opts, interpreter.WithRecursionLimit(o.recursionLimit))
	}
	if o.observer != nil {
		opts = append(opts, interpreter.WithObserver(o.observer))
	}
	return opts
}

// WithGrid evaluates against an existing grid, which is modified in place.
func WithGrid(grid *sheet.Grid) Option {
	return func(o *options) {
		o.grid = grid
	}
}

// WithRows sets the size of the grid created when none is supplied.
func WithRows(rows int) Option {
	return func(o *options) {
		o.rows = rows
	}
}

// WithLogger enables debug tracing of calls and formula evaluation.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithRecursionLimit sets the number of consecutive calls of one function
// that raises a RecursionError.
func WithRecursionLimit(limit int) Option {
	return func(o *options) {
		o.recursionLimit = limit
	}
}

// WithObserver sets an observer for function calls and returns.
func WithObserver(observer interpreter.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// Result is the outcome of an evaluation.
type Result struct {
	// Value is the primitive returned by main, or nil if main returned
	// nothing.
	Value object.Value

	// Grid holds the cells as they were when the program finished or failed.
	// It is nil only if the grid could not be created.
	Grid *sheet.Grid

	// Err is the error that stopped the program, if any.
	Err error
}

type resultJSON struct {
	Value any         `json:"value"`
	Cells *sheet.Grid `json:"cells"`
	Error *string     `json:"error"`
}

// MarshalJSON encodes the result as {"value": ..., "cells": ..., "error": ...}.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Value: object.ToInterface(r.Value), Cells: r.Grid}
	if r.Err != nil {
		msg := r.Err.Error()
		out.Error = &msg
	}
	return json.Marshal(out)
}

// Tokenize returns the tokens of source, ending with EOF. On a lexical error
// the tokens read so far are returned with the error.
func Tokenize(source string) ([]token.Token, error) {
	return lexer.Tokenize(source)
}

// Parse returns the syntax tree of source.
func Parse(ctx context.Context, source string) (*ast.Program, error) {
	return parser.Parse(ctx, source)
}

// Eval parses and runs source. The returned Result is never nil; when an
// error occurs it is returned and also recorded in the Result, whose grid
// reflects every write made before the failure.
func Eval(ctx context.Context, source string, opts ...Option) (*Result, error) {
	program, err := parser.Parse(ctx, source)
	if err != nil {
		o := collectOptions(opts...)
		grid := o.grid
		if grid == nil {
			grid = newGrid(o)
		}
		return &Result{Grid: grid, Err: err}, err
	}
	return Run(ctx, program, opts...)
}

// Run executes a parsed program.
func Run(ctx context.Context, program *ast.Program, opts ...Option) (*Result, error) {
	o := collectOptions(opts...)
	result := &Result{Grid: o.grid}
	in, err := interpreter.New(o.interpreterOpts()...)
	if err != nil {
		result.Err = err
		return result, err
	}
	result.Grid = in.Grid()
	if err := in.Run(ctx, program); err != nil {
		result.Err = err
		return result, err
	}
	if value := in.LastValue(); value != nil {
		result.Value = object.Literal(value)
	}
	return result, nil
}

func newGrid(o *options) *sheet.Grid {
	if o.rows > 0 {
		return sheet.New(o.rows)
	}
	return sheet.New(sheet.DefaultRows)
}
