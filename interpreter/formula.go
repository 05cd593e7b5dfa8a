package interpreter

import (
	"context"
	"strings"

	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/parser"
)

// IsFormula reports whether text stored in a cell is a formula.
func IsFormula(text string) bool {
	return strings.HasPrefix(text, "=")
}

// FormulaSource returns the program a formula is evaluated as: a main
// function returning the expression after the "=".
func FormulaSource(formula string) string {
	return "def main() { return " + strings.TrimPrefix(formula, "=") + " }"
}

// evalFormula evaluates a formula in a separate interpreter that shares this
// interpreter's grid. Its errors are returned unchanged. The result is reduced
// to a primitive; a formula that yields nothing gives empty text.
func (in *Interpreter) evalFormula(ctx context.Context, cell *object.Cell, formula string) (object.Value, error) {
	in.logger.Debug().Str("cell", cell.Address()).Str("formula", formula).Msg("evaluating formula")
	program, err := parser.Parse(ctx, FormulaSource(formula))
	if err != nil {
		return nil, err
	}
	sub := &Interpreter{
		grid:           in.grid,
		rows:           in.rows,
		logger:         in.logger,
		observer:       in.observer,
		recursionLimit: in.recursionLimit,
		maxCallDepth:   in.maxCallDepth,
	}
	if err := sub.Run(ctx, program); err != nil {
		return nil, err
	}
	result := sub.LastValue()
	if result == nil {
		return object.EmptyText, nil
	}
	if _, ok := object.Unwrap(result).(*object.Range); ok {
		return nil, errors.NewTypeError(noPos, "formula %q of cell %s must produce a single value, not a range",
			formula, cell.Address())
	}
	return object.Literal(result), nil
}

// evaluateGrid replaces every formula cell of the grid with its result,
// visiting cells row by row.
func (in *Interpreter) evaluateGrid(ctx context.Context) error {
	var formulas []*object.Cell
	_ = in.grid.Each(func(cell *object.Cell) error {
		if text, ok := cell.Value().(*object.Text); ok && IsFormula(text.Value()) {
			formulas = append(formulas, cell)
		}
		return nil
	})
	in.logger.Debug().Int("formulas", len(formulas)).Msg("evaluating grid")
	for _, cell := range formulas {
		formula := cell.Value().(*object.Text).Value()
		result, err := in.evalFormula(ctx, cell, formula)
		if err != nil {
			return err
		}
		if err := in.grid.Put(cell.Row(), cell.Column(), result, formula); err != nil {
			return err
		}
	}
	return nil
}
