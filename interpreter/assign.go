package interpreter

import (
	"github.com/teksel-io/teksel/ast"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/token"
)

// assign stores value into the target of an assignment.
func (in *Interpreter) assign(ec *execContext, target ast.Expr, value object.Value) error {
	switch x := target.(type) {
	case *ast.Ident:
		return in.assignIdent(x, value)
	case *ast.Cell:
		return in.writeCell(x.Pos(), x.Row, x.Column, value)
	case *ast.Range:
		return in.assignRange(x, value)
	case *ast.Attr:
		cell, err := in.attrCell(ec, x)
		if err != nil {
			return err
		}
		if x.Kind == ast.AttrFormula {
			return in.assignFormula(ec, x, cell, value)
		}
		return in.writeCell(x.Pos(), cell.Row(), cell.Column(), value)
	}
	return errors.NewSyntaxError(target.Pos(), "cannot assign to %s", target)
}

// assignIdent binds a variable. A cell or range value is also written back
// to its place in the grid, which is how "cell += 1" inside a loop over a
// range updates the grid.
func (in *Interpreter) assignIdent(x *ast.Ident, value object.Value) error {
	value = object.Unwrap(value)
	switch v := value.(type) {
	case *object.Cell:
		if err := in.grid.Set(v); err != nil {
			return errors.WithPos(err, x.Pos())
		}
	case *object.Range:
		for _, cell := range v.Cells() {
			if err := in.grid.Set(cell); err != nil {
				return errors.WithPos(err, x.Pos())
			}
		}
	}
	in.scopes.set(x.Name, value)
	return nil
}

// writeCell replaces one grid cell. The new cell holds the primitive payload
// of value and records its textual form as the formula.
func (in *Interpreter) writeCell(pos token.Position, row int, column string, value object.Value) error {
	payload, err := cellPayload(value)
	if err != nil {
		return errors.WithPos(err, pos)
	}
	if err := in.grid.Put(row, column, payload, payload.Inspect()); err != nil {
		return errors.WithPos(err, pos)
	}
	return nil
}

func cellPayload(value object.Value) (object.Value, error) {
	if _, ok := object.Unwrap(value).(*object.Range); ok {
		return nil, errors.NewTypeError(noPos, "cannot assign a range to a single cell")
	}
	payload := object.Literal(value)
	if !object.Primitive(payload) {
		return nil, errors.NewTypeError(noPos, "a cell must hold an integer, float, text or boolean")
	}
	return payload, nil
}

// assignRange writes a scalar to every cell of the range, or copies a range
// of the same size cell by cell.
func (in *Interpreter) assignRange(x *ast.Range, value object.Value) error {
	targets, err := in.grid.Range(address(x.From), address(x.To))
	if err != nil {
		return errors.WithPos(err, x.Pos())
	}
	source, ok := object.Unwrap(value).(*object.Range)
	if !ok {
		for _, cell := range targets.Cells() {
			if err := in.writeCell(x.Pos(), cell.Row(), cell.Column(), value); err != nil {
				return err
			}
		}
		return nil
	}
	if source.Len() != targets.Len() {
		return errors.NewValueError(x.Pos(), "cannot assign a range of %d cells to a range of %d cells",
			source.Len(), targets.Len())
	}
	// Copy payloads first: the source may overlap the target.
	payloads := make([]object.Value, source.Len())
	for i, cell := range source.Cells() {
		payloads[i] = cell.Value()
	}
	for i, cell := range targets.Cells() {
		if err := in.writeCell(x.Pos(), cell.Row(), cell.Column(), payloads[i]); err != nil {
			return err
		}
	}
	return nil
}

// assignFormula handles "X.formula = text". Text starting with "=" is
// evaluated as an expression and the cell holds the result; other text is
// stored as a constant. Either way the text becomes the cell's formula.
func (in *Interpreter) assignFormula(ec *execContext, x *ast.Attr, cell *object.Cell, value object.Value) error {
	text, ok := object.Literal(value).(*object.Text)
	if !ok {
		return errors.NewTypeError(x.Period, "formula must be text (%s given)", object.Literal(value).Type())
	}
	formula := text.Value()
	result := object.Value(text)
	if IsFormula(formula) {
		var err error
		if result, err = in.evalFormula(ec.ctx, cell, formula); err != nil {
			return err
		}
	}
	if err := in.grid.Put(cell.Row(), cell.Column(), result, formula); err != nil {
		return errors.WithPos(err, x.Pos())
	}
	return nil
}
