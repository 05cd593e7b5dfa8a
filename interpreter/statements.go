package interpreter

import (
	"fmt"

	"github.com/teksel-io/teksel/ast"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/object"
)

// execBlock runs the statements of b in a new scope, stopping early after a
// return.
func (in *Interpreter) execBlock(ec *execContext, b *ast.Block) error {
	in.scopes.pushBlock()
	defer in.scopes.popBlock()
	for _, stmt := range b.Stmts {
		if err := in.exec(ec, stmt); err != nil {
			return err
		}
		if ec.returning() {
			return nil
		}
	}
	return nil
}

func (in *Interpreter) exec(ec *execContext, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Assign:
		return in.execAssign(ec, s)
	case *ast.If:
		return in.execIf(ec, s)
	case *ast.Foreach:
		return in.execForeach(ec, s)
	case *ast.Return:
		return in.execReturn(ec, s)
	case *ast.ExprStmt:
		_, err := in.eval(ec, s.X)
		return err
	case *ast.Block:
		return in.execBlock(ec, s)
	}
	return fmt.Errorf("unknown statement type %T", stmt)
}

func (in *Interpreter) execAssign(ec *execContext, s *ast.Assign) error {
	value, err := in.eval(ec, s.Value)
	if err != nil {
		return err
	}
	if value == nil {
		return errors.NewNameError(s.OpPos, "right side of assignment to %s must have a value", s.X)
	}
	return in.assign(ec, s.X, value)
}

func (in *Interpreter) execIf(ec *execContext, s *ast.If) error {
	cond, err := in.eval(ec, s.Cond)
	if err != nil {
		return err
	}
	if object.IsTrue(cond) {
		return in.execBlock(ec, s.Consequence)
	}
	if s.Alternative != nil {
		return in.execBlock(ec, s.Alternative)
	}
	return nil
}

func (in *Interpreter) execReturn(ec *execContext, s *ast.Return) error {
	var value object.Value
	if s.Value != nil {
		var err error
		if value, err = in.eval(ec, s.Value); err != nil {
			return err
		}
	}
	fr := ec.top()
	fr.result = value
	fr.returning = true
	return nil
}

func (in *Interpreter) execForeach(ec *execContext, s *ast.Foreach) error {
	iterable, err := in.eval(ec, s.Iterable)
	if err != nil {
		return err
	}
	items, err := elements(iterable)
	if err != nil {
		return errors.WithPos(err, s.Iterable.Pos())
	}
	for _, item := range items {
		if err := ec.cancelled(); err != nil {
			return err
		}
		in.scopes.set(s.Name.Name, item)
		if err := in.execBlock(ec, s.Body); err != nil {
			return err
		}
		if ec.returning() {
			return nil
		}
	}
	return nil
}

// elements lists what a foreach loop visits: the cells of a range, or the
// characters of text.
func elements(v object.Value) ([]object.Value, error) {
	switch v := object.Unwrap(v).(type) {
	case nil:
		return nil, errors.NewValueError(noPos, "iterable expression is undefined")
	case *object.Range:
		items := make([]object.Value, v.Len())
		for i, cell := range v.Cells() {
			items[i] = cell
		}
		return items, nil
	case *object.Text:
		return characters(v), nil
	case *object.Cell:
		if text, ok := v.Value().(*object.Text); ok {
			return characters(text), nil
		}
	}
	return nil, errors.NewTypeError(noPos, "iterable must be a list or text (%s given)", object.Literal(v).Type())
}

func characters(t *object.Text) []object.Value {
	var items []object.Value
	for _, ch := range t.Value() {
		items = append(items, object.NewText(string(ch)))
	}
	return items
}
