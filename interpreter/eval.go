package interpreter

import (
	"fmt"

	"github.com/teksel-io/teksel/ast"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/object"
	"github.com/teksel-io/teksel/op"
	"github.com/teksel-io/teksel/sheet"
	"github.com/teksel-io/teksel/token"
)

var noPos token.Position

// eval computes the value of an expression. A nil value without an error
// means undefined, as produced by a call to a function that does not return
// a value.
func (in *Interpreter) eval(ec *execContext, expr ast.Expr) (object.Value, error) {
	switch x := expr.(type) {
	case *ast.Int:
		return object.NewInt(x.Value), nil
	case *ast.Float:
		return object.NewFloat(x.Value), nil
	case *ast.String:
		return object.NewText(x.Value), nil
	case *ast.Ident:
		return in.evalIdent(x)
	case *ast.Cell:
		cell, err := in.grid.Get(x.Row, x.Column)
		if err != nil {
			return nil, errors.WithPos(err, x.Pos())
		}
		return cell, nil
	case *ast.Range:
		rng, err := in.grid.Range(address(x.From), address(x.To))
		if err != nil {
			return nil, errors.WithPos(err, x.Pos())
		}
		return rng, nil
	case *ast.Attr:
		return in.evalAttr(ec, x)
	case *ast.Prefix:
		value, err := in.eval(ec, x.X)
		if err != nil {
			return nil, err
		}
		result, err := object.Negate(value)
		if err != nil {
			return nil, errors.WithPos(err, x.OpPos)
		}
		return result, nil
	case *ast.Infix:
		return in.evalInfix(ec, x)
	case *ast.Use:
		return in.evalUse(ec, x)
	case *ast.Call:
		return in.call(ec, x)
	}
	return nil, fmt.Errorf("unknown expression type %T", expr)
}

// evalIdent reads a variable. Cells and ranges come back wrapped in the
// variable's name so that assigning a computed result to the variable writes
// through to the grid.
func (in *Interpreter) evalIdent(x *ast.Ident) (object.Value, error) {
	value, ok := in.scopes.get(x.Name)
	if !ok {
		err := errors.NewNameError(x.Pos(), "name '%s' is not defined", x.Name)
		if hint := errors.FormatSuggestions(errors.SuggestSimilar(x.Name, in.scopes.names())); hint != "" {
			err = err.WithHint(hint)
		}
		return nil, err
	}
	switch value.(type) {
	case *object.Cell, *object.Range:
		return object.NewIdent(x.Name, value), nil
	}
	return value, nil
}

func (in *Interpreter) evalInfix(ec *execContext, x *ast.Infix) (object.Value, error) {
	left, err := in.eval(ec, x.X)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(ec, x.Y)
	if err != nil {
		return nil, err
	}
	var result object.Value
	switch x.Op {
	case "and", "or":
		if left == nil || right == nil {
			return nil, errors.NewValueError(x.OpPos, "operand of '%s' is undefined", x.Op)
		}
		if x.Op == "and" {
			result = object.NewBool(object.Truthy(left) && object.Truthy(right))
		} else {
			result = object.NewBool(object.Truthy(left) || object.Truthy(right))
		}
	default:
		if opType, ok := op.LookupCompare(x.Op); ok {
			result, err = object.Compare(opType, left, right)
		} else if opType, ok := op.LookupBinary(x.Op); ok {
			result, err = object.BinaryOp(opType, left, right)
		} else {
			err = errors.NewSyntaxError(x.OpPos, "unknown operator '%s'", x.Op)
		}
	}
	if err != nil {
		return nil, errors.WithPos(err, x.OpPos)
	}
	return result, nil
}

// evalUse evaluates "use X if C else E". The chosen branch is reduced to its
// primitive payload.
func (in *Interpreter) evalUse(ec *execContext, x *ast.Use) (object.Value, error) {
	cond, err := in.eval(ec, x.Cond)
	if err != nil {
		return nil, err
	}
	branch := x.Else
	if object.IsTrue(cond) {
		branch = x.X
	}
	value, err := in.eval(ec, branch)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, errors.NewValueError(branch.Pos(), "use expression is undefined")
	}
	return object.Literal(value), nil
}

// evalAttr reads ".value", the primitive payload of a cell, or ".formula",
// the text the cell was last assigned from.
func (in *Interpreter) evalAttr(ec *execContext, x *ast.Attr) (object.Value, error) {
	cell, err := in.attrCell(ec, x)
	if err != nil {
		return nil, err
	}
	if x.Kind == ast.AttrFormula {
		return object.NewText(cell.Formula()), nil
	}
	return cell.Value(), nil
}

// attrCell resolves the cell an attribute refers to. The grid is consulted
// again so that a cell held in a variable shows its current contents.
func (in *Interpreter) attrCell(ec *execContext, x *ast.Attr) (*object.Cell, error) {
	target, err := in.eval(ec, x.X)
	if err != nil {
		return nil, err
	}
	cell, ok := object.Unwrap(target).(*object.Cell)
	if !ok {
		kind := "undefined"
		if target != nil {
			kind = string(object.Unwrap(target).Type())
		}
		return nil, errors.NewTypeError(x.Period, "attribute '%s' requires a cell (%s given)", x.Kind, kind)
	}
	current, err := in.grid.Get(cell.Row(), cell.Column())
	if err != nil {
		return nil, errors.WithPos(err, x.Pos())
	}
	return current, nil
}

func address(c *ast.Cell) sheet.Address {
	return sheet.Address{Column: c.Column, Row: c.Row}
}
