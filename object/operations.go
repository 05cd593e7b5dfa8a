package object

import (
	"math"
	"strings"

	"github.com/teksel-io/teksel/op"
)

// MaxTextRepeat bounds the length of text produced by "text * n".
const MaxTextRepeat = 1 << 20

// BinaryOp applies an arithmetic operator to two values.
//
// Wrappers on the left are kept: an identifier holding a cell is rewrapped
// around the result, a cell result keeps its address and formula, and a range
// applies the operator to each of its cells. Wrappers on the right are
// reduced to their payload, except that a range on the right is an error.
func BinaryOp(opType op.BinaryOpType, a, b Value) (Value, error) {
	if a == nil || b == nil {
		return nil, valueErrorf("cannot %s an undefined value", opType.Verb())
	}
	switch a := a.(type) {
	case *Ident:
		cell, ok := a.value.(*Cell)
		if !ok {
			return a, nil
		}
		result, err := BinaryOp(opType, cell, b)
		if err != nil {
			return nil, err
		}
		return NewIdent(a.name, result), nil
	case *Cell:
		result, err := BinaryOp(opType, a.value, b)
		if err != nil {
			return nil, err
		}
		return a.WithValue(result), nil
	case *Range:
		cells := make([]*Cell, len(a.cells))
		for i, c := range a.cells {
			result, err := BinaryOp(opType, c.value, b)
			if err != nil {
				return nil, err
			}
			cells[i] = c.WithValue(result)
		}
		return NewRange(cells), nil
	}
	switch b := b.(type) {
	case *Ident:
		return BinaryOp(opType, a, b.value)
	case *Cell:
		return BinaryOp(opType, a, b.value)
	case *Range:
		return nil, unsupported(opType, a, b)
	}
	switch opType {
	case op.Add:
		return add(a, b)
	case op.Subtract:
		return arithmetic(opType, a, b)
	case op.Multiply:
		if text, ok := a.(*Text); ok {
			return repeat(text, b)
		}
		return arithmetic(opType, a, b)
	case op.Divide:
		return arithmetic(opType, a, b)
	}
	return nil, typeErrorf("unknown operator %d", opType)
}

func add(a, b Value) (Value, error) {
	switch a := a.(type) {
	case *Text:
		switch b := b.(type) {
		case *Int, *Float:
			if a.value == "" {
				return b, nil
			}
		case *Bool:
		case *Text:
		default:
			return nil, unsupported(op.Add, a, b)
		}
		return NewText(a.value + b.Inspect()), nil
	case *Int, *Float:
		if b, ok := b.(*Text); ok {
			if b.value == "" {
				return a, nil
			}
			return NewText(a.Inspect() + b.value), nil
		}
	case *Bool:
		if b, ok := b.(*Text); ok {
			return NewText(a.Inspect() + b.value), nil
		}
		return nil, unsupported(op.Add, a, b)
	}
	return arithmetic(op.Add, a, b)
}

// arithmetic applies an operator to two numbers. Two integers give an
// integer; any float operand gives a float.
func arithmetic(opType op.BinaryOpType, a, b Value) (Value, error) {
	if x, ok := a.(*Int); ok {
		if y, ok := b.(*Int); ok {
			return intOp(opType, x.value, y.value)
		}
	}
	x, okA := toFloat(a)
	y, okB := toFloat(b)
	if !okA || !okB {
		return nil, unsupported(opType, a, b)
	}
	switch opType {
	case op.Add:
		return NewFloat(x + y), nil
	case op.Subtract:
		return NewFloat(x - y), nil
	case op.Multiply:
		return NewFloat(x * y), nil
	case op.Divide:
		if y == 0 {
			return nil, valueErrorf("division by zero")
		}
		return NewFloat(x / y), nil
	}
	return nil, unsupported(opType, a, b)
}

func intOp(opType op.BinaryOpType, x, y int64) (Value, error) {
	switch opType {
	case op.Add:
		return NewInt(x + y), nil
	case op.Subtract:
		return NewInt(x - y), nil
	case op.Multiply:
		return NewInt(x * y), nil
	case op.Divide:
		if y == 0 {
			return nil, valueErrorf("division by zero")
		}
		return NewInt(x / y), nil
	}
	return nil, typeErrorf("unknown operator %d", opType)
}

func repeat(text *Text, count Value) (Value, error) {
	n, ok := count.(*Int)
	if !ok {
		return nil, unsupported(op.Multiply, text, count)
	}
	if n.value < 0 {
		return nil, valueErrorf("cannot repeat text a negative number of times")
	}
	if n.value > 0 && int64(len(text.value)) > MaxTextRepeat/n.value {
		return nil, valueErrorf("repeated text would exceed %d characters", MaxTextRepeat)
	}
	return NewText(strings.Repeat(text.value, int(n.value))), nil
}

func toFloat(v Value) (float64, bool) {
	switch v := v.(type) {
	case *Int:
		return float64(v.value), true
	case *Float:
		return v.value, true
	}
	return 0, false
}

// Negate applies unary minus. Numbers are negated, booleans inverted, and
// cells and identifiers negate their payload.
func Negate(v Value) (Value, error) {
	switch v := v.(type) {
	case nil:
		return nil, valueErrorf("cannot negate an undefined value")
	case *Int:
		return NewInt(-v.value), nil
	case *Float:
		return NewFloat(-v.value), nil
	case *Bool:
		return NewBool(!v.value), nil
	case *Cell:
		return Negate(v.value)
	case *Ident:
		return Negate(v.value)
	}
	return nil, typeErrorf("cannot negate %s", v.Type())
}

// Compare applies a comparison operator to the primitive payloads of two
// values. Numbers compare numerically and text lexically. Values of different
// kinds are never equal and cannot be ordered.
func Compare(opType op.CompareOpType, a, b Value) (Value, error) {
	if a == nil || b == nil {
		return nil, valueErrorf("cannot compare an undefined value")
	}
	x, y := Literal(a), Literal(b)
	if x == nil || y == nil {
		return nil, valueErrorf("cannot compare an empty range")
	}
	cmp, ok := order(x, y)
	if !ok {
		switch opType {
		case op.Equal:
			return NewBool(equal(x, y)), nil
		case op.NotEqual:
			return NewBool(!equal(x, y)), nil
		}
		return nil, typeErrorf("cannot compare %s and %s with %s", x.Type(), y.Type(), opType)
	}
	switch opType {
	case op.LessThan:
		return NewBool(cmp < 0), nil
	case op.LessThanOrEqual:
		return NewBool(cmp <= 0), nil
	case op.Equal:
		return NewBool(cmp == 0), nil
	case op.NotEqual:
		return NewBool(cmp != 0), nil
	case op.GreaterThan:
		return NewBool(cmp > 0), nil
	case op.GreaterThanOrEqual:
		return NewBool(cmp >= 0), nil
	}
	return nil, typeErrorf("unknown comparison operator %d", opType)
}

// order compares two ordered primitives of compatible kinds.
func order(x, y Value) (int, bool) {
	if a, ok := x.(*Int); ok {
		if b, ok := y.(*Int); ok {
			switch {
			case a.value < b.value:
				return -1, true
			case a.value > b.value:
				return 1, true
			}
			return 0, true
		}
	}
	if a, ok := toFloat(x); ok {
		b, ok := toFloat(y)
		if !ok || math.IsNaN(a) || math.IsNaN(b) {
			return 0, false
		}
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}
		return 0, true
	}
	if a, ok := x.(*Text); ok {
		if b, ok := y.(*Text); ok {
			return strings.Compare(a.value, b.value), true
		}
	}
	return 0, false
}

func equal(x, y Value) bool {
	a, ok := x.(*Bool)
	if !ok {
		return false
	}
	b, ok := y.(*Bool)
	return ok && a.value == b.value
}
