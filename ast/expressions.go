package ast

import (
	"strconv"
	"strings"

	"github.com/teksel-io/teksel/token"
)

// Ident is an expression node that refers to a variable by name.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// Prefix is an operator expression where the operator precedes the operand.
// The only prefix operator is negation, "-x".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "-"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string { return "(" + x.Op + x.X.String() + ")" }

// Infix is an operator expression where the operator is between the operands.
// Examples include "x + y", "A1 <= 3" and "a or b".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "+", "-", "*", "/", "<", "==", "and", "or", etc.
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	return "(" + x.X.String() + " " + x.Op + " " + x.Y.String() + ")"
}

// Call is a function call, "sum(A1:A10)".
type Call struct {
	Fun    *Ident
	Lparen token.Position // position of "("
	Args   []Expr
	Rparen token.Position // position of ")"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	args := make([]string, len(x.Args))
	for i, arg := range x.Args {
		args[i] = arg.String()
	}
	return x.Fun.Name + "(" + strings.Join(args, ", ") + ")"
}

// Use is the conditional expression "use X if Cond else Else".
type Use struct {
	Use  token.Position // position of "use"
	X    Expr           // value when the condition is true
	Cond Expr
	Else Expr // value otherwise
}

func (x *Use) exprNode() {}

func (x *Use) Pos() token.Position { return x.Use }
func (x *Use) End() token.Position { return x.Else.End() }

func (x *Use) String() string {
	return "(use " + x.X.String() + " if " + x.Cond.String() + " else " + x.Else.String() + ")"
}

// Cell is a reference to one grid cell, such as "B10".
type Cell struct {
	CellPos token.Position // position of the reference
	Column  string         // column letter, "A" to "Z"
	Row     int
}

func (x *Cell) exprNode() {}

func (x *Cell) Pos() token.Position { return x.CellPos }
func (x *Cell) End() token.Position { return x.CellPos.Advance(len(x.String())) }

func (x *Cell) String() string { return x.Column + strconv.Itoa(x.Row) }

// Range is a rectangular span of cells between two corners, "A1:C3".
type Range struct {
	From *Cell
	To   *Cell
}

func (x *Range) exprNode() {}

func (x *Range) Pos() token.Position { return x.From.Pos() }
func (x *Range) End() token.Position { return x.To.End() }

func (x *Range) String() string { return x.From.String() + ":" + x.To.String() }

// AttrKind names the attribute accessed by an Attr expression.
type AttrKind string

const (
	AttrValue   AttrKind = "value"
	AttrFormula AttrKind = "formula"
)

// Attr accesses an attribute of a cell, "A1.formula" or "c.value". X is a
// Cell, an Ident or a Call.
type Attr struct {
	X      Expr
	Period token.Position // position of "."
	Kind   AttrKind
}

func (x *Attr) exprNode() {}

func (x *Attr) Pos() token.Position { return x.X.Pos() }
func (x *Attr) End() token.Position { return x.Period.Advance(1 + len(x.Kind)) }

func (x *Attr) String() string { return x.X.String() + "." + string(x.Kind) }
