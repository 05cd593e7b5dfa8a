package ast

import (
	"strconv"

	"github.com/teksel-io/teksel/token"
)

// Int is an integer literal.
type Int struct {
	ValuePos token.Position // position of the literal
	Literal  string         // source text
	Value    int64
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }
func (x *Int) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Int) String() string { return x.Literal }

// Float is a floating point literal.
type Float struct {
	ValuePos token.Position // position of the literal
	Literal  string         // source text
	Value    float64
}

func (x *Float) exprNode() {}

func (x *Float) Pos() token.Position { return x.ValuePos }
func (x *Float) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Float) String() string { return x.Literal }

// String is a text literal. Value holds the decoded contents.
type String struct {
	ValuePos token.Position // position of the opening quote
	Value    string
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.ValuePos.Advance(len(x.Value) + 2) }

func (x *String) String() string { return strconv.Quote(x.Value) }
