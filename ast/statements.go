package ast

import (
	"strings"

	"github.com/teksel-io/teksel/token"
)

// FuncDef is a function definition, "def name(a, b) { ... }".
type FuncDef struct {
	Def    token.Position // position of "def"
	Name   *Ident
	Params []*Ident
	Body   *Block
}

func (s *FuncDef) Pos() token.Position { return s.Def }
func (s *FuncDef) End() token.Position { return s.Body.End() }

func (s *FuncDef) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Name
	}
	return "def " + s.Name.Name + "(" + strings.Join(params, ", ") + ") " + s.Body.String()
}

// Block is a braced sequence of statements.
type Block struct {
	Lbrace token.Position // position of "{"
	Stmts  []Stmt
	Rbrace token.Position // position of "}"
}

func (s *Block) stmtNode() {}

func (s *Block) Pos() token.Position { return s.Lbrace }
func (s *Block) End() token.Position { return s.Rbrace.Advance(1) }

func (s *Block) String() string {
	if len(s.Stmts) == 0 {
		return "{ }"
	}
	stmts := make([]string, len(s.Stmts))
	for i, stmt := range s.Stmts {
		stmts[i] = stmt.String()
	}
	return "{ " + strings.Join(stmts, "; ") + " }"
}

// Assign is an assignment statement. Compound assignments are stored in
// their expanded form, so "x += 1" has X "x" and Value "(x + 1)".
type Assign struct {
	X     Expr           // target: identifier, cell, range or attribute
	OpPos token.Position // position of the assignment operator
	Value Expr
}

func (s *Assign) stmtNode() {}

func (s *Assign) Pos() token.Position { return s.X.Pos() }
func (s *Assign) End() token.Position { return s.Value.End() }

func (s *Assign) String() string { return s.X.String() + " = " + s.Value.String() }

// If is a conditional statement with an optional else block.
type If struct {
	If          token.Position // position of "if"
	Cond        Expr
	Consequence *Block
	Alternative *Block // nil without an else block
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Position { return s.If }
func (s *If) End() token.Position {
	if s.Alternative != nil {
		return s.Alternative.End()
	}
	return s.Consequence.End()
}

func (s *If) String() string {
	out := "if " + s.Cond.String() + " " + s.Consequence.String()
	if s.Alternative != nil {
		out += " else " + s.Alternative.String()
	}
	return out
}

// Foreach iterates over a range or text, "foreach cell in A1:A10 { ... }".
type Foreach struct {
	Foreach  token.Position // position of "foreach"
	Name     *Ident
	Iterable Expr
	Body     *Block
}

func (s *Foreach) stmtNode() {}

func (s *Foreach) Pos() token.Position { return s.Foreach }
func (s *Foreach) End() token.Position { return s.Body.End() }

func (s *Foreach) String() string {
	return "foreach " + s.Name.Name + " in " + s.Iterable.String() + " " + s.Body.String()
}

// Return is a return statement. Value is nil for a bare "return".
type Return struct {
	Return token.Position // position of "return"
	Value  Expr
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.Return }
func (s *Return) End() token.Position {
	if s.Value != nil {
		return s.Value.End()
	}
	return s.Return.Advance(len("return"))
}

func (s *Return) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// ExprStmt is an expression evaluated for its side effects, such as a
// function call.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }
func (s *ExprStmt) End() token.Position { return s.X.End() }

func (s *ExprStmt) String() string { return s.X.String() }
