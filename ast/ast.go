// Package ast defines the abstract syntax tree of teksel programs.
package ast

import (
	"strings"

	"github.com/teksel-io/teksel/token"
)

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Stmt represents a statement node. Statements cause side effects but
// do not evaluate to a value.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node: the function definitions of a source file in
// the order they were declared.
type Program struct {
	Funcs []*FuncDef
	index map[string]*FuncDef
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{index: map[string]*FuncDef{}}
}

// Add appends a function definition. It returns false, leaving the program
// unchanged, if a function with the same name already exists.
func (p *Program) Add(fn *FuncDef) bool {
	if p.index == nil {
		p.index = map[string]*FuncDef{}
	}
	if _, exists := p.index[fn.Name.Name]; exists {
		return false
	}
	p.index[fn.Name.Name] = fn
	p.Funcs = append(p.Funcs, fn)
	return true
}

// Func returns the function with the given name.
func (p *Program) Func(name string) (*FuncDef, bool) {
	fn, ok := p.index[name]
	return fn, ok
}

// Names returns the function names in declaration order.
func (p *Program) Names() []string {
	names := make([]string, len(p.Funcs))
	for i, fn := range p.Funcs {
		names[i] = fn.Name.Name
	}
	return names
}

func (p *Program) Pos() token.Position {
	if len(p.Funcs) > 0 {
		return p.Funcs[0].Pos()
	}
	return token.Position{}
}

func (p *Program) End() token.Position {
	if n := len(p.Funcs); n > 0 {
		return p.Funcs[n-1].End()
	}
	return token.Position{}
}

func (p *Program) String() string {
	out := make([]string, len(p.Funcs))
	for i, fn := range p.Funcs {
		out[i] = fn.String()
	}
	return strings.Join(out, "\n")
}
