package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teksel-io/teksel/token"
)

func pos(line, col int) token.Position {
	return token.Position{Line: line, Column: col}
}

func TestProgramAdd(t *testing.T) {
	program := NewProgram()
	mainFn := &FuncDef{Def: pos(1, 1), Name: &Ident{Name: "main"}, Body: &Block{}}
	sumFn := &FuncDef{Def: pos(2, 1), Name: &Ident{Name: "sum"}, Body: &Block{}}
	require.True(t, program.Add(mainFn))
	require.True(t, program.Add(sumFn))
	require.False(t, program.Add(&FuncDef{Name: &Ident{Name: "main"}, Body: &Block{}}))

	require.Equal(t, []string{"main", "sum"}, program.Names())
	fn, ok := program.Func("sum")
	require.True(t, ok)
	require.Same(t, sumFn, fn)
	_, ok = program.Func("count")
	require.False(t, ok)
	require.Equal(t, pos(1, 1), program.Pos())
}

func TestString(t *testing.T) {
	fn := &FuncDef{
		Name:   &Ident{Name: "f"},
		Params: []*Ident{{Name: "a"}, {Name: "r"}},
		Body: &Block{Stmts: []Stmt{
			&Assign{
				X:     &Attr{X: &Cell{Column: "A", Row: 3}, Kind: AttrFormula},
				Value: &String{Value: "=1+2"},
			},
			&Foreach{
				Name:     &Ident{Name: "c"},
				Iterable: &Range{From: &Cell{Column: "A", Row: 1}, To: &Cell{Column: "B", Row: 2}},
				Body:     &Block{},
			},
			&If{
				Cond:        &Infix{X: &Ident{Name: "a"}, Op: "<", Y: &Prefix{Op: "-", X: &Int{Literal: "1", Value: 1}}},
				Consequence: &Block{Stmts: []Stmt{&Return{}}},
			},
			&Return{Value: &Use{
				X:    &Float{Literal: "1.5", Value: 1.5},
				Cond: &Call{Fun: &Ident{Name: "g"}, Args: []Expr{&Ident{Name: "r"}}},
				Else: &Int{Literal: "2", Value: 2},
			}},
		}},
	}
	expected := `def f(a, r) { A3.formula = "=1+2"; foreach c in A1:B2 { }; ` +
		`if (a < (-1)) { return }; return (use 1.5 if g(r) else 2) }`
	require.Equal(t, expected, fn.String())
}

func TestPositions(t *testing.T) {
	cell := &Cell{CellPos: pos(2, 5), Column: "B", Row: 10}
	require.Equal(t, pos(2, 8), cell.End())

	attr := &Attr{X: cell, Period: pos(2, 8), Kind: AttrValue}
	require.Equal(t, pos(2, 5), attr.Pos())
	require.Equal(t, pos(2, 14), attr.End())

	ret := &Return{Return: pos(4, 3)}
	require.Equal(t, pos(4, 9), ret.End())
}
