package parser

import (
	"strconv"

	"github.com/teksel-io/teksel/ast"
	"github.com/teksel-io/teksel/token"
)

func (p *Parser) parseInt() (ast.Expr, error) {
	if !p.curTokenIs(token.INT) {
		return nil, nil
	}
	tok := p.curToken
	return &ast.Int{ValuePos: tok.Position, Literal: tok.Literal, Value: tok.Int}, p.nextToken()
}

func (p *Parser) parseFloat() (ast.Expr, error) {
	if !p.curTokenIs(token.FLOAT) {
		return nil, nil
	}
	tok := p.curToken
	return &ast.Float{ValuePos: tok.Position, Literal: tok.Literal, Value: tok.Float}, p.nextToken()
}

func (p *Parser) parseString() (ast.Expr, error) {
	if !p.curTokenIs(token.STRING) {
		return nil, nil
	}
	tok := p.curToken
	return &ast.String{ValuePos: tok.Position, Value: tok.Literal}, p.nextToken()
}

func newIdent(tok token.Token) *ast.Ident {
	return &ast.Ident{NamePos: tok.Position, Name: tok.Literal}
}

// newCell builds a cell from a CELL token. The lexer guarantees the literal
// is one uppercase letter followed by one to three digits.
func newCell(tok token.Token) *ast.Cell {
	row, _ := strconv.Atoi(tok.Literal[1:])
	return &ast.Cell{CellPos: tok.Position, Column: tok.Literal[:1], Row: row}
}
