package parser

import (
	"github.com/teksel-io/teksel/ast"
	"github.com/teksel-io/teksel/token"
)

// parseExpression parses an expression starting at the current token. It
// returns a nil expression, without error, when no expression starts there.
func (p *Parser) parseExpression() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseBinary(0)
}

// requireExpression is parseExpression for places where the grammar demands
// an expression.
func (p *Parser) requireExpression(expected string) (ast.Expr, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, p.unexpected(expected)
	}
	return expr, nil
}

func (p *Parser) parseBinary(level int) (ast.Expr, error) {
	if level == len(binaryLevels) {
		return p.parseFactor()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil || left == nil {
		return left, err
	}
	rung := binaryLevels[level]
	for {
		op, ok := rung.ops[p.curToken.Type]
		if !ok {
			return left, nil
		}
		opPos := p.curToken.Position
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		if right == nil {
			return nil, p.unexpected("an expression after '" + op + "'")
		}
		left = &ast.Infix{X: left, OpPos: opPos, Op: op, Y: right}
		if !rung.chain {
			return left, nil
		}
	}
}

// parseFactor parses an optionally negated operand.
func (p *Parser) parseFactor() (ast.Expr, error) {
	if !p.curTokenIs(token.MINUS) {
		return p.parseOperand()
	}
	opPos := p.curToken.Position
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	x, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	if x == nil {
		return nil, p.unexpected("an expression after '-'")
	}
	return &ast.Prefix{OpPos: opPos, Op: "-", X: x}, nil
}

// parseOperand tries each kind of operand in turn, returning nil when none
// of them starts at the current token.
func (p *Parser) parseOperand() (ast.Expr, error) {
	alternatives := []func() (ast.Expr, error){
		p.parseInt,
		p.parseFloat,
		p.parseString,
		p.parseIdentCallOrAttr,
		p.parseCellRangeOrAttr,
		p.parseUse,
		p.parseGroupedExpr,
	}
	for _, alt := range alternatives {
		x, err := alt()
		if err != nil || x != nil {
			return x, err
		}
	}
	return nil, nil
}

func (p *Parser) parseIdentCallOrAttr() (ast.Expr, error) {
	if !p.curTokenIs(token.IDENT) {
		return nil, nil
	}
	ident := newIdent(p.curToken)
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.LPAREN) {
		return p.parseAttr(ident)
	}
	call := &ast.Call{Fun: ident, Lparen: p.curToken.Position}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	for !p.curTokenIs(token.RPAREN) {
		if len(call.Args) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		arg, err := p.requireExpression("an argument or ')'")
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
	}
	call.Rparen = p.curToken.Position
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return p.parseAttr(call)
}

func (p *Parser) parseCellRangeOrAttr() (ast.Expr, error) {
	if !p.curTokenIs(token.CELL) {
		return nil, nil
	}
	from := newCell(p.curToken)
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.COLON) {
		return p.parseAttr(from)
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	to, err := p.expect(token.CELL)
	if err != nil {
		return nil, err
	}
	return &ast.Range{From: from, To: newCell(to)}, nil
}

// parseAttr parses an optional ".value" or ".formula" following x.
func (p *Parser) parseAttr(x ast.Expr) (ast.Expr, error) {
	if !p.curTokenIs(token.PERIOD) {
		return x, nil
	}
	attr := &ast.Attr{X: x, Period: p.curToken.Position}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	switch p.curToken.Type {
	case token.VALUE:
		attr.Kind = ast.AttrValue
	case token.FORMULA:
		attr.Kind = ast.AttrFormula
	default:
		return nil, p.unexpected("'value' or 'formula'")
	}
	return attr, p.nextToken()
}

func (p *Parser) parseUse() (ast.Expr, error) {
	if !p.curTokenIs(token.USE) {
		return nil, nil
	}
	use := &ast.Use{Use: p.curToken.Position}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	var err error
	if use.X, err = p.requireExpression("a value after 'use'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IF); err != nil {
		return nil, err
	}
	if use.Cond, err = p.requireExpression("a condition after 'if'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ELSE); err != nil {
		return nil, err
	}
	if use.Else, err = p.requireExpression("a value after 'else'"); err != nil {
		return nil, err
	}
	return use, nil
}

func (p *Parser) parseGroupedExpr() (ast.Expr, error) {
	if !p.curTokenIs(token.LPAREN) {
		return nil, nil
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	x, err := p.requireExpression("an expression after '('")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return x, nil
}
