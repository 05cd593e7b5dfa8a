package parser

import (
	"github.com/teksel-io/teksel/ast"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/token"
)

func (p *Parser) parseFuncDef() (*ast.FuncDef, error) {
	def, err := p.expect(token.DEF)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDef{
		Def:    def.Position,
		Name:   newIdent(nameTok),
		Params: params,
		Body:   body,
	}, nil
}

func (p *Parser) parseParams() ([]*ast.Ident, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params := []*ast.Ident{}
	seen := map[string]bool{}
	for !p.curTokenIs(token.RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		tok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if seen[tok.Literal] {
			return nil, errors.NewSyntaxError(tok.Position, "duplicate parameter %q", tok.Literal)
		}
		seen[tok.Literal] = true
		params = append(params, newIdent(tok))
	}
	return params, p.nextToken()
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	lbrace, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Lbrace: lbrace.Position}
	for !p.curTokenIs(token.RBRACE) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			return nil, p.unexpected("a statement or '}'")
		}
		block.Stmts = append(block.Stmts, stmt)
		if p.curTokenIs(token.SEMICOLON) {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
		}
	}
	block.Rbrace = p.curToken.Position
	return block, p.nextToken()
}

// parseStatement tries each kind of statement in turn. It returns a nil
// statement when none of them starts at the current token.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	alternatives := []func() (ast.Stmt, error){
		p.parseIf,
		p.parseForeach,
		p.parseReturn,
		p.parseSimpleStatement,
	}
	for _, alt := range alternatives {
		stmt, err := alt()
		if err != nil || stmt != nil {
			return stmt, err
		}
	}
	return nil, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	if !p.curTokenIs(token.IF) {
		return nil, nil
	}
	stmt := &ast.If{If: p.curToken.Position}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	var err error
	if stmt.Cond, err = p.requireExpression("a condition after 'if'"); err != nil {
		return nil, err
	}
	if stmt.Consequence, err = p.parseBlock(); err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.ELSE) {
		return stmt, nil
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if stmt.Alternative, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseForeach() (ast.Stmt, error) {
	if !p.curTokenIs(token.FOREACH) {
		return nil, nil
	}
	stmt := &ast.Foreach{Foreach: p.curToken.Position}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	stmt.Name = newIdent(name)
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	if stmt.Iterable, err = p.requireExpression("an iterable after 'in'"); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	if !p.curTokenIs(token.RETURN) {
		return nil, nil
	}
	stmt := &ast.Return{Return: p.curToken.Position}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}

// compoundAssign expands "x += y" into "x = x + y" and "x -= y" into
// "x = x - y".
var compoundAssign = map[token.Type]func(target ast.Expr, opPos token.Position, value ast.Expr) ast.Expr{
	token.PLUS_EQUALS: func(target ast.Expr, opPos token.Position, value ast.Expr) ast.Expr {
		return &ast.Infix{X: target, OpPos: opPos, Op: "+", Y: value}
	},
	token.MINUS_EQUALS: func(target ast.Expr, opPos token.Position, value ast.Expr) ast.Expr {
		return &ast.Infix{X: target, OpPos: opPos, Op: "-", Y: value}
	},
}

// parseSimpleStatement parses an assignment or a bare expression statement.
func (p *Parser) parseSimpleStatement() (ast.Stmt, error) {
	x, err := p.parseExpression()
	if err != nil || x == nil {
		return nil, err
	}
	opTok := p.curToken
	if opTok.Type != token.ASSIGN && opTok.Type != token.PLUS_EQUALS && opTok.Type != token.MINUS_EQUALS {
		return &ast.ExprStmt{X: x}, nil
	}
	if !isAssignable(x) {
		return nil, errors.NewSyntaxError(x.Pos(), "cannot assign to %s", x.String())
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	value, err := p.requireExpression("a value after '" + opTok.Literal + "'")
	if err != nil {
		return nil, err
	}
	if expand, ok := compoundAssign[opTok.Type]; ok {
		value = expand(x, opTok.Position, value)
	}
	return &ast.Assign{X: x, OpPos: opTok.Position, Value: value}, nil
}

func isAssignable(x ast.Expr) bool {
	switch x.(type) {
	case *ast.Ident, *ast.Cell, *ast.Range, *ast.Attr:
		return true
	}
	return false
}
