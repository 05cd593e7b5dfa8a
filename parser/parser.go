// Package parser is used to generate the abstract syntax tree (AST) for a
// program.
//
// A parser is created by calling New() with a lexer as input. The parser
// should then be used only once, by calling Parse() to produce the AST. The
// first syntax error stops parsing.
package parser

import (
	"context"

	"github.com/teksel-io/teksel/ast"
	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/lexer"
	"github.com/teksel-io/teksel/token"
)

// Parse the provided input as teksel source code and return the AST. This is
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	return New(lexer.New(input), options...).Parse(ctx)
}

// ParseExpression parses input as a single expression.
func ParseExpression(ctx context.Context, input string, options ...Option) (ast.Expr, error) {
	return New(lexer.New(input), options...).ParseExpression(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l is our lexer
	l *lexer.Lexer

	// curToken holds the current token from the lexer.
	curToken token.Token

	// err holds a lexer error hit while priming the first token
	err error

	// Current and maximum nesting depth
	depth    int
	maxDepth int
}

// New returns a Parser for the program provided by the given Lexer.
func New(l *lexer.Lexer, options ...Option) *Parser {
	p := &Parser{l: l, maxDepth: DefaultMaxDepth, ctx: context.Background()}
	for _, opt := range options {
		opt(p)
	}
	p.err = p.nextToken()
	return p
}

// nextToken consumes the current token and reads the next one.
func (p *Parser) nextToken() error {
	tok, err := p.l.Next()
	if err != nil {
		return err
	}
	p.curToken = tok
	return nil
}

// Parse the program that is provided via the lexer.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	p.ctx = ctx
	if p.err != nil {
		return nil, p.err
	}
	program := ast.NewProgram()
	for p.curTokenIs(token.DEF) {
		if err := p.cancelled(); err != nil {
			return nil, err
		}
		fn, err := p.parseFuncDef()
		if err != nil {
			return nil, err
		}
		if !program.Add(fn) {
			return nil, errors.NewSyntaxError(fn.Name.Pos(), "function %q is already defined", fn.Name.Name)
		}
	}
	if !p.curTokenIs(token.EOF) {
		return nil, p.unexpected("a function definition")
	}
	if len(program.Funcs) == 0 {
		return nil, errors.NewSyntaxError(p.curToken.Position, "a program must define at least one function")
	}
	return program, nil
}

// ParseExpression parses the input as one expression followed by the end of
// the input.
func (p *Parser) ParseExpression(ctx context.Context) (ast.Expr, error) {
	p.ctx = ctx
	if p.err != nil {
		return nil, p.err
	}
	expr, err := p.requireExpression("an expression")
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.EOF) {
		return nil, p.unexpected("end of input")
	}
	return expr, nil
}

// cancelled checks if the parsing context has been cancelled.
func (p *Parser) cancelled() error {
	select {
	case <-p.ctx.Done():
		return p.ctx.Err()
	default:
		return nil
	}
}

// enter increments the nesting depth, failing once it passes the maximum.
// Each successful call must be paired with a call to leave.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		p.depth--
		return errors.NewSyntaxError(p.curToken.Position, "maximum nesting depth of %d exceeded", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

// expect consumes the current token if it has the given type. Otherwise it
// returns a SyntaxError naming what was expected.
func (p *Parser) expect(t token.Type) (token.Token, error) {
	tok := p.curToken
	if tok.Type != t {
		return tok, p.unexpected(describeType(t))
	}
	return tok, p.nextToken()
}
