package parser

import (
	"fmt"
	"strings"

	"github.com/teksel-io/teksel/errors"
	"github.com/teksel-io/teksel/token"
)

// unexpected returns a SyntaxError for the current token.
func (p *Parser) unexpected(expected string) error {
	return errors.NewSyntaxError(p.curToken.Position, "unexpected %s (expected %s)",
		describe(p.curToken), expected)
}

// describe returns a human friendly description of a token.
func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case token.CELL:
		return fmt.Sprintf("cell %s", tok.Literal)
	case token.INT, token.FLOAT:
		return fmt.Sprintf("number %s", tok.Literal)
	case token.STRING:
		return fmt.Sprintf("string %q", tok.Literal)
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}

// describeType returns a human friendly description of a token type.
func describeType(t token.Type) string {
	switch t {
	case token.EOF:
		return "end of input"
	case token.IDENT:
		return "an identifier"
	case token.CELL:
		return "a cell"
	case token.DEF, token.ELSE, token.FOREACH, token.IF, token.IN, token.RETURN, token.USE:
		return "'" + strings.ToLower(string(t)) + "'"
	}
	return "'" + string(t) + "'"
}
