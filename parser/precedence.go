package parser

import "github.com/teksel-io/teksel/token"

// binaryLevel is one rung of the precedence ladder, lowest binding first.
// Relational operators do not chain: "a < b < c" is a syntax error.
type binaryLevel struct {
	ops   map[token.Type]string
	chain bool
}

var binaryLevels = []binaryLevel{
	{ops: map[token.Type]string{token.OR: "or"}, chain: true},
	{ops: map[token.Type]string{token.AND: "and"}, chain: true},
	{ops: map[token.Type]string{
		token.LT:        "<",
		token.LT_EQUALS: "<=",
		token.GT:        ">",
		token.GT_EQUALS: ">=",
		token.EQ:        "==",
		token.NOT_EQ:    "!=",
	}},
	{ops: map[token.Type]string{token.PLUS: "+", token.MINUS: "-"}, chain: true},
	{ops: map[token.Type]string{token.ASTERISK: "*", token.SLASH: "/"}, chain: true},
}
