// Package token defines the keywords, operators and token types produced
// when lexing teksel source code.
package token

import "fmt"

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string. Line and
// Column are 1-based; Offset is the byte offset from the start of the input.
type Position struct {
	Offset int
	Line   int
	Column int
}

// IsValid reports whether the position was set by the lexer.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Advance returns the position n characters further along the same line.
func (p Position) Advance(n int) Position {
	return Position{Offset: p.Offset + n, Line: p.Line, Column: p.Column + n}
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents one token lexed from the input source code. Literal holds
// the source text of the token, except for strings where it holds the
// decoded contents. Int and Float carry the computed payload of numeric
// literals.
type Token struct {
	Type     Type
	Literal  string
	Position Position
	Int      int64
	Float    float64
}

func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Literal)
}

// Token types
const (
	AND          = "AND"
	ASSIGN       = "="
	ASTERISK     = "*"
	BANG         = "!"
	CELL         = "CELL"
	COLON        = ":"
	COMMA        = ","
	DEF          = "DEF"
	ELSE         = "ELSE"
	EOF          = "EOF"
	EQ           = "=="
	FLOAT        = "FLOAT"
	FOREACH      = "FOREACH"
	FORMULA      = "FORMULA"
	GT           = ">"
	GT_EQUALS    = ">="
	IDENT        = "IDENT"
	IF           = "IF"
	IN           = "IN"
	INT          = "INT"
	LBRACE       = "{"
	LPAREN       = "("
	LT           = "<"
	LT_EQUALS    = "<="
	MINUS        = "-"
	MINUS_EQUALS = "-="
	NOT_EQ       = "!="
	OR           = "OR"
	PERIOD       = "."
	PLUS         = "+"
	PLUS_EQUALS  = "+="
	RBRACE       = "}"
	RETURN       = "RETURN"
	RPAREN       = ")"
	SEMICOLON    = ";"
	SLASH        = "/"
	STRING       = "STRING"
	USE          = "USE"
	VALUE        = "VALUE"
)

// Lexer limits.
const (
	MaxIdentLength  = 256
	MaxStringLength = 256
	MaxInt          = 1<<31 - 1
)

// Reserved keywords
var keywords = map[string]Type{
	"and":     AND,
	"def":     DEF,
	"else":    ELSE,
	"foreach": FOREACH,
	"formula": FORMULA,
	"if":      IF,
	"in":      IN,
	"or":      OR,
	"return":  RETURN,
	"use":     USE,
	"value":   VALUE,
}

// Operators made of two characters. The lexer tries these before falling
// back to the single character table.
var multiCharOperators = map[string]Type{
	"<=": LT_EQUALS,
	">=": GT_EQUALS,
	"==": EQ,
	"!=": NOT_EQ,
	"+=": PLUS_EQUALS,
	"-=": MINUS_EQUALS,
}

var singleCharOperators = map[rune]Type{
	'<': LT,
	'>': GT,
	'=': ASSIGN,
	'!': BANG,
	'-': MINUS,
	'+': PLUS,
	'*': ASTERISK,
	'/': SLASH,
	',': COMMA,
	':': COLON,
	';': SEMICOLON,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'.': PERIOD,
}

// LookupIdentifier returns the keyword type for the identifier, or IDENT if
// the identifier is not reserved.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}

// LookupOperator returns the type of a two character operator.
func LookupOperator(op string) (Type, bool) {
	tok, ok := multiCharOperators[op]
	return tok, ok
}

// LookupPunctuation returns the type of a single character operator or
// punctuation mark.
func LookupPunctuation(ch rune) (Type, bool) {
	tok, ok := singleCharOperators[ch]
	return tok, ok
}

// Operators returns every operator and punctuation lexeme known to the lexer.
func Operators() []string {
	ops := make([]string, 0, len(multiCharOperators)+len(singleCharOperators))
	for op := range multiCharOperators {
		ops = append(ops, op)
	}
	for ch := range singleCharOperators {
		ops = append(ops, string(ch))
	}
	return ops
}
