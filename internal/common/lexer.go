package common

const (
	EOF = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // foo, x, fib2
	NUMBER = "NUMBER" // 1, 1.5, .5

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	MULTIPLY = "*"
	DIVIDE   = "/"

	// Comparison Operators
	LESS_THAN    = "<"
	GREATER_THAN = ">"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	LPAREN    = "("
	RPAREN    = ")"

	// Comments run from here to end of line
	COMMENT = '#'

	// Commands
	DEF    = "DEF"
	EXTERN = "EXTERN"

	// Control flow
	IF   = "IF"
	THEN = "THEN"
	ELSE = "ELSE"
	FOR  = "FOR"
	IN   = "IN"

	// User-defined operators
	BINARY = "BINARY"
	UNARY  = "UNARY"

	// Mutable locals
	VAR = "VAR"
)

var Keywords = map[string]string{
	"def":    DEF,
	"extern": EXTERN,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"for":    FOR,
	"in":     IN,
	"binary": BINARY,
	"unary":  UNARY,
	"var":    VAR,
}

const (
	NoPrecedence            = -1
	DefaultBinaryPrecedence = 30
	MinOperatorPrecedence   = 1
	MaxOperatorPrecedence   = 100
)

// DefaultPrecedences is the built-in binary operator table. Anything missing
// from it is not a binary operator.
var DefaultPrecedences = map[rune]int{
	'<': 10,
	'>': 10,
	'+': 20,
	'-': 20,
	'*': 40,
	'/': 40,
}
