package parser

import (
	"Kaleidoscope/internal/lexer"
	"Kaleidoscope/internal/logger"
	"io"
)

type Parser struct {
	Lexer       *lexer.Lexer
	errors      []*SyntaxError
	curToken    lexer.Token
	precedences map[rune]int
	unaryOps    map[rune]bool
	depth       int
	diag        io.Writer
	logger      *logger.Logger
}

type Option func(*Parser)

// WithDiagnostics sets where "LogError: ..." lines go. The default is
// io.Discard.
func WithDiagnostics(w io.Writer) Option {
	return func(p *Parser) {
		p.diag = w
	}
}

// WithPrecedence adds or overrides a binary operator in the precedence
// table.
func WithPrecedence(op rune, precedence int) Option {
	return func(p *Parser) {
		p.precedences[op] = precedence
	}
}

// WithUnaryOperator makes op parse as a prefix operator.
func WithUnaryOperator(op rune) Option {
	return func(p *Parser) {
		p.unaryOps[op] = true
	}
}
