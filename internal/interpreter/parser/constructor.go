package parser

import (
	. "Kaleidoscope/internal/common"
	"Kaleidoscope/internal/lexer"
	"Kaleidoscope/internal/logger"
	"io"
	"maps"
)

// NewParser reads the first token so CurToken is valid immediately.
func NewParser(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		Lexer:       l,
		errors:      []*SyntaxError{},
		precedences: maps.Clone(DefaultPrecedences),
		unaryOps:    map[rune]bool{},
		diag:        io.Discard,
		logger:      logger.Get("parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.NextToken()
	return p
}
