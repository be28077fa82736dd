package parser

import (
	. "Kaleidoscope/internal/common"
	"Kaleidoscope/internal/lexer"
)

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

// tokenPrecedence returns the binary precedence of the current token, or
// NoPrecedence if it is not a binary operator.
func (p *Parser) tokenPrecedence() int {
	if !p.curToken.IsChar() {
		return NoPrecedence
	}
	if prec, ok := p.precedences[p.curToken.Char()]; ok {
		return prec
	}
	return NoPrecedence
}

// Precedence reports the binary precedence of op in this parser.
func (p *Parser) Precedence(op rune) int {
	if prec, ok := p.precedences[op]; ok {
		return prec
	}
	return NoPrecedence
}

func (p *Parser) IsUnaryOperator(op rune) bool {
	return p.unaryOps[op]
}

// isOperatorToken reports whether tok can name a user-defined operator.
func isOperatorToken(tok lexer.Token) bool {
	if !tok.IsChar() {
		return false
	}
	switch tok.Type {
	case LPAREN, RPAREN, COMMA, SEMICOLON:
		return false
	}
	return tok.Char() < 0x80
}

func (p *Parser) enter() error {
	if p.depth >= maxDepth {
		return p.errorf("expression nested too deeply")
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}
