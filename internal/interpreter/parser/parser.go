package parser

import (
	"Kaleidoscope/internal/lexer"
)

// NextToken advances the lookahead and returns the new current token.
func (p *Parser) NextToken() lexer.Token {
	p.curToken = p.Lexer.NextToken()
	return p.curToken
}

// CurToken returns the lookahead token without consuming it.
func (p *Parser) CurToken() lexer.Token {
	return p.curToken
}
