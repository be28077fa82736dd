package parser

import (
	"Kaleidoscope/internal/lexer"
	"fmt"
)

// SyntaxError is a grammar violation at Token. It is reported once, by the
// production that detected it, and then passed up unchanged.
type SyntaxError struct {
	Msg   string
	Token lexer.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Token.Line, e.Token.Column, e.Msg)
}

func (p *Parser) errorf(format string, args ...any) *SyntaxError {
	err := &SyntaxError{Msg: fmt.Sprintf(format, args...), Token: p.curToken}
	p.errors = append(p.errors, err)
	fmt.Fprintf(p.diag, "LogError: %s\n", err.Msg)
	p.logger.Error("%s (at %s)", err.Error(), p.curToken)
	return err
}

// Errors returns every syntax error reported so far, oldest first.
func (p *Parser) Errors() []*SyntaxError {
	return p.errors
}
