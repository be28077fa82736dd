package lexer

import (
	. "Kaleidoscope/internal/common"
	"fmt"
	"unicode/utf8"
)

type TokenType string

type Token struct {
	Type    TokenType
	Literal string
	Value   float64
	Line    int
	Column  int
}

// Char returns the character of a single-character token, or utf8.RuneError
// for every other kind.
func (t Token) Char() rune {
	if !t.IsChar() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(string(t.Type))
	return r
}

// IsChar reports whether the token is a raw single-character token.
func (t Token) IsChar() bool {
	return utf8.RuneCountInString(string(t.Type)) == 1
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT:
		return fmt.Sprintf("identifier %q", t.Literal)
	case NUMBER:
		return fmt.Sprintf("number %s", t.Literal)
	}
	if t.IsChar() {
		return fmt.Sprintf("'%s'", t.Literal)
	}
	return fmt.Sprintf("keyword %s", t.Literal)
}

func LookupIdent(ident string) TokenType {
	if tok, ok := Keywords[ident]; ok {
		return TokenType(tok)
	}
	return IDENT
}
