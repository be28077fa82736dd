package lexer

import (
	. "Kaleidoscope/internal/common"
	"Kaleidoscope/internal/logger"
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

const eofChar rune = -1

// Lexer turns a character stream into tokens, one per NextToken call. It
// keeps exactly one character of lookahead and never rewinds.
type Lexer struct {
	reader io.RuneReader
	ch     rune
	line   int
	column int
	logger *logger.Logger
}

func New(r io.Reader) *Lexer {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	l := &Lexer{
		reader: rr,
		line:   1,
		logger: logger.Get("lexer"),
	}
	l.readChar()
	return l
}

func NewFromString(input string) *Lexer {
	return New(strings.NewReader(input))
}

func (l *Lexer) readChar() {
	if l.ch == eofChar {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	r, _, err := l.reader.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.logger.Error("read failed, treating as end of input: %v", err)
		}
		l.ch = eofChar
		l.column++
		return
	}
	l.ch = r
	l.column++
}

func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()

		line, column := l.line, l.column

		switch {
		case l.ch == eofChar:
			return Token{Type: EOF, Line: line, Column: column}
		case isLetter(l.ch):
			ident := l.readIdentifier()
			return Token{Type: LookupIdent(ident), Literal: ident, Line: line, Column: column}
		case isDigit(l.ch) || l.ch == '.':
			text := l.readNumber()
			return Token{Type: NUMBER, Literal: text, Value: parseNumber(text), Line: line, Column: column}
		case l.ch == COMMENT:
			l.skipComment()
			continue
		}

		ch := l.ch
		l.readChar()
		return Token{Type: TokenType(string(ch)), Literal: string(ch), Line: line, Column: column}
	}
}

func (l *Lexer) readIdentifier() string {
	var sb strings.Builder
	for isAlphanumeric(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return sb.String()
}

func (l *Lexer) readNumber() string {
	var sb strings.Builder
	for isDigit(l.ch) || l.ch == '.' {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return sb.String()
}

func (l *Lexer) skipWhitespace() {
	for isSpace(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != eofChar && l.ch != '\n' && l.ch != '\r' {
		l.readChar()
	}
}

// parseNumber converts a run of digits and dots. Malformed runs such as
// "1.2.3" yield the value of their longest valid prefix, and 0 when no
// prefix is valid. That prefix always ends before the second dot.
func parseNumber(text string) float64 {
	if first := strings.IndexByte(text, '.'); first >= 0 {
		if second := strings.IndexByte(text[first+1:], '.'); second >= 0 {
			text = text[:first+1+second]
		}
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return value
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isAlphanumeric(ch rune) bool {
	return isLetter(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
