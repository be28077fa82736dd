package lexer

import (
	. "Kaleidoscope/internal/common"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
)

func collect(input string) []Token {
	l := NewFromString(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

func TestNextToken(t *testing.T) {
	input := `def fib(x)
  if x < 3 then 1 else fib(x-1)+fib(x-2);
extern sin(a); # trailing comment
for i in var binary unary ! |`

	expected := []struct {
		typ     TokenType
		literal string
	}{
		{DEF, "def"}, {IDENT, "fib"}, {LPAREN, "("}, {IDENT, "x"}, {RPAREN, ")"},
		{IF, "if"}, {IDENT, "x"}, {LESS_THAN, "<"}, {NUMBER, "3"}, {THEN, "then"},
		{NUMBER, "1"}, {ELSE, "else"}, {IDENT, "fib"}, {LPAREN, "("}, {IDENT, "x"},
		{MINUS, "-"}, {NUMBER, "1"}, {RPAREN, ")"}, {PLUS, "+"}, {IDENT, "fib"},
		{LPAREN, "("}, {IDENT, "x"}, {MINUS, "-"}, {NUMBER, "2"}, {RPAREN, ")"},
		{SEMICOLON, ";"}, {EXTERN, "extern"}, {IDENT, "sin"}, {LPAREN, "("},
		{IDENT, "a"}, {RPAREN, ")"}, {SEMICOLON, ";"}, {FOR, "for"}, {IDENT, "i"},
		{IN, "in"}, {VAR, "var"}, {BINARY, "binary"}, {UNARY, "unary"}, {"!", "!"},
		{"|", "|"}, {EOF, ""},
	}

	tokens := collect(input)
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, want := range expected {
		if tokens[i].Type != want.typ || tokens[i].Literal != want.literal {
			t.Errorf("token %d: expected %s(%q), got %s(%q)", i, want.typ, want.literal, tokens[i].Type, tokens[i].Literal)
		}
	}
}

func TestWhitespaceAndCommentsOnly(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"\t\n\r\v\f",
		"# just a comment",
		"# one\n# two\n   # three\n",
		"  \n# comment\r\n  ",
	}

	for _, input := range inputs {
		tokens := collect(input)
		if len(tokens) != 1 {
			t.Errorf("input %q: expected only EOF, got %v", input, tokens)
		}
	}
}

func TestEOFRepeats(t *testing.T) {
	l := NewFromString("x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != EOF {
			t.Fatalf("call %d after end: expected EOF, got %s", i, tok.Type)
		}
	}
}

func TestNumbers(t *testing.T) {
	literals := []string{"0", "1", "42", "3.14159", ".5", "5.", "000123", "1234567890.0987654321"}

	for _, lit := range literals {
		tokens := collect(lit)
		if tokens[0].Type != NUMBER {
			t.Fatalf("%q: expected NUMBER, got %s", lit, tokens[0].Type)
		}
		want, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			t.Fatalf("%q: %v", lit, err)
		}
		if tokens[0].Value != want {
			t.Errorf("%q: expected %v, got %v", lit, want, tokens[0].Value)
		}
		if tokens[0].Literal != lit {
			t.Errorf("%q: literal became %q", lit, tokens[0].Literal)
		}
	}
}

func TestMalformedNumbers(t *testing.T) {
	tests := []struct {
		input string
		value float64
	}{
		{"1.2.3", 1.2},
		{"..", 0},
		{".", 0},
		{"1..5", 1},
		{"..5", 0},
		{"12.5.", 12.5},
		{".5.5", 0.5},
	}

	for _, tt := range tests {
		tokens := collect(tt.input)
		if len(tokens) != 2 {
			t.Fatalf("%q: expected one NUMBER then EOF, got %v", tt.input, tokens)
		}
		if tokens[0].Type != NUMBER || tokens[0].Value != tt.value {
			t.Errorf("%q: expected NUMBER %v, got %s %v", tt.input, tt.value, tokens[0].Type, tokens[0].Value)
		}
	}
}

func TestLongMalformedNumber(t *testing.T) {
	n := 200000
	tokens := collect("12." + strings.Repeat(".", n) + strings.Repeat("3", n))
	if len(tokens) != 2 || tokens[0].Type != NUMBER {
		t.Fatalf("expected one NUMBER then EOF, got %d tokens", len(tokens))
	}
	if tokens[0].Value != 12 {
		t.Errorf("expected 12, got %v", tokens[0].Value)
	}

	tokens = collect(strings.Repeat("1", n) + "." + strings.Repeat(".", n))
	if len(tokens) != 2 || !math.IsInf(tokens[0].Value, 1) {
		t.Errorf("expected an overflowing NUMBER to be +Inf, got %v", tokens[0].Value)
	}
}

func TestNumberStopsAtLetter(t *testing.T) {
	tokens := collect("12abc")
	if len(tokens) != 3 || tokens[0].Type != NUMBER || tokens[1].Type != IDENT || tokens[1].Literal != "abc" {
		t.Fatalf("expected NUMBER IDENT EOF, got %v", tokens)
	}
}

func TestIdentifiers(t *testing.T) {
	tokens := collect("x1 Def define extern2 _y")
	expected := []struct {
		typ     TokenType
		literal string
	}{
		{IDENT, "x1"}, {IDENT, "Def"}, {IDENT, "define"}, {IDENT, "extern2"}, {"_", "_"}, {IDENT, "y"}, {EOF, ""},
	}
	for i, want := range expected {
		if tokens[i].Type != want.typ || tokens[i].Literal != want.literal {
			t.Errorf("token %d: expected %s(%q), got %s(%q)", i, want.typ, want.literal, tokens[i].Type, tokens[i].Literal)
		}
	}
}

func TestCommentIsTransparent(t *testing.T) {
	tokens := collect("a # ignore b c\nd")
	if len(tokens) != 3 || tokens[0].Literal != "a" || tokens[1].Literal != "d" {
		t.Fatalf("expected a d EOF, got %v", tokens)
	}
}

func TestPositions(t *testing.T) {
	tokens := collect("def f(x)\n  x + 1")
	expected := [][2]int{{1, 1}, {1, 5}, {1, 6}, {1, 7}, {1, 8}, {2, 3}, {2, 5}, {2, 7}}
	for i, pos := range expected {
		if tokens[i].Line != pos[0] || tokens[i].Column != pos[1] {
			t.Errorf("token %d (%s): expected %d:%d, got %d:%d", i, tokens[i], pos[0], pos[1], tokens[i].Line, tokens[i].Column)
		}
	}
}

func TestCharHelpers(t *testing.T) {
	tok := collect("+")[0]
	if !tok.IsChar() || tok.Char() != '+' {
		t.Errorf("expected '+' char token, got %v", tok)
	}

	kw := collect("def")[0]
	if kw.IsChar() {
		t.Errorf("keyword should not be a char token")
	}
}

type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.done {
		r.done = true
		return copy(p, r.data), nil
	}
	return 0, errors.New("device gone")
}

func TestReadErrorEndsInput(t *testing.T) {
	l := New(&failingReader{data: "a b"})
	var types []TokenType
	for i := 0; i < 4; i++ {
		types = append(types, l.NextToken().Type)
	}
	got := strings.Join([]string{string(types[0]), string(types[1]), string(types[2]), string(types[3])}, " ")
	if got != "IDENT IDENT EOF EOF" {
		t.Errorf("expected IDENT IDENT EOF EOF, got %s", got)
	}
}
