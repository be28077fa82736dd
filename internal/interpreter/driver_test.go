package interpreter

import (
	"Kaleidoscope/internal/interpreter/parser"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(src string, diag io.Writer) *Driver {
	return NewDriver(strings.NewReader(src), Options{Diagnostics: diag})
}

func TestNextDispatch(t *testing.T) {
	d := newTestDriver("def f(x) x; extern sin(a); 1 + 2;", nil)

	c, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, Definition, c.Kind)
	assert.Equal(t, "(def (f x) x)", c.String())

	c, err = d.Next()
	require.NoError(t, err)
	assert.Equal(t, Extern, c.Kind)
	assert.Equal(t, "(extern (sin a))", c.String())

	c, err = d.Next()
	require.NoError(t, err)
	assert.Equal(t, TopLevelExpression, c.Kind)
	assert.Equal(t, "(def () (+ 1 2))", c.String())

	_, err = d.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = d.Next()
	assert.ErrorIs(t, err, io.EOF, "end of input is sticky")
}

func TestSemicolonsAreSkipped(t *testing.T) {
	d := newTestDriver(";;; ;", nil)
	_, err := d.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestRecoveryAfterMalformedDefinition(t *testing.T) {
	var diag bytes.Buffer
	d := newTestDriver("def f( 1\ndef g(x) x*2;", &diag)

	_, err := d.Next()
	var syntaxErr *parser.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "Expected ')' in prototype", syntaxErr.Msg)

	// The failed construct consumed "def f (" and the driver dropped "1".
	c, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, "(def (g x) (* x 2))", c.String())
	assert.Equal(t, "LogError: Expected ')' in prototype\n", diag.String())
}

func TestRun(t *testing.T) {
	src := `
# a small program
def fib(x)
  if x < 3 then 1 else fib(x-1)+fib(x-2);
extern putchard(c);
fib(10);
def f( 1
4 * (2 + 3);
`
	var diag, out bytes.Buffer
	d := NewDriver(strings.NewReader(src), Options{Diagnostics: &diag, Output: &out, Dump: true, Prompt: "ready> "})

	summary, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, Summary{Definitions: 1, Externs: 1, Expressions: 2, Errors: 1}, summary)

	for _, line := range []string{
		"Parsed a function definition.",
		"Parsed an extern",
		"Parsed a top-level expr",
		"LogError: Expected ')' in prototype",
	} {
		assert.Contains(t, diag.String(), line)
	}
	assert.True(t, strings.HasPrefix(diag.String(), "ready> "))

	assert.Equal(t, strings.Join([]string{
		"(def (fib x) (if (< x 3) 1 (+ (call fib (- x 1)) (call fib (- x 2)))))",
		"(extern (putchard c))",
		"(def () (call fib 10))",
		"(def () (* 4 (+ 2 3)))",
	}, "\n")+"\n", out.String())
}

func TestRunIsIdempotent(t *testing.T) {
	src := "def binary| 5 (a b) a; 1 | 2 < 3; foo(1, 2+3);"
	first := ParseAll(strings.NewReader(src), Options{})
	second := ParseAll(strings.NewReader(src), Options{})

	require.Len(t, first.Constructs, 3)
	require.Len(t, second.Constructs, 3)
	for i := range first.Constructs {
		assert.Equal(t, first.Constructs[i].String(), second.Constructs[i].String())
	}
	assert.Equal(t, "(def () (| 1 (< 2 3)))", first.Constructs[1].String())
}

func TestParseAllCollectsErrors(t *testing.T) {
	result := ParseAll(strings.NewReader("foo(1 2); 3 +; bar();"), Options{})

	// Recovery drops one token, so the stray ')' of the first call fails
	// on its own before "3 +" does.
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "Expected ')' or ',' in argument list", result.Errors[0].Msg)
	assert.Equal(t, "unknown token when expecting an expression", result.Errors[1].Msg)
	assert.Equal(t, "unknown token when expecting an expression", result.Errors[2].Msg)

	var texts []string
	for _, c := range result.Constructs {
		texts = append(texts, c.String())
	}
	assert.Contains(t, texts, "(def () (call bar))")
}

func TestOptionsPrecedences(t *testing.T) {
	result := ParseAll(strings.NewReader("a % b + c"), Options{Precedences: map[rune]int{'%': 40}})
	require.Len(t, result.Constructs, 1)
	assert.Equal(t, "(def () (+ (% a b) c))", result.Constructs[0].String())
}

func TestOptionsUnaryOperators(t *testing.T) {
	result := ParseAll(strings.NewReader("!a + -b;"), Options{UnaryOperators: []rune{'!', '-'}})
	require.Empty(t, result.Errors)
	require.Len(t, result.Constructs, 1)
	assert.Equal(t, "(def () (+ (! a) (- b)))", result.Constructs[0].String())
}

func TestParseAllSurvivesDeepNesting(t *testing.T) {
	src := strings.Repeat("(", 200000) + "1;"
	result := ParseAll(strings.NewReader(src), Options{})

	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "expression nested too deeply", result.Errors[0].Msg)
}

func TestConstructKind(t *testing.T) {
	assert.Equal(t, "definition", Definition.String())
	assert.Equal(t, "extern", Extern.String())
	assert.Equal(t, "expression", TopLevelExpression.String())
	assert.Equal(t, "Parsed a top-level expr", TopLevelExpression.Status())
}
