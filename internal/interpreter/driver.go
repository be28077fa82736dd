package interpreter

import (
	"Kaleidoscope/internal/ast"
	. "Kaleidoscope/internal/common"
	"Kaleidoscope/internal/interpreter/parser"
	"Kaleidoscope/internal/lexer"
	"Kaleidoscope/internal/logger"
	"errors"
	"fmt"
	"io"
)

type ConstructKind int

const (
	Definition ConstructKind = iota
	Extern
	TopLevelExpression
)

func (k ConstructKind) String() string {
	switch k {
	case Definition:
		return "definition"
	case Extern:
		return "extern"
	case TopLevelExpression:
		return "expression"
	}
	return fmt.Sprintf("ConstructKind(%d)", int(k))
}

// Status is the line the shell prints after parsing a construct of kind k.
func (k ConstructKind) Status() string {
	switch k {
	case Definition:
		return "Parsed a function definition."
	case Extern:
		return "Parsed an extern"
	default:
		return "Parsed a top-level expr"
	}
}

// Construct is one parsed top-level form. Extern sets Proto, the other
// kinds set Function.
type Construct struct {
	Kind     ConstructKind
	Function *ast.Function
	Proto    *ast.Prototype
}

func (c *Construct) String() string {
	if c.Kind == Extern {
		return "(extern " + c.Proto.String() + ")"
	}
	return c.Function.String()
}

type Options struct {
	// Diagnostics receives prompts, status lines and LogError lines.
	Diagnostics io.Writer
	// Output receives tree dumps when Dump is set.
	Output io.Writer
	Prompt string
	Dump   bool
	// Precedences adds binary operators on top of the built-in table.
	Precedences map[rune]int
	// UnaryOperators parse as prefix operators from the start.
	UnaryOperators []rune
}

type Summary struct {
	Definitions int
	Externs     int
	Expressions int
	Errors      int
}

func (s *Summary) count(kind ConstructKind) {
	switch kind {
	case Definition:
		s.Definitions++
	case Extern:
		s.Externs++
	case TopLevelExpression:
		s.Expressions++
	}
}

// Driver feeds top-level constructs from one input stream through a parser.
type Driver struct {
	parser *parser.Parser
	opts   Options
	logger *logger.Logger
}

func NewDriver(r io.Reader, opts Options) *Driver {
	if opts.Diagnostics == nil {
		opts.Diagnostics = io.Discard
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}

	d := &Driver{opts: opts, logger: logger.Get("driver")}

	parserOpts := []parser.Option{parser.WithDiagnostics(opts.Diagnostics)}
	for op, prec := range opts.Precedences {
		parserOpts = append(parserOpts, parser.WithPrecedence(op, prec))
	}
	for _, op := range opts.UnaryOperators {
		parserOpts = append(parserOpts, parser.WithUnaryOperator(op))
	}

	// The parser reads its first token on construction, so the first
	// prompt has to be out before that.
	d.printPrompt()
	d.parser = parser.NewParser(lexer.New(r), parserOpts...)
	return d
}

// Next parses the next top-level construct. Bare ';' separators are
// skipped. At end of input it returns io.EOF. On a syntax error it drops one
// token, so the following call resumes after the bad spot, and returns the
// *parser.SyntaxError.
func (d *Driver) Next() (*Construct, error) {
	for {
		switch d.parser.CurToken().Type {
		case EOF:
			return nil, io.EOF
		case SEMICOLON:
			d.parser.NextToken()
			continue
		case DEF:
			fn, err := d.parser.ParseDefinition()
			if err != nil {
				return nil, d.skip(err)
			}
			return &Construct{Kind: Definition, Function: fn}, nil
		case EXTERN:
			proto, err := d.parser.ParseExtern()
			if err != nil {
				return nil, d.skip(err)
			}
			return &Construct{Kind: Extern, Proto: proto}, nil
		default:
			fn, err := d.parser.ParseTopLevelExpression()
			if err != nil {
				return nil, d.skip(err)
			}
			return &Construct{Kind: TopLevelExpression, Function: fn}, nil
		}
	}
}

func (d *Driver) skip(err error) error {
	skipped := d.parser.CurToken()
	d.parser.NextToken()
	d.logger.Debug("skipped %s after error: %v", skipped, err)
	return err
}

// Run drives the whole input, printing a status line per construct. Syntax
// errors are counted and parsing continues with the next construct.
func (d *Driver) Run() (Summary, error) {
	var summary Summary
	for {
		construct, err := d.Next()
		if errors.Is(err, io.EOF) {
			d.logger.Info("end of input: %d definitions, %d externs, %d expressions, %d errors",
				summary.Definitions, summary.Externs, summary.Expressions, summary.Errors)
			return summary, nil
		}

		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			summary.Errors++
			d.printPrompt()
			continue
		}
		if err != nil {
			return summary, err
		}

		summary.count(construct.Kind)
		fmt.Fprintln(d.opts.Diagnostics, construct.Kind.Status())
		if d.opts.Dump {
			fmt.Fprintln(d.opts.Output, construct)
		}
		d.printPrompt()
	}
}

func (d *Driver) printPrompt() {
	if d.opts.Prompt != "" {
		fmt.Fprint(d.opts.Diagnostics, d.opts.Prompt)
	}
}

// Result is everything ParseAll found in one source text.
type Result struct {
	Constructs []*Construct
	Errors     []*parser.SyntaxError
}

// ParseAll parses src to the end, collecting constructs and syntax errors.
func ParseAll(r io.Reader, opts Options) Result {
	d := NewDriver(r, opts)
	var result Result
	for {
		construct, err := d.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			continue
		}
		result.Constructs = append(result.Constructs, construct)
		fmt.Fprintln(d.opts.Diagnostics, construct.Kind.Status())
	}
	result.Errors = d.parser.Errors()
	return result
}
