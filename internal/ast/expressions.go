package ast

import (
	"strconv"
	"strings"
)

// Expression is one of the node types in this file. The set is closed.
type Expression interface {
	String() string
	expressionNode()
}

type Number struct {
	Value float64
}

type Variable struct {
	Name string
}

type Unary struct {
	Op      rune
	Operand Expression
}

// Binary always holds both operands.
type Binary struct {
	Op    rune
	Left  Expression
	Right Expression
}

type Call struct {
	Callee string
	Args   []Expression
}

type If struct {
	Cond Expression
	Then Expression
	Else Expression
}

// For is `for Var = Start, End[, Step] in Body`. Step is nil when omitted.
type For struct {
	Var   string
	Start Expression
	End   Expression
	Step  Expression
	Body  Expression
}

// VarBinding is one `name [= init]` entry of a var expression. Init is nil
// when omitted.
type VarBinding struct {
	Name string
	Init Expression
}

type Var struct {
	Bindings []VarBinding
	Body     Expression
}

func (*Number) expressionNode()   {}
func (*Variable) expressionNode() {}
func (*Unary) expressionNode()    {}
func (*Binary) expressionNode()   {}
func (*Call) expressionNode()     {}
func (*If) expressionNode()       {}
func (*For) expressionNode()      {}
func (*Var) expressionNode()      {}

func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (v *Variable) String() string {
	return v.Name
}

func (u *Unary) String() string {
	return "(" + string(u.Op) + " " + u.Operand.String() + ")"
}

func (b *Binary) String() string {
	return "(" + string(b.Op) + " " + b.Left.String() + " " + b.Right.String() + ")"
}

func (c *Call) String() string {
	var sb strings.Builder
	sb.WriteString("(call ")
	sb.WriteString(c.Callee)
	for _, arg := range c.Args {
		sb.WriteString(" ")
		sb.WriteString(arg.String())
	}
	sb.WriteString(")")
	return sb.String()
}

func (i *If) String() string {
	return "(if " + i.Cond.String() + " " + i.Then.String() + " " + i.Else.String() + ")"
}

func (f *For) String() string {
	var sb strings.Builder
	sb.WriteString("(for ")
	sb.WriteString(f.Var)
	sb.WriteString(" ")
	sb.WriteString(f.Start.String())
	sb.WriteString(" ")
	sb.WriteString(f.End.String())
	if f.Step != nil {
		sb.WriteString(" ")
		sb.WriteString(f.Step.String())
	}
	sb.WriteString(" ")
	sb.WriteString(f.Body.String())
	sb.WriteString(")")
	return sb.String()
}

func (v *Var) String() string {
	var sb strings.Builder
	sb.WriteString("(var (")
	for i, b := range v.Bindings {
		if i > 0 {
			sb.WriteString(" ")
		}
		if b.Init == nil {
			sb.WriteString(b.Name)
			continue
		}
		sb.WriteString("(" + b.Name + " " + b.Init.String() + ")")
	}
	sb.WriteString(") ")
	sb.WriteString(v.Body.String())
	sb.WriteString(")")
	return sb.String()
}
