package ast

import "strings"

type ProtoKind int

const (
	FunctionProto ProtoKind = iota
	UnaryProto
	BinaryProto
)

func (k ProtoKind) String() string {
	switch k {
	case UnaryProto:
		return "unary"
	case BinaryProto:
		return "binary"
	}
	return "function"
}

// Prototype is a function header. Operator prototypes are named "unary" or
// "binary" followed by the operator character, e.g. "binary|". The
// prototype of a top-level expression has an empty name and no params.
type Prototype struct {
	Name       string
	Params     []string
	Kind       ProtoKind
	Precedence int
}

func (p *Prototype) IsAnonymous() bool {
	return p.Name == ""
}

func (p *Prototype) IsOperator() bool {
	return p.Kind != FunctionProto
}

// OperatorName returns the operator character of a unary or binary
// prototype, and 0 for plain functions.
func (p *Prototype) OperatorName() rune {
	if !p.IsOperator() || p.Name == "" {
		return 0
	}
	runes := []rune(p.Name)
	return runes[len(runes)-1]
}

func (p *Prototype) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(p.Name)
	for _, param := range p.Params {
		sb.WriteString(" ")
		sb.WriteString(param)
	}
	sb.WriteString(")")
	return sb.String()
}

// Function owns exactly one prototype and one body expression.
type Function struct {
	Proto *Prototype
	Body  Expression
}

func (f *Function) String() string {
	return "(def " + f.Proto.String() + " " + f.Body.String() + ")"
}
