package ast

import (
	"encoding/json"
	"fmt"
	"math"
)

// Float is a number literal in JSON. An overflowing literal lexes to +Inf,
// so non-finite values are written as the strings "+Inf", "-Inf" or "NaN".
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = Float(v)
		return nil
	}
	switch s {
	case "+Inf":
		*f = Float(math.Inf(1))
	case "-Inf":
		*f = Float(math.Inf(-1))
	case "NaN":
		*f = Float(math.NaN())
	default:
		return fmt.Errorf("invalid number %q", s)
	}
	return nil
}

// Node is the tagged JSON form of an expression, prototype or function.
type Node struct {
	Kind     string   `json:"kind"`
	Value    *Float   `json:"value,omitempty"`
	Name     string   `json:"name,omitempty"`
	Op       string   `json:"op,omitempty"`
	Params   []string `json:"params,omitempty"`
	Operands []*Node  `json:"operands,omitempty"`
	Args     []*Node  `json:"args,omitempty"`
	Bindings []*Node  `json:"bindings,omitempty"`
	Proto    *Node    `json:"proto,omitempty"`
	Body     *Node    `json:"body,omitempty"`
	Prec     int      `json:"precedence,omitempty"`
}

func ToNode(e Expression) *Node {
	switch e := e.(type) {
	case nil:
		return nil
	case *Number:
		v := Float(e.Value)
		return &Node{Kind: "number", Value: &v}
	case *Variable:
		return &Node{Kind: "variable", Name: e.Name}
	case *Unary:
		return &Node{Kind: "unary", Op: string(e.Op), Operands: []*Node{ToNode(e.Operand)}}
	case *Binary:
		return &Node{Kind: "binary", Op: string(e.Op), Operands: []*Node{ToNode(e.Left), ToNode(e.Right)}}
	case *Call:
		n := &Node{Kind: "call", Name: e.Callee, Args: []*Node{}}
		for _, arg := range e.Args {
			n.Args = append(n.Args, ToNode(arg))
		}
		return n
	case *If:
		return &Node{Kind: "if", Operands: []*Node{ToNode(e.Cond), ToNode(e.Then), ToNode(e.Else)}}
	case *For:
		n := &Node{Kind: "for", Name: e.Var, Operands: []*Node{ToNode(e.Start), ToNode(e.End)}, Body: ToNode(e.Body)}
		if e.Step != nil {
			n.Operands = append(n.Operands, ToNode(e.Step))
		}
		return n
	case *Var:
		n := &Node{Kind: "var", Body: ToNode(e.Body)}
		for _, b := range e.Bindings {
			binding := &Node{Kind: "binding", Name: b.Name}
			if b.Init != nil {
				binding.Operands = []*Node{ToNode(b.Init)}
			}
			n.Bindings = append(n.Bindings, binding)
		}
		return n
	}
	return &Node{Kind: "unknown"}
}

func PrototypeNode(p *Prototype) *Node {
	n := &Node{Kind: "prototype", Name: p.Name, Params: p.Params}
	if p.Kind == BinaryProto {
		n.Prec = p.Precedence
	}
	return n
}

func FunctionNode(f *Function) *Node {
	return &Node{Kind: "function", Proto: PrototypeNode(f.Proto), Body: ToNode(f.Body)}
}
