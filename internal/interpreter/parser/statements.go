package parser

import (
	"Kaleidoscope/internal/ast"
	. "Kaleidoscope/internal/common"
)

// ParseDefinition parses `def prototype expression`. A successful operator
// definition is installed in this parser, so later input can use it.
func (p *Parser) ParseDefinition() (*ast.Function, error) {
	p.NextToken() // def

	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	switch proto.Kind {
	case ast.BinaryProto:
		p.precedences[proto.OperatorName()] = proto.Precedence
		p.logger.Debug("installed binary operator %q with precedence %d", proto.OperatorName(), proto.Precedence)
	case ast.UnaryProto:
		p.unaryOps[proto.OperatorName()] = true
		p.logger.Debug("installed unary operator %q", proto.OperatorName())
	}

	return &ast.Function{Proto: proto, Body: body}, nil
}

// ParseExtern parses `extern prototype`.
func (p *Parser) ParseExtern() (*ast.Prototype, error) {
	p.NextToken() // extern
	return p.parsePrototype()
}

// ParseTopLevelExpression wraps a bare expression in an anonymous
// zero-argument function.
func (p *Parser) ParseTopLevelExpression() (*ast.Function, error) {
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	proto := &ast.Prototype{Name: "", Params: []string{}}
	return &ast.Function{Proto: proto, Body: body}, nil
}

// parsePrototype parses
//
//	id '(' id* ')'
//	unary OP '(' id ')'
//	binary OP [precedence] '(' id id ')'
func (p *Parser) parsePrototype() (*ast.Prototype, error) {
	proto := &ast.Prototype{Kind: ast.FunctionProto}

	switch p.curToken.Type {
	case IDENT:
		proto.Name = p.curToken.Literal
		p.NextToken()
	case UNARY:
		p.NextToken()
		if !isOperatorToken(p.curToken) {
			return nil, p.errorf("Expected unary operator")
		}
		proto.Name = "unary" + p.curToken.Literal
		proto.Kind = ast.UnaryProto
		p.NextToken()
	case BINARY:
		p.NextToken()
		if !isOperatorToken(p.curToken) {
			return nil, p.errorf("Expected binary operator")
		}
		proto.Name = "binary" + p.curToken.Literal
		proto.Kind = ast.BinaryProto
		proto.Precedence = DefaultBinaryPrecedence
		p.NextToken()

		if p.curTokenIs(NUMBER) {
			value := p.curToken.Value
			if value < MinOperatorPrecedence || value > MaxOperatorPrecedence {
				return nil, p.errorf("Invalid precedence: must be %d..%d", MinOperatorPrecedence, MaxOperatorPrecedence)
			}
			proto.Precedence = int(value)
			p.NextToken()
		}
	default:
		return nil, p.errorf("Expected function name in prototype")
	}

	if !p.curTokenIs(LPAREN) {
		return nil, p.errorf("Expected '(' in prototype")
	}

	params := []string{}
	for p.NextToken().Type == IDENT {
		params = append(params, p.curToken.Literal)
	}

	if !p.curTokenIs(RPAREN) {
		return nil, p.errorf("Expected ')' in prototype")
	}
	p.NextToken()

	if proto.IsOperator() && len(params) != operandCount(proto.Kind) {
		return nil, p.errorf("Invalid number of operands for operator")
	}

	proto.Params = params
	return proto, nil
}

func operandCount(kind ast.ProtoKind) int {
	switch kind {
	case ast.UnaryProto:
		return 1
	case ast.BinaryProto:
		return 2
	}
	return 0
}
