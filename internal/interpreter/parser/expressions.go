package parser

import (
	"Kaleidoscope/internal/ast"
	. "Kaleidoscope/internal/common"
)

// maxDepth bounds how deeply expressions may nest. Each parenthesis level
// or prefix operator costs one or two levels.
const maxDepth = 1000

// ParseExpression parses a unary operand followed by any binary operators
// that bind at precedence 0 or above.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(0, lhs)
}

// parseBinOpRHS folds `op operand` pairs onto lhs while the operator binds at
// least as tightly as minPrec. A tighter operator after the operand is
// absorbed into the right-hand side first, which keeps equal precedences
// left associative.
func (p *Parser) parseBinOpRHS(minPrec int, lhs ast.Expression) (ast.Expression, error) {
	for {
		tokPrec := p.tokenPrecedence()
		if tokPrec < minPrec {
			return lhs, nil
		}

		op := p.curToken.Char()
		p.NextToken()

		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		if tokPrec < p.tokenPrecedence() {
			rhs, err = p.parseBinOpRHS(tokPrec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &ast.Binary{Op: op, Left: lhs, Right: rhs}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if !p.curToken.IsChar() || !p.unaryOps[p.curToken.Char()] {
		return p.parsePrimary()
	}

	op := p.curToken.Char()
	p.NextToken()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: op, Operand: operand}, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.curToken.Type {
	case IDENT:
		return p.parseIdentifierExpression()
	case NUMBER:
		return p.parseNumberExpression()
	case LPAREN:
		return p.parseParenExpression()
	case IF:
		return p.parseIfExpression()
	case FOR:
		return p.parseForExpression()
	case VAR:
		return p.parseVarExpression()
	default:
		return nil, p.errorf("unknown token when expecting an expression")
	}
}

func (p *Parser) parseNumberExpression() (ast.Expression, error) {
	expr := &ast.Number{Value: p.curToken.Value}
	p.NextToken()
	return expr, nil
}

func (p *Parser) parseParenExpression() (ast.Expression, error) {
	p.NextToken() // (

	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(RPAREN) {
		return nil, p.errorf("expected ')'")
	}
	p.NextToken()

	return expr, nil
}

// parseIdentifierExpression parses a variable reference, or a call when the
// name is followed by '('.
func (p *Parser) parseIdentifierExpression() (ast.Expression, error) {
	name := p.curToken.Literal
	p.NextToken()

	if !p.curTokenIs(LPAREN) {
		return &ast.Variable{Name: name}, nil
	}
	p.NextToken()

	args := []ast.Expression{}
	if !p.curTokenIs(RPAREN) {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.curTokenIs(RPAREN) {
				break
			}
			if !p.curTokenIs(COMMA) {
				return nil, p.errorf("Expected ')' or ',' in argument list")
			}
			p.NextToken()
		}
	}
	p.NextToken() // )

	return &ast.Call{Callee: name, Args: args}, nil
}

func (p *Parser) parseIfExpression() (ast.Expression, error) {
	p.NextToken() // if

	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(THEN) {
		return nil, p.errorf("expected then")
	}
	p.NextToken()

	then, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(ELSE) {
		return nil, p.errorf("expected else")
	}
	p.NextToken()

	els, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.If{Cond: cond, Then: then, Else: els}, nil
}

// parseForExpression parses `for id = start, end[, step] in body`.
func (p *Parser) parseForExpression() (ast.Expression, error) {
	p.NextToken() // for

	if !p.curTokenIs(IDENT) {
		return nil, p.errorf("expected identifier after for")
	}
	name := p.curToken.Literal
	p.NextToken()

	if !p.curTokenIs(ASSIGN) {
		return nil, p.errorf("expected '=' after for")
	}
	p.NextToken()

	start, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(COMMA) {
		return nil, p.errorf("expected ',' after for start value")
	}
	p.NextToken()

	end, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	var step ast.Expression
	if p.curTokenIs(COMMA) {
		p.NextToken()
		step, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}

	if !p.curTokenIs(IN) {
		return nil, p.errorf("expected 'in' after for")
	}
	p.NextToken()

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.For{Var: name, Start: start, End: end, Step: step, Body: body}, nil
}

// parseVarExpression parses `var a [= init], b [= init] in body`.
func (p *Parser) parseVarExpression() (ast.Expression, error) {
	p.NextToken() // var

	if !p.curTokenIs(IDENT) {
		return nil, p.errorf("expected identifier after var")
	}

	bindings := []ast.VarBinding{}
	for {
		binding := ast.VarBinding{Name: p.curToken.Literal}
		p.NextToken()

		if p.curTokenIs(ASSIGN) {
			p.NextToken()
			init, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			binding.Init = init
		}
		bindings = append(bindings, binding)

		if !p.curTokenIs(COMMA) {
			break
		}
		p.NextToken()

		if !p.curTokenIs(IDENT) {
			return nil, p.errorf("expected identifier list after var")
		}
	}

	if !p.curTokenIs(IN) {
		return nil, p.errorf("expected 'in' keyword after 'var'")
	}
	p.NextToken()

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.Var{Bindings: bindings, Body: body}, nil
}
