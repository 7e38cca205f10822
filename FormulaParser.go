package main

import (
	"fmt"
	"math"
	"spreadsheetPro/contracts"
	"strconv"
)

// exprNode is an element of the parsed formula tree
type exprNode interface {
	eval(ctx *evalContext) contracts.CellValue
}

type numberNode struct {
	value float64
}

func (n *numberNode) eval(*evalContext) contracts.CellValue {
	return contracts.NumberValue(n.value)
}

type stringNode struct {
	value string
}

func (n *stringNode) eval(*evalContext) contracts.CellValue {
	return contracts.TextValue(n.value)
}

type booleanNode struct {
	value bool
}

func (n *booleanNode) eval(*evalContext) contracts.CellValue {
	return contracts.BooleanValue(n.value)
}

// emptyNode is an omitted function argument, as in SUM(1,,2)
type emptyNode struct{}

func (n *emptyNode) eval(*evalContext) contracts.CellValue {
	return contracts.NullValue()
}

type referenceNode struct {
	token string
}

// eval reads the referenced cell as a number, the way arithmetic sees it
func (n *referenceNode) eval(ctx *evalContext) contracts.CellValue {
	return expressionNumber(ReadCell(ctx.grid, ctx.sheet, n.token))
}

type rangeNode struct {
	token string
}

// eval is only reached when a range is used as a scalar
func (n *rangeNode) eval(*evalContext) contracts.CellValue {
	return contracts.ErrorValue(contracts.ErrorGeneric)
}

// identifierNode is a bare name. Only functions that read raw arguments (DATEDIF units) accept it.
type identifierNode struct {
	name string
}

func (n *identifierNode) eval(*evalContext) contracts.CellValue {
	return contracts.ErrorValue(contracts.ErrorGeneric)
}

type unaryNode struct {
	operator string
	operand  exprNode
}

func (n *unaryNode) eval(ctx *evalContext) contracts.CellValue {
	value := n.operand.eval(ctx)
	if value.IsError() {
		return value
	}

	number, ok := scalarNumber(value)
	if !ok {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}

	if n.operator == "-" {
		number = -number
	}
	return contracts.NumberValue(number)
}

type binaryNode struct {
	operator string
	left     exprNode
	right    exprNode
}

func (n *binaryNode) eval(ctx *evalContext) contracts.CellValue {
	left := n.left.eval(ctx)
	if left.IsError() {
		return left
	}

	right := n.right.eval(ctx)
	if right.IsError() {
		return right
	}

	switch n.operator {
	case "==", "=", "!=", "<>", "<", ">", "<=", ">=":
		return compareValues(n.operator, left, right)
	}

	a, okLeft := scalarNumber(left)
	b, okRight := scalarNumber(right)
	if !okLeft || !okRight {
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}

	var result float64
	switch n.operator {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*":
		result = a * b
	case "/":
		if b == 0 {
			return contracts.ErrorValue(contracts.ErrorGeneric)
		}
		result = a / b
	case "%":
		if b == 0 {
			return contracts.ErrorValue(contracts.ErrorGeneric)
		}
		result = math.Mod(a, b)
	case "^":
		result = math.Pow(a, b)
	default:
		return contracts.ErrorValue(contracts.ErrorGeneric)
	}

	return checkFinite(result)
}

type callNode struct {
	name string
	args []exprNode
}

func (n *callNode) eval(ctx *evalContext) contracts.CellValue {
	function, ok := ctx.functions[n.name]
	if !ok {
		return contracts.ErrorValue(contracts.ErrorFunction)
	}

	return function(ctx, n.args)
}

type formulaParser struct {
	tokens []formulaToken
	pos    int
}

// parseFormula builds the evaluation tree of an expression without the leading "="
func parseFormula(expression string) (exprNode, error) {
	tokens, err := tokenizeFormula(expression)
	if err != nil {
		return nil, err
	}

	parser := &formulaParser{tokens: tokens}
	node, err := parser.parseComparison()
	if err != nil {
		return nil, err
	}

	if current := parser.current(); current.typ != tokenEOF {
		return nil, fmt.Errorf("%w: unexpected %q at %d", FormulaSyntaxError, current.value, current.pos)
	}

	return node, nil
}

func (p *formulaParser) current() formulaToken {
	return p.tokens[p.pos]
}

func (p *formulaParser) advance() formulaToken {
	token := p.tokens[p.pos]
	if token.typ != tokenEOF {
		p.pos++
	}
	return token
}

// acceptOperator consumes the current token when it is one of the given operators
func (p *formulaParser) acceptOperator(operators ...string) (string, bool) {
	current := p.current()
	if current.typ != tokenOperator {
		return "", false
	}

	for _, operator := range operators {
		if current.value == operator {
			p.advance()
			return operator, true
		}
	}

	return "", false
}

func (p *formulaParser) parseComparison() (exprNode, error) {
	return p.parseBinary(p.parseAdditive, "==", "!=", "<>", "=", "<", ">", "<=", ">=")
}

func (p *formulaParser) parseAdditive() (exprNode, error) {
	return p.parseBinary(p.parseMultiplicative, "+", "-")
}

func (p *formulaParser) parseMultiplicative() (exprNode, error) {
	return p.parseBinary(p.parseUnary, "*", "/", "%")
}

// parseBinary parses a left associative chain of operands joined by operators
func (p *formulaParser) parseBinary(operand func() (exprNode, error), operators ...string) (exprNode, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		operator, ok := p.acceptOperator(operators...)
		if !ok {
			return left, nil
		}

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = &binaryNode{operator: operator, left: left, right: right}
	}
}

func (p *formulaParser) parseUnary() (exprNode, error) {
	if operator, ok := p.acceptOperator("+", "-"); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{operator: operator, operand: operand}, nil
	}

	return p.parsePower()
}

// parsePower binds tighter than unary minus and is right associative: -2^2 is -4, 2^3^2 is 512
func (p *formulaParser) parsePower() (exprNode, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if _, ok := p.acceptOperator("^"); !ok {
		return base, nil
	}

	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &binaryNode{operator: "^", left: base, right: exponent}, nil
}

func (p *formulaParser) parsePrimary() (exprNode, error) {
	token := p.advance()

	switch token.typ {
	case tokenNumber:
		number, err := strconv.ParseFloat(token.value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed number %q", FormulaSyntaxError, token.value)
		}
		return &numberNode{value: number}, nil

	case tokenString:
		return &stringNode{value: token.value}, nil

	case tokenBoolean:
		return &booleanNode{value: token.value == "TRUE"}, nil

	case tokenReference:
		return &referenceNode{token: token.value}, nil

	case tokenRange:
		return &rangeNode{token: token.value}, nil

	case tokenIdentifier:
		return &identifierNode{name: token.value}, nil

	case tokenFunction:
		return p.parseCall(token)

	case tokenLeftParen:
		node, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.typ != tokenRightParen {
			return nil, fmt.Errorf("%w: missing ) at %d", FormulaSyntaxError, closing.pos)
		}
		return node, nil

	case tokenEOF:
		return nil, fmt.Errorf("%w: unexpected end of formula", FormulaSyntaxError)
	}

	return nil, fmt.Errorf("%w: unexpected %q at %d", FormulaSyntaxError, token.value, token.pos)
}

// parseCall parses NAME(arg, ...). Commas split arguments only at the call's own depth
// and an omitted argument becomes an empty value.
func (p *formulaParser) parseCall(name formulaToken) (exprNode, error) {
	if open := p.advance(); open.typ != tokenLeftParen {
		return nil, fmt.Errorf("%w: expected ( after %s", FormulaSyntaxError, name.value)
	}

	call := &callNode{name: name.value, args: []exprNode{}}
	if p.current().typ == tokenRightParen {
		p.advance()
		return call, nil
	}

	for {
		var arg exprNode = &emptyNode{}
		if typ := p.current().typ; typ != tokenComma && typ != tokenRightParen {
			var err error
			if arg, err = p.parseComparison(); err != nil {
				return nil, err
			}
		}
		call.args = append(call.args, arg)

		switch separator := p.advance(); separator.typ {
		case tokenComma:
			continue
		case tokenRightParen:
			return call, nil
		default:
			return nil, fmt.Errorf("%w: unclosed call to %s", FormulaSyntaxError, name.value)
		}
	}
}
