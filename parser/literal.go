package parser

import (
	"fmt"
	"strconv"

	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/scanner"
)

// createBadExpression reports a token that cannot start an operand. The token
// is left unconsumed and no pending errors are taken, so they stay with the
// enclosing node.
func (p *Parser) createBadExpression(t scanner.Token) ast.Expression {
	return &ast.BadExpr{
		BaseNode: ast.BaseNode{Loc: p.tokenLocation(t)},
		Text:     fmt.Sprintf("invalid token for primary expression: %s", t.Type),
	}
}

func (p *Parser) parsePrimaryExpression() ast.Expression {
	t := p.peekWithRegex()
	switch t.Type {
	case scanner.IDENT:
		return p.parseIdentifier()
	case scanner.INT:
		return p.parseIntLiteral()
	case scanner.FLOAT:
		return p.parseFloatLiteral()
	case scanner.STRING:
		return p.parseStringLiteral()
	case scanner.QUOTE:
		return p.parseStringExpression()
	case scanner.REGEX:
		return p.parseRegexpLiteral()
	case scanner.TIME:
		return p.parseTimeLiteral()
	case scanner.DURATION:
		return p.parseDurationLiteral()
	case scanner.PIPERECEIVE:
		return p.parsePipeLiteral()
	case scanner.LBRACK:
		return p.parseArrayLiteral()
	case scanner.LBRACE:
		return p.parseObjectLiteral()
	case scanner.LPAREN:
		return p.parseParenExpression()
	default:
		return p.createBadExpression(t)
	}
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	t := p.expect(scanner.IDENT)
	return &ast.Identifier{
		BaseNode: p.baseNodeFromToken(t),
		Name:     p.interner.Intern(t.Lit),
	}
}

// parseIntLiteral keeps the node with value 0 when the literal is invalid.
func (p *Parser) parseIntLiteral() *ast.IntegerLit {
	t := p.expect(scanner.INT)
	var value int64
	if len(t.Lit) > 1 && t.Lit[0] == '0' {
		p.errorf("invalid integer literal %q: nonzero value cannot start with 0", t.Lit)
	} else if v, err := strconv.ParseInt(t.Lit, 10, 64); err != nil {
		p.errorf("invalid integer literal %q: value out of range", t.Lit)
	} else {
		value = v
	}
	return &ast.IntegerLit{
		BaseNode: p.baseNodeFromToken(t),
		Value:    value,
	}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	t := p.expect(scanner.FLOAT)
	value, err := strconv.ParseFloat(t.Lit, 64)
	if err != nil {
		return p.createBadExpression(t)
	}
	return &ast.FloatLit{
		BaseNode: p.baseNodeFromToken(t),
		Value:    value,
	}
}

func (p *Parser) parseStringLiteral() *ast.StringLit {
	t := p.expect(scanner.STRING)
	value, err := ParseString(t.Lit)
	if err != nil {
		p.errorf("%s", err)
	}
	return &ast.StringLit{
		BaseNode: p.baseNodeFromToken(t),
		Value:    value,
	}
}

func (p *Parser) parseRegexpLiteral() *ast.RegexpLit {
	t := p.expect(scanner.REGEX)
	value, err := ParseRegex(t.Lit)
	if err != nil {
		p.errorf("%s", err)
	}
	return &ast.RegexpLit{
		BaseNode: p.baseNodeFromToken(t),
		Value:    value,
	}
}

func (p *Parser) parseTimeLiteral() ast.Expression {
	t := p.expect(scanner.TIME)
	value, err := ParseTime(t.Lit)
	if err != nil {
		return p.createBadExpression(t)
	}
	return &ast.DateTimeLit{
		BaseNode: p.baseNodeFromToken(t),
		Value:    value,
	}
}

func (p *Parser) parseDurationLiteral() ast.Expression {
	t := p.expect(scanner.DURATION)
	values, err := ParseDuration(t.Lit)
	if err != nil {
		return p.createBadExpression(t)
	}
	return &ast.DurationLit{
		BaseNode: p.baseNodeFromToken(t),
		Values:   values,
	}
}

func (p *Parser) parsePipeLiteral() *ast.PipeLit {
	t := p.expect(scanner.PIPERECEIVE)
	return &ast.PipeLit{BaseNode: p.baseNodeFromToken(t)}
}

// parseStringExpression parses an interpolated string. The scanner is driven
// in string mode between interpolations.
func (p *Parser) parseStringExpression() ast.Expression {
	start := p.expect(scanner.QUOTE)
	var parts []ast.StringExprPart
	for {
		t := p.s.ScanStringExpr()
		switch t.Type {
		case scanner.TEXT:
			value, err := ParseText(t.Lit)
			if err != nil {
				return p.createBadExpression(t)
			}
			parts = append(parts, &ast.TextPart{
				BaseNode: p.baseNodeFromToken(t),
				Value:    value,
			})
		case scanner.STRINGEXPR:
			expr := p.parseExpression()
			end := p.expect(scanner.RBRACE)
			parts = append(parts, &ast.InterpolatedPart{
				BaseNode:   p.baseNodeFromTokens(t, end),
				Expression: expr,
			})
		case scanner.QUOTE:
			return &ast.StringExpr{
				BaseNode: p.baseNodeFromTokens(start, t),
				Parts:    parts,
			}
		default:
			loc := p.tokenLocation(t)
			p.errorf("got unexpected token in string expression %s@%d:%d-%d:%d: %s",
				p.fname, loc.Start.Line, loc.Start.Column, loc.End.Line, loc.End.Column, t.Type)
			return &ast.StringExpr{
				BaseNode: p.baseNodeFromTokens(start, t),
			}
		}
	}
}

func (p *Parser) parseArrayLiteral() *ast.ArrayExpr {
	start := p.open(scanner.LBRACK, scanner.RBRACK)
	exprs := p.parseExpressionList()
	end := p.close(scanner.RBRACK)
	return &ast.ArrayExpr{
		BaseNode: p.baseNodeFromTokens(start, end),
		Elements: exprs,
	}
}

func (p *Parser) parseObjectLiteral() *ast.ObjectExpr {
	start := p.open(scanner.LBRACE, scanner.RBRACE)
	obj := p.parseObjectBody()
	end := p.close(scanner.RBRACE)
	obj.BaseNode = p.baseNodeFromTokens(start, end)
	return obj
}

func (p *Parser) parseParenExpression() ast.Expression {
	lparen := p.open(scanner.LPAREN, scanner.RPAREN)
	return p.parseParenBodyExpression(lparen)
}

// parseParenBodyExpression decides between a parenthesized expression and
// the parameter list of a function literal.
func (p *Parser) parseParenBodyExpression(lparen scanner.Token) ast.Expression {
	t := p.peek()
	switch t.Type {
	case scanner.RPAREN:
		p.close(scanner.RPAREN)
		return p.parseFunctionExpression(lparen, nil)
	case scanner.IDENT:
		id := p.parseIdentifier()
		return p.parseParenIdentExpression(lparen, id)
	}

	expr := p.parseExpressionWhileMore(nil, nil)
	if expr == nil {
		expr = &ast.BadExpr{
			BaseNode: ast.BaseNode{Loc: p.tokenLocation(t)},
			Text:     t.Lit,
		}
	}
	rparen := p.close(scanner.RPAREN)
	return &ast.ParenExpr{
		BaseNode:   p.baseNodeFromTokens(lparen, rparen),
		Expression: expr,
	}
}

func (p *Parser) parseParenIdentExpression(lparen scanner.Token, key *ast.Identifier) ast.Expression {
	switch p.peek().Type {
	case scanner.RPAREN:
		p.close(scanner.RPAREN)
		if p.peek().Type != scanner.ARROW {
			return key
		}
		params := []*ast.Property{{
			BaseNode: p.baseNode(key.Loc),
			Key:      key,
		}}
		return p.parseFunctionExpression(lparen, params)

	case scanner.ASSIGN:
		p.consume()
		value := p.parseExpression()
		params := []*ast.Property{{
			BaseNode: p.baseNodeFromOthers(key, value),
			Key:      key,
			Value:    value,
		}}
		if p.peek().Type == scanner.COMMA {
			p.scan()
			params = append(params, p.parseParameterList()...)
		}
		p.close(scanner.RPAREN)
		return p.parseFunctionExpression(lparen, params)

	case scanner.COMMA:
		p.consume()
		params := []*ast.Property{{
			BaseNode: p.baseNode(key.Loc),
			Key:      key,
		}}
		params = append(params, p.parseParameterList()...)
		p.close(scanner.RPAREN)
		return p.parseFunctionExpression(lparen, params)
	}

	expr := p.parseExpressionSuffix(key)
	for p.more() {
		rhs := p.parseExpression()
		if isBad(rhs) {
			p.skipInvalid()
			continue
		}
		expr = &ast.BinaryExpr{
			BaseNode: p.baseNodeFromOthers(expr, rhs),
			Operator: ast.InvalidOperator,
			Left:     expr,
			Right:    rhs,
		}
	}
	rparen := p.close(scanner.RPAREN)
	return &ast.ParenExpr{
		BaseNode:   p.baseNodeFromTokens(lparen, rparen),
		Expression: expr,
	}
}

// parseFunctionExpression parses "=> body" once the parameter list has been
// read. The body is either a block or a single expression.
func (p *Parser) parseFunctionExpression(lparen scanner.Token, params []*ast.Property) ast.Expression {
	p.expect(scanner.ARROW)
	if p.peek().Type == scanner.LBRACE {
		block := p.parseBlock()
		return &ast.FunctionExpr{
			BaseNode: p.baseNodeFromOtherEnd(lparen, block),
			Params:   params,
			Body:     block,
		}
	}
	expr := p.parseExpression()
	return &ast.FunctionExpr{
		BaseNode: p.baseNodeFromOtherEnd(lparen, expr),
		Params:   params,
		Body:     expr,
	}
}
