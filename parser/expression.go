package parser

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/scanner"
)

// Expression grammar, lowest precedence first:
//
//	conditional     if t then c else a
//	or              a or b
//	and             a and b
//	logical unary   not a, exists a
//	comparison      == != < <= > >= =~ !~
//	additive        + -
//	multiplicative  * / %
//	exponent        ^ (right-associative)
//	pipe            a |> f()
//	unary           + -
//	postfix         a.b  a(...)  a[...]
//	primary

const errNestingTooDeep = "expression nesting too deep"

func (p *Parser) parseExpression() ast.Expression {
	if !p.enter() {
		return p.skipNested()
	}
	defer p.leave()
	return p.parseConditionalExpression()
}

// parseExpressionWhileMore parses expressions until a stop token or the end
// of the current block. Several expressions are joined by a BinaryExpr with
// InvalidOperator; a well-formed input yields exactly one. Tokens that cannot
// start an expression are reported and skipped.
func (p *Parser) parseExpressionWhileMore(init ast.Expression, stop []scanner.TokenType) ast.Expression {
	expr := init
	for !slices.Contains(stop, p.peek().Type) && p.more() {
		e := p.parseExpression()
		if isBad(e) {
			p.skipInvalid()
			continue
		}
		if expr == nil {
			expr = e
			continue
		}
		expr = &ast.BinaryExpr{
			BaseNode: p.baseNodeFromOthers(expr, e),
			Operator: ast.InvalidOperator,
			Left:     expr,
			Right:    e,
		}
	}
	return expr
}

// skipInvalid consumes the token a BadExpr stopped at and reports it.
func (p *Parser) skipInvalid() {
	t := p.scan()
	p.errorf("invalid expression %s: %s", p.tokenLocation(t), t.Lit)
}

// isBad reports whether e is a BadExpr that left its token unconsumed.
func isBad(e ast.Expression) bool {
	bad, ok := e.(*ast.BadExpr)
	return ok && bad.Text != errNestingTooDeep
}

// parseExpressionSuffix continues an expression whose leading identifier was
// already consumed.
func (p *Parser) parseExpressionSuffix(expr ast.Expression) ast.Expression {
	expr = p.parsePostfixOperatorSuffix(expr)
	expr = p.parsePipeExpressionSuffix(expr)
	expr = p.parseExponentExpressionSuffix(expr)
	expr = p.parseMultiplicativeExpressionSuffix(expr)
	expr = p.parseAdditiveExpressionSuffix(expr)
	expr = p.parseComparisonExpressionSuffix(expr)
	expr = p.parseLogicalAndExpressionSuffix(expr)
	return p.parseLogicalOrExpressionSuffix(expr)
}

// expressionStart holds the tokens that can begin an expression.
var expressionStart = map[scanner.TokenType]bool{
	scanner.IDENT: true, scanner.INT: true, scanner.FLOAT: true, scanner.STRING: true,
	scanner.TIME: true, scanner.DURATION: true, scanner.PIPERECEIVE: true,
	scanner.LPAREN: true, scanner.LBRACK: true, scanner.LBRACE: true,
	scanner.ADD: true, scanner.SUB: true, scanner.DIV: true, scanner.NOT: true,
	scanner.EXISTS: true, scanner.IF: true, scanner.QUOTE: true,
}

// parseExpressionList parses the elements of an array literal. Skipped
// tokens and missing commas are reported once the list has been read, so
// the diagnostics land on the array itself.
func (p *Parser) parseExpressionList() []ast.Expression {
	var (
		exprs []ast.Expression
		errs  []string
	)
	for p.more() {
		t := p.peek()
		element := expressionStart[t.Type]
		if element {
			exprs = append(exprs, p.parseExpression())
			p.skipIfStuck(t)
		} else {
			p.consume()
			errs = append(errs, fmt.Sprintf("invalid expression %s: %s", p.tokenLocation(t), t.Lit))
		}

		if !p.more() {
			break
		}
		switch next := p.peek(); {
		case next.Type == scanner.COMMA:
			p.consume()
		case element && expressionStart[next.Type]:
			errs = append(errs, "expected COMMA, got "+next.Type.String())
		}
	}
	p.errs = append(p.errs, errs...)
	return exprs
}

func (p *Parser) parseConditionalExpression() ast.Expression {
	t := p.peek()
	if t.Type != scanner.IF {
		return p.parseLogicalOrExpression()
	}
	p.consume()
	test := p.parseExpression()
	p.expect(scanner.THEN)
	cons := p.parseExpression()
	p.expect(scanner.ELSE)
	alt := p.parseExpression()
	return &ast.ConditionalExpr{
		BaseNode:   p.baseNodeFromOtherEnd(t, alt),
		Test:       test,
		Consequent: cons,
		Alternate:  alt,
	}
}

func (p *Parser) parseLogicalOrExpression() ast.Expression {
	return p.parseLogicalOrExpressionSuffix(p.parseLogicalAndExpression())
}

func (p *Parser) parseLogicalOrExpressionSuffix(expr ast.Expression) ast.Expression {
	for p.peek().Type == scanner.OR {
		p.consume()
		rhs := p.parseLogicalAndExpression()
		expr = &ast.LogicalExpr{
			BaseNode: p.baseNodeFromOthers(expr, rhs),
			Operator: ast.OrOperator,
			Left:     expr,
			Right:    rhs,
		}
	}
	return expr
}

func (p *Parser) parseLogicalAndExpression() ast.Expression {
	return p.parseLogicalAndExpressionSuffix(p.parseLogicalUnaryExpression())
}

func (p *Parser) parseLogicalAndExpressionSuffix(expr ast.Expression) ast.Expression {
	for p.peek().Type == scanner.AND {
		p.consume()
		rhs := p.parseLogicalUnaryExpression()
		expr = &ast.LogicalExpr{
			BaseNode: p.baseNodeFromOthers(expr, rhs),
			Operator: ast.AndOperator,
			Left:     expr,
			Right:    rhs,
		}
	}
	return expr
}

func (p *Parser) parseLogicalUnaryExpression() ast.Expression {
	t := p.peek()
	var op ast.Operator
	switch t.Type {
	case scanner.NOT:
		op = ast.NotOperator
	case scanner.EXISTS:
		op = ast.ExistsOperator
	default:
		return p.parseComparisonExpression()
	}
	if !p.enter() {
		return p.skipNested()
	}
	defer p.leave()

	p.consume()
	expr := p.parseLogicalUnaryExpression()
	return &ast.UnaryExpr{
		BaseNode: p.baseNodeFromOtherEnd(t, expr),
		Operator: op,
		Argument: expr,
	}
}

var comparisonOperators = map[scanner.TokenType]ast.Operator{
	scanner.EQ:       ast.EqualOperator,
	scanner.NEQ:      ast.NotEqualOperator,
	scanner.LTE:      ast.LessThanEqualOperator,
	scanner.LT:       ast.LessThanOperator,
	scanner.GTE:      ast.GreaterThanEqualOperator,
	scanner.GT:       ast.GreaterThanOperator,
	scanner.REGEXEQ:  ast.RegexpMatchOperator,
	scanner.REGEXNEQ: ast.NotRegexpMatchOperator,
}

var additiveOperators = map[scanner.TokenType]ast.Operator{
	scanner.ADD: ast.AdditionOperator,
	scanner.SUB: ast.SubtractionOperator,
}

var multiplicativeOperators = map[scanner.TokenType]ast.Operator{
	scanner.MUL: ast.MultiplicationOperator,
	scanner.DIV: ast.DivisionOperator,
	scanner.MOD: ast.ModuloOperator,
}

func (p *Parser) parseComparisonExpression() ast.Expression {
	return p.parseComparisonExpressionSuffix(p.parseAdditiveExpression())
}

func (p *Parser) parseComparisonExpressionSuffix(expr ast.Expression) ast.Expression {
	return p.parseBinarySuffix(expr, comparisonOperators, p.parseAdditiveExpression)
}

func (p *Parser) parseAdditiveExpression() ast.Expression {
	return p.parseAdditiveExpressionSuffix(p.parseMultiplicativeExpression())
}

func (p *Parser) parseAdditiveExpressionSuffix(expr ast.Expression) ast.Expression {
	return p.parseBinarySuffix(expr, additiveOperators, p.parseMultiplicativeExpression)
}

func (p *Parser) parseMultiplicativeExpression() ast.Expression {
	return p.parseMultiplicativeExpressionSuffix(p.parseExponentExpression())
}

func (p *Parser) parseMultiplicativeExpressionSuffix(expr ast.Expression) ast.Expression {
	return p.parseBinarySuffix(expr, multiplicativeOperators, p.parseExponentExpression)
}

// parseBinarySuffix folds a left-associative run of operators from ops.
func (p *Parser) parseBinarySuffix(expr ast.Expression, ops map[scanner.TokenType]ast.Operator, operand func() ast.Expression) ast.Expression {
	for {
		op, ok := ops[p.peek().Type]
		if !ok {
			return expr
		}
		p.consume()
		rhs := operand()
		expr = &ast.BinaryExpr{
			BaseNode: p.baseNodeFromOthers(expr, rhs),
			Operator: op,
			Left:     expr,
			Right:    rhs,
		}
	}
}

func (p *Parser) parseExponentExpression() ast.Expression {
	return p.parseExponentExpressionSuffix(p.parsePipeExpression())
}

// parseExponentExpressionSuffix makes ^ bind to the right: 2^3^2 is 2^(3^2).
func (p *Parser) parseExponentExpressionSuffix(expr ast.Expression) ast.Expression {
	if p.peek().Type != scanner.POW {
		return expr
	}
	if !p.enter() {
		return p.skipNested()
	}
	defer p.leave()

	p.consume()
	rhs := p.parseExponentExpression()
	return &ast.BinaryExpr{
		BaseNode: p.baseNodeFromOthers(expr, rhs),
		Operator: ast.PowerOperator,
		Left:     expr,
		Right:    rhs,
	}
}

func (p *Parser) parsePipeExpression() ast.Expression {
	return p.parsePipeExpressionSuffix(p.parseUnaryExpression())
}

// parsePipeExpressionSuffix folds a |> chain. A destination that is not a
// call is reported and wrapped in a CallExpr without arguments.
func (p *Parser) parsePipeExpressionSuffix(expr ast.Expression) ast.Expression {
	for p.peek().Type == scanner.PIPEFORWARD {
		p.consume()
		rhs := p.parseUnaryExpression()
		call, ok := rhs.(*ast.CallExpr)
		if !ok {
			p.errorf("pipe destination must be a function call")
			call = &ast.CallExpr{
				BaseNode: p.baseNode(rhs.Location()),
				Callee:   rhs,
			}
		}
		expr = &ast.PipeExpr{
			BaseNode: p.baseNodeFromOthers(expr, call),
			Argument: expr,
			Call:     call,
		}
	}
	return expr
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	t := p.peek()
	op, ok := additiveOperators[t.Type]
	if !ok {
		return p.parsePostfixExpression()
	}
	if !p.enter() {
		return p.skipNested()
	}
	defer p.leave()

	p.consume()
	expr := p.parseUnaryExpression()
	return &ast.UnaryExpr{
		BaseNode: p.baseNodeFromOtherEnd(t, expr),
		Operator: op,
		Argument: expr,
	}
}

func (p *Parser) parsePostfixExpression() ast.Expression {
	return p.parsePostfixOperatorSuffix(p.parsePrimaryExpression())
}

func (p *Parser) parsePostfixOperatorSuffix(expr ast.Expression) ast.Expression {
	for {
		switch p.peek().Type {
		case scanner.DOT:
			expr = p.parseDotExpression(expr)
		case scanner.LPAREN:
			expr = p.parseCallExpression(expr)
		case scanner.LBRACK:
			expr = p.parseIndexExpression(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parseDotExpression(expr ast.Expression) ast.Expression {
	p.expect(scanner.DOT)
	id := p.parseIdentifier()
	return &ast.MemberExpr{
		BaseNode: p.baseNodeFromOthers(expr, id),
		Object:   expr,
		Property: id,
	}
}

// parseCallExpression parses an argument list. Non-empty arguments are
// collected into a single ObjectExpr without braces.
func (p *Parser) parseCallExpression(expr ast.Expression) ast.Expression {
	p.open(scanner.LPAREN, scanner.RPAREN)
	params := p.parsePropertyList()
	end := p.close(scanner.RPAREN)
	call := &ast.CallExpr{
		BaseNode: p.baseNodeFromOtherStart(expr, end),
		Callee:   expr,
	}
	if len(params) > 0 {
		call.Arguments = []ast.Expression{&ast.ObjectExpr{
			BaseNode:   p.baseNodeFromOthers(params[0], params[len(params)-1]),
			Properties: params,
		}}
	}
	return call
}

// parseIndexExpression parses a[i]. A string index produces a MemberExpr and
// an empty index the placeholder -1.
func (p *Parser) parseIndexExpression(expr ast.Expression) ast.Expression {
	start := p.open(scanner.LBRACK, scanner.RBRACK)
	index := p.parseExpressionWhileMore(nil, nil)
	end := p.close(scanner.RBRACK)

	switch index := index.(type) {
	case *ast.StringLit:
		return &ast.MemberExpr{
			BaseNode: p.baseNodeFromOtherStart(expr, end),
			Object:   expr,
			Property: index,
		}
	case nil:
		p.errorf("no expression included in brackets")
		base := p.baseNodeFromOtherStart(expr, end)
		return &ast.IndexExpr{
			BaseNode: base,
			Array:    expr,
			Index: &ast.IntegerLit{
				BaseNode: p.baseNodeFromTokens(start, end),
				Value:    -1,
			},
		}
	default:
		return &ast.IndexExpr{
			BaseNode: p.baseNodeFromOtherStart(expr, end),
			Array:    expr,
			Index:    index,
		}
	}
}

// Nesting guard

// enter records one more level of nesting. It reports false once the
// configured maximum is reached.
func (p *Parser) enter() bool {
	if p.depth >= p.maxDepth {
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// skipNested abandons an expression nested too deeply. It consumes tokens up
// to the closing delimiter of the enclosing block, keeping nested delimiters
// balanced, and returns a BadExpr covering what it skipped.
func (p *Parser) skipNested() ast.Expression {
	first := p.peek()
	last := first
	level := 0
	skipped := false
loop:
	for {
		t := p.peek()
		switch t.Type {
		case scanner.EOF:
			break loop
		case scanner.LPAREN, scanner.LBRACK, scanner.LBRACE:
			level++
		case scanner.RPAREN, scanner.RBRACK, scanner.RBRACE:
			if level == 0 {
				break loop
			}
			level--
		case scanner.COMMA:
			if level == 0 {
				break loop
			}
		}
		last = p.scan()
		skipped = true
	}
	if !skipped && first.Type != scanner.EOF && p.blocks[first.Type] == 0 {
		p.consume()
	}
	return &ast.BadExpr{
		BaseNode: ast.BaseNode{Loc: p.sourceLocation(position(first.StartPos), position(last.EndPos))},
		Text:     errNestingTooDeep,
	}
}
