package parser

import (
	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/scanner"
)

func (p *Parser) parseStatementList() []ast.Statement {
	var stmts []ast.Statement
	for p.more() {
		before := p.peek()
		stmts = append(stmts, p.parseStatement())
		p.skipIfStuck(before)
	}
	return stmts
}

// parseStatement dispatches on the leading token. A token that cannot start
// a statement becomes a BadStmt holding its text.
func (p *Parser) parseStatement() ast.Statement {
	t := p.peek()
	switch t.Type {
	case scanner.INT, scanner.FLOAT, scanner.STRING, scanner.DIV, scanner.TIME,
		scanner.DURATION, scanner.PIPERECEIVE, scanner.LPAREN, scanner.LBRACK,
		scanner.LBRACE, scanner.ADD, scanner.SUB, scanner.NOT, scanner.IF,
		scanner.EXISTS, scanner.QUOTE:
		return p.parseExpressionStatement()
	case scanner.IDENT:
		return p.parseIdentStatement()
	case scanner.OPTION:
		return p.parseOptionAssignment()
	case scanner.BUILTIN:
		return p.parseBuiltinStatement()
	case scanner.TEST:
		return p.parseTestStatement()
	case scanner.RETURN:
		return p.parseReturnStatement()
	default:
		p.consume()
		return &ast.BadStmt{
			BaseNode: p.baseNodeFromToken(t),
			Text:     t.Lit,
		}
	}
}

func (p *Parser) parseOptionAssignment() ast.Statement {
	t := p.expect(scanner.OPTION)
	id := p.parseIdentifier()
	assignment := p.parseOptionAssignmentSuffix(id)
	if assignment == nil {
		return &ast.BadStmt{
			BaseNode: p.baseNodeFromToken(t),
			Text:     t.Lit,
		}
	}
	return &ast.OptionStmt{
		BaseNode:   p.baseNodeFromOtherEnd(t, assignment),
		Assignment: assignment,
	}
}

// parseOptionAssignmentSuffix returns nil when id is followed by neither
// "=" nor ".".
func (p *Parser) parseOptionAssignmentSuffix(id *ast.Identifier) ast.Assignment {
	switch p.peek().Type {
	case scanner.ASSIGN:
		init := p.parseAssignStatement()
		return &ast.VariableAssgn{
			BaseNode: p.baseNodeFromOthers(id, init),
			ID:       id,
			Init:     init,
		}
	case scanner.DOT:
		p.consume()
		prop := p.parseIdentifier()
		p.expect(scanner.ASSIGN)
		init := p.parseExpression()
		base := p.baseNodeFromOthers(id, init)
		member := &ast.MemberExpr{
			BaseNode: p.baseNodeFromOthers(id, prop),
			Object:   id,
			Property: prop,
		}
		return &ast.MemberAssgn{
			BaseNode: base,
			Member:   member,
			Init:     init,
		}
	default:
		return nil
	}
}

func (p *Parser) parseBuiltinStatement() ast.Statement {
	t := p.expect(scanner.BUILTIN)
	id := p.parseIdentifier()
	return &ast.BuiltinStmt{
		BaseNode: p.baseNodeFromOtherEnd(t, id),
		ID:       id,
	}
}

func (p *Parser) parseTestStatement() ast.Statement {
	t := p.expect(scanner.TEST)
	id := p.parseIdentifier()
	init := p.parseAssignStatement()
	base := p.baseNodeFromOtherEnd(t, init)
	return &ast.TestStmt{
		BaseNode: base,
		Assignment: &ast.VariableAssgn{
			BaseNode: p.baseNodeFromOthers(id, init),
			ID:       id,
			Init:     init,
		},
	}
}

func (p *Parser) parseIdentStatement() ast.Statement {
	id := p.parseIdentifier()
	if p.peek().Type == scanner.ASSIGN {
		init := p.parseAssignStatement()
		return &ast.VariableAssgn{
			BaseNode: p.baseNodeFromOthers(id, init),
			ID:       id,
			Init:     init,
		}
	}
	expr := p.parseExpressionSuffix(id)
	return &ast.ExprStmt{
		BaseNode:   p.baseNode(expr.Location()),
		Expression: expr,
	}
}

func (p *Parser) parseAssignStatement() ast.Expression {
	p.expect(scanner.ASSIGN)
	return p.parseExpression()
}

func (p *Parser) parseReturnStatement() ast.Statement {
	t := p.expect(scanner.RETURN)
	expr := p.parseExpression()
	return &ast.ReturnStmt{
		BaseNode: p.baseNodeFromOtherEnd(t, expr),
		Argument: expr,
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression()
	return &ast.ExprStmt{
		BaseNode:   p.baseNode(expr.Location()),
		Expression: expr,
	}
}

func (p *Parser) parseBlock() *ast.Block {
	start := p.open(scanner.LBRACE, scanner.RBRACE)
	stmts := p.parseStatementList()
	end := p.close(scanner.RBRACE)
	return &ast.Block{
		BaseNode: p.baseNodeFromTokens(start, end),
		Body:     stmts,
	}
}
