package parser

import (
	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/scanner"
)

var propertyStops = []scanner.TokenType{scanner.COMMA, scanner.COLON}

// parseObjectBody parses what sits between the braces of an object literal.
// The caller sets the location.
func (p *Parser) parseObjectBody() *ast.ObjectExpr {
	switch p.peek().Type {
	case scanner.IDENT:
		id := p.parseIdentifier()
		return p.parseObjectBodySuffix(id)
	case scanner.STRING:
		key := p.parseStringLiteral()
		return &ast.ObjectExpr{Properties: p.parsePropertyListSuffix(key)}
	default:
		return &ast.ObjectExpr{Properties: p.parsePropertyList()}
	}
}

// parseObjectBodySuffix handles {r with ...} as well as a first property
// named id. Any identifier in the "with" position is accepted so that the
// rest of the object still parses.
func (p *Parser) parseObjectBodySuffix(id *ast.Identifier) *ast.ObjectExpr {
	t := p.peek()
	if t.Type != scanner.IDENT {
		return &ast.ObjectExpr{Properties: p.parsePropertyListSuffix(id)}
	}
	p.consume()
	obj := &ast.ObjectExpr{
		With:       &ast.WithSource{Source: id},
		Properties: p.parsePropertyList(),
	}
	if t.Lit != "with" {
		// Reported after the properties so it lands on the object itself.
		p.errorf("expected with, got %q", t.Lit)
	}
	return obj
}

func (p *Parser) parsePropertyListSuffix(key ast.PropertyKey) []*ast.Property {
	props := []*ast.Property{p.parsePropertySuffix(key)}
	if !p.more() {
		return props
	}
	if t := p.peek(); t.Type != scanner.COMMA {
		p.errorf("expected comma in property list, got %s", t.Type)
	} else {
		p.consume()
	}
	return append(props, p.parsePropertyList()...)
}

// parsePropertyList parses comma separated properties until the block ends.
// Missing commas are reported once the whole list has been read, so the
// diagnostics land on the node that encloses the list.
func (p *Parser) parsePropertyList() []*ast.Property {
	var (
		props []*ast.Property
		errs  []string
	)
	for p.more() {
		var prop *ast.Property
		switch p.peek().Type {
		case scanner.IDENT:
			prop = p.parsePropertySuffix(p.parseIdentifier())
		case scanner.STRING:
			prop = p.parsePropertySuffix(p.parseStringLiteral())
		default:
			prop = p.parseInvalidProperty()
		}

		if p.more() {
			if t := p.peek(); t.Type != scanner.COMMA {
				errs = append(errs, "expected comma in property list, got "+t.Type.String())
			} else {
				p.consume()
			}
		}
		props = append(props, prop)
	}
	p.errs = append(p.errs, errs...)
	return props
}

func (p *Parser) parsePropertySuffix(key ast.PropertyKey) *ast.Property {
	var value ast.Expression
	if p.peek().Type == scanner.COLON {
		p.consume()
		value = p.parsePropertyValue()
	}
	var end ast.Node = key
	if value != nil {
		end = value
	}
	return &ast.Property{
		BaseNode: p.baseNodeFromOthers(key, end),
		Key:      key,
		Value:    value,
	}
}

// parseInvalidProperty recovers from a property that does not start with a
// key. The key becomes the string literal "<invalid>".
func (p *Parser) parseInvalidProperty() *ast.Property {
	var (
		errs  []string
		value ast.Expression
	)
	t := p.peek()
	switch t.Type {
	case scanner.COLON:
		errs = append(errs, "missing property key")
		p.consume()
		value = p.parsePropertyValue()
	case scanner.COMMA:
		errs = append(errs, "missing property in property list")
	default:
		errs = append(errs, "unexpected token for property key: "+t.Type.String()+" ("+t.Lit+")")

		// Skip to just before the next comma, colon or block end.
		p.parseExpressionWhileMore(nil, propertyStops)

		if p.peek().Type == scanner.COLON {
			p.consume()
			value = p.parsePropertyValue()
		}
	}
	p.errs = append(p.errs, errs...)

	end := p.peek()
	start := position(t.StartPos)
	return &ast.Property{
		BaseNode: p.baseNodeFromPos(start, position(end.StartPos)),
		Key: &ast.StringLit{
			BaseNode: p.baseNodeFromPos(start, start),
			Value:    "<invalid>",
		},
		Value: value,
	}
}

// parsePropertyValue returns nil, after reporting it, when the value is
// missing.
func (p *Parser) parsePropertyValue() ast.Expression {
	value := p.parseExpressionWhileMore(nil, propertyStops)
	if value == nil {
		p.errorf("missing property value")
	}
	return value
}

func (p *Parser) parseParameterList() []*ast.Property {
	var params []*ast.Property
	for p.more() {
		params = append(params, p.parseParameter())
		if p.peek().Type == scanner.COMMA {
			p.scan()
		}
	}
	return params
}

// parseParameter parses "name" or "name = default".
func (p *Parser) parseParameter() *ast.Property {
	key := p.parseIdentifier()
	if p.peek().Type != scanner.ASSIGN {
		return &ast.Property{
			BaseNode: p.baseNode(key.Loc),
			Key:      key,
		}
	}
	p.scan()
	value := p.parseExpression()
	return &ast.Property{
		BaseNode: p.baseNodeFromOthers(key, value),
		Key:      key,
		Value:    value,
	}
}
