package parser

import (
	"fmt"

	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/scanner"
)

// Helper methods for token navigation

// scan returns the buffered token, or reads the next one in default mode.
func (p *Parser) scan() scanner.Token {
	if p.buffered {
		p.buffered = false
		return p.tok
	}
	return p.s.Scan()
}

// peek reads the next token and buffers it.
func (p *Parser) peek() scanner.Token {
	if !p.buffered {
		p.tok = p.s.Scan()
		p.buffered = true
	}
	return p.tok
}

// peekWithRegex is peek in a position where an operand is expected. A
// buffered DIV is rescanned since it may start a regex literal.
func (p *Parser) peekWithRegex() scanner.Token {
	if p.buffered && p.tok.Type == scanner.DIV {
		p.buffered = false
		p.s.Unread()
	}
	if !p.buffered {
		p.tok = p.s.ScanWithRegex()
		p.buffered = true
	}
	return p.tok
}

// consume drops the buffered token.
func (p *Parser) consume() {
	p.buffered = false
}

// expect scans until it reads a token of type exp. Every other token on the
// way is reported and discarded. At EOF it gives up and returns the EOF token.
func (p *Parser) expect(exp scanner.TokenType) scanner.Token {
	for {
		t := p.scan()
		switch t.Type {
		case exp:
			return t
		case scanner.EOF:
			p.errorf("expected %s, got EOF", exp)
			return t
		default:
			p.errorf("expected %s, got %s (%s) at %d:%d", exp, t.Type, t.Lit, t.StartPos.Line, t.StartPos.Column)
		}
	}
}

// open expects start and records that end will close the block.
func (p *Parser) open(start, end scanner.TokenType) scanner.Token {
	t := p.expect(start)
	p.blocks[end]++
	return t
}

// more reports whether the current block continues: the next token is
// neither EOF nor the closer of an open block.
func (p *Parser) more() bool {
	t := p.peek()
	if t.Type == scanner.EOF {
		return false
	}
	return p.blocks[t.Type] == 0
}

// close ends a block opened with open. When the next token is not end it is
// reported but left unconsumed, and returned so the caller can still compute
// a location.
func (p *Parser) close(end scanner.TokenType) scanner.Token {
	if end == scanner.EOF {
		return p.scan()
	}
	p.blocks[end]--

	t := p.peek()
	if t.Type == end {
		p.consume()
		return t
	}
	p.errorf("expected %s, got %s", end, t.Type)
	return t
}

// skipIfStuck consumes the next token when nothing was consumed since before
// was peeked. Loops that must make progress call it after every element.
func (p *Parser) skipIfStuck(before scanner.Token) {
	after := p.peek()
	if after.Type != scanner.EOF && after.StartOffset == before.StartOffset {
		p.consume()
	}
}

func (p *Parser) errorf(format string, args ...any) {
	p.errs = append(p.errs, fmt.Sprintf(format, args...))
}

// Base node construction. Every constructor drains the pending diagnostics
// into the node it builds.

func (p *Parser) baseNode(loc ast.SourceLocation) ast.BaseNode {
	errs := p.errs
	p.errs = nil
	return ast.BaseNode{Loc: loc, Errors: errs}
}

func (p *Parser) baseNodeFromPos(start, end ast.Position) ast.BaseNode {
	return p.baseNode(p.sourceLocation(start, end))
}

func (p *Parser) baseNodeFromToken(t scanner.Token) ast.BaseNode {
	return p.baseNodeFromTokens(t, t)
}

func (p *Parser) baseNodeFromTokens(start, end scanner.Token) ast.BaseNode {
	return p.baseNodeFromPos(position(start.StartPos), position(end.EndPos))
}

func (p *Parser) baseNodeFromOtherStart(start ast.Node, end scanner.Token) ast.BaseNode {
	return p.baseNodeFromPos(start.Location().Start, position(end.EndPos))
}

func (p *Parser) baseNodeFromOtherEnd(start scanner.Token, end ast.Node) ast.BaseNode {
	return p.baseNodeFromPos(position(start.StartPos), end.Location().End)
}

func (p *Parser) baseNodeFromOthers(start, end ast.Node) ast.BaseNode {
	return p.baseNodeFromPos(start.Location().Start, end.Location().End)
}

// sourceLocation builds a location for the span. A span with an invalid end
// yields the zero location.
func (p *Parser) sourceLocation(start, end ast.Position) ast.SourceLocation {
	if !start.IsValid() || !end.IsValid() {
		return ast.SourceLocation{}
	}
	loc := ast.SourceLocation{File: p.fname, Start: start, End: end}
	so := p.s.Offset(scanner.Position(start))
	eo := p.s.Offset(scanner.Position(end))
	if so >= 0 && so <= eo && eo <= len(p.src) {
		loc.Source = p.src[so:eo]
	}
	return loc
}

// tokenLocation is the location of a single token, without draining errors.
func (p *Parser) tokenLocation(t scanner.Token) ast.SourceLocation {
	return p.sourceLocation(position(t.StartPos), position(t.EndPos))
}

func position(pos scanner.Position) ast.Position {
	return ast.Position(pos)
}
