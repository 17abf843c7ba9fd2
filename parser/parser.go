// Package parser implements a recursive-descent parser for Flux source files.
//
// The parser never fails. Syntax errors are recorded as strings on the
// BaseNode of the node being built when the error was detected, and
// unparseable fragments become ast.BadStmt or ast.BadExpr nodes. Use
// ast.Check on the result to collect every diagnostic.
//
// Example:
//
//	file := parser.ParseFile("query.flux", `from(bucket: "b") |> range(start: -1h)`)
//	for _, err := range ast.Check(file) {
//		fmt.Println(err)
//	}
package parser

import (
	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/scanner"
)

// Metadata is recorded on every parsed file to identify the parser.
const Metadata = "parser-type=go"

// DefaultMaxDepth bounds expression nesting unless WithMaxDepth is given.
const DefaultMaxDepth = 1000

// Parser turns Flux source text into an AST.
// A Parser is not safe for concurrent use and parses a single file.
type Parser struct {
	s     *scanner.Scanner
	src   string
	fname string

	tok      scanner.Token // Buffered token, valid when buffered is set
	buffered bool

	errs   []string                  // Pending diagnostics, drained into the next node built
	blocks map[scanner.TokenType]int // Open delimiters keyed by the token that closes them

	depth    int
	maxDepth int
	interner *Interner
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth limits how deeply expressions may nest before the parser gives
// up on the fragment and reports "expression nesting too deep".
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithInterner shares an identifier pool between parsers.
func WithInterner(i *Interner) Option {
	return func(p *Parser) {
		p.interner = i
	}
}

// New creates a parser over src.
func New(src string, opts ...Option) *Parser {
	p := &Parser{
		s:        scanner.New([]byte(src)),
		src:      src,
		blocks:   make(map[scanner.TokenType]int),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.interner == nil {
		p.interner = NewInterner(64)
	}
	return p
}

// ParseFile parses src as a file called name.
func ParseFile(name, src string, opts ...Option) *ast.File {
	return New(src, opts...).ParseFile(name)
}

// ParseFile parses the whole input. The file location spans from the first
// token to the end of the last package clause, import or statement.
func (p *Parser) ParseFile(name string) *ast.File {
	p.fname = name
	t := p.peek()
	var end ast.Position

	pkg := p.parsePackageClause()
	if pkg != nil {
		end = pkg.Loc.End
	}
	imports := p.parseImportList()
	if len(imports) > 0 {
		end = imports[len(imports)-1].Loc.End
	}
	body := p.parseStatementList()
	if len(body) > 0 {
		end = body[len(body)-1].Location().End
	}

	return &ast.File{
		BaseNode: ast.BaseNode{Loc: p.sourceLocation(position(t.StartPos), end)},
		Name:     name,
		Metadata: Metadata,
		Package:  pkg,
		Imports:  imports,
		Body:     body,
	}
}

func (p *Parser) parsePackageClause() *ast.PackageClause {
	t := p.peek()
	if t.Type != scanner.PACKAGE {
		return nil
	}
	p.consume()
	id := p.parseIdentifier()
	return &ast.PackageClause{
		BaseNode: p.baseNodeFromOtherEnd(t, id),
		Name:     id,
	}
}

func (p *Parser) parseImportList() []*ast.ImportDeclaration {
	var imports []*ast.ImportDeclaration
	for p.peek().Type == scanner.IMPORT {
		imports = append(imports, p.parseImportDeclaration())
	}
	return imports
}

func (p *Parser) parseImportDeclaration() *ast.ImportDeclaration {
	t := p.expect(scanner.IMPORT)
	var alias *ast.Identifier
	if p.peek().Type == scanner.IDENT {
		alias = p.parseIdentifier()
	}
	path := p.parseStringLiteral()
	return &ast.ImportDeclaration{
		BaseNode: p.baseNodeFromOtherEnd(t, path),
		Alias:    alias,
		Path:     path,
	}
}
