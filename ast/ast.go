// Package ast declares the types used to represent syntax trees for Flux source files.
//
// Every node embeds a BaseNode carrying its SourceLocation and the diagnostics the
// parser attached while building it. A tree returned by the parser is always
// complete: unparseable fragments are represented by BadStmt and BadExpr nodes
// rather than by a missing subtree, so tooling can keep working on files with
// syntax errors. Use Check to collect every diagnostic in a tree.
package ast

// BaseNode is embedded in every node.
type BaseNode struct {
	Loc    SourceLocation
	Errors []string
}

// Base returns the node's location and diagnostics.
func (b *BaseNode) Base() *BaseNode { return b }

// Location returns the node's source location.
func (b *BaseNode) Location() SourceLocation { return b.Loc }

// Node is implemented by every syntax tree node.
type Node interface {
	Base() *BaseNode
	Location() SourceLocation
}

// Statement is a node that can appear in a file or block body.
type Statement interface {
	Node
	stmt()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expr()
}

// PropertyKey is either an *Identifier or a *StringLit.
type PropertyKey interface {
	Node
	Key() string
}

// Assignment is either a *VariableAssgn or a *MemberAssgn.
type Assignment interface {
	Statement
	assignment()
}

// Package is a set of files sharing a package name.
type Package struct {
	BaseNode
	Path    string
	Package string
	Files   []*File
}

// File is a single parsed source file.
type File struct {
	BaseNode
	Name     string
	Metadata string
	Package  *PackageClause
	Imports  []*ImportDeclaration
	Body     []Statement
}

// PackageClause names the package a file belongs to.
//
// Example:
//
//	package universe
type PackageClause struct {
	BaseNode
	Name *Identifier
}

// ImportDeclaration imports another package, optionally under an alias.
//
// Example:
//
//	import "strings"
//	import s "strings"
type ImportDeclaration struct {
	BaseNode
	Alias *Identifier
	Path  *StringLit
}

// Block is a brace-delimited list of statements forming a function body.
type Block struct {
	BaseNode
	Body []Statement
}
