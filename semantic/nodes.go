package semantic

import (
	"time"

	"github.com/robinvdvleuten/flux/ast"
)

// Node is implemented by every node of the semantic graph.
type Node interface {
	Location() ast.SourceLocation
}

// Statement is a top level statement.
type Statement interface {
	Node
	stmt()
}

// Assignment is either a *VariableAssgn or a *MemberAssgn.
type Assignment interface {
	Statement
	assignment()
}

// Expression is a node producing a value. Every expression carries a type.
type Expression interface {
	Node
	TypeOf() MonoType
	expr()
}

// Base is embedded in nodes that only carry a location.
type Base struct {
	Loc ast.SourceLocation
}

// Location returns the source location the node was lowered from.
func (b *Base) Location() ast.SourceLocation { return b.Loc }

// Typed is embedded in every expression.
type Typed struct {
	Loc  ast.SourceLocation
	Type MonoType
}

// Location returns the source location the expression was lowered from.
func (t *Typed) Location() ast.SourceLocation { return t.Loc }

// TypeOf returns the expression's type.
func (t *Typed) TypeOf() MonoType { return t.Type }

// Package is the semantic graph of a package.
type Package struct {
	Base
	Package string
	Files   []*File
}

type File struct {
	Base
	Package *PackageClause
	Imports []*ImportDeclaration
	Body    []Statement
}

type PackageClause struct {
	Base
	Name *Identifier
}

type ImportDeclaration struct {
	Base
	Alias *Identifier
	Path  *StringLit
}

type OptionStmt struct {
	Base
	Assignment Assignment
}

type BuiltinStmt struct {
	Base
	ID *Identifier
}

type TestStmt struct {
	Base
	Assignment *VariableAssgn
}

type ExprStmt struct {
	Base
	Expression Expression
}

type ReturnStmt struct {
	Base
	Argument Expression
}

type VariableAssgn struct {
	Base
	ID   *Identifier
	Init Expression
}

type MemberAssgn struct {
	Base
	Member *MemberExpr
	Init   Expression
}

func (*OptionStmt) stmt()    {}
func (*BuiltinStmt) stmt()   {}
func (*TestStmt) stmt()      {}
func (*ExprStmt) stmt()      {}
func (*ReturnStmt) stmt()    {}
func (*VariableAssgn) stmt() {}
func (*MemberAssgn) stmt()   {}

func (*VariableAssgn) assignment() {}
func (*MemberAssgn) assignment()   {}

// Block is a function body: a chain of bindings and expression statements
// that always ends in exactly one return.
type Block interface {
	Node
	block()
}

// ReturnBlock ends a block.
type ReturnBlock struct {
	Argument Expression
}

// VariableBlock binds a variable, then continues with Next.
type VariableBlock struct {
	Assignment *VariableAssgn
	Next       Block
}

// ExprBlock evaluates an expression statement, then continues with Next.
type ExprBlock struct {
	Stmt *ExprStmt
	Next Block
}

func (b *ReturnBlock) Location() ast.SourceLocation   { return b.Argument.Location() }
func (b *VariableBlock) Location() ast.SourceLocation { return b.Assignment.Location() }
func (b *ExprBlock) Location() ast.SourceLocation     { return b.Stmt.Location() }

func (*ReturnBlock) block()   {}
func (*VariableBlock) block() {}
func (*ExprBlock) block()     {}

// Returned follows a block to its return and yields the returned expression.
func Returned(b Block) Expression {
	for {
		switch n := b.(type) {
		case *ReturnBlock:
			return n.Argument
		case *VariableBlock:
			b = n.Next
		case *ExprBlock:
			b = n.Next
		default:
			return nil
		}
	}
}

// FunctionExpr is a function literal.
type FunctionExpr struct {
	Typed
	Params []*FunctionParameter
	Body   Block
}

// Defaults returns the parameters that have a default value, in declaration
// order.
func (f *FunctionExpr) Defaults() []*FunctionParameter {
	var defaults []*FunctionParameter
	for _, p := range f.Params {
		if p.Default != nil {
			defaults = append(defaults, p)
		}
	}
	return defaults
}

// Pipe returns the piped parameter, or nil when the function has none.
func (f *FunctionExpr) Pipe() *FunctionParameter {
	for _, p := range f.Params {
		if p.IsPipe {
			return p
		}
	}
	return nil
}

// FunctionParameter is a declared parameter. A piped parameter receives the
// left hand side of a pipe expression.
type FunctionParameter struct {
	Base
	IsPipe  bool
	Key     *Identifier
	Default Expression
}

// CallExpr is a function call. Pipe holds the piped argument of a lowered
// pipe expression.
type CallExpr struct {
	Typed
	Callee    Expression
	Arguments []*Property
	Pipe      Expression
}

type MemberExpr struct {
	Typed
	Object   Expression
	Property string
}

type IndexExpr struct {
	Typed
	Array Expression
	Index Expression
}

type BinaryExpr struct {
	Typed
	Operator ast.Operator
	Left     Expression
	Right    Expression
}

type UnaryExpr struct {
	Typed
	Operator ast.Operator
	Argument Expression
}

type LogicalExpr struct {
	Typed
	Operator ast.LogicalOperator
	Left     Expression
	Right    Expression
}

type ConditionalExpr struct {
	Typed
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

// ObjectExpr is an object literal, optionally extending With.
type ObjectExpr struct {
	Typed
	With       *IdentifierExpr
	Properties []*Property
}

// Property always has a value; shorthand properties are expanded.
type Property struct {
	Base
	Key   *Identifier
	Value Expression
}

type ArrayExpr struct {
	Typed
	Elements []Expression
}

// IdentifierExpr is a reference to a name.
type IdentifierExpr struct {
	Typed
	Name string
}

// Identifier is a name in binding position.
type Identifier struct {
	Base
	Name string
}

type StringExpr struct {
	Typed
	Parts []StringExprPart
}

// StringExprPart is either a *TextPart or an *InterpolatedPart.
type StringExprPart interface {
	Node
	stringPart()
}

type TextPart struct {
	Base
	Value string
}

type InterpolatedPart struct {
	Base
	Expression Expression
}

func (*TextPart) stringPart()         {}
func (*InterpolatedPart) stringPart() {}

type StringLit struct {
	Typed
	Value string
}

type BooleanLit struct {
	Typed
	Value bool
}

type FloatLit struct {
	Typed
	Value float64
}

type IntegerLit struct {
	Typed
	Value int64
}

type UintLit struct {
	Typed
	Value uint64
}

type RegexpLit struct {
	Typed
	Value string
}

type DurationLit struct {
	Typed
	Value Duration
}

type DateTimeLit struct {
	Typed
	Value time.Time
}

func (*FunctionExpr) expr()    {}
func (*CallExpr) expr()        {}
func (*MemberExpr) expr()      {}
func (*IndexExpr) expr()       {}
func (*BinaryExpr) expr()      {}
func (*UnaryExpr) expr()       {}
func (*LogicalExpr) expr()     {}
func (*ConditionalExpr) expr() {}
func (*ObjectExpr) expr()      {}
func (*ArrayExpr) expr()       {}
func (*IdentifierExpr) expr()  {}
func (*StringExpr) expr()      {}
func (*StringLit) expr()       {}
func (*BooleanLit) expr()      {}
func (*FloatLit) expr()        {}
func (*IntegerLit) expr()      {}
func (*UintLit) expr()         {}
func (*RegexpLit) expr()       {}
func (*DurationLit) expr()     {}
func (*DateTimeLit) expr()     {}
