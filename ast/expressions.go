package ast

import "time"

// Identifier is a bare name. It is also used as a property key.
type Identifier struct {
	BaseNode
	Name string
}

// Key returns the identifier name.
func (i *Identifier) Key() string { return i.Name }

// ArrayExpr is a bracketed list of elements.
type ArrayExpr struct {
	BaseNode
	Elements []Expression
}

// FunctionExpr is a function literal. Body is either a *Block or an Expression.
//
// Example:
//
//	(r, fn=(v) => v) => fn(v: r._value)
type FunctionExpr struct {
	BaseNode
	Params []*Property
	Body   Node
}

// LogicalExpr combines two operands with "and" or "or".
type LogicalExpr struct {
	BaseNode
	Operator LogicalOperator
	Left     Expression
	Right    Expression
}

// WithSource is the base object of an object expression, as in {r with x: 1}.
type WithSource struct {
	Source *Identifier
}

// ObjectExpr is a brace-delimited property list with an optional "with" source.
type ObjectExpr struct {
	BaseNode
	With       *WithSource
	Properties []*Property
}

// MemberExpr accesses a property, as in a.b or a["b"].
type MemberExpr struct {
	BaseNode
	Object   Expression
	Property PropertyKey
}

// IndexExpr accesses an array element.
type IndexExpr struct {
	BaseNode
	Array Expression
	Index Expression
}

// BinaryExpr applies an arithmetic or comparison operator.
type BinaryExpr struct {
	BaseNode
	Operator Operator
	Left     Expression
	Right    Expression
}

// UnaryExpr applies a prefix operator.
type UnaryExpr struct {
	BaseNode
	Operator Operator
	Argument Expression
}

// PipeExpr feeds Argument into Call as its piped parameter.
//
// Example:
//
//	from(bucket: "b") |> range(start: -1h)
type PipeExpr struct {
	BaseNode
	Argument Expression
	Call     *CallExpr
}

// CallExpr invokes a function. Arguments holds at most one *ObjectExpr when
// produced by the parser.
type CallExpr struct {
	BaseNode
	Callee    Expression
	Arguments []Expression
}

// ConditionalExpr is if/then/else.
type ConditionalExpr struct {
	BaseNode
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

// StringExprPart is either a *TextPart or an *InterpolatedPart.
type StringExprPart interface {
	Node
	stringPart()
}

// StringExpr is a string literal containing ${} interpolations.
type StringExpr struct {
	BaseNode
	Parts []StringExprPart
}

// TextPart is the literal text between interpolations.
type TextPart struct {
	BaseNode
	Value string
}

// InterpolatedPart is a ${expression} hole.
type InterpolatedPart struct {
	BaseNode
	Expression Expression
}

// ParenExpr is an expression wrapped in parentheses.
type ParenExpr struct {
	BaseNode
	Expression Expression
}

// Property is a key with an optional value. A nil Value is shorthand for a
// value equal to the key identifier.
type Property struct {
	BaseNode
	Key   PropertyKey
	Value Expression
}

// BadExpr stands in for an expression that could not be parsed.
type BadExpr struct {
	BaseNode
	Text       string
	Expression Expression
}

// PipeLit is the <- placeholder marking a piped function parameter.
type PipeLit struct {
	BaseNode
}

// StringLit is a string literal without interpolation.
type StringLit struct {
	BaseNode
	Value string
}

// Key returns the literal value.
func (s *StringLit) Key() string { return s.Value }

// BooleanLit is true or false.
type BooleanLit struct {
	BaseNode
	Value bool
}

// FloatLit is a floating point literal.
type FloatLit struct {
	BaseNode
	Value float64
}

// IntegerLit is a signed integer literal.
type IntegerLit struct {
	BaseNode
	Value int64
}

// UintLit is an unsigned integer literal.
type UintLit struct {
	BaseNode
	Value uint64
}

// RegexpLit is a regular expression literal. Value is the pattern without
// delimiters.
type RegexpLit struct {
	BaseNode
	Value string
}

// Duration is one magnitude/unit pair of a duration literal.
type Duration struct {
	Magnitude int64
	Unit      string
}

// DurationLit is a possibly compound duration, as in 1h30m.
type DurationLit struct {
	BaseNode
	Values []Duration
}

// DateTimeLit is an RFC 3339 date-time literal.
type DateTimeLit struct {
	BaseNode
	Value time.Time
}

func (*Identifier) expr()      {}
func (*ArrayExpr) expr()       {}
func (*FunctionExpr) expr()    {}
func (*LogicalExpr) expr()     {}
func (*ObjectExpr) expr()      {}
func (*MemberExpr) expr()      {}
func (*IndexExpr) expr()       {}
func (*BinaryExpr) expr()      {}
func (*UnaryExpr) expr()       {}
func (*PipeExpr) expr()        {}
func (*CallExpr) expr()        {}
func (*ConditionalExpr) expr() {}
func (*StringExpr) expr()      {}
func (*ParenExpr) expr()       {}
func (*BadExpr) expr()         {}
func (*PipeLit) expr()         {}
func (*StringLit) expr()       {}
func (*BooleanLit) expr()      {}
func (*FloatLit) expr()        {}
func (*IntegerLit) expr()      {}
func (*UintLit) expr()         {}
func (*RegexpLit) expr()       {}
func (*DurationLit) expr()     {}
func (*DateTimeLit) expr()     {}

func (*TextPart) stringPart()         {}
func (*InterpolatedPart) stringPart() {}
