package ast

// BadStmt stands in for a statement that could not be parsed. Text holds the
// offending token.
type BadStmt struct {
	BaseNode
	Text string
}

// ExprStmt is an expression evaluated for its own sake.
type ExprStmt struct {
	BaseNode
	Expression Expression
}

// ReturnStmt returns a value from a function block.
//
// Example:
//
//	return r._value * 2
type ReturnStmt struct {
	BaseNode
	Argument Expression
}

// OptionStmt assigns an option, either of the current package or of an
// imported one.
//
// Example:
//
//	option now = () => 2020-01-01T00:00:00Z
//	option universe.now = () => 2020-01-01T00:00:00Z
type OptionStmt struct {
	BaseNode
	Assignment Assignment
}

// BuiltinStmt declares an identifier provided by the runtime.
//
// Example:
//
//	builtin from
type BuiltinStmt struct {
	BaseNode
	ID *Identifier
}

// TestStmt declares a named test case.
//
// Example:
//
//	test mean = () => ({input: testing.loadStorage(csv: inData), fn: mean})
type TestStmt struct {
	BaseNode
	Assignment *VariableAssgn
}

// VariableAssgn binds an identifier to a value.
type VariableAssgn struct {
	BaseNode
	ID   *Identifier
	Init Expression
}

// MemberAssgn assigns into a member of another value. It only appears inside
// option statements.
type MemberAssgn struct {
	BaseNode
	Member *MemberExpr
	Init   Expression
}

func (*BadStmt) stmt()       {}
func (*ExprStmt) stmt()      {}
func (*ReturnStmt) stmt()    {}
func (*OptionStmt) stmt()    {}
func (*BuiltinStmt) stmt()   {}
func (*TestStmt) stmt()      {}
func (*VariableAssgn) stmt() {}
func (*MemberAssgn) stmt()   {}

func (*VariableAssgn) assignment() {}
func (*MemberAssgn) assignment()   {}
