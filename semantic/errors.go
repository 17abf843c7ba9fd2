package semantic

import (
	"fmt"

	"github.com/robinvdvleuten/flux/ast"
)

// Error is returned when an AST cannot be lowered. Loc is the location of the
// offending node and may be zero when the node carries none.
type Error struct {
	Loc ast.SourceLocation
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

// GetLocation returns the location of the offending node.
func (e *Error) GetLocation() ast.SourceLocation {
	return e.Loc
}

func errorf(loc ast.SourceLocation, format string, args ...any) *Error {
	return &Error{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// InvalidOptionError is returned by Check for an option whose target is not
// a name or a member of an imported package.
type InvalidOptionError struct {
	Loc ast.SourceLocation
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("%s: invalid option", e.Loc)
}

func (e *InvalidOptionError) GetLocation() ast.SourceLocation { return e.Loc }

// OptionReassignError is returned by Check when a package sets the same option
// twice.
type OptionReassignError struct {
	Loc  ast.SourceLocation
	Name string
}

func (e *OptionReassignError) Error() string {
	return fmt.Sprintf("%s: option %q reassigned", e.Loc, e.Name)
}

func (e *OptionReassignError) GetLocation() ast.SourceLocation { return e.Loc }

// VariableReassignError is returned by Check when a name is bound twice in
// one scope.
type VariableReassignError struct {
	Loc  ast.SourceLocation
	Name string
}

func (e *VariableReassignError) Error() string {
	return fmt.Sprintf("%s: variable %q reassigned", e.Loc, e.Name)
}

func (e *VariableReassignError) GetLocation() ast.SourceLocation { return e.Loc }

// VariableOptionConflictError is returned by Check when a package level
// variable shadows an option of the same package.
type VariableOptionConflictError struct {
	Loc  ast.SourceLocation
	Name string
}

func (e *VariableOptionConflictError) Error() string {
	return fmt.Sprintf("%s: variable %q conflicts with option of same name", e.Loc, e.Name)
}

func (e *VariableOptionConflictError) GetLocation() ast.SourceLocation { return e.Loc }

// DependentOptionError is returned by Check when an option's value refers to
// another option declared in the same package.
type DependentOptionError struct {
	Loc      ast.SourceLocation
	Option   string
	Dependee string
}

func (e *DependentOptionError) Error() string {
	return fmt.Sprintf("%s: option %q depends on option %q, which is defined in the same package",
		e.Loc, e.Option, e.Dependee)
}

func (e *DependentOptionError) GetLocation() ast.SourceLocation { return e.Loc }
