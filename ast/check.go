package ast

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Error is a parser diagnostic together with the location of the node it was
// attached to.
type Error struct {
	Loc SourceLocation
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("error @%d:%d-%d:%d: %s",
		e.Loc.Start.Line, e.Loc.Start.Column, e.Loc.End.Line, e.Loc.End.Column, e.Msg)
}

// GetLocation returns the location of the node the diagnostic belongs to.
func (e *Error) GetLocation() SourceLocation {
	return e.Loc
}

// Check returns every diagnostic recorded in the tree rooted at node, ordered
// by start position. Bad nodes are reported as well. An empty result means
// the tree parsed cleanly.
func Check(node Node) []*Error {
	var errs []*Error
	Inspect(node, func(n Node) bool {
		b := n.Base()
		for _, msg := range b.Errors {
			errs = append(errs, &Error{Loc: b.Loc, Msg: msg})
		}
		switch n := n.(type) {
		case *BadStmt:
			errs = append(errs, &Error{Loc: b.Loc, Msg: "invalid statement: " + n.Text})
		case *BadExpr:
			if len(b.Errors) == 0 {
				errs = append(errs, &Error{Loc: b.Loc, Msg: n.Text})
			}
		}
		return true
	})
	slices.SortStableFunc(errs, func(a, b *Error) int {
		switch {
		case a.Loc.Start.Less(b.Loc.Start):
			return -1
		case b.Loc.Start.Less(a.Loc.Start):
			return 1
		default:
			return 0
		}
	})
	return errs
}

// HasErrors reports whether Check would return any diagnostics.
func HasErrors(node Node) bool {
	found := false
	Inspect(node, func(n Node) bool {
		switch n.(type) {
		case *BadStmt, *BadExpr:
			found = true
		}
		if len(n.Base().Errors) > 0 {
			found = true
		}
		return !found
	})
	return found
}
