package semantic

import "strconv"

// Tvar identifies a type variable.
type Tvar uint64

func (v Tvar) String() string {
	return "t" + strconv.FormatUint(uint64(v), 10)
}

// MonoType is the type attached to an expression. Analysis only produces
// unbound variables; resolving them is left to type inference.
type MonoType interface {
	String() string
	monoType()
}

// Var is an unresolved type variable.
type Var struct {
	ID Tvar
}

func (v Var) String() string { return v.ID.String() }

func (Var) monoType() {}

// Fresher hands out type variables in increasing order, starting at t0.
//
// A Fresher is not safe for concurrent use. Analyses that run in parallel
// must each own one, or serialize access to a shared one.
type Fresher struct {
	next Tvar
}

// NewFresher creates a Fresher whose first variable is t0.
func NewFresher() *Fresher {
	return &Fresher{}
}

// Fresh returns a type variable that has not been returned before.
func (f *Fresher) Fresh() Tvar {
	v := f.next
	f.next++
	return v
}
