package ast

// Visitor is called for every node found by Walk. If Visit returns a non-nil
// visitor w, Walk visits each child of node with w, then calls w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a syntax tree in depth-first, source order.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Package:
		for _, f := range n.Files {
			Walk(v, f)
		}
	case *File:
		if n.Package != nil {
			Walk(v, n.Package)
		}
		for _, imp := range n.Imports {
			Walk(v, imp)
		}
		walkStatements(v, n.Body)
	case *PackageClause:
		walkIdent(v, n.Name)
	case *ImportDeclaration:
		walkIdent(v, n.Alias)
		if n.Path != nil {
			Walk(v, n.Path)
		}
	case *Block:
		walkStatements(v, n.Body)

	case *ExprStmt:
		walkExpr(v, n.Expression)
	case *ReturnStmt:
		walkExpr(v, n.Argument)
	case *OptionStmt:
		if n.Assignment != nil {
			Walk(v, n.Assignment)
		}
	case *BuiltinStmt:
		walkIdent(v, n.ID)
	case *TestStmt:
		if n.Assignment != nil {
			Walk(v, n.Assignment)
		}
	case *VariableAssgn:
		walkIdent(v, n.ID)
		walkExpr(v, n.Init)
	case *MemberAssgn:
		if n.Member != nil {
			Walk(v, n.Member)
		}
		walkExpr(v, n.Init)
	case *BadStmt:

	case *ArrayExpr:
		for _, e := range n.Elements {
			walkExpr(v, e)
		}
	case *FunctionExpr:
		for _, p := range n.Params {
			Walk(v, p)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *LogicalExpr:
		walkExpr(v, n.Left)
		walkExpr(v, n.Right)
	case *ObjectExpr:
		if n.With != nil {
			walkIdent(v, n.With.Source)
		}
		for _, p := range n.Properties {
			Walk(v, p)
		}
	case *MemberExpr:
		walkExpr(v, n.Object)
		if n.Property != nil {
			Walk(v, n.Property)
		}
	case *IndexExpr:
		walkExpr(v, n.Array)
		walkExpr(v, n.Index)
	case *BinaryExpr:
		walkExpr(v, n.Left)
		walkExpr(v, n.Right)
	case *UnaryExpr:
		walkExpr(v, n.Argument)
	case *PipeExpr:
		walkExpr(v, n.Argument)
		if n.Call != nil {
			Walk(v, n.Call)
		}
	case *CallExpr:
		walkExpr(v, n.Callee)
		for _, a := range n.Arguments {
			walkExpr(v, a)
		}
	case *ConditionalExpr:
		walkExpr(v, n.Test)
		walkExpr(v, n.Consequent)
		walkExpr(v, n.Alternate)
	case *StringExpr:
		for _, p := range n.Parts {
			Walk(v, p)
		}
	case *InterpolatedPart:
		walkExpr(v, n.Expression)
	case *ParenExpr:
		walkExpr(v, n.Expression)
	case *Property:
		if n.Key != nil {
			Walk(v, n.Key)
		}
		walkExpr(v, n.Value)
	case *BadExpr:
		walkExpr(v, n.Expression)

	case *Identifier, *TextPart, *PipeLit, *StringLit, *BooleanLit, *FloatLit,
		*IntegerLit, *UintLit, *RegexpLit, *DurationLit, *DateTimeLit:
		// leaves
	}

	v.Visit(nil)
}

func walkStatements(v Visitor, list []Statement) {
	for _, s := range list {
		if s != nil {
			Walk(v, s)
		}
	}
}

func walkExpr(v Visitor, e Expression) {
	if e != nil {
		Walk(v, e)
	}
}

func walkIdent(v Visitor, id *Identifier) {
	if id != nil {
		Walk(v, id)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if node != nil && f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree calling f for each node. If f returns false the
// node's children are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
