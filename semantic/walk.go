package semantic

// Visitor is called for every node found by Walk. If Visit returns a non-nil
// visitor w, Walk visits each child of node with w, then calls w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a semantic graph depth-first. Children are visited in
// source order; the piped argument of a call comes before its callee.
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
		walkNode(v, n.Package)
		for _, imp := range n.Imports {
			Walk(v, imp)
		}
		for _, s := range n.Body {
			Walk(v, s)
		}
	case *PackageClause:
		walkNode(v, n.Name)
	case *ImportDeclaration:
		walkNode(v, n.Alias)
		walkNode(v, n.Path)

	case *OptionStmt:
		Walk(v, n.Assignment)
	case *BuiltinStmt:
		walkNode(v, n.ID)
	case *TestStmt:
		walkNode(v, n.Assignment)
	case *ExprStmt:
		Walk(v, n.Expression)
	case *ReturnStmt:
		Walk(v, n.Argument)
	case *VariableAssgn:
		walkNode(v, n.ID)
		Walk(v, n.Init)
	case *MemberAssgn:
		walkNode(v, n.Member)
		Walk(v, n.Init)

	case *ReturnBlock:
		Walk(v, n.Argument)
	case *VariableBlock:
		walkNode(v, n.Assignment)
		Walk(v, n.Next)
	case *ExprBlock:
		walkNode(v, n.Stmt)
		Walk(v, n.Next)

	case *FunctionExpr:
		for _, p := range n.Params {
			Walk(v, p)
		}
		Walk(v, n.Body)
	case *FunctionParameter:
		walkNode(v, n.Key)
		Walk(v, n.Default)
	case *CallExpr:
		Walk(v, n.Pipe)
		Walk(v, n.Callee)
		for _, p := range n.Arguments {
			Walk(v, p)
		}
	case *MemberExpr:
		Walk(v, n.Object)
	case *IndexExpr:
		Walk(v, n.Array)
		Walk(v, n.Index)
	case *BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *UnaryExpr:
		Walk(v, n.Argument)
	case *LogicalExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *ConditionalExpr:
		Walk(v, n.Test)
		Walk(v, n.Consequent)
		Walk(v, n.Alternate)
	case *ObjectExpr:
		walkNode(v, n.With)
		for _, p := range n.Properties {
			Walk(v, p)
		}
	case *Property:
		walkNode(v, n.Key)
		Walk(v, n.Value)
	case *ArrayExpr:
		for _, e := range n.Elements {
			Walk(v, e)
		}
	case *StringExpr:
		for _, part := range n.Parts {
			Walk(v, part)
		}
	case *InterpolatedPart:
		Walk(v, n.Expression)
	}

	v.Visit(nil)
}

// walkNode walks typed pointers that may be nil.
func walkNode[T interface {
	comparable
	Node
}](v Visitor, n T) {
	var zero T
	if n != zero {
		Walk(v, n)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if node != nil && f(node) {
		return f
	}
	return nil
}

// Inspect traverses the graph calling f for each node. If f returns false
// the node's children are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
