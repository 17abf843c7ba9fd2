// Package semantic lowers a parsed package into the semantic graph consumed by
// type inference.
//
// Lowering validates the shapes the parser accepts but the language does not:
// every function block must end in a return, a function may pipe at most one
// parameter and call arguments must be a single object. Pipe expressions
// become calls with their Pipe set and parentheses disappear. Every expression
// node receives a fresh type variable.
//
// Analysis fails fast. The first violation is returned as an *Error and no
// graph is produced.
package semantic

import (
	"fmt"
	"strings"

	"github.com/robinvdvleuten/flux/ast"
)

// Analyze lowers pkg using a new Fresher.
func Analyze(pkg *ast.Package) (*Package, error) {
	return AnalyzeWith(pkg, NewFresher())
}

// AnalyzeWith lowers pkg drawing type variables from f, which lets callers
// keep numbering unique across several packages.
func AnalyzeWith(pkg *ast.Package, f *Fresher) (*Package, error) {
	a := &analyzer{fresher: f}
	out, err := a.pkg(pkg)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type analyzer struct {
	fresher *Fresher
}

func (a *analyzer) fresh() MonoType {
	return Var{ID: a.fresher.Fresh()}
}

func (a *analyzer) pkg(pkg *ast.Package) (*Package, error) {
	out := &Package{
		Base:    Base{Loc: pkg.Loc},
		Package: pkg.Package,
	}
	for _, f := range pkg.Files {
		file, err := a.file(f)
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, file)
	}
	return out, nil
}

func (a *analyzer) file(f *ast.File) (*File, error) {
	out := &File{Base: Base{Loc: f.Loc}}
	if f.Package != nil {
		out.Package = &PackageClause{
			Base: Base{Loc: f.Package.Loc},
			Name: identifier(f.Package.Name),
		}
	}
	for _, imp := range f.Imports {
		decl := &ImportDeclaration{Base: Base{Loc: imp.Loc}}
		if imp.Alias != nil {
			decl.Alias = identifier(imp.Alias)
		}
		decl.Path = a.stringLit(imp.Path)
		out.Imports = append(out.Imports, decl)
	}
	for _, s := range f.Body {
		stmt, err := a.statement(s)
		if err != nil {
			return nil, err
		}
		out.Body = append(out.Body, stmt)
	}
	return out, nil
}

func (a *analyzer) statement(s ast.Statement) (Statement, error) {
	switch s := s.(type) {
	case *ast.OptionStmt:
		assignment, err := a.assignment(s.Assignment)
		if err != nil {
			return nil, err
		}
		return &OptionStmt{Base: Base{Loc: s.Loc}, Assignment: assignment}, nil
	case *ast.BuiltinStmt:
		return &BuiltinStmt{Base: Base{Loc: s.Loc}, ID: identifier(s.ID)}, nil
	case *ast.TestStmt:
		assignment, err := a.variableAssignment(s.Assignment)
		if err != nil {
			return nil, err
		}
		return &TestStmt{Base: Base{Loc: s.Loc}, Assignment: assignment}, nil
	case *ast.ExprStmt:
		return a.exprStatement(s)
	case *ast.ReturnStmt:
		argument, err := a.expression(s.Argument)
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{Base: Base{Loc: s.Loc}, Argument: argument}, nil
	case *ast.VariableAssgn:
		return a.variableAssignment(s)
	case *ast.MemberAssgn:
		return a.memberAssignment(s)
	case *ast.BadStmt:
		return nil, errorf(s.Loc, "BadStatement is not supported in semantic analysis")
	default:
		return nil, errorf(ast.SourceLocation{}, "unsupported statement %s", nodeName(s))
	}
}

func (a *analyzer) assignment(s ast.Assignment) (Assignment, error) {
	switch s := s.(type) {
	case *ast.VariableAssgn:
		return a.variableAssignment(s)
	case *ast.MemberAssgn:
		return a.memberAssignment(s)
	default:
		return nil, errorf(ast.SourceLocation{}, "unsupported assignment %s", nodeName(s))
	}
}

func (a *analyzer) exprStatement(s *ast.ExprStmt) (*ExprStmt, error) {
	expression, err := a.expression(s.Expression)
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Base: Base{Loc: s.Loc}, Expression: expression}, nil
}

func (a *analyzer) variableAssignment(s *ast.VariableAssgn) (*VariableAssgn, error) {
	if s == nil {
		return nil, errorf(ast.SourceLocation{}, "missing assignment")
	}
	id := identifier(s.ID)
	init, err := a.expression(s.Init)
	if err != nil {
		return nil, err
	}
	return &VariableAssgn{Base: Base{Loc: s.Loc}, ID: id, Init: init}, nil
}

func (a *analyzer) memberAssignment(s *ast.MemberAssgn) (*MemberAssgn, error) {
	member, err := a.member(s.Member)
	if err != nil {
		return nil, err
	}
	init, err := a.expression(s.Init)
	if err != nil {
		return nil, err
	}
	return &MemberAssgn{Base: Base{Loc: s.Loc}, Member: member, Init: init}, nil
}

func (a *analyzer) expression(e ast.Expression) (Expression, error) {
	switch e := e.(type) {
	case *ast.FunctionExpr:
		return a.function(e)
	case *ast.CallExpr:
		return a.call(e)
	case *ast.MemberExpr:
		return a.member(e)
	case *ast.IndexExpr:
		return a.index(e)
	case *ast.PipeExpr:
		return a.pipe(e)
	case *ast.BinaryExpr:
		left, right, err := a.operands(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{
			Typed:    a.typed(e.Loc),
			Operator: e.Operator,
			Left:     left,
			Right:    right,
		}, nil
	case *ast.UnaryExpr:
		argument, err := a.expression(e.Argument)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Typed: a.typed(e.Loc), Operator: e.Operator, Argument: argument}, nil
	case *ast.LogicalExpr:
		left, right, err := a.operands(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &LogicalExpr{
			Typed:    a.typed(e.Loc),
			Operator: e.Operator,
			Left:     left,
			Right:    right,
		}, nil
	case *ast.ConditionalExpr:
		return a.conditional(e)
	case *ast.ObjectExpr:
		return a.object(e)
	case *ast.ArrayExpr:
		return a.array(e)
	case *ast.Identifier:
		return a.identifierExpr(e), nil
	case *ast.StringExpr:
		return a.stringExpr(e)
	case *ast.ParenExpr:
		return a.expression(e.Expression)
	case *ast.StringLit:
		return a.stringLit(e), nil
	case *ast.BooleanLit:
		return &BooleanLit{Typed: a.typed(e.Loc), Value: e.Value}, nil
	case *ast.FloatLit:
		return &FloatLit{Typed: a.typed(e.Loc), Value: e.Value}, nil
	case *ast.IntegerLit:
		return &IntegerLit{Typed: a.typed(e.Loc), Value: e.Value}, nil
	case *ast.UintLit:
		return &UintLit{Typed: a.typed(e.Loc), Value: e.Value}, nil
	case *ast.RegexpLit:
		return &RegexpLit{Typed: a.typed(e.Loc), Value: e.Value}, nil
	case *ast.DurationLit:
		value, err := ConvertDuration(e.Values)
		if err != nil {
			return nil, &Error{Loc: e.Loc, Msg: err.Error()}
		}
		return &DurationLit{Typed: a.typed(e.Loc), Value: value}, nil
	case *ast.DateTimeLit:
		return &DateTimeLit{Typed: a.typed(e.Loc), Value: e.Value}, nil
	case *ast.PipeLit:
		return nil, errorf(e.Loc, "a pipe literal may only be used as a default value for an argument in a function definition")
	case *ast.BadExpr:
		return nil, errorf(e.Loc, "BadExpression is not supported in semantic analysis")
	case nil:
		return nil, errorf(ast.SourceLocation{}, "missing expression")
	default:
		return nil, errorf(e.Location(), "unsupported expression %s", nodeName(e))
	}
}

// typed draws the node's type variable. Callers analyse children first so
// that variables are numbered in post-order.
func (a *analyzer) typed(loc ast.SourceLocation) Typed {
	return Typed{Loc: loc, Type: a.fresh()}
}

func (a *analyzer) operands(l, r ast.Expression) (Expression, Expression, error) {
	left, err := a.expression(l)
	if err != nil {
		return nil, nil, err
	}
	right, err := a.expression(r)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (a *analyzer) function(e *ast.FunctionExpr) (*FunctionExpr, error) {
	params, err := a.params(e.Params)
	if err != nil {
		return nil, err
	}
	body, err := a.functionBody(e)
	if err != nil {
		return nil, err
	}
	return &FunctionExpr{Typed: a.typed(e.Loc), Params: params, Body: body}, nil
}

func (a *analyzer) params(props []*ast.Property) ([]*FunctionParameter, error) {
	var params []*FunctionParameter
	piped := false
	for _, prop := range props {
		id, ok := prop.Key.(*ast.Identifier)
		if !ok {
			return nil, errorf(prop.Loc, "function params must be identifiers")
		}
		param := &FunctionParameter{Base: Base{Loc: prop.Loc}, Key: identifier(id)}
		switch v := prop.Value.(type) {
		case nil:
		case *ast.PipeLit:
			if piped {
				return nil, errorf(v.Loc, "only a single argument may be piped")
			}
			piped = true
			param.IsPipe = true
		default:
			def, err := a.expression(v)
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		params = append(params, param)
	}
	return params, nil
}

func (a *analyzer) functionBody(e *ast.FunctionExpr) (Block, error) {
	switch body := e.Body.(type) {
	case *ast.Block:
		return a.block(body)
	case ast.Expression:
		argument, err := a.expression(body)
		if err != nil {
			return nil, err
		}
		return &ReturnBlock{Argument: argument}, nil
	default:
		return nil, errorf(e.Loc, "missing function body")
	}
}

// block folds a statement list into a chain ending in its return. The last
// statement is analysed first and the rest follow from right to left.
func (a *analyzer) block(b *ast.Block) (Block, error) {
	n := len(b.Body)
	if n == 0 {
		return nil, errorf(b.Loc, "missing return statement in block")
	}
	ret, ok := b.Body[n-1].(*ast.ReturnStmt)
	if !ok {
		if bad, ok := b.Body[n-1].(*ast.BadStmt); ok {
			return nil, errorf(bad.Loc, "BadStatement is not supported in semantic analysis")
		}
		return nil, errorf(b.Loc, "missing return statement in block")
	}
	argument, err := a.expression(ret.Argument)
	if err != nil {
		return nil, err
	}

	var out Block = &ReturnBlock{Argument: argument}
	for i := n - 2; i >= 0; i-- {
		switch s := b.Body[i].(type) {
		case *ast.VariableAssgn:
			assignment, err := a.variableAssignment(s)
			if err != nil {
				return nil, err
			}
			out = &VariableBlock{Assignment: assignment, Next: out}
		case *ast.ExprStmt:
			stmt, err := a.exprStatement(s)
			if err != nil {
				return nil, err
			}
			out = &ExprBlock{Stmt: stmt, Next: out}
		case *ast.BadStmt:
			return nil, errorf(s.Loc, "BadStatement is not supported in semantic analysis")
		default:
			return nil, errorf(s.Location(), "invalid statement in function block %s", nodeName(s))
		}
	}
	return out, nil
}

func (a *analyzer) call(e *ast.CallExpr) (*CallExpr, error) {
	callee, err := a.expression(e.Callee)
	if err != nil {
		return nil, err
	}
	if len(e.Arguments) > 1 {
		return nil, errorf(e.Loc, "arguments are more than one object expression")
	}
	var arguments []*Property
	if len(e.Arguments) == 1 {
		obj, ok := e.Arguments[0].(*ast.ObjectExpr)
		if !ok {
			return nil, errorf(e.Arguments[0].Location(), "arguments not an object expression")
		}
		args, err := a.object(obj)
		if err != nil {
			return nil, err
		}
		arguments = args.Properties
	}
	return &CallExpr{Typed: a.typed(e.Loc), Callee: callee, Arguments: arguments}, nil
}

// pipe lowers a |> f() into the call f() with a as its piped argument.
func (a *analyzer) pipe(e *ast.PipeExpr) (*CallExpr, error) {
	if e.Call == nil {
		return nil, errorf(e.Loc, "missing pipe destination")
	}
	call, err := a.call(e.Call)
	if err != nil {
		return nil, err
	}
	argument, err := a.expression(e.Argument)
	if err != nil {
		return nil, err
	}
	call.Pipe = argument
	return call, nil
}

func (a *analyzer) member(e *ast.MemberExpr) (*MemberExpr, error) {
	if e == nil {
		return nil, errorf(ast.SourceLocation{}, "missing member expression")
	}
	object, err := a.expression(e.Object)
	if err != nil {
		return nil, err
	}
	var property string
	if e.Property != nil {
		property = e.Property.Key()
	}
	return &MemberExpr{Typed: a.typed(e.Loc), Object: object, Property: property}, nil
}

func (a *analyzer) index(e *ast.IndexExpr) (*IndexExpr, error) {
	array, index, err := a.operands(e.Array, e.Index)
	if err != nil {
		return nil, err
	}
	return &IndexExpr{Typed: a.typed(e.Loc), Array: array, Index: index}, nil
}

func (a *analyzer) conditional(e *ast.ConditionalExpr) (*ConditionalExpr, error) {
	test, err := a.expression(e.Test)
	if err != nil {
		return nil, err
	}
	consequent, err := a.expression(e.Consequent)
	if err != nil {
		return nil, err
	}
	alternate, err := a.expression(e.Alternate)
	if err != nil {
		return nil, err
	}
	return &ConditionalExpr{
		Typed:      a.typed(e.Loc),
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
	}, nil
}

func (a *analyzer) object(e *ast.ObjectExpr) (*ObjectExpr, error) {
	var properties []*Property
	for _, p := range e.Properties {
		prop, err := a.property(p)
		if err != nil {
			return nil, err
		}
		properties = append(properties, prop)
	}
	var with *IdentifierExpr
	if e.With != nil && e.With.Source != nil {
		with = a.identifierExpr(e.With.Source)
	}
	return &ObjectExpr{Typed: a.typed(e.Loc), With: with, Properties: properties}, nil
}

func (a *analyzer) property(p *ast.Property) (*Property, error) {
	var key *Identifier
	switch k := p.Key.(type) {
	case *ast.Identifier:
		key = identifier(k)
	case *ast.StringLit:
		key = &Identifier{Base: Base{Loc: k.Loc}, Name: a.stringLit(k).Value}
	default:
		return nil, errorf(p.Loc, "missing property key")
	}

	var value Expression
	if p.Value == nil {
		value = &IdentifierExpr{Typed: a.typed(key.Loc), Name: key.Name}
	} else {
		v, err := a.expression(p.Value)
		if err != nil {
			return nil, err
		}
		value = v
	}
	return &Property{Base: Base{Loc: p.Loc}, Key: key, Value: value}, nil
}

func (a *analyzer) array(e *ast.ArrayExpr) (*ArrayExpr, error) {
	var elements []Expression
	for _, el := range e.Elements {
		v, err := a.expression(el)
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
	}
	return &ArrayExpr{Typed: a.typed(e.Loc), Elements: elements}, nil
}

func (a *analyzer) stringExpr(e *ast.StringExpr) (*StringExpr, error) {
	var parts []StringExprPart
	for _, part := range e.Parts {
		switch part := part.(type) {
		case *ast.TextPart:
			parts = append(parts, &TextPart{Base: Base{Loc: part.Loc}, Value: part.Value})
		case *ast.InterpolatedPart:
			v, err := a.expression(part.Expression)
			if err != nil {
				return nil, err
			}
			parts = append(parts, &InterpolatedPart{Base: Base{Loc: part.Loc}, Expression: v})
		}
	}
	return &StringExpr{Typed: a.typed(e.Loc), Parts: parts}, nil
}

func (a *analyzer) identifierExpr(id *ast.Identifier) *IdentifierExpr {
	return &IdentifierExpr{Typed: a.typed(id.Loc), Name: id.Name}
}

func (a *analyzer) stringLit(lit *ast.StringLit) *StringLit {
	if lit == nil {
		return nil
	}
	return &StringLit{Typed: a.typed(lit.Loc), Value: lit.Value}
}

// identifier lowers a name in binding position. It carries no type.
func identifier(id *ast.Identifier) *Identifier {
	if id == nil {
		return nil
	}
	return &Identifier{Base: Base{Loc: id.Loc}, Name: id.Name}
}

// nodeName is the bare type name of a node, as in "OptionStmt".
func nodeName(n any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}
