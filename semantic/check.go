package semantic

// Check enforces the package level binding rules on an analysed package:
//
//   - an option may be set once per package,
//   - a name may be bound once per scope,
//   - a package level variable may not share its name with an option,
//   - an option may not depend on another option of the same package.
//
// The first violation is returned.
func Check(pkg *Package) error {
	opts, err := collectOptions(pkg)
	if err != nil {
		return err
	}
	if err := checkVariables(pkg, opts); err != nil {
		return err
	}
	return checkOptionDependencies(opts)
}

type optionName struct {
	pkg  string
	name string
}

func (o optionName) String() string {
	if o.pkg == "" {
		return o.name
	}
	return o.pkg + "." + o.name
}

type option struct {
	name optionName
	stmt *OptionStmt
}

// options keeps declaration order so that reports are deterministic.
type options struct {
	list   []option
	byName map[optionName]*OptionStmt
}

func (o *options) local(name string) bool {
	_, ok := o.byName[optionName{name: name}]
	return ok
}

func collectOptions(pkg *Package) (*options, error) {
	opts := &options{byName: make(map[optionName]*OptionStmt)}
	for _, f := range pkg.Files {
		for _, s := range f.Body {
			o, ok := s.(*OptionStmt)
			if !ok {
				continue
			}
			name, err := nameOf(o)
			if err != nil {
				return nil, err
			}
			if _, dup := opts.byName[name]; dup {
				return nil, &OptionReassignError{Loc: o.Loc, Name: name.String()}
			}
			opts.byName[name] = o
			opts.list = append(opts.list, option{name: name, stmt: o})
		}
	}
	return opts, nil
}

func nameOf(o *OptionStmt) (optionName, error) {
	switch a := o.Assignment.(type) {
	case *VariableAssgn:
		return optionName{name: a.ID.Name}, nil
	case *MemberAssgn:
		if id, ok := a.Member.Object.(*IdentifierExpr); ok {
			return optionName{pkg: id.Name, name: a.Member.Property}, nil
		}
	}
	return optionName{}, &InvalidOptionError{Loc: o.Loc}
}

// scope is one level of bindings. Function expressions open a new one.
type scope struct {
	names  map[string]bool
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{names: make(map[string]bool), parent: parent}
}

func (s *scope) lookup(name string) bool {
	for ; s != nil; s = s.parent {
		if s.names[name] {
			return true
		}
	}
	return false
}

type varChecker struct {
	opts  *options
	scope *scope
	err   *error
}

func checkVariables(pkg *Package, opts *options) error {
	var err error
	Walk(&varChecker{opts: opts, scope: newScope(nil), err: &err}, pkg)
	return err
}

func (c *varChecker) Visit(node Node) Visitor {
	if *c.err != nil || node == nil {
		return nil
	}
	switch n := node.(type) {
	case *OptionStmt:
		// The option's own binding is not a variable.
		if a, ok := n.Assignment.(*VariableAssgn); ok {
			Walk(c, a.Init)
			return nil
		}
	case *FunctionExpr:
		return &varChecker{opts: c.opts, scope: newScope(c.scope), err: c.err}
	case *FunctionParameter:
		c.scope.names[n.Key.Name] = true
	case *VariableAssgn:
		name := n.ID.Name
		switch {
		case c.scope.names[name]:
			*c.err = &VariableReassignError{Loc: n.Loc, Name: name}
			return nil
		case c.scope.parent == nil && c.opts.local(name):
			*c.err = &VariableOptionConflictError{Loc: n.Loc, Name: name}
			return nil
		}
		c.scope.names[name] = true
	}
	return c
}

type dependencyChecker struct {
	opts  *options
	scope *scope
	bad   **IdentifierExpr
}

func checkOptionDependencies(opts *options) error {
	for _, o := range opts.list {
		if _, ok := o.stmt.Assignment.(*VariableAssgn); !ok {
			continue
		}
		var bad *IdentifierExpr
		Walk(&dependencyChecker{opts: opts, scope: newScope(nil), bad: &bad}, o.stmt)
		if bad != nil {
			return &DependentOptionError{Loc: bad.Loc, Option: o.name.String(), Dependee: bad.Name}
		}
	}
	return nil
}

func (c *dependencyChecker) Visit(node Node) Visitor {
	if *c.bad != nil || node == nil {
		return nil
	}
	switch n := node.(type) {
	case *FunctionExpr:
		return &dependencyChecker{opts: c.opts, scope: newScope(c.scope), bad: c.bad}
	case *FunctionParameter:
		c.scope.names[n.Key.Name] = true
	case *VariableAssgn:
		c.scope.names[n.ID.Name] = true
	case *IdentifierExpr:
		if c.opts.local(n.Name) && !c.scope.lookup(n.Name) {
			*c.bad = n
			return nil
		}
	}
	return c
}
