package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/semantic"
)

// ASTCmd prints the syntax tree. Syntax errors are reported after the tree
// and make the command fail, but the tree is printed regardless.
type ASTCmd struct {
	File FileOrStdin `help:"Flux file or directory (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *ASTCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return usageError(err)
	}
	s, err := globals.session(ctx)
	if err != nil {
		return usageError(err)
	}

	result, err := cmd.File.Load(context.Background(), s.loader())
	if err != nil {
		return usageError(err)
	}

	dump(s.stdout, result.Package)

	if errs := syntaxErrors(context.Background(), result.Package); len(errs) > 0 {
		s.printDiagnostics(result.Sources, errs)
		return NewCommandError(ExitDiagnostics)
	}
	return nil
}

// SemanticCmd prints the semantic graph, or the type variable of every
// expression with --vars.
type SemanticCmd struct {
	File FileOrStdin `help:"Flux file or directory (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Vars bool        `help:"List expressions with their type variables instead of the full graph."`
}

func (cmd *SemanticCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return usageError(err)
	}
	s, err := globals.session(ctx)
	if err != nil {
		return usageError(err)
	}

	result, err := cmd.File.Load(context.Background(), s.loader())
	if err != nil {
		return usageError(err)
	}

	pkg, errs := analyze(context.Background(), result)
	if len(errs) > 0 {
		s.printDiagnostics(result.Sources, errs)
		return NewCommandError(ExitDiagnostics)
	}

	if cmd.Vars {
		s.printVars(pkg)
		return nil
	}
	dump(s.stdout, pkg)
	return nil
}

func dump(w io.Writer, v any) {
	repr.New(w, repr.Indent("  "), repr.OmitEmpty(true)).Println(v)
}

// printVars lists every expression in source order as
// "location  type-var  node".
func (s *session) printVars(pkg *semantic.Package) {
	semantic.Inspect(pkg, func(n semantic.Node) bool {
		e, ok := n.(semantic.Expression)
		if !ok {
			return true
		}
		loc := e.Location()
		_, _ = fmt.Fprintf(s.stdout, "%s %s %s\n",
			s.styles.Dim(fmt.Sprintf("%-16s", locationString(loc))),
			s.styles.TypeVar(fmt.Sprintf("%-6s", e.TypeOf())),
			strings.TrimPrefix(fmt.Sprintf("%T", e), "*semantic."))
		return true
	})
}

// locationString renders loc as "file:l:c-l:c" using only the base file name.
func locationString(loc ast.SourceLocation) string {
	name := loc.File
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return fmt.Sprintf("%s:%s-%s", name, loc.Start, loc.End)
}
