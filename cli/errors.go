package cli

import (
	"context"
	"fmt"

	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/errors"
	"github.com/robinvdvleuten/flux/loader"
	"github.com/robinvdvleuten/flux/semantic"
	"github.com/robinvdvleuten/flux/telemetry"
)

// formatter returns the diagnostic formatter selected by the configuration.
// Text output shows source context from sources.
func (s *session) formatter(sources map[string]string) errors.Formatter {
	if s.json() {
		return errors.NewJSONFormatter()
	}
	opts := []errors.TextFormatterOption{
		errors.WithStyles(render(s.errs.err), render(s.errs.context), render(s.errs.caret)),
	}
	for name, src := range sources {
		opts = append(opts, errors.WithSource(name, src))
	}
	return errors.NewTextFormatter(opts...)
}

// printDiagnostics writes errs and a one line summary. JSON goes to stdout so
// it can be piped, text goes to stderr.
func (s *session) printDiagnostics(sources map[string]string, errs []error) {
	formatted := s.formatter(sources).FormatAll(errs)
	if s.json() {
		_, _ = fmt.Fprintln(s.stdout, formatted)
		return
	}
	_, _ = fmt.Fprintln(s.stderr, formatted)
	_, _ = fmt.Fprintln(s.stderr)
	s.errs.printError(s.stderr, fmt.Sprintf("%d error(s) found", len(errs)))
}

// syntaxErrors collects the parser diagnostics of pkg.
func syntaxErrors(ctx context.Context, pkg *ast.Package) []error {
	_, timer := telemetry.StartTimer(ctx, "check syntax")
	defer timer.End()

	diags := ast.Check(pkg)
	errs := make([]error, len(diags))
	for i, diag := range diags {
		errs[i] = diag
	}
	return errs
}

// analyze runs every stage after loading. It stops at the first stage that
// reports errors and returns them.
func analyze(ctx context.Context, result *loader.Result) (*semantic.Package, []error) {
	if errs := syntaxErrors(ctx, result.Package); len(errs) > 0 {
		return nil, errs
	}

	_, timer := telemetry.StartTimer(ctx, "analyze")
	pkg, err := semantic.Analyze(result.Package)
	timer.End()
	if err != nil {
		return nil, []error{err}
	}

	_, timer = telemetry.StartTimer(ctx, "check semantics")
	err = semantic.Check(pkg)
	timer.End()
	if err != nil {
		return nil, []error{err}
	}
	return pkg, nil
}
