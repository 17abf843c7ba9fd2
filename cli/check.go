package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/flux/errors"
	"github.com/robinvdvleuten/flux/telemetry"
)

type CheckCmd struct {
	File FileOrStdin `help:"Flux file or directory (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return usageError(err)
	}
	s, err := globals.session(ctx)
	if err != nil {
		return usageError(err)
	}

	runCtx := context.Background()
	if s.collector != nil {
		runCtx = telemetry.WithCollector(runCtx, s.collector)
		defer s.report()
	}
	runCtx, timer := telemetry.StartTimer(runCtx, "check "+filepath.Base(cmd.File.Filename))
	defer timer.End()

	return s.check(runCtx, &cmd.File)
}

// check loads and analyzes input, printing either the diagnostics or a
// success line.
func (s *session) check(ctx context.Context, input *FileOrStdin) error {
	result, err := input.Load(ctx, s.loader())
	if err != nil {
		var located errors.Located
		if stderrors.As(err, &located) {
			s.printDiagnostics(nil, []error{err})
			return NewCommandError(ExitDiagnostics)
		}
		return usageError(err)
	}

	if _, errs := analyze(ctx, result); len(errs) > 0 {
		s.printDiagnostics(result.Sources, errs)
		return NewCommandError(ExitDiagnostics)
	}

	if s.json() {
		_, _ = fmt.Fprintln(s.stdout, "[]")
		return nil
	}
	s.out.printSuccess(s.stdout, fmt.Sprintf("Check passed (%d file(s))", len(result.Package.Files)))
	return nil
}
