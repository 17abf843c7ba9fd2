package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/peterh/liner"

	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/loader"
	"github.com/robinvdvleuten/flux/parser"
	"github.com/robinvdvleuten/flux/semantic"
)

const (
	replHistoryFile = ".flux_history"
	replPrompt      = "> "
	replContinue    = ". "
	replHelp        = `Statements are analyzed together with every statement accepted before.
  :help    Show this help
  :reset   Forget all statements
  :quit    Exit the REPL`
)

// ReplCmd analyzes statements interactively and prints the type variable
// assigned to each of them.
type ReplCmd struct {
	History string `help:"History file (defaults to ~/.flux_history)." type:"path"`
}

func (cmd *ReplCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.session(ctx)
	if err != nil {
		return usageError(err)
	}

	history := cmd.History
	if history == "" {
		home, _ := os.UserHomeDir()
		history = filepath.Join(home, replHistoryFile)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(history); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	_, _ = fmt.Fprintf(s.stdout, "Flux %s\nType :help for help, Ctrl+D to exit.\n", BuildVersion())

	r := newRepl(s.loader())
	for {
		src, ok := readStatement(ln)
		if !ok {
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(src)

		switch strings.TrimSpace(src) {
		case ":quit", ":q":
			return nil
		case ":help":
			_, _ = fmt.Fprintln(s.stdout, replHelp)
			continue
		case ":reset":
			r.reset()
			continue
		}

		lines, errs := r.eval(context.Background(), src)
		if len(errs) > 0 {
			_, _ = fmt.Fprintln(s.stderr, s.formatter(r.sources).FormatAll(errs))
			continue
		}
		for _, line := range lines {
			_, _ = fmt.Fprintln(s.stdout, s.styles.TypeVar(line))
		}
	}
}

// readStatement reads lines until they form input the parser does not
// consider cut short. It reports false at EOF.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := replPrompt
		if b.Len() > 0 {
			prompt = replContinue
		}
		line, err := ln.Prompt(prompt)
		if stderrors.Is(err, io.EOF) {
			return "", false
		}
		if stderrors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src ended while the parser still expected
// more tokens.
func incomplete(src string) bool {
	if strings.HasPrefix(strings.TrimSpace(src), ":") {
		return false
	}
	for _, err := range ast.Check(parser.ParseFile("<repl>", src)) {
		if strings.HasSuffix(err.Msg, "got EOF") {
			return true
		}
	}
	return false
}

// repl holds the statements accepted so far. Every input is analyzed as one
// more file of the same package, so earlier names stay visible and
// redefinitions are reported.
type repl struct {
	ldr     *loader.Loader
	files   []*ast.File
	sources map[string]string
	count   int
}

func newRepl(ldr *loader.Loader) *repl {
	return &repl{ldr: ldr, sources: make(map[string]string)}
}

func (r *repl) reset() {
	r.files = nil
	r.sources = make(map[string]string)
}

// eval analyzes src and, when it is accepted, describes the statements it
// added.
func (r *repl) eval(ctx context.Context, src string) ([]string, []error) {
	r.count++
	name := fmt.Sprintf("<repl:%d>", r.count)

	loaded, err := r.ldr.LoadBytes(ctx, name, []byte(src))
	if err != nil {
		return nil, []error{err}
	}

	sources := maps.Clone(r.sources)
	sources[name] = src
	files := append(append([]*ast.File(nil), r.files...), loaded.Package.Files...)

	pkg, errs := analyze(ctx, &loader.Result{
		Package: &ast.Package{Package: loader.DefaultPackage, Files: files},
		Sources: sources,
	})
	if len(errs) > 0 {
		r.sources[name] = src // Keep the text so diagnostics can show it.
		return nil, errs
	}

	r.files = files
	r.sources = sources
	return describe(pkg.Files[len(pkg.Files)-1]), nil
}

// describe renders one line per statement of file.
func describe(file *semantic.File) []string {
	var lines []string
	for _, stmt := range file.Body {
		switch stmt := stmt.(type) {
		case *semantic.VariableAssgn:
			lines = append(lines, fmt.Sprintf("%s: %s", stmt.ID.Name, stmt.Init.TypeOf()))
		case *semantic.OptionStmt:
			switch a := stmt.Assignment.(type) {
			case *semantic.VariableAssgn:
				lines = append(lines, fmt.Sprintf("option %s: %s", a.ID.Name, a.Init.TypeOf()))
			case *semantic.MemberAssgn:
				lines = append(lines, fmt.Sprintf("option %s: %s", memberName(a.Member), a.Init.TypeOf()))
			}
		case *semantic.TestStmt:
			lines = append(lines, fmt.Sprintf("test %s: %s", stmt.Assignment.ID.Name, stmt.Assignment.Init.TypeOf()))
		case *semantic.BuiltinStmt:
			lines = append(lines, "builtin "+stmt.ID.Name)
		case *semantic.ExprStmt:
			lines = append(lines, stmt.Expression.TypeOf().String())
		}
	}
	return lines
}

func memberName(m *semantic.MemberExpr) string {
	if id, ok := m.Object.(*semantic.IdentifierExpr); ok {
		return id.Name + "." + m.Property
	}
	return m.Property
}
