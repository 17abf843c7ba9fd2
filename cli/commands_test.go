package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
	"go.uber.org/zap/zapcore"

	"github.com/robinvdvleuten/flux/errors"
)

// run executes the command line args in process. Every run uses its own
// configuration path and disables colors.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var root CLI
	var stdout, stderr bytes.Buffer
	opts := append(Options(&root),
		kong.Writers(&stdout, &stderr),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	parser, err := kong.New(&root, opts...)
	assert.NoError(t, err)

	args = append([]string{"--config", filepath.Join(t.TempDir(), "flux.toml"), "--color", "never"}, args...)
	kctx, err := parser.Parse(args)
	if err != nil {
		return stdout.String(), stderr.String(), err
	}
	err = kctx.Run()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var cmdErr *CommandError
	assert.True(t, stderrors.As(err, &cmdErr), "expected a CommandError, got %v", err)
	return cmdErr.ExitCode()
}

func TestCheckCmd(t *testing.T) {
	t.Run("Passes", func(t *testing.T) {
		path := writeSource(t, "ok.flux", `from(bucket: "b") |> range(start: -1h) |> filter(fn: (r) => r._value > 1)`)

		stdout, _, err := run(t, "check", path)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Check passed (1 file(s))")
	})

	t.Run("SyntaxError", func(t *testing.T) {
		path := writeSource(t, "bad.flux", "a = 1\nb = (1 + 2\nc = 3")

		_, stderr, err := run(t, "check", path)
		assert.Equal(t, ExitDiagnostics, exitCode(t, err))
		assert.Contains(t, stderr, path+":2:")
		assert.Contains(t, stderr, "   b = (1 + 2\n")
		assert.Contains(t, stderr, "^")
		assert.Contains(t, stderr, "error(s) found")
	})

	t.Run("SemanticError", func(t *testing.T) {
		path := writeSource(t, "pipe.flux", "f = (a=<-, b=<-) => a")

		_, stderr, err := run(t, "check", path)
		assert.Equal(t, ExitDiagnostics, exitCode(t, err))
		assert.Contains(t, stderr, "only a single argument may be piped")
	})

	t.Run("CheckErrorAsJSON", func(t *testing.T) {
		path := writeSource(t, "opt.flux", "option a = 1\noption a = 2")

		stdout, _, err := run(t, "--format", "json", "check", path)
		assert.Equal(t, ExitDiagnostics, exitCode(t, err))

		var got []errors.ErrorJSON
		assert.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, 1, len(got))
		assert.Equal(t, "check", got[0].Type)
		assert.Equal(t, `option "a" reassigned`, got[0].Message)
		assert.Equal(t, 2, got[0].Location.Start.Line)
	})

	t.Run("PassesAsJSON", func(t *testing.T) {
		path := writeSource(t, "ok.flux", "a = 1")

		stdout, _, err := run(t, "--format", "json", "check", path)
		assert.NoError(t, err)
		assert.Equal(t, "[]\n", stdout)
	})

	t.Run("Directory", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "a.flux"), []byte("package p\na = 1"), 0o644))
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "b.flux"), []byte("package q\nb = 2"), 0o644))

		_, stderr, err := run(t, "check", dir)
		assert.Equal(t, ExitDiagnostics, exitCode(t, err))
		assert.Contains(t, stderr, `file "b.flux" declares package "q", expected "p"`)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, _, err := run(t, "check", filepath.Join(t.TempDir(), "missing.flux"))
		assert.Error(t, err)
	})

	t.Run("InvalidFlag", func(t *testing.T) {
		path := writeSource(t, "ok.flux", "a = 1")

		_, _, err := run(t, "--format", "yaml", "check", path)
		assert.Equal(t, ExitUsage, exitCode(t, err))
		assert.Contains(t, err.Error(), "output.format")
	})
}

func TestTokensCmd(t *testing.T) {
	path := writeSource(t, "t.flux", "a = /x/ / 2")

	stdout, _, err := run(t, "tokens", path)
	assert.NoError(t, err)

	var kinds []string
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		kinds = append(kinds, strings.Fields(line)[0])
	}
	assert.Equal(t, []string{"IDENT", "ASSIGN", "REGEX", "DIV", "INT"}, kinds)
	assert.Contains(t, stdout, `"/x/"`)
}

func TestASTCmd(t *testing.T) {
	t.Run("Prints tree", func(t *testing.T) {
		path := writeSource(t, "a.flux", "a = 1")

		stdout, _, err := run(t, "ast", path)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "ast.VariableAssgn")
		assert.Contains(t, stdout, "ast.IntegerLit")
	})

	t.Run("Prints tree and errors", func(t *testing.T) {
		path := writeSource(t, "a.flux", "a = (1")

		stdout, stderr, err := run(t, "ast", path)
		assert.Equal(t, ExitDiagnostics, exitCode(t, err))
		assert.Contains(t, stdout, "ast.VariableAssgn")
		assert.Contains(t, stderr, "expected RPAREN, got EOF")
	})
}

func TestSemanticCmd(t *testing.T) {
	t.Run("Graph", func(t *testing.T) {
		path := writeSource(t, "s.flux", "f = (r) => r.x")

		stdout, _, err := run(t, "semantic", path)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "semantic.FunctionExpr")
		assert.Contains(t, stdout, "semantic.MemberExpr")
	})

	t.Run("Vars", func(t *testing.T) {
		path := writeSource(t, "s.flux", "a = 1\nb = a")

		stdout, _, err := run(t, "semantic", "--vars", path)
		assert.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		assert.Equal(t, 2, len(lines))
		assert.Equal(t, []string{"s.flux:1:5-1:6", "t0", "IntegerLit"}, strings.Fields(lines[0]))
		assert.Equal(t, []string{"s.flux:2:5-2:6", "t1", "IdentifierExpr"}, strings.Fields(lines[1]))
	})
}

func TestConfigCmd(t *testing.T) {
	t.Run("Init", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "flux.toml")

		stdout, _, err := run(t, "--config", path, "config", "init")
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Wrote")

		data, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Contains(t, string(data), "[parser]")
		assert.Contains(t, string(data), `debounce = "100ms"`)

		// Without a terminal the overwrite prompt answers no.
		_, _, err = run(t, "--config", path, "config", "init")
		assert.Equal(t, ExitUsage, exitCode(t, err))

		_, _, err = run(t, "--config", path, "config", "init", "--force")
		assert.NoError(t, err)
	})

	t.Run("Show", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "flux.toml")
		assert.NoError(t, os.WriteFile(path, []byte("[parser]\nmax_depth = 12\n"), 0o644))

		stdout, _, err := run(t, "--config", path, "--format", "json", "config", "show")
		assert.NoError(t, err)
		assert.Contains(t, stdout, "max_depth = 12")
		assert.Contains(t, stdout, `format = "json"`)
	})
}

func TestBuildVersion(t *testing.T) {
	assert.Equal(t, "dev", BuildVersion())

	Version, CommitSHA = "1.2.3", "abc123"
	t.Cleanup(func() { Version, CommitSHA = "", "" })
	assert.Equal(t, "1.2.3 (abc123)", BuildVersion())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, zapcore.InfoLevel)

	log.Debug("hidden")
	log.Info("change detected")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "change detected")
}
