package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/alecthomas/assert/v2"
	"go.uber.org/zap"

	"github.com/robinvdvleuten/flux/config"
	"github.com/robinvdvleuten/flux/loader"
	"github.com/robinvdvleuten/flux/output"
)

func load(t *testing.T, src string) *loader.Result {
	t.Helper()
	result, err := loader.New().LoadBytes(context.Background(), "query.flux", []byte(src))
	assert.NoError(t, err)
	return result
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		errors []string
	}{
		{name: "Valid", src: "a = 1\nb = a + 2"},
		{name: "SyntaxErrorStops", src: "a = (1", errors: []string{"expected RPAREN, got EOF"}},
		{name: "SemanticError", src: "f = (a=<-, b=<-) => a", errors: []string{"only a single argument may be piped"}},
		{name: "CheckError", src: "a = 1\na = 2", errors: []string{`variable "a" reassigned`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, errs := analyze(context.Background(), load(t, tt.src))
			assert.Equal(t, len(tt.errors), len(errs))
			for i, want := range tt.errors {
				assert.Contains(t, errs[i].Error(), want)
			}
			if len(tt.errors) == 0 {
				assert.NotZero(t, pkg)
				assert.Equal(t, 1, len(pkg.Files))
			}
		})
	}
}

func TestPrintDiagnostics(t *testing.T) {
	result := load(t, "a = 1 +")
	_, errs := analyze(context.Background(), result)
	assert.NotEqual(t, 0, len(errs))

	t.Run("Text", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		s := testSession(&stdout, &stderr, "text")
		s.printDiagnostics(result.Sources, errs)

		assert.Equal(t, "", stdout.String())
		assert.Contains(t, stderr.String(), "query.flux:1:")
		assert.Contains(t, stderr.String(), "   a = 1 +\n")
		assert.Contains(t, stderr.String(), "1 error(s) found")
	})

	t.Run("JSON", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		s := testSession(&stdout, &stderr, "json")
		s.printDiagnostics(result.Sources, errs)

		assert.Equal(t, "", stderr.String())
		assert.Contains(t, stdout.String(), `"type": "syntax"`)
		assert.Contains(t, stdout.String(), `"file": "query.flux"`)
	})
}

func TestPrintDiagnosticsStyled(t *testing.T) {
	result := load(t, "a = 1 +")
	_, errs := analyze(context.Background(), result)

	var stdout, stderr bytes.Buffer
	s := testSession(&stdout, &stderr, "text")
	s.errs = newTheme(&stderr, output.ColorAlways)
	s.printDiagnostics(result.Sources, errs)

	assert.Contains(t, stderr.String(), "\x1b[")
	assert.Contains(t, stderr.String(), "a = 1 +")
}

func testSession(stdout, stderr io.Writer, format string) *session {
	s := &session{
		log:    zap.NewNop(),
		stdout: stdout,
		stderr: stderr,
		out:    newTheme(stdout, output.ColorNever),
		errs:   newTheme(stderr, output.ColorNever),
		styles: output.NewStylesWithMode(stdout, output.ColorNever),
	}
	s.cfg = config.Default()
	s.cfg.Output.Format = format
	return s
}
