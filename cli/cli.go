// Package cli implements the flux command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/robinvdvleuten/flux/loader"
	"github.com/robinvdvleuten/flux/output"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"
)

// theme holds the lipgloss styles of one output stream.
type theme struct {
	success lipgloss.Style
	err     lipgloss.Style
	info    lipgloss.Style
	path    lipgloss.Style
	context lipgloss.Style
	caret   lipgloss.Style
}

func newTheme(w io.Writer, mode output.ColorMode) *theme {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case output.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case output.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return &theme{
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"}),
		err:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}),
		info:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"}),
		path:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D7D7", Dark: "#00D7D7"}),
		context: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"}),
		caret:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}).Bold(true),
	}
}

// render adapts st to the plain string functions the diagnostic formatter takes.
func render(st lipgloss.Style) func(string) string {
	return func(text string) string { return st.Render(text) }
}

func (t *theme) printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", t.success.Render(successSymbol), message)
}

func (t *theme) printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", t.err.Render(errorSymbol), t.err.Render(message))
}

func (t *theme) printInfof(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", t.info.Render(infoSymbol), fmt.Sprintf(format, args...))
}

// promptYesNo asks a yes/no question. Without a terminal on stdin it
// answers no.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool
	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return confirm, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// stdinName is the file name given to source read from stdin.
const stdinName = "<stdin>"

// FileOrStdin accepts a file or directory path, or "-" for stdin.
// For stdin: Filename is "<stdin>" and Contents is populated.
// For paths: Filename is set and Contents is nil (read by the loader).
type FileOrStdin struct {
	Filename string
	Contents []byte
}

// Decode implements kong.MapperValue.
func (f *FileOrStdin) Decode(ctx *kong.DecodeContext) error {
	var filename string
	if err := ctx.Scan.PopValueInto("filename", &filename); err != nil {
		return err
	}

	if filename == "-" || filename == "" {
		return f.readStdin()
	}

	if _, err := os.Stat(filename); err != nil {
		return err
	}
	f.Filename = filename
	f.Contents = nil
	return nil
}

// EnsureContents reads stdin when no path was given on the command line.
func (f *FileOrStdin) EnsureContents() error {
	if f.Filename == "" {
		return f.readStdin()
	}
	return nil
}

func (f *FileOrStdin) readStdin() error {
	contents, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	f.Filename = stdinName
	f.Contents = contents
	return nil
}

// IsStdin reports whether the input came from stdin.
func (f *FileOrStdin) IsStdin() bool {
	return f.Filename == stdinName
}

// Load parses the input with ldr.
func (f *FileOrStdin) Load(ctx context.Context, ldr *loader.Loader) (*loader.Result, error) {
	if f.IsStdin() {
		return ldr.LoadBytes(ctx, stdinName, f.Contents)
	}
	return ldr.Load(ctx, f.Filename)
}

// ReadFile returns the text of a single file input.
func (f *FileOrStdin) ReadFile() ([]byte, error) {
	if f.IsStdin() {
		return f.Contents, nil
	}
	info, err := os.Stat(f.Filename)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", f.Filename)
	}
	return os.ReadFile(f.Filename)
}
