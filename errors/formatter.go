// Package errors renders Flux diagnostics for people and for programs. Parser
// diagnostics, semantic errors and check errors all report where they happened
// through GetLocation, which is the only thing the formatters rely on.
//
// The package provides two Formatter implementations:
//   - TextFormatter: compiler style output with the offending source lines
//   - JSONFormatter: structured output for editors and other tools
package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/flux/ast"
	"github.com/robinvdvleuten/flux/semantic"
)

// Located is implemented by every diagnostic that knows its source location.
type Located interface {
	error
	GetLocation() ast.SourceLocation
}

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// Location returns the location carried by err, if any.
func Location(err error) (ast.SourceLocation, bool) {
	var located Located
	if stderrors.As(err, &located) {
		return located.GetLocation(), true
	}
	return ast.SourceLocation{}, false
}

// Message returns the diagnostic text of err without any location prefix.
func Message(err error) string {
	var astErr *ast.Error
	if stderrors.As(err, &astErr) {
		return astErr.Msg
	}
	msg := err.Error()
	if loc, ok := Location(err); ok {
		msg = strings.TrimPrefix(msg, loc.String()+": ")
	}
	return msg
}

// TextFormatter formats errors for terminal output.
type TextFormatter struct {
	sources map[string]string // Source text by file name, for context lines

	message func(string) string
	context func(string) string
	caret   func(string) string
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource registers the text of file so errors located in it are shown
// together with the surrounding lines.
func WithSource(file, src string) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sources[file] = src
	}
}

// WithStyles sets the functions used to decorate the message line, the
// context lines and the caret line. A nil function leaves that part plain.
func WithStyles(message, context, caret func(string) string) TextFormatterOption {
	return func(tf *TextFormatter) {
		if message != nil {
			tf.message = message
		}
		if context != nil {
			tf.context = context
		}
		if caret != nil {
			tf.caret = caret
		}
	}
}

func plain(s string) string { return s }

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{
		sources: make(map[string]string),
		message: plain,
		context: plain,
		caret:   plain,
	}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error as "file:line:col: message", followed by the
// source lines around it when the file's text is known.
func (tf *TextFormatter) Format(err error) string {
	loc, ok := Location(err)
	if !ok || !loc.Start.IsValid() {
		return tf.message(Message(err))
	}

	header := fmt.Sprintf("%s: %s", loc.Start, Message(err))
	if loc.File != "" {
		header = loc.File + ":" + header
	}

	src, ok := tf.sources[loc.File]
	if !ok {
		return tf.message(header)
	}
	return tf.formatWithSourceContext(loc, tf.message(header), src)
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// formatWithSourceContext shows two lines before and one line after the start
// of loc, with carets under the part of the start line that loc covers.
func (tf *TextFormatter) formatWithSourceContext(loc ast.SourceLocation, header, src string) string {
	var buf bytes.Buffer

	buf.WriteString(header)
	buf.WriteString("\n\n")

	lines := strings.Split(src, "\n")

	first := max(loc.Start.Line-3, 0)
	last := min(loc.Start.Line, len(lines)-1)

	for i := first; i <= last; i++ {
		line := strings.TrimRight(lines[i], "\r")
		buf.WriteString("   ")
		buf.WriteString(tf.context(line))
		buf.WriteByte('\n')

		if i == loc.Start.Line-1 {
			buf.WriteString("   ")
			buf.WriteString(tf.caretLine(line, loc))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// caretLine builds the marker line for line. Columns in loc count bytes while
// the terminal counts cells, so both the padding and the marker are measured
// with runewidth.
func (tf *TextFormatter) caretLine(line string, loc ast.SourceLocation) string {
	start := min(loc.Start.Column-1, len(line))
	end := len(line)
	if loc.End.Line == loc.Start.Line && loc.End.Column > loc.Start.Column {
		end = min(loc.End.Column-1, len(line))
	}

	pad := strings.Repeat(" ", runewidth.StringWidth(line[:start]))
	width := max(runewidth.StringWidth(line[start:end]), 1)
	return pad + tf.caret(strings.Repeat("^", width))
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Location *LocationJSON     `json:"location,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// LocationJSON represents a source span in JSON format.
type LocationJSON struct {
	File  string       `json:"file,omitempty"`
	Start PositionJSON `json:"start"`
	End   PositionJSON `json:"end"`
}

// PositionJSON represents a line and column in JSON format.
type PositionJSON struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    errorType(err),
		Message: Message(err),
	}

	if loc, ok := Location(err); ok && loc.IsValid() {
		errJSON.Location = &LocationJSON{
			File:  loc.File,
			Start: PositionJSON{Line: loc.Start.Line, Column: loc.Start.Column},
			End:   PositionJSON{Line: loc.End.Line, Column: loc.End.Column},
		}
	}

	switch e := err.(type) {
	case *semantic.OptionReassignError:
		errJSON.Details = map[string]string{"option": e.Name}
	case *semantic.VariableReassignError:
		errJSON.Details = map[string]string{"variable": e.Name}
	case *semantic.VariableOptionConflictError:
		errJSON.Details = map[string]string{"variable": e.Name}
	case *semantic.DependentOptionError:
		errJSON.Details = map[string]string{"option": e.Option, "dependee": e.Dependee}
	}

	return errJSON
}

// errorType names the stage that produced err.
func errorType(err error) string {
	switch err.(type) {
	case *ast.Error:
		return "syntax"
	case *semantic.Error:
		return "semantic"
	case *semantic.InvalidOptionError, *semantic.OptionReassignError, *semantic.VariableReassignError,
		*semantic.VariableOptionConflictError, *semantic.DependentOptionError:
		return "check"
	default:
		return "error"
	}
}
