// Package output styles the text the flux command prints: token listings,
// type variables, locations and telemetry timings.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// ColorMode selects when styling escape codes are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Role names what a piece of text is, which decides how it is drawn.
type Role uint8

const (
	RoleTokenKind Role = iota // Scanner token names such as IDENT
	RoleTypeVar               // Type variables such as t12
	RoleLocation              // Source locations and other secondary text
	RoleSlow                  // Timings above the slow threshold
	RoleHeading               // Top line of a report
)

type style struct {
	color string // ANSI color index, empty for none
	bold  bool
	faint bool
}

var roles = map[Role]style{
	RoleTokenKind: {color: "3"},
	RoleTypeVar:   {color: "5", bold: true},
	RoleLocation:  {faint: true},
	RoleSlow:      {color: "1"},
	RoleHeading:   {bold: true},
}

// Styles renders roles for one output stream.
type Styles struct {
	output *termenv.Output
}

// NewStylesWithMode creates Styles for w. In ColorAuto mode colors are used
// only when w is a terminal that supports them; unknown modes behave the same.
func NewStylesWithMode(w io.Writer, mode ColorMode) *Styles {
	var opts []termenv.OutputOption
	switch mode {
	case ColorAlways:
		opts = append(opts, termenv.WithProfile(termenv.ANSI))
	case ColorNever:
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Styles{output: termenv.NewOutput(w, opts...)}
}

// Render draws text in the style of role.
func (s *Styles) Render(role Role, text string) string {
	st, ok := roles[role]
	if !ok {
		return text
	}
	out := s.output.String(text)
	if st.color != "" {
		out = out.Foreground(s.output.Color(st.color))
	}
	if st.bold {
		out = out.Bold()
	}
	if st.faint {
		out = out.Faint()
	}
	return out.String()
}

func (s *Styles) TokenKind(text string) string { return s.Render(RoleTokenKind, text) }

func (s *Styles) TypeVar(text string) string { return s.Render(RoleTypeVar, text) }

// Dim draws secondary information such as locations.
func (s *Styles) Dim(text string) string { return s.Render(RoleLocation, text) }

// Timing draws a duration from the telemetry report.
func (s *Styles) Timing(text string, slow bool) string {
	if slow {
		return s.Render(RoleSlow, text)
	}
	return s.Dim(text)
}
