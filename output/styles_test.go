package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestRenderKeepsText(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStylesWithMode(&buf, ColorAlways)

	tests := []struct {
		name string
		role Role
		text string
	}{
		{"TokenKind", RoleTokenKind, "IDENT"},
		{"TypeVar", RoleTypeVar, "t12"},
		{"Location", RoleLocation, "1:1-1:4"},
		{"Slow", RoleSlow, "500ms"},
		{"Heading", RoleHeading, "check query.flux"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := styles.Render(tt.role, tt.text)
			assert.Contains(t, result, tt.text)
			assert.True(t, strings.Contains(result, "\x1b["), "expected escape codes in %q", result)
		})
	}
}

func TestRenderUnknownRole(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStylesWithMode(&buf, ColorAlways)

	assert.Equal(t, "plain", styles.Render(Role(200), "plain"))
}

func TestStylesColorNever(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStylesWithMode(&buf, ColorNever)

	assert.Equal(t, "IDENT", styles.TokenKind("IDENT"))
	assert.Equal(t, "t0", styles.TypeVar("t0"))
	assert.Equal(t, "1:1-1:2", styles.Dim("1:1-1:2"))
	assert.Equal(t, "5ms", styles.Timing("5ms", false))
	assert.Equal(t, "500ms", styles.Timing("500ms", true))
}

func TestStylesAutoWithoutTerminal(t *testing.T) {
	// A buffer is not a terminal, so auto mode renders plain text.
	var buf bytes.Buffer
	styles := NewStylesWithMode(&buf, ColorAuto)

	assert.Equal(t, "t3", styles.TypeVar("t3"))
}

func TestStylesTiming(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStylesWithMode(&buf, ColorAlways)

	assert.Contains(t, styles.Timing("5ms", false), "5ms")
	assert.Contains(t, styles.Timing("500ms", true), "500ms")
	assert.NotEqual(t, styles.Timing("500ms", false), styles.Timing("500ms", true))
}
