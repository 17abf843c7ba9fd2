package semantic

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "clean package",
			input: "option now = () => 2020-01-01T00:00:00Z\noption task.every = 1h\nx = 1\nf = (r) => r + x",
		},
		{
			name:     "option reassigned",
			input:    "option a = 1\noption a = 2",
			expected: `@2:1-2:13: option "a" reassigned`,
		},
		{
			name:     "member option reassigned",
			input:    "option task.every = 1h\noption task.every = 2h",
			expected: `@2:1-2:23: option "task.every" reassigned`,
		},
		{
			name:     "variable reassigned",
			input:    "a = 1\na = 2",
			expected: `@2:1-2:6: variable "a" reassigned`,
		},
		{
			name:     "variable reassigned in block",
			input:    "f = () => {\n\ta = 1\n\ta = 2\n\treturn a\n}",
			expected: `@3:2-3:7: variable "a" reassigned`,
		},
		{
			name:     "parameter reassigned",
			input:    "f = (a) => {\n\ta = 2\n\treturn a\n}",
			expected: `@2:2-2:7: variable "a" reassigned`,
		},
		{
			name:  "shadowing in a new scope",
			input: "x = 1\nf = () => {\n\tx = 2\n\treturn x\n}",
		},
		{
			name:     "variable conflicts with option",
			input:    "option a = 1\na = 2",
			expected: `@2:1-2:6: variable "a" conflicts with option of same name`,
		},
		{
			name:  "parameter named like an option",
			input: "option a = 1\nf = (a) => a",
		},
		{
			name:     "dependent options",
			input:    "option a = 1\noption b = a",
			expected: `@2:12-2:13: option "b" depends on option "a", which is defined in the same package`,
		},
		{
			name:     "dependent options through a function",
			input:    "option a = 1\noption b = () => a + 1",
			expected: `@2:18-2:19: option "b" depends on option "a", which is defined in the same package`,
		},
		{
			name:  "option shadowed by a parameter",
			input: "option a = 1\noption b = (a) => a",
		},
		{
			name:  "option depending on itself",
			input: "option a = a",
		},
		{
			name:  "option depending on an imported option",
			input: "option task.every = 1h\noption b = task.every",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(analyzeSource(t, tt.input))
			if tt.expected == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.expected)
		})
	}
}

func TestCheckInvalidOption(t *testing.T) {
	// option a.b.c = 1 cannot be written in source, but the graph can hold it.
	member := &MemberExpr{
		Object:   &MemberExpr{Object: &IdentifierExpr{Name: "a"}, Property: "b"},
		Property: "c",
	}
	pkg := &Package{Files: []*File{{
		Body: []Statement{&OptionStmt{Assignment: &MemberAssgn{Member: member, Init: &IntegerLit{Value: 1}}}},
	}}}

	err := Check(pkg)
	_, ok := err.(*InvalidOptionError)
	assert.True(t, ok, "got %T", err)
	assert.EqualError(t, err, "@0:0-0:0: invalid option")
}
