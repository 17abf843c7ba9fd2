package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestPosition(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, Position{Line: 1, Column: 1}.IsValid())
		assert.False(t, Position{}.IsValid(), "zero position should be invalid")
		assert.False(t, Position{Line: 1}.IsValid(), "missing column should be invalid")
	})

	t.Run("Less", func(t *testing.T) {
		assert.True(t, Position{Line: 1, Column: 9}.Less(Position{Line: 2, Column: 1}))
		assert.True(t, Position{Line: 2, Column: 1}.Less(Position{Line: 2, Column: 3}))
		assert.False(t, Position{Line: 2, Column: 3}.Less(Position{Line: 2, Column: 3}))
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "3:14", Position{Line: 3, Column: 14}.String())
		assert.Equal(t, "Position{Line: 3, Column: 14}", Position{Line: 3, Column: 14}.GoString())
	})
}

func TestSourceLocation(t *testing.T) {
	tests := []struct {
		name  string
		loc   SourceLocation
		want  string
		valid bool
	}{
		{
			name:  "WithFile",
			loc:   SourceLocation{File: "query.flux", Start: Position{1, 1}, End: Position{1, 5}},
			want:  "query.flux@1:1-1:5",
			valid: true,
		},
		{
			name:  "WithoutFile",
			loc:   SourceLocation{Start: Position{2, 3}, End: Position{4, 1}},
			want:  "@2:3-4:1",
			valid: true,
		},
		{
			name: "Zero",
			loc:  SourceLocation{},
			want: "@0:0-0:0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.String())
			assert.Equal(t, tt.valid, tt.loc.IsValid())
		})
	}
}
