package semantic

import (
	"math"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/flux/ast"
)

func dur(magnitude int64, unit string) ast.Duration {
	return ast.Duration{Magnitude: magnitude, Unit: unit}
}

func TestConvertDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    []ast.Duration
		expected Duration
		errorMsg string
	}{
		{
			name:  "mixed units",
			input: []ast.Duration{dur(1, "y"), dur(2, "mo"), dur(3, "w"), dur(4, "m"), dur(5, "ns")},
			expected: Duration{
				Months:      14,
				Nanoseconds: 3*nsPerWeek + 4*int64(time.Minute) + 5,
			},
		},
		{
			name:     "same unit twice",
			input:    []ast.Duration{dur(1, "y"), dur(2, "mo"), dur(3, "y")},
			expected: Duration{Months: 50},
		},
		{
			name:     "negative",
			input:    []ast.Duration{dur(-1, "y"), dur(-2, "mo"), dur(-3, "w")},
			expected: Duration{Months: 14, Nanoseconds: 3 * nsPerWeek, Negative: true},
		},
		{
			name:     "micro sign",
			input:    []ast.Duration{dur(1, "µs"), dur(1, "us")},
			expected: Duration{Nanoseconds: 2000},
		},
		{
			name:     "unknown unit",
			input:    []ast.Duration{dur(-1, "y"), dur(-2, "--idk--"), dur(-3, "w")},
			errorMsg: "unrecognized magnitude for duration: --idk--",
		},
		{
			name:     "different signs",
			input:    []ast.Duration{dur(-1, "y"), dur(2, "mo")},
			errorMsg: "all values in AST duration vector must have the same sign",
		},
		{
			name:     "empty",
			errorMsg: "AST duration vector must contain at least one duration value",
		},
		{
			name:     "nanosecond overflow",
			input:    []ast.Duration{dur(math.MaxInt64, "h")},
			errorMsg: "duration overflows int64",
		},
		{
			name:     "month overflow",
			input:    []ast.Duration{dur(math.MaxInt64, "y")},
			errorMsg: "duration overflows int64",
		},
		{
			name:     "largest nanoseconds",
			input:    []ast.Duration{dur(math.MaxInt64, "ns")},
			expected: Duration{Nanoseconds: math.MaxInt64},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertDuration(tt.input)
			if tt.errorMsg != "" {
				assert.EqualError(t, err, tt.errorMsg)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDurationString(t *testing.T) {
	tests := []struct {
		input    Duration
		expected string
	}{
		{Duration{}, "0ns"},
		{Duration{Months: 14}, "1y2mo"},
		{Duration{Nanoseconds: int64(90 * time.Minute)}, "1h30m"},
		{Duration{Months: 1, Nanoseconds: nsPerDay + 1, Negative: true}, "-1mo1d1ns"},
		{Duration{Nanoseconds: 1500}, "1us500ns"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.String())
		})
	}
}
