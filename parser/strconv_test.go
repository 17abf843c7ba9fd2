package parser

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/flux/ast"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		errorMsg string
	}{
		{name: "simple", input: `"hello world"`, expected: "hello world"},
		{name: "empty", input: `""`, expected: ""},
		{
			name:     "escapes",
			input:    `"newline\ncarriage return\r\ttab \"quote\" backslash \\ dollar \${"`,
			expected: "newline\ncarriage return\r\ttab \"quote\" backslash \\ dollar ${",
		},
		{name: "hex bytes", input: `"\xe6\x97\xa5"`, expected: "日"},
		{name: "unicode", input: `"日本語"`, expected: "日本語"},
		{name: "missing quotes", input: `hello`, errorMsg: "invalid string literal"},
		{name: "bad escape", input: `"\q"`, errorMsg: "invalid escape character q"},
		{name: "short hex", input: `"\x1"`, errorMsg: `\x followed by 1 char, must be 2`},
		{name: "bad hex", input: `"\xzz"`, errorMsg: "invalid byte value"},
		{name: "invalid utf8", input: `"\xff"`, errorMsg: "invalid UTF-8 sequence in string literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if tt.errorMsg != "" {
				assert.EqualError(t, err, tt.errorMsg)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseText(t *testing.T) {
	got, err := ParseText(`a\\b`)
	assert.NoError(t, err)
	assert.Equal(t, `a\b`, got)

	_, err = ParseText(`trailing\`)
	assert.EqualError(t, err, "invalid escape sequence")
}

func TestParseRegex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "simple", input: `/hello world/`, expected: "hello world"},
		{name: "escaped slash", input: `/a\/b/`, expected: "a/b"},
		{name: "classes kept", input: `/\w\s\d/`, expected: `\w\s\d`},
		{name: "hex", input: `/\x41/`, expected: "A"},
		{name: "unicode", input: `/日本語/`, expected: "日本語"},
		{name: "too short", input: `//`, wantErr: true},
		{name: "no leading slash", input: `abc/`, wantErr: true},
		{name: "no trailing slash", input: `/abc`, wantErr: true},
		{name: "invalid pattern", input: `/(/`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRegex(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "nanoseconds",
			input:    "2022-09-14T04:37:17.123456789Z",
			expected: time.Date(2022, 9, 14, 4, 37, 17, 123456789, time.UTC),
		},
		{
			name:     "milliseconds",
			input:    "2022-09-14T04:37:17.123Z",
			expected: time.Date(2022, 9, 14, 4, 37, 17, 123000000, time.UTC),
		},
		{
			name:     "offset",
			input:    "2022-09-14T04:37:17.123456789-07:00",
			expected: time.Date(2022, 9, 14, 4, 37, 17, 123456789, time.FixedZone("", -7*60*60)),
		},
		{
			name:     "date only",
			input:    "2022-09-14",
			expected: time.Date(2022, 9, 14, 0, 0, 0, 0, time.UTC),
		},
		{name: "bad date", input: "2022-13-14", wantErr: true},
		{name: "bad date time", input: "2022-09-14T25:00:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s", got)
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []ast.Duration
		errorMsg string
	}{
		{
			name:     "single",
			input:    "1h",
			expected: []ast.Duration{{Magnitude: 1, Unit: "h"}},
		},
		{
			name:  "compound",
			input: "1y3mo2w1d4h1m30s1ms2us70ns",
			expected: []ast.Duration{
				{Magnitude: 1, Unit: "y"},
				{Magnitude: 3, Unit: "mo"},
				{Magnitude: 2, Unit: "w"},
				{Magnitude: 1, Unit: "d"},
				{Magnitude: 4, Unit: "h"},
				{Magnitude: 1, Unit: "m"},
				{Magnitude: 30, Unit: "s"},
				{Magnitude: 1, Unit: "ms"},
				{Magnitude: 2, Unit: "us"},
				{Magnitude: 70, Unit: "ns"},
			},
		},
		{
			name:     "micro sign",
			input:    "5µs",
			expected: []ast.Duration{{Magnitude: 5, Unit: "us"}},
		},
		{name: "missing magnitude", input: "d", errorMsg: "parsing empty magnitude"},
		{name: "missing unit", input: "10", errorMsg: "parsing empty unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.errorMsg != "" {
				assert.EqualError(t, err, tt.errorMsg)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
