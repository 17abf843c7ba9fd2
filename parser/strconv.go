package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/robinvdvleuten/flux/ast"
)

// Literal conversion. Each function takes the literal text exactly as the
// scanner produced it.

// ParseString unquotes a complete string literal, including its quotes.
func ParseString(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", errors.New("invalid string literal")
	}
	return ParseText(lit[1 : len(lit)-1])
}

// ParseText interprets the escapes \n \r \t \\ \" \$ and \xNN in the text
// of a string literal. The result must be valid UTF-8.
func ParseText(lit string) (string, error) {
	if strings.IndexByte(lit, '\\') < 0 {
		return lit, nil
	}
	var b strings.Builder
	b.Grow(len(lit))
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(lit) {
			return "", errors.New("invalid escape sequence")
		}
		switch lit[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '$':
			b.WriteByte('$')
		case 'x':
			v, err := parseHexByte(lit[i+1:])
			if err != nil {
				return "", err
			}
			b.WriteByte(v)
			i += 2
		default:
			r, _ := utf8.DecodeRuneInString(lit[i:])
			return "", fmt.Errorf("invalid escape character %c", r)
		}
	}
	s := b.String()
	if !utf8.ValidString(s) {
		return "", errors.New("invalid UTF-8 sequence in string literal")
	}
	return s, nil
}

// parseHexByte reads the two hex digits following \x.
func parseHexByte(s string) (byte, error) {
	switch {
	case len(s) == 0:
		return 0, errors.New(`\x followed by 0 char, must be 2`)
	case len(s) == 1:
		return 0, errors.New(`\x followed by 1 char, must be 2`)
	}
	hi, ok1 := unhex(s[0])
	lo, ok2 := unhex(s[1])
	if !ok1 || !ok2 {
		return 0, errors.New("invalid byte value")
	}
	return hi<<4 | lo, nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParseRegex strips the delimiters of a regex literal, unescapes \/ and \xNN
// and validates the pattern. Other escapes are left for the regexp engine.
func ParseRegex(lit string) (string, error) {
	if len(lit) < 3 {
		return "", errors.New("regexp must be at least 3 characters")
	}
	if lit[0] != '/' {
		return "", errors.New("regexp literal must start with a slash")
	}
	if lit[len(lit)-1] != '/' {
		return "", errors.New("regexp literal must end with a slash")
	}

	expr := lit[1 : len(lit)-1]
	var b strings.Builder
	b.Grow(len(expr))
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(expr) {
			return "", errors.New("unterminated regex sequence")
		}
		switch expr[i] {
		case '/':
			b.WriteByte('/')
		case 'x':
			v, err := parseHexByte(expr[i+1:])
			if err != nil {
				return "", err
			}
			b.WriteByte(v)
			i += 2
		default:
			b.WriteByte('\\')
			b.WriteByte(expr[i])
		}
	}

	pattern := b.String()
	if !utf8.ValidString(pattern) {
		return "", errors.New("invalid UTF-8 sequence in regexp literal")
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return "", errors.New(strings.TrimPrefix(err.Error(), "error parsing regexp: "))
	}
	return pattern, nil
}

// ParseTime parses an RFC 3339 date-time. A bare date means midnight UTC.
func ParseTime(lit string) (time.Time, error) {
	if !strings.Contains(lit, "T") {
		return time.Parse(time.DateOnly, lit)
	}
	return time.Parse(time.RFC3339Nano, lit)
}

// ParseDuration splits a duration literal such as 1h30m into magnitude/unit
// pairs. The unit µs is normalized to us.
func ParseDuration(lit string) ([]ast.Duration, error) {
	var values []ast.Duration
	for len(lit) > 0 {
		n := 0
		for n < len(lit) && '0' <= lit[n] && lit[n] <= '9' {
			n++
		}
		if n == 0 {
			return nil, errors.New("parsing empty magnitude")
		}
		magnitude, err := strconv.ParseInt(lit[:n], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid duration magnitude %q: %w", lit[:n], err)
		}
		lit = lit[n:]

		n = 0
		for n < len(lit) {
			r, size := utf8.DecodeRuneInString(lit[n:])
			if !unicode.IsLetter(r) {
				break
			}
			n += size
		}
		if n == 0 {
			return nil, errors.New("parsing empty unit")
		}
		unit := lit[:n]
		if unit == "µs" {
			unit = "us"
		}
		lit = lit[n:]

		values = append(values, ast.Duration{Magnitude: magnitude, Unit: unit})
	}
	return values, nil
}
