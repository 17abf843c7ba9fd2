// Package scanner converts Flux source text into tokens.
//
// The grammar is context sensitive at the lexical level, so the scanner has
// three modes selected by the caller on every call:
//
//   - Scan treats "/" as division.
//   - ScanWithRegex treats a leading "/" as the start of a regex literal.
//   - ScanStringExpr scans the inside of an interpolated string, producing
//     QUOTE, STRINGEXPR and TEXT tokens.
//
// The scanner never fails. Unrecognised input becomes an ILLEGAL token holding
// one character, and EOF may be requested any number of times.
package scanner

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

type mode int

const (
	modeDefault mode = iota
	modeRegex
	modeStringExpr
)

// state is the part of the scanner that Unread restores.
type state struct {
	offset    int
	line      int
	lineStart int
}

// Scanner tokenizes Flux source code.
type Scanner struct {
	src        []byte // Source buffer, must not be modified while scanning
	state             // Current read position
	checkpoint state  // Position before the last token, restored by Unread
	lines      []int  // Offset at which each line starts; lines[0] == 0
}

// New creates a scanner over src. The scanner keeps a reference to src.
func New(src []byte) *Scanner {
	return &Scanner{
		src:        src,
		state:      state{line: 1},
		checkpoint: state{line: 1},
		lines:      []int{0},
	}
}

// Scan returns the next token, treating "/" as division.
func (s *Scanner) Scan() Token {
	return s.scan(modeDefault)
}

// ScanWithRegex returns the next token, treating a leading "/" as the start
// of a regex literal. Use it where an operand is expected.
func (s *Scanner) ScanWithRegex() Token {
	return s.scan(modeRegex)
}

// ScanStringExpr returns the next token inside an interpolated string.
func (s *Scanner) ScanStringExpr() Token {
	return s.scan(modeStringExpr)
}

// Unread rewinds the scanner to where it was before the most recent scan.
// Calling it more than once has the same effect as calling it once.
func (s *Scanner) Unread() {
	s.state = s.checkpoint
}

// Pos converts a byte offset into a position. It agrees with the positions
// of every token already returned.
func (s *Scanner) Pos(offset int) Position {
	i, found := slices.BinarySearch(s.lines, offset)
	if !found {
		i--
	}
	if i < 0 {
		i = 0
	}
	return Position{Line: i + 1, Column: offset - s.lines[i] + 1}
}

// Offset converts a position back into a byte offset. It returns -1 for a
// line that has not been scanned yet.
func (s *Scanner) Offset(pos Position) int {
	if pos.Line < 1 || pos.Line > len(s.lines) {
		return -1
	}
	return s.lines[pos.Line-1] + pos.Column - 1
}

func (s *Scanner) scan(m mode) Token {
	s.checkpoint = s.state
	if s.offset >= len(s.src) {
		return s.eof()
	}

	if m != modeStringExpr {
		s.skipWhitespaceAndComments()
		if s.offset >= len(s.src) {
			return s.eof()
		}
	}

	start, startPos := s.offset, s.position()
	var typ TokenType
	if m == modeStringExpr {
		typ = s.scanStringExprToken()
	} else {
		typ = s.scanToken(m == modeRegex)
	}

	if typ == ILLEGAL {
		// Exactly one character, so multi-byte input is never split.
		_, size := utf8.DecodeRune(s.src[start:])
		s.state = state{offset: start, line: startPos.Line, lineStart: s.lineStartFor(startPos)}
		s.offset += size
		return Token{
			Type:        ILLEGAL,
			Lit:         string(s.src[start:s.offset]),
			StartOffset: start,
			EndOffset:   s.offset,
			StartPos:    startPos,
			EndPos:      Position{Line: startPos.Line, Column: startPos.Column + size},
		}
	}

	return Token{
		Type:        typ,
		Lit:         string(s.src[start:s.offset]),
		StartOffset: start,
		EndOffset:   s.offset,
		StartPos:    startPos,
		EndPos:      s.position(),
	}
}

func (s *Scanner) eof() Token {
	pos := s.position()
	return Token{
		Type:        EOF,
		StartOffset: len(s.src),
		EndOffset:   len(s.src),
		StartPos:    pos,
		EndPos:      pos,
	}
}

func (s *Scanner) position() Position {
	return Position{Line: s.line, Column: s.offset - s.lineStart + 1}
}

func (s *Scanner) lineStartFor(pos Position) int {
	return s.lines[pos.Line-1]
}

// peek returns the byte n positions ahead without consuming it, or 0 past
// the end of input.
func (s *Scanner) peek(n int) byte {
	if s.offset+n >= len(s.src) {
		return 0
	}
	return s.src[s.offset+n]
}

// advance consumes one byte and keeps the line table current.
func (s *Scanner) advance() byte {
	ch := s.src[s.offset]
	s.offset++
	if ch == '\n' {
		s.line++
		s.lineStart = s.offset
		if s.line > len(s.lines) {
			s.lines = append(s.lines, s.offset)
		}
	}
	return ch
}

func (s *Scanner) skipWhitespaceAndComments() {
	for s.offset < len(s.src) {
		switch ch := s.src[s.offset]; {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			s.advance()
		case ch == '/' && s.peek(1) == '/':
			for s.offset < len(s.src) && s.src[s.offset] != '\n' {
				s.offset++
			}
		default:
			return
		}
	}
}

// scanToken consumes one token in default or regex mode and returns its type.
// It returns ILLEGAL without guaranteeing how much was consumed; the caller
// resets the position.
func (s *Scanner) scanToken(regex bool) TokenType {
	ch := s.src[s.offset]

	switch {
	case isLetter(ch) || ch >= utf8.RuneSelf && s.isUnicodeLetter():
		return s.scanIdentifier()
	case isDigit(ch):
		return s.scanNumber()
	case ch == '.' && isDigit(s.peek(1)):
		return s.scanNumber()
	case ch == '"':
		return s.scanString()
	case ch == '/' && regex:
		if s.scanRegex() {
			return REGEX
		}
	}

	s.advance()
	switch ch {
	case '+':
		return ADD
	case '-':
		return SUB
	case '*':
		return MUL
	case '/':
		return DIV
	case '%':
		return MOD
	case '^':
		return POW
	case '(':
		return LPAREN
	case ')':
		return RPAREN
	case '[':
		return LBRACK
	case ']':
		return RBRACK
	case '{':
		return LBRACE
	case '}':
		return RBRACE
	case ',':
		return COMMA
	case '.':
		return DOT
	case ':':
		return COLON
	case '?':
		return QUESTIONMARK
	case '=':
		switch s.peek(0) {
		case '=':
			s.advance()
			return EQ
		case '~':
			s.advance()
			return REGEXEQ
		case '>':
			s.advance()
			return ARROW
		}
		return ASSIGN
	case '!':
		switch s.peek(0) {
		case '=':
			s.advance()
			return NEQ
		case '~':
			s.advance()
			return REGEXNEQ
		}
	case '<':
		switch s.peek(0) {
		case '=':
			s.advance()
			return LTE
		case '-':
			s.advance()
			return PIPERECEIVE
		}
		return LT
	case '>':
		if s.peek(0) == '=' {
			s.advance()
			return GTE
		}
		return GT
	case '|':
		if s.peek(0) == '>' {
			s.advance()
			return PIPEFORWARD
		}
	}
	return ILLEGAL
}

func (s *Scanner) isUnicodeLetter() bool {
	r, _ := utf8.DecodeRune(s.src[s.offset:])
	return unicode.IsLetter(r)
}

func (s *Scanner) scanIdentifier() TokenType {
	start := s.offset
	for s.offset < len(s.src) {
		ch := s.src[s.offset]
		if isLetter(ch) || isDigit(ch) {
			s.offset++
			continue
		}
		if ch >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(s.src[s.offset:])
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				s.offset += size
				continue
			}
		}
		break
	}
	if kw, ok := keywords[string(s.src[start:s.offset])]; ok {
		return kw
	}
	return IDENT
}

// scanNumber handles integers, floats, durations and date-times. None of
// them contain newlines so the offset is moved directly.
func (s *Scanner) scanNumber() TokenType {
	if n := matchDateTime(s.src[s.offset:]); n > 0 {
		s.offset += n
		return TIME
	}

	s.offset += countDigits(s.src[s.offset:])
	if s.peek(0) == '.' {
		s.offset++
		s.offset += countDigits(s.src[s.offset:])
		return FLOAT
	}

	if n := matchDurationUnit(s.src[s.offset:]); n > 0 {
		s.offset += n
		for {
			rest := s.src[s.offset:]
			digits := countDigits(rest)
			if digits == 0 {
				break
			}
			unit := matchDurationUnit(rest[digits:])
			if unit == 0 {
				break
			}
			s.offset += digits + unit
		}
		return DURATION
	}
	return INT
}

// scanString consumes a complete string literal. A literal that contains an
// interpolation or is never closed yields just the opening QUOTE, and the
// parser continues in string expression mode.
func (s *Scanner) scanString() TokenType {
	saved := s.state
	s.advance()
	for s.offset < len(s.src) {
		switch ch := s.src[s.offset]; ch {
		case '"':
			s.advance()
			return STRING
		case '\\':
			s.advance()
			if s.offset < len(s.src) {
				s.advance()
			}
		case '$':
			if s.peek(1) == '{' {
				s.state = saved
				s.advance()
				return QUOTE
			}
			s.advance()
		default:
			s.advance()
		}
	}
	s.state = saved
	s.advance()
	return QUOTE
}

// scanRegex consumes /pattern/ on a single line. It reports false and leaves
// the position untouched when there is no closing delimiter.
func (s *Scanner) scanRegex() bool {
	i := s.offset + 1
	for i < len(s.src) {
		switch s.src[i] {
		case '\n':
			return false
		case '\\':
			if i+1 >= len(s.src) || s.src[i+1] == '\n' {
				return false
			}
			i += 2
		case '/':
			if i == s.offset+1 {
				return false
			}
			s.offset = i + 1
			return true
		default:
			i++
		}
	}
	return false
}

func (s *Scanner) scanStringExprToken() TokenType {
	switch {
	case s.src[s.offset] == '"':
		s.advance()
		return QUOTE
	case s.src[s.offset] == '$' && s.peek(1) == '{':
		s.advance()
		s.advance()
		return STRINGEXPR
	}

	for s.offset < len(s.src) {
		switch ch := s.src[s.offset]; {
		case ch == '"':
			return TEXT
		case ch == '$' && s.peek(1) == '{':
			return TEXT
		case ch == '\\':
			s.advance()
			if s.offset < len(s.src) {
				s.advance()
			}
		default:
			s.advance()
		}
	}
	return TEXT
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func countDigits(b []byte) int {
	n := 0
	for n < len(b) && isDigit(b[n]) {
		n++
	}
	return n
}

// durationUnits is ordered so that longer units are tried first.
var durationUnits = []string{"mo", "ms", "us", "µs", "ns", "y", "w", "d", "h", "m", "s"}

func matchDurationUnit(b []byte) int {
	for _, u := range durationUnits {
		if len(b) >= len(u) && string(b[:len(u)]) == u {
			return len(u)
		}
	}
	return 0
}

// matchDateTime returns the length of a YYYY-MM-DD[Thh:mm:ss[.frac](Z|±hh:mm)]
// prefix of b, or 0.
func matchDateTime(b []byte) int {
	if !matchPattern(b, "dddd-dd-dd") {
		return 0
	}
	n := 10
	if len(b) <= n || b[n] != 'T' || !matchPattern(b[n+1:], "dd:dd:dd") {
		return n
	}
	i := n + 9
	if i < len(b) && b[i] == '.' && i+1 < len(b) && isDigit(b[i+1]) {
		i++
		i += countDigits(b[i:])
	}
	switch {
	case i < len(b) && b[i] == 'Z':
		return i + 1
	case i < len(b) && (b[i] == '+' || b[i] == '-') && matchPattern(b[i+1:], "dd:dd"):
		return i + 6
	}
	return n
}

// matchPattern matches b against a template where 'd' is any digit and every
// other byte matches itself.
func matchPattern(b []byte, pattern string) bool {
	if len(b) < len(pattern) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == 'd' {
			if !isDigit(b[i]) {
				return false
			}
		} else if b[i] != pattern[i] {
			return false
		}
	}
	return true
}
