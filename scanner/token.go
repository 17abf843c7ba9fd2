package scanner

import "fmt"

// TokenType represents the type of token scanned from the input.
type TokenType uint8

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF
	COMMENT

	// Keywords
	AND     // and
	OR      // or
	NOT     // not
	EMPTY   // empty
	IN      // in
	IMPORT  // import
	PACKAGE // package
	RETURN  // return
	OPTION  // option
	BUILTIN // builtin
	TEST    // test
	IF      // if
	THEN    // then
	ELSE    // else
	EXISTS  // exists

	// Literals
	IDENT    // cpu, _value
	INT      // 42
	FLOAT    // 4.2
	STRING   // "text"
	REGEX    // /pattern/
	TIME     // 2020-01-01T00:00:00Z
	DURATION // 1h30m

	// Operators
	ADD          // +
	SUB          // -
	MUL          // *
	DIV          // /
	MOD          // %
	POW          // ^
	EQ           // ==
	LT           // <
	GT           // >
	LTE          // <=
	GTE          // >=
	NEQ          // !=
	REGEXEQ      // =~
	REGEXNEQ     // !~
	ASSIGN       // =
	ARROW        // =>
	LPAREN       // (
	RPAREN       // )
	LBRACK       // [
	RBRACK       // ]
	LBRACE       // {
	RBRACE       // }
	COMMA        // ,
	DOT          // .
	COLON        // :
	QUESTIONMARK // ?
	PIPEFORWARD  // |>
	PIPERECEIVE  // <-

	// String interpolation
	QUOTE      // "
	STRINGEXPR // ${
	TEXT       // literal text inside an interpolated string
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",

	AND:     "AND",
	OR:      "OR",
	NOT:     "NOT",
	EMPTY:   "EMPTY",
	IN:      "IN",
	IMPORT:  "IMPORT",
	PACKAGE: "PACKAGE",
	RETURN:  "RETURN",
	OPTION:  "OPTION",
	BUILTIN: "BUILTIN",
	TEST:    "TEST",
	IF:      "IF",
	THEN:    "THEN",
	ELSE:    "ELSE",
	EXISTS:  "EXISTS",

	IDENT:    "IDENT",
	INT:      "INT",
	FLOAT:    "FLOAT",
	STRING:   "STRING",
	REGEX:    "REGEX",
	TIME:     "TIME",
	DURATION: "DURATION",

	ADD:          "ADD",
	SUB:          "SUB",
	MUL:          "MUL",
	DIV:          "DIV",
	MOD:          "MOD",
	POW:          "POW",
	EQ:           "EQ",
	LT:           "LT",
	GT:           "GT",
	LTE:          "LTE",
	GTE:          "GTE",
	NEQ:          "NEQ",
	REGEXEQ:      "REGEXEQ",
	REGEXNEQ:     "REGEXNEQ",
	ASSIGN:       "ASSIGN",
	ARROW:        "ARROW",
	LPAREN:       "LPAREN",
	RPAREN:       "RPAREN",
	LBRACK:       "LBRACK",
	RBRACK:       "RBRACK",
	LBRACE:       "LBRACE",
	RBRACE:       "RBRACE",
	COMMA:        "COMMA",
	DOT:          "DOT",
	COLON:        "COLON",
	QUESTIONMARK: "QUESTION_MARK",
	PIPEFORWARD:  "PIPE_FORWARD",
	PIPERECEIVE:  "PIPE_RECEIVE",

	QUOTE:      "QUOTE",
	STRINGEXPR: "STRINGEXPR",
	TEXT:       "TEXT",
}

// String returns the upper-case name used in diagnostics.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

var keywords = map[string]TokenType{
	"and":     AND,
	"or":      OR,
	"not":     NOT,
	"empty":   EMPTY,
	"in":      IN,
	"import":  IMPORT,
	"package": PACKAGE,
	"return":  RETURN,
	"option":  OPTION,
	"builtin": BUILTIN,
	"test":    TEST,
	"if":      IF,
	"then":    THEN,
	"else":    ELSE,
	"exists":  EXISTS,
}

// Position is a 1-indexed line/column pair. Columns count bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a classified slice of the input.
type Token struct {
	Type        TokenType
	Lit         string
	StartOffset int
	EndOffset   int
	StartPos    Position
	EndPos      Position
}

// String returns a debug representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) %s-%s", t.Type, t.Lit, t.StartPos, t.EndPos)
}
