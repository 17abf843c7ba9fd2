package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/flux/scanner"
)

// TokensCmd shows the tokens of a Flux file.
type TokensCmd struct {
	File FileOrStdin `help:"Flux input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Mode string      `help:"Scanner mode: auto follows the parser, default never reads regexes, regex always does." enum:"auto,default,regex" default:"auto"`
}

// Run executes the tokens command.
func (cmd *TokensCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return usageError(err)
	}
	s, err := globals.session(ctx)
	if err != nil {
		return usageError(err)
	}

	content, err := cmd.File.ReadFile()
	if err != nil {
		return usageError(fmt.Errorf("failed to read file: %w", err))
	}

	// Format: KIND start-end "literal"
	for _, t := range scanTokens(content, cmd.Mode) {
		_, _ = fmt.Fprintf(s.stdout, "%s %s %q\n",
			s.styles.TokenKind(fmt.Sprintf("%-12s", t.Type)),
			s.styles.Dim(fmt.Sprintf("%-11s", fmt.Sprintf("%s-%s", t.StartPos, t.EndPos))),
			t.Lit)
	}
	return nil
}

// scanTokens returns every token of src up to, not including, EOF.
//
// In auto mode the scanner mode is chosen the way the parser chooses it: a
// "/" after an operand is division and a regex otherwise, and the inside of
// an interpolated string is scanned as text until its closing quote.
func scanTokens(src []byte, mode string) []scanner.Token {
	s := scanner.New(src)

	// Each entry is an open interpolated string (-1) or the brace depth of
	// an open ${ } inside one.
	var stack []int
	afterOperand := false

	var tokens []scanner.Token
	for {
		var t scanner.Token
		switch {
		case mode == "regex":
			t = s.ScanWithRegex()
		case mode == "default":
			t = s.Scan()
		case len(stack) > 0 && stack[len(stack)-1] < 0:
			t = s.ScanStringExpr()
		case afterOperand:
			t = s.Scan()
		default:
			t = s.ScanWithRegex()
		}
		if t.Type == scanner.EOF {
			return tokens
		}
		tokens = append(tokens, t)

		if mode != "auto" {
			continue
		}
		afterOperand = false
		inString := len(stack) > 0 && stack[len(stack)-1] < 0
		switch t.Type {
		case scanner.QUOTE:
			if inString {
				stack = stack[:len(stack)-1]
				afterOperand = true
			} else {
				stack = append(stack, -1)
			}
		case scanner.STRINGEXPR:
			stack = append(stack, 0)
		case scanner.LBRACE:
			if len(stack) > 0 {
				stack[len(stack)-1]++
			}
		case scanner.RBRACE:
			if len(stack) > 0 {
				if stack[len(stack)-1] == 0 {
					stack = stack[:len(stack)-1]
				} else {
					stack[len(stack)-1]--
					afterOperand = true
				}
			} else {
				afterOperand = true
			}
		case scanner.IDENT, scanner.INT, scanner.FLOAT, scanner.STRING, scanner.REGEX,
			scanner.TIME, scanner.DURATION, scanner.RPAREN, scanner.RBRACK:
			afterOperand = true
		}
	}
}
