package ast

import "fmt"

// Position is a 1-indexed line/column pair. Columns count bytes.
type Position struct {
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed, bytes)
}

// IsValid reports whether both line and column are set.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Less orders positions by line, then column.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// GoString returns a Go-syntax representation of the position.
func (p Position) GoString() string {
	return fmt.Sprintf("Position{Line: %d, Column: %d}", p.Line, p.Column)
}

// SourceLocation is the span of source text a node was parsed from.
// Source, when set, is exactly the text between Start and End.
type SourceLocation struct {
	File   string
	Start  Position
	End    Position
	Source string
}

// IsValid reports whether the location spans real positions.
func (l SourceLocation) IsValid() bool {
	return l.Start.IsValid() && l.End.IsValid()
}

// String renders the location as "file@startLine:startCol-endLine:endCol".
func (l SourceLocation) String() string {
	return fmt.Sprintf("%s@%d:%d-%d:%d", l.File, l.Start.Line, l.Start.Column, l.End.Line, l.End.Column)
}
