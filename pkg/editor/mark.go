package editor

import (
	"fmt"
	"strings"
)

// Mark is a position in a source text with derived line and column.
// Line and Column are zero-indexed; Position is a byte offset.
type Mark struct {
	// Name is the source name (typically a file path), may be empty.
	Name string

	// Position is the byte offset into the original text.
	Position int

	// Line is the zero-indexed line number.
	Line int

	// Column is the zero-indexed byte column within the line.
	Column int
}

// String renders the mark as "line:column" for terminal output.
func (m Mark) String() string {
	return fmt.Sprintf("%d:%d", m.Line, m.Column)
}

// MarkOriginalPosition translates a current-text position to the
// original text and derives its line and column there.
func (e *StringEditor) MarkOriginalPosition(p int, name string) Mark {
	return e.MarkAt(e.OriginalPosition(p), name)
}

// MarkAt builds a Mark for a position already expressed in original-text
// coordinates.
func (e *StringEditor) MarkAt(op int, name string) Mark {
	if op < 0 {
		op = 0
	}
	if op > len(e.original) {
		op = len(e.original)
	}
	before := e.original[:op]
	line := strings.Count(before, "\n")
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Mark{
		Name:     name,
		Position: op,
		Line:     line,
		Column:   op - lineStart,
	}
}
