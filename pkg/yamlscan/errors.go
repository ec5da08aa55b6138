package yamlscan

import "fmt"

// SyntaxError is a position-tagged fault in the scanned document. The
// scanner only ever reports tagged faults; anything untagged is a bug.
type SyntaxError struct {
	// Reason describes the fault.
	Reason string

	// Position is the byte offset into the buffer where the fault was
	// detected.
	Position int

	// Line is the zero-indexed line of Position.
	Line int

	// Column is the zero-indexed byte column of Position.
	Column int
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Reason, e.Line, e.Column)
}
