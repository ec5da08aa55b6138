package doctor

import (
	"fmt"

	"github.com/Mr0grog/yaml-doctor/pkg/editor"
)

// Level classifies an issue's severity.
type Level string

const (
	// LevelError marks a fault that makes the document unparseable or
	// semantically wrong.
	LevelError Level = "error"

	// LevelWarning marks a probable author mistake that still parses.
	LevelWarning Level = "warning"

	// LevelFixed marks an issue whose source was repaired in the fixed
	// output.
	LevelFixed Level = "fixed"
)

// Issue is a single fault found while checking a document. An issue
// starts as an error or warning; its level becomes LevelFixed when and
// only when the repair was written to the fixed output.
type Issue struct {
	// Level is the issue severity.
	Level Level

	// Reason is the human-readable description of the fault.
	Reason string

	// Mark locates the fault in the original source.
	Mark editor.Mark

	// Filename is the source file, when known.
	Filename string
}

// String renders the issue the way the CLI prints it.
func (i *Issue) String() string {
	return fmt.Sprintf("%s  %s  %s", i.Mark, i.Level, i.Reason)
}
