package doctor

import "github.com/charmbracelet/log"

// Options controls a single checking session.
type Options struct {
	// Fix enables repair: the result carries a fixed copy of the source
	// and repaired issues are relabeled LevelFixed.
	Fix bool

	// DryRun prevents CheckFile from writing the fixed content back to
	// disk. It has no effect on Check.
	DryRun bool

	// KeepInvalidCharacters prevents non-printable characters from being
	// removed from the fixed output. They are always removed from the
	// working buffer, since no parser tolerates them.
	KeepInvalidCharacters bool

	// Debug enables detector activity logging and a strict re-parse of
	// the fixed output.
	Debug bool

	// Filename is attached to issues and marks, when known.
	Filename string

	// Logger receives debug output. When nil and Debug is set, a new
	// debug-level logger writing to stderr is used.
	Logger *log.Logger
}

// Result is the outcome of checking one document.
type Result struct {
	// Issues lists every fault found, in scan order.
	Issues []*Issue

	// Fixed is the repaired source. It is non-nil exactly when the
	// session ran with Fix enabled.
	Fixed *string

	// Written reports whether CheckFile wrote the fixed content back to
	// the file.
	Written bool
}

// Counts tallies issues by level.
type Counts struct {
	Errors   int
	Warnings int
	Fixed    int
}

// Count returns the issue tallies for the result.
func (r *Result) Count() Counts {
	var c Counts
	for _, issue := range r.Issues {
		switch issue.Level {
		case LevelError:
			c.Errors++
		case LevelWarning:
			c.Warnings++
		case LevelFixed:
			c.Fixed++
		}
	}
	return c
}

// HasErrors reports whether any issue is error level.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Level == LevelError {
			return true
		}
	}
	return false
}
