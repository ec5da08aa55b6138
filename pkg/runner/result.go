package runner

import "github.com/Mr0grog/yaml-doctor/pkg/doctor"

// FileOutcome is the checked result for one file.
type FileOutcome struct {
	// Path is the file that was checked.
	Path string

	// Result is the checker output, nil when the file was unreadable.
	Result *doctor.Result
}

// UnreadableFile records a file that could not be read.
type UnreadableFile struct {
	Path string
	Err  error
}

// Stats aggregates a run.
type Stats struct {
	// FilesChecked is the number of files that were read and checked.
	FilesChecked int

	// FilesWithIssues is the number of checked files with at least one
	// issue.
	FilesWithIssues int

	// FilesWritten is the number of files rewritten with fixes.
	FilesWritten int

	// Errors, Warnings, and Fixed tally issues across all files.
	Errors   int
	Warnings int
	Fixed    int
}

// Result is the outcome of a whole run.
type Result struct {
	// Files holds per-file outcomes in deterministic (path) order.
	Files []FileOutcome

	// Unreadable lists files that could not be read, in path order.
	Unreadable []UnreadableFile

	// Stats aggregates issue counts across files.
	Stats Stats
}

// HasFailures reports whether the run should fail: any error-level
// issue, or any unreadable file.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.Errors > 0 || len(r.Unreadable) > 0
}

// accumulate folds one outcome into the aggregate stats.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesChecked++
	if len(outcome.Result.Issues) > 0 {
		r.Stats.FilesWithIssues++
	}
	if outcome.Result.Written {
		r.Stats.FilesWritten++
	}

	counts := outcome.Result.Count()
	r.Stats.Errors += counts.Errors
	r.Stats.Warnings += counts.Warnings
	r.Stats.Fixed += counts.Fixed
}
