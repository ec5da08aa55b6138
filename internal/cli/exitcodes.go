package cli

import "github.com/Mr0grog/yaml-doctor/pkg/runner"

// Exit codes for yaml-doctor. Warnings and fixes are non-fatal; only
// errors, unreadable files, an empty match set, or a bad invocation
// fail the run.
const (
	// ExitSuccess indicates no error-level issues.
	ExitSuccess = 0

	// ExitFailure indicates errors, no files matched, or invalid usage.
	ExitFailure = 1
)

// ExitCodeFromResult maps a run result to an exit code.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitFailure
	}
	if result.Stats.FilesChecked == 0 || result.HasFailures() {
		return ExitFailure
	}
	return ExitSuccess
}
