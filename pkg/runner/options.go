// Package runner orchestrates checking many files: path discovery,
// a bounded worker pool, and aggregate statistics.
package runner

import "github.com/spf13/afero"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files, directories, or glob
	// patterns to check.
	Paths []string

	// WorkingDir is the base directory for relative paths and glob
	// expansion. Empty means the process working directory.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading
	// dot) expanded from directories. Explicit file paths are checked
	// regardless of extension.
	Extensions []string

	// ExcludeGlobs skips matching files and directories during
	// directory expansion.
	ExcludeGlobs []string

	// Jobs caps the worker pool. Zero or negative means one worker per
	// CPU.
	Jobs int

	// Fix enables repair and, unless DryRun is set, writing files back.
	Fix bool

	// DryRun repairs in memory but never writes.
	DryRun bool

	// KeepInvalidCharacters leaves non-printable characters in the
	// fixed output.
	KeepInvalidCharacters bool

	// Debug enables checker debug logging.
	Debug bool

	// FS is the filesystem to run against. Nil means the OS filesystem.
	FS afero.Fs
}

// DefaultExtensions returns the extensions expanded from directories.
func DefaultExtensions() []string {
	return []string{".yaml", ".yml", ".md"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectiveFS() afero.Fs {
	if o.FS == nil {
		return afero.NewOsFs()
	}
	return o.FS
}
