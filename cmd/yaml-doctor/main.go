// Package main is the entry point for the yaml-doctor CLI.
package main

import (
	"errors"
	"os"

	"github.com/Mr0grog/yaml-doctor/internal/cli"
	"github.com/Mr0grog/yaml-doctor/internal/logging"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrIssuesFound only signals the exit code; the report already
		// explained the problems.
		if !errors.Is(err, cli.ErrIssuesFound) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitFailure
	}
	return cli.ExitSuccess
}
