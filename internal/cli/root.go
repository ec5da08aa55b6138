// Package cli provides the Cobra command for yaml-doctor.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mr0grog/yaml-doctor/internal/configloader"
	"github.com/Mr0grog/yaml-doctor/internal/logging"
	"github.com/Mr0grog/yaml-doctor/pkg/reporter"
	"github.com/Mr0grog/yaml-doctor/pkg/runner"
)

// ErrIssuesFound signals a failing exit code without an error message;
// the report already told the user everything.
var ErrIssuesFound = errors.New("issues found")

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type rootFlags struct {
	fix        bool
	dryRun     bool
	debug      bool
	jobs       int
	color      string
	format     string
	configPath string
	ignore     []string
}

// NewRootCommand creates the yaml-doctor command.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "yaml-doctor [flags] [path...]",
		Short: "An error-tolerant YAML checker and fixer",
		Long: `yaml-doctor checks YAML files (and the YAML front-matter of Markdown
files) for mistakes people actually make: unescaped quotes, strings
with no end quote, unquoted {{ template }} substitutions, values that
start with '@' or '[', bad escape sequences, non-printable characters,
and under-indented continuation lines.

Each path may be a file, a directory, or a glob pattern. Directories
expand to **/*.{yaml,yml,md}; files named directly are checked
regardless of extension. When no paths are named, the paths from
.yaml-doctor.yaml are checked instead. With --fix, repairable problems
are rewritten in place.`,
		Example: `  yaml-doctor config/
  yaml-doctor --fix deploy.yaml 'content/**/*.md'
  yaml-doctor --fix --dry-run --format json .`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", info.Version, info.Commit, info.Date),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.fix, "fix", false, "automatically fix issues and rewrite files")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "fix in memory but never write files")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.color, "color", "", "colorize output: auto, always, never")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to config file")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip during directory expansion")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *rootFlags) error {
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(workDir, flags.configPath)
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if loaded.LoadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldPath, loaded.LoadedFrom)
	}
	cfg := loaded.Config

	// Config supplies the paths only when the command line names none.
	paths := args
	if len(paths) == 0 {
		paths = cfg.Paths
	}
	if len(paths) == 0 {
		return errors.New("no paths given: name files, directories, or glob patterns to check")
	}

	fix := cfg.Fix
	if cmd.Flags().Changed("fix") {
		fix = flags.fix
	}
	jobs := cfg.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs = flags.jobs
	}
	color := cfg.Color
	if flags.color != "" {
		color = flags.color
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	runOpts := runner.Options{
		Paths:                 paths,
		WorkingDir:            workDir,
		ExcludeGlobs:          append(append([]string{}, cfg.Ignore...), flags.ignore...),
		Jobs:                  jobs,
		Fix:                   fix,
		DryRun:                flags.dryRun,
		KeepInvalidCharacters: cfg.KeepInvalidCharacters,
		Debug:                 flags.debug,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, workDir,
		logging.FieldFix, fix,
		logging.FieldDryRun, flags.dryRun,
		logging.FieldJobs, jobs,
	)

	result, err := runner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("run failed"), err)
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     format,
		Color:      color,
		WorkingDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}
	if err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesChecked, result.Stats.FilesChecked,
		logging.FieldErrors, result.Stats.Errors,
		logging.FieldWarnings, result.Stats.Warnings,
		logging.FieldFixed, result.Stats.Fixed,
	)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrIssuesFound
	}
	return nil
}
