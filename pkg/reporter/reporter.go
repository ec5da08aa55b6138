// Package reporter formats run results for the terminal or machines.
package reporter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Mr0grog/yaml-doctor/pkg/runner"
)

// Format selects an output format.
type Format string

const (
	// FormatText is styled per-file terminal output.
	FormatText Format = "text"

	// FormatJSON is a machine-readable report.
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// Options configures a reporter.
type Options struct {
	// Writer receives the report, typically os.Stdout.
	Writer io.Writer

	// Format selects the output format.
	Format Format

	// Color controls colorized output: "auto", "always", "never".
	Color string

	// WorkingDir makes reported paths relative when possible.
	WorkingDir string
}

// DefaultOptions returns sensible reporter defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatText,
		Color:  "auto",
	}
}

// Reporter writes a formatted run result.
type Reporter interface {
	// Report renders result to the configured writer.
	Report(ctx context.Context, result *runner.Result) error
}

// New creates a Reporter for the options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}
