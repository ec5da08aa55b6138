package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/Mr0grog/yaml-doctor/internal/ui/pretty"
	"github.com/Mr0grog/yaml-doctor/pkg/runner"
)

// bufWriterSize is the buffer size for report output.
const bufWriterSize = 64 * 1024

// TextReporter renders per-file issues and a trailing summary for
// terminals.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{opts: opts, styles: pretty.NewStyles(colorEnabled)}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	reported := 0
	for _, file := range result.Files {
		if file.Result == nil || len(file.Result.Issues) == 0 {
			continue
		}
		fmt.Fprint(bw, r.styles.FormatFileHeader(r.displayPath(file.Path)))
		for _, issue := range file.Result.Issues {
			fmt.Fprint(bw, r.styles.FormatIssue(issue))
			reported++
		}
		fmt.Fprintln(bw)
	}

	if reported > 0 {
		fmt.Fprint(bw, r.styles.Rule(r.opts.Writer))
	}
	fmt.Fprint(bw, r.styles.FormatSummary(result.Stats))

	if len(result.Unreadable) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, r.styles.Bold.Render("Unreadable files:"))
		for _, u := range result.Unreadable {
			fmt.Fprintf(bw, "  %s  %v\n", r.displayPath(u.Path), u.Err)
		}
	}

	return nil
}

// displayPath shortens a path relative to the working directory when
// that makes it shorter.
func (r *TextReporter) displayPath(path string) string {
	if r.opts.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(r.opts.WorkingDir, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return rel
}
