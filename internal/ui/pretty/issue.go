package pretty

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Mr0grog/yaml-doctor/pkg/doctor"
	"github.com/Mr0grog/yaml-doctor/pkg/runner"
)

// FormatIssue renders one issue row: "LINE:COLUMN  LEVEL  REASON".
func (s *Styles) FormatIssue(issue *doctor.Issue) string {
	return fmt.Sprintf("  %s  %s  %s\n",
		s.Location.Render(issue.Mark.String()),
		s.FormatLevel(issue.Level),
		s.Message.Render(issue.Reason),
	)
}

// FormatLevel returns the styled level name.
func (s *Styles) FormatLevel(level doctor.Level) string {
	switch level {
	case doctor.LevelError:
		return s.Error.Render(string(level))
	case doctor.LevelWarning:
		return s.Warning.Render(string(level))
	case doctor.LevelFixed:
		return s.Fixed.Render(string(level))
	default:
		return string(level)
	}
}

// FormatFileHeader renders the path line that precedes a file's issues.
func (s *Styles) FormatFileHeader(path string) string {
	return s.FilePath.Render(path) + "\n"
}

// FormatSummary renders the trailing "N errors, M warnings, K fixed in
// F files" line.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	line := fmt.Sprintf("%s, %s, %s in %s",
		plural(stats.Errors, "error"),
		plural(stats.Warnings, "warning"),
		fmt.Sprintf("%d fixed", stats.Fixed),
		plural(stats.FilesChecked, "file"),
	)
	if stats.Errors > 0 {
		return s.Failure.Render(line) + "\n"
	}
	return s.Success.Render(line) + "\n"
}

// Rule renders a 40-column horizontal divider, narrowed to the terminal
// width when the writer is a terminal narrower than that.
func (s *Styles) Rule(writer io.Writer) string {
	width := 40
	if f, ok := writer.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && w < width {
			width = w
		}
	}
	return s.Dim.Render(strings.Repeat("─", width)) + "\n"
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
