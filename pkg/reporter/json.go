package reporter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Mr0grog/yaml-doctor/pkg/doctor"
	"github.com/Mr0grog/yaml-doctor/pkg/runner"
)

// JSONReporter renders a machine-readable report.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

type jsonIssue struct {
	Level  string `json:"level"`
	Reason string `json:"reason"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonFile struct {
	Path    string      `json:"path"`
	Written bool        `json:"written,omitempty"`
	Issues  []jsonIssue `json:"issues"`
}

type jsonUnreadable struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type jsonReport struct {
	Files      []jsonFile       `json:"files"`
	Unreadable []jsonUnreadable `json:"unreadable,omitempty"`
	Summary    runner.Stats     `json:"summary"`
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) error {
	report := jsonReport{Files: []jsonFile{}}
	if result != nil {
		for _, file := range result.Files {
			if file.Result == nil {
				continue
			}
			jf := jsonFile{Path: file.Path, Written: file.Result.Written, Issues: []jsonIssue{}}
			for _, issue := range file.Result.Issues {
				jf.Issues = append(jf.Issues, toJSONIssue(issue))
			}
			report.Files = append(report.Files, jf)
		}
		for _, u := range result.Unreadable {
			report.Unreadable = append(report.Unreadable, jsonUnreadable{Path: u.Path, Error: u.Err.Error()})
		}
		report.Summary = result.Stats
	}

	enc := json.NewEncoder(r.opts.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func toJSONIssue(issue *doctor.Issue) jsonIssue {
	return jsonIssue{
		Level:  string(issue.Level),
		Reason: issue.Reason,
		Line:   issue.Mark.Line,
		Column: issue.Mark.Column,
	}
}
