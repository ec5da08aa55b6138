package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr0grog/yaml-doctor/pkg/doctor"
	"github.com/Mr0grog/yaml-doctor/pkg/editor"
	"github.com/Mr0grog/yaml-doctor/pkg/reporter"
	"github.com/Mr0grog/yaml-doctor/pkg/runner"
)

func sampleResult() *runner.Result {
	issue := &doctor.Issue{
		Level:  doctor.LevelError,
		Reason: "unescaped quote in quoted string",
		Mark:   editor.Mark{Position: 13, Line: 0, Column: 13},
	}
	warn := &doctor.Issue{
		Level:  doctor.LevelWarning,
		Reason: "'@' cannot start any token",
		Mark:   editor.Mark{Position: 10, Line: 2, Column: 10},
	}
	res := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/bad.yaml", Result: &doctor.Result{Issues: []*doctor.Issue{issue, warn}}},
			{Path: "/work/ok.yaml", Result: &doctor.Result{}},
		},
		Unreadable: []runner.UnreadableFile{
			{Path: "/work/gone.yaml", Err: errors.New("file does not exist")},
		},
	}
	res.Stats = runner.Stats{
		FilesChecked:    2,
		FilesWithIssues: 1,
		Errors:          1,
		Warnings:        1,
	}
	return res
}

func TestTextReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatText, Color: "never"})
	require.NoError(t, err)

	require.NoError(t, rep.Report(context.Background(), sampleResult()))
	out := buf.String()

	assert.Contains(t, out, "/work/bad.yaml")
	assert.Contains(t, out, "0:13  error  unescaped quote in quoted string")
	assert.Contains(t, out, "2:10  warning  '@' cannot start any token")
	assert.NotContains(t, out, "/work/ok.yaml")
	assert.Contains(t, out, "1 error, 1 warning, 0 fixed in 2 files")
	assert.Contains(t, out, "Unreadable files:")
	assert.Contains(t, out, "/work/gone.yaml")
}

func TestTextReportRelativePaths(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:     &buf,
		Color:      "never",
		WorkingDir: "/work",
	})
	require.NoError(t, rep.Report(context.Background(), sampleResult()))
	assert.Contains(t, buf.String(), "bad.yaml\n")
	assert.NotContains(t, buf.String(), "/work/bad.yaml")
}

func TestTextReportSummaryPlurals(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})
	res := &runner.Result{}
	res.Stats = runner.Stats{FilesChecked: 1, Fixed: 3}
	require.NoError(t, rep.Report(context.Background(), res))
	assert.Contains(t, buf.String(), "0 errors, 0 warnings, 3 fixed in 1 file")
}

func TestJSONReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON})
	require.NoError(t, err)
	require.NoError(t, rep.Report(context.Background(), sampleResult()))

	var decoded struct {
		Files []struct {
			Path   string `json:"path"`
			Issues []struct {
				Level  string `json:"level"`
				Reason string `json:"reason"`
				Line   int    `json:"line"`
				Column int    `json:"column"`
			} `json:"issues"`
		} `json:"files"`
		Unreadable []struct {
			Path string `json:"path"`
		} `json:"unreadable"`
		Summary struct {
			Errors   int `json:"Errors"`
			Warnings int `json:"Warnings"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Files, 2)
	require.Len(t, decoded.Files[0].Issues, 2)
	assert.Equal(t, "error", decoded.Files[0].Issues[0].Level)
	assert.Equal(t, 13, decoded.Files[0].Issues[0].Column)
	require.Len(t, decoded.Unreadable, 1)
	assert.Equal(t, 1, decoded.Summary.Errors)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "text", "json"} {
		_, err := reporter.ParseFormat(name)
		assert.NoError(t, err, "format %q", name)
	}
	_, err := reporter.ParseFormat("sarif")
	assert.Error(t, err)
}
