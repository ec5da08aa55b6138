package pretty_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mr0grog/yaml-doctor/internal/ui/pretty"
	"github.com/Mr0grog/yaml-doctor/pkg/doctor"
	"github.com/Mr0grog/yaml-doctor/pkg/editor"
	"github.com/Mr0grog/yaml-doctor/pkg/runner"
)

func TestFormatIssuePlain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	issue := &doctor.Issue{
		Level:  doctor.LevelError,
		Reason: "quoted string has no end quote",
		Mark:   editor.Mark{Line: 4, Column: 17},
	}
	assert.Equal(t, "  4:17  error  quoted string has no end quote\n", styles.FormatIssue(issue))
}

func TestFormatLevel(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatLevel(doctor.LevelError))
	assert.Equal(t, "warning", styles.FormatLevel(doctor.LevelWarning))
	assert.Equal(t, "fixed", styles.FormatLevel(doctor.LevelFixed))
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	stats := runner.Stats{Errors: 2, Warnings: 1, Fixed: 0, FilesChecked: 4}
	assert.Equal(t, "2 errors, 1 warning, 0 fixed in 4 files\n", styles.FormatSummary(stats))

	stats = runner.Stats{Errors: 0, Warnings: 0, Fixed: 5, FilesChecked: 1}
	assert.Equal(t, "0 errors, 0 warnings, 5 fixed in 1 file\n", styles.FormatSummary(stats))
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
	// A plain buffer is not a TTY.
	assert.False(t, pretty.IsColorEnabled("auto", &buf))
}
