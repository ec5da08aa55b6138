package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessPlainEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		start  int
		indent int
		want   int
	}{
		{
			name:  "ends at input end",
			input: "plain value",
			want:  11,
		},
		{
			name:  "ends before comment",
			input: "value  # trailing",
			want:  5,
		},
		{
			name:  "ends at colon space",
			input: "key: value",
			want:  3,
		},
		{
			name:  "colon without space is content",
			input: "a:b c",
			want:  5,
		},
		{
			name:  "newline ends it",
			input: "one\ntwo: 1",
			want:  3,
		},
		{
			name:   "indented continuation line",
			input:  "one\n  two\nnext: 1",
			indent: 0,
			want:   9,
		},
		{
			name:   "continuation needs indent past the node",
			input:  "one\n  two\nnext: 1",
			indent: 2,
			want:   3,
		},
		{
			name:  "trailing spaces trimmed",
			input: "word   \nnope",
			want:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, guessPlainEnd(tt.input, tt.start, tt.indent))
		})
	}
}

func TestGuessQuotedEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		start     int
		quote     byte
		exact     bool
		indent    int
		wantPos   int
		wantExact bool
	}{
		{
			name:      "single quote found",
			input:     "it's",
			quote:     '\'',
			exact:     true,
			wantPos:   2,
			wantExact: true,
		},
		{
			name:      "doubled single quote is an escape",
			input:     "it''s done",
			quote:     '\'',
			exact:     true,
			wantPos:   -1,
			wantExact: true,
		},
		{
			name:      "double quote with even backslashes",
			input:     `a\\" rest`,
			quote:     '"',
			exact:     true,
			wantPos:   3,
			wantExact: true,
		},
		{
			name:      "escaped double quote skipped",
			input:     `a\"b" rest`,
			quote:     '"',
			exact:     true,
			wantPos:   4,
			wantExact: true,
		},
		{
			name:      "exact exhaustion",
			input:     "no quotes here",
			quote:     '"',
			exact:     true,
			wantPos:   -1,
			wantExact: true,
		},
		{
			name:      "inexact exhaustion",
			input:     "no quotes here",
			quote:     '"',
			exact:     false,
			wantPos:   14,
			wantExact: false,
		},
		{
			name:      "next line looks like a mapping key",
			input:     "no end\nnext: 1",
			quote:     '"',
			exact:     false,
			indent:    0,
			wantPos:   6,
			wantExact: false,
		},
		{
			name:      "next line looks like a sequence item",
			input:     "no end\n- item\n",
			quote:     '"',
			exact:     false,
			indent:    0,
			wantPos:   6,
			wantExact: false,
		},
		{
			name:      "deeper key line is a continuation",
			input:     "no end\n    deep: 1\nplain \" done",
			quote:     '"',
			exact:     false,
			indent:    0,
			wantPos:   25,
			wantExact: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos, exact := guessQuotedEnd(tt.input, tt.start, tt.quote, tt.exact, tt.indent)
			assert.Equal(t, tt.wantPos, pos)
			assert.Equal(t, tt.wantExact, exact)
		})
	}
}
