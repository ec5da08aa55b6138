package frontmatter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mr0grog/yaml-doctor/pkg/frontmatter"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		page     string
		wantMeta string
		wantBody string
	}{
		{
			name:     "no front matter",
			page:     "# Title\n\nJust some prose.\n",
			wantMeta: "",
			wantBody: "# Title\n\nJust some prose.\n",
		},
		{
			name:     "delimited block at start",
			page:     "---\ntitle: Hello\n---\n# Body\n",
			wantMeta: "---\ntitle: Hello\n",
			wantBody: "# Body\n",
		},
		{
			name:     "no closing divider",
			page:     "---\ntitle: Hello\nauthor: me\n",
			wantMeta: "---\ntitle: Hello\nauthor: me\n",
			wantBody: "",
		},
		{
			name:     "optional opening divider",
			page:     "title: Hello\ntags: [a, b]\n---\n# Body\n",
			wantMeta: "title: Hello\ntags: [a, b]\n",
			wantBody: "# Body\n",
		},
		{
			name:     "optional opening with leading comments",
			page:     "# generated\n\ntitle: x\n---\nbody\n",
			wantMeta: "# generated\n\ntitle: x\n",
			wantBody: "body\n",
		},
		{
			name:     "divider later but leading text is not yamlish",
			page:     "Some prose first.\n---\nmore prose\n",
			wantMeta: "",
			wantBody: "Some prose first.\n---\nmore prose\n",
		},
		{
			name:     "divider with trailing spaces",
			page:     "---  \ntitle: x\n---\t\nbody\n",
			wantMeta: "---  \ntitle: x\n",
			wantBody: "body\n",
		},
		{
			name:     "empty page",
			page:     "",
			wantMeta: "",
			wantBody: "",
		},
		{
			name:     "horizontal rule only in body position",
			page:     "intro\n\n---\n\noutro\n",
			wantMeta: "",
			wantBody: "intro\n\n---\n\noutro\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, body := frontmatter.Split(tt.page)
			assert.Equal(t, tt.wantMeta, meta, "meta")
			assert.Equal(t, tt.wantBody, body, "body")
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta string
		body string
		want string
	}{
		{
			name: "empty meta passes body through",
			meta: "",
			body: "# Body\n",
			want: "# Body\n",
		},
		{
			name: "meta with opening divider",
			meta: "---\ntitle: x\n",
			body: "body\n",
			want: "---\ntitle: x\n---\nbody\n",
		},
		{
			name: "meta without opening divider gains one",
			meta: "title: x\n",
			body: "body\n",
			want: "---\ntitle: x\n---\nbody\n",
		},
		{
			name: "meta without trailing newline gains one",
			meta: "---\ntitle: x",
			body: "body\n",
			want: "---\ntitle: x\n---\nbody\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, frontmatter.Join(tt.meta, tt.body))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	pages := []string{
		"",
		"plain body, no meta\n",
		"---\ntitle: Hello\n---\n# Body\n",
		"---\ntitle: Hello\nlist:\n  - a\n  - b\n---\n",
		"---\n---\nbody only\n",
	}

	for _, page := range pages {
		meta, body := frontmatter.Split(page)
		assert.Equal(t, page, frontmatter.Join(meta, body), "page %q", page)
	}
}

func TestRoundTripNormalizesLooseCloser(t *testing.T) {
	t.Parallel()

	// A closer with trailing whitespace still splits, but Join always
	// writes the canonical divider back.
	meta, body := frontmatter.Split("---\ntitle: x\n--- \t\nbody\n")
	assert.Equal(t, "---\ntitle: x\n", meta)
	assert.Equal(t, "body\n", body)
	assert.Equal(t, "---\ntitle: x\n---\nbody\n", frontmatter.Join(meta, body))
}

func FuzzRoundTrip(f *testing.F) {
	f.Add("---\ntitle: x\n---\nbody\n")
	f.Add("no meta at all\n")
	f.Add("---\na: 1\nb: 2\n---\n")
	f.Add("---\ntitle: x\n---  \nbody\n")

	f.Fuzz(func(t *testing.T, page string) {
		meta, body := frontmatter.Split(page)
		joined := frontmatter.Join(meta, body)

		// The round trip is guaranteed when front matter is absent, or
		// when it opens the page as a `---\n`-delimited block whose
		// closer is exactly `---\n`. Anything fuzzier (a missing or
		// whitespace-padded closer) may be normalized by Join.
		if meta == "" {
			if joined != page {
				t.Fatalf("Join(Split(%q)) = %q", page, joined)
			}
			return
		}
		closer := page[len(meta) : len(page)-len(body)]
		if strings.HasPrefix(page, "---\n") && closer == "---\n" && joined != page {
			t.Fatalf("Join(Split(%q)) = %q", page, joined)
		}
	})
}
