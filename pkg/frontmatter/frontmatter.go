// Package frontmatter separates YAML front-matter from the body of a
// Markdown document and joins the two back together after fixing.
package frontmatter

import (
	"regexp"
	"strings"
)

// dividerRE matches a front-matter divider line.
var dividerRE = regexp.MustCompile(`(?m)^---[ \t]*\r?$`)

// fuzzyYAMLRE is a loose test for "this region is probably YAML": any
// number of blank or comment lines followed by something that looks
// like a mapping key. Used only when the opening divider is missing.
var fuzzyYAMLRE = regexp.MustCompile(`\A(---\n)?(\s*(#.*)?\n)*\s*[^#\s:]+:`)

// Split separates page into its YAML front-matter and Markdown body.
//
// When the front-matter opens with a `---` line at the very start of the
// page, that line is kept inside meta: the YAML parser treats it as a
// document start marker, and keeping it means positions reported against
// meta line up with positions in the page.
func Split(page string) (meta, body string) {
	loc := dividerRE.FindStringIndex(page)
	if loc == nil {
		return "", page
	}

	if loc[0] == 0 {
		rest := afterLineBreak(page, loc[1])
		next := dividerRE.FindStringIndex(page[rest:])
		if next == nil {
			// No closing divider: the whole page is front-matter.
			return page, ""
		}
		return page[:rest+next[0]], page[afterLineBreak(page, rest+next[1]):]
	}

	// The opening divider is optional. Only treat the region before the
	// first divider as front-matter if it plausibly is YAML.
	if fuzzyYAMLRE.MatchString(page[:loc[0]]) {
		return page[:loc[0]], page[afterLineBreak(page, loc[1]):]
	}

	return "", page
}

// Join reassembles a page from front-matter and body. Empty meta yields
// the body unchanged; otherwise meta is normalized to open with a `---`
// line and a closing divider is placed between the two parts.
func Join(meta, markdown string) string {
	if meta == "" {
		return markdown
	}
	if !startsWithDivider(meta) {
		meta = "---\n" + meta
	}
	if !strings.HasSuffix(meta, "\n") {
		meta += "\n"
	}
	return meta + "---\n" + markdown
}

// startsWithDivider reports whether the first line of s is a divider.
func startsWithDivider(s string) bool {
	loc := dividerRE.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}

// afterLineBreak returns the offset just past the line break at end, or
// end itself at end-of-input.
func afterLineBreak(page string, end int) int {
	if end < len(page) && page[end] == '\n' {
		return end + 1
	}
	return end
}
