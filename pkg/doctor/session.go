package doctor

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Mr0grog/yaml-doctor/pkg/editor"
	"github.com/Mr0grog/yaml-doctor/pkg/yamlscan"
)

var (
	// tokensAfterStringRE matches text that may legitimately follow a
	// closing quote: end of input, or whitespace and then a token that
	// ends the scalar context.
	tokensAfterStringRE = regexp.MustCompile(`^($|\s*[:,\]}\n#])`)

	// templateRE matches an unquoted {{ variable }} substitution.
	templateRE = regexp.MustCompile(`^\{\{\s*\w+\s*\}\}`)

	// bracketStringRE matches a [...] group with no quotes inside,
	// followed by text that could not continue a flow sequence. Such a
	// value is probably a string, not a sequence.
	bracketStringRE = regexp.MustCompile(`^\[[^'"\]\n]*\][ \t]*[^\s:,\]}#]`)

	// entityAnchorRE matches anchors that look like HTML entities,
	// e.g. "copy;" from an unquoted "&copy;".
	entityAnchorRE = regexp.MustCompile(`^((#\d+)|(#x[0-9a-fA-F]+)|(\w+));$`)
)

// session is the state of one Check call: the working buffer the parser
// reads (always repaired so parsing can continue), the fixed buffer
// (repaired only when fixing was requested), and a position map for
// each so marks and fixes land in the right place.
type session struct {
	opts   Options
	logger *log.Logger

	stateEd *editor.StringEditor
	fixedEd *editor.StringEditor

	issues []*Issue
	seen   map[string]struct{}

	// thresholds record, per detector, the highest position already
	// handled. Open events repeat at a site when a node begins several
	// nested contexts; the thresholds keep each detector from firing
	// twice there.
	thresholds struct {
		quoted   int
		variable int
		atSign   int
		bracket  int
	}

	nodes []*nodeFrame
}

// nodeFrame pairs an open event with its close.
type nodeFrame struct {
	// origOpen is the open position translated to original coordinates.
	origOpen int

	// indent is the line indent captured at the open event.
	indent int

	// warnings collects deficient-indentation warnings raised while
	// this node was the innermost open node.
	warnings []*Issue
}

func newSession(src string, opts Options) *session {
	logger := opts.Logger
	if logger == nil && opts.Debug {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
		logger.SetLevel(log.DebugLevel)
	}
	s := &session{
		opts:    opts,
		logger:  logger,
		stateEd: editor.New(src),
		fixedEd: editor.New(src),
		seen:    make(map[string]struct{}),
	}
	s.thresholds.quoted = -1
	s.thresholds.variable = -1
	s.thresholds.atSign = -1
	s.thresholds.bracket = -1
	return s
}

// addIssue records an issue unless one with the same original position
// and reason already exists.
func (s *session) addIssue(level Level, reason string, mark editor.Mark) *Issue {
	key := fmt.Sprintf("%d\x00%s", mark.Position, reason)
	if _, dup := s.seen[key]; dup {
		return nil
	}
	s.seen[key] = struct{}{}
	issue := &Issue{Level: level, Reason: reason, Mark: mark, Filename: s.opts.Filename}
	s.issues = append(s.issues, issue)
	if s.logger != nil {
		s.logger.Debug("issue found",
			"level", level, "reason", reason,
			"line", mark.Line, "column", mark.Column)
	}
	return issue
}

// report records an issue at a position in the working buffer.
func (s *session) report(level Level, reason string, statePos int) *Issue {
	return s.addIssue(level, reason, s.stateEd.MarkOriginalPosition(statePos, s.opts.Filename))
}

// reportAtOriginal records an issue at a position in the original text.
func (s *session) reportAtOriginal(level Level, reason string, origPos int) *Issue {
	return s.addIssue(level, reason, s.stateEd.MarkAt(origPos, s.opts.Filename))
}

// repairAt splices identical text into the working buffer and, when
// fixing, into the fixed buffer at the translated position. The fixed
// buffer must be spliced first, while the working buffer's map can
// still translate the position.
func (s *session) repairAt(st *yamlscan.State, pos, remove int, insert string) {
	if s.opts.Fix {
		fp := s.fixedEd.CurrentPosition(s.stateEd.OriginalPosition(pos))
		s.fixedEd.Splice(fp, remove, insert)
	}
	s.stateEd.Splice(pos, remove, insert)
	st.Splice(pos, remove, insert)
}

// onOpen runs the per-site detectors against the next token.
func (s *session) onOpen(st *yamlscan.State) {
	s.nodes = append(s.nodes, &nodeFrame{
		origOpen: s.stateEd.OriginalPosition(st.Position),
		indent:   st.LineIndent,
	})

	start := findNextNonSpace(s.stateEd.Value(), st.Position)
	if start >= st.Length {
		return
	}

	switch s.stateEd.Value()[start] {
	case '\'', '"':
		if start > s.thresholds.quoted {
			s.thresholds.quoted = start
			s.checkQuoted(st, start, s.stateEd.Value()[start])
		}
	case '{':
		if start > s.thresholds.variable {
			s.checkTemplate(st, start)
		}
	case '@':
		if start > s.thresholds.atSign {
			s.thresholds.atSign = start
			s.checkAtSign(st, start)
		}
	case '[':
		if start > s.thresholds.bracket {
			s.checkBracket(st, start)
		}
	}
}

// onClose pops the node frame, checks anchors, and repairs deficient
// indentation inside a closing scalar.
func (s *session) onClose(_ *yamlscan.State, info yamlscan.CloseInfo) {
	var frame *nodeFrame
	if len(s.nodes) > 0 {
		frame = s.nodes[len(s.nodes)-1]
		s.nodes = s.nodes[:len(s.nodes)-1]
	}
	if frame == nil {
		return
	}

	if info.Anchor != "" && entityAnchorRE.MatchString(info.Anchor) {
		s.reportAtOriginal(LevelWarning,
			fmt.Sprintf("The anchor \"&%s\" looks like an HTML entity; if it is meant to be text, quote the value", info.Anchor),
			frame.origOpen)
	}

	if info.Kind == yamlscan.KindScalar && s.opts.Fix {
		for _, warning := range frame.warnings {
			s.padDeficientLine(frame, warning)
		}
	}
}

// onWarning records a recoverable parser warning and, for deficient
// indentation, remembers it on the innermost open node so the scalar's
// close can repair it.
func (s *session) onWarning(w *yamlscan.SyntaxError) {
	issue := s.report(LevelWarning, w.Reason, w.Position)
	if issue == nil {
		return
	}
	if w.Reason == "deficient indentation" && len(s.nodes) > 0 {
		top := s.nodes[len(s.nodes)-1]
		top.warnings = append(top.warnings, issue)
	}
}

// onParseError converts the scanner's terminating fault into an issue.
func (s *session) onParseError(perr *yamlscan.SyntaxError) {
	buf := s.stateEd.Value()
	pos := perr.Position
	if pos > len(buf) {
		pos = len(buf)
	}
	if strings.Contains(perr.Reason, "bad indentation") && mixedIndentLine(buf, pos) {
		s.report(LevelError, "line is indented with mixed spaces and tabs", pos)
		return
	}
	if pos < len(buf) && buf[pos] == '@' {
		// The at-sign detector already reported this site.
		return
	}
	s.report(LevelError, perr.Reason, pos)
}

// checkQuoted resolves the boundary of a quoted scalar: escapes inner
// unescaped quotes, closes strings with no end quote, then validates
// escape sequences in double quoted scalars.
func (s *session) checkQuoted(st *yamlscan.State, start int, quote byte) {
	guessable := quote == '"'
	unescaped := 0
	searchFrom := start + 1
	contentEnd := -1

	for {
		buf := s.stateEd.Value()
		pos, exact := guessQuotedEnd(buf, searchFrom, quote, !guessable, st.LineIndent)

		if exact {
			if pos == -1 || tokensAfterStringRE.MatchString(buf[pos+1:]) {
				contentEnd = pos
				break
			}
			// A quote inside the string that the author forgot to escape.
			issue := s.report(LevelError, "unescaped quote in quoted string", pos)
			escape := "'"
			if quote == '"' {
				escape = `\`
			}
			s.repairAt(st, pos, 0, escape)
			if s.opts.Fix && issue != nil {
				issue.Level = LevelFixed
			}
			unescaped++
			searchFrom = pos + 2
			continue
		}

		// The string never closes; end it at the guessed boundary. An
		// odd count of inner quotes means the opening quote was probably
		// one of a paired set, so open a fresh string and escape it.
		issue := s.report(LevelError, "quoted string has no end quote", pos)
		prefix := ""
		if unescaped%2 == 1 {
			prefix = `"\`
		}
		if prefix != "" {
			s.repairAt(st, start, 0, prefix)
		}
		s.repairAt(st, pos+len(prefix), 0, `"`)
		if s.opts.Fix && issue != nil {
			issue.Level = LevelFixed
		}
		contentEnd = pos + len(prefix)
		break
	}

	if quote == '"' && contentEnd >= 0 {
		s.validateEscapes(st, start+1, contentEnd)
	}
}

// validateEscapes checks backslash sequences in a double quoted range
// and deletes the backslash of each invalid one.
func (s *session) validateEscapes(st *yamlscan.State, from, to int) {
	i := from
	for i < to-1 {
		buf := s.stateEd.Value()
		if buf[i] != '\\' {
			i++
			continue
		}
		if n, ok := escapeLen(buf, i+1, to); ok {
			i += 1 + n
			continue
		}
		issue := s.report(LevelError,
			fmt.Sprintf("Invalid escape sequence: \"\\%c\"", buf[i+1]), i)
		s.repairAt(st, i, 1, "")
		if s.opts.Fix && issue != nil {
			issue.Level = LevelFixed
		}
		to--
	}
}

// simpleEscapeSet lists the single characters accepted after a
// backslash in a double quoted scalar.
const simpleEscapeSet = "0abt\tnvfre \"/\\N_LP\n\r"

// escapeLen returns the content length of the escape starting after a
// backslash at pos, and whether it is valid. Hex escapes require their
// full digit count before limit.
func escapeLen(buf string, pos, limit int) (int, bool) {
	if pos >= limit {
		return 0, false
	}
	c := buf[pos]
	if strings.IndexByte(simpleEscapeSet, c) >= 0 {
		return 1, true
	}
	var digits int
	switch c {
	case 'x':
		digits = 2
	case 'u':
		digits = 4
	case 'U':
		digits = 8
	default:
		return 0, false
	}
	if pos+1+digits > limit {
		return 0, false
	}
	for i := pos + 1; i <= pos+digits; i++ {
		if !isHexDigit(buf[i]) {
			return 0, false
		}
	}
	return 1 + digits, true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// checkTemplate flags an unquoted {{ variable }} substitution and
// wraps it in single quotes.
func (s *session) checkTemplate(st *yamlscan.State, start int) {
	match := templateRE.FindString(s.stateEd.Value()[start:])
	if match == "" {
		return
	}
	s.thresholds.variable = start
	issue := s.report(LevelWarning,
		fmt.Sprintf("Did you mean to substitute a variable? It must be quoted: '%s'", match),
		start)
	s.repairAt(st, start, 0, "'")
	s.repairAt(st, start+len(match)+1, 0, "'")
	if s.opts.Fix && issue != nil {
		issue.Level = LevelFixed
	}
}

// checkAtSign flags a scalar starting with '@' and quotes its span.
func (s *session) checkAtSign(st *yamlscan.State, start int) {
	issue := s.report(LevelWarning, "'@' cannot start any token", start)
	s.quoteSpan(st, start)
	if s.opts.Fix && issue != nil {
		issue.Level = LevelFixed
	}
}

// checkBracket flags a leading '[' that is probably the start of a
// string rather than a flow sequence, and quotes its span.
func (s *session) checkBracket(st *yamlscan.State, start int) {
	if !bracketStringRE.MatchString(s.stateEd.Value()[start:]) {
		return
	}
	s.thresholds.bracket = start
	issue := s.report(LevelError,
		"'[' cannot start a string; quote the value to use '[' in it", start)
	s.quoteSpan(st, start)
	if s.opts.Fix && issue != nil {
		issue.Level = LevelFixed
	}
}

// quoteSpan wraps the plain-scalar span starting at start in double
// quotes, escaping any double quotes already inside it.
func (s *session) quoteSpan(st *yamlscan.State, start int) {
	end := guessPlainEnd(s.stateEd.Value(), start, st.LineIndent)

	i := start
	for {
		pos, _ := guessQuotedEnd(s.stateEd.Value(), i, '"', true, st.LineIndent)
		if pos < 0 || pos >= end {
			break
		}
		s.repairAt(st, pos, 0, `\`)
		end++
		i = pos + 2
	}

	s.repairAt(st, start, 0, `"`)
	s.repairAt(st, end+1, 0, `"`)
}

// padDeficientLine grows the indent of a deficient continuation line in
// the fixed buffer to two columns past the scalar's own indent.
func (s *session) padDeficientLine(frame *nodeFrame, issue *Issue) {
	fixed := s.fixedEd.Value()
	fp := s.fixedEd.CurrentPosition(issue.Mark.Position)
	if fp > len(fixed) {
		fp = len(fixed)
	}
	lineStart := strings.LastIndexByte(fixed[:fp], '\n') + 1

	// The scalar's own first line is never padded.
	openFP := s.fixedEd.CurrentPosition(frame.origOpen)
	if lineStart <= openFP {
		return
	}

	indent := 0
	for lineStart+indent < len(fixed) && fixed[lineStart+indent] == ' ' {
		indent++
	}
	target := frame.indent + 2
	if indent >= target {
		return
	}

	s.fixedEd.Splice(lineStart, 0, strings.Repeat(" ", target-indent))
	issue.Level = LevelFixed
}

// findNextNonSpace skips spaces and tabs from pos.
func findNextNonSpace(buf string, pos int) int {
	for pos < len(buf) && (buf[pos] == ' ' || buf[pos] == '\t') {
		pos++
	}
	return pos
}

// mixedIndentLine reports whether the indentation of the line holding
// pos mixes spaces and tabs.
func mixedIndentLine(buf string, pos int) bool {
	lineStart := strings.LastIndexByte(buf[:pos], '\n') + 1
	sawSpace, sawTab := false, false
	for i := lineStart; i < len(buf); i++ {
		switch buf[i] {
		case ' ':
			sawSpace = true
		case '\t':
			sawTab = true
		default:
			return sawSpace && sawTab
		}
	}
	return sawSpace && sawTab
}
