package doctor

import (
	"fmt"
	"unicode/utf8"
)

// scanNonPrintables removes the code points YAML 1.2 forbids before the
// parser ever sees the buffer. Each occurrence is reported; the working
// buffer always loses the character (no parser tolerates it), while the
// fixed buffer keeps it unless removal was requested.
func (s *session) scanNonPrintables() {
	src := s.stateEd.Original()
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])

		bad := false
		code := r
		if r == utf8.RuneError && size == 1 {
			// Invalid UTF-8, including stray surrogate halves.
			bad = true
			code = rune(src[i])
		} else if isNonPrintable(r) {
			bad = true
		}

		if !bad {
			i += size
			continue
		}

		issue := s.reportAtOriginal(LevelError,
			fmt.Sprintf("The non-printable character %s is not allowed in YAML", charCode(code)), i)

		if s.opts.Fix && !s.opts.KeepInvalidCharacters {
			s.fixedEd.Splice(s.fixedEd.CurrentPosition(i), size, "")
			if issue != nil {
				issue.Level = LevelFixed
			}
		}
		s.stateEd.Splice(s.stateEd.CurrentPosition(i), size, "")
		i += size
	}
}

// isNonPrintable reports whether r is outside the YAML 1.2 printable
// character set.
func isNonPrintable(r rune) bool {
	switch {
	case r <= 0x08:
		return true
	case r == 0x0B || r == 0x0C:
		return true
	case r >= 0x0E && r <= 0x1F:
		return true
	case r >= 0x7F && r <= 0x84:
		return true
	case r >= 0x86 && r <= 0x9F:
		return true
	case r >= 0xD800 && r <= 0xDFFF:
		return true
	case r == 0xFFFE || r == 0xFFFF:
		return true
	default:
		return false
	}
}

// charCode formats a code point the way YAML spec text does: #x08,
// #x2028, and so on.
func charCode(r rune) string {
	if r <= 0xFF {
		return fmt.Sprintf("#x%02X", r)
	}
	return fmt.Sprintf("#x%04X", r)
}
