// Package editor provides a string editor that records every splice it
// applies and can translate positions between the original text and the
// edited text in either direction.
package editor

// Edit records the displacement introduced by splices at or before a
// position in the current text. Size is cumulative: it is the total
// number of bytes by which positions at or after Position have shifted
// relative to the original text.
type Edit struct {
	// Position is a byte offset into the current text.
	Position int

	// Size is the accumulated displacement of positions >= Position.
	Size int
}

// StringEditor tracks edits to a string so that positions can be mapped
// between the original and current views of the text.
//
// All positions are zero-indexed byte offsets. Splice positions refer to
// the current text; OriginalPosition translates current to original and
// CurrentPosition translates original to current.
type StringEditor struct {
	original string
	value    string
	edits    []Edit
}

// New creates a StringEditor over src. The current value starts equal to
// the original.
func New(src string) *StringEditor {
	return &StringEditor{original: src, value: src}
}

// Original returns the unedited source text.
func (e *StringEditor) Original() string { return e.original }

// Value returns the current text with all splices applied.
func (e *StringEditor) Value() string { return e.value }

// Edits returns the recorded edit list, ordered by position.
func (e *StringEditor) Edits() []Edit { return e.edits }

// Splice replaces remove bytes at pos in the current text with insert.
// Edits whose position falls inside the removed span are absorbed into
// the new edit; edits past the span shift by the length delta.
func (e *StringEditor) Splice(pos, remove int, insert string) {
	if pos < 0 || remove < 0 || pos+remove > len(e.value) {
		panic("editor: splice out of range")
	}

	delta := len(insert) - remove
	e.value = e.value[:pos] + insert + e.value[pos+remove:]

	// Accumulated displacement from edits strictly before pos.
	base := 0
	i := 0
	for i < len(e.edits) && e.edits[i].Position < pos {
		base = e.edits[i].Size
		i++
	}

	// Absorb edits inside the removed span. An existing edit at exactly
	// pos merges with the new one so positions stay unique.
	size := base + delta
	j := i
	for j < len(e.edits) && (e.edits[j].Position < pos+remove || e.edits[j].Position == pos) {
		size = e.edits[j].Size + delta
		j++
	}

	merged := make([]Edit, 0, len(e.edits)-(j-i)+1)
	merged = append(merged, e.edits[:i]...)
	merged = append(merged, Edit{Position: pos, Size: size})
	for _, ed := range e.edits[j:] {
		merged = append(merged, Edit{Position: ed.Position + delta, Size: ed.Size + delta})
	}
	e.edits = merged
}

// Insert splices insert into the current text at pos without removing
// anything.
func (e *StringEditor) Insert(pos int, insert string) {
	e.Splice(pos, 0, insert)
}

// Delete removes length bytes at pos from the current text.
func (e *StringEditor) Delete(pos, length int) {
	e.Splice(pos, length, "")
}

// OriginalPosition translates a position in the current text to the
// corresponding position in the original text.
func (e *StringEditor) OriginalPosition(p int) int {
	res := p
	for _, ed := range e.edits {
		if ed.Position > p {
			break
		}
		res = p - ed.Size
	}
	return res
}

// CurrentPosition translates a position in the original text to the
// corresponding position in the current text.
//
// The scan cannot stop at the first edit past op: an edit that was
// recorded later in original space can sit before the translated
// position once earlier splices have grown the text, so the walk keeps
// absorbing edits until one lies beyond the running result. A position
// inside text that a splice removed maps to the point of that splice.
func (e *StringEditor) CurrentPosition(op int) int {
	p := op
	for _, ed := range e.edits {
		if ed.Position > p {
			break
		}
		p = op + ed.Size
		if p < ed.Position {
			p = ed.Position
		}
	}
	return p
}
