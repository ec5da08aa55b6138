// Package yamlscan is a SAX-style scanner for block YAML. It walks a
// document and reports node boundaries to a listener instead of building
// a value tree.
//
// The scanner is built for error-tolerant checking: the listener's Open
// callback may splice the input buffer in place (via State.Splice) and
// the scanner continues from the rewritten text. All positions are byte
// offsets into the current buffer.
package yamlscan

// Kind identifies the shape of a closed node.
type Kind int

const (
	// KindScalar is a plain, quoted, or block scalar node.
	KindScalar Kind = iota

	// KindMapping is a block or flow mapping.
	KindMapping

	// KindSequence is a block or flow sequence.
	KindSequence

	// KindAlias is an *alias reference.
	KindAlias
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// CloseInfo describes the node being closed.
type CloseInfo struct {
	// Kind is the node shape.
	Kind Kind

	// Anchor is the node's &anchor name, without the ampersand.
	Anchor string

	// Tag is the node's !tag text, without the leading bang.
	Tag string
}

// Callbacks receives scanner events. Any callback may be nil.
//
// Open fires when the scanner is about to compose a node; the state
// position may still rest on whitespace before the node's first token.
// Open can fire more than once at the same position when a node begins
// several nested contexts. Close fires when the node ends. Warning
// delivers recoverable faults the scanner parsed past.
type Callbacks struct {
	Open    func(st *State)
	Close   func(st *State, info CloseInfo)
	Warning func(w *SyntaxError)
}

// State is the scanner's cursor over the mutable input buffer.
type State struct {
	// Input is the buffer being scanned, terminated by a NUL sentinel
	// byte that is not part of the document.
	Input []byte

	// Position is the current byte offset into Input.
	Position int

	// Length is the document length, excluding the sentinel.
	Length int

	// LineIndent is the count of leading spaces on the current line.
	LineIndent int

	// lineStart is the offset of the first byte of the current line.
	lineStart int
}

// Splice replaces remove bytes at pos with insert. The scanner re-reads
// Input after every callback, so splices at or after Position take
// effect immediately. Splicing before Position is not supported.
func (s *State) Splice(pos, remove int, insert string) {
	if pos < 0 || remove < 0 || pos+remove > s.Length {
		panic("yamlscan: splice out of range")
	}
	buf := make([]byte, 0, len(s.Input)+len(insert)-remove)
	buf = append(buf, s.Input[:pos]...)
	buf = append(buf, insert...)
	buf = append(buf, s.Input[pos+remove:]...)
	s.Input = buf
	s.Length = len(buf) - 1
}

// Column returns the byte column of Position within the current line.
func (s *State) Column() int {
	return s.Position - s.lineStart
}

// Parse scans input and reports events to cb. It returns nil on success
// or a position-tagged *SyntaxError describing the first fault the
// scanner could not parse past.
func Parse(input []byte, cb Callbacks) (err *SyntaxError) {
	buf := make([]byte, len(input)+1)
	copy(buf, input)

	p := &parser{
		st: &State{Input: buf, Length: len(input)},
		cb: cb,
	}

	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			err = se
		}
	}()

	p.parseStream()
	return nil
}
