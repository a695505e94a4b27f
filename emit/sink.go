// Package emit implements the append-only text sink the rest of the
// generator writes through: plain text, braced scopes, and labelled
// brackets whose open and close calls may be textually far apart (a
// guard opened inside one control-flow layer and closed outside the
// user-fragment emission that follows it).
package emit

import (
	"fmt"
	"strings"
)

// Sink is an append-only text buffer with a scope stack. It carries
// no other state: fragment strings borrowed from the IR are never
// mutated, only copied into the buffer.
type Sink struct {
	buf    strings.Builder
	scopes int
	labels map[int]int // tag -> open count, for balance checking
}

func NewSink() *Sink {
	return &Sink{labels: map[int]int{}}
}

// WriteString appends text verbatim.
func (s *Sink) WriteString(text string) {
	s.buf.WriteString(text)
}

// Printf appends formatted text verbatim.
func (s *Sink) Printf(format string, args ...any) {
	fmt.Fprintf(&s.buf, format, args...)
}

// Line appends text followed by a newline.
func (s *Sink) Line(text string) {
	s.buf.WriteString(text)
	s.buf.WriteByte('\n')
}

// OpenScope emits `{` and pushes the scope stack.
func (s *Sink) OpenScope() {
	s.buf.WriteString("{\n")
	s.scopes++
}

// CloseScope emits `}` and pops the scope stack. It panics on
// underflow: an unbalanced scope is a programming error in the
// emitter, not a user-facing one (spec.md §7).
func (s *Sink) CloseScope() {
	if s.scopes == 0 {
		panic("emit: CloseScope called with no open scope")
	}
	s.scopes--
	s.buf.WriteString("}\n")
}

// OpenLabel opens a labelled bracket keyed by tag, for guards whose
// open and close are textually far apart within the same function.
func (s *Sink) OpenLabel(tag int, text string) {
	s.buf.WriteString(text)
	s.labels[tag]++
}

// CloseLabel closes the labelled bracket for tag. It panics if tag was
// never opened or is already balanced — a mismatched tag is a
// programming error.
func (s *Sink) CloseLabel(tag int, text string) {
	if s.labels[tag] <= 0 {
		panic(fmt.Sprintf("emit: CloseLabel(%d) with no matching OpenLabel", tag))
	}
	s.labels[tag]--
	s.buf.WriteString(text)
}

// Balanced reports whether every opened scope and labelled bracket has
// been closed. The driver calls this at the end of each pass/file.
func (s *Sink) Balanced() bool {
	if s.scopes != 0 {
		return false
	}
	for _, n := range s.labels {
		if n != 0 {
			return false
		}
	}
	return true
}

// String returns the accumulated text.
func (s *Sink) String() string {
	return s.buf.String()
}

// Bytes returns the accumulated text as a byte slice, for writing to a file.
func (s *Sink) Bytes() []byte {
	return []byte(s.buf.String())
}
