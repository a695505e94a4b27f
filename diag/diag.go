// Package diag is the generator's diagnostic channel: a stand-in for
// the stderr-equivalent output the spec calls for, structured enough
// that an embedder can collect it instead of only seeing printed text.
package diag

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/slices"
)

type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Entry is one diagnostic: a severity, the group it concerns (may be
// empty for generator-wide issues), and a message.
type Entry struct {
	Severity Severity
	Group    string
	Message  string
}

func (e Entry) String() string {
	if e.Group == "" {
		return fmt.Sprintf("%s: %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Severity, e.Group, e.Message)
}

// Channel collects diagnostics emitted during generation. The zero
// value is ready to use.
type Channel struct {
	entries []Entry
}

func (c *Channel) Warnf(group, format string, args ...any) {
	c.entries = append(c.entries, Entry{Severity: Warning, Group: group, Message: fmt.Sprintf(format, args...)})
}

func (c *Channel) Errorf(group, format string, args ...any) {
	c.entries = append(c.entries, Entry{Severity: Error, Group: group, Message: fmt.Sprintf(format, args...)})
}

// Entries returns the collected diagnostics grouped by the neuron or
// synapse group they concern, generator-wide entries first, so a CLI
// report reads one group at a time rather than interleaved by emission
// order. Within a group, order of emission is preserved.
func (c *Channel) Entries() []Entry {
	sorted := slices.Clone(c.entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int { return cmp.Compare(a.Group, b.Group) })
	return sorted
}

func (c *Channel) HasErrors() bool {
	for _, e := range c.entries {
		if e.Severity == Error {
			return true
		}
	}
	return false
}

func (c *Channel) Len() int { return len(c.entries) }
