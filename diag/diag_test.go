package diag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntriesGroupsByGroupName(t *testing.T) {
	var c Channel
	c.Warnf("post", "missing threshold")
	c.Errorf("", "dangling reference")
	c.Warnf("mid", "no event code")

	entries := c.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, "", entries[0].Group)
	require.Equal(t, "mid", entries[1].Group)
	require.Equal(t, "post", entries[2].Group)
}

func TestEntriesPreservesEmissionOrderWithinGroup(t *testing.T) {
	var c Channel
	c.Warnf("post", "first")
	c.Warnf("post", "second")

	entries := c.Entries()
	require.Equal(t, "first", entries[0].Message)
	require.Equal(t, "second", entries[1].Message)
}

func TestHasErrors(t *testing.T) {
	var c Channel
	require.False(t, c.HasErrors())
	c.Warnf("g", "just a warning")
	require.False(t, c.HasErrors())
	c.Errorf("g", "fatal")
	require.True(t, c.HasErrors())
	require.Equal(t, 2, c.Len())
}

func TestEntryString(t *testing.T) {
	require.Equal(t, "warning: pop: oops", Entry{Severity: Warning, Group: "pop", Message: "oops"}.String())
	require.Equal(t, "error: oops", Entry{Severity: Error, Message: "oops"}.String())
}
