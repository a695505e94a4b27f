package emit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeBalance(t *testing.T) {
	s := NewSink()
	s.WriteString("void f()\n")
	s.OpenScope()
	s.Line("int x = 0;")
	s.OpenScope()
	s.Line("x++;")
	s.CloseScope()
	s.CloseScope()
	require.True(t, s.Balanced())
	require.Contains(t, s.String(), "{\n")
}

func TestCloseScopeUnderflowPanics(t *testing.T) {
	s := NewSink()
	require.Panics(t, func() { s.CloseScope() })
}

func TestLabelledBracketsPairByTag(t *testing.T) {
	s := NewSink()
	s.OpenLabel(2041, "if (cond) {\n")
	s.WriteString("body();\n")
	s.CloseLabel(2041, "}\n")
	require.True(t, s.Balanced())
}

func TestLabelledBracketMismatchPanics(t *testing.T) {
	s := NewSink()
	s.OpenLabel(29, "if (cond) {\n")
	require.Panics(t, func() { s.CloseLabel(30, "}\n") })
}

func TestUnbalancedLabelDetected(t *testing.T) {
	s := NewSink()
	s.OpenLabel(1, "if (x) {\n")
	require.False(t, s.Balanced())
}
