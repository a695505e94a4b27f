package ir

import "fmt"

// ModelError reports a single malformed-IR finding: a dangling
// reference, a contradictory flag, or an out-of-range size. Validate
// collects these in a batch rather than stopping at the first one.
type ModelError struct {
	Group   string
	Field   string
	Message string
}

func (e *ModelError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Group, e.Message)
	}
	return fmt.Sprintf("%s.%s: %s", e.Group, e.Field, e.Message)
}

// ErrorList is a batch of ModelErrors, satisfying the error interface
// so a fatal Validate result can be returned and wrapped like any
// other error.
type ErrorList []*ModelError

func (l ErrorList) Error() string {
	if len(l) == 1 {
		return l[0].Error()
	}
	s := fmt.Sprintf("%d model errors:", len(l))
	for _, e := range l {
		s += "\n  " + e.Error()
	}
	return s
}
