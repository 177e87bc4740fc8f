package ast

import "fmt"

// Location marks a node's position in source text. Outer is set when the
// node was produced by macro expansion and points back to the invocation
// site, so diagnostics can report the full expansion chain.
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Outer     *Location
}

func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	s := fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
	if l.Outer != nil {
		s += " (expanded from " + l.Outer.String() + ")"
	}
	return s
}

// IsZero reports whether the location carries no position information.
func (l Location) IsZero() bool {
	return l.File == "" && l.StartLine == 0 && l.StartCol == 0
}
