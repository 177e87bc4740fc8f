// Package notice implements the core's user-level diagnostics channel: a
// Store that accumulates Notices and holds a nested stack of prefix source
// locations for macro/inclusion context.
package notice

import (
	"fmt"

	"github.com/alusus/sppcore/internal/ast"
)

// Kind enumerates the notice vocabulary.
type Kind string

const (
	KindUnsupportedOperation  Kind = "UnsupportedOperation"
	KindInvalidOperation      Kind = "InvalidOperation"
	KindInvalidReference      Kind = "InvalidReference"
	KindInvalidTypeMember     Kind = "InvalidTypeMember"
	KindUnknownSymbol         Kind = "UnknownSymbol"
	KindNoCalleeMatch         Kind = "NoCalleeMatch"
	KindNotImplicitlyCastable Kind = "NotImplicitlyCastable"
	KindInvalidCast           Kind = "InvalidCast"
)

// Severity classifies how serious a Notice is. The core only ever raises
// Error-severity notices itself; Warning/Info are reserved for callers
// layering additional checks (e.g. a linting pass) on top of the core.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "error"
	}
}

// Notice is a single user-facing diagnostic.
type Notice struct {
	Kind     Kind
	Severity Severity
	Message  string
	Location ast.Location
	Prefix   []ast.Location // the push-location stack active when Add was called
}

func (n Notice) String() string {
	return fmt.Sprintf("%s: [%s] %s (at %s)", n.Severity, n.Kind, n.Message, n.Location)
}

// Store accumulates Notices and maintains the nested prefix-location
// stack; pushes and pops must stay balanced on all exit paths.
type Store struct {
	notices []Notice
	stack   []ast.Location
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// PushLocation pushes a prefix location, e.g. when entering a macro
// expansion or an included module, onto the nested stack.
func (s *Store) PushLocation(loc ast.Location) {
	s.stack = append(s.stack, loc)
}

// PopLocation pops the most recently pushed prefix location. Popping an
// empty stack is a programmer error and panics.
func (s *Store) PopLocation() {
	if len(s.stack) == 0 {
		panic("notice: PopLocation called on empty location stack")
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// StackDepth reports the current nested-location stack depth, used by tests
// asserting the push/pop balance invariant survives any lowering attempt.
func (s *Store) StackDepth() int {
	return len(s.stack)
}

// Add appends a Notice at the given location and kind, capturing the
// current prefix-location stack.
func (s *Store) Add(kind Kind, severity Severity, loc ast.Location, format string, args ...interface{}) {
	prefix := make([]ast.Location, len(s.stack))
	copy(prefix, s.stack)
	s.notices = append(s.notices, Notice{
		Kind:     kind,
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
		Prefix:   prefix,
	})
}

// Notices returns all accumulated notices in emission order.
func (s *Store) Notices() []Notice {
	return s.notices
}

// HasErrors reports whether any accumulated notice is Error severity.
func (s *Store) HasErrors() bool {
	for _, n := range s.notices {
		if n.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of accumulated notices.
func (s *Store) Len() int { return len(s.notices) }

// Convenience constructors for the core's own error-channel policies:
// each always reports at Error severity, since the core never emits
// Warning/Info notices about its own subjects.

func (s *Store) UnknownSymbol(loc ast.Location, name string) {
	s.Add(KindUnknownSymbol, SeverityError, loc, "unknown symbol %q", name)
}

func (s *Store) NoCalleeMatch(loc ast.Location, name string) {
	s.Add(KindNoCalleeMatch, SeverityError, loc, "no matching overload for %q", name)
}

func (s *Store) UnsupportedOperation(loc ast.Location, detail string) {
	s.Add(KindUnsupportedOperation, SeverityError, loc, "unsupported operation: %s", detail)
}

func (s *Store) InvalidTypeMember(loc ast.Location, member string) {
	s.Add(KindInvalidTypeMember, SeverityError, loc, "invalid type member %q", member)
}

func (s *Store) NotImplicitlyCastable(loc ast.Location, from, to string) {
	s.Add(KindNotImplicitlyCastable, SeverityError, loc, "%s is not implicitly castable to %s", from, to)
}

func (s *Store) InvalidCast(loc ast.Location, from, to string) {
	s.Add(KindInvalidCast, SeverityError, loc, "cannot cast %s to %s", from, to)
}

func (s *Store) InvalidReference(loc ast.Location, detail string) {
	s.Add(KindInvalidReference, SeverityError, loc, "invalid reference: %s", detail)
}
