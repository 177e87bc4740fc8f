package seeker

import (
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/registry"
)

// Slot is what the visitor callback receives for each candidate: either an
// existing Definition (the common case), a capability-backed named-map
// member (the LinkOperator-over-non-Scope case), or nothing at all (the
// "missing" slot offered once on a Set that matched nothing).
type Slot struct {
	Definition *ast.Node // non-nil for a normal scope-Definition match

	namedMap   registry.NamedMap // non-nil for a capability-backed match
	memberName string
	namedValue *ast.Node
	namedFound bool

	newValue *ast.Node
	written  bool
}

// Value returns the slot's current content and whether it is present at
// all (false for the synthetic "missing" slot passed to a Set callback,
// and for a named-map slot whose member is absent).
func (s *Slot) Value() (*ast.Node, bool) {
	switch {
	case s.Definition != nil:
		return s.Definition.Target, true
	case s.namedMap != nil:
		return s.namedValue, s.namedFound
	default:
		return nil, false
	}
}

// Set records the value a Set callback wants written into this slot. It has
// no effect unless the callback's returned Verb also performs.
func (s *Slot) Set(v *ast.Node) {
	s.newValue = v
	s.written = true
}

// apply carries out the mutation implied by op, gated on the verb the
// callback returned: a non-performing verb leaves the slot untouched.
// owner is the scope that should receive a synthesized Definition when slot
// represents the Set-miss case; it is otherwise unused.
func (s *Slot) apply(op operation, verb Verb, owner *ast.Node, missingName string, missingLoc ast.Location) {
	if !verb.Performs() {
		return
	}
	switch op {
	case opSet:
		if !s.written {
			return
		}
		switch {
		case s.Definition != nil:
			s.Definition.SetTarget(s.newValue)
		case s.namedMap != nil:
			s.namedMap.SetMember(s.memberName, s.newValue)
		case owner != nil:
			owner.AppendChild(ast.NewDefinition(missingName, s.newValue, missingLoc))
		}
	case opRemove:
		if s.Definition != nil && owner != nil {
			owner.RemoveChild(s.Definition)
		}
	case opForeach:
		// read-only: performing has no effect.
	}
}
