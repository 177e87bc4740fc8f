package seeker

import "github.com/alusus/sppcore/internal/ast"

// TrySet sets the first resolved (or synthesized) slot of ref to value and
// reports whether anything was written.
func TrySet(s *Seeker, ref *ast.Node, root DataRoot, value *ast.Node) bool {
	performed := false
	s.Set(ref, root, func(slot *Slot) Verb {
		slot.Set(value)
		performed = true
		return PerformAndStop
	}, NoFlags)
	return performed
}

// TryGet returns the first value ref resolves to against root, if any.
func TryGet(s *Seeker, ref *ast.Node, root DataRoot) (*ast.Node, bool) {
	var found *ast.Node
	var ok bool
	s.Foreach(ref, root, func(slot *Slot) Verb {
		found, ok = slot.Value()
		return Stop
	}, NoFlags)
	return found, ok
}

// TryRemove removes the first resolved match of ref, reporting whether
// anything was removed.
func TryRemove(s *Seeker, ref *ast.Node, root DataRoot) bool {
	removed := false
	s.Remove(ref, root, func(slot *Slot) Verb {
		if slot.Definition == nil {
			return Stop
		}
		removed = true
		return PerformAndStop
	}, NoFlags)
	return removed
}
