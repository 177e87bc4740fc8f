// Package seeker implements the reference-walking engine: it interprets
// an AST reference expression (an Identifier or a LinkOperator chain)
// against a "data root" — a scope, a repository stack, or any *ast.Node — and invokes a caller-supplied visitor on each
// resolved target.
package seeker

import (
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/registry"
	"github.com/alusus/sppcore/internal/scope"
)

// Callback is invoked once per resolved candidate. It returns the Verb that
// tells the seeker whether to apply this operation's mutation and whether
// to keep visiting further candidates.
type Callback func(slot *Slot) Verb

// DataRoot is either a *scope.Repository or an *ast.Node. There is no
// exported marker interface: the seeker type-switches on the concrete type
// it's handed.
type DataRoot interface{}

type operation int

const (
	opSet operation = iota
	opRemove
	opForeach
)

// Seeker has no state of its own; it is a value type whose methods are pure
// functions of their arguments. A zero Seeker is ready to use.
type Seeker struct{}

// New returns a ready-to-use Seeker.
func New() *Seeker { return &Seeker{} }

// Set evaluates ref against root, invoking cb(slot) for every match and
// then once more with a "missing" slot when the walk was not stopped: for
// an Identifier, when nothing matched or the last callback returned a
// moving verb; for a LinkOperator, when a left-hand scope has no member of
// the right-hand name. A callback that performs on the missing slot causes
// a new Definition to be synthesized and appended to the deepest applicable
// scope.
func (s *Seeker) Set(ref *ast.Node, root DataRoot, cb Callback, flags Flags) (Verb, error) {
	return s.walk(opSet, ref, root, cb, flags)
}

// Remove evaluates ref against root, invoking cb(slot) for every existing
// match only; a callback that performs erases that Definition.
func (s *Seeker) Remove(ref *ast.Node, root DataRoot, cb Callback, flags Flags) (Verb, error) {
	return s.walk(opRemove, ref, root, cb, flags)
}

// Foreach evaluates ref against root read-only.
func (s *Seeker) Foreach(ref *ast.Node, root DataRoot, cb Callback, flags Flags) (Verb, error) {
	return s.walk(opForeach, ref, root, cb, flags)
}

func (s *Seeker) walk(op operation, ref *ast.Node, root DataRoot, cb Callback, flags Flags) (Verb, error) {
	if ref == nil {
		return Stop, newInvalidReference(ref, "nil reference expression")
	}
	switch ref.Tag {
	case ast.TagIdentifier:
		return s.identifier(op, ref, root, cb, flags)
	case ast.TagLinkOperator:
		return s.linkOperator(op, ref, root, cb, flags)
	case ast.TagBracket:
		if ref.Kind == "round" {
			return s.walk(op, ref.Operand, root, cb, flags)
		}
		return Stop, newInvalidReference(ref, "non-round bracket in reference expression")
	case ast.TagParamPass:
		// A ParamPass is only valid as a reference-expression leaf when it's
		// being used as an array/call target placeholder; the seeker itself
		// only needs to resolve its callee, leaving argument semantics to
		// the expression generator.
		return s.walk(op, ref.Callee, root, cb, flags)
	default:
		return Stop, newInvalidReference(ref, "reference expression must be an Identifier, LinkOperator, round Bracket, or ParamPass")
	}
}

func (s *Seeker) identifier(op operation, id *ast.Node, root DataRoot, cb Callback, flags Flags) (Verb, error) {
	switch r := root.(type) {
	case *scope.Repository:
		return s.identifierOverRepository(op, id, r, cb)
	case *ast.Node:
		return s.identifierOverNode(op, id, r, cb, flags)
	default:
		return Stop, newInvalidReference(id, "unsupported data root type")
	}
}

func (s *Seeker) identifierOverRepository(op operation, id *ast.Node, repo *scope.Repository, cb Callback) (Verb, error) {
	lastVerb := SkipAndMove
	matched := false
	for _, level := range repo.Levels() {
		if !level.IsScopeLike() {
			continue
		}
		idx := scope.BuildIndex(level)
		for _, def := range idx.Lookup(id.Text) {
			matched = true
			slot := &Slot{Definition: def}
			verb := cb(slot)
			lastVerb = verb
			slot.apply(op, verb, level, id.Text, id.Location)
			if !verb.Continues() {
				return verb, nil
			}
		}
	}
	if op == opSet && (!matched || lastVerb.Continues()) {
		slot := &Slot{}
		verb := cb(slot)
		slot.apply(op, verb, repo.Deepest(), id.Text, id.Location)
		return verb, nil
	}
	return lastVerb, nil
}

func (s *Seeker) identifierOverNode(op operation, id *ast.Node, root *ast.Node, cb Callback, flags Flags) (Verb, error) {
	lastVerb := SkipAndMove
	matched := false
	current := root
	for current != nil {
		if current.IsScopeLike() {
			idx := scope.BuildIndex(current)
			for _, def := range idx.Lookup(id.Text) {
				matched = true
				slot := &Slot{Definition: def}
				verb := cb(slot)
				lastVerb = verb
				slot.apply(op, verb, current, id.Text, id.Location)
				if !verb.Continues() {
					return verb, nil
				}
			}
		}
		if flags.Has(SkipOwners) {
			break
		}
		current = current.Owner
	}
	if op == opSet && (!matched || lastVerb.Continues()) && root.IsScopeLike() {
		slot := &Slot{}
		verb := cb(slot)
		slot.apply(op, verb, root, id.Text, id.Location)
		return verb, nil
	}
	return lastVerb, nil
}

func (s *Seeker) linkOperator(op operation, link *ast.Node, root DataRoot, cb Callback, flags Flags) (Verb, error) {
	if link.Second == nil || link.Second.Tag != ast.TagIdentifier {
		return Stop, newInvalidReference(link, "right-hand side of a link operator must be an Identifier")
	}
	name := link.Second.Text
	lastVerb := SkipAndMove

	_, err := s.Foreach(link.First, root, func(leftSlot *Slot) Verb {
		data, ok := leftSlot.Value()
		if !ok || data == nil {
			return SkipAndMove
		}
		if data.IsScopeLike() {
			idx := scope.BuildIndex(data)
			matches := idx.Lookup(name)
			if len(matches) == 0 && op != opSet {
				return SkipAndMove
			}
			if len(matches) == 0 {
				slot := &Slot{}
				verb := cb(slot)
				lastVerb = verb
				slot.apply(op, verb, data, name, link.Second.Location)
				if !verb.Continues() {
					return Stop
				}
				return SkipAndMove
			}
			for _, def := range matches {
				slot := &Slot{Definition: def}
				verb := cb(slot)
				lastVerb = verb
				slot.apply(op, verb, data, name, link.Second.Location)
				if !verb.Continues() {
					return Stop
				}
			}
			return SkipAndMove
		}
		if nm, found := registry.NamedMapOf(data); found {
			value, present := nm.GetMember(name)
			slot := &Slot{namedMap: nm, memberName: name, namedValue: value, namedFound: present}
			verb := cb(slot)
			lastVerb = verb
			slot.apply(op, verb, nil, name, link.Second.Location)
			if !verb.Continues() {
				return Stop
			}
			return SkipAndMove
		}
		return SkipAndMove
	}, flags)

	return lastVerb, err
}
