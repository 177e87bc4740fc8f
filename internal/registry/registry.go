// Package registry implements runtime capability lookup by tag, so the
// seeker can ask an arbitrary resolved value "do you support named-member
// access" without a static Go type assertion on every
// concrete type it might encounter.
package registry

import "github.com/alusus/sppcore/internal/ast"

// ID names a capability interface. Values are opaque outside this package;
// callers compare them for equality only.
type ID string

// NamedMapID is the capability the seeker's LinkOperator case probes for
// when its left-hand operand resolves to something other than a Scope.
const NamedMapID ID = "NamedMap"

// Capability is any value returned by Provider.Interface; callers type-
// assert it to the interface named by the ID they asked for.
type Capability interface{}

// Provider is implemented by any resolved value that exposes capabilities
// by ID: a type opts in by implementing Provider and returning itself (or
// an adapter) for the IDs it supports, in place of a runtime-rebindable
// method table.
type Provider interface {
	Interface(id ID) (Capability, bool)
}

// NamedMap is the capability interface for objects that resolve a dotted
// member name to an ast.Node and, optionally, accept a new binding for it.
// A Scope never needs this: the seeker's LinkOperator case handles Scope
// data directly. NamedMap exists for other resolved values — a future
// built-in aggregate, or a plugin-registered type — that want to
// participate in "a.b" resolution without being modeled as a Scope.
type NamedMap interface {
	GetMember(name string) (*ast.Node, bool)
	SetMember(name string, value *ast.Node) bool
}

// Lookup returns obj's capability for id if obj implements Provider and
// supports it.
func Lookup(obj interface{}, id ID) (Capability, bool) {
	p, ok := obj.(Provider)
	if !ok {
		return nil, false
	}
	return p.Interface(id)
}

// NamedMapOf returns obj's NamedMap capability, if any.
func NamedMapOf(obj interface{}) (NamedMap, bool) {
	cap, ok := Lookup(obj, NamedMapID)
	if !ok {
		return nil, false
	}
	nm, ok := cap.(NamedMap)
	return nm, ok
}
