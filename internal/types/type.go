// Package types implements the core's type registry and AST helper:
// canonical Type objects, castability predicates, and overload resolution
// against the seeker.
package types

import (
	"fmt"

	"github.com/alusus/sppcore/internal/ast"
)

// Type is a canonical, interned type object. Two Types describing the same
// shape compare Equal even if built independently; the Registry is
// responsible for that interning.
type Type interface {
	isType()
	String() string
}

// Int is a signed or unsigned integer type of a fixed bit width.
type Int struct {
	Bits   int
	Signed bool
}

func (Int) isType() {}
func (t Int) String() string {
	if t.Signed {
		return fmt.Sprintf("int%d", t.Bits)
	}
	return fmt.Sprintf("uint%d", t.Bits)
}

// Float is an IEEE-754 floating point type of a fixed bit width.
type Float struct {
	Bits int
}

func (Float) isType() {}
func (t Float) String() string { return fmt.Sprintf("float%d", t.Bits) }

// Pointer is a typed address-of some other Type.
type Pointer struct {
	To Type
}

func (Pointer) isType() {}
func (t Pointer) String() string { return "ptr[" + t.To.String() + "]" }

// Reference models an AST-level l-value binding to some other Type. The
// target generator never sees References directly (targets do not model
// references) — they exist only at the AST-type level to
// preserve l-value semantics through expression lowering.
type Reference struct {
	To Type
}

func (Reference) isType() {}
func (t Reference) String() string { return "ref[" + t.To.String() + "]" }

// Array is a fixed-length, homogeneous aggregate.
type Array struct {
	Of     Type
	Length int
}

func (Array) isType() {}
func (t Array) String() string { return fmt.Sprintf("array[%s, %d]", t.Of.String(), t.Length) }

// Member is a single named field of a User aggregate type.
type Member struct {
	Name string
	Type Type
}

// User is a named, user-defined aggregate with an ordered member list.
// Always handled by pointer so that two references to the same declared
// aggregate (including recursive ones, e.g. a self-referential pointer
// member) share identity.
type User struct {
	Name    string
	Members []Member

	// DeclNode is the ast.Node (TagUserTypeSpec) this type was traced from.
	// The expression generator uses its MemberScope to resolve member-
	// function calls (Definitions the field-tracing pass in helper.go
	// skips over, since a Function target isn't itself a type expression).
	DeclNode *ast.Node
}

func (*User) isType() {}
func (t *User) String() string { return t.Name }

// FieldType returns the declared type of the named member, if present.
func (t *User) FieldType(name string) (Type, bool) {
	for _, m := range t.Members {
		if m.Name == name {
			return m.Type, true
		}
	}
	return nil, false
}

// Void is the type of a function with no return value.
type Void struct{}

func (Void) isType() {}
func (Void) String() string { return "void" }

// Equal reports whether a and b describe the same type shape.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		return ok && av.Bits == bv.Bits && av.Signed == bv.Signed
	case Float:
		bv, ok := b.(Float)
		return ok && av.Bits == bv.Bits
	case Pointer:
		bv, ok := b.(Pointer)
		return ok && Equal(av.To, bv.To)
	case Reference:
		bv, ok := b.(Reference)
		return ok && Equal(av.To, bv.To)
	case Array:
		bv, ok := b.(Array)
		return ok && av.Length == bv.Length && Equal(av.Of, bv.Of)
	case *User:
		bv, ok := b.(*User)
		return ok && (av == bv || av.Name == bv.Name)
	case Void:
		_, ok := b.(Void)
		return ok
	default:
		return false
	}
}

// ExecutionContext carries target-specific facts consulted during
// pointer-width-sensitive type reasoning.
type ExecutionContext struct {
	PointerBits int
	BigEndian   bool
}

// DefaultExecutionContext is a 64-bit little-endian target, the common case
// exercised by the CLI and the test suite.
func DefaultExecutionContext() *ExecutionContext {
	return &ExecutionContext{PointerBits: 64, BigEndian: false}
}
