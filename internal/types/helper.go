package types

import (
	"fmt"

	"github.com/alusus/sppcore/internal/ast"
)

// TraceType resolves a type-expression AST node to its canonical Type.
func TraceType(node *ast.Node, reg *Registry) (Type, error) {
	if node == nil {
		return nil, fmt.Errorf("types: TraceType: nil node")
	}
	switch node.Tag {
	case ast.TagIntTypeSpec:
		return reg.IntType(node.Bits, node.Signed), nil
	case ast.TagFloatTypeSpec:
		return reg.FloatType(node.Bits), nil
	case ast.TagPointerTypeSpec:
		inner, err := TraceType(node.Of, reg)
		if err != nil {
			return nil, err
		}
		return reg.PointerType(inner), nil
	case ast.TagReferenceTypeSpec:
		inner, err := TraceType(node.Of, reg)
		if err != nil {
			return nil, err
		}
		return reg.ReferenceType(inner), nil
	case ast.TagArrayTypeSpec:
		inner, err := TraceType(node.Of, reg)
		if err != nil {
			return nil, err
		}
		return reg.ArrayType(inner, node.Length), nil
	case ast.TagUserTypeSpec:
		return traceUserType(node, reg)
	default:
		return nil, fmt.Errorf("types: TraceType: %s is not a type expression", node.Tag)
	}
}

func traceUserType(node *ast.Node, reg *Registry) (Type, error) {
	if u, ok := reg.LookupUserType(node.Name); ok && (u.Members != nil || u.DeclNode == node) {
		return u, nil
	}
	u := reg.DeclareUserType(node.Name) // break cycles for self-referential members
	u.DeclNode = node
	var members []Member
	if node.MemberScope != nil {
		for _, child := range node.MemberScope.Children {
			if child.Tag != ast.TagDefinition {
				continue
			}
			if child.Target != nil && child.Target.Tag == ast.TagFunction {
				// Member functions live in MemberScope for the expression
				// generator's member-call resolution, but aren't data
				// fields and carry no type-expression shape of their own.
				continue
			}
			memberType, err := TraceType(child.Target, reg)
			if err != nil {
				return nil, fmt.Errorf("types: member %q of %q: %w", child.Name, node.Name, err)
			}
			members = append(members, Member{Name: child.Name, Type: memberType})
		}
	}
	return reg.CompleteUserType(node.Name, members)
}

// IsImplicitlyCastableTo reports whether a value of type from may be used
// where to is expected without an explicit cast operator.
func IsImplicitlyCastableTo(from, to Type, ctx *ExecutionContext) bool {
	if Equal(from, to) {
		return true
	}
	if ref, ok := from.(Reference); ok {
		return IsImplicitlyCastableTo(ref.To, to, ctx)
	}
	switch f := from.(type) {
	case Int:
		switch t := to.(type) {
		case Int:
			if t.Bits < f.Bits {
				return false
			}
			if f.Signed && !t.Signed {
				return false
			}
			return true
		case Float:
			return true
		}
	case Float:
		if t, ok := to.(Float); ok {
			return t.Bits >= f.Bits
		}
	case Pointer:
		// Implicit pointer conversions only preserve the pointee type
		// exactly; Equal already covers that case above.
		return false
	}
	return false
}

// IsExplicitlyCastableTo reports whether a CastOp from from to to is
// permitted. Every implicit cast is also explicit, plus the narrowing and
// reinterpreting conversions implicit casting forbids.
func IsExplicitlyCastableTo(from, to Type, ctx *ExecutionContext) bool {
	if IsImplicitlyCastableTo(from, to, ctx) {
		return true
	}
	if ref, ok := from.(Reference); ok {
		return IsExplicitlyCastableTo(ref.To, to, ctx)
	}
	switch from.(type) {
	case Int:
		switch to.(type) {
		case Int, Float:
			return true
		case Pointer:
			return true // address-sized reinterpretation, width-checked by the target
		}
	case Float:
		switch to.(type) {
		case Int, Float:
			return true
		}
	case Pointer:
		switch to.(type) {
		case Pointer, Int:
			return true
		}
	}
	return false
}

// GetPointerTypeFor returns the canonical pointer-to-of type.
func GetPointerTypeFor(of Type, reg *Registry) Type {
	return reg.PointerType(of)
}

// GetReferenceTypeFor returns the canonical reference-to-of type.
func GetReferenceTypeFor(of Type, reg *Registry) Type {
	return reg.ReferenceType(of)
}

// GetContentType returns the type "inside" a Reference or Pointer, the way
// ContentOp/PointerOp need to peel one layer off their operand's type.
func GetContentType(t Type) (Type, bool) {
	switch v := t.(type) {
	case Reference:
		return v.To, true
	case Pointer:
		return v.To, true
	default:
		return nil, false
	}
}
