package codegen

import (
	"fmt"

	"github.com/alusus/sppcore/internal/target"
	"github.com/alusus/sppcore/internal/types"
)

// targetType maps an AST-level Type to the target-generator's opaque type
// handle. References collapse to their content type: targets do not model
// references, l-value-ness only matters at the
// AST-type level, so a Reference never reaches the target interface
// directly (its pointee handle is what's constructed and, where relevant,
// passed as a pointer by the caller).
func (g *Generator) targetType(t types.Type) (target.TypeHandle, error) {
	switch v := t.(type) {
	case types.Int:
		return g.Target.GetIntType(v.Bits, v.Signed)
	case types.Float:
		return g.Target.GetFloatType(v.Bits)
	case types.Pointer:
		inner, err := g.targetType(v.To)
		if err != nil {
			return nil, err
		}
		return g.Target.GetPointerType(inner)
	case types.Reference:
		return g.targetType(v.To)
	case types.Array:
		inner, err := g.targetType(v.Of)
		if err != nil {
			return nil, err
		}
		return g.Target.GetArrayType(inner, v.Length)
	case *types.User:
		members := make([]target.TypeHandle, 0, len(v.Members))
		for _, m := range v.Members {
			mh, err := g.targetType(m.Type)
			if err != nil {
				return nil, err
			}
			members = append(members, mh)
		}
		return g.Target.GetStructType(v.Name, members)
	case types.Void:
		return nil, nil
	default:
		return nil, fmt.Errorf("codegen: unsupported type %s", t)
	}
}

// derefToUser peels any Reference wrapper off t and reports whether the
// underlying shape is a user-defined aggregate.
func derefToUser(t types.Type) (*types.User, bool) {
	switch v := t.(type) {
	case types.Reference:
		return derefToUser(v.To)
	case *types.User:
		return v, true
	default:
		return nil, false
	}
}

// derefToPointer peels any Reference wrapper off t and reports whether the
// underlying shape is a Pointer, returning its pointee type.
func derefToPointer(t types.Type) (types.Type, bool) {
	switch v := t.(type) {
	case types.Reference:
		return derefToPointer(v.To)
	case types.Pointer:
		return v.To, true
	default:
		return nil, false
	}
}

// deref strips a single Reference layer from t, if present, leaving any
// other shape untouched.
func deref(t types.Type) types.Type {
	if ref, ok := t.(types.Reference); ok {
		return ref.To
	}
	return t
}
