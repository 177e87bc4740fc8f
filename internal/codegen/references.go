package codegen

import (
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/seeker"
	"github.com/alusus/sppcore/internal/types"
)

// generateScopeMemberReference resolves id against root via the seeker and
// lowers whatever Definition it finds: a variable yields a runtime
// reference (emitting its target-level allocation on first use), while a
// module, type, or function name yields a naming GenResult.
func (g *Generator) generateScopeMemberReference(root DataRoot, id *ast.Node, searchOwners bool) (*GenResult, bool) {
	flags := seeker.NoFlags
	if !searchOwners {
		flags = seeker.SkipOwners
	}
	var found *ast.Node
	_, err := g.Seeker.Foreach(id, root, func(slot *seeker.Slot) seeker.Verb {
		if slot.Definition != nil {
			found = slot.Definition
			return seeker.Stop
		}
		return seeker.SkipAndMove
	}, flags)
	if err != nil {
		g.Notices.InvalidReference(id.Location, err.Error())
		return nil, false
	}
	if found == nil {
		g.Notices.UnknownSymbol(id.Location, id.Text)
		return nil, false
	}
	return g.generateDefinitionReference(found)
}

// generateDefinitionReference lowers an already-resolved Definition.
func (g *Generator) generateDefinitionReference(def *ast.Node) (*GenResult, bool) {
	tgt := def.Target
	if tgt == nil {
		return &GenResult{}, true
	}
	switch tgt.Tag {
	case ast.TagModule, ast.TagFunction, ast.TagUserTypeSpec:
		return &GenResult{AstNode: tgt}, true
	default:
		return g.generateVariableReference(def)
	}
}

// generateVariableReference lowers a reference to a variable Definition
// (whose Target is its declared type-spec node directly, per this core's
// data model). The first reference emits the variable's target-level
// allocation and caches the handle on the node; later references reuse it.
func (g *Generator) generateVariableReference(def *ast.Node) (*GenResult, bool) {
	declaredType, err := types.TraceType(def.Target, g.Types)
	if err != nil {
		g.Notices.UnsupportedOperation(def.Location, err.Error())
		return nil, false
	}
	if cached, ok := def.CacheGet(g.cacheKey()); ok {
		return &GenResult{TargetData: cached, AstType: types.Reference{To: declaredType}}, true
	}
	handle, terr := g.targetType(declaredType)
	if terr != nil {
		g.Notices.UnsupportedOperation(def.Location, terr.Error())
		return nil, false
	}
	val, verr := g.Target.GenerateVarDefinition(def.Name, handle)
	if verr != nil {
		g.Notices.UnsupportedOperation(def.Location, verr.Error())
		return nil, false
	}
	def.CacheSet(g.cacheKey(), val)
	return &GenResult{TargetData: val, AstType: types.Reference{To: declaredType}}, true
}

// generateMemberReference looks up memberId in owner's struct type (peeling
// through a Reference-to-struct, since targets don't model references and
// a member-var reference is requested directly off the struct value) and
// requests a member-var reference from the target generator.
func (g *Generator) generateMemberReference(owner *GenResult, memberId *ast.Node) (*GenResult, bool) {
	structType, ok := derefToUser(owner.AstType)
	if !ok {
		g.Notices.UnsupportedOperation(memberId.Location, "member access on a non-struct value")
		return nil, false
	}
	fieldType, ok := structType.FieldType(memberId.Text)
	if !ok {
		g.Notices.InvalidTypeMember(memberId.Location, memberId.Text)
		return nil, false
	}
	structHandle, err := g.targetType(structType)
	if err != nil {
		g.Notices.UnsupportedOperation(memberId.Location, err.Error())
		return nil, false
	}
	fieldHandle, err := g.targetType(fieldType)
	if err != nil {
		g.Notices.UnsupportedOperation(memberId.Location, err.Error())
		return nil, false
	}
	val, err := g.Target.GenerateMemberVarReference(owner.TargetData, structHandle, fieldHandle, memberId.Text)
	if err != nil {
		g.Notices.UnsupportedOperation(memberId.Location, err.Error())
		return nil, false
	}
	return &GenResult{TargetData: val, AstType: types.Reference{To: fieldType}}, true
}

// generateArrayIndex casts the index to a 64-bit signed integer, resolves
// the element type, and emits an array-element-reference.
func (g *Generator) generateArrayIndex(base *GenResult, args []*GenResult, site *ast.Node) (*GenResult, bool) {
	if len(args) != 1 {
		g.Notices.UnsupportedOperation(site.Location, "array index requires exactly one argument")
		return nil, false
	}
	arrType, ok := derefToArray(base.AstType)
	if !ok {
		g.Notices.UnsupportedOperation(site.Location, "indexing a non-array value")
		return nil, false
	}
	idx64 := types.Int{Bits: 64, Signed: true}
	indexVal, ok := g.generateImplicitCast(args[0], idx64, site.Location)
	if !ok {
		return nil, false
	}
	elemHandle, err := g.targetType(arrType.Of)
	if err != nil {
		g.Notices.UnsupportedOperation(site.Location, err.Error())
		return nil, false
	}
	val, err := g.Target.GenerateArrayElementReference(base.TargetData, elemHandle, indexVal.TargetData)
	if err != nil {
		g.Notices.UnsupportedOperation(site.Location, err.Error())
		return nil, false
	}
	return &GenResult{TargetData: val, AstType: types.Reference{To: arrType.Of}}, true
}

func derefToArray(t types.Type) (types.Array, bool) {
	switch v := t.(type) {
	case types.Reference:
		return derefToArray(v.To)
	case types.Array:
		return v, true
	default:
		return types.Array{}, false
	}
}
