package types_test

import (
	"testing"

	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryInternsIntAndFloatTypes(t *testing.T) {
	reg := types.NewRegistry()
	a := reg.IntType(32, true)
	b := reg.IntType(32, true)
	assert.Equal(t, a, b)

	f1 := reg.FloatType(64)
	f2 := reg.FloatType(64)
	assert.Equal(t, f1, f2)
}

func TestTraceTypeResolvesNestedShapes(t *testing.T) {
	reg := types.NewRegistry()
	spec := &ast.Node{Tag: ast.TagPointerTypeSpec, Of: &ast.Node{Tag: ast.TagIntTypeSpec, Bits: 8, Signed: true}}

	got, err := types.TraceType(spec, reg)
	require.NoError(t, err)
	assert.Equal(t, types.Pointer{To: types.Int{Bits: 8, Signed: true}}, got)
}

func TestTraceUserTypeBreaksSelfReferentialCycle(t *testing.T) {
	reg := types.NewRegistry()
	memberScope := ast.NewScope(ast.Location{})
	userSpec := &ast.Node{Tag: ast.TagUserTypeSpec, Name: "Node", MemberScope: memberScope}

	selfPtr := &ast.Node{Tag: ast.TagPointerTypeSpec, Of: userSpec}
	memberScope.AppendChild(ast.NewDefinition("next", selfPtr, ast.Location{}))

	got, err := types.TraceType(userSpec, reg)
	require.NoError(t, err)
	user, ok := got.(*types.User)
	require.True(t, ok)
	require.Len(t, user.Members, 1)

	nextType, ok := user.FieldType("next")
	require.True(t, ok)
	ptr, ok := nextType.(types.Pointer)
	require.True(t, ok)
	assert.Same(t, user, ptr.To.(*types.User))
}

func TestImplicitCastWidensButNotNarrows(t *testing.T) {
	ctx := types.DefaultExecutionContext()
	assert.True(t, types.IsImplicitlyCastableTo(types.Int{Bits: 32, Signed: true}, types.Int{Bits: 64, Signed: true}, ctx))
	assert.False(t, types.IsImplicitlyCastableTo(types.Int{Bits: 64, Signed: true}, types.Int{Bits: 32, Signed: true}, ctx))
	assert.True(t, types.IsImplicitlyCastableTo(types.Int{Bits: 32, Signed: true}, types.Float{Bits: 32}, ctx))
	assert.False(t, types.IsImplicitlyCastableTo(types.Float{Bits: 32}, types.Int{Bits: 32, Signed: true}, ctx))
}

func TestExplicitCastAllowsNarrowingAndReinterpreting(t *testing.T) {
	ctx := types.DefaultExecutionContext()
	assert.True(t, types.IsExplicitlyCastableTo(types.Int{Bits: 64, Signed: true}, types.Int{Bits: 32, Signed: true}, ctx))
	assert.True(t, types.IsExplicitlyCastableTo(types.Float{Bits: 32}, types.Int{Bits: 32, Signed: true}, ctx))
	assert.True(t, types.IsExplicitlyCastableTo(types.Int{Bits: 64, Signed: true}, types.Pointer{To: types.Void{}}, ctx))
}

func TestGetContentTypePeelsReferenceAndPointer(t *testing.T) {
	inner := types.Int{Bits: 32, Signed: true}
	ref := types.Reference{To: inner}
	got, ok := types.GetContentType(ref)
	require.True(t, ok)
	assert.Equal(t, inner, got)

	ptr := types.Pointer{To: inner}
	got, ok = types.GetContentType(ptr)
	require.True(t, ok)
	assert.Equal(t, inner, got)

	_, ok = types.GetContentType(inner)
	assert.False(t, ok)
}
