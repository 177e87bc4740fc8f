package types_test

import (
	"testing"

	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/scope"
	"github.com/alusus/sppcore/internal/seeker"
	"github.com/alusus/sppcore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intSpec(bits int) *ast.Node { return &ast.Node{Tag: ast.TagIntTypeSpec, Bits: bits, Signed: true} }
func floatSpec(bits int) *ast.Node { return &ast.Node{Tag: ast.TagFloatTypeSpec, Bits: bits} }

func declareFunc(m *ast.Node, name string, params []*ast.Param, ret *ast.Node) *ast.Node {
	fn := ast.NewFunction(name, params, ret, ast.NewScope(ast.Location{}), false, ast.Location{})
	def := ast.NewDefinition(name, fn, ast.Location{})
	m.AppendChild(def)
	return def
}

func TestLookupCalleePrefersExactOverCastable(t *testing.T) {
	m := ast.NewModule(ast.Location{})
	declareFunc(m, "f", []*ast.Param{{Name: "a", TypeSpec: intSpec(64)}}, intSpec(64))
	exact := declareFunc(m, "f", []*ast.Param{{Name: "a", TypeSpec: intSpec(32)}}, intSpec(32))

	reg := types.NewRegistry()
	ctx := types.DefaultExecutionContext()
	s := seeker.New()
	repo := scope.NewRepository(m)

	callee, err := types.LookupCallee(s, ast.NewIdentifier("f", ast.Location{}), repo, true,
		[]types.Type{types.Int{Bits: 32, Signed: true}}, reg, ctx)
	require.NoError(t, err)
	assert.True(t, callee.IsFunction)
	assert.Same(t, exact, callee.Definition)
}

func TestLookupCalleeAmbiguousCastableIsNoCalleeMatch(t *testing.T) {
	m := ast.NewModule(ast.Location{})
	declareFunc(m, "f", []*ast.Param{{Name: "a", TypeSpec: intSpec(64)}, {Name: "b", TypeSpec: floatSpec(64)}}, intSpec(32))
	declareFunc(m, "f", []*ast.Param{{Name: "a", TypeSpec: floatSpec(64)}, {Name: "b", TypeSpec: intSpec(64)}}, intSpec(32))

	reg := types.NewRegistry()
	ctx := types.DefaultExecutionContext()
	s := seeker.New()
	repo := scope.NewRepository(m)

	_, err := types.LookupCallee(s, ast.NewIdentifier("f", ast.Location{}), repo, true,
		[]types.Type{types.Int{Bits: 32, Signed: true}, types.Int{Bits: 32, Signed: true}}, reg, ctx)
	require.Error(t, err)
}

func TestLookupCalleeUnknownSymbol(t *testing.T) {
	m := ast.NewModule(ast.Location{})
	reg := types.NewRegistry()
	ctx := types.DefaultExecutionContext()
	s := seeker.New()
	repo := scope.NewRepository(m)

	_, err := types.LookupCallee(s, ast.NewIdentifier("foo", ast.Location{}), repo, true, nil, reg, ctx)
	require.Error(t, err)
}

func TestLookupCalleeVarargAcceptsExtraArgs(t *testing.T) {
	m := ast.NewModule(ast.Location{})
	fn := ast.NewVariadicFunction("printf", []*ast.Param{{Name: "fmt", TypeSpec: &ast.Node{Tag: ast.TagPointerTypeSpec, Of: intSpec(8)}}},
		intSpec(32), ast.NewScope(ast.Location{}), false, ast.Location{})
	m.AppendChild(ast.NewDefinition("printf", fn, ast.Location{}))

	reg := types.NewRegistry()
	ctx := types.DefaultExecutionContext()
	s := seeker.New()
	repo := scope.NewRepository(m)

	callee, err := types.LookupCallee(s, ast.NewIdentifier("printf", ast.Location{}), repo, true,
		[]types.Type{
			types.Pointer{To: types.Int{Bits: 8, Signed: true}},
			types.Int{Bits: 32, Signed: true},
			types.Float{Bits: 64},
		}, reg, ctx)
	require.NoError(t, err)
	assert.True(t, callee.IsFunction)
}

func TestLookupCalleeNonFunctionFallsBackForArrayIndex(t *testing.T) {
	m := ast.NewModule(ast.Location{})
	arraySpec := &ast.Node{Tag: ast.TagArrayTypeSpec, Of: intSpec(32), Length: 10}
	m.AppendChild(ast.NewDefinition("a", arraySpec, ast.Location{}))

	reg := types.NewRegistry()
	ctx := types.DefaultExecutionContext()
	s := seeker.New()
	repo := scope.NewRepository(m)

	callee, err := types.LookupCallee(s, ast.NewIdentifier("a", ast.Location{}), repo, true,
		[]types.Type{types.Int{Bits: 64, Signed: true}}, reg, ctx)
	require.NoError(t, err)
	assert.False(t, callee.IsFunction)
	assert.Equal(t, types.Array{Of: types.Int{Bits: 32, Signed: true}, Length: 10}, callee.Type)
}
