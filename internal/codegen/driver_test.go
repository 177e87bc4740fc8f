package codegen

import (
	"strings"
	"testing"

	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/notice"
	"github.com/alusus/sppcore/internal/target"
	"github.com/alusus/sppcore/internal/target/debugtarget"
	"github.com/alusus/sppcore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intSpec(bits int) *ast.Node {
	return &ast.Node{Tag: ast.TagIntTypeSpec, Bits: bits, Signed: true}
}

func newDriverEnv(t *testing.T) (*Generator, *debugtarget.Target) {
	t.Helper()
	tgt := debugtarget.New(target.ExecutionContext{PointerBits: 64})
	return New(tgt, types.NewRegistry(), notice.NewStore()), tgt
}

// buildMainModule assembles `def x: int; func main() -> int { body... }`.
func buildMainModule(body ...*ast.Node) *ast.Node {
	m := ast.NewModule(ast.Location{})
	m.AppendChild(ast.NewDefinition("x", intSpec(32), ast.Location{}))
	fnBody := ast.NewScope(ast.Location{})
	for _, stmt := range body {
		fnBody.AppendChild(stmt)
	}
	fn := ast.NewFunction("main", nil, intSpec(32), fnBody, false, ast.Location{})
	m.AppendChild(ast.NewDefinition("main", fn, ast.Location{}))
	return m
}

func TestDriverRunEmitsDeclarationsAndBodies(t *testing.T) {
	g, tgt := newDriverEnv(t)

	assign := &ast.Node{Tag: ast.TagAssignmentOperator}
	assign.SetLeft(ast.NewIdentifier("x", ast.Location{}))
	assign.SetRight(&ast.Node{Tag: ast.TagIntegerLiteral, Raw: "5"})
	ret := &ast.Node{Tag: ast.TagTerminateOp}
	ret.SetOperand(ast.NewIdentifier("x", ast.Location{}))

	m := buildMainModule(assign, ret)
	d := NewDriver(g, []*ast.Node{m})
	require.NoError(t, d.Run())
	assert.False(t, g.Notices.HasErrors(), "notices: %v", g.Notices.Notices())

	trace := strings.Join(tgt.Trace(), "\n")
	assert.Contains(t, trace, "functionDecl main")
	assert.Contains(t, trace, "varDefinition x")
	assert.Contains(t, trace, "assign")
	assert.Contains(t, trace, "return")
}

func TestDriverBodySeesPreludeOperators(t *testing.T) {
	g, tgt := newDriverEnv(t)

	sum := &ast.Node{Tag: ast.TagInfixOperator, OpType: "+"}
	sum.SetFirst(ast.NewIdentifier("x", ast.Location{}))
	sum.SetSecond(&ast.Node{Tag: ast.TagIntegerLiteral, Raw: "1"})
	ret := &ast.Node{Tag: ast.TagTerminateOp}
	ret.SetOperand(sum)

	m := buildMainModule(ret)
	d := NewDriver(g, []*ast.Node{m})
	require.NoError(t, d.Run())
	assert.False(t, g.Notices.HasErrors(), "notices: %v", g.Notices.Notices())

	trace := strings.Join(tgt.Trace(), "\n")
	assert.Contains(t, trace, "binaryOp #addInt")
}

func TestDriverReportsStuckFunctionsAsUndefinedSymbols(t *testing.T) {
	g, _ := newDriverEnv(t)

	call := &ast.Node{Tag: ast.TagParamPass}
	call.SetCallee(ast.NewIdentifier("missing", ast.Location{}))
	call.AppendParam(&ast.Node{Tag: ast.TagIntegerLiteral, Raw: "1"})

	m := buildMainModule(call)
	d := NewDriver(g, []*ast.Node{m})
	err := d.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "main")

	var sawUnknown bool
	for _, n := range g.Notices.Notices() {
		if n.Kind == notice.KindUnknownSymbol {
			sawUnknown = true
		}
	}
	assert.True(t, sawUnknown, "the failing attempt's diagnostics surface in the main store")
}

func TestDriverPostGenerationClearsNodeCaches(t *testing.T) {
	g, _ := newDriverEnv(t)

	assign := &ast.Node{Tag: ast.TagAssignmentOperator}
	assign.SetLeft(ast.NewIdentifier("x", ast.Location{}))
	assign.SetRight(&ast.Node{Tag: ast.TagIntegerLiteral, Raw: "5"})

	m := buildMainModule(assign)
	varDef := m.Children[0]

	d := NewDriver(g, []*ast.Node{m})
	require.NoError(t, d.Run())

	_, cached := varDef.CacheGet(g.cacheKey())
	assert.False(t, cached, "post-generation pass should have cleared the handle cache")
}

func TestDriverBindsFunctionParameters(t *testing.T) {
	g, tgt := newDriverEnv(t)

	ret := &ast.Node{Tag: ast.TagTerminateOp}
	ret.SetOperand(ast.NewIdentifier("a", ast.Location{}))
	body := ast.NewScope(ast.Location{})
	body.AppendChild(ret)
	fn := ast.NewFunction("echo", []*ast.Param{{Name: "a", TypeSpec: intSpec(32)}}, intSpec(32), body, false, ast.Location{})

	m := ast.NewModule(ast.Location{})
	m.AppendChild(ast.NewDefinition("echo", fn, ast.Location{}))

	d := NewDriver(g, []*ast.Node{m})
	require.NoError(t, d.Run())
	assert.False(t, g.Notices.HasErrors(), "notices: %v", g.Notices.Notices())

	trace := strings.Join(tgt.Trace(), "\n")
	assert.Contains(t, trace, "varDefinition a")
	assert.Contains(t, trace, "return")
}

func TestDriverDeclaresUserTypes(t *testing.T) {
	g, _ := newDriverEnv(t)

	memberScope := ast.NewScope(ast.Location{})
	memberScope.AppendChild(ast.NewDefinition("v", intSpec(32), ast.Location{}))
	spec := &ast.Node{Tag: ast.TagUserTypeSpec, Name: "Box"}
	spec.SetMemberScope(memberScope)

	m := ast.NewModule(ast.Location{})
	m.AppendChild(ast.NewDefinition("Box", spec, ast.Location{}))

	d := NewDriver(g, []*ast.Node{m})
	require.NoError(t, d.Run())

	u, ok := g.Types.LookupUserType("Box")
	require.True(t, ok)
	require.Len(t, u.Members, 1)
	assert.Equal(t, "v", u.Members[0].Name)
}
