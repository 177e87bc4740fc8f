package fixture

import (
	"strings"
	"testing"

	"github.com/alusus/sppcore/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFixture = `(module
  (def x (int 32))
  (def buf (array (int 8 unsigned) 16))
  (def Point (type Point
    (def x (float 64))
    (def y (float 64))))
  (def length (func length ((p (ptr Point))) (float 64)
    (return (. (^ p) x))))
  (= x 5)
  (call length (@ pt)))
`

func TestParseBuildsExpectedShapes(t *testing.T) {
	m, err := Parse("sample.sppfix", []byte(sampleFixture))
	require.NoError(t, err)
	require.Equal(t, ast.TagModule, m.Tag)
	require.Len(t, m.Children, 6)

	x := m.Children[0]
	assert.Equal(t, ast.TagDefinition, x.Tag)
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, ast.TagIntTypeSpec, x.Target.Tag)
	assert.Equal(t, 32, x.Target.Bits)
	assert.True(t, x.Target.Signed)

	buf := m.Children[1]
	assert.Equal(t, ast.TagArrayTypeSpec, buf.Target.Tag)
	assert.Equal(t, 16, buf.Target.Length)
	assert.False(t, buf.Target.Of.Signed)

	point := m.Children[2]
	assert.Equal(t, ast.TagUserTypeSpec, point.Target.Tag)
	assert.Equal(t, "Point", point.Target.Name)
	require.NotNil(t, point.Target.MemberScope)
	assert.Len(t, point.Target.MemberScope.Children, 2)

	length := m.Children[3]
	fn := length.Target
	require.Equal(t, ast.TagFunction, fn.Tag)
	require.Len(t, fn.Args, 1)
	assert.Equal(t, "p", fn.Args[0].Name)
	assert.Equal(t, ast.TagPointerTypeSpec, fn.Args[0].TypeSpec.Tag)
	require.Len(t, fn.Body.Children, 1)
	ret := fn.Body.Children[0]
	assert.Equal(t, ast.TagTerminateOp, ret.Tag)
	assert.Equal(t, ast.TagLinkOperator, ret.Operand.Tag)
	assert.Equal(t, ast.TagContentOp, ret.Operand.First.Tag)

	assign := m.Children[4]
	assert.Equal(t, ast.TagAssignmentOperator, assign.Tag)
	assert.Equal(t, ast.TagIntegerLiteral, assign.Right.Tag)

	call := m.Children[5]
	assert.Equal(t, ast.TagParamPass, call.Tag)
	require.Len(t, call.Params, 1)
	assert.Equal(t, ast.TagPointerOp, call.Params[0].Tag)
}

func TestParseRecordsLocations(t *testing.T) {
	m, err := Parse("loc.sppfix", []byte("(module\n  (def x (int 32)))"))
	require.NoError(t, err)
	def := m.Children[0]
	assert.Equal(t, "loc.sppfix", def.Location.File)
	assert.Equal(t, 2, def.Location.StartLine)
	assert.Equal(t, 3, def.Location.StartCol)
}

func TestParsePrintRoundTrip(t *testing.T) {
	m, err := Parse("sample.sppfix", []byte(sampleFixture))
	require.NoError(t, err)

	printed := Print(m)
	again, err := Parse("reprint.sppfix", []byte(printed))
	require.NoError(t, err)
	assert.Equal(t, printed, Print(again))
}

func TestLeafClassification(t *testing.T) {
	tests := []struct {
		atom string
		tag  ast.Tag
	}{
		{"x", ast.TagIdentifier},
		{"5", ast.TagIntegerLiteral},
		{"0b1010i8", ast.TagIntegerLiteral},
		{"0hffu", ast.TagIntegerLiteral},
		{"1.5", ast.TagFloatLiteral},
		{"2f64", ast.TagFloatLiteral},
	}
	for _, tt := range tests {
		m, err := Parse("leaf.sppfix", []byte("(module (= sink "+tt.atom+"))"))
		require.NoError(t, err, tt.atom)
		assert.Equal(t, tt.tag, m.Children[0].Right.Tag, tt.atom)
	}
}

func TestParseVariadicFunc(t *testing.T) {
	m, err := Parse("va.sppfix", []byte(`(module (def printf (func printf ((fmt (ptr (int 8))) ...) (int 32))))`))
	require.NoError(t, err)
	fn := m.Children[0].Target
	assert.True(t, fn.Variadic)
	assert.Len(t, fn.Args, 1)
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"(module",
		"(module (def))",
		"(module (frobnicate 1))",
		"(module) trailing",
		"(def x (int 32))", // top level must be a module
	}
	for _, src := range cases {
		_, err := Parse("bad.sppfix", []byte(src))
		assert.Error(t, err, "source: %q", src)
	}
}

func TestCommentsAndStringsAreHandled(t *testing.T) {
	src := "(module ; a trailing comment\n  (= s \"he said \\\"hi\\\"\\n\"))"
	m, err := Parse("str.sppfix", []byte(src))
	require.NoError(t, err)
	lit := m.Children[0].Right
	require.Equal(t, ast.TagStringLiteral, lit.Tag)
	assert.Equal(t, "he said \"hi\"\n", lit.Raw)
	assert.True(t, strings.Contains(Print(m), `\"hi\"`))
}
