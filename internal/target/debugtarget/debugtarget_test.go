package debugtarget

import (
	"testing"

	"github.com/alusus/sppcore/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ target.Generator = (*Target)(nil)

func TestTraceRecordsOperationsInOrder(t *testing.T) {
	tgt := New(target.ExecutionContext{PointerBits: 64})

	i32, err := tgt.GetIntType(32, true)
	require.NoError(t, err)
	assert.Equal(t, "i32", i32)

	v1, err := tgt.GenerateVarDefinition("x", i32)
	require.NoError(t, err)
	v2, err := tgt.GenerateIntLiteral(i32, "5", 5)
	require.NoError(t, err)
	require.NoError(t, tgt.GenerateAssign(v1, v2))

	trace := tgt.Trace()
	require.Len(t, trace, 3)
	assert.Contains(t, trace[0], "varDefinition x")
	assert.Contains(t, trace[1], "intLiteral 5")
	assert.Equal(t, "assign %1 <- %2", trace[2])
}

func TestValueHandlesAreFresh(t *testing.T) {
	tgt := New(target.ExecutionContext{PointerBits: 64})
	a, _ := tgt.GenerateStringLiteral("hello")
	b, _ := tgt.GenerateStringLiteral("hello")
	assert.NotEqual(t, a, b)
}

func TestTypeHandlesAreStructural(t *testing.T) {
	tgt := New(target.ExecutionContext{PointerBits: 64})

	u8, _ := tgt.GetIntType(8, false)
	assert.Equal(t, "u8", u8)

	f64, _ := tgt.GetFloatType(64)
	assert.Equal(t, "f64", f64)

	ptr, _ := tgt.GetPointerType(u8)
	assert.Equal(t, "ptr[u8]", ptr)

	arr, _ := tgt.GetArrayType(u8, 10)
	assert.Equal(t, "array[u8 x 10]", arr)

	s, _ := tgt.GetStructType("Point", []target.TypeHandle{u8, f64})
	assert.Equal(t, "struct Point{u8, f64}", s)
}

func TestResetClearsTraceAndNumbering(t *testing.T) {
	tgt := New(target.ExecutionContext{PointerBits: 64})
	i32, _ := tgt.GetIntType(32, true)
	first, _ := tgt.GenerateVarDefinition("x", i32)

	tgt.Reset()
	assert.Empty(t, tgt.Trace())

	again, _ := tgt.GenerateVarDefinition("x", i32)
	assert.Equal(t, first, again)
}

func TestReturnVoid(t *testing.T) {
	tgt := New(target.ExecutionContext{PointerBits: 64})
	require.NoError(t, tgt.GenerateReturn(nil))
	trace := tgt.Trace()
	require.Len(t, trace, 1)
	assert.Equal(t, "return void", trace[0])
}
