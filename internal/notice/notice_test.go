package notice_test

import (
	"testing"

	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/notice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndHasErrors(t *testing.T) {
	s := notice.NewStore()
	assert.False(t, s.HasErrors())

	s.UnknownSymbol(ast.Location{File: "f.spp", StartLine: 1}, "foo")

	require.Equal(t, 1, s.Len())
	assert.True(t, s.HasErrors())
	assert.Equal(t, notice.KindUnknownSymbol, s.Notices()[0].Kind)
}

func TestLocationStackBalance(t *testing.T) {
	s := notice.NewStore()
	loc := ast.Location{File: "f.spp", StartLine: 5}

	s.PushLocation(loc)
	assert.Equal(t, 1, s.StackDepth())
	s.Add(notice.KindInvalidCast, notice.SeverityError, loc, "boom")
	s.PopLocation()

	assert.Equal(t, 0, s.StackDepth())
	assert.Len(t, s.Notices()[0].Prefix, 1)
}

func TestPopLocationOnEmptyStackPanics(t *testing.T) {
	s := notice.NewStore()
	assert.Panics(t, func() { s.PopLocation() })
}
