package scope_test

import (
	"testing"

	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryLevelsDeepestFirst(t *testing.T) {
	outer := ast.NewModule(ast.Location{})
	inner := ast.NewScope(ast.Location{})

	repo := scope.NewRepository(outer)
	repo.Push(inner)

	levels := repo.Levels()
	require.Len(t, levels, 2)
	assert.Equal(t, inner, levels[0], "deepest level must come first")
	assert.Equal(t, outer, levels[1])
	assert.Equal(t, inner, repo.Deepest())
}

func TestRepositoryPopReturnsTop(t *testing.T) {
	outer := ast.NewModule(ast.Location{})
	inner := ast.NewScope(ast.Location{})
	repo := scope.NewRepository(outer)
	repo.Push(inner)

	popped := repo.Pop()
	assert.Equal(t, inner, popped)
	assert.Equal(t, 1, repo.Depth())
}

func TestIndexPreservesOverloadOrder(t *testing.T) {
	s := ast.NewScope(ast.Location{})
	first := ast.NewDefinition("f", ast.NewIdentifier("first", ast.Location{}), ast.Location{})
	second := ast.NewDefinition("f", ast.NewIdentifier("second", ast.Location{}), ast.Location{})
	other := ast.NewDefinition("g", ast.NewIdentifier("g-val", ast.Location{}), ast.Location{})
	s.AppendChild(first)
	s.AppendChild(other)
	s.AppendChild(second)

	idx := scope.BuildIndex(s)
	matches := idx.Lookup("f")
	require.Len(t, matches, 2)
	assert.Equal(t, "first", matches[0].Target.Text)
	assert.Equal(t, "second", matches[1].Target.Text)

	assert.Equal(t, []string{"f", "g"}, idx.Names())
}
