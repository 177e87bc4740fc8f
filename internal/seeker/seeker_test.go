package seeker_test

import (
	"testing"

	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/scope"
	"github.com/alusus/sppcore/internal/seeker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForeachVisitsInDeclarationOrderInnermostFirst(t *testing.T) {
	outer := ast.NewModule(ast.Location{})
	outer.AppendChild(ast.NewDefinition("x", ast.NewIdentifier("outer-x", ast.Location{}), ast.Location{}))

	inner := ast.NewScope(ast.Location{})
	inner.AppendChild(ast.NewDefinition("x", ast.NewIdentifier("inner-x-1", ast.Location{}), ast.Location{}))
	inner.AppendChild(ast.NewDefinition("x", ast.NewIdentifier("inner-x-2", ast.Location{}), ast.Location{}))

	repo := scope.NewRepository(outer)
	repo.Push(inner)

	id := ast.NewIdentifier("x", ast.Location{})
	s := seeker.New()

	var seen []string
	_, err := s.Foreach(id, repo, func(slot *seeker.Slot) seeker.Verb {
		v, _ := slot.Value()
		seen = append(seen, v.Text)
		return seeker.SkipAndMove
	}, seeker.NoFlags)

	require.NoError(t, err)
	assert.Equal(t, []string{"inner-x-1", "inner-x-2", "outer-x"}, seen)
}

func TestSetThenTryGetRoundTrips(t *testing.T) {
	m := ast.NewModule(ast.Location{})
	repo := scope.NewRepository(m)
	id := ast.NewIdentifier("y", ast.Location{})
	s := seeker.New()

	value := ast.NewIdentifier("42", ast.Location{})
	_, err := s.Set(id, repo, func(slot *seeker.Slot) seeker.Verb {
		slot.Set(value)
		return seeker.PerformAndStop
	}, seeker.NoFlags)
	require.NoError(t, err)

	got, ok := seeker.TryGet(s, id, repo)
	require.True(t, ok)
	assert.Equal(t, value, got)
}

func TestTryRemoveThenTryGetReturnsAbsent(t *testing.T) {
	m := ast.NewModule(ast.Location{})
	m.AppendChild(ast.NewDefinition("z", ast.NewIdentifier("z-val", ast.Location{}), ast.Location{}))
	repo := scope.NewRepository(m)
	id := ast.NewIdentifier("z", ast.Location{})
	s := seeker.New()

	removed := seeker.TryRemove(s, id, repo)
	assert.True(t, removed)

	_, ok := seeker.TryGet(s, id, repo)
	assert.False(t, ok)
}

func TestRemoveOnlyDropsCandidatesWhoseVerbPerforms(t *testing.T) {
	m := ast.NewModule(ast.Location{})
	m.AppendChild(ast.NewDefinition("f", ast.NewIdentifier("f1", ast.Location{}), ast.Location{}))
	m.AppendChild(ast.NewDefinition("f", ast.NewIdentifier("f2", ast.Location{}), ast.Location{}))
	repo := scope.NewRepository(m)
	id := ast.NewIdentifier("f", ast.Location{})
	s := seeker.New()

	_, err := s.Remove(id, repo, func(slot *seeker.Slot) seeker.Verb {
		v, _ := slot.Value()
		if v.Text == "f2" {
			return seeker.PerformAndStop
		}
		return seeker.SkipAndMove
	}, seeker.NoFlags)
	require.NoError(t, err)

	require.Len(t, m.Children, 1, "only the performed candidate is dropped")
	assert.Equal(t, "f1", m.Children[0].Target.Text)
}

func TestSetDoesNotWriteWhenVerbSkips(t *testing.T) {
	original := ast.NewIdentifier("old", ast.Location{})
	m := ast.NewModule(ast.Location{})
	m.AppendChild(ast.NewDefinition("g", original, ast.Location{}))
	repo := scope.NewRepository(m)
	id := ast.NewIdentifier("g", ast.Location{})
	s := seeker.New()

	_, err := s.Set(id, repo, func(slot *seeker.Slot) seeker.Verb {
		slot.Set(ast.NewIdentifier("new", ast.Location{}))
		return seeker.SkipAndMove // written value must be discarded
	}, seeker.NoFlags)
	require.NoError(t, err)

	got, ok := seeker.TryGet(s, id, repo)
	require.True(t, ok)
	assert.Equal(t, original, got, "a skipping verb leaves the slot untouched")
}

func TestSetSynthesizesDefinitionOnMiss(t *testing.T) {
	m := ast.NewModule(ast.Location{})
	repo := scope.NewRepository(m)
	id := ast.NewIdentifier("brand-new", ast.Location{})
	s := seeker.New()

	ok := seeker.TrySet(s, id, repo, ast.NewIdentifier("val", ast.Location{}))
	require.True(t, ok)
	require.Len(t, m.Children, 1)
	assert.Equal(t, "brand-new", m.Children[0].Name)
}

func TestLinkOperatorResolvesMemberOfScope(t *testing.T) {
	inner := ast.NewScope(ast.Location{})
	inner.AppendChild(ast.NewDefinition("field", ast.NewIdentifier("field-val", ast.Location{}), ast.Location{}))
	module := ast.NewModule(ast.Location{})
	module.AppendChild(ast.NewDefinition("obj", inner, ast.Location{}))

	repo := scope.NewRepository(module)
	link := ast.NewLinkOperator(".", ast.NewIdentifier("obj", ast.Location{}), ast.NewIdentifier("field", ast.Location{}), ast.Location{})

	s := seeker.New()
	got, ok := seeker.TryGet(s, link, repo)
	require.True(t, ok)
	assert.Equal(t, "field-val", got.Text)
}

func TestInvalidReferenceShapeRejected(t *testing.T) {
	m := ast.NewModule(ast.Location{})
	repo := scope.NewRepository(m)
	s := seeker.New()

	bad := ast.NewIdentifier("ok", ast.Location{})
	bad.Tag = ast.TagIntegerLiteral // not a valid reference shape

	_, err := s.Foreach(bad, repo, func(*seeker.Slot) seeker.Verb { return seeker.Stop }, seeker.NoFlags)
	var refErr *seeker.InvalidReferenceError
	require.ErrorAs(t, err, &refErr)
}

func TestOwnerChainAscentRespectsSkipOwners(t *testing.T) {
	outer := ast.NewModule(ast.Location{})
	outer.AppendChild(ast.NewDefinition("v", ast.NewIdentifier("outer-v", ast.Location{}), ast.Location{}))

	inner := ast.NewScope(ast.Location{})
	outer.AppendChild(ast.NewDefinition("block", inner, ast.Location{}))

	id := ast.NewIdentifier("v", ast.Location{})
	s := seeker.New()

	_, ok := seeker.TryGet(s, id, inner)
	assert.True(t, ok, "without SkipOwners, ascent should find the outer definition")

	found := false
	s.Foreach(id, inner, func(slot *seeker.Slot) seeker.Verb {
		found = true
		return seeker.Stop
	}, seeker.SkipOwners)
	assert.False(t, found, "with SkipOwners, ascent must not happen")
}
