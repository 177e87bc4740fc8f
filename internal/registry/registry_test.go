package registry_test

import (
	"testing"

	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNamedMap struct {
	members map[string]*ast.Node
}

func (f *fakeNamedMap) Interface(id registry.ID) (registry.Capability, bool) {
	if id == registry.NamedMapID {
		return f, true
	}
	return nil, false
}

func (f *fakeNamedMap) GetMember(name string) (*ast.Node, bool) {
	n, ok := f.members[name]
	return n, ok
}

func (f *fakeNamedMap) SetMember(name string, value *ast.Node) bool {
	f.members[name] = value
	return true
}

func TestNamedMapOfRecognizesProvider(t *testing.T) {
	f := &fakeNamedMap{members: map[string]*ast.Node{"x": ast.NewIdentifier("x", ast.Location{})}}

	nm, ok := registry.NamedMapOf(f)
	require.True(t, ok)

	n, found := nm.GetMember("x")
	require.True(t, found)
	assert.Equal(t, "x", n.Text)
}

func TestNamedMapOfRejectsNonProvider(t *testing.T) {
	_, ok := registry.NamedMapOf(42)
	assert.False(t, ok)
}

func TestLookupUnknownCapability(t *testing.T) {
	f := &fakeNamedMap{members: map[string]*ast.Node{}}
	_, ok := registry.Lookup(f, registry.ID("NotSupported"))
	assert.False(t, ok)
}
