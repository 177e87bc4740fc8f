package scope

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/alusus/sppcore/internal/ast"
)

// Index is a per-scope name lookup built from a Scope/Module's Children.
// It preserves declaration order both across distinct names (the map's own
// key order) and within a single overloaded name (the slice order), so the
// seeker's "enumerate all matches in declaration order" requirement holds
// whether it iterates the index or falls back to a raw Children scan.
type Index struct {
	byName *orderedmap.OrderedMap[string, []*ast.Node]
}

// BuildIndex scans scope's direct children once and returns a fresh Index.
// Callers rebuild after any mutation; for the scope sizes this core deals
// with (function bodies, module member lists) that's cheap enough that no
// invalidation bookkeeping is needed.
func BuildIndex(s *ast.Node) *Index {
	idx := &Index{byName: orderedmap.New[string, []*ast.Node]()}
	if s == nil {
		return idx
	}
	for _, child := range s.Children {
		if child.Tag != ast.TagDefinition || child.Name == "" {
			continue
		}
		existing, _ := idx.byName.Get(child.Name)
		idx.byName.Set(child.Name, append(existing, child))
	}
	return idx
}

// Lookup returns every Definition named name, in declaration order.
func (idx *Index) Lookup(name string) []*ast.Node {
	if idx == nil || idx.byName == nil {
		return nil
	}
	defs, _ := idx.byName.Get(name)
	return defs
}

// Names returns every distinct definition name in declaration order.
func (idx *Index) Names() []string {
	if idx == nil || idx.byName == nil {
		return nil
	}
	var names []string
	for pair := idx.byName.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}
