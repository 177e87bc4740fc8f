package ast

// Visitor is called for each node reached during a tree walk. Returning
// false stops descent into that node's children (but not its siblings).
type Visitor interface {
	Visit(n *Node) bool
}

// VisitorFunc adapts a plain function to a Visitor for ad-hoc tree walks.
type VisitorFunc func(*Node) bool

func (f VisitorFunc) Visit(n *Node) bool { return f(n) }

// children enumerates every directly-owned child of n, in the order that a
// textual re-print would visit them. This is only used for generic
// tree-walking (printers, collectors); the seeker has its own scope-scoped
// traversal and does not call this.
func (n *Node) children() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	add := func(c *Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	add(n.First)
	add(n.Second)
	add(n.Left)
	add(n.Right)
	add(n.Target)
	add(n.Body)
	add(n.RetType)
	add(n.Callee)
	add(n.Operand)
	add(n.TargetType)
	add(n.Of)
	add(n.MemberScope)
	out = append(out, n.Children...)
	out = append(out, n.Params...)
	out = append(out, n.Items...)
	return out
}

// Accept walks n and its children depth-first, invoking visitor.Visit on
// each. An override table may intercept specific tags before the default
// walk runs on them; see AcceptWithOverrides.
func (n *Node) Accept(visitor Visitor) {
	n.acceptWith(visitor, nil)
}

// OverrideTable maps a Tag to a handler that replaces the default
// traversal for nodes of that tag. Handlers return true to additionally
// run the default child traversal afterward — tagged-variant dispatch with
// an override table in place of runtime-rebindable method pointers.
type OverrideTable map[Tag]func(n *Node, visitor Visitor) (descend bool)

func (n *Node) acceptWith(visitor Visitor, overrides OverrideTable) {
	if n == nil {
		return
	}
	if overrides != nil {
		if handler, ok := overrides[n.Tag]; ok {
			if !handler(n, visitor) {
				return
			}
		}
	}
	if !visitor.Visit(n) {
		return
	}
	for _, child := range n.children() {
		child.acceptWith(visitor, overrides)
	}
}

// AcceptWithOverrides walks n the same way Accept does, but consults
// overrides first for each node.
func (n *Node) AcceptWithOverrides(visitor Visitor, overrides OverrideTable) {
	n.acceptWith(visitor, overrides)
}

// Collect returns every node in n's subtree (including n) for which
// predicate returns true, in visitation order.
func Collect(n *Node, predicate func(*Node) bool) []*Node {
	var found []*Node
	n.Accept(VisitorFunc(func(c *Node) bool {
		if predicate(c) {
			found = append(found, c)
		}
		return true
	}))
	return found
}
