package ast

// adopt makes owner the exclusive owner of child, first disowning child from
// whatever its previous owner was. Passing a nil child is a no-op.
func adopt(owner, child *Node) {
	if child == nil {
		return
	}
	if child.Owner != nil && child.Owner != owner {
		disownFrom(child.Owner, child)
	}
	child.Owner = owner
}

// disownFrom removes child from every slot of former that could hold it.
// Called automatically by the Set*/Append* helpers below before a node is
// transplanted to a new owner; exported as Disown for callers (e.g. the
// seeker's remove operation) that need to detach a node without immediately
// giving it a new home.
func disownFrom(former, child *Node) {
	if former == nil || child == nil {
		return
	}
	switch {
	case former.First == child:
		former.First = nil
	case former.Second == child:
		former.Second = nil
	case former.Left == child:
		former.Left = nil
	case former.Right == child:
		former.Right = nil
	case former.Target == child:
		former.Target = nil
	case former.Body == child:
		former.Body = nil
	case former.RetType == child:
		former.RetType = nil
	case former.Callee == child:
		former.Callee = nil
	case former.Operand == child:
		former.Operand = nil
	case former.TargetType == child:
		former.TargetType = nil
	case former.Of == child:
		former.Of = nil
	case former.MemberScope == child:
		former.MemberScope = nil
	}
	former.Children = removeFromSlice(former.Children, child)
	former.Params = removeFromSlice(former.Params, child)
	former.Items = removeFromSlice(former.Items, child)
}

func removeFromSlice(s []*Node, target *Node) []*Node {
	for i, n := range s {
		if n == target {
			return append(s[:i:i], s[i+1:]...)
		}
	}
	return s
}

// Disown detaches child from its current owner, if any, without assigning a
// new one. After Disown, child.Owner is nil and child no longer appears in
// any slot of its former owner.
func Disown(child *Node) {
	if child == nil || child.Owner == nil {
		return
	}
	disownFrom(child.Owner, child)
	child.Owner = nil
}

func (n *Node) SetFirst(child *Node) {
	adopt(n, child)
	n.First = child
}

func (n *Node) SetSecond(child *Node) {
	adopt(n, child)
	n.Second = child
}

func (n *Node) SetLeft(child *Node) {
	adopt(n, child)
	n.Left = child
}

func (n *Node) SetRight(child *Node) {
	adopt(n, child)
	n.Right = child
}

// SetTarget attaches target as the exclusively-owned payload of a
// Definition node.
func (n *Node) SetTarget(target *Node) {
	adopt(n, target)
	n.Target = target
}

func (n *Node) SetBody(body *Node) {
	adopt(n, body)
	n.Body = body
}

func (n *Node) SetRetType(t *Node) {
	adopt(n, t)
	n.RetType = t
}

func (n *Node) SetCallee(callee *Node) {
	adopt(n, callee)
	n.Callee = callee
}

func (n *Node) SetOperand(operand *Node) {
	adopt(n, operand)
	n.Operand = operand
}

func (n *Node) SetTargetType(t *Node) {
	adopt(n, t)
	n.TargetType = t
}

func (n *Node) SetOf(of *Node) {
	adopt(n, of)
	n.Of = of
}

func (n *Node) SetMemberScope(scope *Node) {
	adopt(n, scope)
	n.MemberScope = scope
}

// AppendChild appends child to a Scope/Module's ordered children, adopting
// it. Used both by the parser-side constructors and by the seeker when it
// synthesizes a new Definition on a missed "set".
func (n *Node) AppendChild(child *Node) {
	adopt(n, child)
	n.Children = append(n.Children, child)
}

// RemoveChild disowns and removes child from n's ordered children.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.Owner != n {
		return
	}
	n.Children = removeFromSlice(n.Children, child)
	child.Owner = nil
}

func (n *Node) AppendParam(p *Node) {
	adopt(n, p)
	n.Params = append(n.Params, p)
}

func (n *Node) AppendItem(i *Node) {
	adopt(n, i)
	n.Items = append(n.Items, i)
}
