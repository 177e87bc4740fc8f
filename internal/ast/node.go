// Package ast defines the tagged AST node model shared by the seeker, the
// type registry, and the expression generator. A single Node struct carries
// a Tag plus the fields relevant to that tag — a flat tagged union rather
// than one interface per variant.
package ast

// Tag identifies which shape a Node carries.
type Tag string

const (
	TagIdentifier         Tag = "Identifier"
	TagLinkOperator        Tag = "LinkOperator"
	TagDefinition          Tag = "Definition"
	TagScope               Tag = "Scope"
	TagModule              Tag = "Module"
	TagFunction            Tag = "Function"
	TagInfixOperator       Tag = "InfixOperator"
	TagPrefixOperator      Tag = "PrefixOperator"
	TagAssignmentOperator  Tag = "AssignmentOperator"
	TagParamPass           Tag = "ParamPass"
	TagBracket             Tag = "Bracket"
	TagExpressionList      Tag = "ExpressionList"
	TagStringLiteral       Tag = "StringLiteral"
	TagIntegerLiteral      Tag = "IntegerLiteral"
	TagFloatLiteral        Tag = "FloatLiteral"
	TagPointerOp           Tag = "PointerOp"
	TagContentOp           Tag = "ContentOp"
	TagCastOp              Tag = "CastOp"
	TagSizeOp              Tag = "SizeOp"
	TagTerminateOp         Tag = "TerminateOp"
	TagIntTypeSpec         Tag = "IntTypeSpec"
	TagFloatTypeSpec       Tag = "FloatTypeSpec"
	TagPointerTypeSpec     Tag = "PointerTypeSpec"
	TagReferenceTypeSpec   Tag = "ReferenceTypeSpec"
	TagArrayTypeSpec       Tag = "ArrayTypeSpec"
	TagUserTypeSpec        Tag = "UserTypeSpec"
)

// Param is a single Function argument: a name plus its declared type-spec
// expression (itself a Node, usually one of the TypeSpec tags).
type Param struct {
	Name     string
	TypeSpec *Node
}

// Node is a single tagged AST element. Only the fields relevant to Tag are
// meaningful; the rest are left zero. Owner is the non-owning upward back
// pointer described by the data model: every non-root Node has exactly one
// owner, maintained exclusively through the Set*/Append*/Disown transplant
// API in ownership.go.
type Node struct {
	Tag      Tag
	Location Location
	Owner    *Node

	// Identifier
	Text string

	// LinkOperator, InfixOperator (OpType), AssignmentOperator
	OpType string
	First  *Node // LinkOperator left / InfixOperator left
	Second *Node // LinkOperator right / InfixOperator right
	Left   *Node // AssignmentOperator
	Right  *Node // AssignmentOperator

	// Definition
	Name   string
	Target *Node

	// Scope / Module (Module is a Scope with IsModule set)
	Children []*Node
	IsModule bool

	// Function
	Args     []*Param
	RetType  *Node
	Body     *Node
	Inline   bool
	Variadic bool

	// ParamPass
	Callee *Node
	Params []*Node

	// Bracket
	Kind    string
	Operand *Node

	// ExpressionList
	Items []*Node

	// Literals
	Raw string

	// CastOp
	TargetType *Node

	// IntTypeSpec
	Bits   int
	Signed bool

	// PointerTypeSpec / ReferenceTypeSpec
	Of *Node

	// ArrayTypeSpec
	Length int

	// UserTypeSpec
	MemberScope *Node

	// cache is a side table of target-level handles keyed by a generation
	// session tag; see internal/codegen for the owner of this cache's
	// lifecycle (set during CodeGen, cleared during PostCodeGen).
	cache map[string]interface{}
}

// NewIdentifier builds an Identifier node.
func NewIdentifier(text string, loc Location) *Node {
	return &Node{Tag: TagIdentifier, Text: text, Location: loc}
}

// NewPrefixOperator builds a unary prefix operation ("-x"), the lone
// built-in-operator-table member (negInt/negFloat) that the
// data model's InfixOperator/typed-unary-op list doesn't otherwise name a
// shape for; it reuses the generic OpType/Operand fields the other typed
// unary ops already carry.
func NewPrefixOperator(opType string, operand *Node, loc Location) *Node {
	n := &Node{Tag: TagPrefixOperator, OpType: opType, Location: loc}
	n.SetOperand(operand)
	return n
}

// NewLinkOperator builds a binary link node ("a.b").
func NewLinkOperator(opType string, first, second *Node, loc Location) *Node {
	n := &Node{Tag: TagLinkOperator, OpType: opType, Location: loc}
	n.SetFirst(first)
	n.SetSecond(second)
	return n
}

// NewScope builds an empty, ordered Scope.
func NewScope(loc Location) *Node {
	return &Node{Tag: TagScope, Children: nil, Location: loc}
}

// NewModule builds a Scope specialized as a translation unit / namespace.
func NewModule(loc Location) *Node {
	return &Node{Tag: TagModule, IsModule: true, Children: nil, Location: loc}
}

// NewDefinition builds a named binding owning target.
func NewDefinition(name string, target *Node, loc Location) *Node {
	n := &Node{Tag: TagDefinition, Name: name, Location: loc}
	n.SetTarget(target)
	return n
}

// NewFunction builds a callable.
func NewFunction(name string, args []*Param, retType, body *Node, inline bool, loc Location) *Node {
	n := &Node{Tag: TagFunction, Name: name, Args: args, Inline: inline, Location: loc}
	n.SetRetType(retType)
	n.SetBody(body)
	return n
}

// NewVariadicFunction builds a callable whose last declared parameter is
// followed by an accepted tail of any length.
func NewVariadicFunction(name string, args []*Param, retType, body *Node, inline bool, loc Location) *Node {
	n := NewFunction(name, args, retType, body, inline, loc)
	n.Variadic = true
	return n
}

// IsScopeLike reports whether n behaves as a Scope for seeker/repository
// purposes (true for both Scope and Module).
func (n *Node) IsScopeLike() bool {
	return n != nil && (n.Tag == TagScope || n.Tag == TagModule)
}

// cacheGet/cacheSet/cacheClear back the per-node target-handle cache used by
// the expression generator and cleared by the driver's post-generation pass.
func (n *Node) cacheGet(key string) (interface{}, bool) {
	if n.cache == nil {
		return nil, false
	}
	v, ok := n.cache[key]
	return v, ok
}

func (n *Node) cacheSet(key string, v interface{}) {
	if n.cache == nil {
		n.cache = make(map[string]interface{})
	}
	n.cache[key] = v
}

func (n *Node) cacheClear() {
	n.cache = nil
}

// CacheGet retrieves a previously-cached target-level handle for this node
// under the given generation-session key.
func (n *Node) CacheGet(key string) (interface{}, bool) { return n.cacheGet(key) }

// CacheSet stores a target-level handle for this node under the given
// generation-session key.
func (n *Node) CacheSet(key string, v interface{}) { n.cacheSet(key, v) }

// CacheClear drops all cached target-level handles for this node. Called by
// the generation driver's post-generation pass.
func (n *Node) CacheClear() { n.cacheClear() }
