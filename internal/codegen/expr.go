package codegen

import (
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/types"
)

// GenerateExpression lowers node to a target value against root,
// dispatching by AST tag. The boolean result mirrors the core's
// error-handling policy: false means a notice was appended and the caller
// should abort this statement but not the enclosing scope.
func (g *Generator) GenerateExpression(node *ast.Node, root DataRoot) (*GenResult, bool) {
	if node == nil {
		g.Notices.UnsupportedOperation(ast.Location{}, "nil expression")
		return nil, false
	}
	switch node.Tag {
	case ast.TagIdentifier:
		return g.generateScopeMemberReference(root, node, true)
	case ast.TagLinkOperator:
		return g.generateLinkOperatorExpr(node, root)
	case ast.TagParamPass:
		return g.generateParamPass(node, root)
	case ast.TagAssignmentOperator:
		return g.generateAssignment(node, root)
	case ast.TagInfixOperator:
		return g.generateInfix(node, root)
	case ast.TagPrefixOperator:
		return g.generatePrefix(node, root)
	case ast.TagPointerOp:
		return g.generatePointerOp(node, root)
	case ast.TagContentOp:
		return g.generateContentOp(node, root)
	case ast.TagCastOp:
		return g.generateCastOp(node, root)
	case ast.TagStringLiteral:
		return g.generateStringLiteral(node)
	case ast.TagIntegerLiteral:
		return g.generateIntegerLiteral(node)
	case ast.TagFloatLiteral:
		return g.generateFloatLiteral(node)
	case ast.TagBracket:
		if node.Kind == "round" {
			return g.GenerateExpression(node.Operand, root)
		}
		g.Notices.UnsupportedOperation(node.Location, "non-round bracket in expression position")
		return nil, false
	default:
		g.Notices.UnsupportedOperation(node.Location, "unsupported expression shape "+string(node.Tag))
		return nil, false
	}
}

// generateLinkOperatorExpr lowers "a.b": first is lowered, then on a
// runtime-value result a member-var reference is emitted, while a naming
// result (module/type) resolves the second operand inside that scope with
// no owner ascent.
func (g *Generator) generateLinkOperatorExpr(node *ast.Node, root DataRoot) (*GenResult, bool) {
	if node.Second == nil || node.Second.Tag != ast.TagIdentifier {
		g.Notices.InvalidReference(node.Location, "right-hand side of a link operator must be an identifier")
		return nil, false
	}
	left, ok := g.GenerateExpression(node.First, root)
	if !ok {
		return nil, false
	}
	if left.IsNaming() {
		switch {
		case left.AstNode.IsScopeLike():
			return g.generateScopeMemberReference(left.AstNode, node.Second, false)
		case left.AstNode.Tag == ast.TagUserTypeSpec:
			return g.generateScopeMemberReference(left.AstNode.MemberScope, node.Second, false)
		default:
			g.Notices.UnsupportedOperation(node.Location, "member access on a non-scope naming result")
			return nil, false
		}
	}
	return g.generateMemberReference(left, node.Second)
}

// generateAssignment lowers an AssignmentOperator: the LHS must yield a
// Reference type, the RHS must be implicitly castable to its content type,
// and the generator emits a cast (if needed) followed by an assign.
func (g *Generator) generateAssignment(node *ast.Node, root DataRoot) (*GenResult, bool) {
	lhs, ok := g.GenerateExpression(node.Left, root)
	if !ok {
		return nil, false
	}
	lhsRef, isRef := lhs.AstType.(types.Reference)
	if !isRef {
		g.Notices.UnsupportedOperation(node.Location, "assignment target is not a reference")
		return nil, false
	}
	rhs, ok := g.GenerateExpression(node.Right, root)
	if !ok {
		return nil, false
	}
	castRhs, ok := g.generateImplicitCast(rhs, lhsRef.To, node.Location)
	if !ok {
		return nil, false
	}
	if err := g.Target.GenerateAssign(lhs.TargetData, castRhs.TargetData); err != nil {
		g.Notices.UnsupportedOperation(node.Location, err.Error())
		return nil, false
	}
	return &GenResult{TargetData: lhs.TargetData, AstType: lhs.AstType}, true
}

// generateInfix maps the operator token to its builtin function name
// (__add, __sub, …) and resolves it as a user-overloaded call, exactly as
// an ordinary function call would be lowered — the built-in operator table
// only takes effect once overload resolution lands on a `#`-prefixed
// builtin function.
func (g *Generator) generateInfix(node *ast.Node, root DataRoot) (*GenResult, bool) {
	builtinName, ok := infixBuiltinName[node.OpType]
	if !ok {
		g.Notices.UnsupportedOperation(node.Location, "unknown infix operator "+node.OpType)
		return nil, false
	}
	lhs, ok := g.GenerateExpression(node.First, root)
	if !ok {
		return nil, false
	}
	rhs, ok := g.GenerateExpression(node.Second, root)
	if !ok {
		return nil, false
	}
	ident := ast.NewIdentifier(builtinName, node.Location)
	return g.resolveAndCall(ident, root, []*GenResult{lhs, rhs}, node)
}

// generatePrefix maps a unary prefix operator's token to its builtin
// function name (__neg) and resolves it the same way generateInfix
// resolves its binary counterparts.
func (g *Generator) generatePrefix(node *ast.Node, root DataRoot) (*GenResult, bool) {
	builtinName, ok := prefixBuiltinName[node.OpType]
	if !ok {
		g.Notices.UnsupportedOperation(node.Location, "unknown prefix operator "+node.OpType)
		return nil, false
	}
	operand, ok := g.GenerateExpression(node.Operand, root)
	if !ok {
		return nil, false
	}
	ident := ast.NewIdentifier(builtinName, node.Location)
	return g.resolveAndCall(ident, root, []*GenResult{operand}, node)
}

// generatePointerOp lowers "@x": the operand must be a reference result,
// and the result is a pointer to the operand's content type sharing the
// same target handle (an address, not a new value).
func (g *Generator) generatePointerOp(node *ast.Node, root DataRoot) (*GenResult, bool) {
	operand, ok := g.GenerateExpression(node.Operand, root)
	if !ok {
		return nil, false
	}
	ref, isRef := operand.AstType.(types.Reference)
	if !isRef {
		g.Notices.UnsupportedOperation(node.Location, "@ requires a reference operand")
		return nil, false
	}
	return &GenResult{TargetData: operand.TargetData, AstType: types.Pointer{To: ref.To}}, true
}

// generateContentOp lowers "^p": dereferences the operand (once, if it was
// itself a reference), requires the result to be a pointer, and yields a
// reference to the pointee type.
func (g *Generator) generateContentOp(node *ast.Node, root DataRoot) (*GenResult, bool) {
	operand, ok := g.GenerateExpression(node.Operand, root)
	if !ok {
		return nil, false
	}
	pointeeType, isPtr := derefToPointer(operand.AstType)
	if !isPtr {
		g.Notices.UnsupportedOperation(node.Location, "^ requires a pointer operand")
		return nil, false
	}
	pointeeHandle, err := g.targetType(pointeeType)
	if err != nil {
		g.Notices.UnsupportedOperation(node.Location, err.Error())
		return nil, false
	}
	val, err := g.Target.GenerateDereference(operand.TargetData, pointeeHandle)
	if err != nil {
		g.Notices.UnsupportedOperation(node.Location, err.Error())
		return nil, false
	}
	return &GenResult{TargetData: val, AstType: types.Reference{To: pointeeType}}, true
}

// generateCastOp lowers a CastOp: the operand is dereferenced if needed
// and the explicit-castability predicate gates the conversion.
func (g *Generator) generateCastOp(node *ast.Node, root DataRoot) (*GenResult, bool) {
	operand, ok := g.GenerateExpression(node.Operand, root)
	if !ok {
		return nil, false
	}
	to, err := types.TraceType(node.TargetType, g.Types)
	if err != nil {
		g.Notices.UnsupportedOperation(node.Location, err.Error())
		return nil, false
	}
	return g.generateExplicitCast(dereferenceIfNeeded(operand), to, node.Location)
}

func (g *Generator) generateStringLiteral(node *ast.Node) (*GenResult, bool) {
	val, err := g.Target.GenerateStringLiteral(node.Raw)
	if err != nil {
		g.Notices.UnsupportedOperation(node.Location, err.Error())
		return nil, false
	}
	charType := types.Int{Bits: 8, Signed: true}
	return &GenResult{TargetData: val, AstType: types.Pointer{To: charType}}, true
}

func (g *Generator) generateIntegerLiteral(node *ast.Node) (*GenResult, bool) {
	value, bits, signed, err := parseIntegerLiteral(node.Raw)
	if err != nil {
		g.Notices.UnsupportedOperation(node.Location, err.Error())
		return nil, false
	}
	t := types.Int{Bits: bits, Signed: signed}
	handle, terr := g.targetType(t)
	if terr != nil {
		g.Notices.UnsupportedOperation(node.Location, terr.Error())
		return nil, false
	}
	val, err := g.Target.GenerateIntLiteral(handle, node.Raw, value)
	if err != nil {
		g.Notices.UnsupportedOperation(node.Location, err.Error())
		return nil, false
	}
	return &GenResult{TargetData: val, AstType: t}, true
}

func (g *Generator) generateFloatLiteral(node *ast.Node) (*GenResult, bool) {
	value, bits, err := parseFloatLiteral(node.Raw)
	if err != nil {
		g.Notices.UnsupportedOperation(node.Location, err.Error())
		return nil, false
	}
	t := types.Float{Bits: bits}
	handle, terr := g.targetType(t)
	if terr != nil {
		g.Notices.UnsupportedOperation(node.Location, terr.Error())
		return nil, false
	}
	val, err := g.Target.GenerateFloatLiteral(handle, node.Raw, value)
	if err != nil {
		g.Notices.UnsupportedOperation(node.Location, err.Error())
		return nil, false
	}
	return &GenResult{TargetData: val, AstType: t}, true
}
