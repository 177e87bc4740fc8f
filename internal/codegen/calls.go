package codegen

import (
	"errors"

	"github.com/alusus/sppcore/domain"
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/target"
	"github.com/alusus/sppcore/internal/types"
)

// generateParamPass lowers a ParamPass node: the parameter list is lowered
// left-to-right first, so side effects of operand lowering are observable
// in that order. Then the callee shape picks the branch: an Identifier
// callee goes through overload resolution to either a function call or an array
// index; a LinkOperator callee resolves a member function, a cross-module
// function, or an array index on a struct/array field; anything else falls
// back to array-indexing the preceding expression.
func (g *Generator) generateParamPass(node *ast.Node, root DataRoot) (*GenResult, bool) {
	args := make([]*GenResult, 0, len(node.Params))
	for _, p := range node.Params {
		r, ok := g.GenerateExpression(p, root)
		if !ok {
			return nil, false
		}
		args = append(args, r)
	}

	switch {
	case node.Callee != nil && node.Callee.Tag == ast.TagIdentifier:
		return g.resolveAndCall(node.Callee, root, args, node)
	case node.Callee != nil && node.Callee.Tag == ast.TagLinkOperator:
		return g.generateLinkCallOrIndex(node, root, args)
	default:
		base, ok := g.GenerateExpression(node.Callee, root)
		if !ok {
			return nil, false
		}
		return g.generateArrayIndex(base, args, node)
	}
}

// resolveAndCall overload-resolves nameExpr against root (ascending owners)
// for the given argument types, then either emits a function call or falls
// back to array-index lowering for a non-function candidate (a variable of
// array type called like a function).
func (g *Generator) resolveAndCall(nameExpr *ast.Node, root DataRoot, args []*GenResult, site *ast.Node) (*GenResult, bool) {
	callee, err := types.LookupCallee(g.Seeker, nameExpr, root, true, argTypesOf(args), g.Types, g.ExecCtx)
	if err != nil {
		return g.reportCalleeError(err, nameExpr)
	}
	if !callee.IsFunction {
		base, ok := g.generateDefinitionReference(callee.Definition)
		if !ok {
			return nil, false
		}
		return g.generateArrayIndex(base, args, site)
	}
	return g.generateFunctionCall(callee.Definition, args, site)
}

// generateLinkCallOrIndex handles a ParamPass whose Callee is a
// LinkOperator: "obj.method(args)" or "Module.func(args)". The left
// operand is lowered first; a naming (module) result resolves the call
// within that module with no owner ascent, while a runtime struct value
// resolves a member function within its type's member scope the same way.
func (g *Generator) generateLinkCallOrIndex(node *ast.Node, root DataRoot, args []*GenResult) (*GenResult, bool) {
	link := node.Callee
	if link.Second == nil || link.Second.Tag != ast.TagIdentifier {
		g.Notices.InvalidReference(link.Location, "right-hand side of a link operator must be an identifier")
		return nil, false
	}
	left, ok := g.GenerateExpression(link.First, root)
	if !ok {
		return nil, false
	}

	var calleeRoot DataRoot
	switch {
	case left.IsNaming() && left.AstNode.IsScopeLike():
		calleeRoot = left.AstNode
	case left.IsNaming() && left.AstNode.Tag == ast.TagUserTypeSpec:
		calleeRoot = left.AstNode.MemberScope
	default:
		structType, isStruct := derefToUser(left.AstType)
		if !isStruct || structType.DeclNode == nil {
			g.Notices.UnsupportedOperation(node.Location, "call on a non-struct member")
			return nil, false
		}
		calleeRoot = structType.DeclNode.MemberScope
	}

	callee, err := types.LookupCallee(g.Seeker, link.Second, calleeRoot, false, argTypesOf(args), g.Types, g.ExecCtx)
	if err != nil {
		return g.reportCalleeError(err, link.Second)
	}
	if !callee.IsFunction {
		var base *GenResult
		if left.IsNaming() {
			base, ok = g.generateDefinitionReference(callee.Definition)
		} else {
			base, ok = g.generateMemberReference(left, link.Second)
		}
		if !ok {
			return nil, false
		}
		return g.generateArrayIndex(base, args, node)
	}
	return g.generateFunctionCall(callee.Definition, args, node)
}

func (g *Generator) reportCalleeError(err error, site *ast.Node) (*GenResult, bool) {
	var coreErr domain.CoreError
	if errors.As(err, &coreErr) && coreErr.Code == domain.ErrCodeUnknownSymbol {
		g.Notices.UnknownSymbol(site.Location, site.Text)
	} else {
		g.Notices.NoCalleeMatch(site.Location, site.Text)
	}
	return nil, false
}

// generateFunctionCall lowers a call to an already-resolved Function
// Definition: built-ins (leading `#`) dispatch straight to a target
// primitive, user functions get an idempotent declaration followed by a
// call, and inline functions are a recognized but deliberately open mode.
func (g *Generator) generateFunctionCall(calleeDef *ast.Node, args []*GenResult, site *ast.Node) (*GenResult, bool) {
	fn := calleeDef.Target
	if isBuiltinName(fn.Name) {
		return g.generateBuiltinCall(fn.Name, args, site)
	}
	if fn.Inline {
		g.Notices.UnsupportedOperation(site.Location, "inline function call lowering is not implemented")
		return nil, false
	}

	preparedArgs, ok := g.prepareArgs(fn, args, site)
	if !ok {
		return nil, false
	}

	declHandle, err := g.declareFunction(calleeDef)
	if err != nil {
		g.Notices.UnsupportedOperation(site.Location, err.Error())
		return nil, false
	}

	retType, err := types.TraceType(fn.RetType, g.Types)
	if err != nil {
		g.Notices.UnsupportedOperation(site.Location, err.Error())
		return nil, false
	}
	retHandle, err := g.targetType(retType)
	if err != nil {
		g.Notices.UnsupportedOperation(site.Location, err.Error())
		return nil, false
	}

	callVal, err := g.Target.GenerateFunctionCall(declHandle, valuesOf(preparedArgs), retHandle)
	if err != nil {
		g.Notices.UnsupportedOperation(site.Location, err.Error())
		return nil, false
	}
	return &GenResult{TargetData: callVal, AstType: retType}, true
}

// declareFunction emits fn's declaration the first time it's called and
// memoizes the handle for idempotency across repeated calls in one run.
func (g *Generator) declareFunction(calleeDef *ast.Node) (target.Value, error) {
	if handle, ok := g.declaredFuncs[calleeDef]; ok {
		return handle, nil
	}
	fn := calleeDef.Target
	paramHandles := make([]target.TypeHandle, len(fn.Args))
	for i, p := range fn.Args {
		t, err := types.TraceType(p.TypeSpec, g.Types)
		if err != nil {
			return nil, err
		}
		h, err := g.targetType(t)
		if err != nil {
			return nil, err
		}
		paramHandles[i] = h
	}
	retType, err := types.TraceType(fn.RetType, g.Types)
	if err != nil {
		return nil, err
	}
	retHandle, err := g.targetType(retType)
	if err != nil {
		return nil, err
	}
	handle, err := g.Target.GenerateFunctionDecl(fn.Name, paramHandles, retHandle, fn.Variadic)
	if err != nil {
		return nil, err
	}
	g.declaredFuncs[calleeDef] = handle
	return handle, nil
}

// prepareArgs casts each fixed-position argument to its declared parameter
// type when necessary, and reference-strips vararg tail arguments so
// values (not references) are passed.
func (g *Generator) prepareArgs(fn *ast.Node, args []*GenResult, site *ast.Node) ([]*GenResult, bool) {
	prepared := make([]*GenResult, len(args))
	for i, a := range args {
		if i < len(fn.Args) {
			declared, err := types.TraceType(fn.Args[i].TypeSpec, g.Types)
			if err != nil {
				g.Notices.UnsupportedOperation(site.Location, err.Error())
				return nil, false
			}
			cast, ok := g.generateImplicitCast(a, declared, site.Location)
			if !ok {
				return nil, false
			}
			prepared[i] = cast
		} else {
			prepared[i] = dereferenceIfNeeded(a)
		}
	}
	return prepared, true
}

// generateBuiltinCall dispatches a `#`-prefixed built-in name straight to
// the target generator's binary/unary primitive, bypassing user-function
// declaration/call emission entirely. Arity mismatches are an internal
// invariant violation; the callee was already filtered by overload
// resolution before reaching here.
func (g *Generator) generateBuiltinCall(name string, args []*GenResult, site *ast.Node) (*GenResult, bool) {
	arity, ok := builtinArity(name)
	if !ok || len(args) != arity {
		domain.Panic("codegen.generateBuiltinCall", "arity mismatch for %s", name)
	}
	resultType := deref(args[0].AstType)
	handle, err := g.targetType(resultType)
	if err != nil {
		g.Notices.UnsupportedOperation(site.Location, err.Error())
		return nil, false
	}
	if arity == 1 {
		val, err := g.Target.GenerateUnaryOp(name, dereferenceIfNeeded(args[0]).TargetData, handle)
		if err != nil {
			g.Notices.UnsupportedOperation(site.Location, err.Error())
			return nil, false
		}
		return &GenResult{TargetData: val, AstType: resultType}, true
	}
	lhs := dereferenceIfNeeded(args[0])
	rhs := dereferenceIfNeeded(args[1])
	val, err := g.Target.GenerateBinaryOp(name, lhs.TargetData, rhs.TargetData, handle)
	if err != nil {
		g.Notices.UnsupportedOperation(site.Location, err.Error())
		return nil, false
	}
	return &GenResult{TargetData: val, AstType: resultType}, true
}

func argTypesOf(args []*GenResult) []types.Type {
	out := make([]types.Type, len(args))
	for i, a := range args {
		out[i] = a.AstType
	}
	return out
}

func valuesOf(args []*GenResult) []target.Value {
	out := make([]target.Value, len(args))
	for i, a := range args {
		out[i] = a.TargetData
	}
	return out
}
