package codegen

import (
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/types"
)

// generateImplicitCast casts result to to when needed, emitting
// NotImplicitlyCastable when the implicit-castability predicate rejects
// the conversion (assignment RHS, call argument passing).
func (g *Generator) generateImplicitCast(result *GenResult, to types.Type, loc ast.Location) (*GenResult, bool) {
	from := result.AstType
	if types.Equal(deref(from), to) {
		return &GenResult{TargetData: result.TargetData, AstType: to}, true
	}
	if !types.IsImplicitlyCastableTo(from, to, g.ExecCtx) {
		g.Notices.NotImplicitlyCastable(loc, from.String(), to.String())
		return nil, false
	}
	return g.emitCast(result, to, loc)
}

// generateExplicitCast lowers a CastOp, emitting InvalidCast when the
// explicit-castability predicate rejects the conversion.
func (g *Generator) generateExplicitCast(result *GenResult, to types.Type, loc ast.Location) (*GenResult, bool) {
	from := result.AstType
	if types.Equal(deref(from), to) {
		return &GenResult{TargetData: result.TargetData, AstType: to}, true
	}
	if !types.IsExplicitlyCastableTo(from, to, g.ExecCtx) {
		g.Notices.InvalidCast(loc, from.String(), to.String())
		return nil, false
	}
	return g.emitCast(result, to, loc)
}

func (g *Generator) emitCast(result *GenResult, to types.Type, loc ast.Location) (*GenResult, bool) {
	fromHandle, err := g.targetType(result.AstType)
	if err != nil {
		g.Notices.UnsupportedOperation(loc, err.Error())
		return nil, false
	}
	toHandle, err := g.targetType(to)
	if err != nil {
		g.Notices.UnsupportedOperation(loc, err.Error())
		return nil, false
	}
	val, err := g.Target.GenerateCast(result.TargetData, fromHandle, toHandle)
	if err != nil {
		g.Notices.UnsupportedOperation(loc, err.Error())
		return nil, false
	}
	return &GenResult{TargetData: val, AstType: to}, true
}

// dereferenceIfNeeded strips a reference's l-value-ness for a vararg tail
// position, so that values, not references, are passed. The target handle
// itself is unchanged (targets don't model references); only the AST-level
// type drops the wrapper.
func dereferenceIfNeeded(r *GenResult) *GenResult {
	if ref, ok := r.AstType.(types.Reference); ok {
		return &GenResult{TargetData: r.TargetData, AstType: ref.To, AstNode: r.AstNode}
	}
	return r
}
