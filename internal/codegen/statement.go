// statement.go is the driver-level piece that lowers a Function's body: it
// walks a Scope's direct children statement by statement, invoking the
// expression generator for each and threading return/block handling. The
// AST has no dedicated Statement node; a body is simply a Scope of
// expressions, Definitions, and TerminateOps.
package codegen

import (
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/scope"
)

// emitStatements lowers fn's body against repo, returning false the moment
// any statement fails to lower (a notice was appended to g.Notices). A
// variable Definition with no initializer is left untouched here: its
// target-level allocation is emitted lazily, on the first expression that
// actually names it.
func emitStatements(g *Generator, fn *ast.Node, repo *scope.Repository) bool {
	return emitScopeBody(g, fn.Body, repo)
}

// emitScopeBody lowers one Scope's direct children in order. Nested Scopes
// (the only block-structuring shape the data model names) push a fresh
// lexical level onto repo for the duration of their own body and pop it
// back off afterward.
func emitScopeBody(g *Generator, body *ast.Node, repo *scope.Repository) bool {
	for _, stmt := range body.Children {
		if !emitOneStatement(g, stmt, repo) {
			return false
		}
	}
	return true
}

func emitOneStatement(g *Generator, stmt *ast.Node, repo *scope.Repository) bool {
	switch stmt.Tag {
	case ast.TagDefinition:
		// A Definition emits nothing here, whatever its Target: a variable's
		// target-level allocation happens on the first expression that
		// names it.
		return true
	case ast.TagScope:
		repo.Push(stmt)
		ok := emitScopeBody(g, stmt, repo)
		repo.Pop()
		return ok
	case ast.TagTerminateOp:
		return emitReturn(g, stmt, repo)
	default:
		_, ok := g.GenerateExpression(stmt, repo)
		return ok
	}
}

// emitReturn lowers a TerminateOp ("return expr;" or a bare "return;").
// An operand is dereferenced if it is a reference and returned as is; it
// is not cast to the enclosing function's declared return type.
func emitReturn(g *Generator, stmt *ast.Node, repo *scope.Repository) bool {
	if stmt.Operand == nil {
		if err := g.Target.GenerateReturn(nil); err != nil {
			g.Notices.UnsupportedOperation(stmt.Location, err.Error())
			return false
		}
		return true
	}
	val, ok := g.GenerateExpression(stmt.Operand, repo)
	if !ok {
		return false
	}
	val = dereferenceIfNeeded(val)
	if err := g.Target.GenerateReturn(val.TargetData); err != nil {
		g.Notices.UnsupportedOperation(stmt.Location, err.Error())
		return false
	}
	return true
}
