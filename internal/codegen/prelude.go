package codegen

import "github.com/alusus/sppcore/internal/ast"

// BuildPrelude returns a Scope pre-populated with the overloaded
// Definitions that back the infix/prefix built-in operator table: one "__add"/"__sub"/… Definition per operand kind (Int, Float),
// each targeting a Function whose own Name is the `#`-prefixed primitive
// the expression generator dispatches straight to the target interface.
// The overload-search name ("__add") and the dispatch name ("#addInt") are
// deliberately distinct: LookupCallee resolves the former against operand
// types, generateFunctionCall's builtin check fires on the latter.
//
// A driver wires this into the outermost level of the repository a module's
// top-level code resolves against (or a caller embeds it directly as a
// module-level scope), the way a language's standard prelude is seeded
// ahead of user code.
func BuildPrelude(loc ast.Location) *ast.Node {
	prelude := ast.NewScope(loc)

	intT := func() *ast.Node { return &ast.Node{Tag: ast.TagIntTypeSpec, Bits: 32, Signed: true, Location: loc} }
	floatT := func() *ast.Node { return &ast.Node{Tag: ast.TagFloatTypeSpec, Bits: 32, Location: loc} }
	boolT := func() *ast.Node { return &ast.Node{Tag: ast.TagIntTypeSpec, Bits: 8, Signed: false, Location: loc} }

	binary := []struct {
		search  string
		intName string
		fltName string
		compare bool
	}{
		{"__add", "#addInt", "#addFloat", false},
		{"__sub", "#subInt", "#subFloat", false},
		{"__mul", "#mulInt", "#mulFloat", false},
		{"__div", "#divInt", "#divFloat", false},
		{"__eq", "#equalInt", "#equalFloat", true},
		{"__ne", "#notEqualInt", "#notEqualFloat", true},
		{"__gt", "#greaterThanInt", "#greaterThanFloat", true},
		{"__ge", "#greaterThanOrEqualInt", "#greaterThanOrEqualFloat", true},
		{"__lt", "#lessThanInt", "#lessThanFloat", true},
		{"__le", "#lessThanOrEqualInt", "#lessThanOrEqualFloat", true},
	}
	for _, b := range binary {
		intRet := intT()
		if b.compare {
			intRet = boolT()
		}
		fltRet := floatT()
		if b.compare {
			fltRet = boolT()
		}
		prelude.AppendChild(ast.NewDefinition(b.search, builtinFunc(b.intName, []*ast.Param{
			{Name: "a", TypeSpec: intT()}, {Name: "b", TypeSpec: intT()},
		}, intRet, loc), loc))
		prelude.AppendChild(ast.NewDefinition(b.search, builtinFunc(b.fltName, []*ast.Param{
			{Name: "a", TypeSpec: floatT()}, {Name: "b", TypeSpec: floatT()},
		}, fltRet, loc), loc))
	}

	prelude.AppendChild(ast.NewDefinition("__neg", builtinFunc("#negInt", []*ast.Param{
		{Name: "a", TypeSpec: intT()},
	}, intT(), loc), loc))
	prelude.AppendChild(ast.NewDefinition("__neg", builtinFunc("#negFloat", []*ast.Param{
		{Name: "a", TypeSpec: floatT()},
	}, floatT(), loc), loc))

	return prelude
}

func builtinFunc(name string, args []*ast.Param, retType *ast.Node, loc ast.Location) *ast.Node {
	return ast.NewFunction(name, args, retType, ast.NewScope(loc), false, loc)
}
