package codegen

import "github.com/alusus/sppcore/internal/types"

// infixBuiltinName maps an InfixOperator's type-token to the builtin
// function name overload resolution searches for (__add, __sub, …).
var infixBuiltinName = map[string]string{
	"+":  "__add",
	"-":  "__sub",
	"*":  "__mul",
	"/":  "__div",
	"==": "__eq",
	"!=": "__ne",
	">":  "__gt",
	">=": "__ge",
	"<":  "__lt",
	"<=": "__le",
}

// prefixBuiltinName maps a PrefixOperator's type-token to its builtin
// overload-search name, mirroring infixBuiltinName for the one unary
// arithmetic operator the built-in table names (negInt/negFloat).
var prefixBuiltinName = map[string]string{
	"-": "__neg",
}

// builtinBinaryOps is the binary built-in operator table, keyed by the `#`-prefixed name the expression generator's function
// call lowering recognizes and dispatches straight to a target-generator
// primitive rather than emitting a user-function call.
var builtinBinaryOps = map[string]bool{
	"#addInt": true, "#addFloat": true,
	"#subInt": true, "#subFloat": true,
	"#mulInt": true, "#mulFloat": true,
	"#divInt": true, "#divFloat": true,
	"#equalInt": true, "#notEqualInt": true,
	"#greaterThanInt": true, "#greaterThanOrEqualInt": true,
	"#lessThanInt": true, "#lessThanOrEqualInt": true,
	"#equalFloat": true, "#notEqualFloat": true,
	"#greaterThanFloat": true, "#greaterThanOrEqualFloat": true,
	"#lessThanFloat": true, "#lessThanOrEqualFloat": true,
}

// builtinUnaryOps is the unary built-in operator table. #negFloat takes
// one operand, same as #negInt.
var builtinUnaryOps = map[string]bool{
	"#negInt":   true,
	"#negFloat": true,
}

// isBuiltinName reports whether name (including its leading #) names a
// recognized built-in operator of either arity.
func isBuiltinName(name string) bool {
	return builtinBinaryOps[name] || builtinUnaryOps[name]
}

// builtinArity returns the expected argument count for a built-in name, or
// 0, false if name is not recognized.
func builtinArity(name string) (int, bool) {
	if builtinUnaryOps[name] {
		return 1, true
	}
	if builtinBinaryOps[name] {
		return 2, true
	}
	return 0, false
}

// builtinOperandKind picks which concrete instance of a builtin family
// (e.g. __add -> #addInt vs #addFloat) applies, based on the resolved
// operand type. Only Int and Float operands participate in the built-in
// table; any other operand type is handled by user-overload resolution
// instead (a user-defined __add(MyStruct, MyStruct), say).
func builtinOperandKind(t types.Type) (string, bool) {
	switch t.(type) {
	case types.Int:
		return "Int", true
	case types.Float:
		return "Float", true
	default:
		return "", false
	}
}
