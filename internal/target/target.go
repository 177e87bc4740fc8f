// Package target declares the core's sole coupling to a backend: the
// Generator interface whose operations construct target-level types,
// produce values, and emit instructions. The concrete LLVM-style
// binding lives outside this repository; internal/target/debugtarget is a
// recording in-memory implementation used by tests and the CLI's check mode.
package target

// Value is an opaque handle to a target-level value or instruction result.
// The core never inspects it; it only threads handles between Generate*
// calls and caches them on AST nodes for the duration of a generation run.
type Value interface{}

// TypeHandle is an opaque handle to a target-level type.
type TypeHandle interface{}

// ExecutionContext carries the target-specific facts the core consults for
// pointer-width-sensitive decisions such as integer promotion and address
// arithmetic.
type ExecutionContext struct {
	PointerBits int
	BigEndian   bool
}

// Generator is the backend-facing interface producing low-level types,
// values, and instructions. Every operation reports failure through its
// error return; the expression generator converts those into notices and
// local recovery rather than aborting the run.
type Generator interface {
	// ExecutionContext describes the target environment this generator
	// emits for.
	ExecutionContext() ExecutionContext

	// Type construction.
	GetIntType(bits int, signed bool) (TypeHandle, error)
	GetFloatType(bits int) (TypeHandle, error)
	GetPointerType(inner TypeHandle) (TypeHandle, error)
	GetArrayType(inner TypeHandle, length int) (TypeHandle, error)
	GetStructType(name string, members []TypeHandle) (TypeHandle, error)

	// Value production.
	GenerateIntLiteral(t TypeHandle, raw string, value int64) (Value, error)
	GenerateFloatLiteral(t TypeHandle, raw string, value float64) (Value, error)
	GenerateStringLiteral(text string) (Value, error)

	// Variable operations.
	GenerateVarDefinition(name string, t TypeHandle) (Value, error)
	GenerateVarReference(v Value, t TypeHandle) (Value, error)
	GenerateMemberVarReference(owner Value, structType, fieldType TypeHandle, field string) (Value, error)
	GenerateArrayElementReference(arr Value, elemType TypeHandle, index Value) (Value, error)
	GenerateDereference(ptr Value, pointeeType TypeHandle) (Value, error)

	// Arithmetic and comparison primitives, dispatched by the `#`-prefixed
	// built-in names (#addInt, #equalFloat, #negInt, …).
	GenerateBinaryOp(name string, lhs, rhs Value, resultType TypeHandle) (Value, error)
	GenerateUnaryOp(name string, operand Value, resultType TypeHandle) (Value, error)

	// Control.
	GenerateFunctionDecl(name string, params []TypeHandle, ret TypeHandle, variadic bool) (Value, error)
	GenerateFunctionCall(fn Value, args []Value, ret TypeHandle) (Value, error)
	GenerateAssign(dst, src Value) error
	GenerateCast(v Value, from, to TypeHandle) (Value, error)
	GenerateReturn(v Value) error
}
