// Package debugtarget is a recording, in-memory implementation of
// target.Generator. It performs no real code generation: every operation
// appends one line to an ordered trace and hands back a fresh symbolic
// value handle, so tests and the CLI's check mode can assert exactly which
// target operations a lowering produced, in which order, without binding a
// real backend.
package debugtarget

import (
	"fmt"
	"strings"

	"github.com/alusus/sppcore/internal/target"
)

// Target records every Generator call. Not safe for concurrent use, same as
// the core that drives it.
type Target struct {
	ctx     target.ExecutionContext
	trace   []string
	counter int
}

// New returns an empty recording target for the given execution context.
func New(ctx target.ExecutionContext) *Target {
	return &Target{ctx: ctx}
}

// Trace returns a copy of the recorded operation lines in emission order.
func (t *Target) Trace() []string {
	out := make([]string, len(t.trace))
	copy(out, t.trace)
	return out
}

// Reset drops all recorded operations and restarts value numbering.
func (t *Target) Reset() {
	t.trace = nil
	t.counter = 0
}

func (t *Target) ExecutionContext() target.ExecutionContext { return t.ctx }

// next mints a fresh symbolic value handle ("%1", "%2", …).
func (t *Target) next() target.Value {
	t.counter++
	return fmt.Sprintf("%%%d", t.counter)
}

func (t *Target) record(format string, args ...interface{}) {
	t.trace = append(t.trace, fmt.Sprintf(format, args...))
}

func typeName(h target.TypeHandle) string {
	if h == nil {
		return "void"
	}
	if s, ok := h.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", h)
}

func valueName(v target.Value) string {
	if v == nil {
		return "<nil>"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func (t *Target) GetIntType(bits int, signed bool) (target.TypeHandle, error) {
	if signed {
		return fmt.Sprintf("i%d", bits), nil
	}
	return fmt.Sprintf("u%d", bits), nil
}

func (t *Target) GetFloatType(bits int) (target.TypeHandle, error) {
	return fmt.Sprintf("f%d", bits), nil
}

func (t *Target) GetPointerType(inner target.TypeHandle) (target.TypeHandle, error) {
	return "ptr[" + typeName(inner) + "]", nil
}

func (t *Target) GetArrayType(inner target.TypeHandle, length int) (target.TypeHandle, error) {
	return fmt.Sprintf("array[%s x %d]", typeName(inner), length), nil
}

func (t *Target) GetStructType(name string, members []target.TypeHandle) (target.TypeHandle, error) {
	fields := make([]string, len(members))
	for i, m := range members {
		fields[i] = typeName(m)
	}
	return fmt.Sprintf("struct %s{%s}", name, strings.Join(fields, ", ")), nil
}

func (t *Target) GenerateIntLiteral(h target.TypeHandle, raw string, value int64) (target.Value, error) {
	v := t.next()
	t.record("intLiteral %s (%d) : %s -> %s", raw, value, typeName(h), valueName(v))
	return v, nil
}

func (t *Target) GenerateFloatLiteral(h target.TypeHandle, raw string, value float64) (target.Value, error) {
	v := t.next()
	t.record("floatLiteral %s (%g) : %s -> %s", raw, value, typeName(h), valueName(v))
	return v, nil
}

func (t *Target) GenerateStringLiteral(text string) (target.Value, error) {
	v := t.next()
	t.record("stringLiteral %q -> %s", text, valueName(v))
	return v, nil
}

func (t *Target) GenerateVarDefinition(name string, h target.TypeHandle) (target.Value, error) {
	v := t.next()
	t.record("varDefinition %s : %s -> %s", name, typeName(h), valueName(v))
	return v, nil
}

func (t *Target) GenerateVarReference(val target.Value, h target.TypeHandle) (target.Value, error) {
	v := t.next()
	t.record("varReference %s : %s -> %s", valueName(val), typeName(h), valueName(v))
	return v, nil
}

func (t *Target) GenerateMemberVarReference(owner target.Value, structType, fieldType target.TypeHandle, field string) (target.Value, error) {
	v := t.next()
	t.record("memberVarReference %s.%s : %s of %s -> %s",
		valueName(owner), field, typeName(fieldType), typeName(structType), valueName(v))
	return v, nil
}

func (t *Target) GenerateArrayElementReference(arr target.Value, elemType target.TypeHandle, index target.Value) (target.Value, error) {
	v := t.next()
	t.record("arrayElementReference %s[%s] : %s -> %s",
		valueName(arr), valueName(index), typeName(elemType), valueName(v))
	return v, nil
}

func (t *Target) GenerateDereference(ptr target.Value, pointeeType target.TypeHandle) (target.Value, error) {
	v := t.next()
	t.record("dereference %s : %s -> %s", valueName(ptr), typeName(pointeeType), valueName(v))
	return v, nil
}

func (t *Target) GenerateBinaryOp(name string, lhs, rhs target.Value, resultType target.TypeHandle) (target.Value, error) {
	v := t.next()
	t.record("binaryOp %s %s, %s : %s -> %s",
		name, valueName(lhs), valueName(rhs), typeName(resultType), valueName(v))
	return v, nil
}

func (t *Target) GenerateUnaryOp(name string, operand target.Value, resultType target.TypeHandle) (target.Value, error) {
	v := t.next()
	t.record("unaryOp %s %s : %s -> %s", name, valueName(operand), typeName(resultType), valueName(v))
	return v, nil
}

func (t *Target) GenerateFunctionDecl(name string, params []target.TypeHandle, ret target.TypeHandle, variadic bool) (target.Value, error) {
	v := t.next()
	ps := make([]string, len(params))
	for i, p := range params {
		ps[i] = typeName(p)
	}
	sig := strings.Join(ps, ", ")
	if variadic {
		sig += ", ..."
	}
	t.record("functionDecl %s(%s) %s -> %s", name, sig, typeName(ret), valueName(v))
	return v, nil
}

func (t *Target) GenerateFunctionCall(fn target.Value, args []target.Value, ret target.TypeHandle) (target.Value, error) {
	v := t.next()
	as := make([]string, len(args))
	for i, a := range args {
		as[i] = valueName(a)
	}
	t.record("functionCall %s(%s) : %s -> %s", valueName(fn), strings.Join(as, ", "), typeName(ret), valueName(v))
	return v, nil
}

func (t *Target) GenerateAssign(dst, src target.Value) error {
	t.record("assign %s <- %s", valueName(dst), valueName(src))
	return nil
}

func (t *Target) GenerateCast(v target.Value, from, to target.TypeHandle) (target.Value, error) {
	out := t.next()
	t.record("cast %s : %s -> %s = %s", valueName(v), typeName(from), typeName(to), valueName(out))
	return out, nil
}

func (t *Target) GenerateReturn(v target.Value) error {
	if v == nil {
		t.record("return void")
		return nil
	}
	t.record("return %s", valueName(v))
	return nil
}
