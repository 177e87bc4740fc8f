package types

import (
	"github.com/alusus/sppcore/domain"
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/seeker"
)

// Match classifies how well a single argument fits a single declared
// parameter, the three-valued result matchNextArg folds into an overall
// candidate ranking.
type Match int

const (
	MatchNone Match = iota
	MatchCastable
	MatchExact
)

// ArgMatchContext is threaded explicitly through successive calls to
// MatchNextArg over one candidate's parameter list, an explicit value
// passed along the argument iteration rather than hidden in mutable
// fields. It carries the execution context plus a
// running tally a caller can inspect after the walk (e.g. to report which
// position first failed).
type ArgMatchContext struct {
	Ctx          *ExecutionContext
	Reg          *Registry
	Position     int
	WorstSoFar   Match
	FailPosition int // -1 until a MatchNone is hit
}

// NewArgMatchContext starts a fresh match walk.
func NewArgMatchContext(reg *Registry, ctx *ExecutionContext) *ArgMatchContext {
	return &ArgMatchContext{Reg: reg, Ctx: ctx, WorstSoFar: MatchExact, FailPosition: -1}
}

// MatchNextArg classifies argType against paramType and folds the result
// into mctx's running worst-case, advancing mctx.Position. It returns the
// per-argument Match so callers doing vararg tail handling can special-case
// positions beyond the fixed parameter list.
func MatchNextArg(paramType, argType Type, mctx *ArgMatchContext) Match {
	m := classifyArg(paramType, argType, mctx.Ctx)
	if m < mctx.WorstSoFar {
		mctx.WorstSoFar = m
	}
	if m == MatchNone && mctx.FailPosition < 0 {
		mctx.FailPosition = mctx.Position
	}
	mctx.Position++
	return m
}

func classifyArg(paramType, argType Type, ctx *ExecutionContext) Match {
	// Reference args are naturally dereferenced for comparison purposes;
	// only assignment/cast sites care about the l-value distinction.
	if ref, ok := argType.(Reference); ok {
		return classifyArg(paramType, ref.To, ctx)
	}
	if Equal(paramType, argType) {
		return MatchExact
	}
	if IsImplicitlyCastableTo(argType, paramType, ctx) {
		return MatchCastable
	}
	return MatchNone
}

// Callee is the result of a successful LookupCallee: either a Function
// Definition with its declared signature, or a non-Function Definition
// (e.g. a variable whose type is an array) returned so the caller
// can fall back to array-index lowering instead of a function call.
type Callee struct {
	Definition *ast.Node // the resolved Definition
	Type       Type      // the callee's own AST-level type (array type for the fallback case, the declared return type for a Function)
	IsFunction bool
}

// LookupCallee resolves nameExpr against scope via the seeker, enumerating
// every same-named candidate and selecting the unique best match for
// paramTypes:
//  1. enumerate all candidates named nameExpr via the seeker;
//  2. for each Function candidate, classify every declared parameter
//     against paramTypes as Exact, Castable, or None via MatchNextArg;
//  3. choose the unique best candidate: Exact beats Castable; among
//     Castables, the one with the most Exact fixed positions wins. Multiple
//     Exacts, or Castables tied on their count of Exact positions, is a
//     NoCalleeMatch error;
//  4. a single non-Function candidate is returned as-is (callee=variable,
//     calleeType=its own type) for the array-index fallback.
func LookupCallee(
	s *seeker.Seeker,
	nameExpr *ast.Node,
	root seeker.DataRoot,
	searchOwners bool,
	paramTypes []Type,
	reg *Registry,
	ctx *ExecutionContext,
) (*Callee, error) {
	var functionCandidates []*ast.Node
	var nonFunctionCandidates []*ast.Node

	flags := seeker.NoFlags
	if !searchOwners {
		flags = seeker.SkipOwners
	}

	_, err := s.Foreach(nameExpr, root, func(slot *seeker.Slot) seeker.Verb {
		if slot.Definition == nil {
			return seeker.SkipAndMove
		}
		target := slot.Definition.Target
		if target != nil && target.Tag == ast.TagFunction {
			functionCandidates = append(functionCandidates, slot.Definition)
		} else {
			nonFunctionCandidates = append(nonFunctionCandidates, slot.Definition)
		}
		return seeker.SkipAndMove
	}, flags)
	if err != nil {
		return nil, err
	}

	if len(functionCandidates) == 0 {
		switch len(nonFunctionCandidates) {
		case 0:
			return nil, domain.NewUnknownSymbolError(identText(nameExpr))
		case 1:
			def := nonFunctionCandidates[0]
			t, terr := TraceValueType(def.Target, reg)
			if terr != nil {
				return nil, terr
			}
			return &Callee{Definition: def, Type: t, IsFunction: false}, nil
		default:
			return nil, domain.NewNoCalleeMatchError(identText(nameExpr))
		}
	}

	type scored struct {
		def   *ast.Node
		worst Match
	}
	var best []scored
	bestRank := MatchNone
	bestExact := -1
	for _, def := range functionCandidates {
		fn := def.Target
		rank, ok := rankFunction(fn, paramTypes, reg, ctx)
		if !ok {
			continue
		}
		exact := 0
		for i, p := range fn.Args {
			if declared, terr := TraceType(p.TypeSpec, reg); terr == nil && classifyArg(declared, paramTypes[i], ctx) == MatchExact {
				exact++
			}
		}
		if rank > bestRank || (rank == bestRank && exact > bestExact) {
			bestRank, bestExact = rank, exact
			best = []scored{{def, rank}}
		} else if rank == bestRank && exact == bestExact {
			best = append(best, scored{def, rank})
		}
	}
	if bestRank == MatchNone || len(best) == 0 {
		return nil, domain.NewNoCalleeMatchError(identText(nameExpr))
	}
	if len(best) > 1 {
		return nil, domain.NewNoCalleeMatchError(identText(nameExpr))
	}
	fn := best[0].def.Target
	fnType, err := FunctionType(fn, reg)
	if err != nil {
		return nil, err
	}
	return &Callee{Definition: best[0].def, Type: fnType, IsFunction: true}, nil
}

// rankFunction classifies an entire call against fn's declared parameter
// list, honoring the vararg suffix rule: a function with N fixed params and
// a vararg tail accepts any >= N arguments, with tail arguments always
// promoted to their natural value type rather than matched against a
// declared type.
func rankFunction(fn *ast.Node, paramTypes []Type, reg *Registry, ctx *ExecutionContext) (Match, bool) {
	fixed := fn.Args
	if fn.Variadic {
		if len(paramTypes) < len(fixed) {
			return MatchNone, false
		}
	} else if len(paramTypes) != len(fixed) {
		return MatchNone, false
	}

	mctx := NewArgMatchContext(reg, ctx)
	for i, p := range fixed {
		declared, err := TraceType(p.TypeSpec, reg)
		if err != nil {
			return MatchNone, false
		}
		m := MatchNextArg(declared, paramTypes[i], mctx)
		if m == MatchNone {
			return MatchNone, false
		}
	}
	// Vararg tail arguments are always accepted (promoted to natural type
	// at the call site by the expression generator); they don't affect the
	// Exact/Castable rank of the fixed prefix.
	return mctx.WorstSoFar, true
}

// TraceValueType returns the AST-level type of an arbitrary definition
// target that is not itself a type-spec (e.g. a variable's declared type
// spec, stored on the variable AST shape the driver builds). Variables are
// modeled in this core as a Definition whose Target carries a type-spec
// directly reachable from the node's own fields; TraceType already knows
// how to read every type-spec shape.
func TraceValueType(target *ast.Node, reg *Registry) (Type, error) {
	return TraceType(target, reg)
}

// FunctionType resolves fn's declared return type — the AST-level type a
// successful call through fn produces. The call expression itself is
// emitted from fn.Args/fn.RetType directly; this is only the type the
// expression generator attaches to the GenResult of a call.
func FunctionType(fn *ast.Node, reg *Registry) (Type, error) {
	return TraceType(fn.RetType, reg)
}

func identText(n *ast.Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.Tag == ast.TagIdentifier {
		return n.Text
	}
	return string(n.Tag)
}
