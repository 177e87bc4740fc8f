// Package codegen implements the core's expression generator, generation
// driver, and adjacent statement/function generator: a staged traversal
// that lowers typed AST nodes to target-level values and instructions via
// internal/target's neutral interface, orchestrating scope
// lookup through the seeker, overload selection and casts through the type
// registry, built-in operator dispatch, and user-function call emission.
package codegen

import (
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/notice"
	"github.com/alusus/sppcore/internal/seeker"
	"github.com/alusus/sppcore/internal/target"
	"github.com/alusus/sppcore/internal/types"
	"github.com/google/uuid"
)

// GenResult is the tuple every expression lowering produces: the opaque target-level handle, the AST-level type of the
// produced value (often a Reference to preserve l-value semantics), and —
// only for pure naming results such as a resolved module — the AST node
// itself instead of a runtime value.
type GenResult struct {
	TargetData target.Value
	AstType    types.Type
	AstNode    *ast.Node
}

// IsNaming reports whether this result names an AST object (a module, a
// type) rather than producing a runtime value.
func (r *GenResult) IsNaming() bool {
	return r != nil && r.AstNode != nil
}

// Generator lowers expression AST to target values. It holds every piece
// expression lowering orchestrates: scope lookup
// (via the seeker), overload resolution and casts (via the type registry),
// the target interface itself, and the notice store for user-level
// diagnostics. A Generator is not safe for concurrent use; the core is
// single-threaded cooperative.
type Generator struct {
	Target  target.Generator
	Types   *types.Registry
	Seeker  *seeker.Seeker
	Notices *notice.Store
	ExecCtx *types.ExecutionContext

	// SessionTag scopes the per-node target-handle cache (ast.Node.cache) to
	// one generation run, via google/uuid: cache keys carry the tag, so a
	// lookup never returns a handle stored under another run's tag. The
	// driver's post-generation pass clears every cache entry regardless of
	// tag.
	SessionTag string

	// Logger is optional and nil-safe.
	Logger Logger

	declaredFuncs map[*ast.Node]target.Value // Function Definition -> declared target handle, for call-site idempotency
}

// Logger is the minimal interface the generator and driver log through;
// *log.Logger satisfies it, and a nil Logger is always safe to call through
// the SetLogger/logf helpers below.
type Logger interface {
	Printf(format string, args ...interface{})
}

// New builds a Generator wired to the given target backend, type registry,
// and notice store, tagging every cached target handle it produces with a
// fresh per-run session ID.
func New(gen target.Generator, reg *types.Registry, notices *notice.Store) *Generator {
	ec := &types.ExecutionContext{
		PointerBits: gen.ExecutionContext().PointerBits,
		BigEndian:   gen.ExecutionContext().BigEndian,
	}
	return &Generator{
		Target:        gen,
		Types:         reg,
		Seeker:        seeker.New(),
		Notices:       notices,
		ExecCtx:       ec,
		SessionTag:    uuid.NewString(),
		declaredFuncs: make(map[*ast.Node]target.Value),
	}
}

// SetLogger installs l as the generator's logger; passing nil disables
// logging.
func (g *Generator) SetLogger(l Logger) { g.Logger = l }

func (g *Generator) logf(format string, args ...interface{}) {
	if g.Logger != nil {
		g.Logger.Printf(format, args...)
	}
}

func (g *Generator) cacheKey() string { return "target:" + g.SessionTag }

// DataRoot is re-exported for callers that don't want to import
// internal/seeker just to name the type.
type DataRoot = seeker.DataRoot
