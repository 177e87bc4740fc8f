// driver.go implements the generation driver: a multi-stage walk over
// modules that declares user-defined types, declares function signatures,
// emits function bodies, and finally clears per-node target-handle caches
// once their values have been consumed by the run that produced them.
package codegen

import (
	"fmt"

	"github.com/alusus/sppcore/domain"
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/notice"
	"github.com/alusus/sppcore/internal/scope"
	"github.com/alusus/sppcore/internal/types"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/multierr"
)

// Stage tracks a Function/variable Definition's progress through the
// staged walk.
type Stage int

const (
	StageNone Stage = iota
	StagePreCodeGen
	StageCodeGen
	StagePostCodeGen
)

// Driver orchestrates Generator across a set of modules. It is built once
// per compilation run and is not reusable afterward (its Generator carries
// a single generation-session tag).
type Driver struct {
	Gen     *Generator
	Modules []*ast.Node

	// Prelude is the outermost repository level for every function body,
	// seeding the built-in operator Definitions ahead of user code. Nil
	// skips it (some tests drive bodies with hand-built repositories).
	Prelude *ast.Node

	// ShowProgress enables a schollz/progressbar render of the per-module
	// staged walk on stderr; off by default so library callers (tests, the
	// MCP server) don't get terminal output mixed into their own.
	ShowProgress bool

	stage map[*ast.Node]Stage
}

// NewDriver returns a Driver ready to run the staged walk over modules,
// with the built-in operator prelude as the outermost scope level.
func NewDriver(gen *Generator, modules []*ast.Node) *Driver {
	return &Driver{
		Gen:     gen,
		Modules: modules,
		Prelude: BuildPrelude(ast.Location{}),
		stage:   make(map[*ast.Node]Stage),
	}
}

// Run executes the full staged walk: declare types, declare function
// signatures, emit bodies to a fixed point, then clear consumed caches.
// It returns a combined error (via go.uber.org/multierr) naming every
// function that remained unresolved once the fixed-point loop gave up,
// while notices for each are also appended to Gen.Notices for the caller's
// diagnostic output.
func (d *Driver) Run() error {
	var bar *progressbar.ProgressBar
	if d.ShowProgress {
		bar = progressbar.Default(int64(len(d.Modules)*3), "generating")
	}
	tick := func() {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	for _, m := range d.Modules {
		d.declareTypes(m)
		tick()
	}

	var allFuncs []*ast.Node
	for _, m := range d.Modules {
		allFuncs = append(allFuncs, d.declareFunctionSignatures(m)...)
		tick()
	}

	if err := d.emitBodiesFixedPoint(allFuncs); err != nil {
		return err
	}
	for _, m := range d.Modules {
		d.postGeneration(m)
		tick()
	}
	return nil
}

// declareTypes registers every UserTypeSpec Definition found directly in
// module m's top level, so forward references between types in the same
// module resolve regardless of declaration order.
func (d *Driver) declareTypes(m *ast.Node) {
	for _, child := range m.Children {
		if child.Tag != ast.TagDefinition || child.Target == nil {
			continue
		}
		if child.Target.Tag == ast.TagUserTypeSpec {
			if _, err := types.TraceType(child.Target, d.Gen.Types); err != nil {
				d.Gen.Notices.UnsupportedOperation(child.Location, err.Error())
			}
		}
	}
}

// declareFunctionSignatures eagerly declares every Function Definition's
// signature (idempotent; body emission may re-trigger it but the handle is
// memoized) and returns the list of Function Definitions found in m, each
// initialized to StagePreCodeGen.
func (d *Driver) declareFunctionSignatures(m *ast.Node) []*ast.Node {
	var funcs []*ast.Node
	for _, child := range m.Children {
		if child.Tag != ast.TagDefinition || child.Target == nil || child.Target.Tag != ast.TagFunction {
			continue
		}
		if _, err := d.Gen.declareFunction(child); err != nil {
			d.Gen.Notices.UnsupportedOperation(child.Location, err.Error())
			continue
		}
		d.stage[child] = StagePreCodeGen
		funcs = append(funcs, child)
	}
	return funcs
}

// emitBodiesFixedPoint re-visits functions stuck in StagePreCodeGen until
// either progress is made or a fixed point is reached, at which point every
// still-stuck function is reported as an undefined symbol.
// Each attempt runs against a scratch notice.Store so forward-reference
// failures that later resolve don't leave phantom diagnostics behind.
func (d *Driver) emitBodiesFixedPoint(funcs []*ast.Node) error {
	pending := funcs
	lastTrial := make(map[*ast.Node]*notice.Store)

	for len(pending) > 0 {
		var stillPending []*ast.Node
		progressed := false
		for _, def := range pending {
			trial := notice.NewStore()
			saved := d.Gen.Notices
			d.Gen.Notices = trial
			ok := d.emitFunctionBody(def)
			d.Gen.Notices = saved

			if ok {
				d.stage[def] = StageCodeGen
				progressed = true
				continue
			}
			lastTrial[def] = trial
			stillPending = append(stillPending, def)
		}
		if !progressed {
			break
		}
		pending = stillPending
	}

	if len(pending) == 0 {
		return nil
	}

	var combined error
	for _, def := range pending {
		if trial, ok := lastTrial[def]; ok {
			for _, n := range trial.Notices() {
				d.Gen.Notices.Add(n.Kind, n.Severity, n.Location, "%s", n.Message)
			}
		}
		combined = multierr.Append(combined, domain.NewUndefinedSymbolError(
			fmt.Sprintf("function %q could not be fully resolved", def.Name)))
	}
	return combined
}

// emitFunctionBody lowers one function's body via the statement generator.
// The repository is layered prelude → enclosing module → body, so body
// statements resolve module-level names and built-in operators without
// owner-chain ascent. It returns false if any statement failed to lower (a
// notice was appended to the currently-installed, possibly scratch, store).
func (d *Driver) emitFunctionBody(def *ast.Node) bool {
	fn := def.Target
	if !def.Location.IsZero() {
		d.Gen.Notices.PushLocation(def.Location)
		defer d.Gen.Notices.PopLocation()
	}
	var repo *scope.Repository
	if d.Prelude != nil {
		repo = scope.NewRepository(d.Prelude)
		if owner := def.Owner; owner != nil && owner.IsScopeLike() {
			repo.Push(owner)
		}
		if len(fn.Args) > 0 {
			repo.Push(paramScope(fn))
		}
		repo.Push(fn.Body)
	} else {
		repo = scope.NewRepository(fn.Body)
	}
	return emitStatements(d.Gen, fn, repo)
}

// paramScope synthesizes a scope level binding fn's declared parameters as
// Definitions, so body expressions resolve argument names the same way they
// resolve any other variable.
func paramScope(fn *ast.Node) *ast.Node {
	s := ast.NewScope(fn.Location)
	for _, a := range fn.Args {
		s.AppendChild(ast.NewDefinition(a.Name, a.TypeSpec, fn.Location))
	}
	return s
}

// postGeneration clears every node's cached target handle for this
// generation session; handles are only valid for the run that produced
// them.
func (d *Driver) postGeneration(m *ast.Node) {
	ast.Collect(m, func(n *ast.Node) bool {
		n.CacheClear()
		return false
	})
}
