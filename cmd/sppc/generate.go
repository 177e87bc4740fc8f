package main

import (
	"log"

	"github.com/spf13/afero"

	"github.com/alusus/sppcore/domain"
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/codegen"
	"github.com/alusus/sppcore/internal/config"
	"github.com/alusus/sppcore/internal/fixture"
	"github.com/alusus/sppcore/internal/notice"
	"github.com/alusus/sppcore/internal/target"
	"github.com/alusus/sppcore/internal/target/debugtarget"
	"github.com/alusus/sppcore/internal/types"
)

// generationResult carries everything one core run produced: the fixture
// modules that loaded, the recorded target-operation trace, and both
// diagnostic channels (notices for program errors, RunErr for the driver's
// undefined-symbol fixed point and recovered internal errors).
type generationResult struct {
	Modules []*fixture.LoadedModule
	Trace   []string
	Notices []notice.Notice

	// LoadErr combines per-file fixture parse failures; the well-formed
	// files still generate.
	LoadErr error

	// RunErr is the driver's combined error, or a recovered internal
	// invariant violation.
	RunErr error
}

// runGeneration loads fixture modules under root per cfg and drives the
// staged generation walk against a recording debug target.
func runGeneration(root string, cfg *config.Config, showProgress bool, logger *log.Logger) (*generationResult, error) {
	loader := fixture.NewLoader(afero.NewOsFs())
	if len(cfg.Fixtures.IncludePatterns) > 0 {
		loader.Include = cfg.Fixtures.IncludePatterns
	}
	loader.Exclude = cfg.Fixtures.ExcludePatterns

	modules, loadErr := loader.LoadDir(root)
	if loadErr != nil && len(modules) == 0 {
		return nil, loadErr
	}

	pointerBits, bigEndian := cfg.ExecutionContextOf()
	tgt := debugtarget.New(target.ExecutionContext{PointerBits: pointerBits, BigEndian: bigEndian})
	notices := notice.NewStore()
	gen := codegen.New(tgt, types.NewRegistry(), notices)
	if logger != nil {
		gen.SetLogger(logger)
	}

	astModules := make([]*ast.Node, len(modules))
	for i, m := range modules {
		astModules[i] = m.Module
	}
	driver := codegen.NewDriver(gen, astModules)
	driver.ShowProgress = showProgress

	runErr := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = domain.Recover(r)
			}
		}()
		return driver.Run()
	}()

	return &generationResult{
		Modules: modules,
		Trace:   tgt.Trace(),
		Notices: notices.Notices(),
		LoadErr: loadErr,
		RunErr:  runErr,
	}, nil
}

// hasErrors reports whether the run produced any Error-severity notice or a
// driver/loader failure.
func (r *generationResult) hasErrors() bool {
	if r.LoadErr != nil || r.RunErr != nil {
		return true
	}
	for _, n := range r.Notices {
		if n.Severity == notice.SeverityError {
			return true
		}
	}
	return false
}
