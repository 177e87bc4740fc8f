package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/afero"

	"github.com/alusus/sppcore/domain"
	"github.com/alusus/sppcore/internal/ast"
	"github.com/alusus/sppcore/internal/codegen"
	"github.com/alusus/sppcore/internal/fixture"
	"github.com/alusus/sppcore/internal/notice"
	"github.com/alusus/sppcore/internal/seeker"
	"github.com/alusus/sppcore/internal/target"
	"github.com/alusus/sppcore/internal/target/debugtarget"
	"github.com/alusus/sppcore/internal/types"
)

func stringArg(request mcp.CallToolRequest, name string) (string, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return "", mcp.NewToolResultError("invalid arguments format")
	}
	v, ok := args[name].(string)
	if !ok || v == "" {
		return "", mcp.NewToolResultError(name + " parameter is required and must be a string")
	}
	return v, nil
}

func loadModule(path string) (*fixture.LoadedModule, *mcp.CallToolResult) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path))
	}
	mod, err := fixture.NewLoader(afero.NewOsFs()).LoadFile(path)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("failed to load fixture: %v", err))
	}
	return mod, nil
}

// HandleLoadFixture handles the load_fixture tool
func HandleLoadFixture(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, errResult := stringArg(request, "path")
	if errResult != nil {
		return errResult, nil
	}
	mod, errResult := loadModule(path)
	if errResult != nil {
		return errResult, nil
	}
	dump, err := fixture.DumpYAML(mod.Module)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to dump AST: %v", err)), nil
	}
	return mcp.NewToolResultText(string(dump)), nil
}

// HandleSeekSymbol handles the seek_symbol tool
func HandleSeekSymbol(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, errResult := stringArg(request, "path")
	if errResult != nil {
		return errResult, nil
	}
	symbol, errResult := stringArg(request, "symbol")
	if errResult != nil {
		return errResult, nil
	}
	mod, errResult := loadModule(path)
	if errResult != nil {
		return errResult, nil
	}

	type match struct {
		Name     string `json:"name"`
		Target   string `json:"target"`
		Location string `json:"location"`
	}
	var matches []match
	ref := referenceFor(symbol)
	_, err := seeker.New().Foreach(ref, mod.Module, func(slot *seeker.Slot) seeker.Verb {
		if slot.Definition != nil {
			targetTag := "<empty>"
			if slot.Definition.Target != nil {
				targetTag = string(slot.Definition.Target.Tag)
			}
			matches = append(matches, match{
				Name:     slot.Definition.Name,
				Target:   targetTag,
				Location: slot.Definition.Location.String(),
			})
		}
		return seeker.SkipAndMove
	}, seeker.NoFlags)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("seek failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(matches)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// referenceFor builds the reference expression for a dotted symbol path:
// "Mod.f" becomes a left-leaning LinkOperator chain, a bare name an
// Identifier.
func referenceFor(symbol string) *ast.Node {
	parts := strings.Split(symbol, ".")
	ref := ast.NewIdentifier(parts[0], ast.Location{})
	for _, part := range parts[1:] {
		ref = ast.NewLinkOperator(".", ref, ast.NewIdentifier(part, ast.Location{}), ast.Location{})
	}
	return ref
}

// HandleTraceType handles the trace_type tool
func HandleTraceType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, errResult := stringArg(request, "path")
	if errResult != nil {
		return errResult, nil
	}
	name, errResult := stringArg(request, "name")
	if errResult != nil {
		return errResult, nil
	}
	mod, errResult := loadModule(path)
	if errResult != nil {
		return errResult, nil
	}

	spec, ok := seeker.TryGet(seeker.New(), referenceFor(name), mod.Module)
	if !ok || spec == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no definition named %q", name)), nil
	}
	traced, err := types.TraceType(spec, types.NewRegistry())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not a type expression: %v", err)), nil
	}
	return mcp.NewToolResultText(traced.String()), nil
}

// HandleCheckModule handles the check_module tool
func HandleCheckModule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, errResult := stringArg(request, "path")
	if errResult != nil {
		return errResult, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	modules, loadErr := fixture.NewLoader(afero.NewOsFs()).LoadDir(path)

	tgt := debugtarget.New(target.ExecutionContext{PointerBits: 64})
	notices := notice.NewStore()
	gen := codegen.New(tgt, types.NewRegistry(), notices)
	astModules := make([]*ast.Node, len(modules))
	for i, m := range modules {
		astModules[i] = m.Module
	}
	driver := codegen.NewDriver(gen, astModules)

	runErr := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = domain.Recover(r)
			}
		}()
		return driver.Run()
	}()

	type noticeDoc struct {
		Kind     string `json:"kind"`
		Severity string `json:"severity"`
		Message  string `json:"message"`
		Location string `json:"location"`
	}
	doc := struct {
		Modules  []string    `json:"modules"`
		Notices  []noticeDoc `json:"notices"`
		LoadErr  string      `json:"load_error,omitempty"`
		RunErr   string      `json:"run_error,omitempty"`
		TargetOp int         `json:"target_ops"`
	}{TargetOp: len(tgt.Trace())}
	for _, m := range modules {
		doc.Modules = append(doc.Modules, m.Path)
	}
	for _, n := range notices.Notices() {
		doc.Notices = append(doc.Notices, noticeDoc{
			Kind:     string(n.Kind),
			Severity: n.Severity.String(),
			Message:  n.Message,
			Location: n.Location.String(),
		})
	}
	if loadErr != nil {
		doc.LoadErr = loadErr.Error()
	}
	if runErr != nil {
		doc.RunErr = runErr.Error()
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
