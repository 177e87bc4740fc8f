package main

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all sppcore MCP tools with the server
func RegisterTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("load_fixture",
		mcp.WithDescription("Parse a fixture module file and return its AST as YAML"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the .sppfix fixture file to load")),
	), HandleLoadFixture)

	s.AddTool(mcp.NewTool("seek_symbol",
		mcp.WithDescription("Resolve a symbol name against a fixture module's scopes, listing every matching definition in declaration order"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the .sppfix fixture file to search")),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Identifier to resolve; use dots for nested lookup (e.g. Mod.f)")),
	), HandleSeekSymbol)

	s.AddTool(mcp.NewTool("trace_type",
		mcp.WithDescription("Resolve a named type definition in a fixture module to its canonical type"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the .sppfix fixture file")),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the type definition to trace")),
	), HandleTraceType)

	s.AddTool(mcp.NewTool("check_module",
		mcp.WithDescription("Run the staged generation walk over fixture modules and report diagnostics"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory of fixture modules to check")),
	), HandleCheckModule)
}
