// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes apidesc capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apidesc"
	"github.com/erraggy/apidesc/config"
	"github.com/erraggy/apidesc/typeinfo"
)

const serverInstructions = `apidesc MCP server: describes the HTTP endpoints declared by Go controller types and renders schemas, field tables and Markdown documents for Go types.

Sources: every tool takes a source with an optional dir (module directory) and patterns (go/packages patterns, default ./...). Controllers are marked with //apidesc:controller directives and endpoints with //apidesc:get, //apidesc:post and related directives.

Configuration: apidesc settings (excluded fields, table prefix) come from the server's config file and APIDESC_* environment variables. Server settings use APIDESC_MCP_* variables:
- APIDESC_MCP_CACHE_ENABLED (default: true): reuse loaded packages between calls
- APIDESC_MCP_CACHE_TTL (default: 30s): how long a load is reused
- APIDESC_MCP_CACHE_MAX_SIZE (default: 4): number of cached loads
- APIDESC_MCP_LOAD_TIMEOUT (default: 2m): limit for one package load`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context, settings *config.Config, logger typeinfo.Logger) error {
	srv := newServer(settings, logger)
	if srv.cfg.CacheEnabled {
		srv.cache.startSweeper(ctx, srv.cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "apidesc", Version: apidesc.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	srv.registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (srv *server) registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_endpoints",
		Description: "List the endpoints declared by controller types in Go source. Returns controller, method, HTTP verb, path and title for each mapped method. Filter to one controller with controller.",
	}, srv.handleListEndpoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe_endpoint",
		Description: "Describe one controller method as an HTTP endpoint: verb, path, path variables, query parameters, form fields, request body schema and response schema. Schemas are JSON text with type, description, example, properties, items and required keys.",
	}, srv.handleDescribeEndpoint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_schema",
		Description: "Render the schema of a named Go type as JSON (default) or YAML. Fields are required unless marked optional; nested structs become properties and slices become items.",
	}, srv.handleRenderSchema)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_table",
		Description: "Render the fields of a named Go struct type as a Markdown table with name, type, required, range and description columns. Nested fields are indented with the configured prefix.",
	}, srv.handleRenderTable)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_doc",
		Description: "Render the Markdown document of an endpoint (set controller and method) or of a struct type (set type). Endpoint documents include request and response examples and field tables.",
	}, srv.handleRenderDoc)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
