package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apidesc/docgen"
	"github.com/erraggy/apidesc/schema"
)

type renderSchemaInput struct {
	Source sourceInput `json:"source"           jsonschema:"The Go packages to load"`
	Type   string      `json:"type"             jsonschema:"The type name"`
	Format string      `json:"format,omitempty" jsonschema:"Output format: json (default) or yaml"`
}

type renderOutput struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}

func (srv *server) handleRenderSchema(ctx context.Context, _ *mcp.CallToolRequest, input renderSchemaInput) (*mcp.CallToolResult, renderOutput, error) {
	format := input.Format
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "yaml" {
		return errResult(fmt.Errorf("invalid format %q: must be json or yaml", format)), renderOutput{}, nil
	}
	ws, err := srv.resolve(ctx, input.Source)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}
	n, err := ws.Schema(input.Type)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}

	var content string
	if format == "yaml" {
		content, err = schema.YAML(n)
	} else {
		content, err = schema.JSON(n)
	}
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}
	return nil, renderOutput{Format: format, Content: content}, nil
}

type renderTableInput struct {
	Source sourceInput `json:"source" jsonschema:"The Go packages to load"`
	Type   string      `json:"type"   jsonschema:"The struct type name"`
}

func (srv *server) handleRenderTable(ctx context.Context, _ *mcp.CallToolRequest, input renderTableInput) (*mcp.CallToolResult, renderOutput, error) {
	ws, err := srv.resolve(ctx, input.Source)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}
	table, err := ws.Table(input.Type)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}
	return nil, renderOutput{Format: "markdown", Content: table}, nil
}

type renderDocInput struct {
	Source     sourceInput `json:"source"               jsonschema:"The Go packages to load"`
	Controller string      `json:"controller,omitempty" jsonschema:"Controller type of the endpoint"`
	Method     string      `json:"method,omitempty"     jsonschema:"Method name of the endpoint"`
	Type       string      `json:"type,omitempty"       jsonschema:"Struct type to document instead of an endpoint"`
}

func (srv *server) handleRenderDoc(ctx context.Context, _ *mcp.CallToolRequest, input renderDocInput) (*mcp.CallToolResult, renderOutput, error) {
	endpointDoc := input.Controller != "" && input.Method != ""
	if endpointDoc == (input.Type != "") {
		return errResult(fmt.Errorf("set either controller and method, or type")), renderOutput{}, nil
	}
	ws, err := srv.resolve(ctx, input.Source)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}
	opts := docgen.Options{Prefix: ws.Config().Prefix}

	var content string
	if endpointDoc {
		d, err := ws.Endpoint(input.Controller, input.Method)
		if err != nil {
			return errResult(err), renderOutput{}, nil
		}
		content, err = docgen.Method(d, opts)
		if err != nil {
			return errResult(err), renderOutput{}, nil
		}
	} else {
		nodes, err := ws.Fields(input.Type)
		if err != nil {
			return errResult(err), renderOutput{}, nil
		}
		content, err = docgen.Type(input.Type, nodes, opts)
		if err != nil {
			return errResult(err), renderOutput{}, nil
		}
	}
	return nil, renderOutput{Format: "markdown", Content: content}, nil
}
