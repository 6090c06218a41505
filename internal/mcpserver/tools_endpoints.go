package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apidesc/endpoint"
	"github.com/erraggy/apidesc/params"
	"github.com/erraggy/apidesc/schema"
)

type listEndpointsInput struct {
	Source     sourceInput `json:"source"               jsonschema:"The Go packages to load"`
	Controller string      `json:"controller,omitempty" jsonschema:"Only list endpoints of this controller type"`
}

type endpointSummary struct {
	Controller string `json:"controller"`
	Method     string `json:"method"`
	Verb       string `json:"verb"`
	Path       string `json:"path"`
	Title      string `json:"title,omitempty"`
}

type listEndpointsOutput struct {
	Endpoints []endpointSummary `json:"endpoints"`
}

func (srv *server) handleListEndpoints(ctx context.Context, _ *mcp.CallToolRequest, input listEndpointsInput) (*mcp.CallToolResult, listEndpointsOutput, error) {
	ws, err := srv.resolve(ctx, input.Source)
	if err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}
	ds, err := ws.Endpoints(input.Controller)
	if err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}

	output := listEndpointsOutput{Endpoints: make([]endpointSummary, 0, len(ds))}
	for _, d := range ds {
		output.Endpoints = append(output.Endpoints, endpointSummary{
			Controller: d.Controller,
			Method:     d.Method,
			Verb:       string(d.Meta.Verb),
			Path:       d.Path(),
			Title:      d.Title,
		})
	}
	return nil, output, nil
}

type describeEndpointInput struct {
	Source     sourceInput `json:"source"     jsonschema:"The Go packages to load"`
	Controller string      `json:"controller" jsonschema:"The controller type name"`
	Method     string      `json:"method"     jsonschema:"The method name"`
}

type paramSummary struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Example     string `json:"example,omitempty"`
	Description string `json:"description,omitempty"`
}

type describeEndpointOutput struct {
	Verb           string         `json:"verb"`
	Path           string         `json:"path"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	ContentType    string         `json:"content_type,omitempty"`
	PathVariables  []paramSummary `json:"path_variables,omitempty"`
	QueryParams    []paramSummary `json:"query_params,omitempty"`
	FormFields     []paramSummary `json:"form_fields,omitempty"`
	RequestSchema  string         `json:"request_schema,omitempty"`
	ResponseSchema string         `json:"response_schema,omitempty"`
}

func (srv *server) handleDescribeEndpoint(ctx context.Context, _ *mcp.CallToolRequest, input describeEndpointInput) (*mcp.CallToolResult, describeEndpointOutput, error) {
	if input.Controller == "" || input.Method == "" {
		return errResult(fmt.Errorf("controller and method are required")), describeEndpointOutput{}, nil
	}
	ws, err := srv.resolve(ctx, input.Source)
	if err != nil {
		return errResult(err), describeEndpointOutput{}, nil
	}
	d, err := ws.Endpoint(input.Controller, input.Method)
	if err != nil {
		return errResult(err), describeEndpointOutput{}, nil
	}
	output, err := describe(d)
	if err != nil {
		return errResult(err), describeEndpointOutput{}, nil
	}
	return nil, output, nil
}

func describe(d *endpoint.Descriptor) (describeEndpointOutput, error) {
	output := describeEndpointOutput{
		Verb:          string(d.Meta.Verb),
		Path:          d.Path(),
		Title:         d.Title,
		Description:   d.Description,
		ContentType:   string(d.Params.ContentType),
		PathVariables: summarize(d.Params.PathVariables),
		QueryParams:   summarize(d.Params.QueryParams),
		FormFields:    summarize(d.Params.FormFields),
	}
	if d.RequestSchema != nil {
		s, err := schema.JSON(d.RequestSchema)
		if err != nil {
			return output, err
		}
		output.RequestSchema = s
	}
	if d.ResponseSchema != nil {
		s, err := schema.JSON(d.ResponseSchema)
		if err != nil {
			return output, err
		}
		output.ResponseSchema = s
	}
	return output, nil
}

func summarize(ps []params.Param) []paramSummary {
	if len(ps) == 0 {
		return nil
	}
	out := make([]paramSummary, 0, len(ps))
	for _, p := range ps {
		out = append(out, paramSummary{
			Name:        p.Name,
			Type:        p.Node.TypeName(),
			Required:    p.Required(),
			Example:     p.Example,
			Description: p.Description(),
		})
	}
	return out
}
