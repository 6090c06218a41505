package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shopSource = sourceInput{Dir: "../../loader/testdata/shop", Patterns: []string{"."}}

func newTestServer(t *testing.T) *server {
	t.Helper()
	clearMCPEnv(t)
	return newServer(nil, nil)
}

func errText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestListEndpointsTool(t *testing.T) {
	srv := newTestServer(t)

	result, output, err := srv.handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, listEndpointsInput{Source: shopSource})
	require.NoError(t, err)
	assert.Nil(t, result)
	require.Len(t, output.Endpoints, 3)
	assert.Equal(t, endpointSummary{
		Controller: "OrderController",
		Method:     "Get",
		Verb:       "GET",
		Path:       "/orders/{id}",
		Title:      "Get fetches one order.",
	}, output.Endpoints[0])
	assert.Equal(t, "POST", output.Endpoints[2].Verb)

	result, _, err = srv.handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, listEndpointsInput{Source: shopSource, Controller: "Item"})
	require.NoError(t, err)
	assert.Contains(t, errText(t, result), "Item")
}

func TestDescribeEndpointTool(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		check  func(t *testing.T, out describeEndpointOutput)
	}{
		{
			name:   "path variable",
			method: "Get",
			check: func(t *testing.T, out describeEndpointOutput) {
				assert.Equal(t, "GET", out.Verb)
				require.Len(t, out.PathVariables, 1)
				assert.Equal(t, "orderId", out.PathVariables[0].Name)
				assert.True(t, out.PathVariables[0].Required)
				assert.Empty(t, out.RequestSchema)
				require.NotEmpty(t, out.ResponseSchema)
				var s map[string]any
				require.NoError(t, json.Unmarshal([]byte(out.ResponseSchema), &s))
				assert.Equal(t, "object", s["type"])
			},
		},
		{
			name:   "flattened query",
			method: "List",
			check: func(t *testing.T, out describeEndpointOutput) {
				require.Len(t, out.QueryParams, 2)
				assert.Equal(t, "status", out.QueryParams[0].Name)
				assert.Equal(t, "page", out.QueryParams[1].Name)
				assert.Equal(t, "(range: [1, 100])", out.QueryParams[1].Description)
				assert.Empty(t, out.ContentType)
			},
		},
		{
			name:   "json body",
			method: "Create",
			check: func(t *testing.T, out describeEndpointOutput) {
				assert.Equal(t, "POST", out.Verb)
				assert.Equal(t, "json", out.ContentType)
				assert.NotEmpty(t, out.RequestSchema)
				assert.Empty(t, out.FormFields)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := describeEndpointInput{Source: shopSource, Controller: "OrderController", Method: tt.method}
			result, output, err := srv.handleDescribeEndpoint(context.Background(), &mcp.CallToolRequest{}, input)
			require.NoError(t, err)
			require.Nil(t, result)
			tt.check(t, output)
		})
	}
}

func TestDescribeEndpointTool_Errors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		input describeEndpointInput
		want  string
	}{
		{
			name:  "missing method",
			input: describeEndpointInput{Source: shopSource, Controller: "OrderController"},
			want:  "controller and method are required",
		},
		{
			name:  "unknown method",
			input: describeEndpointInput{Source: shopSource, Controller: "OrderController", Method: "Missing"},
			want:  "Missing",
		},
		{
			name:  "bad source",
			input: describeEndpointInput{Source: sourceInput{Dir: "../../loader/testdata", Patterns: []string{"./nonexistent"}}, Controller: "A", Method: "B"},
			want:  "loading ./nonexistent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := srv.handleDescribeEndpoint(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			assert.Contains(t, errText(t, result), tt.want)
		})
	}
}

func TestRenderSchemaTool(t *testing.T) {
	srv := newTestServer(t)

	_, output, err := srv.handleRenderSchema(context.Background(), &mcp.CallToolRequest{}, renderSchemaInput{Source: shopSource, Type: "Item"})
	require.NoError(t, err)
	assert.Equal(t, "json", output.Format)
	var s map[string]any
	require.NoError(t, json.Unmarshal([]byte(output.Content), &s))
	assert.Equal(t, "object", s["type"])

	_, output, err = srv.handleRenderSchema(context.Background(), &mcp.CallToolRequest{}, renderSchemaInput{Source: shopSource, Type: "Item", Format: "yaml"})
	require.NoError(t, err)
	assert.Equal(t, "yaml", output.Format)
	assert.Contains(t, output.Content, "type: object")

	result, _, err := srv.handleRenderSchema(context.Background(), &mcp.CallToolRequest{}, renderSchemaInput{Source: shopSource, Type: "Item", Format: "xml"})
	require.NoError(t, err)
	assert.Contains(t, errText(t, result), "invalid format")
}

func TestRenderTableTool(t *testing.T) {
	srv := newTestServer(t)

	_, output, err := srv.handleRenderTable(context.Background(), &mcp.CallToolRequest{}, renderTableInput{Source: shopSource, Type: "Item"})
	require.NoError(t, err)
	assert.Equal(t, "markdown", output.Format)
	assert.Contains(t, output.Content, "sku|string|Y|N/A|SKU identifies the product.\n")

	result, _, err := srv.handleRenderTable(context.Background(), &mcp.CallToolRequest{}, renderTableInput{Source: shopSource, Type: "Status"})
	require.NoError(t, err)
	assert.Contains(t, errText(t, result), "not a struct type")
}

func TestRenderDocTool(t *testing.T) {
	srv := newTestServer(t)

	_, output, err := srv.handleRenderDoc(context.Background(), &mcp.CallToolRequest{}, renderDocInput{Source: shopSource, Controller: "OrderController", Method: "Get"})
	require.NoError(t, err)
	assert.Contains(t, output.Content, "# Get\n")
	assert.Contains(t, output.Content, "`GET /orders/{id}`")

	_, output, err = srv.handleRenderDoc(context.Background(), &mcp.CallToolRequest{}, renderDocInput{Source: shopSource, Type: "Item"})
	require.NoError(t, err)
	assert.Contains(t, output.Content, "# Item\n")

	result, _, err := srv.handleRenderDoc(context.Background(), &mcp.CallToolRequest{}, renderDocInput{Source: shopSource})
	require.NoError(t, err)
	assert.Contains(t, errText(t, result), "either controller and method, or type")
}
