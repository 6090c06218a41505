package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/erraggy/apidesc/endpoint"
	"github.com/erraggy/apidesc/internal/workspace"
	"github.com/erraggy/apidesc/params"
	"github.com/erraggy/apidesc/schema"
)

// DescribeFlags contains flags for the describe command
type DescribeFlags struct {
	SourceFlags
	Format string
}

// SetupDescribeFlags creates and configures a FlagSet for the describe command.
// Returns the FlagSet and a DescribeFlags struct with bound flag variables.
func SetupDescribeFlags() (*flag.FlagSet, *DescribeFlags) {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	flags := &DescribeFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apidesc describe [flags] [controller[.method]]\n\n")
		Writef(fs.Output(), "Describe controller methods as HTTP endpoints. Without an argument every\n")
		Writef(fs.Output(), "controller in the loaded packages is described.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		Writef(fs.Output(), "  json            JSON format for programmatic processing\n")
		Writef(fs.Output(), "  yaml            YAML format for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apidesc describe\n")
		Writef(fs.Output(), "  apidesc describe OrderController\n")
		Writef(fs.Output(), "  apidesc describe -format json OrderController.Get | jq '.[0].path'\n")
	}

	return fs, flags
}

// ParamOutput is one path, query or form entry.
type ParamOutput struct {
	Name        string `json:"name"                  yaml:"name"`
	Type        string `json:"type"                  yaml:"type"`
	Required    bool   `json:"required"              yaml:"required"`
	Example     string `json:"example,omitempty"     yaml:"example,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// EndpointOutput is the structured form of an endpoint descriptor.
type EndpointOutput struct {
	Controller     string         `json:"controller"                yaml:"controller"`
	Method         string         `json:"method"                    yaml:"method"`
	Verb           string         `json:"verb"                      yaml:"verb"`
	Path           string         `json:"path"                      yaml:"path"`
	Title          string         `json:"title"                     yaml:"title"`
	Description    string         `json:"description,omitempty"     yaml:"description,omitempty"`
	ContentType    string         `json:"contentType,omitempty"     yaml:"contentType,omitempty"`
	ProducesJSON   bool           `json:"producesJson"              yaml:"producesJson"`
	PathVariables  []ParamOutput  `json:"pathVariables,omitempty"   yaml:"pathVariables,omitempty"`
	QueryParams    []ParamOutput  `json:"queryParams,omitempty"     yaml:"queryParams,omitempty"`
	FormFields     []ParamOutput  `json:"formFields,omitempty"      yaml:"formFields,omitempty"`
	RequestSchema  *schema.Node   `json:"requestSchema,omitempty"   yaml:"requestSchema,omitempty"`
	ResponseSchema *schema.Node   `json:"responseSchema,omitempty"  yaml:"responseSchema,omitempty"`
}

// NewEndpointOutput converts a descriptor.
func NewEndpointOutput(d *endpoint.Descriptor) EndpointOutput {
	return EndpointOutput{
		Controller:     d.Controller,
		Method:         d.Method,
		Verb:           string(d.Meta.Verb),
		Path:           d.Path(),
		Title:          d.Title,
		Description:    d.Description,
		ContentType:    string(d.Params.ContentType),
		ProducesJSON:   d.Meta.ProducesJSON,
		PathVariables:  paramOutputs(d.Params.PathVariables),
		QueryParams:    paramOutputs(d.Params.QueryParams),
		FormFields:     paramOutputs(d.Params.FormFields),
		RequestSchema:  d.RequestSchema,
		ResponseSchema: d.ResponseSchema,
	}
}

func paramOutputs(ps []params.Param) []ParamOutput {
	if len(ps) == 0 {
		return nil
	}
	out := make([]ParamOutput, 0, len(ps))
	for _, p := range ps {
		out = append(out, ParamOutput{
			Name:        p.Name,
			Type:        p.Node.TypeName(),
			Required:    p.Required(),
			Example:     p.Example,
			Description: p.Description(),
		})
	}
	return out
}

// HandleDescribe executes the describe command
func HandleDescribe(args []string) error {
	fs, flags := SetupDescribeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("describe command accepts at most one controller or controller.method")
	}

	// Validate format flag early to fail fast before loading packages
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	ws, err := flags.open(context.Background(), cfg)
	if err != nil {
		return err
	}
	ds, err := selectEndpoints(ws, fs.Arg(0))
	if err != nil {
		return err
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		out := make([]EndpointOutput, 0, len(ds))
		for _, d := range ds {
			out = append(out, NewEndpointOutput(d))
		}
		return OutputStructured(out, flags.Format)
	}

	for i, d := range ds {
		if i > 0 {
			Writef(stdout, "\n")
		}
		writeEndpointText(stdout, d)
	}
	return nil
}

// selectEndpoints resolves "", "Controller" or "Controller.Method".
func selectEndpoints(ws *workspace.Workspace, target string) ([]*endpoint.Descriptor, error) {
	controller, method := splitTarget(target)
	if method == "" {
		return ws.Endpoints(controller)
	}
	d, err := ws.Endpoint(controller, method)
	if err != nil {
		return nil, err
	}
	return []*endpoint.Descriptor{d}, nil
}

func writeEndpointText(w io.Writer, d *endpoint.Descriptor) {
	Writef(w, "%s %s\n", d.Meta.Verb, d.Path())
	Writef(w, "  Method: %s.%s\n", d.Controller, d.Method)
	if d.Title != "" {
		Writef(w, "  Title: %s\n", d.Title)
	}
	if d.Params.ContentType != params.ContentNone {
		Writef(w, "  Content Type: %s\n", d.Params.ContentType)
	}
	writeParamsText(w, "Path Variables", d.Params.PathVariables)
	writeParamsText(w, "Query Parameters", d.Params.QueryParams)
	writeParamsText(w, "Form Fields", d.Params.FormFields)
	if d.Params.Body != nil {
		Writef(w, "  Body: %s (%s)\n", d.Params.Body.Name, d.Params.Body.TypeName())
	}
	switch {
	case d.Response == nil:
		Writef(w, "  Response: none\n")
	case d.ResponseSchema != nil:
		Writef(w, "  Response: %s (json)\n", d.Response.TypeName())
	default:
		Writef(w, "  Response: %s (raw)\n", d.Response.TypeName())
	}
}

func writeParamsText(w io.Writer, title string, ps []params.Param) {
	if len(ps) == 0 {
		return
	}
	Writef(w, "  %s (%d):\n", title, len(ps))
	for _, p := range ps {
		required := "optional"
		if p.Required() {
			required = "required"
		}
		Writef(w, "    %s %s %s", p.Name, p.Node.TypeName(), required)
		if desc := p.Description(); desc != "" {
			Writef(w, " - %s", desc)
		}
		Writef(w, "\n")
	}
}
