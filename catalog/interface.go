package catalog

import (
	"github.com/erraggy/apidesc/endpoint"
	"github.com/erraggy/apidesc/params"
	"github.com/erraggy/apidesc/schema"
)

// Request body types.
const (
	BodyTypeJSON = "json"
	BodyTypeForm = "form"
	BodyTypeRaw  = "raw"
)

// Interface statuses.
const (
	StatusDone   = "done"
	StatusUndone = "undone"
)

// Content types sent as the Content-Type request header.
const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Interface is a catalog interface entry, as accepted by /api/interface/save.
type Interface struct {
	Token    string `json:"token"`
	CatID    int    `json:"catid"`
	Title    string `json:"title"`
	Path     string `json:"path"`
	Method   string `json:"method"`
	Status   string `json:"status"`
	Desc     string `json:"desc"`
	Markdown string `json:"markdown"`

	ReqParams  []PathParam  `json:"req_params"`
	ReqQuery   []QueryParam `json:"req_query"`
	ReqHeaders []Header     `json:"req_headers"`

	ReqBodyType         string      `json:"req_body_type,omitempty"`
	ReqBodyForm         []FormParam `json:"req_body_form,omitempty"`
	ReqBodyOther        string      `json:"req_body_other,omitempty"`
	ReqBodyIsJSONSchema bool        `json:"req_body_is_json_schema"`

	ResBodyType         string `json:"res_body_type"`
	ResBody             string `json:"res_body"`
	ResBodyIsJSONSchema bool   `json:"res_body_is_json_schema"`
}

// PathParam is a path variable.
type PathParam struct {
	Name    string `json:"name"`
	Example string `json:"example"`
	Desc    string `json:"desc"`
}

// QueryParam is a query string parameter. Required is "1" or "0".
type QueryParam struct {
	Name     string `json:"name"`
	Example  string `json:"example"`
	Desc     string `json:"desc"`
	Required string `json:"required"`
}

// FormParam is a form field.
type FormParam struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Example  string `json:"example"`
	Desc     string `json:"desc"`
	Required string `json:"required"`
}

// Header is a request header.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MapOptions holds the catalog-side values that are not part of a descriptor.
type MapOptions struct {
	Token  string
	CatID  int
	Status string
}

// FromDescriptor maps d onto a catalog interface entry. It fails only when a
// schema cannot be encoded.
func FromDescriptor(d *endpoint.Descriptor, opts MapOptions) (*Interface, error) {
	status := opts.Status
	if status == "" {
		status = StatusUndone
	}
	iface := &Interface{
		Token:      opts.Token,
		CatID:      opts.CatID,
		Title:      d.Title,
		Path:       d.Path(),
		Method:     string(d.Meta.Verb),
		Status:     status,
		Desc:       d.Description,
		Markdown:   d.Description,
		ReqParams:  pathParams(d.Params.PathVariables),
		ReqQuery:   queryParams(d.Params.QueryParams),
		ReqHeaders: []Header{{Name: "Content-Type", Value: ContentTypeForm}},
	}

	switch d.Params.ContentType {
	case params.ContentJSON:
		body, err := schema.JSON(d.RequestSchema)
		if err != nil {
			return nil, err
		}
		iface.ReqBodyType = BodyTypeJSON
		iface.ReqBodyOther = body
		iface.ReqBodyIsJSONSchema = true
	case params.ContentForm:
		iface.ReqBodyType = BodyTypeForm
		iface.ReqBodyForm = formParams(d.Params.FormFields)
	}

	if d.Meta.ProducesJSON {
		iface.ReqHeaders = []Header{{Name: "Content-Type", Value: ContentTypeJSON}}
		iface.ResBodyType = BodyTypeJSON
		iface.ResBodyIsJSONSchema = true
		if d.ResponseSchema != nil {
			res, err := schema.JSON(d.ResponseSchema)
			if err != nil {
				return nil, err
			}
			iface.ResBody = res
		}
	} else {
		iface.ResBodyType = BodyTypeRaw
	}
	return iface, nil
}

func pathParams(ps []params.Param) []PathParam {
	out := make([]PathParam, 0, len(ps))
	for _, p := range ps {
		out = append(out, PathParam{Name: p.Name, Example: p.Example, Desc: p.Description()})
	}
	return out
}

func queryParams(ps []params.Param) []QueryParam {
	out := make([]QueryParam, 0, len(ps))
	for _, p := range ps {
		out = append(out, QueryParam{
			Name:     p.Name,
			Example:  p.Example,
			Desc:     p.Description(),
			Required: requiredFlag(p.Required()),
		})
	}
	return out
}

func formParams(ps []params.Param) []FormParam {
	out := make([]FormParam, 0, len(ps))
	for _, p := range ps {
		out = append(out, FormParam{
			Name:     p.Name,
			Type:     "text",
			Example:  p.Example,
			Desc:     p.Description(),
			Required: requiredFlag(p.Required()),
		})
	}
	return out
}

func requiredFlag(required bool) string {
	if required {
		return "1"
	}
	return "0"
}
