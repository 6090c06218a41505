// Package route resolves the routing metadata of a controller method: the
// HTTP verb, the normalized path and whether the response is a JSON body.
//
// Routing metadata is read from annotations. A controller type carries
// "controller" (optionally with the "rest" flag and a base path) and may add a
// "mapping" annotation with a base path. A method carries "mapping" (with an
// optional method= attribute) or one of "get", "post", "put", "delete" and
// "patch". In Go source these are directives:
//
//	//apidesc:controller rest /orders
//	type OrderController struct{}
//
//	//apidesc:get /{id}
//	func (c *OrderController) Get(id string) (*Order, error)
package route

import (
	"strings"

	"github.com/erraggy/apidesc/apierrors"
	"github.com/erraggy/apidesc/typeinfo"
)

// Verb is an HTTP method.
type Verb string

// Supported verbs.
const (
	GET    Verb = "GET"
	POST   Verb = "POST"
	PUT    Verb = "PUT"
	DELETE Verb = "DELETE"
	PATCH  Verb = "PATCH"
)

// DefaultVerb is used when no annotation names a verb.
const DefaultVerb = POST

// verbAnnotations maps verb-specific annotation names to verbs.
var verbAnnotations = map[string]Verb{
	typeinfo.AnnotationGet:    GET,
	typeinfo.AnnotationPost:   POST,
	typeinfo.AnnotationPut:    PUT,
	typeinfo.AnnotationDelete: DELETE,
	typeinfo.AnnotationPatch:  PATCH,
}

// mappingNames lists every annotation that marks a method as an endpoint.
var mappingNames = []string{
	typeinfo.AnnotationMapping,
	typeinfo.AnnotationGet,
	typeinfo.AnnotationPost,
	typeinfo.AnnotationPut,
	typeinfo.AnnotationDelete,
	typeinfo.AnnotationPatch,
}

// ParseVerb returns the verb named by s, case-insensitively.
func ParseVerb(s string) (Verb, bool) {
	switch v := Verb(strings.ToUpper(strings.TrimSpace(s))); v {
	case GET, POST, PUT, DELETE, PATCH:
		return v, true
	}
	return "", false
}

// Meta is the routing metadata of one endpoint.
type Meta struct {
	Verb         Verb
	BasePath     string
	MethodPath   string
	ProducesJSON bool
}

// Path returns the normalized concatenation of BasePath and MethodPath.
func (m Meta) Path() string {
	return BuildPath(m.BasePath, m.MethodPath)
}

// BuildPath joins path fragments. Each non-empty fragment is made to start
// with "/" and to not end with "/"; the result is "/" when every fragment is
// empty.
//
//	BuildPath("user/", "/{id}/") == "/user/{id}"
func BuildPath(fragments ...string) string {
	var sb strings.Builder
	for _, f := range fragments {
		f = strings.Trim(strings.TrimSpace(f), "/")
		if f == "" {
			continue
		}
		sb.WriteByte('/')
		sb.WriteString(f)
	}
	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}

// IsController reports whether the annotations mark a controller type.
func IsController(as typeinfo.Annotations) bool {
	return as.Has(typeinfo.AnnotationController)
}

// IsMapped reports whether the annotations mark an endpoint method.
func IsMapped(as typeinfo.Annotations) bool {
	_, ok := as.FindAny(mappingNames...)
	return ok
}

// Resolve derives the routing metadata of a method from the annotations of
// its controller and its own annotations.
//
// It returns a *apierrors.NotApplicableError when the controller or the
// mapping annotation is missing, and a *apierrors.AmbiguousMappingError for an
// unknown method= attribute.
func Resolve(controller, method typeinfo.Annotations) (Meta, error) {
	ctrl, ok := controller.Find(typeinfo.AnnotationController)
	if !ok {
		return Meta{}, &apierrors.NotApplicableError{Reason: "type has no controller annotation"}
	}
	mapping, ok := method.FindAny(mappingNames...)
	if !ok {
		return Meta{}, &apierrors.NotApplicableError{Reason: "method has no mapping annotation"}
	}

	verb, err := resolveVerb(method)
	if err != nil {
		return Meta{}, err
	}

	base := pathOf(ctrl)
	if m, ok := controller.Find(typeinfo.AnnotationMapping); ok {
		if p := pathOf(m); p != "" {
			base = p
		}
	}

	return Meta{
		Verb:         verb,
		BasePath:     base,
		MethodPath:   pathOf(mapping),
		ProducesJSON: method.Has(typeinfo.AnnotationJSONBody) || ctrl.Flag("rest"),
	}, nil
}

// resolveVerb applies verb precedence: an explicit method= attribute on the
// generic mapping, then a verb-specific annotation, then DefaultVerb.
func resolveVerb(method typeinfo.Annotations) (Verb, error) {
	if m, ok := method.Find(typeinfo.AnnotationMapping); ok {
		if raw, ok := m.Value("method"); ok {
			v, ok := ParseVerb(raw)
			if !ok {
				return "", &apierrors.AmbiguousMappingError{
					Field:   "method",
					Message: "unknown HTTP verb " + raw,
				}
			}
			return v, nil
		}
	}
	for _, a := range method {
		if v, ok := verbAnnotations[a.Name]; ok {
			return v, nil
		}
	}
	return DefaultVerb, nil
}

// pathOf returns the path attribute of a routing annotation: the positional
// value, else value=, else path=. A positional "rest" flag is not a path.
func pathOf(a typeinfo.Annotation) string {
	for _, attr := range a.Attrs {
		if attr.Key == "" && attr.Value != "rest" {
			return attr.Value
		}
	}
	if v, ok := a.Value("value", "path"); ok {
		return v
	}
	return ""
}
