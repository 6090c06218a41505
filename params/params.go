// Package params partitions the parameters of an endpoint method into path
// variables, query parameters, form fields and a request body.
//
// Parameters are classified in declaration order:
//
//  1. a "path" annotation makes a path variable, published under the
//     annotation's name (positional, name= or value=) or the parameter name;
//  2. a "body" annotation makes the request body;
//  3. on GET, and on any request that has a body, the rest are query
//     parameters;
//  4. otherwise the rest are form fields.
//
// Rule 3 applies to every verb: when a method declares a body, its remaining
// parameters become query parameters, never form fields, so a bucket holds
// either a body or form fields but not both. Callers porting handlers that
// read leftovers from the form of a POST with a body must read the query
// string instead.
//
// Struct parameters in query or form position are flattened one level: each
// field becomes its own entry. Nested structs and containers stay single
// entries with the placeholder example "1,1,1".
package params

import (
	"fmt"

	"github.com/erraggy/apidesc/apierrors"
	"github.com/erraggy/apidesc/fieldtree"
	"github.com/erraggy/apidesc/route"
	"github.com/erraggy/apidesc/typeinfo"
)

// MultiValueExample is the example of entries that hold several values.
const MultiValueExample = "1,1,1"

// ContentType is the request body encoding implied by the classification.
type ContentType string

const (
	// ContentNone means the request has no structured body.
	ContentNone ContentType = ""
	// ContentJSON means a JSON request body.
	ContentJSON ContentType = "json"
	// ContentForm means a form-encoded request body.
	ContentForm ContentType = "form"
)

// Param is one entry of a parameter bucket.
type Param struct {
	// Name is the published name.
	Name string
	// Node is the descriptor of the entry.
	Node *fieldtree.Node
	// Example is the example value rendered as text.
	Example string
}

// Required reports whether the entry is required.
func (p Param) Required() bool {
	return p.Node != nil && p.Node.Required
}

// Description returns the node description with the range appended, e.g.
// "Page size (range: [1, 100])".
func (p Param) Description() string {
	if p.Node == nil {
		return ""
	}
	desc := p.Node.Description
	if !p.Node.HasRange() {
		return desc
	}
	if desc == "" {
		return "(range: " + p.Node.Range + ")"
	}
	return desc + " (range: " + p.Node.Range + ")"
}

// Bucket is the classification of a method's parameters. Every input
// parameter (or, for flattened structs, every field) lands in exactly one of
// PathVariables, QueryParams, FormFields and Body. Body and FormFields are
// never both set.
type Bucket struct {
	PathVariables []Param
	QueryParams   []Param
	FormFields    []Param
	Body          *fieldtree.Node
	ContentType   ContentType
}

// Classify partitions parameter nodes for the given verb. More than one body
// parameter is rejected with a *apierrors.AmbiguousMappingError.
func Classify(nodes []*fieldtree.Node, verb route.Verb) (Bucket, error) {
	var b Bucket
	for _, n := range nodes {
		if !isBody(n) || isPath(n) {
			continue
		}
		if b.Body != nil {
			return Bucket{}, &apierrors.AmbiguousMappingError{
				Field:   n.Name,
				Message: fmt.Sprintf("multiple body parameters (%s and %s)", b.Body.Name, n.Name),
			}
		}
		b.Body = n
	}

	toQuery := verb == route.GET || b.Body != nil
	for _, n := range nodes {
		switch {
		case isPath(n):
			b.PathVariables = append(b.PathVariables, Param{
				Name:    pathName(n),
				Node:    n,
				Example: example(n),
			})
		case n == b.Body:
		case toQuery:
			b.QueryParams = append(b.QueryParams, flatten(n)...)
		default:
			b.FormFields = append(b.FormFields, flatten(n)...)
		}
	}

	switch {
	case b.Body != nil:
		b.ContentType = ContentJSON
	case verb == route.POST && len(b.FormFields) > 0:
		b.ContentType = ContentForm
	}
	return b, nil
}

func isPath(n *fieldtree.Node) bool {
	return n.Annotations.Has(typeinfo.AnnotationPath)
}

func isBody(n *fieldtree.Node) bool {
	return n.Annotations.Has(typeinfo.AnnotationBody)
}

func pathName(n *fieldtree.Node) string {
	a, _ := n.Annotations.Find(typeinfo.AnnotationPath)
	if name, ok := a.Value("", "name", "value"); ok {
		return name
	}
	return n.Name
}

// flatten expands a struct parameter into one entry per field.
func flatten(n *fieldtree.Node) []Param {
	if n.Kind != fieldtree.Object || !n.HasChildren() {
		return []Param{{Name: n.Name, Node: n, Example: example(n)}}
	}
	entries := make([]Param, 0, len(n.Children))
	for _, child := range n.Children {
		entries = append(entries, Param{Name: child.Name, Node: child, Example: example(child)})
	}
	return entries
}

// example renders the example of a query, form or path entry.
func example(n *fieldtree.Node) string {
	if n.Kind != fieldtree.Literal {
		return MultiValueExample
	}
	v := n.Example()
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
