// Package schema renders descriptor trees as JSON-Schema-like documents and
// example instances.
//
// Rendering is a pure recursive transform over a [fieldtree.Node]:
//
//   - Literal: {type: <Go type name>, description, example}
//   - Object:  {type: "object", properties, required}
//   - Array:   {type: "array", items}
//
// Property and required order follow field declaration order, in memory and
// in the JSON and YAML encodings, so output is byte-for-byte reproducible.
//
//	root := fieldtree.New().Build(typeinfo.Of(Order{}), "order", "", nil)
//	text, err := schema.JSON(schema.Render(root))
package schema

import (
	"bytes"
	"encoding/json"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apidesc/fieldtree"
	"github.com/erraggy/apidesc/typeinfo"
)

// Render converts a descriptor tree into a schema tree. A nil node renders as
// nil.
func Render(n *fieldtree.Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case fieldtree.Object:
		s := object(n.Children)
		s.Description = n.Description
		return s
	case fieldtree.Array:
		return &Node{
			Type:        TypeArray,
			Description: n.Description,
			Items:       items(n),
		}
	default:
		return &Node{
			Type:        n.TypeName(),
			Description: n.Description,
			Example:     literalExample(n),
			Default:     tagValue(n, "default"),
		}
	}
}

// RenderFields wraps top-level field nodes in an object schema.
func RenderFields(nodes []*fieldtree.Node) *Node {
	return object(nodes)
}

func object(children []*fieldtree.Node) *Node {
	s := &Node{Type: TypeObject}
	for _, c := range children {
		s.Properties = append(s.Properties, Property{Name: c.Name, Schema: Render(c)})
		if c.Required {
			s.Required = append(s.Required, c.Name)
		}
	}
	return s
}

// items renders the element schema of an array node.
func items(n *fieldtree.Node) *Node {
	if len(n.Children) == 1 && n.Children[0].Name == fieldtree.ArrayElementName {
		return Render(n.Children[0])
	}
	if n.HasChildren() {
		return object(n.Children)
	}
	if n.Type == nil {
		return nil
	}
	elem := n.Type.Elem()
	if elem == nil {
		return nil
	}
	if fieldtree.Classify(elem) == fieldtree.Object {
		return &Node{Type: TypeObject}
	}
	return &Node{Type: elem.Name(), Example: fieldtree.ExampleValue(elem)}
}

// literalExample prefers an example declared in the oas tag over the
// synthesized one.
func literalExample(n *fieldtree.Node) any {
	if v := tagValue(n, "example"); v != nil {
		return v
	}
	return n.Example()
}

// tagValue returns an oas tag attribute converted to the node's scalar type,
// or nil when absent.
func tagValue(n *fieldtree.Node, key string) any {
	oas, ok := n.Annotations.Find(typeinfo.AnnotationOAS)
	if !ok {
		return nil
	}
	raw, ok := oas.Value(key)
	if !ok {
		return nil
	}
	if n.Type == nil {
		return raw
	}
	switch n.Type.Basic() {
	case typeinfo.BasicInt:
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i
		}
	case typeinfo.BasicFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case typeinfo.BasicBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

// JSON renders a schema as JSON indented with two spaces.
func JSON(n *Node) (string, error) {
	return indentJSON(n)
}

// YAML renders a schema as YAML.
func YAML(n *Node) (string, error) {
	data, err := yaml.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func indentJSON(v json.Marshaler) (string, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
