package schema

import (
	"bytes"
	"encoding/json"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apidesc/fieldtree"
)

// Member is one key of an example object.
type Member struct {
	Name  string
	Value any
}

// Object is an example JSON object whose members keep declaration order.
type Object struct {
	Members []Member
}

// Get returns the value of the named member.
func (o *Object) Get(name string) (any, bool) {
	for _, m := range o.Members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the members in order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.Members {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, m.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, m.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns a mapping node with the members in order.
func (o *Object) MarshalYAML() (any, error) {
	return o.yamlNode()
}

func (o *Object) yamlNode() (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, member := range o.Members {
		v, err := valueToNode(member.Value)
		if err != nil {
			return nil, err
		}
		m.Content = append(m.Content, scalarNode("!!str", member.Name), v)
	}
	return m, nil
}

// Example builds an example instance of an object with the given fields.
func Example(nodes []*fieldtree.Node) *Object {
	o := &Object{Members: make([]Member, 0, len(nodes))}
	for _, n := range nodes {
		o.Members = append(o.Members, Member{Name: n.Name, Value: ExampleOf(n)})
	}
	return o
}

// ExampleOf builds an example instance of a single node: an *Object for
// objects, a one-element []any for arrays, a scalar or nil for literals.
func ExampleOf(n *fieldtree.Node) any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case fieldtree.Object:
		return Example(n.Children)
	case fieldtree.Array:
		if len(n.Children) == 1 && n.Children[0].Name == fieldtree.ArrayElementName {
			return []any{ExampleOf(n.Children[0])}
		}
		if n.HasChildren() {
			return []any{Example(n.Children)}
		}
		if it := items(n); it != nil {
			if it.Type == TypeObject {
				return []any{&Object{}}
			}
			if it.Example != nil {
				return []any{it.Example}
			}
		}
		return []any{}
	default:
		return literalExample(n)
	}
}

// ExampleJSON renders an example instance as JSON indented with two spaces.
func ExampleJSON(v any) (string, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}
