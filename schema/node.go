package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// Schema type names for composites.
const (
	TypeObject = "object"
	TypeArray  = "array"
)

// Property is a named member of an object schema.
type Property struct {
	Name   string
	Schema *Node
}

// Node is a JSON-Schema-like description of a value. Properties keep the
// declaration order of the fields they describe, in Go and when marshaled.
type Node struct {
	Type        string
	Description string
	Example     any
	Default     any
	Properties  []Property
	Items       *Node
	Required    []string
}

// Property returns the schema of the named property, or nil.
func (n *Node) Property(name string) *Node {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// MarshalJSON writes the schema with keys in a fixed order and properties in
// declaration order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	buf.WriteByte('{')
	first := true
	key := func(k string) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(strconv.Quote(k))
		buf.WriteByte(':')
	}

	key("type")
	if err := writeJSON(buf, n.Type); err != nil {
		return err
	}
	if n.Description != "" {
		key("description")
		if err := writeJSON(buf, n.Description); err != nil {
			return err
		}
	}
	if n.Example != nil {
		key("example")
		if err := writeJSON(buf, n.Example); err != nil {
			return err
		}
	}
	if n.Default != nil {
		key("default")
		if err := writeJSON(buf, n.Default); err != nil {
			return err
		}
	}
	if n.Type == TypeObject || len(n.Properties) > 0 {
		key("properties")
		buf.WriteByte('{')
		for i, p := range n.Properties {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, p.Name); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := p.Schema.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	if n.Items != nil {
		key("items")
		if err := n.Items.writeJSON(buf); err != nil {
			return err
		}
	}
	if len(n.Required) > 0 {
		key("required")
		if err := writeJSON(buf, n.Required); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// MarshalYAML returns a mapping node with the same key order as MarshalJSON.
func (n *Node) MarshalYAML() (any, error) {
	return n.yamlNode()
}

func (n *Node) yamlNode() (*yaml.Node, error) {
	if n == nil {
		return scalarNode("!!null", "null"), nil
	}

	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(k string, v *yaml.Node) {
		m.Content = append(m.Content, scalarNode("!!str", k), v)
	}

	add("type", scalarNode("!!str", n.Type))
	if n.Description != "" {
		add("description", scalarNode("!!str", n.Description))
	}
	for _, kv := range []struct {
		key   string
		value any
	}{{"example", n.Example}, {"default", n.Default}} {
		if kv.value == nil {
			continue
		}
		v, err := valueToNode(kv.value)
		if err != nil {
			return nil, err
		}
		add(kv.key, v)
	}
	if n.Type == TypeObject || len(n.Properties) > 0 {
		props := &yaml.Node{Kind: yaml.MappingNode}
		for _, p := range n.Properties {
			v, err := p.Schema.yamlNode()
			if err != nil {
				return nil, err
			}
			props.Content = append(props.Content, scalarNode("!!str", p.Name), v)
		}
		add("properties", props)
	}
	if n.Items != nil {
		v, err := n.Items.yamlNode()
		if err != nil {
			return nil, err
		}
		add("items", v)
	}
	if len(n.Required) > 0 {
		req := &yaml.Node{Kind: yaml.SequenceNode}
		for _, name := range n.Required {
			req.Content = append(req.Content, scalarNode("!!str", name))
		}
		add("required", req)
	}
	return m, nil
}

// writeJSON marshals a value without HTML escaping and writes it to buf.
func writeJSON(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// valueToNode converts an example value to a yaml.Node.
func valueToNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return scalarNode("!!null", "null"), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(val)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10)), nil
	case float64:
		return scalarNode("!!float", strconv.FormatFloat(val, 'f', -1, 64)), nil
	case string:
		return scalarNode("!!str", val), nil
	case *Object:
		return val.yamlNode()
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range val {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("schema: cannot convert %T to yaml.Node", v)
	}
}
