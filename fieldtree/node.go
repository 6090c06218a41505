package fieldtree

import "github.com/erraggy/apidesc/typeinfo"

// Node is one field of a descriptor tree.
//
// Object and Array nodes hold their value entirely in Children; Literal nodes
// never have children. Nodes are built once per call and not modified
// afterwards.
type Node struct {
	// Name is the published field or parameter name.
	Name string
	// Type is the field's type; nil when unknown.
	Type typeinfo.Type
	// Kind is the classification of Type.
	Kind Kind
	// Description is the trimmed doc comment or tag description.
	Description string
	// Required is false only when the field is explicitly optional.
	Required bool
	// Range is the declared value range of a literal, or RangeNA.
	Range string
	// Annotations are the field's annotations, kept for renderers and the
	// parameter classifier.
	Annotations typeinfo.Annotations
	// Children are the nested fields in declaration order.
	Children []*Node
}

// TypeName returns the presentable name of the node's type, or "any" when the
// type is unknown.
func (n *Node) TypeName() string {
	if n.Type == nil {
		return "any"
	}
	return n.Type.Name()
}

// HasChildren reports whether the node has nested fields.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// HasRange reports whether the node declares a value range.
func (n *Node) HasRange() bool {
	return n.Range != "" && n.Range != RangeNA
}

// Example returns the synthesized example value of the node's type.
func (n *Node) Example() any {
	return ExampleValue(n.Type)
}
