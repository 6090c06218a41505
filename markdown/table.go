// Package markdown renders descriptor trees as nested pipe tables.
//
// Each field is one row. Fields with children are emphasized and followed by
// their children, whose names carry the nesting marker once per depth:
//
//	name|type|required|range|description
//	---|---|---|---|---
//	id|string|Y|N/A|
//	**items**|[]Item|Y|N/A|
//	└sku|string|Y|N/A|
//	└qty|int|Y|N/A|
package markdown

import (
	"strings"

	"github.com/erraggy/apidesc/fieldtree"
)

// DefaultPrefix is the default nesting marker.
const DefaultPrefix = "└"

const (
	header    = "name|type|required|range|description"
	separator = "---|---|---|---|---"
)

// Option configures Table.
type Option func(*options)

type options struct {
	prefix string
}

// WithPrefix sets the nesting marker. A single space is written as "&emsp;"
// so that the indentation survives Markdown rendering. An empty prefix keeps
// the default.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// Table renders nodes as a Markdown table. Row order is tree order.
func Table(nodes []*fieldtree.Node, opts ...Option) string {
	o := options{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	if o.prefix == " " {
		o.prefix = "&emsp;"
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	sb.WriteString(separator)
	sb.WriteByte('\n')
	for _, n := range nodes {
		writeRows(&sb, n, o.prefix, 0)
	}
	return sb.String()
}

func writeRows(sb *strings.Builder, n *fieldtree.Node, prefix string, depth int) {
	name := n.Name
	if n.HasChildren() {
		name = "**" + name + "**"
	}
	required := "N"
	if n.Required {
		required = "Y"
	}

	sb.WriteString(strings.Repeat(prefix, depth))
	sb.WriteString(cell(name))
	sb.WriteByte('|')
	sb.WriteString(cell(n.TypeName()))
	sb.WriteByte('|')
	sb.WriteString(required)
	sb.WriteByte('|')
	sb.WriteString(cell(n.Range))
	sb.WriteByte('|')
	sb.WriteString(cell(n.Description))
	sb.WriteByte('\n')

	for _, c := range n.Children {
		writeRows(sb, c, prefix, depth+1)
	}
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

// cell escapes text for use inside a table cell.
func cell(s string) string {
	return cellReplacer.Replace(strings.TrimSpace(s))
}
