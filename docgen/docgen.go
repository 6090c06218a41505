// Package docgen renders Markdown documents for endpoints and types.
//
// A method document has a title, the endpoint description, a go get snippet
// for the declaring package, the interface declaration, and for both the
// request and the response an example JSON value and a field table. A type
// document has the example and the table only. Documents are rendered from
// embedded text/template templates with the sprig function library.
package docgen

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/apidesc/endpoint"
	"github.com/erraggy/apidesc/fieldtree"
	"github.com/erraggy/apidesc/markdown"
	"github.com/erraggy/apidesc/schema"
)

//go:embed templates/*
var templatesFS embed.FS

// Extension is the file extension of generated documents.
const Extension = ".md"

var templates = template.Must(
	template.New("docgen").
		Funcs(funcMap()).
		ParseFS(templatesFS, "templates/*.gotmpl"),
)

func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	// Casers are stateful; each call gets its own.
	fm["heading"] = func(s string) string {
		return cases.Title(language.English).String(s)
	}
	return fm
}

// Options configures document rendering.
type Options struct {
	// Prefix is the nesting marker of field tables; empty means the
	// markdown package default.
	Prefix string
	// Module is the module the documented package belongs to; when set the
	// dependency section is rendered.
	Module *Module
	// SummaryFileNames names method documents after the first word of their
	// title.
	SummaryFileNames bool
}

func (o Options) table(nodes []*fieldtree.Node) string {
	if len(nodes) == 0 {
		return ""
	}
	return markdown.Table(nodes, markdown.WithPrefix(o.Prefix))
}

type methodData struct {
	Title           string
	Description     string
	Package         string
	Declaration     string
	Endpoint        *endpoint.Descriptor
	RequestExample  string
	RequestTable    string
	ResponseExample string
	ResponseTable   string
}

// Method renders the document of an endpoint.
func Method(d *endpoint.Descriptor, opts Options) (string, error) {
	data := methodData{
		Title:        d.Method,
		Description:  d.Title,
		Declaration:  declaration(d),
		Endpoint:     d,
		RequestTable: opts.table(d.Request),
	}
	if d.Description != "" {
		data.Description += "\n\n" + d.Description
	}
	if opts.Module != nil && d.Package != "" {
		data.Package = opts.Module.Require(d.Package)
	}

	if len(d.Request) > 0 {
		example, err := schema.ExampleJSON(schema.Example(d.Request))
		if err != nil {
			return "", fmt.Errorf("docgen: request example of %s: %w", d.Method, err)
		}
		data.RequestExample = example
	}
	if d.Response != nil {
		example, err := schema.ExampleJSON(schema.ExampleOf(d.Response))
		if err != nil {
			return "", fmt.Errorf("docgen: response example of %s: %w", d.Method, err)
		}
		data.ResponseExample = example
		data.ResponseTable = opts.table(responseFields(d.Response))
	}
	return execute("method.md.gotmpl", data)
}

type typeData struct {
	Title   string
	Example string
	Table   string
}

// Type renders the document of a type from its field nodes.
func Type(name string, nodes []*fieldtree.Node, opts Options) (string, error) {
	data := typeData{Title: name, Table: opts.table(nodes)}
	if len(nodes) > 0 {
		example, err := schema.ExampleJSON(schema.Example(nodes))
		if err != nil {
			return "", fmt.Errorf("docgen: example of %s: %w", name, err)
		}
		data.Example = example
	}
	return execute("type.md.gotmpl", data)
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("docgen: execute %s: %w", name, err)
	}
	return buf.String(), nil
}

// FileName returns the document file name of d: the method name, or with
// summary set the title-cased first word of the title when the title has
// several words.
func FileName(d *endpoint.Descriptor, summary bool) string {
	name := d.Method
	if summary {
		if word, _, found := strings.Cut(strings.TrimSpace(d.Title), " "); found && word != "" {
			name = summaryCaser().String(word)
		}
	}
	return sanitize(name) + Extension
}

// summaryCaser upper-cases the first letter of a summary word and keeps the
// rest, so "listOrders" becomes "ListOrders".
func summaryCaser() cases.Caser {
	return cases.Title(language.English, cases.NoLower)
}

// TypeFileName returns the document file name of a type.
func TypeFileName(name string) string {
	return sanitize(name) + Extension
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}

// responseFields returns the rows of the response table: the fields of an
// object result, otherwise the result itself.
func responseFields(n *fieldtree.Node) []*fieldtree.Node {
	if n.Kind == fieldtree.Object && n.HasChildren() {
		return n.Children
	}
	return []*fieldtree.Node{n}
}

// declaration renders the package clause and the method signature.
func declaration(d *endpoint.Descriptor) string {
	if d.Signature == "" {
		return ""
	}
	if d.Package == "" {
		return d.Signature
	}
	return "package " + path.Base(d.Package) + "\n\n" + d.Signature
}
