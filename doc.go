// Package apidesc describes HTTP endpoints declared by Go controller types.
//
// Controllers are ordinary Go types whose methods are marked with comment
// directives. apidesc reads them, builds field trees of the parameter and
// result types, classifies parameters into path variables, query parameters,
// form fields and a request body, and renders the result as schemas,
// Markdown tables, Markdown documents or API catalog entries.
//
// # Overview
//
// The module consists of these packages:
//
//   - typeinfo: type descriptors, annotations and the logger interface
//   - loader: reads Go source with golang.org/x/tools/go/packages
//   - fieldtree: builds descriptor trees of types and parameters
//   - route: resolves verbs and paths from controller directives
//   - params: classifies parameter trees into buckets
//   - endpoint: assembles endpoint descriptors
//   - schema: renders descriptor trees as JSON or YAML schemas
//   - markdown: renders descriptor trees as Markdown tables
//   - docgen: renders Markdown documents for endpoints and types
//   - catalog: maps descriptors onto a YApi-compatible catalog and publishes them
//   - config: YAML and environment configuration
//   - apierrors: sentinel and structured errors
//
// # Directives
//
// A controller and its methods are declared like this:
//
//	// OrderController manages orders.
//	//
//	//apidesc:controller rest /orders
//	type OrderController struct{}
//
//	// Get fetches one order.
//	//
//	//apidesc:get /{id}
//	//apidesc:param id path name=orderId
//	func (c *OrderController) Get(ctx context.Context, id string) (*Order, error)
//
// Struct fields use json tags for names and oas tags for metadata:
//
//	Page int `json:"page" oas:"description=Page number,minimum=1,maximum=100"`
//
// # Quick Start
//
// Describe the endpoints of a package:
//
//	res, err := loader.Load(ctx, loader.Options{Dir: ".", Patterns: []string{"./api"}})
//	if err != nil {
//		log.Fatal(err)
//	}
//	b := endpoint.New()
//	for _, ctrl := range res.Controllers() {
//		ds, err := b.BuildAll(ctrl, res.Methods(ctrl.Name()))
//		if err != nil {
//			log.Fatal(err)
//		}
//		for _, d := range ds {
//			fmt.Println(d.Meta.Verb, d.Path())
//		}
//	}
//
// Compiled types can be described without loading source:
//
//	nodes := fieldtree.New().Fields(typeinfo.Of(Order{}))
//	fmt.Print(markdown.Table(nodes))
//
// # Command Line
//
// The apidesc command wraps these packages: schema, table, describe, doc,
// publish and mcp. Run 'apidesc help' for details.
package apidesc
