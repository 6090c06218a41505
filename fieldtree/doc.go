// Package fieldtree converts type descriptors into descriptor trees.
//
// A descriptor tree is a [Node] per field, classified by [Classify] into one
// of three kinds:
//
//   - [Literal]: scalars, enums, timestamps and anything unrecognized. Literal
//     nodes never have children and carry a constraint range.
//   - [Object]: user-defined structs. Children are the declared fields in
//     source order.
//   - [Array]: slices, arrays and maps. Children describe one element: the
//     element's fields for struct elements, a single synthetic "[]" child for
//     nested containers, nothing for scalar elements.
//
// # Building Trees
//
//	b := fieldtree.New(fieldtree.WithExcludeFields("XXX_unrecognized"))
//	root := b.Build(typeinfo.Of(Order{}), "order", "", nil)
//
// [Builder.Fields] returns just the top-level field nodes of a struct and
// [Builder.Params] the parameter nodes of a method.
//
// # Metadata
//
// A node's description is its doc comment, falling back to the description
// attribute of an oas struct tag. Every node is required unless it carries
// an optional annotation, oas:"required=false" or oas:"nullable". Literal
// ranges come from the oas tag (enum, minimum, maximum, exclusiveMinimum,
// exclusiveMaximum, minLength, maxLength) or from the declared constants of
// an enum type.
//
// # Cycles
//
// A struct that reappears on the path from the root is not expanded again:
// it becomes a childless Object node described as
// "self-referential, see <type name>". Trees are therefore always finite.
package fieldtree
