package fieldtree

import "github.com/erraggy/apidesc/typeinfo"

// Kind is the tree-building category of a type.
type Kind int

const (
	// Literal is a scalar: number, bool, string, enum, time or unknown.
	Literal Kind = iota
	// Object is a user-defined struct.
	Object
	// Array is a slice, array or map.
	Array
)

// String returns the upper-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Object:
		return "OBJECT"
	case Array:
		return "ARRAY"
	default:
		return "LITERAL"
	}
}

// Classify returns the kind of t. Containers are Array regardless of their
// element, structs are Object, everything else (including nil) is Literal.
func Classify(t typeinfo.Type) Kind {
	switch {
	case t == nil:
		return Literal
	case t.IsContainer():
		return Array
	case t.IsComposite():
		return Object
	default:
		return Literal
	}
}
