// Package typeinfo defines the type-descriptor capability consumed by the
// apidesc core, together with a reflection-based provider.
//
// A [Type] is an immutable handle to a declared Go type. It exposes just
// enough for tree construction: a display name, an identity key, whether the
// type is a container and what it contains, whether it is a user-defined
// composite, its declared fields in source order, and the metadata attached
// to it (doc comment and [Annotations]).
//
// Two providers produce Types:
//
//   - [Of] and [FromReflect] reflect on compiled types. Struct tags become
//     annotations; doc comments are not available.
//   - The loader package reads Go source with golang.org/x/tools/go/packages,
//     which adds doc comments, enum constants and //apidesc: directives.
//
// Go has no annotations, so both providers normalize struct tags and comment
// directives into the same [Annotation] model and the core only ever asks
// typed questions such as "is there a path annotation, and what is its name
// attribute".
package typeinfo

// BasicKind is the scalar flavour of a type, used to synthesize examples.
type BasicKind int

const (
	// BasicUnknown is any type without a known scalar representation.
	BasicUnknown BasicKind = iota
	// BasicString is a string type.
	BasicString
	// BasicBool is a boolean type.
	BasicBool
	// BasicInt is any signed or unsigned integer type.
	BasicInt
	// BasicFloat is a floating point type.
	BasicFloat
	// BasicTime is time.Time or an equivalent timestamp type.
	BasicTime
	// BasicEnum is a named scalar type with a declared set of constants.
	BasicEnum
	// BasicBytes is a byte slice, encoded as base64 in JSON.
	BasicBytes
	// BasicAny is an interface type.
	BasicAny
)

var basicKindNames = [...]string{
	BasicUnknown: "unknown",
	BasicString:  "string",
	BasicBool:    "bool",
	BasicInt:     "int",
	BasicFloat:   "float",
	BasicTime:    "time",
	BasicEnum:    "enum",
	BasicBytes:   "bytes",
	BasicAny:     "any",
}

// String returns the lower-case name of the kind.
func (k BasicKind) String() string {
	if k < 0 || int(k) >= len(basicKindNames) {
		return "unknown"
	}
	return basicKindNames[k]
}

// Type is a handle to a declared type.
//
// Pointer types are never exposed: providers dereference them, so *User and
// User share one descriptor.
type Type interface {
	// Name is the presentable type name, e.g. "string", "[]Item", "Order".
	Name() string

	// Key identifies the type for cycle detection. Two descriptors of the
	// same declared type return the same key.
	Key() string

	// Basic returns the scalar flavour for literal types and BasicUnknown
	// for composites and containers.
	Basic() BasicKind

	// IsContainer reports whether the type is a slice, array or map.
	IsContainer() bool

	// Elem returns the element type of a container (the value type for
	// maps), or nil.
	Elem() Type

	// IsComposite reports whether the type is a user-defined struct.
	IsComposite() bool

	// Fields returns the declared fields of a composite in source order.
	Fields() []Field

	// EnumValues returns the declared constant values of an enum type.
	EnumValues() []string

	// Doc returns the type's doc comment, or "".
	Doc() string

	// Annotations returns the metadata attached to the type declaration.
	Annotations() Annotations
}

// Field is a declared field of a composite type.
type Field struct {
	// Name is the published name: the json tag name when set, else GoName.
	Name string
	// GoName is the identifier as declared.
	GoName string
	// Type is the field's type.
	Type Type
	// Doc is the field's doc or line comment.
	Doc string
	// Annotations holds the field's struct tags.
	Annotations Annotations
	// Embedded is true for anonymous struct fields without a json name.
	Embedded bool
}

// Param is a method parameter.
type Param struct {
	Name        string
	Type        Type
	Doc         string
	Annotations Annotations
}

// Method describes a method of a controller type, or a plain function.
type Method struct {
	// Name is the method identifier.
	Name string
	// Doc is the doc comment with directive lines removed.
	Doc string
	// Receiver is the containing type; nil for plain functions.
	Receiver Type
	// Params are the parameters in declaration order. context.Context
	// parameters are omitted by providers.
	Params []Param
	// Result is the first non-error result type, or nil.
	Result Type
	// Annotations holds the method's directives.
	Annotations Annotations
	// Signature is the printable declaration without the body.
	Signature string
	// Package is the import path of the declaring package.
	Package string
}

// ReceiverName returns the receiver's type name, or "".
func (m *Method) ReceiverName() string {
	if m == nil || m.Receiver == nil {
		return ""
	}
	return m.Receiver.Name()
}

// ReceiverAnnotations returns the receiver's annotations, or nil.
func (m *Method) ReceiverAnnotations() Annotations {
	if m == nil || m.Receiver == nil {
		return nil
	}
	return m.Receiver.Annotations()
}
