package typeinfo

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	timeType       = reflect.TypeFor[time.Time]()
	rawMessageType = reflect.TypeFor[json.RawMessage]()
)

// Of returns the descriptor of v's dynamic type. A nil v yields nil.
func Of(v any) Type {
	if v == nil {
		return nil
	}
	return FromReflect(reflect.TypeOf(v))
}

// FromReflect returns the descriptor of a reflect.Type. Pointers are
// dereferenced. A nil type yields nil.
func FromReflect(t reflect.Type) Type {
	if t == nil {
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return reflectType{t: t}
}

// reflectType adapts reflect.Type to Type.
type reflectType struct {
	t reflect.Type
}

func (r reflectType) Name() string {
	return presentableName(r.t)
}

func (r reflectType) Key() string {
	if r.t.Name() != "" && r.t.PkgPath() != "" {
		return r.t.PkgPath() + "." + r.t.Name()
	}
	return r.t.String()
}

func (r reflectType) Basic() BasicKind {
	if r.t == timeType {
		return BasicTime
	}
	switch r.t.Kind() {
	case reflect.String:
		return BasicString
	case reflect.Bool:
		return BasicBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return BasicInt
	case reflect.Float32, reflect.Float64:
		return BasicFloat
	case reflect.Interface:
		return BasicAny
	case reflect.Slice:
		if isBytes(r.t) {
			return BasicBytes
		}
	}
	return BasicUnknown
}

func (r reflectType) IsContainer() bool {
	switch r.t.Kind() {
	case reflect.Slice, reflect.Array:
		return !isBytes(r.t)
	case reflect.Map:
		return true
	}
	return false
}

func (r reflectType) Elem() Type {
	if !r.IsContainer() {
		return nil
	}
	return FromReflect(r.t.Elem())
}

func (r reflectType) IsComposite() bool {
	return r.t.Kind() == reflect.Struct && r.t != timeType
}

func (r reflectType) Fields() []Field {
	if !r.IsComposite() {
		return nil
	}
	fields := make([]Field, 0, r.t.NumField())
	for i := 0; i < r.t.NumField(); i++ {
		sf := r.t.Field(i)
		if !sf.IsExported() && !isEmbeddedStruct(sf) {
			continue
		}

		jsonName, _ := splitJSONTag(sf.Tag.Get("json"))
		if jsonName == "-" {
			continue
		}

		embedded := sf.Anonymous && jsonName == ""
		name := jsonName
		if name == "" {
			name = sf.Name
		}

		fields = append(fields, Field{
			Name:        name,
			GoName:      sf.Name,
			Type:        FromReflect(sf.Type),
			Annotations: TagAnnotations(sf.Tag),
			Embedded:    embedded,
		})
	}
	return fields
}

// EnumValues always returns nil; compiled types carry no constant sets.
func (r reflectType) EnumValues() []string { return nil }

// Doc always returns ""; doc comments are not available at run time.
func (r reflectType) Doc() string { return "" }

// Annotations always returns nil; type declarations carry no tags.
func (r reflectType) Annotations() Annotations { return nil }

// isEmbeddedStruct reports whether sf is an anonymous struct field, whose
// exported fields are promoted even when the struct type itself is not.
func isEmbeddedStruct(sf reflect.StructField) bool {
	if !sf.Anonymous {
		return false
	}
	t := sf.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func isBytes(t reflect.Type) bool {
	return (t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8) || t == rawMessageType
}

// presentableName renders a type the way it is written in source, without
// package qualifiers except for well-known library types.
func presentableName(t reflect.Type) string {
	if t == timeType {
		return "time.Time"
	}
	if t.Name() != "" {
		return t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return presentableName(t.Elem())
	case reflect.Slice:
		return "[]" + presentableName(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + presentableName(t.Elem())
	case reflect.Map:
		return "map[" + presentableName(t.Key()) + "]" + presentableName(t.Elem())
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return "any"
		}
	}
	return t.String()
}

func splitJSONTag(tag string) (name string, opts []string) {
	if tag == "" {
		return "", nil
	}
	parts := strings.Split(tag, ",")
	return parts[0], parts[1:]
}
