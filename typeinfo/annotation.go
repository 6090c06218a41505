package typeinfo

import (
	"reflect"
	"strings"
)

// Well-known annotation names.
//
// Struct tags contribute annotations named after the tag key ("json", "oas").
// Directives contribute annotations named after the directive
// (//apidesc:get becomes "get").
const (
	AnnotationJSON       = "json"
	AnnotationOAS        = "oas"
	AnnotationController = "controller"
	AnnotationMapping    = "mapping"
	AnnotationGet        = "get"
	AnnotationPost       = "post"
	AnnotationPut        = "put"
	AnnotationDelete     = "delete"
	AnnotationPatch      = "patch"
	AnnotationJSONBody   = "jsonbody"
	AnnotationPath       = "path"
	AnnotationBody       = "body"
	AnnotationOptional   = "optional"
)

// Attr is one attribute of an annotation. Positional attributes have an
// empty Key. Bare flags have Value "true".
type Attr struct {
	Key   string
	Value string
}

// Annotation is a named piece of declarative metadata.
type Annotation struct {
	Name  string
	Attrs []Attr
}

// Value returns the first non-empty attribute value whose key matches one of
// keys. Use "" to match the positional attribute.
func (a Annotation) Value(keys ...string) (string, bool) {
	for _, key := range keys {
		for _, attr := range a.Attrs {
			if attr.Key == key && attr.Value != "" {
				return attr.Value, true
			}
		}
	}
	return "", false
}

// Flag reports whether a bare flag or a key=true attribute is present.
func (a Annotation) Flag(key string) bool {
	for _, attr := range a.Attrs {
		if attr.Key == key && attr.Value == "true" {
			return true
		}
		if attr.Key == "" && attr.Value == key {
			return true
		}
	}
	return false
}

// Annotations is an ordered list of annotations.
type Annotations []Annotation

// Find returns the first annotation with the given name.
func (as Annotations) Find(name string) (Annotation, bool) {
	for _, a := range as {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}

// FindAny returns the first annotation whose name is one of names, checking
// the list in declaration order.
func (as Annotations) FindAny(names ...string) (Annotation, bool) {
	for _, a := range as {
		for _, name := range names {
			if a.Name == name {
				return a, true
			}
		}
	}
	return Annotation{}, false
}

// Has reports whether an annotation with the given name is present.
func (as Annotations) Has(name string) bool {
	_, ok := as.Find(name)
	return ok
}

// TagAnnotations converts a struct tag into annotations, one per tag key, in
// tag order.
//
// Values are split on commas. A leading element without "=" is positional
// (json:"id,omitempty" yields {"" id} {omitempty true}); other elements are
// key=value pairs or bare flags. This follows the grammar of the oas tag:
//
//	oas:"description=User ID,minimum=1,maximum=100,required=false"
func TagAnnotations(tag reflect.StructTag) Annotations {
	var result Annotations
	for _, key := range tagKeys(string(tag)) {
		value, ok := tag.Lookup(key)
		if !ok {
			continue
		}
		result = append(result, Annotation{Name: key, Attrs: parseTagValue(value)})
	}
	return result
}

// tagKeys returns the keys of a conventional struct tag in order.
func tagKeys(tag string) []string {
	var keys []string
	for tag != "" {
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}
		tag = tag[i:]
		if tag == "" {
			break
		}

		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}
		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			break
		}
		keys = append(keys, tag[:i])
		tag = tag[i+1:]

		// Skip the quoted value.
		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(tag) {
			break
		}
		tag = tag[i+1:]
	}
	return keys
}

func parseTagValue(value string) []Attr {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	attrs := make([]Attr, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if idx := strings.Index(part, "="); idx > 0 {
			attrs = append(attrs, Attr{
				Key:   strings.TrimSpace(part[:idx]),
				Value: strings.TrimSpace(part[idx+1:]),
			})
			continue
		}
		if i == 0 {
			attrs = append(attrs, Attr{Value: part})
			continue
		}
		if part != "" {
			attrs = append(attrs, Attr{Key: part, Value: "true"})
		}
	}
	return attrs
}

// ParseDirective parses the text following a directive prefix, e.g. for
// "//apidesc:get /{id} name=fetch" the text is "get /{id} name=fetch".
//
// The first word is the annotation name. Remaining words are key=value pairs
// or positional values; double-quoted words may contain spaces. Returns false
// for empty text.
func ParseDirective(text string) (Annotation, bool) {
	words := splitWords(text)
	if len(words) == 0 {
		return Annotation{}, false
	}
	a := Annotation{Name: words[0]}
	for _, w := range words[1:] {
		if idx := strings.Index(w, "="); idx > 0 {
			a.Attrs = append(a.Attrs, Attr{Key: w[:idx], Value: unquote(w[idx+1:])})
			continue
		}
		a.Attrs = append(a.Attrs, Attr{Value: unquote(w)})
	}
	return a, true
}

func splitWords(s string) []string {
	var words []string
	var current strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			current.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuote:
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
