package fieldtree

import "github.com/erraggy/apidesc/typeinfo"

// Fixed example values.
const (
	ExampleString = "string"
	ExampleTime   = "2006-01-02T15:04:05Z"
	// ExampleBytes is "bytes" in standard base64, matching encoding/json.
	ExampleBytes = "Ynl0ZXM="
)

// ExampleValue returns a representative value for a literal type, or nil when
// none can be synthesized (unknown types, interfaces, containers, structs).
// The result is deterministic.
func ExampleValue(t typeinfo.Type) any {
	if t == nil {
		return nil
	}
	switch t.Basic() {
	case typeinfo.BasicString:
		return ExampleString
	case typeinfo.BasicBool:
		return true
	case typeinfo.BasicInt:
		return 1
	case typeinfo.BasicFloat:
		return 1.5
	case typeinfo.BasicTime:
		return ExampleTime
	case typeinfo.BasicBytes:
		return ExampleBytes
	case typeinfo.BasicEnum:
		if values := t.EnumValues(); len(values) > 0 {
			return values[0]
		}
	}
	return nil
}
