package fieldtree

import (
	"strconv"
	"strings"

	"github.com/erraggy/apidesc/typeinfo"
)

// RangeNA is the range of a node without declared constraints.
const RangeNA = "N/A"

// constraints holds the value constraints declared in an oas tag.
type constraints struct {
	enum         []string
	minimum      string
	maximum      string
	exclusiveMin bool
	exclusiveMax bool
	minLength    string
	maxLength    string
}

// parseConstraints reads constraint attributes from the oas annotation.
// Unparseable numbers are ignored.
//
// exclusiveMinimum and exclusiveMaximum accept both forms in use: a flag that
// makes minimum/maximum exclusive, or a number that is itself the bound.
func parseConstraints(as typeinfo.Annotations) constraints {
	var c constraints
	oas, ok := as.Find(typeinfo.AnnotationOAS)
	if !ok {
		return c
	}
	for _, attr := range oas.Attrs {
		switch attr.Key {
		case "enum":
			for _, v := range strings.Split(attr.Value, "|") {
				if v = strings.TrimSpace(v); v != "" {
					c.enum = append(c.enum, v)
				}
			}
		case "minimum":
			if n, ok := formatNumber(attr.Value); ok {
				c.minimum = n
			}
		case "maximum":
			if n, ok := formatNumber(attr.Value); ok {
				c.maximum = n
			}
		case "exclusiveMinimum":
			if attr.Value == "true" {
				c.exclusiveMin = true
			} else if n, ok := formatNumber(attr.Value); ok {
				c.minimum, c.exclusiveMin = n, true
			}
		case "exclusiveMaximum":
			if attr.Value == "true" {
				c.exclusiveMax = true
			} else if n, ok := formatNumber(attr.Value); ok {
				c.maximum, c.exclusiveMax = n, true
			}
		case "minLength":
			if _, err := strconv.Atoi(attr.Value); err == nil {
				c.minLength = attr.Value
			}
		case "maxLength":
			if _, err := strconv.Atoi(attr.Value); err == nil {
				c.maxLength = attr.Value
			}
		}
	}
	return c
}

func formatNumber(s string) (string, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// rangeOf renders the declared value range of a literal:
//
//	{a, b}        enum values
//	[1, 10]       inclusive numeric bounds; ( and ) mark exclusive bounds
//	[1, +inf)     lower bound only
//	(-inf, 10]    upper bound only
//	len[1, 64]    string length bounds
//
// Tag constraints take precedence over the constants of an enum type.
func rangeOf(t typeinfo.Type, as typeinfo.Annotations) string {
	c := parseConstraints(as)
	switch {
	case len(c.enum) > 0:
		return enumRange(c.enum)
	case c.minimum != "" || c.maximum != "":
		return interval(c.minimum, c.maximum, c.exclusiveMin, c.exclusiveMax, "-inf")
	case c.minLength != "" || c.maxLength != "":
		return "len" + interval(c.minLength, c.maxLength, false, false, "0")
	}
	if t != nil && t.Basic() == typeinfo.BasicEnum {
		if values := t.EnumValues(); len(values) > 0 {
			return enumRange(values)
		}
	}
	return RangeNA
}

func enumRange(values []string) string {
	return "{" + strings.Join(values, ", ") + "}"
}

func interval(lo, hi string, exclLo, exclHi bool, unboundedLo string) string {
	var sb strings.Builder
	switch {
	case lo == "" && unboundedLo == "-inf":
		sb.WriteString("(-inf")
	case lo == "":
		sb.WriteString("[" + unboundedLo)
	case exclLo:
		sb.WriteString("(" + lo)
	default:
		sb.WriteString("[" + lo)
	}
	sb.WriteString(", ")
	switch {
	case hi == "":
		sb.WriteString("+inf)")
	case exclHi:
		sb.WriteString(hi + ")")
	default:
		sb.WriteString(hi + "]")
	}
	return sb.String()
}
