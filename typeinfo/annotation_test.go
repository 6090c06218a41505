package typeinfo

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagAnnotations(t *testing.T) {
	t.Run("keys in tag order", func(t *testing.T) {
		tag := reflect.StructTag(`oas:"minimum=1" json:"id,omitempty" xml:"ident"`)
		as := TagAnnotations(tag)
		require.Len(t, as, 3)
		assert.Equal(t, "oas", as[0].Name)
		assert.Equal(t, "json", as[1].Name)
		assert.Equal(t, "xml", as[2].Name)
	})

	t.Run("json positional name and flags", func(t *testing.T) {
		as := TagAnnotations(`json:"id,omitempty"`)
		a, ok := as.Find(AnnotationJSON)
		require.True(t, ok)
		assert.Equal(t, []Attr{{Value: "id"}, {Key: "omitempty", Value: "true"}}, a.Attrs)
		assert.True(t, a.Flag("omitempty"))

		name, ok := a.Value("")
		assert.True(t, ok)
		assert.Equal(t, "id", name)
	})

	t.Run("oas key value pairs", func(t *testing.T) {
		as := TagAnnotations(`oas:"description=User ID,minimum=1,maximum=100,required=false"`)
		a, ok := as.Find(AnnotationOAS)
		require.True(t, ok)

		desc, _ := a.Value("description")
		assert.Equal(t, "User ID", desc)
		minimum, _ := a.Value("minimum")
		assert.Equal(t, "1", minimum)
		required, _ := a.Value("required")
		assert.Equal(t, "false", required)
	})

	t.Run("oas bare flag after first element", func(t *testing.T) {
		as := TagAnnotations(`oas:"minimum=1,nullable"`)
		a, _ := as.Find(AnnotationOAS)
		assert.True(t, a.Flag("nullable"))
	})

	t.Run("empty tag", func(t *testing.T) {
		assert.Empty(t, TagAnnotations(""))
	})

	t.Run("escaped quote in value", func(t *testing.T) {
		as := TagAnnotations(`oas:"description=say \"hi\"" json:"greeting"`)
		require.Len(t, as, 2)
		assert.Equal(t, "json", as[1].Name)
	})
}

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Annotation
		ok   bool
	}{
		{
			name: "bare",
			text: "jsonbody",
			want: Annotation{Name: "jsonbody"},
			ok:   true,
		},
		{
			name: "positional path",
			text: "get /{id}",
			want: Annotation{Name: "get", Attrs: []Attr{{Value: "/{id}"}}},
			ok:   true,
		},
		{
			name: "key values",
			text: "mapping path=/orders method=PUT",
			want: Annotation{Name: "mapping", Attrs: []Attr{{Key: "path", Value: "/orders"}, {Key: "method", Value: "PUT"}}},
			ok:   true,
		},
		{
			name: "quoted value with spaces",
			text: `param id path name="order id"`,
			want: Annotation{Name: "param", Attrs: []Attr{{Value: "id"}, {Value: "path"}, {Key: "name", Value: "order id"}}},
			ok:   true,
		},
		{
			name: "tabs and repeated spaces",
			text: "controller \t rest",
			want: Annotation{Name: "controller", Attrs: []Attr{{Value: "rest"}}},
			ok:   true,
		},
		{
			name: "empty",
			text: "   ",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDirective(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAnnotationQueries(t *testing.T) {
	as := Annotations{
		{Name: "controller", Attrs: []Attr{{Value: "rest"}}},
		{Name: "get", Attrs: []Attr{{Key: "path", Value: "/a"}}},
		{Name: "mapping", Attrs: []Attr{{Value: "/b"}}},
	}

	t.Run("Has", func(t *testing.T) {
		assert.True(t, as.Has("controller"))
		assert.False(t, as.Has("post"))
	})

	t.Run("FindAny uses declaration order", func(t *testing.T) {
		a, ok := as.FindAny("mapping", "get")
		require.True(t, ok)
		assert.Equal(t, "get", a.Name)
	})

	t.Run("Value falls through keys", func(t *testing.T) {
		a, _ := as.Find("get")
		v, ok := a.Value("", "value", "path")
		assert.True(t, ok)
		assert.Equal(t, "/a", v)

		_, ok = a.Value("name")
		assert.False(t, ok)
	})

	t.Run("Flag positional", func(t *testing.T) {
		a, _ := as.Find("controller")
		assert.True(t, a.Flag("rest"))
		assert.False(t, a.Flag("json"))
	})

	t.Run("nil annotations", func(t *testing.T) {
		var none Annotations
		assert.False(t, none.Has("get"))
		_, ok := none.FindAny("get", "post")
		assert.False(t, ok)
	})
}
