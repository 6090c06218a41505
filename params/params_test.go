package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apidesc/apierrors"
	"github.com/erraggy/apidesc/fieldtree"
	"github.com/erraggy/apidesc/route"
	"github.com/erraggy/apidesc/typeinfo"
)

type Filter struct {
	Status string   `json:"status" oas:"enum=NEW|PAID"`
	Page   int      `json:"page" oas:"minimum=1"`
	Tags   []string `json:"tags"`
}

type OrderInput struct {
	SKU string `json:"sku"`
}

func ann(names ...string) typeinfo.Annotations {
	var as typeinfo.Annotations
	for _, n := range names {
		as = append(as, typeinfo.Annotation{Name: n})
	}
	return as
}

func nodes(params ...typeinfo.Param) []*fieldtree.Node {
	return fieldtree.New().Params(&typeinfo.Method{Name: "Handle", Params: params})
}

func paramNames(ps []Param) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestClassifyGET(t *testing.T) {
	in := nodes(
		typeinfo.Param{
			Name: "id",
			Type: typeinfo.Of(int64(0)),
			Annotations: typeinfo.Annotations{{
				Name:  typeinfo.AnnotationPath,
				Attrs: []typeinfo.Attr{{Key: "name", Value: "orderId"}},
			}},
		},
		typeinfo.Param{Name: "filter", Type: typeinfo.Of(Filter{})},
		typeinfo.Param{Name: "verbose", Type: typeinfo.Of(false)},
	)

	b, err := Classify(in, route.GET)
	require.NoError(t, err)

	assert.Equal(t, []string{"orderId"}, paramNames(b.PathVariables))
	assert.Equal(t, "1", b.PathVariables[0].Example)

	assert.Equal(t, []string{"status", "page", "tags", "verbose"}, paramNames(b.QueryParams))
	assert.Equal(t, "string", b.QueryParams[0].Example)
	assert.Equal(t, "1", b.QueryParams[1].Example)
	assert.Equal(t, MultiValueExample, b.QueryParams[2].Example)
	assert.Equal(t, "true", b.QueryParams[3].Example)

	assert.Empty(t, b.FormFields)
	assert.Nil(t, b.Body)
	assert.Equal(t, ContentNone, b.ContentType)
}

func TestClassifyPathName(t *testing.T) {
	tests := []struct {
		name  string
		attrs []typeinfo.Attr
		want  string
	}{
		{"parameter name", nil, "id"},
		{"positional", []typeinfo.Attr{{Value: "orderId"}}, "orderId"},
		{"value attribute", []typeinfo.Attr{{Key: "value", Value: "uid"}}, "uid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := nodes(typeinfo.Param{
				Name:        "id",
				Type:        typeinfo.Of(""),
				Annotations: typeinfo.Annotations{{Name: typeinfo.AnnotationPath, Attrs: tt.attrs}},
			})
			b, err := Classify(in, route.DELETE)
			require.NoError(t, err)
			require.Len(t, b.PathVariables, 1)
			assert.Equal(t, tt.want, b.PathVariables[0].Name)
		})
	}
}

func TestClassifyPOSTForm(t *testing.T) {
	in := nodes(
		typeinfo.Param{Name: "input", Type: typeinfo.Of(OrderInput{})},
		typeinfo.Param{Name: "note", Type: typeinfo.Of("")},
	)

	b, err := Classify(in, route.POST)
	require.NoError(t, err)
	assert.Equal(t, []string{"sku", "note"}, paramNames(b.FormFields))
	assert.Empty(t, b.QueryParams)
	assert.Equal(t, ContentForm, b.ContentType)

	t.Run("PUT forms have no content type", func(t *testing.T) {
		b, err := Classify(in, route.PUT)
		require.NoError(t, err)
		assert.Len(t, b.FormFields, 2)
		assert.Equal(t, ContentNone, b.ContentType)
	})
}

func TestClassifyBody(t *testing.T) {
	in := nodes(
		typeinfo.Param{Name: "tenant", Type: typeinfo.Of("")},
		typeinfo.Param{Name: "input", Type: typeinfo.Of(OrderInput{}), Annotations: ann(typeinfo.AnnotationBody)},
	)

	b, err := Classify(in, route.POST)
	require.NoError(t, err)
	require.NotNil(t, b.Body)
	assert.Equal(t, "input", b.Body.Name)
	assert.Empty(t, b.FormFields)
	assert.Equal(t, []string{"tenant"}, paramNames(b.QueryParams))
	assert.Equal(t, ContentJSON, b.ContentType)
}

func TestClassifyBody_LeftoversGoToQuery(t *testing.T) {
	for _, verb := range []route.Verb{route.POST, route.PUT, route.PATCH, route.DELETE} {
		t.Run(string(verb), func(t *testing.T) {
			in := nodes(
				typeinfo.Param{Name: "input", Type: typeinfo.Of(OrderInput{}), Annotations: ann(typeinfo.AnnotationBody)},
				typeinfo.Param{Name: "tenant", Type: typeinfo.Of("")},
				typeinfo.Param{Name: "dryRun", Type: typeinfo.Of(false)},
			)

			b, err := Classify(in, verb)
			require.NoError(t, err)
			require.NotNil(t, b.Body)
			assert.Empty(t, b.FormFields)
			assert.Equal(t, []string{"tenant", "dryRun"}, paramNames(b.QueryParams))
		})
	}
}

func TestClassifyMultipleBodies(t *testing.T) {
	in := nodes(
		typeinfo.Param{Name: "a", Type: typeinfo.Of(OrderInput{}), Annotations: ann(typeinfo.AnnotationBody)},
		typeinfo.Param{Name: "b", Type: typeinfo.Of(OrderInput{}), Annotations: ann(typeinfo.AnnotationBody)},
	)

	_, err := Classify(in, route.POST)
	var ambErr *apierrors.AmbiguousMappingError
	require.ErrorAs(t, err, &ambErr)
	assert.Equal(t, "b", ambErr.Field)
	assert.ErrorIs(t, err, apierrors.ErrAmbiguousMapping)
}

func TestClassifyPathWinsOverBody(t *testing.T) {
	in := nodes(typeinfo.Param{
		Name:        "id",
		Type:        typeinfo.Of(""),
		Annotations: ann(typeinfo.AnnotationPath, typeinfo.AnnotationBody),
	})
	b, err := Classify(in, route.POST)
	require.NoError(t, err)
	assert.Len(t, b.PathVariables, 1)
	assert.Nil(t, b.Body)
}

// Every parameter, or every field of a flattened struct, lands in exactly one
// bucket.
func TestClassifyPartition(t *testing.T) {
	in := nodes(
		typeinfo.Param{Name: "id", Type: typeinfo.Of(""), Annotations: ann(typeinfo.AnnotationPath)},
		typeinfo.Param{Name: "filter", Type: typeinfo.Of(Filter{})},
		typeinfo.Param{Name: "ids", Type: typeinfo.Of([]int{})},
		typeinfo.Param{Name: "body", Type: typeinfo.Of(OrderInput{}), Annotations: ann(typeinfo.AnnotationBody)},
	)

	for _, verb := range []route.Verb{route.GET, route.POST, route.PUT, route.DELETE, route.PATCH} {
		t.Run(string(verb), func(t *testing.T) {
			b, err := Classify(in, verb)
			require.NoError(t, err)

			seen := make(map[*fieldtree.Node]int)
			for _, group := range [][]Param{b.PathVariables, b.QueryParams, b.FormFields} {
				for _, p := range group {
					seen[p.Node]++
				}
			}
			if b.Body != nil {
				seen[b.Body]++
			}

			want := []*fieldtree.Node{in[0], in[1].Children[0], in[1].Children[1], in[1].Children[2], in[2], in[3]}
			assert.Len(t, seen, len(want))
			for _, n := range want {
				assert.Equal(t, 1, seen[n], n.Name)
			}
			assert.False(t, b.Body != nil && len(b.FormFields) > 0)
		})
	}
}

func TestParamDescription(t *testing.T) {
	in := nodes(typeinfo.Param{Name: "filter", Type: typeinfo.Of(Filter{})})
	b, err := Classify(in, route.GET)
	require.NoError(t, err)

	assert.Equal(t, "(range: {NEW, PAID})", b.QueryParams[0].Description())
	assert.Equal(t, "(range: [1, +inf))", b.QueryParams[1].Description())
	assert.Empty(t, b.QueryParams[2].Description())
	assert.True(t, b.QueryParams[0].Required())

	p := Param{Node: &fieldtree.Node{Description: "Page size", Range: "[1, 100]"}}
	assert.Equal(t, "Page size (range: [1, 100])", p.Description())
	assert.Empty(t, Param{}.Description())
	assert.False(t, Param{}.Required())
}
