package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apidesc/apierrors"
	"github.com/erraggy/apidesc/typeinfo"
)

func directives(t *testing.T, lines ...string) typeinfo.Annotations {
	t.Helper()
	var as typeinfo.Annotations
	for _, line := range lines {
		a, ok := typeinfo.ParseDirective(line)
		require.True(t, ok, line)
		as = append(as, a)
	}
	return as
}

func TestBuildPath(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      string
	}{
		{"normalizes slashes", []string{"user/", "/{id}/"}, "/user/{id}"},
		{"no fragments", nil, "/"},
		{"empty fragments", []string{"", "/"}, "/"},
		{"base only", []string{"/orders"}, "/orders"},
		{"method only", []string{"", "list"}, "/list"},
		{"multi segment", []string{"api/v1/", "orders/{id}/items"}, "/api/v1/orders/{id}/items"},
		{"repeated slashes trimmed", []string{"//a//", "//b"}, "/a/b"},
		{"whitespace", []string{" /a ", " b "}, "/a/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPath(tt.fragments...))
		})
	}
}

func TestParseVerb(t *testing.T) {
	v, ok := ParseVerb(" patch ")
	assert.True(t, ok)
	assert.Equal(t, PATCH, v)

	_, ok = ParseVerb("TRACE")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		controller []string
		method     []string
		want       Meta
	}{
		{
			name:       "verb default is POST",
			controller: []string{"controller /orders"},
			method:     []string{"mapping /create"},
			want:       Meta{Verb: POST, BasePath: "/orders", MethodPath: "/create"},
		},
		{
			name:       "verb specific annotation",
			controller: []string{"controller rest /orders"},
			method:     []string{"get /{id}"},
			want:       Meta{Verb: GET, BasePath: "/orders", MethodPath: "/{id}", ProducesJSON: true},
		},
		{
			name:       "explicit method attribute wins",
			controller: []string{"controller"},
			method:     []string{"get /a", "mapping method=put"},
			want:       Meta{Verb: PUT, MethodPath: "/a"},
		},
		{
			name:       "controller mapping overrides base path",
			controller: []string{"controller /ignored", "mapping value=/api/users"},
			method:     []string{"delete path=/{id}"},
			want:       Meta{Verb: DELETE, BasePath: "/api/users", MethodPath: "/{id}"},
		},
		{
			name:       "jsonbody on method",
			controller: []string{"controller"},
			method:     []string{"patch /{id}", "jsonbody"},
			want:       Meta{Verb: PATCH, MethodPath: "/{id}", ProducesJSON: true},
		},
		{
			name:       "rest as key value",
			controller: []string{"controller rest=true"},
			method:     []string{"post"},
			want:       Meta{Verb: POST, ProducesJSON: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(directives(t, tt.controller...), directives(t, tt.method...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePath(t *testing.T) {
	meta, err := Resolve(directives(t, "controller rest user/"), directives(t, "get /{id}/"))
	require.NoError(t, err)
	assert.Equal(t, "/user/{id}", meta.Path())
}

func TestResolveErrors(t *testing.T) {
	t.Run("missing controller", func(t *testing.T) {
		_, err := Resolve(nil, directives(t, "get"))
		assert.ErrorIs(t, err, apierrors.ErrNotApplicable)
	})

	t.Run("missing mapping", func(t *testing.T) {
		_, err := Resolve(directives(t, "controller"), directives(t, "jsonbody"))
		assert.ErrorIs(t, err, apierrors.ErrNotApplicable)
	})

	t.Run("unknown verb", func(t *testing.T) {
		_, err := Resolve(directives(t, "controller"), directives(t, "mapping method=TRACE"))
		var ambErr *apierrors.AmbiguousMappingError
		require.ErrorAs(t, err, &ambErr)
		assert.Equal(t, "method", ambErr.Field)
	})
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsController(directives(t, "controller")))
	assert.False(t, IsController(directives(t, "get")))
	assert.True(t, IsMapped(directives(t, "put /x")))
	assert.False(t, IsMapped(directives(t, "jsonbody")))
}
