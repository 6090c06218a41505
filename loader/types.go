package loader

import (
	"go/constant"
	"go/types"
	"slices"
	"strings"

	"github.com/erraggy/apidesc/typeinfo"
)

// sourceType adapts a go/types type to typeinfo.Type.
type sourceType struct {
	r *Result
	t types.Type
}

// wrap dereferences pointers and aliases.
func (r *Result) wrap(t types.Type) typeinfo.Type {
	if t == nil {
		return nil
	}
	t = types.Unalias(t)
	for {
		p, ok := t.(*types.Pointer)
		if !ok {
			break
		}
		t = types.Unalias(p.Elem())
	}
	return sourceType{r: r, t: t}
}

func (s sourceType) Name() string {
	return types.TypeString(s.t, s.qualifier)
}

// qualifier omits the package name of loaded packages.
func (s sourceType) qualifier(p *types.Package) string {
	if s.r.roots[p] {
		return ""
	}
	return p.Name()
}

func (s sourceType) Key() string {
	return types.TypeString(s.t, nil)
}

func (s sourceType) named() (*types.Named, bool) {
	n, ok := s.t.(*types.Named)
	return n, ok
}

func (s sourceType) isTime() bool {
	return isNamed(s.t, "time", "Time")
}

func (s sourceType) Basic() typeinfo.BasicKind {
	if s.isTime() {
		return typeinfo.BasicTime
	}
	if isBytes(s.t) {
		return typeinfo.BasicBytes
	}
	switch u := s.t.Underlying().(type) {
	case *types.Interface:
		return typeinfo.BasicAny
	case *types.Basic:
		if len(s.EnumValues()) > 0 {
			return typeinfo.BasicEnum
		}
		info := u.Info()
		switch {
		case info&types.IsString != 0:
			return typeinfo.BasicString
		case info&types.IsBoolean != 0:
			return typeinfo.BasicBool
		case info&types.IsInteger != 0:
			return typeinfo.BasicInt
		case info&types.IsFloat != 0:
			return typeinfo.BasicFloat
		}
	}
	return typeinfo.BasicUnknown
}

func (s sourceType) IsContainer() bool {
	switch s.t.Underlying().(type) {
	case *types.Slice:
		return !isBytes(s.t)
	case *types.Array, *types.Map:
		return true
	}
	return false
}

func (s sourceType) Elem() typeinfo.Type {
	if !s.IsContainer() {
		return nil
	}
	switch u := s.t.Underlying().(type) {
	case *types.Slice:
		return s.r.wrap(u.Elem())
	case *types.Array:
		return s.r.wrap(u.Elem())
	case *types.Map:
		return s.r.wrap(u.Elem())
	}
	return nil
}

func (s sourceType) IsComposite() bool {
	_, ok := s.t.Underlying().(*types.Struct)
	return ok && !s.isTime()
}

func (s sourceType) Fields() []typeinfo.Field {
	st, ok := s.t.Underlying().(*types.Struct)
	if !ok || s.isTime() {
		return nil
	}
	fields := make([]typeinfo.Field, 0, st.NumFields())
	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		if !v.Exported() && !(v.Embedded() && isStruct(v.Type())) {
			continue
		}

		tag := structTag(st.Tag(i))
		jsonName, _, _ := strings.Cut(tag.Get("json"), ",")
		if jsonName == "-" {
			continue
		}
		name := jsonName
		if name == "" {
			name = v.Name()
		}

		fields = append(fields, typeinfo.Field{
			Name:        name,
			GoName:      v.Name(),
			Type:        s.r.wrap(v.Type()),
			Doc:         s.r.docs[v],
			Annotations: typeinfo.TagAnnotations(tag),
			Embedded:    v.Embedded() && jsonName == "",
		})
	}
	return fields
}

// EnumValues returns the constants declared with this named type, in source
// order. String constants yield their unquoted value. Only types of the
// loaded packages are considered, so library types such as time.Duration are
// plain scalars.
func (s sourceType) EnumValues() []string {
	named, ok := s.named()
	if !ok || !s.r.roots[named.Obj().Pkg()] {
		return nil
	}
	if _, ok := named.Underlying().(*types.Basic); !ok {
		return nil
	}

	scope := named.Obj().Pkg().Scope()
	var consts []*types.Const
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if ok && types.Identical(c.Type(), named) {
			consts = append(consts, c)
		}
	}
	slices.SortFunc(consts, func(a, b *types.Const) int {
		return int(a.Pos()) - int(b.Pos())
	})

	values := make([]string, 0, len(consts))
	for _, c := range consts {
		values = append(values, constantString(c.Val()))
	}
	return values
}

func (s sourceType) Doc() string {
	if named, ok := s.named(); ok {
		return s.r.docs[named.Obj()]
	}
	return ""
}

func (s sourceType) Annotations() typeinfo.Annotations {
	if named, ok := s.named(); ok {
		return s.r.annotations[named.Obj()]
	}
	return nil
}

func constantString(v constant.Value) string {
	if v.Kind() == constant.String {
		return constant.StringVal(v)
	}
	return v.ExactString()
}

func isNamed(t types.Type, pkgPath, name string) bool {
	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}
	return named.Obj().Pkg().Path() == pkgPath && named.Obj().Name() == name
}

// isBytes reports []byte and json.RawMessage, which encode as strings.
func isBytes(t types.Type) bool {
	if isNamed(t, "encoding/json", "RawMessage") {
		return true
	}
	s, ok := t.Underlying().(*types.Slice)
	if !ok {
		return false
	}
	b, ok := s.Elem().Underlying().(*types.Basic)
	return ok && b.Kind() == types.Byte
}

func isStruct(t types.Type) bool {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	_, ok := t.Underlying().(*types.Struct)
	return ok
}
