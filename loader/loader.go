// Package loader provides type descriptors read from Go source.
//
// Load uses golang.org/x/tools/go/packages to type-check the requested
// packages and indexes their declarations. Compared with reflection, source
// descriptors add doc comments, the constants of enum types, and //apidesc:
// directives:
//
//	// OrderController manages orders.
//	//apidesc:controller rest /orders
//	type OrderController struct{}
//
//	// Get fetches one order.
//	//apidesc:get /{id}
//	//apidesc:param id path name=orderId
//	func (c *OrderController) Get(ctx context.Context, id string) (*Order, error)
//
// Type declarations accept the controller and mapping directives. Functions
// and methods accept mapping, get, post, put, delete, patch, jsonbody and
// param. A param directive names a parameter followed by one or more of
// path, body and optional, plus key=value attributes that are copied onto
// each of them. Any other directive is a load error.
package loader

import (
	"bytes"
	"context"
	"go/ast"
	"go/format"
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/erraggy/apidesc/apierrors"
	"github.com/erraggy/apidesc/typeinfo"
)

// DirectivePrefix starts every apidesc comment directive.
const DirectivePrefix = "//apidesc:"

// Options configures Load.
type Options struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string
	// Patterns are go/packages patterns, e.g. "./api/..." or an import path.
	Patterns []string
	// Logger receives debug output. Nil discards it.
	Logger typeinfo.Logger
}

// Result holds the loaded packages and their indexed declarations.
type Result struct {
	pkgs        []*packages.Package
	roots       map[*types.Package]bool
	docs        map[types.Object]string
	annotations map[types.Object]typeinfo.Annotations
	typeOrder   []*types.TypeName
	funcs       []funcEntry
	logger      typeinfo.Logger
}

type funcEntry struct {
	obj    *types.Func
	decl   *ast.FuncDecl
	pkg    *packages.Package
	params map[string]typeinfo.Annotations
}

var (
	typeDirectives = map[string]bool{
		typeinfo.AnnotationController: true,
		typeinfo.AnnotationMapping:    true,
	}
	funcDirectives = map[string]bool{
		typeinfo.AnnotationMapping:  true,
		typeinfo.AnnotationGet:      true,
		typeinfo.AnnotationPost:     true,
		typeinfo.AnnotationPut:      true,
		typeinfo.AnnotationDelete:   true,
		typeinfo.AnnotationPatch:    true,
		typeinfo.AnnotationJSONBody: true,
		directiveParam:              true,
	}
	paramKinds = map[string]bool{
		typeinfo.AnnotationPath:     true,
		typeinfo.AnnotationBody:     true,
		typeinfo.AnnotationOptional: true,
	}
)

const directiveParam = "param"

// Load type-checks the packages matching opts.Patterns and indexes them.
// Package errors and malformed directives are reported as
// *apierrors.ParseError.
func Load(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Patterns) == 0 {
		return nil, &apierrors.ConfigError{Option: "patterns", Message: "no packages specified"}
	}
	logger := typeinfo.OrNop(opts.Logger)

	cfg := &packages.Config{
		Context: ctx,
		Dir:     opts.Dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, opts.Patterns...)
	if err != nil {
		return nil, &apierrors.ParseError{
			Path:    strings.Join(opts.Patterns, " "),
			Message: "failed to load packages",
			Cause:   err,
		}
	}
	if len(pkgs) == 0 {
		return nil, &apierrors.ParseError{Path: strings.Join(opts.Patterns, " "), Message: "no packages found"}
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			e := pkg.Errors[0]
			return nil, &apierrors.ParseError{Path: e.Pos, Message: e.Msg}
		}
	}

	// Load returns packages in no particular order.
	slices.SortFunc(pkgs, func(a, b *packages.Package) int {
		return strings.Compare(a.PkgPath, b.PkgPath)
	})

	r := &Result{
		pkgs:        pkgs,
		roots:       make(map[*types.Package]bool, len(pkgs)),
		docs:        make(map[types.Object]string),
		annotations: make(map[types.Object]typeinfo.Annotations),
		logger:      logger,
	}
	for _, pkg := range pkgs {
		r.roots[pkg.Types] = true
	}
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			if err := r.indexFile(pkg, file); err != nil {
				return nil, err
			}
		}
		logger.Debug("indexed package", "package", pkg.PkgPath, "files", len(pkg.Syntax))
	}
	return r, nil
}

func (r *Result) indexFile(pkg *packages.Package, file *ast.File) error {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}
				as, err := directives(pkg, doc, typeDirectives)
				if err != nil {
					return err
				}
				r.docs[obj] = docText(doc)
				r.annotations[obj] = as
				r.typeOrder = append(r.typeOrder, obj)
			}

		case *ast.FuncDecl:
			obj, ok := pkg.TypesInfo.Defs[d.Name].(*types.Func)
			if !ok {
				continue
			}
			as, err := directives(pkg, d.Doc, funcDirectives)
			if err != nil {
				return err
			}
			entry := funcEntry{obj: obj, decl: d, pkg: pkg}
			entry.params, as, err = paramAnnotations(pkg, d, obj, as)
			if err != nil {
				return err
			}
			r.docs[obj] = docText(d.Doc)
			r.annotations[obj] = as
			r.funcs = append(r.funcs, entry)
		}
	}

	// Field docs, including fields of nested struct literals.
	ast.Inspect(file, func(n ast.Node) bool {
		st, ok := n.(*ast.StructType)
		if !ok || st.Fields == nil {
			return true
		}
		for _, f := range st.Fields.List {
			doc := f.Doc
			if doc == nil {
				doc = f.Comment
			}
			for _, name := range f.Names {
				if obj := pkg.TypesInfo.Defs[name]; obj != nil {
					r.docs[obj] = docText(doc)
				}
			}
		}
		return true
	})
	return nil
}

// docText returns the comment text without directive lines.
func docText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}

// directives parses the //apidesc: lines of a comment group, rejecting names
// not in allowed.
func directives(pkg *packages.Package, cg *ast.CommentGroup, allowed map[string]bool) (typeinfo.Annotations, error) {
	if cg == nil {
		return nil, nil
	}
	var as typeinfo.Annotations
	for _, c := range cg.List {
		text, ok := strings.CutPrefix(c.Text, DirectivePrefix)
		if !ok {
			continue
		}
		pos := pkg.Fset.Position(c.Slash)
		a, ok := typeinfo.ParseDirective(text)
		if !ok {
			return nil, &apierrors.ParseError{Path: pos.Filename, Line: pos.Line, Message: "empty directive"}
		}
		if !allowed[a.Name] {
			return nil, &apierrors.ParseError{
				Path:    pos.Filename,
				Line:    pos.Line,
				Message: "unknown directive " + DirectivePrefix + a.Name,
			}
		}
		as = append(as, a)
	}
	return as, nil
}

// paramAnnotations moves param directives out of a function's annotations
// into per-parameter annotations.
func paramAnnotations(pkg *packages.Package, d *ast.FuncDecl, obj *types.Func, as typeinfo.Annotations) (map[string]typeinfo.Annotations, typeinfo.Annotations, error) {
	var (
		params map[string]typeinfo.Annotations
		rest   typeinfo.Annotations
	)
	sig := obj.Type().(*types.Signature)
	pos := pkg.Fset.Position(d.Pos())

	for _, a := range as {
		if a.Name != directiveParam {
			rest = append(rest, a)
			continue
		}

		var name string
		var kinds []string
		var attrs []typeinfo.Attr
		for _, attr := range a.Attrs {
			switch {
			case attr.Key != "":
				attrs = append(attrs, attr)
			case name == "":
				name = attr.Value
			default:
				kinds = append(kinds, attr.Value)
			}
		}
		if name == "" || len(kinds) == 0 {
			return nil, nil, &apierrors.ParseError{
				Path:    pos.Filename,
				Line:    pos.Line,
				Message: "param directive needs a parameter name and a kind",
			}
		}
		if !hasParam(sig, name) {
			return nil, nil, &apierrors.ParseError{
				Path:    pos.Filename,
				Line:    pos.Line,
				Message: "param directive names unknown parameter " + name,
			}
		}
		if params == nil {
			params = make(map[string]typeinfo.Annotations)
		}
		for _, kind := range kinds {
			if !paramKinds[kind] {
				return nil, nil, &apierrors.ParseError{
					Path:    pos.Filename,
					Line:    pos.Line,
					Message: "unknown parameter kind " + kind,
				}
			}
			params[name] = append(params[name], typeinfo.Annotation{Name: kind, Attrs: attrs})
		}
	}
	return params, rest, nil
}

func hasParam(sig *types.Signature, name string) bool {
	for i := 0; i < sig.Params().Len(); i++ {
		if sig.Params().At(i).Name() == name {
			return true
		}
	}
	return false
}

// Type returns the named type declared in one of the loaded packages.
func (r *Result) Type(name string) (typeinfo.Type, error) {
	for _, pkg := range r.pkgs {
		if tn, ok := pkg.Types.Scope().Lookup(name).(*types.TypeName); ok {
			return r.wrap(tn.Type()), nil
		}
	}
	return nil, &apierrors.ConfigError{Option: "type", Value: name, Message: "not found in loaded packages"}
}

// Files returns the absolute paths of the Go files of the loaded packages,
// sorted.
func (r *Result) Files() []string {
	var files []string
	for _, pkg := range r.pkgs {
		files = append(files, pkg.GoFiles...)
	}
	slices.Sort(files)
	return files
}

// Controllers returns every type carrying the controller directive, in
// package then source order.
func (r *Result) Controllers() []typeinfo.Type {
	var result []typeinfo.Type
	for _, tn := range r.typeOrder {
		if r.annotations[tn].Has(typeinfo.AnnotationController) {
			result = append(result, r.wrap(tn.Type()))
		}
	}
	return result
}

// Methods returns the declared methods of the named receiver type in source
// order. An empty receiver selects plain functions.
func (r *Result) Methods(receiver string) []*typeinfo.Method {
	var result []*typeinfo.Method
	for _, f := range r.funcs {
		if receiverName(f.obj) == receiver {
			result = append(result, r.method(f))
		}
	}
	return result
}

// Method returns one method of the named receiver type. An empty receiver
// selects a plain function.
func (r *Result) Method(receiver, name string) (*typeinfo.Method, error) {
	for _, f := range r.funcs {
		if f.obj.Name() == name && receiverName(f.obj) == receiver {
			return r.method(f), nil
		}
	}
	target := name
	if receiver != "" {
		target = receiver + "." + name
	}
	return nil, &apierrors.ConfigError{Option: "method", Value: target, Message: "not found in loaded packages"}
}

func receiverName(fn *types.Func) string {
	recv := fn.Type().(*types.Signature).Recv()
	if recv == nil {
		return ""
	}
	t := recv.Type()
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		return named.Obj().Name()
	}
	return ""
}

func (r *Result) method(f funcEntry) *typeinfo.Method {
	sig := f.obj.Type().(*types.Signature)
	m := &typeinfo.Method{
		Name:        f.obj.Name(),
		Doc:         r.docs[f.obj],
		Annotations: r.annotations[f.obj],
		Signature:   signature(f.pkg.Fset, f.decl),
		Package:     f.pkg.PkgPath,
	}
	if recv := sig.Recv(); recv != nil {
		m.Receiver = r.wrap(recv.Type())
	}
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		if isContext(p.Type()) {
			continue
		}
		m.Params = append(m.Params, typeinfo.Param{
			Name:        p.Name(),
			Type:        r.wrap(p.Type()),
			Annotations: f.params[p.Name()],
		})
	}
	for i := 0; i < sig.Results().Len(); i++ {
		res := sig.Results().At(i).Type()
		if isError(res) {
			continue
		}
		m.Result = r.wrap(res)
		break
	}
	return m
}

// signature prints a function declaration without doc comment and body.
func signature(fset *token.FileSet, d *ast.FuncDecl) string {
	decl := *d
	decl.Doc = nil
	decl.Body = nil
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, &decl); err != nil {
		return d.Name.Name
	}
	return buf.String()
}

func isContext(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}
	return named.Obj().Pkg().Path() == "context" && named.Obj().Name() == "Context"
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

// structTag adapts a go/types tag string for typeinfo.TagAnnotations.
func structTag(tag string) reflect.StructTag {
	return reflect.StructTag(tag)
}
