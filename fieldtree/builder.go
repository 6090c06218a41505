package fieldtree

import (
	"strings"

	"github.com/erraggy/apidesc/typeinfo"
)

// ArrayElementName is the name of the synthetic child that describes the
// element of a nested container.
const ArrayElementName = "[]"

// BuilderOption configures a Builder.
type BuilderOption func(*builderConfig)

type builderConfig struct {
	exclude         map[string]struct{}
	includeEmbedded bool
	logger          typeinfo.Logger
}

// WithExcludeFields skips fields whose Go name or published name is one of
// names. Repeated calls accumulate.
func WithExcludeFields(names ...string) BuilderOption {
	return func(cfg *builderConfig) {
		for _, name := range names {
			cfg.exclude[name] = struct{}{}
		}
	}
}

// WithIncludeEmbedded controls whether the fields of embedded structs are
// promoted into the embedding struct (the default) or skipped.
func WithIncludeEmbedded(include bool) BuilderOption {
	return func(cfg *builderConfig) {
		cfg.includeEmbedded = include
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l typeinfo.Logger) BuilderOption {
	return func(cfg *builderConfig) {
		cfg.logger = typeinfo.OrNop(l)
	}
}

// Builder converts type descriptors into descriptor trees. A Builder holds
// only configuration and is safe for concurrent use.
type Builder struct {
	cfg builderConfig
}

// New creates a Builder.
func New(opts ...BuilderOption) *Builder {
	cfg := builderConfig{
		exclude:         make(map[string]struct{}),
		includeEmbedded: true,
		logger:          typeinfo.NopLogger{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder{cfg: cfg}
}

// Build returns the tree of a single value of type t.
func (b *Builder) Build(t typeinfo.Type, name, doc string, annotations typeinfo.Annotations) *Node {
	return b.build(t, name, doc, annotations, make(visitedPath))
}

// Fields returns the top-level field nodes of a struct type, or nil for any
// other kind.
func (b *Builder) Fields(t typeinfo.Type) []*Node {
	if Classify(t) != Object {
		return nil
	}
	path := make(visitedPath)
	path.push(t)
	defer path.pop(t)
	return b.fields(t, path)
}

// Params returns one node per method parameter, in declaration order.
func (b *Builder) Params(m *typeinfo.Method) []*Node {
	if m == nil {
		return nil
	}
	nodes := make([]*Node, 0, len(m.Params))
	for _, p := range m.Params {
		nodes = append(nodes, b.build(p.Type, p.Name, p.Doc, p.Annotations, make(visitedPath)))
	}
	return nodes
}

// visitedPath holds the keys of the struct types on the current
// root-to-node path.
type visitedPath map[string]struct{}

func (p visitedPath) contains(t typeinfo.Type) bool {
	_, ok := p[t.Key()]
	return ok
}

func (p visitedPath) push(t typeinfo.Type) { p[t.Key()] = struct{}{} }
func (p visitedPath) pop(t typeinfo.Type)  { delete(p, t.Key()) }

func (b *Builder) build(t typeinfo.Type, name, doc string, annotations typeinfo.Annotations, path visitedPath) *Node {
	n := &Node{
		Name:        name,
		Type:        t,
		Kind:        Classify(t),
		Description: description(doc, annotations),
		Required:    isRequired(annotations),
		Range:       RangeNA,
		Annotations: annotations,
	}

	switch n.Kind {
	case Object:
		if path.contains(t) {
			b.cfg.logger.Debug("breaking type cycle", "type", t.Name(), "field", name)
			n.Description = cycleMarker(t)
			return n
		}
		path.push(t)
		n.Children = b.fields(t, path)
		path.pop(t)

	case Array:
		elem := t.Elem()
		switch Classify(elem) {
		case Object:
			item := b.build(elem, name, "", nil, path)
			n.Children = item.Children
			if !item.HasChildren() && n.Description == "" {
				n.Description = item.Description
			}
		case Array:
			n.Children = []*Node{b.build(elem, ArrayElementName, "", nil, path)}
		}

	case Literal:
		n.Range = rangeOf(t, annotations)
	}
	return n
}

// fields builds the children of a struct whose key is already on path.
func (b *Builder) fields(t typeinfo.Type, path visitedPath) []*Node {
	var nodes []*Node
	for _, f := range t.Fields() {
		if b.excluded(f) {
			continue
		}
		if f.Embedded && Classify(f.Type) == Object {
			if !b.cfg.includeEmbedded || path.contains(f.Type) {
				continue
			}
			path.push(f.Type)
			nodes = append(nodes, b.fields(f.Type, path)...)
			path.pop(f.Type)
			continue
		}
		nodes = append(nodes, b.build(f.Type, f.Name, f.Doc, f.Annotations, path))
	}
	return nodes
}

func (b *Builder) excluded(f typeinfo.Field) bool {
	if _, ok := b.cfg.exclude[f.GoName]; ok {
		return true
	}
	_, ok := b.cfg.exclude[f.Name]
	return ok
}

func cycleMarker(t typeinfo.Type) string {
	return "self-referential, see " + t.Name()
}

func description(doc string, as typeinfo.Annotations) string {
	if doc = strings.TrimSpace(doc); doc != "" {
		return doc
	}
	if oas, ok := as.Find(typeinfo.AnnotationOAS); ok {
		if desc, ok := oas.Value("description"); ok {
			return strings.TrimSpace(desc)
		}
	}
	return ""
}

// isRequired applies the default-required policy.
func isRequired(as typeinfo.Annotations) bool {
	if as.Has(typeinfo.AnnotationOptional) {
		return false
	}
	oas, ok := as.Find(typeinfo.AnnotationOAS)
	if !ok {
		return true
	}
	if v, ok := oas.Value("required"); ok && v == "false" {
		return false
	}
	return !oas.Flag("nullable") && !oas.Flag("optional")
}
