// Package endpoint assembles endpoint descriptors from controller methods.
//
// A [Descriptor] combines the routing metadata resolved by the route package,
// the parameter classification of the params package, the response tree and
// the schemas rendered from them, with a title and description taken from the
// method's doc comment. It is the unit published to an API catalog and
// rendered into documents.
//
//	b := endpoint.New(endpoint.WithFieldBuilder(fieldtree.New()))
//	d, err := b.Build(method)
//	if errors.Is(err, apierrors.ErrNotApplicable) {
//	    // not an endpoint
//	}
package endpoint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erraggy/apidesc/apierrors"
	"github.com/erraggy/apidesc/fieldtree"
	"github.com/erraggy/apidesc/params"
	"github.com/erraggy/apidesc/route"
	"github.com/erraggy/apidesc/schema"
	"github.com/erraggy/apidesc/typeinfo"
)

// ResponseName is the name of the root node of a response tree.
const ResponseName = "response"

// Descriptor describes one endpoint.
type Descriptor struct {
	Meta   route.Meta
	Params params.Bucket

	// Request holds every parameter node in declaration order.
	Request []*fieldtree.Node
	// Response is the tree of the result type; nil when the method returns
	// nothing but an error.
	Response *fieldtree.Node

	// RequestSchema is the schema of the body parameter, or nil.
	RequestSchema *schema.Node
	// ResponseSchema is the schema of Response when the endpoint produces
	// JSON; nil means a raw body.
	ResponseSchema *schema.Node

	Title       string
	Description string

	Method        string
	Controller    string
	ControllerDoc string
	Signature     string
	Package       string
}

// Path returns the normalized endpoint path.
func (d *Descriptor) Path() string {
	return d.Meta.Path()
}

// Option configures a Builder.
type Option func(*Builder)

// WithFieldBuilder sets the tree builder used for parameters and results.
func WithFieldBuilder(fb *fieldtree.Builder) Option {
	return func(b *Builder) {
		if fb != nil {
			b.fields = fb
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l typeinfo.Logger) Option {
	return func(b *Builder) {
		b.logger = typeinfo.OrNop(l)
	}
}

// Builder builds endpoint descriptors. It is safe for concurrent use.
type Builder struct {
	fields *fieldtree.Builder
	logger typeinfo.Logger
}

// New creates a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		fields: fieldtree.New(),
		logger: typeinfo.NopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build describes a controller method. It returns a
// *apierrors.NotApplicableError when the receiver is not a controller or the
// method has no mapping annotation.
func (b *Builder) Build(m *typeinfo.Method) (*Descriptor, error) {
	if m == nil {
		return nil, &apierrors.NotApplicableError{Reason: "no method"}
	}
	target := qualifiedName(m)

	meta, err := route.Resolve(m.ReceiverAnnotations(), m.Annotations)
	if err != nil {
		return nil, withMethod(err, target)
	}

	request := b.fields.Params(m)
	bucket, err := params.Classify(request, meta.Verb)
	if err != nil {
		return nil, withMethod(err, target)
	}

	d := &Descriptor{
		Meta:       meta,
		Params:     bucket,
		Request:    request,
		Method:     m.Name,
		Controller: m.ReceiverName(),
		Signature:  m.Signature,
		Package:    m.Package,
	}
	if m.Receiver != nil {
		d.ControllerDoc = strings.TrimSpace(m.Receiver.Doc())
	}

	d.Title, d.Description = splitDoc(m.Doc)
	if d.Title == "" {
		d.Title = m.Name
	}
	if d.Description == "" {
		d.Description = signatureBlock(m.Signature)
	}

	if bucket.Body != nil {
		d.RequestSchema = schema.Render(bucket.Body)
	}
	if m.Result != nil {
		d.Response = b.fields.Build(m.Result, ResponseName, "", nil)
		if meta.ProducesJSON {
			d.ResponseSchema = schema.Render(d.Response)
		}
	}

	b.logger.Debug("built endpoint",
		"method", target,
		"verb", string(meta.Verb),
		"path", meta.Path(),
		"query", len(bucket.QueryParams),
		"form", len(bucket.FormFields),
		"body", bucket.Body != nil)
	return d, nil
}

// BuildAll describes every mapped method of a controller, in order. Methods
// without a mapping annotation are skipped. It returns a
// *apierrors.NotApplicableError when controller is not a controller type.
func (b *Builder) BuildAll(controller typeinfo.Type, methods []*typeinfo.Method) ([]*Descriptor, error) {
	if controller == nil || !route.IsController(controller.Annotations()) {
		name := ""
		if controller != nil {
			name = controller.Name()
		}
		return nil, &apierrors.NotApplicableError{Target: name, Reason: "type has no controller annotation"}
	}

	var result []*Descriptor
	for _, m := range methods {
		d, err := b.Build(m)
		if errors.Is(err, apierrors.ErrNotApplicable) {
			b.logger.Debug("skipping method", "method", qualifiedName(m), "reason", err.Error())
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

// splitDoc returns the first non-empty line of doc as the title and the
// remaining text, trimmed, as the description.
func splitDoc(doc string) (title, description string) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return "", ""
	}
	title, rest, _ := strings.Cut(doc, "\n")
	return strings.TrimSpace(title), strings.TrimSpace(rest)
}

func signatureBlock(signature string) string {
	if signature == "" {
		return ""
	}
	return "```go\n" + signature + "\n```"
}

func qualifiedName(m *typeinfo.Method) string {
	if m == nil {
		return ""
	}
	if r := m.ReceiverName(); r != "" {
		return r + "." + m.Name
	}
	return m.Name
}

// withMethod fills in the method name of structured errors from the route and
// params packages, which do not know it.
func withMethod(err error, target string) error {
	var na *apierrors.NotApplicableError
	if errors.As(err, &na) && na.Target == "" {
		na.Target = target
		return na
	}
	var amb *apierrors.AmbiguousMappingError
	if errors.As(err, &amb) && amb.Method == "" {
		amb.Method = target
		return amb
	}
	return fmt.Errorf("%s: %w", target, err)
}
