// Package workspace ties the loader, the tree builders and the renderers
// together for the CLI and the MCP server.
package workspace

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/erraggy/apidesc/apierrors"
	"github.com/erraggy/apidesc/config"
	"github.com/erraggy/apidesc/endpoint"
	"github.com/erraggy/apidesc/fieldtree"
	"github.com/erraggy/apidesc/loader"
	"github.com/erraggy/apidesc/markdown"
	"github.com/erraggy/apidesc/schema"
	"github.com/erraggy/apidesc/typeinfo"
)

// Workspace is a set of loaded packages with builders configured from a
// Config.
type Workspace struct {
	dir       string
	cfg       *config.Config
	source    *loader.Result
	fields    *fieldtree.Builder
	endpoints *endpoint.Builder
	logger    typeinfo.Logger
}

// Open loads the packages matching patterns in dir. A nil cfg means
// config.Default().
func Open(ctx context.Context, cfg *config.Config, dir string, patterns []string, logger typeinfo.Logger) (*Workspace, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger = typeinfo.OrNop(logger)

	source, err := loader.Load(ctx, loader.Options{Dir: dir, Patterns: patterns, Logger: logger})
	if err != nil {
		return nil, err
	}
	fields := fieldtree.New(
		fieldtree.WithExcludeFields(cfg.ExcludeFields...),
		fieldtree.WithLogger(logger),
	)
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &Workspace{
		dir:       abs,
		cfg:       cfg,
		source:    source,
		fields:    fields,
		endpoints: endpoint.New(endpoint.WithFieldBuilder(fields), endpoint.WithLogger(logger)),
		logger:    logger,
	}, nil
}

// Config returns the workspace configuration.
func (w *Workspace) Config() *config.Config { return w.cfg }

// Source returns the loaded packages.
func (w *Workspace) Source() *loader.Result { return w.source }

// Files returns the paths the workspace was loaded from: the Go files of the
// loaded packages, their directories and the go.mod of the workspace
// directory when there is one. A change to any of them makes the loaded
// packages stale.
func (w *Workspace) Files() []string {
	if w.source == nil {
		return nil
	}
	files := w.source.Files()
	dirs := make([]string, 0, len(files))
	for _, f := range files {
		dirs = append(dirs, filepath.Dir(f))
	}
	slices.Sort(dirs)
	files = append(files, slices.Compact(dirs)...)
	if w.dir != "" {
		modFile := filepath.Join(w.dir, "go.mod")
		if _, err := os.Stat(modFile); err == nil {
			files = append(files, modFile)
		}
	}
	return files
}

// Fields returns the field nodes of a named struct type.
func (w *Workspace) Fields(typeName string) ([]*fieldtree.Node, error) {
	t, err := w.source.Type(typeName)
	if err != nil {
		return nil, err
	}
	if !t.IsComposite() {
		return nil, &apierrors.NotApplicableError{Target: typeName, Reason: "not a struct type"}
	}
	return w.fields.Fields(t), nil
}

// Schema renders the schema of a named type.
func (w *Workspace) Schema(typeName string) (*schema.Node, error) {
	t, err := w.source.Type(typeName)
	if err != nil {
		return nil, err
	}
	return schema.Render(w.fields.Build(t, typeName, t.Doc(), t.Annotations())), nil
}

// Table renders the field table of a named struct type with the configured
// prefix.
func (w *Workspace) Table(typeName string) (string, error) {
	nodes, err := w.Fields(typeName)
	if err != nil {
		return "", err
	}
	return markdown.Table(nodes, markdown.WithPrefix(w.cfg.Prefix)), nil
}

// Endpoint describes one controller method.
func (w *Workspace) Endpoint(controller, method string) (*endpoint.Descriptor, error) {
	m, err := w.source.Method(controller, method)
	if err != nil {
		return nil, err
	}
	return w.endpoints.Build(m)
}

// Endpoints describes the mapped methods of a controller, or of every
// controller when controller is empty.
func (w *Workspace) Endpoints(controller string) ([]*endpoint.Descriptor, error) {
	if controller != "" {
		t, err := w.source.Type(controller)
		if err != nil {
			return nil, err
		}
		return w.endpoints.BuildAll(t, w.source.Methods(controller))
	}

	var all []*endpoint.Descriptor
	for _, t := range w.source.Controllers() {
		ds, err := w.endpoints.BuildAll(t, w.source.Methods(t.Name()))
		if err != nil {
			return nil, err
		}
		all = append(all, ds...)
	}
	if len(all) == 0 {
		return nil, &apierrors.NotApplicableError{Target: "workspace", Reason: "no controller endpoints found"}
	}
	return all, nil
}
