package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/erraggy/apidesc/endpoint"
	"github.com/erraggy/apidesc/typeinfo"
)

// DefaultCategory is the category used when none is configured.
const DefaultCategory = "api_generator"

// PublisherOptions configures a Publisher.
type PublisherOptions struct {
	// ProjectID is the catalog project. Zero means look it up from the token.
	ProjectID int
	// DefaultCategory is used when AutoCategory is off or yields nothing.
	DefaultCategory string
	// AutoCategory files an endpoint under the first word of its controller's
	// doc comment.
	AutoCategory bool
	// Status is the status of saved interfaces; empty means "undone".
	Status string
	Logger typeinfo.Logger
}

// Publisher saves endpoint descriptors to the catalog. Category lookups are
// cached for the lifetime of the Publisher. It is safe for concurrent use.
type Publisher struct {
	client *Client
	opts   PublisherOptions
	logger typeinfo.Logger

	mu         sync.Mutex
	projectID  int
	categories map[string]int
}

// NewPublisher creates a Publisher.
func NewPublisher(client *Client, opts PublisherOptions) *Publisher {
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = DefaultCategory
	}
	return &Publisher{
		client:    client,
		opts:      opts,
		logger:    typeinfo.OrNop(opts.Logger),
		projectID: opts.ProjectID,
	}
}

// CategoryName returns the category d is filed under.
func (p *Publisher) CategoryName(d *endpoint.Descriptor) string {
	if p.opts.AutoCategory {
		if name := firstWord(d.ControllerDoc); name != "" {
			return name
		}
	}
	return p.opts.DefaultCategory
}

// Publish saves d, creating its category when it does not exist yet.
func (p *Publisher) Publish(ctx context.Context, d *endpoint.Descriptor) error {
	name := p.CategoryName(d)
	catID, err := p.categoryID(ctx, name)
	if err != nil {
		return err
	}

	iface, err := FromDescriptor(d, MapOptions{Token: p.client.Token(), CatID: catID, Status: p.opts.Status})
	if err != nil {
		return err
	}
	if _, err := p.client.SaveInterface(ctx, iface); err != nil {
		return err
	}
	p.logger.Info("published endpoint",
		"method", iface.Method,
		"path", iface.Path,
		"category", name)
	return nil
}

func (p *Publisher) categoryID(ctx context.Context, name string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.projectID == 0 {
		project, err := p.client.ProjectInfo(ctx)
		if err != nil {
			return 0, err
		}
		p.projectID = project.ID
	}

	if p.categories == nil {
		cats, err := p.client.ListCategories(ctx, p.projectID)
		if err != nil {
			return 0, err
		}
		p.categories = make(map[string]int, len(cats))
		for _, c := range cats {
			p.categories[c.Name] = c.ID
		}
	}

	if id, ok := p.categories[name]; ok {
		return id, nil
	}
	cat, err := p.client.AddCategory(ctx, p.projectID, name, "")
	if err != nil {
		return 0, err
	}
	p.logger.Debug("created category", "name", name, "id", cat.ID)
	p.categories[name] = cat.ID
	return cat.ID, nil
}

// firstWord returns the first space-separated word of the first line of doc.
func firstWord(doc string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(doc), "\n")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
