package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/erraggy/apidesc"
	"github.com/erraggy/apidesc/apierrors"
	"github.com/erraggy/apidesc/typeinfo"
)

// Catalog API paths.
const (
	PathProjectInfo   = "/api/project/get"
	PathCategoryMenu  = "/api/interface/getCatMenu"
	PathAddCategory   = "/api/interface/add_cat"
	PathSaveInterface = "/api/interface/save"
)

// DefaultTimeout bounds every catalog call made with the default HTTP client.
const DefaultTimeout = 30 * time.Second

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 10 << 20

// Project is the catalog project a token belongs to.
type Project struct {
	ID       int    `json:"_id"`
	Name     string `json:"name"`
	BasePath string `json:"basepath"`
}

// Category is an interface category of a project.
type Category struct {
	ID        int    `json:"_id"`
	Name      string `json:"name"`
	ProjectID int    `json:"project_id"`
	Desc      string `json:"desc"`
}

// SaveResult reports what the catalog did with a saved interface.
type SaveResult struct {
	ID   int    `json:"_id"`
	Path string `json:"path"`
}

// envelope is the common response wrapper.
type envelope struct {
	Code    int             `json:"errcode"`
	Message string          `json:"errmsg"`
	Data    json.RawMessage `json:"data"`
}

type tokenQuery struct {
	Token     string `schema:"token"`
	ProjectID int    `schema:"project_id,omitempty"`
}

type addCategoryRequest struct {
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	ProjectID int    `json:"project_id"`
	Token     string `json:"token"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. The default has a DefaultTimeout
// timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l typeinfo.Logger) Option {
	return func(c *Client) {
		c.logger = typeinfo.OrNop(l)
	}
}

// Client calls the catalog HTTP API with a project token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	query   *schema.Encoder
	logger  typeinfo.Logger
}

// NewClient creates a client for the catalog at baseURL.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: DefaultTimeout},
		query:   schema.NewEncoder(),
		logger:  typeinfo.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the project token.
func (c *Client) Token() string { return c.token }

// ProjectInfo returns the project the token belongs to.
func (c *Client) ProjectInfo(ctx context.Context) (*Project, error) {
	var p Project
	if err := c.get(ctx, PathProjectInfo, tokenQuery{Token: c.token}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCategories returns the categories of a project.
func (c *Client) ListCategories(ctx context.Context, projectID int) ([]Category, error) {
	var cats []Category
	if err := c.get(ctx, PathCategoryMenu, tokenQuery{Token: c.token, ProjectID: projectID}, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// AddCategory creates a category and returns it.
func (c *Client) AddCategory(ctx context.Context, projectID int, name, desc string) (*Category, error) {
	req := addCategoryRequest{Name: name, Desc: desc, ProjectID: projectID, Token: c.token}
	var cat Category
	if err := c.post(ctx, PathAddCategory, req, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// SaveInterface creates or updates an interface entry, matched by path and
// method. The client's token is used when iface has none.
func (c *Client) SaveInterface(ctx context.Context, iface *Interface) ([]SaveResult, error) {
	if iface.Token == "" {
		copied := *iface
		copied.Token = c.token
		iface = &copied
	}
	var results []SaveResult
	if err := c.post(ctx, PathSaveInterface, iface, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) get(ctx context.Context, path string, query any, out any) error {
	values := url.Values{}
	if err := c.query.Encode(query, values); err != nil {
		return &apierrors.CatalogError{Operation: path, Message: "cannot encode query", Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+values.Encode(), nil)
	if err != nil {
		return &apierrors.CatalogError{Operation: path, Message: "cannot create request", Cause: err}
	}
	return c.do(req, path, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return &apierrors.CatalogError{Operation: path, Message: "cannot encode request", Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return &apierrors.CatalogError{Operation: path, Message: "cannot create request", Cause: err}
	}
	req.Header.Set("Content-Type", ContentTypeJSON)
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	c.logger.Debug("catalog request", "method", req.Method, "path", path)
	req.Header.Set("User-Agent", apidesc.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return &apierrors.CatalogError{Operation: path, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &apierrors.CatalogError{Operation: path, StatusCode: resp.StatusCode, Message: "cannot read response", Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apierrors.CatalogError{
			Operation:  path,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %s", resp.Status),
		}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return &apierrors.CatalogError{Operation: path, StatusCode: resp.StatusCode, Message: "invalid response", Cause: err}
	}
	if env.Code != 0 {
		return &apierrors.CatalogError{
			Operation:  path,
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Message,
		}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &apierrors.CatalogError{Operation: path, StatusCode: resp.StatusCode, Message: "invalid response data", Cause: err}
	}
	return nil
}
