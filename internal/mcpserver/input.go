package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/apidesc/config"
	"github.com/erraggy/apidesc/internal/workspace"
	"github.com/erraggy/apidesc/typeinfo"
)

// sourceInput selects the Go packages a tool works on.
type sourceInput struct {
	Dir      string   `json:"dir,omitempty"      jsonschema:"Directory of the Go module to load from (default: server working directory)"`
	Patterns []string `json:"patterns,omitempty" jsonschema:"go/packages patterns, e.g. ./api/... (default: ./...)"`
}

// sourceStamp summarizes the files a workspace was loaded from. Editing,
// removing or adding a file in a package directory changes it.
type sourceStamp struct {
	files  int
	size   int64
	modSum int64
}

// stampOf stats paths. It fails when one of them no longer exists.
func stampOf(paths []string) (sourceStamp, error) {
	var st sourceStamp
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return sourceStamp{}, err
		}
		st.files++
		st.size += info.Size()
		st.modSum += info.ModTime().UnixNano()
	}
	return st, nil
}

// cacheEntry holds a loaded workspace with LRU ordering, TTL expiry and the
// stamp of its source files at load time.
type cacheEntry struct {
	ws        *workspace.Workspace
	paths     []string
	stamp     sourceStamp
	insertAt  time.Time
	expiresAt time.Time
}

// stale reports whether the source files changed since the entry was stored.
func (e *cacheEntry) stale() bool {
	st, err := stampOf(e.paths)
	return err != nil || st != e.stamp
}

// workspaceCache keeps recently loaded workspaces, keyed by absolute
// directory and patterns. Loading type-checks whole packages, so repeated tool
// calls against unchanged sources reuse one load until the TTL expires.
type workspaceCache struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

func newWorkspaceCache(maxSize int) *workspaceCache {
	return &workspaceCache{entries: make(map[string]*cacheEntry), maxSize: maxSize}
}

// get returns a cached workspace or nil. Expired entries and entries whose
// source files changed are lazily removed.
func (c *workspaceCache) get(key string) *workspace.Workspace {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		if e.stale() {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.ws
	}
	return nil
}

// put stores a workspace, evicting the least recently used entry if at
// capacity. A workspace whose files cannot be stamped is not cached.
func (c *workspaceCache) put(key string, ws *workspace.Workspace, ttl time.Duration) {
	paths := ws.Files()
	stamp, err := stampOf(paths)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{ws: ws, paths: paths, stamp: stamp, insertAt: now, expiresAt: now.Add(ttl)}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}
	c.entries[key] = entry
}

// sweep removes all expired entries.
func (c *workspaceCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a goroutine that periodically removes expired
// entries until ctx is cancelled. Only the first call spawns a sweeper.
func (c *workspaceCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// size returns the number of cached entries.
func (c *workspaceCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// patterns returns the requested patterns, defaulting to ./...
func (s sourceInput) patterns() []string {
	if len(s.Patterns) == 0 {
		return []string{"./..."}
	}
	return s.Patterns
}

// cacheKey identifies the input. Returns "" when the directory cannot be
// resolved.
func (s sourceInput) cacheKey() string {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	return abs + "\x00" + strings.Join(s.patterns(), "\x00")
}

// resolve loads the workspace for the input, using the server's cache.
func (srv *server) resolve(ctx context.Context, s sourceInput) (*workspace.Workspace, error) {
	var key string
	if srv.cfg.CacheEnabled {
		key = s.cacheKey()
		if key != "" {
			if ws := srv.cache.get(key); ws != nil {
				return ws, nil
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, srv.cfg.LoadTimeout)
	defer cancel()
	ws, err := workspace.Open(ctx, srv.settings, s.Dir, s.patterns(), srv.logger)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", strings.Join(s.patterns(), " "), err)
	}
	if key != "" {
		srv.cache.put(key, ws, srv.cfg.CacheTTL)
	}
	return ws, nil
}

// server holds the state shared by the tool handlers.
type server struct {
	cfg      *serverConfig
	settings *config.Config
	cache    *workspaceCache
	logger   typeinfo.Logger
}

func newServer(settings *config.Config, logger typeinfo.Logger) *server {
	if settings == nil {
		settings = config.Default()
	}
	cfg := loadConfig()
	return &server{
		cfg:      cfg,
		settings: settings,
		cache:    newWorkspaceCache(cfg.CacheMaxSize),
		logger:   typeinfo.OrNop(logger),
	}
}
