package tilegraph

import (
	"log/slog"
	"sync"

	"github.com/katalvlaran/tilepath/tile"
)

// Cache owns the Graph for a single grid. The graph is built on first Get and
// reused until Invalidate; it is then rebuilt wholesale on the next Get.
//
// mu only guards the cached pointer. Searches holding a *Graph keep reading
// the old snapshot after an Invalidate; ordering rebuilds against searches is
// the host's job.
type Cache struct {
	mu     sync.RWMutex
	grid   tile.Grid
	graph  *Graph
	builds int
	opts   []Option
	logger *slog.Logger
}

// NewCache creates an empty cache for grid. Returns ErrNilGrid if grid is nil.
func NewCache(grid tile.Grid, opts ...Option) (*Cache, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache{grid: grid, opts: opts, logger: cfg.Logger}, nil
}

// Get returns the cached graph, building it if absent, invalidated, or built
// for different grid dimensions.
func (c *Cache) Get() (*Graph, error) {
	c.mu.RLock()
	g := c.graph
	c.mu.RUnlock()
	if g != nil && c.fresh(g) {
		return g, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have rebuilt while we waited for the lock.
	if c.graph != nil && c.fresh(c.graph) {
		return c.graph, nil
	}
	return c.rebuildLocked()
}

// Rebuild discards the cached graph and builds a new one immediately.
func (c *Cache) Rebuild() (*Graph, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rebuildLocked()
}

// Invalidate marks the cached graph stale. The next Get rebuilds it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	if c.graph != nil {
		c.logger.Debug("tile graph invalidated")
	}
	c.graph = nil
	c.mu.Unlock()
}

// Builds returns how many times the graph has been built.
func (c *Cache) Builds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.builds
}

// Grid returns the grid the cache builds from.
func (c *Cache) Grid() tile.Grid { return c.grid }

func (c *Cache) fresh(g *Graph) bool {
	return g.width == c.grid.Width() && g.height == c.grid.Height()
}

func (c *Cache) rebuildLocked() (*Graph, error) {
	g, err := Build(c.grid, c.opts...)
	if err != nil {
		c.graph = nil
		return nil, err
	}
	c.graph = g
	c.builds++
	return g, nil
}
