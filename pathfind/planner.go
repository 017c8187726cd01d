package pathfind

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/tilepath/resindex"
	"github.com/katalvlaran/tilepath/tile"
	"github.com/katalvlaran/tilepath/tilegraph"
)

// Planner owns the tile graph cache for one grid and answers searches
// against it. Searches are synchronous and only read the graph; the host
// must not rebuild the graph while a search on the same Planner is running.
type Planner struct {
	cfg   Options
	cache *tilegraph.Cache
}

// NewPlanner returns a Planner bound to grid. A nil grid is accepted;
// Calculate then fails with ErrNoGrid until Bind is called.
func NewPlanner(grid tile.Grid, opts ...Option) *Planner {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Planner{cfg: cfg}
	p.Bind(grid)
	return p
}

// Bind replaces the grid and drops any cached graph. An installed resource
// index is kept; install one built from the new grid with SetResourceIndex.
func (p *Planner) Bind(grid tile.Grid) {
	p.cache = nil
	if grid == nil {
		return
	}
	// NewCache only fails on a nil grid.
	p.cache, _ = tilegraph.NewCache(grid, tilegraph.WithLogger(p.cfg.Logger))
}

// Invalidate marks the cached graph stale; the next search rebuilds it.
func (p *Planner) Invalidate() {
	if p.cache != nil {
		p.cache.Invalidate()
	}
}

// Notify delivers a tile change. The graph is invalidated when the change
// flips walkability; it reports whether it did so.
func (p *Planner) Notify(ch tile.Change) bool {
	if p.cache == nil || !ch.WalkabilityChanged() {
		return false
	}
	p.cfg.Logger.Debug("walkability changed", slog.String("tile", ch.At.String()),
		slog.Float64("old", ch.OldCost), slog.Float64("new", ch.NewCost))
	p.cache.Invalidate()
	return true
}

// SetResourceIndex installs idx, replacing the one given to
// WithResourceIndex. A nil idx disables the resource pre-check.
func (p *Planner) SetResourceIndex(idx *resindex.Index) {
	p.cfg.Index = idx
}

// ResourceIndex returns the installed resource index, or nil.
func (p *Planner) ResourceIndex() *resindex.Index {
	return p.cfg.Index
}

// Graph returns the current graph, building it if needed.
func (p *Planner) Graph() (*tilegraph.Graph, error) {
	if p.cache == nil {
		return nil, ErrNoGrid
	}
	return p.cache.Get()
}

// Calculate runs one search.
//
// Errors (in order of checking): ErrNoGrid, ErrNoStart, ErrNoTarget,
// ErrAmbiguousTarget, and any graph build error. Every other outcome,
// including a start or goal missing from the node set, is reported through
// Result.Reachable.
//
// Exact-goal mode runs A* with a Euclidean heuristic. Resource-seek mode
// runs the same loop with a zero heuristic and accepts the first popped tile
// holding a stack of req.ObjectType (skipping stockpiles unless
// req.CanTakeFromStockpile), which is the nearest match by cost. When a
// resource index is installed and holds no eligible stack of that type, the
// search is skipped and reported unreachable; the index must reflect the
// grid's stacks (see resindex.Index.Sync and SetResourceIndex).
//
// Routes are cost-optimal when every passable movement cost is at least 1.
// Below that the Euclidean heuristic can overestimate, and A* may return a
// costlier route than exists. Resource-seek mode and Nearest use no
// heuristic and are optimal for any non-negative cost.
//
// Complexity: O((V + E) log V) time, O(V) memory, V = W×H, E ≤ 8V.
func (p *Planner) Calculate(req Request) (Result, error) {
	if p.cache == nil {
		return Result{}, ErrNoGrid
	}
	if req.Start == nil {
		return Result{}, ErrNoStart
	}
	hasGoal, hasType := req.Goal != nil, req.ObjectType != ""
	switch {
	case !hasGoal && !hasType:
		return Result{}, ErrNoTarget
	case hasGoal && hasType:
		return Result{}, ErrAmbiguousTarget
	}

	if hasType && p.cfg.Index != nil && !p.cfg.Index.Has(req.ObjectType, req.CanTakeFromStockpile) {
		p.cfg.Logger.Debug("no stack of requested type indexed",
			slog.String("type", req.ObjectType), slog.Bool("stockpile", req.CanTakeFromStockpile))
		return Result{}, nil
	}

	g, err := p.cache.Get()
	if err != nil {
		return Result{}, fmt.Errorf("pathfind: building tile graph: %w", err)
	}

	r, ok := p.newRunner(g, req.Start, req.Routable)
	if !ok {
		return Result{}, nil
	}
	if hasGoal {
		goal, ok := g.NodeAt(req.Goal.X(), req.Goal.Y())
		if !ok {
			p.cfg.Logger.Warn("goal tile not in node set", slog.String("tile", tile.At(req.Goal).String()))
			return Result{}, nil
		}
		r.goal = goal.Index
		r.gx, r.gy = float64(goal.X), float64(goal.Y)
		r.accept = func(i int, _ tile.Tile) bool { return i == r.goal }
	} else {
		typ, stock := req.ObjectType, req.CanTakeFromStockpile
		r.accept = func(_ int, t tile.Tile) bool {
			s, ok := t.Resource()
			if !ok || s.Type != typ {
				return false
			}
			return stock || !t.IsStockpile()
		}
	}
	return r.run(), nil
}

// Nearest finds the tile with the lowest accumulated cost from start for
// which match returns true, using a zero heuristic. The start tile itself is
// tested first.
func (p *Planner) Nearest(start tile.Tile, match func(tile.Tile) bool) (Result, error) {
	if p.cache == nil {
		return Result{}, ErrNoGrid
	}
	if start == nil {
		return Result{}, ErrNoStart
	}
	if match == nil {
		return Result{}, ErrNilMatch
	}
	g, err := p.cache.Get()
	if err != nil {
		return Result{}, fmt.Errorf("pathfind: building tile graph: %w", err)
	}
	r, ok := p.newRunner(g, start, nil)
	if !ok {
		return Result{}, nil
	}
	r.accept = func(_ int, t tile.Tile) bool { return match(t) }
	return r.run(), nil
}

func (p *Planner) newRunner(g *tilegraph.Graph, start tile.Tile, routable []tile.Tile) (*runner, bool) {
	sn, ok := g.NodeAt(start.X(), start.Y())
	if !ok {
		p.cfg.Logger.Warn("start tile not in node set", slog.String("tile", tile.At(start).String()))
		return nil, false
	}
	return newRunner(g, p.cfg, sn.Index, routable), true
}
