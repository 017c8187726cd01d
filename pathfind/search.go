package pathfind

import (
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/tilepath/frontier"
	"github.com/katalvlaran/tilepath/tile"
	"github.com/katalvlaran/tilepath/tilegraph"
)

// noNode marks an absent goal or predecessor.
const noNode = -1

// runner holds the mutable state of a single search. The graph is read-only;
// everything else is private to the call.
type runner struct {
	g        *tilegraph.Graph
	cfg      Options
	start    int
	goal     int     // noNode in resource-seek and Nearest modes
	gx, gy   float64 // goal centre, valid when goal != noNode
	accept   func(i int, t tile.Tile) bool
	routable mapset.Set[int]

	gScore   []float64
	cameFrom []int
	closed   mapset.Set[int]
	open     *frontier.Queue[int]
	expanded int
}

func newRunner(g *tilegraph.Graph, cfg Options, start int, routable []tile.Tile) *runner {
	r := &runner{
		g:        g,
		cfg:      cfg,
		start:    start,
		goal:     noNode,
		routable: mapset.New[int](),
		gScore:   make([]float64, g.Len()),
		cameFrom: make([]int, g.Len()),
		closed:   mapset.New[int](),
		open:     frontier.NewWithCapacity[int](64),
	}
	for _, t := range routable {
		if t == nil {
			continue
		}
		if n, ok := g.NodeAt(t.X(), t.Y()); ok {
			r.routable.Put(n.Index)
		}
	}
	// g = +∞ everywhere except the start
	for i := range r.gScore {
		r.gScore[i] = math.Inf(1)
		r.cameFrom[i] = noNode
	}
	return r
}

// run drives the frontier loop until a node is accepted, the frontier is
// exhausted, or MaxExpansions is reached.
func (r *runner) run() Result {
	r.gScore[r.start] = 0
	r.open.Push(r.start, r.heuristic(r.start))

	for r.open.Len() > 0 {
		cur, _ := r.open.Pop()
		r.expanded++
		if r.cfg.MaxExpansions > 0 && r.expanded > r.cfg.MaxExpansions {
			r.cfg.Logger.Debug("search truncated", slog.Int("expanded", r.expanded-1))
			return Result{Expanded: r.expanded - 1, Truncated: true}
		}

		if t := r.g.Tile(cur); t != nil && r.accept(cur, t) {
			res := Result{
				Reachable: true,
				Route:     r.reconstruct(cur),
				Cost:      r.gScore[cur],
				Expanded:  r.expanded,
			}
			r.cfg.Logger.Debug("route found",
				slog.Int("length", res.Route.Len()), slog.Float64("cost", res.Cost),
				slog.Int("expanded", res.Expanded))
			return res
		}

		r.closed.Put(cur)
		r.relax(cur)
	}

	r.cfg.Logger.Debug("frontier exhausted", slog.Int("expanded", r.expanded))
	return Result{Expanded: r.expanded}
}

// relax examines every edge out of u and records any strictly better path
// to an unclosed neighbour.
func (r *runner) relax(u int) {
	node := r.g.Node(u)
	for _, e := range node.Edges {
		v := e.To
		if r.closed.Has(v) {
			continue
		}
		if e.Clipped && r.cfg.Corners == CornerBlocked {
			continue
		}
		step := r.traversal(node, v)
		// Impassable neighbours are never entered.
		if math.IsInf(step, 1) {
			continue
		}
		tentative := r.gScore[u] + step
		if r.open.Contains(v) && tentative >= r.gScore[v] {
			continue
		}
		r.cameFrom[v] = u
		r.gScore[v] = tentative
		// Push updates the score in place when v is already open.
		r.open.Push(v, tentative+r.heuristic(v))
	}
}

// traversal is the cost of stepping from node u to v, read from v's current
// movement cost rather than the edge's nominal cost.
func (r *runner) traversal(u *tilegraph.Node, v int) float64 {
	t := r.g.Tile(v)
	if t == nil {
		return math.Inf(1)
	}
	cost := t.MovementCost()
	if tile.Impassable(cost) {
		if !r.routable.Has(v) {
			return math.Inf(1)
		}
		cost = 1
	}
	vx, vy := r.g.Coordinate(v)
	return cost * tilegraph.StepLength(u.X, u.Y, vx, vy)
}

// heuristic is the straight-line distance to the goal, or 0 without one.
func (r *runner) heuristic(i int) float64 {
	if r.goal == noNode {
		return 0
	}
	x, y := r.g.Coordinate(i)
	return planar.Distance(orb.Point{float64(x), float64(y)}, orb.Point{r.gx, r.gy})
}

// reconstruct walks predecessors back from the accepted node, reverses them
// and drops the start tile.
func (r *runner) reconstruct(end int) *Route {
	var back []int
	for at := end; at != noNode; at = r.cameFrom[at] {
		back = append(back, at)
	}
	// back ends with the start; skip it.
	tiles := make([]tile.Tile, 0, len(back)-1)
	for i := len(back) - 2; i >= 0; i-- {
		tiles = append(tiles, r.g.Tile(back[i]))
	}
	sx, sy := r.g.Coordinate(r.start)
	return newRoute(tile.Coord{X: sx, Y: sy}, tiles)
}
