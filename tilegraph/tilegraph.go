package tilegraph

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/tilepath/tile"
)

// Graph is the derived search graph over one tile.Grid. It is immutable once
// built; nodes are addressed by row-major index y*Width + x.
type Graph struct {
	width, height int
	grid          tile.Grid
	nodes         []Node
	edgeCount     int
	clipped       int
}

// Build constructs a Graph over grid: one node per tile and one edge per
// in-bounds 8-neighbour.
// Returns ErrNilGrid, ErrEmptyGrid, or ErrMissingTile when the grid returns
// nil for an in-bounds coordinate.
// Complexity: O(W×H×8) time and memory.
func Build(grid tile.Grid, opts ...Option) (*Graph, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if grid == nil {
		return nil, ErrNilGrid
	}
	w, h := grid.Width(), grid.Height()
	if w < 1 || h < 1 {
		return nil, ErrEmptyGrid
	}

	g := &Graph{width: w, height: h, grid: grid, nodes: make([]Node, w*h)}

	// Snapshot costs once; clip tests read them repeatedly.
	costs := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := grid.TileAt(x, y)
			if t == nil {
				return nil, fmt.Errorf("%w: %s", ErrMissingTile, tile.Coord{X: x, Y: y})
			}
			i := g.Index(x, y)
			costs[i] = t.MovementCost()
			g.nodes[i] = Node{Index: i, X: x, Y: y}
		}
	}

	offsets := tile.Offsets()
	for i := range g.nodes {
		n := &g.nodes[i]
		edges := make([]Edge, 0, len(offsets))
		for _, d := range offsets {
			nx, ny := n.X+d[0], n.Y+d[1]
			if !g.InBounds(nx, ny) {
				continue
			}
			j := g.Index(nx, ny)
			e := Edge{To: j, Cost: costs[j] * StepLength(n.X, n.Y, nx, ny)}
			if g.clips(costs, n.X, n.Y, nx, ny) {
				e.Cost, e.Clipped = 0, true
				g.clipped++
			}
			edges = append(edges, e)
		}
		n.Edges = edges
		g.edgeCount += len(edges)
	}

	cfg.Logger.Debug("tile graph built",
		slog.Int("width", w), slog.Int("height", h),
		slog.Int("nodes", len(g.nodes)), slog.Int("edges", g.edgeCount),
		slog.Int("clipped", g.clipped))

	return g, nil
}

// clips reports whether a move from (ax,ay) to (bx,by) cuts a diagonal corner:
// with (dx,dy) = A−B, the tile at (ax−dx, ay) or at (ax, ay−dy) is impassable.
func (g *Graph) clips(costs []float64, ax, ay, bx, by int) bool {
	dx, dy := ax-bx, ay-by
	if abs(dx)+abs(dy) != 2 {
		return false
	}
	if tile.Impassable(costs[g.Index(ax-dx, ay)]) {
		return true
	}
	return tile.Impassable(costs[g.Index(ax, ay-dy)])
}

// StepLength is the Euclidean distance between two tile centres, short-cut
// to 1 and Diagonal for grid neighbours.
func StepLength(ax, ay, bx, by int) float64 {
	dx, dy := abs(ax-bx), abs(ay-by)
	switch {
	case dx+dy == 1:
		return 1
	case dx == 1 && dy == 1:
		return Diagonal
	}
	return math.Hypot(float64(dx), float64(dy))
}

// Width returns the number of columns the graph was built for.
func (g *Graph) Width() int { return g.width }

// Height returns the number of rows the graph was built for.
func (g *Graph) Height() int { return g.height }

// Len returns the number of nodes (always Width×Height).
func (g *Graph) Len() int { return len(g.nodes) }

// EdgeCount returns the total number of directed edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// ClippedCount returns how many edges were marked as corner clipping.
func (g *Graph) ClippedCount() int { return g.clipped }

// Grid returns the grid the graph was built from.
func (g *Graph) Grid() tile.Grid { return g.grid }

// InBounds reports whether (x,y) lies within the graph.
// Complexity: O(1).
func (g *Graph) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Index maps (x,y) to a row-major node index: y*Width + x.
// Complexity: O(1).
func (g *Graph) Index(x, y int) int {
	return y*g.width + x
}

// Coordinate converts a row-major index back to (x,y).
// Complexity: O(1).
func (g *Graph) Coordinate(idx int) (x, y int) {
	return idx % g.width, idx / g.width
}

// Node returns the node at index i. It panics if i is out of range.
func (g *Graph) Node(i int) *Node {
	return &g.nodes[i]
}

// NodeAt returns the node for (x,y), or false when the position is not in
// the node set.
func (g *Graph) NodeAt(x, y int) (*Node, bool) {
	if !g.InBounds(x, y) {
		return nil, false
	}
	return &g.nodes[g.Index(x, y)], true
}

// Tile returns the live tile behind node i, read from the grid now rather
// than at build time.
func (g *Graph) Tile(i int) tile.Tile {
	x, y := g.Coordinate(i)
	return g.grid.TileAt(x, y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
