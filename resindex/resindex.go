// Package resindex keeps a spatial index of the resource stacks lying on a
// grid: one R-tree per resource type.
//
// The planner consults an Index before a resource-seeking search; when no
// tile can ever satisfy the request the search is answered as unreachable
// without flooding the grid. The Index does not watch the grid: the host
// reports stack changes through Put, Remove or Sync, or rebuilds it.
package resindex

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/tilepath/tile"
)

const (
	// half is the half-size of the square each tile occupies in the tree.
	half = 0.25
	dims = 2
)

// Entry is one indexed stack.
type Entry struct {
	At        tile.Coord
	Type      string
	Quantity  int
	Stockpile bool
	bbox      rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *Entry) Bounds() rtreego.Rect {
	return e.bbox
}

// Index maps resource types to R-trees of their stacks. It holds at most one
// entry per tile. An Index is not safe for concurrent mutation.
type Index struct {
	trees map[string]*rtreego.Rtree
	byAt  map[tile.Coord]*Entry
	free  map[string]int // non-stockpile entries per type
}

// Build indexes every tile in grid that carries a stack.
// Complexity: O(W×H + S log S) for S stacks.
func Build(grid tile.Grid) *Index {
	idx := &Index{
		trees: make(map[string]*rtreego.Rtree),
		byAt:  make(map[tile.Coord]*Entry),
		free:  make(map[string]int),
	}
	if grid == nil {
		return idx
	}
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			t := grid.TileAt(x, y)
			if t == nil {
				continue
			}
			s, ok := t.Resource()
			if !ok {
				continue
			}
			idx.insert(&Entry{
				At:        tile.Coord{X: x, Y: y},
				Type:      s.Type,
				Quantity:  s.Quantity,
				Stockpile: t.IsStockpile(),
			})
		}
	}
	return idx
}

func (idx *Index) insert(e *Entry) {
	bbox, err := rtreego.NewRect(
		rtreego.Point{float64(e.At.X) - half, float64(e.At.Y) - half},
		[]float64{2 * half, 2 * half},
	)
	if err != nil {
		return
	}
	e.bbox = bbox
	tree, ok := idx.trees[e.Type]
	if !ok {
		tree = rtreego.NewTree(dims, 25, 50)
		idx.trees[e.Type] = tree
	}
	tree.Insert(e)
	if !e.Stockpile {
		idx.free[e.Type]++
	}
	idx.byAt[e.At] = e
}

// Put indexes a stack at at, replacing whatever was indexed there.
func (idx *Index) Put(at tile.Coord, s tile.Stack, stockpile bool) {
	idx.Remove(at)
	idx.insert(&Entry{At: at, Type: s.Type, Quantity: s.Quantity, Stockpile: stockpile})
}

// Remove drops the stack indexed at at. It reports whether there was one.
func (idx *Index) Remove(at tile.Coord) bool {
	e, ok := idx.byAt[at]
	if !ok {
		return false
	}
	delete(idx.byAt, at)
	tree := idx.trees[e.Type]
	tree.Delete(e)
	if tree.Size() == 0 {
		delete(idx.trees, e.Type)
	}
	if !e.Stockpile {
		idx.free[e.Type]--
		if idx.free[e.Type] == 0 {
			delete(idx.free, e.Type)
		}
	}
	return true
}

// Sync re-reads the tile at at from grid and updates the index to match:
// the tile's stack is put, or the entry is removed when the tile has none
// or lies outside grid.
func (idx *Index) Sync(grid tile.Grid, at tile.Coord) {
	var t tile.Tile
	if grid != nil {
		t = grid.TileAt(at.X, at.Y)
	}
	if t == nil {
		idx.Remove(at)
		return
	}
	s, ok := t.Resource()
	if !ok {
		idx.Remove(at)
		return
	}
	idx.Put(at, s, t.IsStockpile())
}

// Len returns the number of indexed stacks.
func (idx *Index) Len() int { return len(idx.byAt) }

// Count returns the number of stacks of the given type.
func (idx *Index) Count(typ string) int {
	tree, ok := idx.trees[typ]
	if !ok {
		return 0
	}
	return tree.Size()
}

// Has reports whether any stack of typ could satisfy a search. Stacks on
// stockpiles only count when allowStockpile is true.
func (idx *Index) Has(typ string, allowStockpile bool) bool {
	if allowStockpile {
		return idx.Count(typ) > 0
	}
	return idx.free[typ] > 0
}

// Types returns the indexed resource types in sorted order.
func (idx *Index) Types() []string {
	out := make([]string, 0, len(idx.trees))
	for t := range idx.trees {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Within returns the stacks of typ whose tile centre lies within radius of
// center (straight-line distance), nearest first. Ties are ordered by y, then x.
func (idx *Index) Within(typ string, center tile.Coord, radius float64) []Entry {
	tree, ok := idx.trees[typ]
	if !ok || radius < 0 {
		return nil
	}
	side := 2*radius + 2*half
	bbox, err := rtreego.NewRect(
		rtreego.Point{float64(center.X) - radius - half, float64(center.Y) - radius - half},
		[]float64{side, side},
	)
	if err != nil {
		return nil
	}

	c := orb.Point{float64(center.X), float64(center.Y)}
	type hit struct {
		e    Entry
		dist float64
	}
	var hits []hit
	for _, sp := range tree.SearchIntersect(bbox) {
		e := sp.(*Entry)
		d := planar.Distance(c, orb.Point{float64(e.At.X), float64(e.At.Y)})
		if d <= radius {
			hits = append(hits, hit{e: *e, dist: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		if hits[i].e.At.Y != hits[j].e.At.Y {
			return hits[i].e.At.Y < hits[j].e.At.Y
		}
		return hits[i].e.At.X < hits[j].e.At.X
	})

	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = h.e
	}
	return out
}
