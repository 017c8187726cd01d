package pathfind

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/tilepath/tile"
)

// Route is an ordered sequence of tiles to walk, excluding the tile the
// mover started on. Consumers drain it from the head with Dequeue. The
// methods are safe on a nil *Route, which behaves as an empty route.
type Route struct {
	origin tile.Coord
	at     tile.Coord // origin, or the last dequeued tile
	tiles  []tile.Tile
}

func newRoute(origin tile.Coord, tiles []tile.Tile) *Route {
	return &Route{origin: origin, at: origin, tiles: tiles}
}

// Dequeue removes and returns the head tile. ok is false when the route is empty.
func (r *Route) Dequeue() (t tile.Tile, ok bool) {
	if r == nil || len(r.tiles) == 0 {
		return nil, false
	}
	t = r.tiles[0]
	r.at = tile.At(t)
	r.tiles[0] = nil
	r.tiles = r.tiles[1:]
	return t, true
}

// Peek returns the head tile without removing it.
func (r *Route) Peek() (tile.Tile, bool) {
	if r == nil || len(r.tiles) == 0 {
		return nil, false
	}
	return r.tiles[0], true
}

// Tail returns the final tile without removing it.
func (r *Route) Tail() (tile.Tile, bool) {
	if r == nil || len(r.tiles) == 0 {
		return nil, false
	}
	return r.tiles[len(r.tiles)-1], true
}

// Len returns the number of tiles left.
func (r *Route) Len() int {
	if r == nil {
		return 0
	}
	return len(r.tiles)
}

// Origin returns the coordinate the route was planned from.
func (r *Route) Origin() tile.Coord {
	if r == nil {
		return tile.Coord{}
	}
	return r.origin
}

// Tiles returns a copy of the remaining tiles.
func (r *Route) Tiles() []tile.Tile {
	if r == nil {
		return nil
	}
	out := make([]tile.Tile, len(r.tiles))
	copy(out, r.tiles)
	return out
}

// Coords returns the coordinates of the remaining tiles.
func (r *Route) Coords() []tile.Coord {
	if r == nil {
		return nil
	}
	out := make([]tile.Coord, len(r.tiles))
	for i, t := range r.tiles {
		out[i] = tile.At(t)
	}
	return out
}

// LineString returns the polyline through tile centres, starting at the
// last dequeued tile (Origin before any Dequeue) and following the remaining
// tiles.
func (r *Route) LineString() orb.LineString {
	if r == nil {
		return nil
	}
	ls := make(orb.LineString, 0, len(r.tiles)+1)
	ls = append(ls, orb.Point{float64(r.at.X), float64(r.at.Y)})
	for _, t := range r.tiles {
		ls = append(ls, orb.Point{float64(t.X()), float64(t.Y())})
	}
	return ls
}

// Distance returns the geometric length of LineString, ignoring movement
// costs: the distance still to walk.
func (r *Route) Distance() float64 {
	if r.Len() == 0 {
		return 0
	}
	return planar.Length(r.LineString())
}
