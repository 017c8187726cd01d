package tile

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for tile operations.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("tile: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("tile: all rows must have the same length")
	// ErrNegativeCost indicates a movement cost below zero.
	ErrNegativeCost = errors.New("tile: movement cost must be non-negative")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("tile: coordinate out of bounds")
)

// Epsilon is the tolerance under which a movement cost counts as zero.
const Epsilon = 1e-6

// Impassable reports whether a movement cost marks a tile as unwalkable.
func Impassable(cost float64) bool {
	return math.Abs(cost) < Epsilon
}

// Coord is an integer tile coordinate. It is the identity of a tile.
type Coord struct {
	X, Y int
}

// String renders the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// At returns the coordinate of t.
func At(t Tile) Coord {
	return Coord{X: t.X(), Y: t.Y()}
}

// Stack is a quantity of one resource type lying on a tile.
type Stack struct {
	Type     string
	Quantity int
}

// Tile is the per-cell view the planner reads.
type Tile interface {
	X() int
	Y() int
	// MovementCost is >= 0; zero means impassable.
	MovementCost() float64
	// Resource returns the stack on the tile, if any.
	Resource() (Stack, bool)
	// IsStockpile reports whether resident furniture marks the tile as a stockpile.
	IsStockpile() bool
}

// Grid is the read-only world view. TileAt must return nil out of bounds.
type Grid interface {
	Width() int
	Height() int
	TileAt(x, y int) Tile
}

// Change describes a movement-cost change delivered by the host.
type Change struct {
	At      Coord
	OldCost float64
	NewCost float64
}

// WalkabilityChanged reports whether the change flipped the tile between
// passable and impassable.
func (c Change) WalkabilityChanged() bool {
	return Impassable(c.OldCost) != Impassable(c.NewCost)
}

// neighbourOffsets lists the 8-neighbourhood in N, E, S, W, NE, SE, SW, NW order.
var neighbourOffsets = [8][2]int{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{1, 1}, {1, -1}, {-1, -1}, {-1, 1},
}

// Neighbours returns the in-bounds 8-neighbours of (x,y) in N, E, S, W, NE,
// SE, SW, NW order. Out-of-range positions are omitted, never returned as nil.
// Complexity: O(1).
func Neighbours(g Grid, x, y int) []Tile {
	out := make([]Tile, 0, len(neighbourOffsets))
	for _, d := range neighbourOffsets {
		if t := g.TileAt(x+d[0], y+d[1]); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Offsets returns the neighbour offsets in enumeration order.
func Offsets() [8][2]int {
	return neighbourOffsets
}
