package tile

import (
	"fmt"
	"sync"
)

// Cell is an immutable snapshot of one Map tile. It implements Tile.
type Cell struct {
	x, y      int
	cost      float64
	stack     Stack
	hasStack  bool
	stockpile bool
}

// X returns the column.
func (c Cell) X() int { return c.x }

// Y returns the row; y+1 is north.
func (c Cell) Y() int { return c.y }

// MovementCost returns the cost multiplier for entering the tile; 0 is impassable.
func (c Cell) MovementCost() float64 { return c.cost }

// Resource returns the stack on the tile, if any.
func (c Cell) Resource() (Stack, bool) { return c.stack, c.hasStack }

// IsStockpile reports whether the tile is a stockpile.
func (c Cell) IsStockpile() bool { return c.stockpile }

// Map is a rectangular in-memory Grid. Reads and writes are guarded by an
// RWMutex; TileAt hands out Cell snapshots, so later writes never change a
// Tile the caller already holds.
type Map struct {
	mu     sync.RWMutex
	width  int
	height int
	cells  []Cell // row-major: index = y*width + x
}

// NewMap builds a width×height Map where every tile has cost defaultCost.
// Returns ErrEmptyGrid if either dimension is < 1 and ErrNegativeCost if
// defaultCost < 0.
// Complexity: O(W×H).
func NewMap(width, height int, defaultCost float64) (*Map, error) {
	if width < 1 || height < 1 {
		return nil, ErrEmptyGrid
	}
	if defaultCost < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeCost, defaultCost)
	}
	m := &Map{width: width, height: height, cells: make([]Cell, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.cells[m.index(x, y)] = Cell{x: x, y: y, cost: defaultCost}
		}
	}
	return m, nil
}

// FromCosts builds a Map from a [y][x] slice of movement costs. The input is
// copied, so later changes to costs do not leak into the Map.
// Returns ErrEmptyGrid, ErrNonRectangular or ErrNegativeCost.
// Complexity: O(W×H).
func FromCosts(costs [][]float64) (*Map, error) {
	if len(costs) == 0 || len(costs[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(costs), len(costs[0])
	for _, row := range costs {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	m := &Map{width: w, height: h, cells: make([]Cell, w*h)}
	for y, row := range costs {
		for x, c := range row {
			if c < 0 {
				return nil, fmt.Errorf("%w: %v at %s", ErrNegativeCost, c, Coord{x, y})
			}
			m.cells[m.index(x, y)] = Cell{x: x, y: y, cost: c}
		}
	}
	return m, nil
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// InBounds reports whether (x,y) lies within the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// TileAt returns a snapshot of the tile at (x,y), or nil when out of bounds.
func (m *Map) TileAt(x, y int) Tile {
	if !m.InBounds(x, y) {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cells[m.index(x, y)]
}

// SetMovementCost sets the cost of (x,y) and returns the resulting Change, so
// the host can forward it to whoever owns the tile graph.
func (m *Map) SetMovementCost(x, y int, cost float64) (Change, error) {
	if cost < 0 {
		return Change{}, fmt.Errorf("%w: %v", ErrNegativeCost, cost)
	}
	c, err := m.cell(x, y)
	if err != nil {
		return Change{}, err
	}
	defer m.mu.Unlock()
	ch := Change{At: Coord{x, y}, OldCost: c.cost, NewCost: cost}
	c.cost = cost
	return ch, nil
}

// SetResource places s on (x,y), replacing any existing stack.
func (m *Map) SetResource(x, y int, s Stack) error {
	c, err := m.cell(x, y)
	if err != nil {
		return err
	}
	defer m.mu.Unlock()
	c.stack, c.hasStack = s, true
	return nil
}

// ClearResource removes any stack from (x,y).
func (m *Map) ClearResource(x, y int) error {
	c, err := m.cell(x, y)
	if err != nil {
		return err
	}
	defer m.mu.Unlock()
	c.stack, c.hasStack = Stack{}, false
	return nil
}

// SetStockpile marks or unmarks (x,y) as a stockpile.
func (m *Map) SetStockpile(x, y int, stockpile bool) error {
	c, err := m.cell(x, y)
	if err != nil {
		return err
	}
	defer m.mu.Unlock()
	c.stockpile = stockpile
	return nil
}

// cell locks the map for writing and returns a pointer to (x,y).
// The caller must Unlock when err == nil.
func (m *Map) cell(x, y int) (*Cell, error) {
	if !m.InBounds(x, y) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, Coord{x, y})
	}
	m.mu.Lock()
	return &m.cells[m.index(x, y)], nil
}

// index maps (x,y) to a row-major index: y*width + x.
func (m *Map) index(x, y int) int {
	return y*m.width + x
}
