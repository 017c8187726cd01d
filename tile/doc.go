// Package tile defines the read-only Grid View consumed by the path planner,
// plus Map, a small in-memory implementation for hosts and tests.
//
// What:
//
//   - Grid exposes dimensions and TileAt(x, y); out-of-range lookups return nil.
//   - Tile exposes position, movement cost, an optional resource Stack and the
//     stockpile flag.
//   - Neighbours enumerates the 8-neighbourhood in N, E, S, W, NE, SE, SW, NW
//     order (N is y+1), omitting tiles outside the grid.
//
// Movement cost:
//
//   - A cost of 0 (within Epsilon) means impassable.
//   - Any positive cost multiplies the Euclidean step length when routing.
//
// Errors:
//
//   - ErrEmptyGrid: width or height is zero.
//   - ErrNonRectangular: rows of differing lengths.
//   - ErrNegativeCost: a movement cost below zero.
//   - ErrOutOfBounds: a mutation addressed a tile outside the grid.
package tile
