// Package tilegraph builds and caches the node-and-edge graph the path
// planner searches over.
//
// What:
//
//   - Build creates exactly one Node per tile (impassable tiles included) and
//     one directed Edge per in-bounds 8-neighbour, whatever the neighbour's
//     walkability. Walkability is enforced at search time through cost.
//   - Edge.Cost is a nominal, diagnostic cost: neighbour movement cost × step
//     length (1 or √2), forced to 0 when the move clips a diagonal corner.
//   - Regions labels 8-connected areas of passable tiles.
//   - Cache owns one Graph for one Grid, builds it lazily, and rebuilds it
//     wholesale after Invalidate. A Graph is never patched in place.
//
// Corner clipping:
//
// Moving diagonally from A to B clips when either orthogonal tile beside the
// move is impassable:
//
//	A ███
//	███ B
//
// Complexity:
//
//   - Build:   O(W×H×8), Memory: O(W×H×8).
//   - Regions: O(W×H×8), Memory: O(W×H).
//
// Errors:
//
//   - ErrNilGrid:   Build or NewCache received a nil grid.
//   - ErrEmptyGrid: the grid reports a zero dimension.
//   - ErrMissingTile: the grid returned nil for an in-bounds coordinate.
package tilegraph
