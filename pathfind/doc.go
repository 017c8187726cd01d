// Package pathfind plans routes over a tile grid.
//
// Overview:
//
//   - A Planner owns a tilegraph.Cache for one tile.Grid and answers searches
//     with Calculate. The graph is built on first use and rebuilt after
//     Invalidate, or after Notify reports a walkability change.
//   - Exact-goal mode (Request.Goal) is A* with a straight-line heuristic.
//   - Resource-seek mode (Request.ObjectType) is the same loop with a zero
//     heuristic; the first popped tile holding a matching stack wins, so the
//     match is the nearest by accumulated cost, not by hop count. Stockpile
//     tiles are skipped unless Request.CanTakeFromStockpile is set.
//   - Nearest generalises resource-seek mode to any tile predicate.
//
// Costing:
//
//   - Stepping into a tile costs its current movement cost × step length
//     (1 orthogonal, √2 diagonal). The nominal cost stored on graph edges is
//     not used.
//   - Impassable tiles (cost 0) are never entered, unless listed in
//     Request.Routable, which costs them as 1.
//   - Corner-clipping diagonals are allowed by default (CornerCosmetic) and
//     forbidden under CornerBlocked.
//   - The heuristic is admissible when every passable cost is ≥ 1. Cheaper
//     tiles still yield a route, not necessarily the cheapest one.
//
// Outcomes:
//
//   - Misuse (no grid, no start, no or two targets) returns a sentinel error.
//   - Unreachable targets return Result{Reachable: false}, never an error.
//   - A start already on the target returns a reachable, empty Route.
//
// Thread safety:
//
//   - A search only reads the graph and owns its scratch state, so sequential
//     searches between rebuilds are safe. The host orders rebuilds (Notify,
//     Invalidate) against searches; Planner adds no locking of its own.
//
// Complexity: O((V + E) log V) time, O(V) memory per search, V = W×H, E ≤ 8V.
package pathfind
