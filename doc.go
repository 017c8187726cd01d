// Package tilepath is a grid path-planning engine for tile worlds: shortest
// routes between two tiles, and shortest routes to the nearest tile holding a
// wanted resource.
//
// What's inside:
//
//	tile/         the Grid View contract (Grid, Tile, Stack) and an in-memory Map
//	tilegraph/    node-and-edge graph over a grid, corner-clip markers, regions, Cache
//	frontier/     min-priority queue with contains and decrease-key
//	pathfind/     Planner: A* to a goal, Dijkstra to the nearest resource, Route
//	resindex/     R-tree index of resource stacks for early "nothing to fetch" answers
//	cmd/tilepath  run the queries of a YAML scenario from the command line
//
// Quick ASCII example (S start, G goal, # wall):
//
//	. . .
//	. # .
//	S # G
//
// routes S → up, across the top, and down to G.
//
//	m, _ := tile.FromCosts(costs)
//	p := pathfind.NewPlanner(m)
//	res, err := p.Calculate(pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(2, 0)})
//	if err == nil && res.Reachable {
//		for t, ok := res.Route.Dequeue(); ok; t, ok = res.Route.Dequeue() {
//			walkTo(t)
//		}
//	}
package tilepath
