package tilegraph

import "github.com/katalvlaran/tilepath/tile"

// NoRegion labels impassable tiles in the result of Regions.
const NoRegion = -1

// Regions labels 8-connected areas of passable tiles, reading movement costs
// from the grid as it is now. The returned slice is indexed by node index;
// impassable tiles get NoRegion. Labels are assigned in row-major scan order
// starting at 0. The second result is the number of regions.
//
// Time:   O(W·H·8).
// Memory: O(W·H) for labels and the BFS queue.
func (g *Graph) Regions() ([]int, int) {
	labels := make([]int, len(g.nodes))
	passable := make([]bool, len(g.nodes))
	for i := range g.nodes {
		labels[i] = NoRegion
		if t := g.Tile(i); t != nil {
			passable[i] = !tile.Impassable(t.MovementCost())
		}
	}

	count := 0
	queue := make([]int, 0, len(g.nodes))
	for i := range g.nodes {
		if !passable[i] || labels[i] != NoRegion {
			continue
		}
		// BFS to flood the region
		labels[i] = count
		queue = append(queue[:0], i)
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, e := range g.nodes[u].Edges {
				if passable[e.To] && labels[e.To] == NoRegion {
					labels[e.To] = count
					queue = append(queue, e.To)
				}
			}
		}
		count++
	}
	return labels, count
}

// Region returns the region label of (x,y), or NoRegion when the tile is
// impassable or out of bounds.
// Complexity: O(W·H·8); callers asking about many tiles should use Regions.
func (g *Graph) Region(x, y int) int {
	if !g.InBounds(x, y) {
		return NoRegion
	}
	labels, _ := g.Regions()
	return labels[g.Index(x, y)]
}
