package pathfind_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/tilepath/pathfind"
	"github.com/katalvlaran/tilepath/resindex"
	"github.com/katalvlaran/tilepath/tile"
	"github.com/katalvlaran/tilepath/tilegraph"
)

const eps = 1e-9

func mustMap(t *testing.T, costs [][]float64) *tile.Map {
	t.Helper()
	m, err := tile.FromCosts(costs)
	require.NoError(t, err)
	return m
}

func uniform(t *testing.T, w, h int, cost float64) *tile.Map {
	t.Helper()
	m, err := tile.NewMap(w, h, cost)
	require.NoError(t, err)
	return m
}

func coords(xy ...[2]int) []tile.Coord {
	out := make([]tile.Coord, len(xy))
	for i, p := range xy {
		out[i] = tile.Coord{X: p[0], Y: p[1]}
	}
	return out
}

//----------------------------------------------------------------------------//
// Validation
//----------------------------------------------------------------------------//

func TestCalculate_ProgrammingErrors(t *testing.T) {
	m := uniform(t, 3, 3, 1)
	a, b := m.TileAt(0, 0), m.TileAt(2, 2)

	_, err := pathfind.NewPlanner(nil).Calculate(pathfind.Request{Start: a, Goal: b})
	require.ErrorIs(t, err, pathfind.ErrNoGrid)

	p := pathfind.NewPlanner(m)
	_, err = p.Calculate(pathfind.Request{Goal: b})
	require.ErrorIs(t, err, pathfind.ErrNoStart)

	_, err = p.Calculate(pathfind.Request{Start: a})
	require.ErrorIs(t, err, pathfind.ErrNoTarget)

	_, err = p.Calculate(pathfind.Request{Start: a, Goal: b, ObjectType: "steel"})
	require.ErrorIs(t, err, pathfind.ErrAmbiguousTarget)

	_, err = p.Nearest(a, nil)
	require.ErrorIs(t, err, pathfind.ErrNilMatch)
	_, err = p.Nearest(nil, func(tile.Tile) bool { return true })
	require.ErrorIs(t, err, pathfind.ErrNoStart)
	_, err = pathfind.NewPlanner(nil).Nearest(a, func(tile.Tile) bool { return true })
	require.ErrorIs(t, err, pathfind.ErrNoGrid)
	_, err = pathfind.NewPlanner(nil).Graph()
	require.ErrorIs(t, err, pathfind.ErrNoGrid)
}

// TestBind attaches a grid to a planner created without one.
func TestBind(t *testing.T) {
	m := uniform(t, 2, 1, 1)
	p := pathfind.NewPlanner(nil)
	p.Bind(m)
	res, err := p.Calculate(pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(1, 0)})
	require.NoError(t, err)
	require.True(t, res.Reachable)
}

func TestWithMaxExpansions_PanicsOnNegative(t *testing.T) {
	require.Panics(t, func() { pathfind.NewPlanner(nil, pathfind.WithMaxExpansions(-1)) })
}

func TestParseCornerRule(t *testing.T) {
	r, ok := pathfind.ParseCornerRule("blocked")
	require.True(t, ok)
	require.Equal(t, pathfind.CornerBlocked, r)
	require.Equal(t, "blocked", r.String())
	_, ok = pathfind.ParseCornerRule("sideways")
	require.False(t, ok)
}

//----------------------------------------------------------------------------//
// Exact-goal mode
//----------------------------------------------------------------------------//

// GoalSuite covers the exact-goal scenarios.
type GoalSuite struct {
	suite.Suite
}

// TestSameTile: start == goal is reachable with an empty route.
func (s *GoalSuite) TestSameTile() {
	m := uniform(s.T(), 3, 3, 1)
	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{Start: m.TileAt(1, 1), Goal: m.TileAt(1, 1)})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	require.NotNil(s.T(), res.Route)
	require.Equal(s.T(), 0, res.Route.Len())
	require.Zero(s.T(), res.Cost)
	_, ok := res.Route.Tail()
	require.False(s.T(), ok)
}

// TestStraightRow: 5x1 grid, (0,0) -> (4,0).
func (s *GoalSuite) TestStraightRow() {
	m := uniform(s.T(), 5, 1, 1)
	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(4, 0)})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	require.Equal(s.T(), 4, res.Route.Len())
	require.Equal(s.T(), coords([2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0}), res.Route.Coords())
	require.InDelta(s.T(), 4.0, res.Cost, eps)
}

// TestBlockedRow: same grid with (2,0) impassable has no way around.
func (s *GoalSuite) TestBlockedRow() {
	m := mustMap(s.T(), [][]float64{{1, 1, 0, 1, 1}})
	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(4, 0)})
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)
	require.Nil(s.T(), res.Route)
	require.Equal(s.T(), 0, res.Route.Len())
}

// TestUniformCostRuns checks length N and cost N×c along rows and columns.
func (s *GoalSuite) TestUniformCostRuns() {
	cases := []struct {
		name       string
		w, h       int
		cost       float64
		start, end [2]int
	}{
		{"Row", 7, 1, 2, [2]int{0, 0}, [2]int{6, 0}},
		{"RowBackwards", 7, 1, 3, [2]int{6, 0}, [2]int{1, 0}},
		{"Column", 1, 5, 1.5, [2]int{0, 0}, [2]int{0, 4}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			m := uniform(s.T(), tc.w, tc.h, tc.cost)
			res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{
				Start: m.TileAt(tc.start[0], tc.start[1]),
				Goal:  m.TileAt(tc.end[0], tc.end[1]),
			})
			require.NoError(s.T(), err)
			require.True(s.T(), res.Reachable)
			n := abs(tc.end[0]-tc.start[0]) + abs(tc.end[1]-tc.start[1])
			require.Equal(s.T(), n, res.Route.Len())
			require.InDelta(s.T(), float64(n)*tc.cost, res.Cost, eps)
		})
	}
}

// TestDiagonal3x3: (0,0) -> (2,2) takes two diagonal steps.
func (s *GoalSuite) TestDiagonal3x3() {
	m := uniform(s.T(), 3, 3, 1)
	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(2, 2)})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	require.Equal(s.T(), coords([2]int{1, 1}, [2]int{2, 2}), res.Route.Coords())
	require.InDelta(s.T(), 2*tilegraph.Diagonal, res.Cost, eps)
	require.InDelta(s.T(), 2*math.Sqrt2, res.Route.Distance(), 1e-9)
}

// TestDiagonalStepCost: each diagonal step costs √2 × c.
func (s *GoalSuite) TestDiagonalStepCost() {
	m := uniform(s.T(), 4, 4, 3)
	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(3, 3)})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, res.Route.Len())
	require.InDelta(s.T(), 3*3*tilegraph.Diagonal, res.Cost, eps)
}

// TestDetour routes around a wall.
//
//	y=2: . . .
//	y=1: . # .
//	y=0: S # G
func (s *GoalSuite) TestDetour() {
	m := mustMap(s.T(), [][]float64{
		{1, 0, 1},
		{1, 0, 1},
		{1, 1, 1},
	})
	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(2, 0)})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	for _, c := range res.Route.Coords() {
		require.False(s.T(), c.X == 1 && c.Y < 2, "entered wall at %s", c)
	}
	tail, ok := res.Route.Tail()
	require.True(s.T(), ok)
	require.Equal(s.T(), tile.Coord{X: 2, Y: 0}, tile.At(tail))
}

// TestCornerRule compares the two corner policies.
//
//	y=1: . G
//	y=0: S #
func (s *GoalSuite) TestCornerRule() {
	m := mustMap(s.T(), [][]float64{
		{1, 0},
		{1, 1},
	})
	req := pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(1, 1)}

	res, err := pathfind.NewPlanner(m).Calculate(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), coords([2]int{1, 1}), res.Route.Coords(), "cosmetic rule cuts the corner")
	require.InDelta(s.T(), tilegraph.Diagonal, res.Cost, eps)

	res, err = pathfind.NewPlanner(m, pathfind.WithCornerRule(pathfind.CornerBlocked)).Calculate(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), coords([2]int{0, 1}, [2]int{1, 1}), res.Route.Coords())
	require.InDelta(s.T(), 2.0, res.Cost, eps)
}

// TestImpassableGoal is unreachable unless listed as routable.
func (s *GoalSuite) TestImpassableGoal() {
	m := mustMap(s.T(), [][]float64{{1, 0}})
	req := pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(1, 0)}
	p := pathfind.NewPlanner(m)

	res, err := p.Calculate(req)
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)

	req.Routable = []tile.Tile{m.TileAt(1, 0)}
	res, err = p.Calculate(req)
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	require.Equal(s.T(), coords([2]int{1, 0}), res.Route.Coords())
	require.InDelta(s.T(), 1.0, res.Cost, eps)
}

// TestRoutableThroughWall lets a routable wall tile carry the route.
func (s *GoalSuite) TestRoutableThroughWall() {
	m := mustMap(s.T(), [][]float64{{1, 1, 0, 1, 1}})
	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{
		Start:    m.TileAt(0, 0),
		Goal:     m.TileAt(4, 0),
		Routable: []tile.Tile{m.TileAt(2, 0), nil},
	})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	require.Equal(s.T(), 4, res.Route.Len())
}

// TestNotInNodeSet: tiles outside the grid are unreachable, not errors.
func (s *GoalSuite) TestNotInNodeSet() {
	m := uniform(s.T(), 3, 3, 1)
	big := uniform(s.T(), 10, 10, 1)
	p := pathfind.NewPlanner(m)

	res, err := p.Calculate(pathfind.Request{Start: big.TileAt(7, 7), Goal: m.TileAt(0, 0)})
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)

	res, err = p.Calculate(pathfind.Request{Start: m.TileAt(0, 0), Goal: big.TileAt(7, 7)})
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)
}

// TestRebuildAfterOpening: 0 -> 1 makes the goal reachable on the next call.
func (s *GoalSuite) TestRebuildAfterOpening() {
	m := mustMap(s.T(), [][]float64{{1, 1, 0, 1, 1}})
	p := pathfind.NewPlanner(m)
	req := pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(4, 0)}

	res, err := p.Calculate(req)
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)

	ch, err := m.SetMovementCost(2, 0, 1)
	require.NoError(s.T(), err)
	require.True(s.T(), p.Notify(ch))

	res, err = p.Calculate(req)
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	require.Equal(s.T(), 4, res.Route.Len())
}

// TestNotifyIgnoresCostOnlyChanges keeps the graph when walkability holds.
func (s *GoalSuite) TestNotifyIgnoresCostOnlyChanges() {
	m := uniform(s.T(), 3, 1, 1)
	p := pathfind.NewPlanner(m)
	g1, err := p.Graph()
	require.NoError(s.T(), err)

	ch, err := m.SetMovementCost(1, 0, 4)
	require.NoError(s.T(), err)
	require.False(s.T(), p.Notify(ch))
	g2, err := p.Graph()
	require.NoError(s.T(), err)
	require.Same(s.T(), g1, g2)

	// Live costs still apply without a rebuild.
	res, err := p.Calculate(pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(2, 0)})
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 5.0, res.Cost, eps)

	p.Invalidate()
	g3, err := p.Graph()
	require.NoError(s.T(), err)
	require.NotSame(s.T(), g1, g3)
}

// TestMaxExpansions stops early and reports truncation.
func (s *GoalSuite) TestMaxExpansions() {
	m := uniform(s.T(), 20, 1, 1)
	req := pathfind.Request{Start: m.TileAt(0, 0), Goal: m.TileAt(19, 0)}

	res, err := pathfind.NewPlanner(m, pathfind.WithMaxExpansions(3)).Calculate(req)
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)
	require.True(s.T(), res.Truncated)
	require.Equal(s.T(), 3, res.Expanded)

	res, err = pathfind.NewPlanner(m, pathfind.WithMaxExpansions(100)).Calculate(req)
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	require.False(s.T(), res.Truncated)
}

func TestGoalSuite(t *testing.T) {
	suite.Run(t, new(GoalSuite))
}

//----------------------------------------------------------------------------//
// Resource-seek mode
//----------------------------------------------------------------------------//

// ResourceSuite covers resource-seek mode and Nearest.
type ResourceSuite struct {
	suite.Suite
}

// TestNearestByCostNotHops prefers the cheaper match over the closer one.
//
//	costs: 1 1 1 S 9 1   steel at x=0 (3 hops, cost 3) and x=5 (2 hops, cost 10)
func (s *ResourceSuite) TestNearestByCostNotHops() {
	m := mustMap(s.T(), [][]float64{{1, 1, 1, 1, 9, 1}})
	require.NoError(s.T(), m.SetResource(0, 0, tile.Stack{Type: "steel", Quantity: 1}))
	require.NoError(s.T(), m.SetResource(5, 0, tile.Stack{Type: "steel", Quantity: 1}))

	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{Start: m.TileAt(3, 0), ObjectType: "steel"})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	tail, _ := res.Route.Tail()
	require.Equal(s.T(), tile.Coord{X: 0, Y: 0}, tile.At(tail))
	require.InDelta(s.T(), 3.0, res.Cost, eps)
}

// TestIgnoresOtherTypes skips stacks of a different type.
func (s *ResourceSuite) TestIgnoresOtherTypes() {
	m := uniform(s.T(), 6, 1, 1)
	require.NoError(s.T(), m.SetResource(1, 0, tile.Stack{Type: "wood", Quantity: 1}))
	require.NoError(s.T(), m.SetResource(5, 0, tile.Stack{Type: "steel", Quantity: 1}))

	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{Start: m.TileAt(0, 0), ObjectType: "steel"})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 5, res.Route.Len())
}

// TestStockpileExclusion honours CanTakeFromStockpile.
func (s *ResourceSuite) TestStockpileExclusion() {
	m := uniform(s.T(), 6, 1, 1)
	require.NoError(s.T(), m.SetResource(1, 0, tile.Stack{Type: "steel", Quantity: 1}))
	require.NoError(s.T(), m.SetStockpile(1, 0, true))
	require.NoError(s.T(), m.SetResource(5, 0, tile.Stack{Type: "steel", Quantity: 1}))
	p := pathfind.NewPlanner(m)

	res, err := p.Calculate(pathfind.Request{Start: m.TileAt(2, 0), ObjectType: "steel"})
	require.NoError(s.T(), err)
	tail, _ := res.Route.Tail()
	require.Equal(s.T(), tile.Coord{X: 5, Y: 0}, tile.At(tail))

	res, err = p.Calculate(pathfind.Request{Start: m.TileAt(2, 0), ObjectType: "steel", CanTakeFromStockpile: true})
	require.NoError(s.T(), err)
	tail, _ = res.Route.Tail()
	require.Equal(s.T(), tile.Coord{X: 1, Y: 0}, tile.At(tail))

	require.NoError(s.T(), m.ClearResource(5, 0))
	res, err = p.Calculate(pathfind.Request{Start: m.TileAt(2, 0), ObjectType: "steel"})
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable, "only a stockpiled stack is left")
}

// TestStandingOnMatch returns an empty, reachable route.
func (s *ResourceSuite) TestStandingOnMatch() {
	m := uniform(s.T(), 3, 3, 1)
	require.NoError(s.T(), m.SetResource(1, 1, tile.Stack{Type: "steel", Quantity: 1}))
	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{Start: m.TileAt(1, 1), ObjectType: "steel"})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	require.Equal(s.T(), 0, res.Route.Len())
}

// TestBehindWall is unreachable when every match is sealed off.
func (s *ResourceSuite) TestBehindWall() {
	m := mustMap(s.T(), [][]float64{{1, 0, 1}})
	require.NoError(s.T(), m.SetResource(2, 0, tile.Stack{Type: "steel", Quantity: 1}))
	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{Start: m.TileAt(0, 0), ObjectType: "steel"})
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)
}

// TestIndexShortCircuit answers without expanding when no stack exists.
func (s *ResourceSuite) TestIndexShortCircuit() {
	m := uniform(s.T(), 30, 30, 1)
	require.NoError(s.T(), m.SetResource(29, 29, tile.Stack{Type: "wood", Quantity: 1}))
	require.NoError(s.T(), m.SetStockpile(29, 29, true))
	p := pathfind.NewPlanner(m, pathfind.WithResourceIndex(resindex.Build(m)))

	res, err := p.Calculate(pathfind.Request{Start: m.TileAt(0, 0), ObjectType: "steel"})
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)
	require.Zero(s.T(), res.Expanded)

	res, err = p.Calculate(pathfind.Request{Start: m.TileAt(0, 0), ObjectType: "wood"})
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)
	require.Zero(s.T(), res.Expanded, "wood is only on a stockpile")

	res, err = p.Calculate(pathfind.Request{Start: m.TileAt(0, 0), ObjectType: "wood", CanTakeFromStockpile: true})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
}

// TestFractionalCosts stays nearest by cost with movement costs below 1,
// since resource-seek mode runs without a heuristic.
func (s *ResourceSuite) TestFractionalCosts() {
	m := mustMap(s.T(), [][]float64{{0.5, 0.5, 0.5, 1, 3}})
	require.NoError(s.T(), m.SetResource(0, 0, tile.Stack{Type: "steel", Quantity: 1}))
	require.NoError(s.T(), m.SetResource(4, 0, tile.Stack{Type: "steel", Quantity: 1}))

	res, err := pathfind.NewPlanner(m).Calculate(pathfind.Request{Start: m.TileAt(3, 0), ObjectType: "steel"})
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	tail, _ := res.Route.Tail()
	require.Equal(s.T(), tile.Coord{X: 0, Y: 0}, tile.At(tail))
	require.InDelta(s.T(), 1.5, res.Cost, eps)
}

// TestIndexRefresh follows stacks placed and cleared after the Planner was
// built, once the host syncs the index.
func (s *ResourceSuite) TestIndexRefresh() {
	m := uniform(s.T(), 5, 1, 1)
	p := pathfind.NewPlanner(m, pathfind.WithResourceIndex(resindex.Build(m)))
	req := pathfind.Request{Start: m.TileAt(0, 0), ObjectType: "steel"}
	steel := tile.Coord{X: 4, Y: 0}

	require.NoError(s.T(), m.SetResource(4, 0, tile.Stack{Type: "steel", Quantity: 2}))
	p.ResourceIndex().Sync(m, steel)
	res, err := p.Calculate(req)
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	tail, _ := res.Route.Tail()
	require.Equal(s.T(), steel, tile.At(tail))
	require.InDelta(s.T(), 4.0, res.Cost, eps)

	require.NoError(s.T(), m.ClearResource(4, 0))
	p.ResourceIndex().Sync(m, steel)
	res, err = p.Calculate(req)
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)
	require.Zero(s.T(), res.Expanded)

	// A fresh index swapped in sees the new stack.
	require.NoError(s.T(), m.SetResource(2, 0, tile.Stack{Type: "steel", Quantity: 1}))
	p.SetResourceIndex(resindex.Build(m))
	res, err = p.Calculate(req)
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	require.Equal(s.T(), 2, res.Route.Len())

	// Without an index the grid is searched directly.
	require.NoError(s.T(), m.ClearResource(2, 0))
	p.SetResourceIndex(nil)
	require.Nil(s.T(), p.ResourceIndex())
	res, err = p.Calculate(req)
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)
	require.Equal(s.T(), 5, res.Expanded)
}

// TestNearestPredicate finds the cheapest tile satisfying an arbitrary test.
func (s *ResourceSuite) TestNearestPredicate() {
	m := uniform(s.T(), 5, 5, 1)
	p := pathfind.NewPlanner(m)
	res, err := p.Nearest(m.TileAt(0, 0), func(t tile.Tile) bool { return t.X() == 4 })
	require.NoError(s.T(), err)
	require.True(s.T(), res.Reachable)
	require.Equal(s.T(), 4, res.Route.Len())
	require.InDelta(s.T(), 4.0, res.Cost, eps)

	res, err = p.Nearest(m.TileAt(0, 0), func(tile.Tile) bool { return false })
	require.NoError(s.T(), err)
	require.False(s.T(), res.Reachable)
	require.Equal(s.T(), 25, res.Expanded)
}

func TestResourceSuite(t *testing.T) {
	suite.Run(t, new(ResourceSuite))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
