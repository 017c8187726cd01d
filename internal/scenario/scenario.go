// Package scenario reads YAML scenario files: a tile map drawn as text rows,
// resource stacks, stockpiles and a list of path queries.
//
// The first row is the top of the map (highest y); the last row is y = 0.
// Legend glyphs map to movement costs; "." = 1, "#" = 0 and "~" = 2 are
// predefined and may be overridden.
//
//	legend: {"+": 4}
//	rows:
//	  - "...."
//	  - ".#.+"
//	resources:
//	  - {x: 3, y: 1, type: steel, quantity: 5, stockpile: true}
//	queries:
//	  - {name: walk, start: [0, 0], goal: [3, 1]}
//	  - {name: fetch, start: [0, 0], object: steel, stockpile: true}
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tilepath/pathfind"
	"github.com/katalvlaran/tilepath/tile"
)

// Sentinel errors for scenario loading.
var (
	// ErrUnknownGlyph indicates a row character missing from the legend.
	ErrUnknownGlyph = errors.New("scenario: glyph not in legend")
	// ErrBadCoord indicates a malformed or out-of-range coordinate.
	ErrBadCoord = errors.New("scenario: bad coordinate")
	// ErrBadLegend indicates a legend key that is not a single character.
	ErrBadLegend = errors.New("scenario: legend keys must be single characters")
)

// defaultLegend is merged under the file's legend.
var defaultLegend = map[rune]float64{'.': 1, '#': 0, '~': 2}

// Scenario is the decoded file.
type Scenario struct {
	Legend     map[string]float64 `yaml:"legend"`
	Rows       []string           `yaml:"rows"`
	Resources  []Resource         `yaml:"resources"`
	Stockpiles [][]int            `yaml:"stockpiles"`
	Queries    []Query            `yaml:"queries"`
}

// Resource places one stack.
type Resource struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Type      string `yaml:"type"`
	Quantity  int    `yaml:"quantity"`
	Stockpile bool   `yaml:"stockpile"`
}

// Query is one path request.
type Query struct {
	Name      string  `yaml:"name"`
	Start     []int   `yaml:"start"`
	Goal      []int   `yaml:"goal"`
	Object    string  `yaml:"object"`
	Stockpile bool    `yaml:"stockpile"`
	Routable  [][]int `yaml:"routable"`
}

// NamedRequest pairs a query name with its planner request.
type NamedRequest struct {
	Name    string
	Request pathfind.Request
}

// Parse decodes a scenario document. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	return &s, nil
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return Parse(data)
}

// Map builds the tile map with its stacks and stockpiles.
func (s *Scenario) Map() (*tile.Map, error) {
	legend, err := s.legend()
	if err != nil {
		return nil, err
	}

	h := len(s.Rows)
	costs := make([][]float64, h)
	for i, row := range s.Rows {
		y := h - 1 - i
		glyphs := []rune(row)
		costs[y] = make([]float64, len(glyphs))
		for x, g := range glyphs {
			c, ok := legend[g]
			if !ok {
				return nil, fmt.Errorf("%w: %q at %s", ErrUnknownGlyph, g, tile.Coord{X: x, Y: y})
			}
			costs[y][x] = c
		}
	}
	m, err := tile.FromCosts(costs)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}

	for _, r := range s.Resources {
		if err := m.SetResource(r.X, r.Y, tile.Stack{Type: r.Type, Quantity: r.Quantity}); err != nil {
			return nil, fmt.Errorf("%w: resource %q: %v", ErrBadCoord, r.Type, err)
		}
		if r.Stockpile {
			if err := m.SetStockpile(r.X, r.Y, true); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadCoord, err)
			}
		}
	}
	for _, xy := range s.Stockpiles {
		c, err := coord(m, xy)
		if err != nil {
			return nil, err
		}
		if err := m.SetStockpile(c.X, c.Y, true); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadCoord, err)
		}
	}
	return m, nil
}

// Requests turns the queries into planner requests against m.
func (s *Scenario) Requests(m *tile.Map) ([]NamedRequest, error) {
	out := make([]NamedRequest, 0, len(s.Queries))
	for i, q := range s.Queries {
		name := q.Name
		if name == "" {
			name = fmt.Sprintf("query-%d", i+1)
		}
		start, err := coord(m, q.Start)
		if err != nil {
			return nil, fmt.Errorf("%s: start: %w", name, err)
		}
		req := pathfind.Request{
			Start:                m.TileAt(start.X, start.Y),
			ObjectType:           q.Object,
			CanTakeFromStockpile: q.Stockpile,
		}
		if q.Goal != nil {
			goal, err := coord(m, q.Goal)
			if err != nil {
				return nil, fmt.Errorf("%s: goal: %w", name, err)
			}
			req.Goal = m.TileAt(goal.X, goal.Y)
		}
		for _, xy := range q.Routable {
			c, err := coord(m, xy)
			if err != nil {
				return nil, fmt.Errorf("%s: routable: %w", name, err)
			}
			req.Routable = append(req.Routable, m.TileAt(c.X, c.Y))
		}
		out = append(out, NamedRequest{Name: name, Request: req})
	}
	return out, nil
}

func (s *Scenario) legend() (map[rune]float64, error) {
	out := make(map[rune]float64, len(defaultLegend)+len(s.Legend))
	for g, c := range defaultLegend {
		out[g] = c
	}
	for k, c := range s.Legend {
		r := []rune(k)
		if len(r) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrBadLegend, k)
		}
		out[r[0]] = c
	}
	return out, nil
}

func coord(m *tile.Map, xy []int) (tile.Coord, error) {
	if len(xy) != 2 {
		return tile.Coord{}, fmt.Errorf("%w: want [x, y], got %v", ErrBadCoord, xy)
	}
	if !m.InBounds(xy[0], xy[1]) {
		return tile.Coord{}, fmt.Errorf("%w: %v outside %dx%d", ErrBadCoord, xy, m.Width(), m.Height())
	}
	return tile.Coord{X: xy[0], Y: xy[1]}, nil
}
