package pathfind

import (
	"errors"
	"io"
	"log/slog"

	"github.com/katalvlaran/tilepath/resindex"
	"github.com/katalvlaran/tilepath/tile"
)

// Sentinel errors returned by the planner. They signal misuse by the caller;
// an unreachable target is never an error.
var (
	// ErrNoGrid indicates the Planner has no grid bound.
	ErrNoGrid = errors.New("pathfind: no grid bound")

	// ErrNoStart indicates Request.Start is nil.
	ErrNoStart = errors.New("pathfind: no start tile")

	// ErrNoTarget indicates a Request with neither Goal nor ObjectType.
	ErrNoTarget = errors.New("pathfind: request needs a goal tile or an object type")

	// ErrAmbiguousTarget indicates a Request with both Goal and ObjectType.
	ErrAmbiguousTarget = errors.New("pathfind: request has both a goal tile and an object type")

	// ErrNilMatch indicates Nearest was called with a nil predicate.
	ErrNilMatch = errors.New("pathfind: match predicate is nil")
)

// Request describes one search. Exactly one of Goal and ObjectType drives
// termination.
type Request struct {
	// Start is the tile the mover stands on. Required.
	Start tile.Tile

	// Goal, when set, selects exact-goal (A*) mode.
	Goal tile.Tile

	// ObjectType, when set, selects resource-seek mode: the nearest tile by
	// accumulated cost whose stack has this type.
	ObjectType string

	// CanTakeFromStockpile allows resource-seek mode to accept stacks lying
	// on stockpile tiles.
	CanTakeFromStockpile bool

	// Routable lists tiles that may be entered even when impassable. Such a
	// tile is costed as 1 for this request.
	Routable []tile.Tile
}

// Result is the outcome of a search. Callers must check Reachable before
// consuming Route.
type Result struct {
	// Reachable reports whether a route was found.
	Reachable bool

	// Route runs from Start (exclusive) to the accepted tile (inclusive).
	// It is nil when Reachable is false, and empty when the mover already
	// stands on the target.
	Route *Route

	// Cost is the accumulated traversal cost of Route.
	Cost float64

	// Expanded counts nodes popped from the frontier.
	Expanded int

	// Truncated reports that MaxExpansions stopped the search early.
	Truncated bool
}

// CornerRule selects how diagonal moves past impassable corners are treated.
type CornerRule int

const (
	// CornerCosmetic only marks clipping edges in the graph; the search
	// routes through them at normal cost.
	CornerCosmetic CornerRule = iota

	// CornerBlocked forbids clipping moves during search.
	CornerBlocked
)

// String returns the rule's flag name.
func (r CornerRule) String() string {
	switch r {
	case CornerCosmetic:
		return "cosmetic"
	case CornerBlocked:
		return "blocked"
	}
	return "unknown"
}

// ParseCornerRule parses "cosmetic" or "blocked".
func ParseCornerRule(s string) (CornerRule, bool) {
	switch s {
	case "cosmetic":
		return CornerCosmetic, true
	case "blocked":
		return CornerBlocked, true
	}
	return CornerCosmetic, false
}

// Options configures a Planner.
//
// Logger        – destination for build/search diagnostics (default: discard).
// Corners       – treatment of corner-clipping diagonal moves (default: CornerCosmetic).
// MaxExpansions – stop after this many frontier pops and report unreachable;
//
//	0 means no cap.
//
// Index         – optional resource index used to short-circuit resource
//
//	searches that cannot succeed.
type Options struct {
	Logger        *slog.Logger
	Corners       CornerRule
	MaxExpansions int
	Index         *resindex.Index
}

// Option is a functional option for NewPlanner.
type Option func(*Options)

// WithLogger sets the diagnostics logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithCornerRule sets the corner-clipping policy.
func WithCornerRule(r CornerRule) Option {
	return func(o *Options) {
		o.Corners = r
	}
}

// WithMaxExpansions caps the number of nodes a search may expand.
// Negative values panic, as a configuration error.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("pathfind: MaxExpansions must be non-negative")
		}
		o.MaxExpansions = n
	}
}

// WithResourceIndex installs a resource index used to skip resource searches
// that cannot succeed. The host keeps it in step with the grid through
// resindex.Index.Put, Remove and Sync, or swaps it with
// Planner.SetResourceIndex.
func WithResourceIndex(idx *resindex.Index) Option {
	return func(o *Options) {
		o.Index = idx
	}
}

// DefaultOptions returns the defaults listed on Options.
func DefaultOptions() Options {
	return Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Corners: CornerCosmetic,
	}
}
