package tilegraph

import (
	"errors"
	"io"
	"log/slog"
)

// Sentinel errors for tilegraph operations.
var (
	// ErrNilGrid indicates a nil tile.Grid was supplied.
	ErrNilGrid = errors.New("tilegraph: grid is nil")
	// ErrEmptyGrid indicates the grid reports no rows or no columns.
	ErrEmptyGrid = errors.New("tilegraph: grid must have at least one row and one column")
	// ErrMissingTile indicates the grid returned nil for an in-bounds coordinate.
	ErrMissingTile = errors.New("tilegraph: grid returned no tile for in-bounds coordinate")
)

// Diagonal is the length of a diagonal step between tile centres.
const Diagonal = 1.41421356237

// Edge is a directed adjacency link to a neighbouring node.
type Edge struct {
	To      int     // index of the destination node
	Cost    float64 // nominal cost: destination movement cost × step length; 0 when Clipped
	Clipped bool    // the move cuts a diagonal corner
}

// Node wraps one tile position and its outgoing edges.
type Node struct {
	Index int
	X, Y  int
	Edges []Edge
}

// Options configures graph building.
type Options struct {
	Logger *slog.Logger
}

// Option is a functional option for Build and NewCache.
type Option func(*Options)

// WithLogger routes build diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// DefaultOptions returns Options with a logger that discards everything.
func DefaultOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
