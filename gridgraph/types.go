// Package gridgraph defines core types, options, and sentinel errors
// for the gridgraph subpackage.
package gridgraph

import (
	"errors"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyView indicates a zero-value grid.View with no cells.
	ErrEmptyView = errors.New("gridgraph: view has no cells")
	// ErrOutOfBounds indicates a query point outside the view.
	ErrOutOfBounds = errors.New("gridgraph: point out of bounds")
	// ErrComponentIndex indicates a requested component index is out of range.
	ErrComponentIndex = errors.New("gridgraph: component index out of range")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, S, W, E.
	Conn4 Connectivity = iota
	// Conn8 adds the diagonals NW, NE, SW, SE.
	Conn8
)

// String returns "conn4" or "conn8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "conn8"
	}
	return "conn4"
}

// Options contains tunable parameters for grid analysis.
type Options struct {
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
}

// DefaultOptions returns Options with Conn=Conn4.
func DefaultOptions() Options {
	return Options{Conn: Conn4}
}

// GridGraph treats the traversable cells of a grid.View as graph vertices.
// It never copies the view; it is valid as long as the view is.
type GridGraph struct {
	view    gridView
	conn    Connectivity
	offsets [][2]int
}

// Labels maps every cell to the connected component it belongs to.
// Non-traversable cells carry NoComponent.
type Labels struct {
	width int
	ids   []int32
	sizes []int
}

// NoComponent is the label of a non-traversable cell.
const NoComponent = -1
