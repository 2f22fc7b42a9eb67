// Package gridgraph provides utilities to treat the traversable cells of an
// occupancy grid as a graph. It supports:
//
//   - Four- or eight-connectivity (Conn4 or Conn8)
//   - Identification and labelling of connected components
//   - Reachability queries between cells
//   - Minimum-obstacle breaches between disconnected cells
//
// Traversability follows cell.IsTraversable: Obstacle cells are walls,
// every other code is open.
package gridgraph

import (
	"github.com/lvyv/auto-harness-layout/cell"
	"github.com/lvyv/auto-harness-layout/grid"
)

// gridView is the subset of grid.View used here.
type gridView interface {
	Width() int
	Height() int
	Len() int
	InBounds(row, col int) bool
	AtIndex(i int) cell.Code
}

var _ gridView = grid.View{}

var (
	offsets4 = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	offsets8 = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// New wraps a grid view. Neighbor offsets are chosen once from opts.Conn in
// the same N, S, W, E (then NW, NE, SW, SE) order the path search uses.
// Returns ErrEmptyView for a zero-value view.
// Complexity: O(1).
func New(v grid.View, opts Options) (*GridGraph, error) {
	if v.Len() == 0 {
		return nil, ErrEmptyView
	}
	offsets := offsets4
	if opts.Conn == Conn8 {
		offsets = offsets8
	}
	return &GridGraph{view: v, conn: opts.Conn, offsets: offsets}, nil
}

// Width returns the number of columns.
func (gg *GridGraph) Width() int { return gg.view.Width() }

// Height returns the number of rows.
func (gg *GridGraph) Height() int { return gg.view.Height() }

// Conn returns the connectivity the graph was built with.
func (gg *GridGraph) Conn() Connectivity { return gg.conn }

// InBounds reports whether (row, col) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(row, col int) bool {
	return gg.view.InBounds(row, col)
}

// NeighborOffsets returns the precomputed (dRow, dCol) offsets.
// Complexity: O(1).
func (gg *GridGraph) NeighborOffsets() [][2]int {
	return gg.offsets
}

// open reports whether the cell at row-major index i is traversable.
func (gg *GridGraph) open(i int) bool {
	return cell.IsTraversable(gg.view.AtIndex(i))
}

// index maps (row, col) to a row-major index: row*Width + col.
// Complexity: O(1).
func (gg *GridGraph) index(row, col int) int {
	return row*gg.view.Width() + col
}

// Coordinate converts a row-major index back to a point.
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) cell.Point {
	w := gg.view.Width()
	return cell.Point{Row: idx / w, Col: idx % w}
}
