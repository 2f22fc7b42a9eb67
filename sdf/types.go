package sdf

import (
	"errors"
	"math"

	"github.com/lvyv/auto-harness-layout/cell"
)

// Sentinel errors for distance-field computation.
var (
	// ErrEmptyInput indicates no cells were supplied or width <= 0.
	ErrEmptyInput = errors.New("sdf: input grid must have at least one cell")
	// ErrShapeMismatch indicates len(cells) is not a multiple of width.
	ErrShapeMismatch = errors.New("sdf: cell count is not a multiple of width")
)

// Field is a dense row-major distance field.
// Values[row*Width+col] is the distance from (row, col) to the nearest obstacle.
type Field struct {
	Width, Height int
	Values        []float32
}

// At returns the distance stored for (row, col). The caller guarantees the
// coordinate is inside the field.
func (f *Field) At(row, col int) float32 {
	return f.Values[row*f.Width+col]
}

// MinAlong returns the smallest distance over the given points, i.e. the
// clearance of a route. It returns +Inf for an empty route.
// Complexity: O(len(points)).
func (f *Field) MinAlong(points []cell.Point) float32 {
	best := float32(math.Inf(1))
	for _, p := range points {
		if d := f.At(p.Row, p.Col); d < best {
			best = d
		}
	}
	return best
}
