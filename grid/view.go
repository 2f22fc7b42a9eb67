package grid

import "github.com/lvyv/auto-harness-layout/cell"

// View is a read-only window over a grid's cell array, safe to share between
// goroutines as long as the underlying grid is not mutated.
type View struct {
	width, height int
	cells         []cell.Code
}

// Width returns the number of columns.
func (v View) Width() int { return v.width }

// Height returns the number of rows.
func (v View) Height() int { return v.height }

// Len returns Width×Height.
func (v View) Len() int { return len(v.cells) }

// InBounds reports whether (row, col) lies inside the grid.
func (v View) InBounds(row, col int) bool {
	return row >= 0 && row < v.height && col >= 0 && col < v.width
}

// At returns the code at (row, col). The caller guarantees bounds.
func (v View) At(row, col int) cell.Code {
	return v.cells[row*v.width+col]
}

// AtIndex returns the code at row-major index i.
func (v View) AtIndex(i int) cell.Code {
	return v.cells[i]
}

// Traversable reports whether (row, col) is inside the grid and traversable.
func (v View) Traversable(row, col int) bool {
	return v.InBounds(row, col) && cell.IsTraversable(v.At(row, col))
}

// Index maps (row, col) to a row-major index.
func (v View) Index(row, col int) int { return row*v.width + col }

// Point converts a row-major index back to a coordinate.
func (v View) Point(i int) cell.Point {
	return cell.Point{Row: i / v.width, Col: i % v.width}
}
