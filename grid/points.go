package grid

import (
	"slices"

	"github.com/lvyv/auto-harness-layout/cell"
)

// AddStart registers (row, col) as a start point and paints it Start.
// Adding an existing start is a no-op that returns its current index.
// Returns ErrOutOfBounds for invalid coordinates.
func (g *Grid) AddStart(row, col int) (int, error) {
	return g.addPoint(&g.starts, row, col, cell.Start)
}

// AddEnd registers (row, col) as an end point and paints it End.
// Adding an existing end is a no-op that returns its current index.
// Returns ErrOutOfBounds for invalid coordinates.
func (g *Grid) AddEnd(row, col int) (int, error) {
	return g.addPoint(&g.ends, row, col, cell.End)
}

// RemoveStart removes the start point at (row, col) and reports whether one
// was removed. The cell is repainted Free only if it still carries Start.
func (g *Grid) RemoveStart(row, col int) bool {
	return g.removePoint(&g.starts, row, col, cell.Start)
}

// RemoveEnd removes the end point at (row, col) and reports whether one was
// removed. The cell is repainted Free only if it still carries End.
func (g *Grid) RemoveEnd(row, col int) bool {
	return g.removePoint(&g.ends, row, col, cell.End)
}

// StartIndex returns the index of the start at p, or -1.
func (g *Grid) StartIndex(p cell.Point) int { return slices.Index(g.starts, p) }

// EndIndex returns the index of the end at p, or -1.
func (g *Grid) EndIndex(p cell.Point) int { return slices.Index(g.ends, p) }

func (g *Grid) addPoint(list *[]cell.Point, row, col int, code cell.Code) (int, error) {
	if !g.InBounds(row, col) {
		return -1, outOfBounds(row, col, g.cfg.Height, g.cfg.Width)
	}
	p := cell.Point{Row: row, Col: col}
	if idx := slices.Index(*list, p); idx >= 0 {
		return idx, nil
	}
	*list = append(*list, p)
	g.setCell(g.index(row, col), code)
	return len(*list) - 1, nil
}

func (g *Grid) removePoint(list *[]cell.Point, row, col int, code cell.Code) bool {
	p := cell.Point{Row: row, Col: col}
	idx := slices.Index(*list, p)
	if idx < 0 {
		return false
	}
	*list = slices.Delete(*list, idx, idx+1)
	if i := g.index(row, col); g.cells[i] == code {
		g.setCell(i, cell.Free)
	}
	return true
}
