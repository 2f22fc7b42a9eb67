package grid

import (
	"fmt"

	"github.com/lvyv/auto-harness-layout/cell"
)

// SetCell writes code at (row, col). The distance field is marked stale when
// the old or the new code is Obstacle.
// Returns ErrOutOfBounds or ErrInvalidCode; nothing is written on error.
func (g *Grid) SetCell(row, col int, code cell.Code) error {
	if !g.InBounds(row, col) {
		return outOfBounds(row, col, g.cfg.Height, g.cfg.Width)
	}
	if !code.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidCode, uint8(code))
	}
	g.setCell(g.index(row, col), code)
	return nil
}

// setCell writes an in-bounds, valid code and tracks obstacle changes.
func (g *Grid) setCell(i int, code cell.Code) {
	old := g.cells[i]
	g.cells[i] = code
	if old == cell.Obstacle || code == cell.Obstacle {
		g.fieldDirty = true
	}
}

// FillRect writes code into the rectangle spanned by (r1,c1) and (r2,c2),
// inclusive on both corners. Corners are normalised and the rectangle is
// clamped to the grid; a rectangle lying entirely outside is a no-op.
// The distance field is marked stale iff code is Obstacle.
// Complexity: O(area).
func (g *Grid) FillRect(r1, c1, r2, c2 int, code cell.Code) error {
	if !code.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidCode, uint8(code))
	}
	r1, r2 = min(r1, r2), max(r1, r2)
	c1, c2 = min(c1, c2), max(c1, c2)
	r1, c1 = max(r1, 0), max(c1, 0)
	r2, c2 = min(r2, g.cfg.Height-1), min(c2, g.cfg.Width-1)
	if r1 > r2 || c1 > c2 {
		return nil
	}

	for r := r1; r <= r2; r++ {
		row := g.cells[g.index(r, c1) : g.index(r, c2)+1]
		for i := range row {
			row[i] = code
		}
	}
	if code == cell.Obstacle {
		g.fieldDirty = true
	}
	return nil
}

// Clear resets every cell to code, discards all starts, ends and paths, and
// marks the distance field stale.
func (g *Grid) Clear(code cell.Code) error {
	if !code.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidCode, uint8(code))
	}
	for i := range g.cells {
		g.cells[i] = code
	}
	g.starts = g.starts[:0]
	g.ends = g.ends[:0]
	clear(g.paths)
	g.fieldDirty = true
	return nil
}
