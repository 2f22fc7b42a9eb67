package grid

import (
	"slices"

	"github.com/lvyv/auto-harness-layout/cell"
)

// SetPath stores a copy of path under (startIdx, endIdx), replacing any
// previous path for that pair, and paints its cells Path. Cells currently
// carrying Start or End keep their code.
// Returns ErrOutOfBounds if any point lies outside the grid; in that case
// nothing is stored or painted. Indices are not checked against the current
// starts and ends, and an empty path is stored as such.
func (g *Grid) SetPath(startIdx, endIdx int, path []cell.Point) error {
	if err := g.checkPath(path); err != nil {
		return err
	}
	g.paths[PathKey{Start: startIdx, End: endIdx}] = copyPath(path)
	for _, p := range path {
		i := g.index(p.Row, p.Col)
		if c := g.cells[i]; c == cell.Start || c == cell.End {
			continue
		}
		g.setCell(i, cell.Path)
	}
	return nil
}

// ClearPaths discards every stored path and repaints Path cells Free.
func (g *Grid) ClearPaths() {
	clear(g.paths)
	for i, c := range g.cells {
		if c == cell.Path {
			g.cells[i] = cell.Free
		}
	}
}

// Path returns a copy of the path stored under (startIdx, endIdx).
func (g *Grid) Path(startIdx, endIdx int) ([]cell.Point, bool) {
	p, ok := g.paths[PathKey{Start: startIdx, End: endIdx}]
	if !ok {
		return nil, false
	}
	return copyPath(p), true
}

// Paths returns a deep copy of all stored paths.
func (g *Grid) Paths() map[PathKey][]cell.Point {
	out := make(map[PathKey][]cell.Point, len(g.paths))
	for k, p := range g.paths {
		out[k] = copyPath(p)
	}
	return out
}

// PathKeys returns the keys of all stored paths, ordered by start then end.
func (g *Grid) PathKeys() []PathKey {
	keys := make([]PathKey, 0, len(g.paths))
	for k := range g.paths {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b PathKey) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return keys
}

func (g *Grid) checkPath(path []cell.Point) error {
	for _, p := range path {
		if !g.InBounds(p.Row, p.Col) {
			return outOfBounds(p.Row, p.Col, g.cfg.Height, g.cfg.Width)
		}
	}
	return nil
}

// copyPath never returns nil, so an empty path survives a save/load cycle.
func copyPath(p []cell.Point) []cell.Point {
	return append(make([]cell.Point, 0, len(p)), p...)
}
