package grid

import (
	"fmt"
	"slices"

	"github.com/lvyv/auto-harness-layout/cell"
	"github.com/lvyv/auto-harness-layout/sdf"
)

// Grid is a 2D occupancy grid with start/end points, stored paths and a
// lazily recomputed distance field. The zero value is not usable; call New.
type Grid struct {
	cfg    Config
	cells  []cell.Code
	starts []cell.Point
	ends   []cell.Point
	paths  map[PathKey][]cell.Point

	field      *sdf.Field
	fieldDirty bool
}

// New constructs a width×height grid filled with defaultCell.
// Returns ErrInvalidConfig if a dimension is outside [1,MaxDimension] or the
// default code is invalid.
// Complexity: O(W×H).
func New(width, height int, defaultCell cell.Code) (*Grid, error) {
	cfg := Config{Width: width, Height: height, DefaultCell: defaultCell}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{
		cfg:        cfg,
		cells:      make([]cell.Code, width*height),
		paths:      make(map[PathKey][]cell.Point),
		fieldDirty: true,
	}
	if defaultCell != cell.Free {
		for i := range g.cells {
			g.cells[i] = defaultCell
		}
	}
	return g, nil
}

// Restore rebuilds a grid from persisted parts without painting anything.
// cells must be row-major Height×Width with valid codes; starts and ends must
// be in bounds and distinct; every path point must be in bounds. The inputs
// are copied.
// Returns ErrInvalidConfig or ErrInvalidState on violation.
func Restore(cfg Config, cells []cell.Code, starts, ends []cell.Point, paths map[PathKey][]cell.Point) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cells) != cfg.Width*cfg.Height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d grid", ErrInvalidState, len(cells), cfg.Height, cfg.Width)
	}
	for i, c := range cells {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: cell %d has code %d", ErrInvalidState, i, uint8(c))
		}
	}

	g := &Grid{
		cfg:        cfg,
		cells:      slices.Clone(cells),
		paths:      make(map[PathKey][]cell.Point, len(paths)),
		fieldDirty: true,
	}
	var err error
	if g.starts, err = g.restorePoints("start", starts); err != nil {
		return nil, err
	}
	if g.ends, err = g.restorePoints("end", ends); err != nil {
		return nil, err
	}
	for key, path := range paths {
		if err := g.checkPath(path); err != nil {
			return nil, fmt.Errorf("%w: path %s: %w", ErrInvalidState, key, err)
		}
		g.paths[key] = copyPath(path)
	}
	return g, nil
}

func (g *Grid) restorePoints(kind string, pts []cell.Point) ([]cell.Point, error) {
	out := make([]cell.Point, 0, len(pts))
	seen := make(map[cell.Point]struct{}, len(pts))
	for _, p := range pts {
		if !g.InBounds(p.Row, p.Col) {
			return nil, fmt.Errorf("%w: %s %v out of bounds", ErrInvalidState, kind, p)
		}
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("%w: duplicate %s %v", ErrInvalidState, kind, p)
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.cfg.Width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.cfg.Height }

// Config returns the configuration the grid was built with.
func (g *Grid) Config() Config { return g.cfg }

// InBounds reports whether (row, col) lies inside the grid.
// Complexity: O(1).
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.cfg.Height && col >= 0 && col < g.cfg.Width
}

// Cell returns the code at (row, col), or ErrOutOfBounds.
func (g *Grid) Cell(row, col int) (cell.Code, error) {
	if !g.InBounds(row, col) {
		return 0, outOfBounds(row, col, g.cfg.Height, g.cfg.Width)
	}
	return g.cells[g.index(row, col)], nil
}

// Cells returns a copy of the row-major cell array.
func (g *Grid) Cells() []cell.Code {
	return slices.Clone(g.cells)
}

// Starts returns a copy of the start points in index order.
func (g *Grid) Starts() []cell.Point { return slices.Clone(g.starts) }

// Ends returns a copy of the end points in index order.
func (g *Grid) Ends() []cell.Point { return slices.Clone(g.ends) }

// DistanceField returns the cached distance field, recomputing it first if an
// obstacle changed since the last read. Without intervening obstacle changes
// the same pointer is returned. Treat the result as read-only.
// Complexity: O(1) cached, O(W×H) on recompute.
func (g *Grid) DistanceField() *sdf.Field {
	if g.field == nil || g.fieldDirty {
		f, err := sdf.Compute(g.cells, g.cfg.Width)
		if err != nil {
			// cells is always Width×Height with Width >= 1
			panic(fmt.Sprintf("grid: distance field: %v", err))
		}
		g.field = f
		g.fieldDirty = false
	}
	return g.field
}

// FieldStale reports whether the next DistanceField call will recompute.
func (g *Grid) FieldStale() bool {
	return g.field == nil || g.fieldDirty
}

// Clone returns a deep, independent copy of g. The cached field is shared
// until either grid recomputes it, since fields are never mutated in place.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		cfg:        g.cfg,
		cells:      slices.Clone(g.cells),
		starts:     slices.Clone(g.starts),
		ends:       slices.Clone(g.ends),
		paths:      make(map[PathKey][]cell.Point, len(g.paths)),
		field:      g.field,
		fieldDirty: g.fieldDirty,
	}
	for k, p := range g.paths {
		c.paths[k] = copyPath(p)
	}
	return c
}

// View returns a read-only window over the current cell array. The view
// shares storage with g and is valid until the next mutation.
func (g *Grid) View() View {
	return View{width: g.cfg.Width, height: g.cfg.Height, cells: g.cells}
}

// index maps (row, col) to a row-major index: row*Width + col.
func (g *Grid) index(row, col int) int {
	return row*g.cfg.Width + col
}
