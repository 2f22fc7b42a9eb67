package grid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvyv/auto-harness-layout/cell"
	"github.com/lvyv/auto-harness-layout/grid"
)

func newGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h, cell.Free)
	require.NoError(t, err)
	return g
}

func TestNew_InvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		def  cell.Code
	}{
		{"ZeroWidth", 0, 10, cell.Free},
		{"ZeroHeight", 10, 0, cell.Free},
		{"TooWide", grid.MaxDimension + 1, 10, cell.Free},
		{"TooTall", 10, grid.MaxDimension + 1, cell.Free},
		{"BadDefault", 10, 10, cell.Code(7)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.New(tc.w, tc.h, tc.def)
			require.ErrorIs(t, err, grid.ErrInvalidConfig)
		})
	}
}

func TestNew_DefaultCell(t *testing.T) {
	g, err := grid.New(4, 3, cell.Obstacle)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, grid.Config{Width: 4, Height: 3, DefaultCell: cell.Obstacle}, g.Config())
	for _, c := range g.Cells() {
		assert.Equal(t, cell.Obstacle, c)
	}
	assert.True(t, g.FieldStale())
}

func TestCell_OutOfBounds(t *testing.T) {
	g := newGrid(t, 5, 5)
	for _, p := range []cell.Point{{Row: -1, Col: 0}, {Row: 0, Col: -1}, {Row: 5, Col: 0}, {Row: 0, Col: 5}} {
		_, err := g.Cell(p.Row, p.Col)
		require.ErrorIs(t, err, grid.ErrOutOfBounds, "%v", p)
		assert.False(t, g.InBounds(p.Row, p.Col))
	}
}

func TestSetCell(t *testing.T) {
	g := newGrid(t, 5, 5)

	require.ErrorIs(t, g.SetCell(5, 0, cell.Obstacle), grid.ErrOutOfBounds)
	require.ErrorIs(t, g.SetCell(0, 0, cell.Code(5)), grid.ErrInvalidCode)

	require.NoError(t, g.SetCell(2, 3, cell.Obstacle))
	c, err := g.Cell(2, 3)
	require.NoError(t, err)
	assert.Equal(t, cell.Obstacle, c)
}

func TestDistanceField_CacheIdentity(t *testing.T) {
	g := newGrid(t, 8, 8)

	f1 := g.DistanceField()
	f2 := g.DistanceField()
	assert.Same(t, f1, f2, "no mutation between reads")
	assert.False(t, g.FieldStale())

	// non-obstacle edits keep the cache
	require.NoError(t, g.SetCell(1, 1, cell.Path))
	_, err := g.AddStart(0, 0)
	require.NoError(t, err)
	require.NoError(t, g.FillRect(3, 3, 4, 4, cell.Free))
	assert.Same(t, f1, g.DistanceField())

	// placing an obstacle invalidates
	require.NoError(t, g.SetCell(4, 4, cell.Obstacle))
	assert.True(t, g.FieldStale())
	f3 := g.DistanceField()
	assert.NotSame(t, f1, f3)
	assert.Equal(t, float32(0), f3.At(4, 4))

	// removing it invalidates too
	require.NoError(t, g.SetCell(4, 4, cell.Free))
	f4 := g.DistanceField()
	assert.NotSame(t, f3, f4)
	assert.InDelta(t, math.Hypot(8, 8), f4.At(4, 4), 1e-5)
}

func TestFillRect(t *testing.T) {
	g := newGrid(t, 6, 6)
	_ = g.DistanceField()

	require.NoError(t, g.FillRect(4, 4, 1, 2, cell.Obstacle))
	assert.True(t, g.FieldStale())
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			got, _ := g.Cell(r, c)
			want := cell.Free
			if r >= 1 && r <= 4 && c >= 2 && c <= 4 {
				want = cell.Obstacle
			}
			assert.Equal(t, want, got, "(%d,%d)", r, c)
		}
	}
}

func TestFillRect_Clamped(t *testing.T) {
	g := newGrid(t, 4, 4)
	require.NoError(t, g.FillRect(-3, -3, 1, 1, cell.Obstacle))
	for _, p := range []cell.Point{{Row: 0, Col: 0}, {Row: 1, Col: 1}} {
		c, _ := g.Cell(p.Row, p.Col)
		assert.Equal(t, cell.Obstacle, c)
	}
	c, _ := g.Cell(2, 2)
	assert.Equal(t, cell.Free, c)
}

func TestFillRect_OutsideIsNoop(t *testing.T) {
	g := newGrid(t, 4, 4)
	f := g.DistanceField()
	require.NoError(t, g.FillRect(10, 10, 20, 20, cell.Obstacle))
	assert.False(t, g.FieldStale())
	assert.Same(t, f, g.DistanceField())
	for _, c := range g.Cells() {
		assert.Equal(t, cell.Free, c)
	}
}

func TestFillRect_InvalidCode(t *testing.T) {
	g := newGrid(t, 4, 4)
	require.ErrorIs(t, g.FillRect(0, 0, 1, 1, cell.Code(200)), grid.ErrInvalidCode)
}

func TestAddStart_Idempotent(t *testing.T) {
	g := newGrid(t, 5, 5)

	i, err := g.AddStart(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	j, err := g.AddStart(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, j)

	again, err := g.AddStart(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, again)
	assert.Equal(t, []cell.Point{{Row: 1, Col: 1}, {Row: 2, Col: 2}}, g.Starts())

	c, _ := g.Cell(1, 1)
	assert.Equal(t, cell.Start, c)

	_, err = g.AddStart(-1, 0)
	require.ErrorIs(t, err, grid.ErrOutOfBounds)
	_, err = g.AddEnd(0, 9)
	require.ErrorIs(t, err, grid.ErrOutOfBounds)
}

func TestRemovePoints(t *testing.T) {
	g := newGrid(t, 5, 5)
	_, _ = g.AddStart(1, 1)
	_, _ = g.AddEnd(3, 3)

	assert.False(t, g.RemoveStart(0, 0), "absent start")
	assert.False(t, g.RemoveEnd(1, 1), "start is not an end")

	assert.True(t, g.RemoveStart(1, 1))
	assert.Empty(t, g.Starts())
	c, _ := g.Cell(1, 1)
	assert.Equal(t, cell.Free, c)

	// repainted end cell keeps its new code
	require.NoError(t, g.SetCell(3, 3, cell.Obstacle))
	assert.True(t, g.RemoveEnd(3, 3))
	c, _ = g.Cell(3, 3)
	assert.Equal(t, cell.Obstacle, c)
}

func TestStartsReturnsCopy(t *testing.T) {
	g := newGrid(t, 5, 5)
	_, _ = g.AddStart(1, 1)
	s := g.Starts()
	s[0] = cell.P(4, 4)
	assert.Equal(t, cell.P(1, 1), g.Starts()[0])
	assert.Equal(t, 0, g.StartIndex(cell.P(1, 1)))
	assert.Equal(t, -1, g.EndIndex(cell.P(1, 1)))
}

func TestSetPath(t *testing.T) {
	g := newGrid(t, 5, 5)
	_, _ = g.AddStart(0, 0)
	_, _ = g.AddEnd(0, 3)

	path := []cell.Point{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}}
	require.NoError(t, g.SetPath(0, 0, path))

	// stored copy is independent of the caller's slice
	path[1] = cell.P(4, 4)
	got, ok := g.Path(0, 0)
	require.True(t, ok)
	assert.Equal(t, cell.P(0, 1), got[1])

	codes := []cell.Code{cell.Start, cell.Path, cell.Path, cell.End}
	for col, want := range codes {
		c, _ := g.Cell(0, col)
		assert.Equal(t, want, c, "col %d", col)
	}

	_, ok = g.Path(1, 0)
	assert.False(t, ok)
}

func TestSetPath_EmptyAndDetachedKeys(t *testing.T) {
	g := newGrid(t, 4, 4)
	_, _ = g.AddStart(0, 0)
	_, _ = g.AddEnd(3, 3)

	require.NoError(t, g.SetPath(0, 0, nil))
	require.NoError(t, g.SetPath(-1, 7, []cell.Point{cell.P(1, 1)}))

	got, ok := g.Path(0, 0)
	require.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, []grid.PathKey{{Start: -1, End: 7}, {Start: 0, End: 0}}, g.PathKeys())

	// keys survive removal of the point they were planned from
	require.True(t, g.RemoveStart(0, 0))
	assert.Len(t, g.Paths(), 2)
}

func TestSetPath_OutOfBounds(t *testing.T) {
	g := newGrid(t, 3, 3)
	err := g.SetPath(0, 0, []cell.Point{{Row: 0, Col: 0}, {Row: 0, Col: 3}})
	require.ErrorIs(t, err, grid.ErrOutOfBounds)
	assert.Empty(t, g.Paths())
	c, _ := g.Cell(0, 0)
	assert.Equal(t, cell.Free, c)
}

func TestClearPaths(t *testing.T) {
	g := newGrid(t, 4, 4)
	_, _ = g.AddStart(0, 0)
	require.NoError(t, g.SetPath(0, 0, []cell.Point{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}}))
	require.NoError(t, g.SetPath(0, 1, []cell.Point{{Row: 0, Col: 0}, {Row: 0, Col: 1}}))
	assert.Equal(t, []grid.PathKey{{Start: 0, End: 0}, {Start: 0, End: 1}}, g.PathKeys())

	g.ClearPaths()
	assert.Empty(t, g.Paths())
	assert.Empty(t, g.PathKeys())
	for i, c := range g.Cells() {
		assert.NotEqual(t, cell.Path, c, "cell %d", i)
	}
	c, _ := g.Cell(0, 0)
	assert.Equal(t, cell.Start, c)
}

func TestClear(t *testing.T) {
	g := newGrid(t, 4, 4)
	_, _ = g.AddStart(0, 0)
	_, _ = g.AddEnd(3, 3)
	require.NoError(t, g.SetPath(0, 0, []cell.Point{{Row: 0, Col: 0}}))
	f := g.DistanceField()

	require.ErrorIs(t, g.Clear(cell.Code(9)), grid.ErrInvalidCode)

	require.NoError(t, g.Clear(cell.Free))
	assert.Empty(t, g.Starts())
	assert.Empty(t, g.Ends())
	assert.Empty(t, g.Paths())
	assert.True(t, g.FieldStale())
	assert.NotSame(t, f, g.DistanceField())
}

func TestClone_Independent(t *testing.T) {
	g := newGrid(t, 4, 4)
	_, _ = g.AddStart(0, 0)
	require.NoError(t, g.SetPath(0, 0, []cell.Point{{Row: 0, Col: 0}, {Row: 0, Col: 1}}))

	c := g.Clone()
	require.NoError(t, c.SetCell(2, 2, cell.Obstacle))
	_, _ = c.AddEnd(3, 3)
	c.ClearPaths()

	got, _ := g.Cell(2, 2)
	assert.Equal(t, cell.Free, got)
	assert.Empty(t, g.Ends())
	assert.Len(t, g.Paths(), 1)
}

func TestView(t *testing.T) {
	g := newGrid(t, 3, 2)
	require.NoError(t, g.SetCell(1, 2, cell.Obstacle))

	v := g.View()
	assert.Equal(t, 3, v.Width())
	assert.Equal(t, 2, v.Height())
	assert.Equal(t, 6, v.Len())
	assert.Equal(t, cell.Obstacle, v.At(1, 2))
	assert.Equal(t, cell.Obstacle, v.AtIndex(v.Index(1, 2)))
	assert.Equal(t, cell.P(1, 2), v.Point(5))
	assert.False(t, v.Traversable(1, 2))
	assert.True(t, v.Traversable(0, 0))
	assert.False(t, v.Traversable(2, 0))
}

func TestRestore(t *testing.T) {
	cfg := grid.Config{Width: 3, Height: 2, DefaultCell: cell.Free}
	cells := []cell.Code{cell.Start, 0, 0, 0, cell.Obstacle, cell.End}
	starts := []cell.Point{{Row: 0, Col: 0}}
	ends := []cell.Point{{Row: 1, Col: 2}}
	paths := map[grid.PathKey][]cell.Point{{Start: 0, End: 0}: {{Row: 0, Col: 0}, {Row: 0, Col: 1}}}

	g, err := grid.Restore(cfg, cells, starts, ends, paths)
	require.NoError(t, err)
	assert.Equal(t, cells, g.Cells())
	assert.Equal(t, starts, g.Starts())
	assert.Equal(t, ends, g.Ends())
	assert.Equal(t, paths, g.Paths())

	cells[0] = cell.Obstacle
	c, _ := g.Cell(0, 0)
	assert.Equal(t, cell.Start, c, "restore copies its input")
}

func TestRestore_Invalid(t *testing.T) {
	cfg := grid.Config{Width: 2, Height: 2}
	ok := make([]cell.Code, 4)

	_, err := grid.Restore(grid.Config{}, ok, nil, nil, nil)
	require.ErrorIs(t, err, grid.ErrInvalidConfig)

	_, err = grid.Restore(cfg, make([]cell.Code, 3), nil, nil, nil)
	require.ErrorIs(t, err, grid.ErrInvalidState)

	_, err = grid.Restore(cfg, []cell.Code{0, 0, 0, 9}, nil, nil, nil)
	require.ErrorIs(t, err, grid.ErrInvalidState)

	_, err = grid.Restore(cfg, ok, []cell.Point{{Row: 2, Col: 0}}, nil, nil)
	require.ErrorIs(t, err, grid.ErrInvalidState)

	_, err = grid.Restore(cfg, ok, nil, []cell.Point{{Row: 1, Col: 1}, {Row: 1, Col: 1}}, nil)
	require.ErrorIs(t, err, grid.ErrInvalidState)

	bad := map[grid.PathKey][]cell.Point{{}: {{Row: 0, Col: 5}}}
	_, err = grid.Restore(cfg, ok, nil, nil, bad)
	require.ErrorIs(t, err, grid.ErrInvalidState)
	require.ErrorIs(t, err, grid.ErrOutOfBounds)
}

func TestPathKey(t *testing.T) {
	assert.Equal(t, "2->5", grid.PathKey{Start: 2, End: 5}.String())
	assert.True(t, grid.PathKey{Start: 0, End: 9}.Less(grid.PathKey{Start: 1, End: 0}))
	assert.True(t, grid.PathKey{Start: 1, End: 0}.Less(grid.PathKey{Start: 1, End: 1}))
	assert.False(t, grid.PathKey{Start: 1, End: 1}.Less(grid.PathKey{Start: 1, End: 1}))
	require.NoError(t, grid.DefaultConfig().Validate())
}
