package sdf_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvyv/auto-harness-layout/cell"
	"github.com/lvyv/auto-harness-layout/sdf"
)

const tol = 1e-5

// blank returns a w×h Free cell array.
func blank(w, h int) []cell.Code {
	return make([]cell.Code, w*h)
}

// bruteForce computes the field by scanning every obstacle for every cell.
func bruteForce(cells []cell.Code, w int) []float32 {
	h := len(cells) / w
	out := make([]float32, len(cells))
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			best := math.Inf(1)
			for or := 0; or < h; or++ {
				for oc := 0; oc < w; oc++ {
					if cells[or*w+oc] != cell.Obstacle {
						continue
					}
					dr, dc := float64(r-or), float64(c-oc)
					if d := math.Sqrt(dr*dr + dc*dc); d < best {
						best = d
					}
				}
			}
			out[r*w+c] = float32(best)
		}
	}
	return out
}

func TestCompute_InvalidInput(t *testing.T) {
	_, err := sdf.Compute(nil, 3)
	require.ErrorIs(t, err, sdf.ErrEmptyInput)

	_, err = sdf.Compute(blank(3, 3), 0)
	require.ErrorIs(t, err, sdf.ErrEmptyInput)

	_, err = sdf.Compute(make([]cell.Code, 7), 3)
	require.ErrorIs(t, err, sdf.ErrShapeMismatch)
}

func TestCompute_NoObstacles(t *testing.T) {
	f, err := sdf.Compute(blank(10, 10), 10)
	require.NoError(t, err)
	require.Equal(t, 10, f.Width)
	require.Equal(t, 10, f.Height)

	diag := float32(math.Hypot(10, 10))
	for i, v := range f.Values {
		assert.Greater(t, v, float32(5), "cell %d", i)
		assert.InDelta(t, diag, v, tol)
	}
}

func TestCompute_SingleObstacle(t *testing.T) {
	cells := blank(10, 10)
	cells[5*10+5] = cell.Obstacle

	f, err := sdf.Compute(cells, 10)
	require.NoError(t, err)

	assert.Equal(t, float32(0), f.At(5, 5))
	for _, p := range []cell.Point{{Row: 4, Col: 5}, {Row: 6, Col: 5}, {Row: 5, Col: 4}, {Row: 5, Col: 6}} {
		assert.InDelta(t, 1.0, f.At(p.Row, p.Col), tol, "orthogonal %v", p)
	}
	for _, p := range []cell.Point{{Row: 4, Col: 4}, {Row: 4, Col: 6}, {Row: 6, Col: 4}, {Row: 6, Col: 6}} {
		assert.InDelta(t, math.Sqrt2, f.At(p.Row, p.Col), tol, "diagonal %v", p)
	}
	// far corner: (0,0) is sqrt(5^2+5^2) away
	assert.InDelta(t, math.Sqrt(50), f.At(0, 0), tol)
}

func TestCompute_Wall(t *testing.T) {
	const w, h = 10, 10
	cells := blank(w, h)
	for r := 0; r < h; r++ {
		cells[r*w+5] = cell.Obstacle
	}
	f, err := sdf.Compute(cells, w)
	require.NoError(t, err)

	for r := 0; r < h; r++ {
		assert.Equal(t, float32(0), f.At(r, 5))
		assert.InDelta(t, 1.0, f.At(r, 4), tol)
		assert.InDelta(t, 1.0, f.At(r, 6), tol)
		assert.InDelta(t, 5.0, f.At(r, 0), tol)
		assert.InDelta(t, 4.0, f.At(r, 9), tol)
	}
}

func TestCompute_AllObstacles(t *testing.T) {
	cells := make([]cell.Code, 100)
	for i := range cells {
		cells[i] = cell.Obstacle
	}
	f, err := sdf.Compute(cells, 10)
	require.NoError(t, err)
	for _, v := range f.Values {
		require.Equal(t, float32(0), v)
	}
}

func TestCompute_Shapes(t *testing.T) {
	for _, shape := range [][2]int{{5, 5}, {10, 20}, {100, 50}, {1, 7}, {7, 1}} {
		h, w := shape[0], shape[1]
		cells := blank(w, h)
		cells[len(cells)/2] = cell.Obstacle
		f, err := sdf.Compute(cells, w)
		require.NoError(t, err)
		assert.Equal(t, w, f.Width)
		assert.Equal(t, h, f.Height)
		assert.Len(t, f.Values, w*h)
	}
}

func TestCompute_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		w := 1 + rng.Intn(24)
		h := 1 + rng.Intn(24)
		cells := blank(w, h)
		density := rng.Float64() * 0.3
		placed := false
		for i := range cells {
			if rng.Float64() < density {
				cells[i] = cell.Obstacle
				placed = true
			}
		}
		if !placed {
			cells[rng.Intn(len(cells))] = cell.Obstacle
		}

		f, err := sdf.Compute(cells, w)
		require.NoError(t, err)
		want := bruteForce(cells, w)
		for i := range want {
			require.InDelta(t, want[i], f.Values[i], tol, "trial %d (%dx%d) cell %d", trial, h, w, i)
		}
	}
}

func TestCompute_NonObstacleCodesAreOpen(t *testing.T) {
	cells := []cell.Code{
		cell.Start, cell.Path, cell.End,
		cell.Free, cell.Obstacle, cell.Free,
	}
	f, err := sdf.Compute(cells, 3)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, f.At(0, 0), tol)
	assert.InDelta(t, 1.0, f.At(0, 1), tol)
	assert.Equal(t, float32(0), f.At(1, 1))
}

func TestMinAlong(t *testing.T) {
	cells := blank(5, 5)
	cells[2*5+2] = cell.Obstacle
	f, err := sdf.Compute(cells, 5)
	require.NoError(t, err)

	route := []cell.Point{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}
	assert.InDelta(t, 1.0, f.MinAlong(route), tol)
	assert.True(t, math.IsInf(float64(f.MinAlong(nil)), 1))
}

func TestGradient(t *testing.T) {
	const w, h = 7, 5
	cells := blank(w, h)
	for r := 0; r < h; r++ {
		cells[r*w] = cell.Obstacle // wall on the left edge
	}
	f, err := sdf.Compute(cells, w)
	require.NoError(t, err)

	gy, gx := sdf.Gradient(f)
	require.Len(t, gy, w*h)
	require.Len(t, gx, w*h)

	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			// distance grows by one per column away from the wall
			assert.InDelta(t, 1.0, gx[r*w+c], tol, "gx(%d,%d)", r, c)
			assert.InDelta(t, 0.0, gy[r*w+c], tol, "gy(%d,%d)", r, c)
		}
	}
}

func TestGradient_DegenerateAxes(t *testing.T) {
	f, err := sdf.Compute([]cell.Code{cell.Obstacle, cell.Free, cell.Free}, 3)
	require.NoError(t, err)
	gy, gx := sdf.Gradient(f)
	assert.Equal(t, []float32{0, 0, 0}, gy)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, toF64(gx), tol)
}

func toF64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
