package sdf

import (
	"fmt"
	"math"

	"github.com/lvyv/auto-harness-layout/cell"
)

// Compute builds the Euclidean distance field of a row-major cell array with
// the given width. The height is len(cells)/width.
//
// Result:
//
//   - 0 exactly on Obstacle cells.
//   - the exact distance to the nearest obstacle elsewhere (>= 1).
//   - hypot(height, width) everywhere when no obstacle exists.
//
// Complexity: O(W×H) time and memory.
func Compute(cells []cell.Code, width int) (*Field, error) {
	if width <= 0 || len(cells) == 0 {
		return nil, ErrEmptyInput
	}
	if len(cells)%width != 0 {
		return nil, fmt.Errorf("%w: %d cells, width %d", ErrShapeMismatch, len(cells), width)
	}
	height := len(cells) / width
	n := len(cells)

	field := &Field{Width: width, Height: height, Values: make([]float32, n)}

	obstacles := 0
	for _, c := range cells {
		if c == cell.Obstacle {
			obstacles++
		}
	}
	if obstacles == 0 {
		diag := float32(math.Hypot(float64(height), float64(width)))
		for i := range field.Values {
			field.Values[i] = diag
		}
		return field, nil
	}

	// inf exceeds every squared distance the grid can hold, and keeps all
	// arithmetic on whole numbers.
	inf := float64(width*width + height*height + 1)

	sq := make([]float64, n)
	for i, c := range cells {
		if c == cell.Obstacle {
			sq[i] = 0
		} else {
			sq[i] = inf
		}
	}

	longest := width
	if height > longest {
		longest = height
	}
	t := newTransformer(longest)

	// 1) columns
	for col := 0; col < width; col++ {
		for row := 0; row < height; row++ {
			t.f[row] = sq[row*width+col]
		}
		t.run(height)
		for row := 0; row < height; row++ {
			sq[row*width+col] = t.d[row]
		}
	}

	// 2) rows
	for row := 0; row < height; row++ {
		base := row * width
		copy(t.f[:width], sq[base:base+width])
		t.run(width)
		for col := 0; col < width; col++ {
			field.Values[base+col] = float32(math.Sqrt(t.d[col]))
		}
	}

	return field, nil
}

// transformer holds reusable buffers for the 1D squared-distance transform.
type transformer struct {
	f []float64 // input samples
	d []float64 // output squared distances
	v []int     // parabola vertices in the lower envelope
	z []float64 // envelope breakpoints, len(v)+1
}

func newTransformer(n int) *transformer {
	return &transformer{
		f: make([]float64, n),
		d: make([]float64, n),
		v: make([]int, n),
		z: make([]float64, n+1),
	}
}

// run computes d[q] = min_p ((q-p)^2 + f[p]) for q in [0, n).
func (t *transformer) run(n int) {
	f, d, v, z := t.f, t.d, t.v, t.z

	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)

	for q := 1; q < n; q++ {
		s := t.intersect(q, v[k])
		for s <= z[k] {
			k--
			s = t.intersect(q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// intersect returns the abscissa where the parabolas rooted at q and p meet.
func (t *transformer) intersect(q, p int) float64 {
	fq := t.f[q] + float64(q*q)
	fp := t.f[p] + float64(p*p)
	return (fq - fp) / float64(2*q-2*p)
}
