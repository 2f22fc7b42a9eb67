package gridgraph

import (
	"fmt"

	"github.com/lvyv/auto-harness-layout/cell"
)

// ConnectedComponents finds all contiguous regions of traversable cells,
// according to the graph's connectivity.
// Returns a slice of components in row-major discovery order; each component
// is a slice of cell indices (row-major) in BFS order.
//
// To convert an index back to a point, use Coordinate(idx).
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (gg *GridGraph) ConnectedComponents() [][]int {
	var comps [][]int
	gg.flood(func(_ int, comp []int) {
		comps = append(comps, comp)
	})
	return comps
}

// Label assigns a component id to every cell. Ids follow the order of
// ConnectedComponents.
// Time: O(W·H·d). Memory: O(W·H).
func (gg *GridGraph) Label() *Labels {
	l := &Labels{
		width: gg.view.Width(),
		ids:   make([]int32, gg.view.Len()),
	}
	for i := range l.ids {
		l.ids[i] = NoComponent
	}
	gg.flood(func(id int, comp []int) {
		for _, i := range comp {
			l.ids[i] = int32(id)
		}
		l.sizes = append(l.sizes, len(comp))
	})
	return l
}

// flood runs a BFS from every unseen traversable cell in row-major order and
// hands each finished component to emit.
func (gg *GridGraph) flood(emit func(id int, comp []int)) {
	total := gg.view.Len()
	seen := make([]bool, total)
	h, w := gg.view.Height(), gg.view.Width()
	id := 0

	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			i0 := gg.index(r, c)
			if seen[i0] || !gg.open(i0) {
				continue
			}
			queue := []int{i0}
			seen[i0] = true

			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				ur, uc := u/w, u%w
				for _, d := range gg.offsets {
					vr, vc := ur+d[0], uc+d[1]
					if !gg.view.InBounds(vr, vc) {
						continue
					}
					vi := gg.index(vr, vc)
					if !seen[vi] && gg.open(vi) {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			emit(id, queue)
			id++
		}
	}
}

// Count returns the number of components.
func (l *Labels) Count() int { return len(l.sizes) }

// Of returns the component id of p, or NoComponent for a non-traversable or
// out-of-bounds point.
func (l *Labels) Of(p cell.Point) int {
	if p.Row < 0 || p.Col < 0 || p.Col >= l.width {
		return NoComponent
	}
	i := p.Row*l.width + p.Col
	if i >= len(l.ids) {
		return NoComponent
	}
	return int(l.ids[i])
}

// Connected reports whether a and b are traversable and share a component.
func (l *Labels) Connected(a, b cell.Point) bool {
	ca := l.Of(a)
	return ca != NoComponent && ca == l.Of(b)
}

// Size returns the number of cells in component id.
func (l *Labels) Size(id int) (int, error) {
	if id < 0 || id >= len(l.sizes) {
		return 0, fmt.Errorf("%w: %d of %d", ErrComponentIndex, id, len(l.sizes))
	}
	return l.sizes[id], nil
}
