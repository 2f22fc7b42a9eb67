package gridgraph

import (
	"container/list"
	"fmt"
	"slices"

	"github.com/lvyv/auto-harness-layout/cell"
)

// Breach finds a route from src to dst that crosses the fewest obstacle
// cells. Each obstacle crossed costs 1; open cells are free.
// Returns the route (inclusive of both endpoints) and the obstacle count.
// A zero cost means src and dst are already connected.
//
// Behavior:
//  1. Validate both points.
//  2. 0–1 BFS from src:
//     • Moving into an open cell      → cost 0
//     • Moving into an obstacle cell  → cost 1
//  3. Stop when dst is popped.
//  4. Reconstruct the route via predecessor links.
//
// Complexity: O(W·H·d) time, O(W·H) memory.
func (gg *GridGraph) Breach(src, dst cell.Point) (path []cell.Point, cost int, err error) {
	for _, p := range []cell.Point{src, dst} {
		if !gg.view.InBounds(p.Row, p.Col) {
			return nil, 0, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
		}
	}

	n := gg.view.Len()
	const inf = int(^uint(0) >> 1)
	dist := make([]int, n)
	prev := make([]int, n)
	for i := range dist {
		dist[i] = inf
		prev[i] = -1
	}

	s, target := gg.index(src.Row, src.Col), gg.index(dst.Row, dst.Col)
	dist[s] = 0
	if !gg.open(s) {
		dist[s] = 1
	}

	// 0–1 BFS: deque processes cost0 at front, cost1 at back
	dq := list.New()
	dq.PushFront(s)
	done := make([]bool, n)
	w := gg.view.Width()

	for dq.Len() > 0 {
		e := dq.Front()
		dq.Remove(e)
		u := e.Value.(int)
		if done[u] {
			continue
		}
		done[u] = true
		if u == target {
			break
		}
		ur, uc := u/w, u%w
		for _, d := range gg.offsets {
			vr, vc := ur+d[0], uc+d[1]
			if !gg.view.InBounds(vr, vc) {
				continue
			}
			v := gg.index(vr, vc)
			step := 0
			if !gg.open(v) {
				step = 1
			}
			if nd := dist[u] + step; nd < dist[v] {
				dist[v] = nd
				prev[v] = u
				if step == 0 {
					dq.PushFront(v)
				} else {
					dq.PushBack(v)
				}
			}
		}
	}

	// every cell is enterable at some cost, so target is always reached
	for at := target; at >= 0; at = prev[at] {
		path = append(path, gg.Coordinate(at))
	}
	slices.Reverse(path)
	return path, dist[target], nil
}
