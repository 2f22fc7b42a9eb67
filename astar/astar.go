package astar

import (
	"container/heap"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/lvyv/auto-harness-layout/cell"
	"github.com/lvyv/auto-harness-layout/grid"
	"github.com/lvyv/auto-harness-layout/sdf"
)

// Search finds a least-cost path from start to goal on g.
//
// The cost of moving from u to a neighbor v is
//
//	move(u,v) + SDFWeight / (field[v] + Epsilon)
//
// where move is 1 for orthogonal steps and √2 for diagonal ones, and field is
// g.DistanceField(). The heuristic is the Euclidean distance to goal without
// the penalty term.
//
// Preconditions and validation (in order):
//  1. The configuration must validate (ErrInvalidConfig).
//  2. start and goal must be in bounds (ErrInvalidPosition wrapping
//     grid.ErrOutOfBounds) and traversable (ErrInvalidPosition).
//
// A search that exhausts the open set or reaches MaxIterations heap pops is
// reported as Result{Found: false}, never as an error. start == goal yields
// the single-element path with zero expansions.
//
// Search may recompute g's distance field and must not run concurrently with
// mutations of g.
//
// Complexity:
//
//   - Time:  O(N log N) for N = W×H cells, bounded by MaxIterations pops.
//   - Space: O(N) for g-scores, predecessors and closed flags.
func Search(g *grid.Grid, start, goal cell.Point, opts ...Option) (Result, error) {
	o := buildOptions(opts)
	if err := o.Config.Validate(); err != nil {
		return Result{}, err
	}
	v := g.View()
	if err := checkEndpoints(v, start, goal); err != nil {
		record(Result{reason: stopInvalid})
		return Result{}, err
	}

	var res Result
	if start == goal {
		res = single(start)
	} else {
		res = run(v, g.DistanceField(), start, goal, o.Config)
	}
	record(res)
	logOutcome(o.Logger, start, goal, res)
	return res, nil
}

// checkEndpoints validates start then goal against v.
func checkEndpoints(v grid.View, start, goal cell.Point) error {
	for _, ep := range [...]struct {
		name string
		p    cell.Point
	}{{"start", start}, {"goal", goal}} {
		if !v.InBounds(ep.p.Row, ep.p.Col) {
			return fmt.Errorf("%w: %s %v: %w", ErrInvalidPosition, ep.name, ep.p, grid.ErrOutOfBounds)
		}
		if !cell.IsTraversable(v.At(ep.p.Row, ep.p.Col)) {
			return fmt.Errorf("%w: %s %v is %s", ErrInvalidPosition, ep.name, ep.p, v.At(ep.p.Row, ep.p.Col))
		}
	}
	return nil
}

func single(p cell.Point) Result {
	return Result{Path: []cell.Point{p}, Found: true, reason: stopFound}
}

func logOutcome(l *slog.Logger, start, goal cell.Point, res Result) {
	if res.Found {
		return
	}
	l.Debug("astar: no path",
		slog.String("start", start.String()),
		slog.String("goal", goal.String()),
		slog.String("reason", res.reason.String()),
		slog.Int("expanded", res.Expanded))
}

// step is a neighbor offset with its movement cost.
type step struct {
	dr, dc int
	cost   float64
}

var (
	steps4 = []step{{-1, 0, 1}, {1, 0, 1}, {0, -1, 1}, {0, 1, 1}}
	steps8 = []step{
		{-1, 0, 1}, {1, 0, 1}, {0, -1, 1}, {0, 1, 1},
		{-1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2}, {1, -1, math.Sqrt2}, {1, 1, math.Sqrt2},
	}
)

// runner holds the per-search state. All slices are indexed by the row-major
// cell index.
type runner struct {
	view  grid.View
	field []float32
	cfg   Config
	steps []step

	goal   cell.Point
	g      []float64
	parent []int32
	closed []bool
	pq     nodePQ
	seq    uint64
}

// run executes A* on validated, distinct, traversable endpoints.
func run(v grid.View, f *sdf.Field, start, goal cell.Point, cfg Config) Result {
	n := v.Len()
	r := &runner{
		view:   v,
		field:  f.Values,
		cfg:    cfg,
		steps:  steps4,
		goal:   goal,
		g:      make([]float64, n),
		parent: make([]int32, n),
		closed: make([]bool, n),
		pq:     make(nodePQ, 0, 64),
	}
	if cfg.DiagonalMove {
		r.steps = steps8
	}
	for i := range r.g {
		r.g[i] = math.Inf(1)
		r.parent[i] = -1
	}
	return r.loop(v.Index(start.Row, start.Col), v.Index(goal.Row, goal.Col))
}

func (r *runner) loop(s, t int) Result {
	r.g[s] = 0
	r.push(s, r.heuristic(s))

	var res Result
	for pops := 0; r.pq.Len() > 0; pops++ {
		if pops >= r.cfg.MaxIterations {
			res.reason = stopIterationCap
			return res
		}
		u := int(heap.Pop(&r.pq).(nodeItem).idx)
		if r.closed[u] {
			continue
		}
		if u == t {
			res.Path = r.path(t)
			res.Cost = r.g[t]
			res.Found = true
			res.reason = stopFound
			return res
		}
		r.closed[u] = true
		res.Expanded++
		r.relax(u)
	}
	res.reason = stopExhausted
	return res
}

// relax pushes every open neighbor of u whose tentative g improves strictly.
func (r *runner) relax(u int) {
	w := r.view.Width()
	ur, uc := u/w, u%w
	for _, st := range r.steps {
		vr, vc := ur+st.dr, uc+st.dc
		if !r.view.Traversable(vr, vc) {
			continue
		}
		v := vr*w + vc
		if r.closed[v] {
			continue
		}
		cost := st.cost + r.cfg.SDFWeight/(float64(r.field[v])+r.cfg.Epsilon)
		if ng := r.g[u] + cost; ng < r.g[v] {
			r.g[v] = ng
			r.parent[v] = int32(u)
			r.push(v, ng+r.heuristic(v))
		}
	}
}

func (r *runner) push(i int, f float64) {
	heap.Push(&r.pq, nodeItem{idx: int32(i), f: f, seq: r.seq})
	r.seq++
}

// heuristic is the Euclidean distance from cell i to the goal.
func (r *runner) heuristic(i int) float64 {
	w := r.view.Width()
	return math.Hypot(float64(i/w-r.goal.Row), float64(i%w-r.goal.Col))
}

// path follows predecessor links from t back to the start.
func (r *runner) path(t int) []cell.Point {
	var out []cell.Point
	for at := int32(t); at >= 0; at = r.parent[at] {
		out = append(out, r.view.Point(int(at)))
	}
	slices.Reverse(out)
	return out
}
