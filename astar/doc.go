// Package astar implements distance-penalized A* search on occupancy grids.
//
// What:
//
//   - Search finds a least-cost path between two cells of a *grid.Grid.
//   - Batch answers every pair of a starts×goals cross product on a bounded
//     worker pool.
//   - Plan runs Batch over the grid's own start and end points and stores the
//     found paths back on the grid.
//
// Cost model:
//
//	cost(u→v) = move(u,v) + SDFWeight / (field[v] + Epsilon)
//
// move is 1 for N, S, W, E and √2 for NW, NE, SW, SE (DiagonalMove only).
// field is the grid's Euclidean distance field, so the penalty grows near
// obstacles and fades in open space; SDFWeight=0 is plain shortest path.
// The heuristic is the Euclidean distance to the goal. It ignores the penalty
// term, so it is admissible but loose when SDFWeight is large.
//
// Determinism:
//
//   - Neighbors are generated in the fixed order N, S, W, E, NW, NE, SW, SE.
//   - Ties on f = g + h are broken by insertion order, earliest first.
//
// Budget:
//
//   - Every heap pop counts as one iteration. Reaching MaxIterations pops
//     without popping the goal yields Result{Found: false}, exactly like an
//     exhausted open set.
//
// Complexity:
//
//   - Time:  O(N log N) per search, N = W×H, bounded by MaxIterations.
//   - Space: O(N) per concurrent search.
//
// Errors (sentinel):
//
//   - ErrInvalidPosition   start or goal out of bounds or not traversable.
//   - ErrInvalidConfig     wrapped with ErrBadSDFWeight, ErrBadMaxIterations or ErrBadEpsilon.
//   - ErrNoStarts, ErrNoEnds from Plan.
//
// NoPath is never an error.
//
// Observability:
//
//   - Prometheus: ahl_search_total, ahl_search_expanded_nodes,
//     ahl_search_stop_total, ahl_batch_duration_seconds.
//   - OpenTelemetry spans "astar.Batch" and "astar.Plan".
//   - slog: NoPath reasons at Debug, batch summaries at Info.
package astar
