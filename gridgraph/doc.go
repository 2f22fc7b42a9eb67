// Package gridgraph treats the traversable cells of an occupancy grid as a
// graph, enabling component analysis and minimum-obstacle breaches.
//
// What:
//
//   - GridGraph wraps a grid.View without copying it.
//   - Identifies connected components of traversable cells (every code but Obstacle).
//   - Labels cells by component for O(1) reachability checks.
//   - Computes the fewest obstacle cells to clear to join two points (0-1 BFS).
//
// Why:
//
//   - Batched path search skips pairs that cannot be connected at all.
//   - Failed plans can report which walls block a start from an end.
//
// Complexity:
//
//   - ConnectedComponents, Label: O(W×H×d), Memory: O(W×H)    (d = 4 or 8).
//   - Labels.Of, Labels.Connected: O(1).
//   - Breach:                      O(W×H×d), Memory: O(W×H).
//
// Options:
//
//   - Options.Conn: Conn4 (4-neighbors) or Conn8 (8-neighbors). Conn8 matches
//     a diagonal path search, which may step between two diagonal obstacles.
//
// Errors:
//
//   - ErrEmptyView: the view has no cells.
//   - ErrOutOfBounds: a Breach endpoint lies outside the grid.
//   - ErrComponentIndex: requested component index out of range.
package gridgraph
