// Package grid owns the mutable occupancy grid used by the planner.
//
// A Grid holds:
//
//   - a dense row-major array of cell.Code, Height×Width, both in [1,1000];
//   - ordered lists of distinct start and end points (insertion order is the
//     index used by stored paths);
//   - stored paths keyed by (start index, end index);
//   - a cached sdf.Field with a dirty flag.
//
// Distance-field caching:
//
//	Only obstacle changes mark the field stale: SetCell when the old or the
//	new code is Obstacle, FillRect with Obstacle, and Clear. DistanceField
//	recomputes on the next read if stale and otherwise returns the same
//	*sdf.Field pointer. There is no background refresh.
//
// Concurrency:
//
//	A Grid has no internal locking. Callers serialise mutation; concurrent
//	readers are safe only while nobody mutates. View exposes a read-only
//	window over the cell array for search workers.
//
// Errors:
//
//   - ErrOutOfBounds:   coordinate outside the grid; checked before any write.
//   - ErrInvalidCode:   a byte that is not a declared cell code.
//   - ErrInvalidConfig: dimensions or default code outside their bounds.
//   - ErrInvalidState:  Restore given parts that violate the invariants.
package grid
