// Package layout is the root of a route planner for 2D occupancy grids:
// paths between start and end points that keep clear of obstacles.
//
// 🚀 What is in the box?
//
//   - cell/      – the closed set of cell codes and the (row, col) Point type
//   - sdf/       – exact Euclidean distance field to the nearest obstacle
//   - grid/      – the mutable occupancy grid with a lazily cached field
//   - gridgraph/ – connected components and obstacle breaching on a grid view
//   - astar/     – distance-penalized A*, concurrent batches and Plan
//   - gridstore/ – versioned binary container, optionally zstd-compressed
//   - config/    – YAML settings for the gridplan command
//
// Cost of a step into cell v:
//
//	move(u,v) + SDFWeight / (field[v] + Epsilon)
//
// so routes bend away from walls as SDFWeight grows.
//
// Quick ASCII example (S start, E end, # obstacle, * route):
//
//	S * * # . . .
//	. . * # . * E
//	. . * * * * .
//
// The gridplan command ties it together:
//
//	go run ./cmd/gridplan -config config/gridplan.yaml -out layout.ahl
package layout
