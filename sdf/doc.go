// Package sdf computes obstacle distance fields for occupancy grids.
//
// What:
//
//   - Compute returns, for every cell, the Euclidean distance (in cell units)
//     to the nearest Obstacle cell; exactly 0 on obstacles.
//   - Gradient returns the central-difference gradient of a field, pointing
//     away from obstacles.
//
// How:
//
//	The transform is the separable lower-envelope algorithm of
//	Felzenszwalb & Huttenlocher: a 1D squared-distance transform over every
//	column, then over every row of the column result. Squared distances are
//	whole numbers well below 2^53, so the envelope is computed exactly in
//	float64 and the square root is taken once per cell.
//
//	A grid without obstacles has no finite distance anywhere; every cell is
//	then assigned the grid diagonal hypot(height, width), an upper bound on
//	any distance the grid could produce.
//
// Complexity:
//
//   - Compute:  O(W×H) time, O(W×H) memory.
//   - Gradient: O(W×H) time, O(W×H) memory.
//
// Errors:
//
//   - ErrEmptyInput:    no cells or a non-positive width.
//   - ErrShapeMismatch: len(cells) is not a multiple of width.
//
// Compute is a pure function and may be called concurrently on independent
// inputs.
package sdf
