// Package cell defines the closed set of cell codes stored in an occupancy
// grid, the (row, col) coordinate type shared by every other package, and the
// lookup tables keyed on the code (traversability and rendering colour).
//
// Codes:
//
//	Free     (0) – open space, traversable.
//	Obstacle (1) – blocked, never traversable.
//	Start    (2) – a start point, traversable.
//	End      (3) – an end point, traversable.
//	Path     (4) – rendering overlay for a computed route, traversable.
//
// Any other byte value is not a valid code and is treated as non-traversable.
package cell

import "fmt"

// Code is the 8-bit discriminant stored in every grid cell.
type Code uint8

const (
	// Free marks open space.
	Free Code = iota
	// Obstacle marks a blocked cell.
	Obstacle
	// Start marks a start point.
	Start
	// End marks an end point.
	End
	// Path marks a cell painted by a stored route.
	Path
)

// NumCodes is the number of valid codes; valid codes are [0, NumCodes).
const NumCodes = 5

// traversable is indexed by Code.
var traversable = [NumCodes]bool{
	Free:     true,
	Obstacle: false,
	Start:    true,
	End:      true,
	Path:     true,
}

var names = [NumCodes]string{
	Free:     "free",
	Obstacle: "obstacle",
	Start:    "start",
	End:      "end",
	Path:     "path",
}

// Valid reports whether c is one of the declared codes.
func (c Code) Valid() bool { return c < NumCodes }

// Traversable reports whether a route may pass through a cell carrying c.
func (c Code) Traversable() bool { return IsTraversable(c) }

// String returns the lower-case name of c, or "code(N)" for unknown values.
func (c Code) String() string {
	if !c.Valid() {
		return fmt.Sprintf("code(%d)", uint8(c))
	}
	return names[c]
}

// IsTraversable reports whether code is Free, Start, End or Path.
// Complexity: O(1).
func IsTraversable(code Code) bool {
	if !code.Valid() {
		return false
	}
	return traversable[code]
}

// Point is a (row, col) grid coordinate. It is comparable and is used as a
// map key throughout the module.
type Point struct {
	Row, Col int
}

// P is shorthand for Point{Row: row, Col: col}.
func P(row, col int) Point { return Point{Row: row, Col: col} }

// String renders the point as "(row,col)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
