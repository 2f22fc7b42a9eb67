// Package grid defines the occupancy grid, its configuration, path keys and
// sentinel errors.
package grid

import (
	"errors"
	"fmt"

	"github.com/lvyv/auto-harness-layout/cell"
)

// MaxDimension is the largest accepted width or height.
const MaxDimension = 1000

// Sentinel errors for grid operations.
var (
	// ErrOutOfBounds indicates a coordinate outside [0,Height)×[0,Width).
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrInvalidCode indicates a byte that is not a declared cell.Code.
	ErrInvalidCode = errors.New("grid: invalid cell code")
	// ErrInvalidConfig indicates dimensions or default cell outside their bounds.
	ErrInvalidConfig = errors.New("grid: invalid configuration")
	// ErrInvalidState indicates persisted parts that violate grid invariants.
	ErrInvalidState = errors.New("grid: inconsistent grid state")
)

// Config describes the shape and fill value of a grid.
type Config struct {
	Width       int       // number of columns, [1, MaxDimension]
	Height      int       // number of rows, [1, MaxDimension]
	DefaultCell cell.Code // fill value on creation
}

// DefaultConfig returns a 50×50 Free grid configuration.
func DefaultConfig() Config {
	return Config{Width: 50, Height: 50, DefaultCell: cell.Free}
}

// Validate reports whether c is acceptable for New.
func (c Config) Validate() error {
	if c.Width < 1 || c.Width > MaxDimension {
		return fmt.Errorf("%w: width %d not in [1,%d]", ErrInvalidConfig, c.Width, MaxDimension)
	}
	if c.Height < 1 || c.Height > MaxDimension {
		return fmt.Errorf("%w: height %d not in [1,%d]", ErrInvalidConfig, c.Height, MaxDimension)
	}
	if !c.DefaultCell.Valid() {
		return fmt.Errorf("%w: default cell %d", ErrInvalidConfig, uint8(c.DefaultCell))
	}
	return nil
}

// PathKey identifies a stored path by the indices of its start and end point.
type PathKey struct {
	Start, End int
}

// String renders the key as "start->end".
func (k PathKey) String() string {
	return fmt.Sprintf("%d->%d", k.Start, k.End)
}

// Less orders keys by start index, then end index.
func (k PathKey) Less(o PathKey) bool {
	if k.Start != o.Start {
		return k.Start < o.Start
	}
	return k.End < o.End
}

func outOfBounds(row, col, height, width int) error {
	return fmt.Errorf("%w: (%d,%d) for %dx%d grid", ErrOutOfBounds, row, col, height, width)
}
