package sdf_test

import (
	"fmt"
	"strings"

	"github.com/lvyv/auto-harness-layout/cell"
	"github.com/lvyv/auto-harness-layout/sdf"
)

// ExampleCompute shows the distance field around a single obstacle
// in the centre of a 3×3 grid.
func ExampleCompute() {
	cells := []cell.Code{
		cell.Free, cell.Free, cell.Free,
		cell.Free, cell.Obstacle, cell.Free,
		cell.Free, cell.Free, cell.Free,
	}
	f, err := sdf.Compute(cells, 3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for r := 0; r < f.Height; r++ {
		row := make([]string, f.Width)
		for c := range row {
			row[c] = fmt.Sprintf("%.3f", f.At(r, c))
		}
		fmt.Println(strings.Join(row, " "))
	}
	// Output:
	// 1.414 1.000 1.414
	// 1.000 0.000 1.000
	// 1.414 1.000 1.414
}
