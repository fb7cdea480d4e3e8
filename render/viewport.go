package render

import (
	"math"

	"github.com/lixenwraith/pricerider/vmath"
)

// Terminal cells are about twice as tall as wide
const (
	CellsPerUnitX = 2.0
	CellsPerUnitY = 1.0
)

// Viewport maps world X/Y onto a cell grid centered on a world point
type Viewport struct {
	Width, Height int
	Center        vmath.Vec3F
}

// ToCell returns the cell containing world point (x, y)
func (v Viewport) ToCell(x, y float64) (col, row int) {
	col = int(math.Floor((x-v.Center.X)*CellsPerUnitX)) + v.Width/2
	row = v.Height/2 - int(math.Ceil((y-v.Center.Y)*CellsPerUnitY))
	return col, row
}

// ColumnX returns the world X at the center of col
func (v Viewport) ColumnX(col int) float64 {
	return v.Center.X + (float64(col-v.Width/2)+0.5)/CellsPerUnitX
}

// RowY returns the world Y at the center of row
func (v Viewport) RowY(row int) float64 {
	return v.Center.Y + (float64(v.Height/2-row)-0.5)/CellsPerUnitY
}

// Contains reports whether the cell lies on the grid
func (v Viewport) Contains(col, row int) bool {
	return col >= 0 && col < v.Width && row >= 0 && row < v.Height
}
