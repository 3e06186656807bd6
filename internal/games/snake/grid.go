package snake

import (
	"fmt"
	"math/rand"
)

// Cell is a grid coordinate: column X, row Y, both 0-indexed.
type Cell struct {
	X, Y int
}

// Step returns the neighbouring cell one step along d.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Adjacent reports whether o is an orthogonal neighbour of c.
func (c Cell) Adjacent(o Cell) bool {
	dx, dy := c.X-o.X, c.Y-o.Y
	return dx*dx+dy*dy == 1
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is the fixed playfield: Width columns by Height rows, walled edges.
type Grid struct {
	Width  int
	Height int
}

// InBounds reports whether c lies on the grid.
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// RandomCell picks a cell uniformly from the whole grid.
func (g Grid) RandomCell(rng *rand.Rand) Cell {
	return Cell{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
}

// Size returns the number of cells on the grid.
func (g Grid) Size() int {
	return g.Width * g.Height
}
