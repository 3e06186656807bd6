package snake

import "math/rand"

// FoodSpawner picks free cells for food.
type FoodSpawner struct {
	grid        Grid
	rng         *rand.Rand
	maxAttempts int
}

// NewFoodSpawner creates a spawner that probes at most maxAttempts random
// cells before falling back to a full scan.
func NewFoodSpawner(grid Grid, rng *rand.Rand, maxAttempts int) *FoodSpawner {
	return &FoodSpawner{
		grid:        grid,
		rng:         rng,
		maxAttempts: max(maxAttempts, 1),
	}
}

// Spawn returns a cell not occupied by the snake.
// ok is false only when the snake covers the whole grid.
func (f *FoodSpawner) Spawn(b *Body) (cell Cell, ok bool) {
	if b.Len() >= f.grid.Size() {
		return Cell{X: -1, Y: -1}, false
	}

	for i := 0; i < f.maxAttempts; i++ {
		c := f.grid.RandomCell(f.rng)
		if !b.Occupies(c) {
			return c, true
		}
	}

	// Board is nearly full; pick uniformly among what is left.
	free := make([]Cell, 0, f.grid.Size()-b.Len())
	for y := 0; y < f.grid.Height; y++ {
		for x := 0; x < f.grid.Width; x++ {
			c := Cell{X: x, Y: y}
			if !b.Occupies(c) {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return Cell{X: -1, Y: -1}, false
	}
	return free[f.rng.Intn(len(free))], true
}
