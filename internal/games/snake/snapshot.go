package snake

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot is a read-only copy of the engine state for presentation,
// determinism tests and debugging. Mutating it does not affect the engine.
type Snapshot struct {
	Snake     []Cell // head first
	Food      Cell   // (-1,-1) when the board is full
	Status    Status
	Score     int
	HighScore int
	Interval  time.Duration
	Direction Direction
	Width     int
	Height    int
	FoodEaten int
	Ticks     uint64
	Collision Collision
	Cleared   bool
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Snake:     e.body.Cells(),
		Food:      e.food,
		Status:    e.status,
		Score:     e.score,
		HighScore: e.highScore,
		Interval:  e.interval,
		Direction: e.direction,
		Width:     e.grid.Width,
		Height:    e.grid.Height,
		FoodEaten: e.foodEaten,
		Ticks:     e.ticks,
		Collision: e.collision,
		Cleared:   e.cleared,
	}
}

// Head returns the snake head, or (-1,-1) for an empty snapshot.
func (s Snapshot) Head() Cell {
	if len(s.Snake) == 0 {
		return Cell{X: -1, Y: -1}
	}
	return s.Snake[0]
}

// Board draws the grid as text: 'H' head, 'o' body, '*' food, '.' empty.
// Rows are top to bottom.
func (s Snapshot) Board() string {
	rows := make([][]byte, s.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", s.Width))
	}
	put := func(c Cell, ch byte) {
		if c.X >= 0 && c.X < s.Width && c.Y >= 0 && c.Y < s.Height {
			rows[c.Y][c.X] = ch
		}
	}
	put(s.Food, '*')
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			put(s.Snake[i], 'H')
		} else {
			put(s.Snake[i], 'o')
		}
	}

	var b strings.Builder
	for _, row := range rows {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// DebugState returns a one-glance summary of the snapshot.
func (s Snapshot) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Status: %s, Score: %d, Best: %d\n", s.Ticks, s.Status, s.Score, s.HighScore)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s, Interval: %s\n", len(s.Snake), s.Direction, s.Interval)
	fmt.Fprintf(&b, "Head: %s, Food: %s\n", s.Head(), s.Food)
	return b.String()
}
