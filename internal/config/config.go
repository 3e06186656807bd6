// Package config provides YAML-based rules configuration for Neon Snake.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SnakeConfig contains all tunable rules of the game.
type SnakeConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Start   StartConfig   `yaml:"start"`
	Speed   SpeedConfig   `yaml:"speed"`
	Scoring ScoringConfig `yaml:"scoring"`
	Food    FoodConfig    `yaml:"food"`
}

// GridConfig defines the playfield size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// StartConfig defines where the snake spawns on start and restart.
type StartConfig struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Length    int    `yaml:"length"`
	Direction string `yaml:"direction"` // up, down, left or right
}

// SpeedConfig defines the tick interval and its progression.
type SpeedConfig struct {
	InitialMS   int `yaml:"initial_ms"`
	MinMS       int `yaml:"min_ms"`
	DecrementMS int `yaml:"decrement_ms"`
	EveryFood   int `yaml:"every_food"`
}

// ScoringConfig defines points awarded.
type ScoringConfig struct {
	FoodReward int `yaml:"food_reward"`
}

// FoodConfig defines food respawn limits.
type FoodConfig struct {
	MaxSpawnAttempts int `yaml:"max_spawn_attempts"` // 0 = 4 * width * height
}

// Initial returns the starting tick interval.
func (s SpeedConfig) Initial() time.Duration {
	return time.Duration(s.InitialMS) * time.Millisecond
}

// Min returns the tick interval floor.
func (s SpeedConfig) Min() time.Duration {
	return time.Duration(s.MinMS) * time.Millisecond
}

// Decrement returns how much the interval shrinks per speed-up.
func (s SpeedConfig) Decrement() time.Duration {
	return time.Duration(s.DecrementMS) * time.Millisecond
}

// SpawnAttempts returns the random-probe budget for food respawn.
func (c SnakeConfig) SpawnAttempts() int {
	if c.Food.MaxSpawnAttempts > 0 {
		return c.Food.MaxSpawnAttempts
	}
	return 4 * c.Grid.Width * c.Grid.Height
}

// Validate checks that the configuration describes a playable game.
// All problems are reported together.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid must be positive, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Start.Length < 1 {
		errs = append(errs, fmt.Errorf("start.length must be at least 1, got %d", c.Start.Length))
	}
	if !validDirection(c.Start.Direction) {
		errs = append(errs, fmt.Errorf("start.direction %q is not one of up, down, left, right", c.Start.Direction))
	} else if c.Grid.Width > 0 && c.Grid.Height > 0 && c.Start.Length >= 1 && !c.startFits() {
		errs = append(errs, fmt.Errorf("start body (%d,%d) length %d facing %s does not fit a %dx%d grid",
			c.Start.X, c.Start.Y, c.Start.Length, c.Start.Direction, c.Grid.Width, c.Grid.Height))
	}
	if c.Speed.InitialMS <= 0 {
		errs = append(errs, fmt.Errorf("speed.initial_ms must be positive, got %d", c.Speed.InitialMS))
	}
	if c.Speed.MinMS <= 0 {
		errs = append(errs, fmt.Errorf("speed.min_ms must be positive, got %d", c.Speed.MinMS))
	}
	if c.Speed.MinMS > c.Speed.InitialMS {
		errs = append(errs, fmt.Errorf("speed.min_ms (%d) exceeds speed.initial_ms (%d)", c.Speed.MinMS, c.Speed.InitialMS))
	}
	if c.Speed.DecrementMS < 0 {
		errs = append(errs, fmt.Errorf("speed.decrement_ms must not be negative, got %d", c.Speed.DecrementMS))
	}
	if c.Speed.EveryFood <= 0 {
		errs = append(errs, fmt.Errorf("speed.every_food must be positive, got %d", c.Speed.EveryFood))
	}
	if c.Scoring.FoodReward <= 0 {
		errs = append(errs, fmt.Errorf("scoring.food_reward must be positive, got %d", c.Scoring.FoodReward))
	}
	if c.Food.MaxSpawnAttempts < 0 {
		errs = append(errs, fmt.Errorf("food.max_spawn_attempts must not be negative, got %d", c.Food.MaxSpawnAttempts))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid snake config: %w", errors.Join(errs...))
	}
	return nil
}

// startFits reports whether every initial segment lies inside the grid.
// The body trails behind the head, away from the facing direction.
func (c SnakeConfig) startFits() bool {
	dx, dy := 0, 0
	switch c.Start.Direction {
	case "up":
		dy = 1
	case "down":
		dy = -1
	case "left":
		dx = 1
	case "right":
		dx = -1
	}
	tailX := c.Start.X + dx*(c.Start.Length-1)
	tailY := c.Start.Y + dy*(c.Start.Length-1)
	inside := func(x, y int) bool {
		return x >= 0 && x < c.Grid.Width && y >= 0 && y < c.Grid.Height
	}
	return inside(c.Start.X, c.Start.Y) && inside(tailX, tailY)
}

func validDirection(d string) bool {
	switch d {
	case "up", "down", "left", "right":
		return true
	}
	return false
}
