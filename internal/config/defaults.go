package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in rules: a 30x20 grid, a three cell
// snake at (10,15) heading up, 150ms steps sped up by 5ms every fifth food
// down to 50ms, and 10 points per food.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:  30,
			Height: 20,
		},
		Start: StartConfig{
			X:         10,
			Y:         15,
			Length:    3,
			Direction: "up",
		},
		Speed: SpeedConfig{
			InitialMS:   150,
			MinMS:       50,
			DecrementMS: 5,
			EveryFood:   5,
		},
		Scoring: ScoringConfig{
			FoodReward: 10,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
