package config

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Difficulty presets.
const (
	DifficultyEasy   = "easy"   // start at the configured initial speed
	DifficultyNormal = "normal" // start 30% of the way to the floor
	DifficultyHard   = "hard"   // start 70% of the way to the floor
	DifficultyFixed  = "fixed"  // configured initial speed, never speeds up
)

// difficultyLevels is how far along the initial..min range each preset starts.
var difficultyLevels = map[string]float64{
	DifficultyEasy:   0.0,
	DifficultyNormal: 0.3,
	DifficultyHard:   0.7,
	DifficultyFixed:  0.0,
}

// Difficulties lists the accepted preset names.
func Difficulties() []string {
	names := make([]string, 0, len(difficultyLevels))
	for name := range difficultyLevels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyDifficulty returns cfg with the named preset applied to its speed
// curve. The floor and the food rules are left alone. An empty preset
// returns cfg unchanged.
func ApplyDifficulty(cfg SnakeConfig, preset string) (SnakeConfig, error) {
	preset = strings.ToLower(strings.TrimSpace(preset))
	if preset == "" {
		return cfg, nil
	}

	level, ok := difficultyLevels[preset]
	if !ok {
		return SnakeConfig{}, fmt.Errorf("config: unknown difficulty %q (want one of %s)",
			preset, strings.Join(Difficulties(), ", "))
	}

	span := float64(cfg.Speed.InitialMS - cfg.Speed.MinMS)
	cfg.Speed.InitialMS -= int(math.Round(clampF(level, 0, 1) * span))
	if preset == DifficultyFixed {
		cfg.Speed.DecrementMS = 0
	}

	if err := cfg.Validate(); err != nil {
		return SnakeConfig{}, err
	}
	return cfg, nil
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
