package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-snake/internal/config"
	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/games/snake"
	"github.com/vovakirdan/neon-snake/internal/platform/tui"
	"github.com/vovakirdan/neon-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Neon Snake.

Controls:
  Arrows/WASD  - Steer
  Enter        - Start, resume or try again
  Space/P      - Pause
  R            - Restart after game over
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Examples:
  snake play
  snake play --seed 42
  snake play --difficulty hard
  snake play --config ./my-snake.yaml --debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	rules, err := loadRules()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		FrameRate: flagFPS,
		Seed:      seed,
	}

	// Open score storage; the game still works without it
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores database unavailable", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	engine, err := snake.NewEngine(rules, seed, storage.NewHighScoreSlot(store, logger))
	if err != nil {
		return err
	}
	logger.Debug("rules loaded", "config", flagConfig, "difficulty", flagLevel, "seed", seed)

	var shotDir string
	if dir := config.AppDir(); dir != "" {
		shotDir = filepath.Join(dir, "screenshots")
	}

	if err := tui.Run(snake.NewScheduler(engine), tui.Options{
		Runtime:       runtime,
		Store:         store,
		Logger:        logger,
		ScreenshotDir: shotDir,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
