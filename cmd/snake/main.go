// snake is Neon Snake, the classic snake game in the terminal.
//
// Usage:
//
//	snake                     - Play (same as snake play)
//	snake play                - Play a game
//	snake scores              - Show recorded games
//	snake config              - Print the effective rules configuration
//
// Global flags:
//
//	--fps <rate>        - Display refresh rate (default: 60)
//	--seed <value>      - RNG seed for reproducible food placement
//	--db <path>         - Database path (default: ~/.neon-snake/scores.db)
//	--config <path>     - Rules YAML to use instead of the search path
//	--log-file <path>   - Log destination (default: ~/.neon-snake/snake.log)
//	--difficulty <name> - Speed preset: easy, normal, hard, fixed
//	--debug             - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-snake/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
	flagLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Neon Snake - the classic snake game in your terminal",
	Long: `Neon Snake is the classic snake game for the terminal.

Eat food to grow and score; every fifth bite the snake speeds up.
Hitting a wall or your own body ends the game.

Available commands:
  play     - Play a game (default)
  scores   - View recorded games
  config   - Print the effective rules configuration

Examples:
  snake
  snake play --seed 42
  snake scores --limit 5
  snake config > ~/.neon-snake/configs/snake.yaml`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	defaultDir := "~/" + config.AppDirName

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display refresh rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDir+"/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a rules YAML file")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", defaultDir+"/snake.log", "Path to the log file")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "difficulty", "", "Speed preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadRules loads the rules YAML and applies the difficulty preset.
func loadRules() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}
	return config.ApplyDifficulty(cfg, flagLevel)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger opens the log file. The terminal belongs to the UI, so when the
// file cannot be opened logging is discarded rather than printed.
func newLogger() (*log.Logger, func()) {
	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)

	if path := expandHome(flagLogFile); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn
}
