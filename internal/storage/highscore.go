package storage

import (
	"github.com/charmbracelet/log"
)

// HighScoreKey is the settings key holding the best score.
const HighScoreKey = "high_score"

// HighScoreSlot exposes one settings key as the game's best-score store.
// A nil Store is allowed: reads report no value and writes are dropped.
// Errors are logged and swallowed so the game never stops on a broken disk.
type HighScoreSlot struct {
	store  *Store
	key    string
	logger *log.Logger
}

// NewHighScoreSlot creates a slot over store. logger may be nil.
func NewHighScoreSlot(store *Store, logger *log.Logger) *HighScoreSlot {
	if logger == nil {
		logger = log.Default()
	}
	return &HighScoreSlot{
		store:  store,
		key:    HighScoreKey,
		logger: logger.WithPrefix("highscore"),
	}
}

// HighScore returns the stored best score. Older databases that predate the
// settings table fall back to the best recorded game.
func (h *HighScoreSlot) HighScore() (int, bool) {
	if h.store == nil {
		return 0, false
	}

	v, ok, err := h.store.GetInt(h.key)
	if err != nil {
		h.logger.Warn("could not read high score", "error", err)
		return 0, false
	}
	if ok {
		return v, true
	}

	best, err := h.store.HighScore()
	if err != nil {
		h.logger.Warn("could not read score history", "error", err)
		return 0, false
	}
	return best, best > 0
}

// SetHighScore stores score. Failures are logged and dropped.
func (h *HighScoreSlot) SetHighScore(score int) {
	if h.store == nil {
		return
	}
	if err := h.store.SetInt(h.key, score); err != nil {
		h.logger.Warn("could not save high score", "score", score, "error", err)
		return
	}
	h.logger.Debug("high score saved", "score", score)
}
