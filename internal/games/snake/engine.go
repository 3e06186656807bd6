// Package snake implements the Neon Snake rules: the grid, the snake body,
// food placement, the per-tick rules engine and the fixed-timestep
// scheduler that drives it. It has no terminal dependencies; the platform
// layer feeds it actions and frame times and draws its snapshots.
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/neon-snake/internal/config"
)

// Status is the engine's lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Collision is what ended a game.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionWall
	CollisionSelf
)

func (c Collision) String() string {
	switch c {
	case CollisionWall:
		return "wall"
	case CollisionSelf:
		return "self"
	default:
		return "none"
	}
}

// HighScoreStore persists the best score across sessions.
// Implementations must not fail loudly: a missing or broken backing store
// reports (0, false) and drops writes.
type HighScoreStore interface {
	HighScore() (score int, ok bool)
	SetHighScore(score int)
}

// TickResult describes what one Tick did.
type TickResult struct {
	Moved        bool
	Ate          bool
	SpedUp       bool
	NewHighScore bool
	Collision    Collision
	Cleared      bool // snake filled the board
}

// Engine owns and mutates all game state. It is not safe for concurrent
// use; the host serializes every call.
type Engine struct {
	cfg     config.SnakeConfig
	grid    Grid
	rng     *rand.Rand
	spawner *FoodSpawner
	store   HighScoreStore

	startHead Cell
	startDir  Direction

	body      *Body
	food      Cell
	direction Direction
	pending   Direction // single buffered turn, last write wins

	score     int
	highScore int
	foodEaten int
	interval  time.Duration

	status    Status
	ticks     uint64
	collision Collision
	cleared   bool
}

// NewEngine creates an idle engine with the initial layout in place.
// store may be nil, in which case the high score lives only in memory.
func NewEngine(cfg config.SnakeConfig, seed int64, store HighScoreStore) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dir, _ := ParseDirection(cfg.Start.Direction)

	rng := rand.New(rand.NewSource(seed))
	grid := Grid{Width: cfg.Grid.Width, Height: cfg.Grid.Height}

	e := &Engine{
		cfg:       cfg,
		grid:      grid,
		rng:       rng,
		spawner:   NewFoodSpawner(grid, rng, cfg.SpawnAttempts()),
		store:     store,
		startHead: Cell{X: cfg.Start.X, Y: cfg.Start.Y},
		startDir:  dir,
		status:    StatusIdle,
	}
	if store != nil {
		if best, ok := store.HighScore(); ok && best > 0 {
			e.highScore = best
		}
	}
	e.reset()
	return e, nil
}

// reset restores body, food, directions, score and interval to their
// initial values. The high score survives.
func (e *Engine) reset() {
	e.body = NewBody(e.startHead, e.cfg.Start.Length, e.startDir)
	e.direction = e.startDir
	e.pending = e.startDir
	e.score = 0
	e.foodEaten = 0
	e.interval = e.cfg.Speed.Initial()
	e.ticks = 0
	e.collision = CollisionNone
	e.cleared = false

	food, ok := e.spawner.Spawn(e.body)
	e.food = food
	if !ok {
		e.cleared = true
	}
}

// Start begins the first game. Only valid from Idle.
func (e *Engine) Start() bool {
	if e.status != StatusIdle {
		return false
	}
	e.begin()
	return true
}

// Restart begins a fresh game after a game over.
func (e *Engine) Restart() bool {
	if e.status != StatusGameOver {
		return false
	}
	e.begin()
	return true
}

func (e *Engine) begin() {
	e.reset()
	e.status = StatusPlaying
	if e.cleared {
		// Start length already fills the grid.
		e.status = StatusGameOver
	}
}

// TogglePause flips between Playing and Paused. No-op otherwise.
func (e *Engine) TogglePause() bool {
	switch e.status {
	case StatusPlaying:
		e.status = StatusPaused
	case StatusPaused:
		e.status = StatusPlaying
	default:
		return false
	}
	return true
}

// RequestDirection buffers a turn for the next tick. Requests outside
// Playing and reversals of the current heading are dropped.
func (e *Engine) RequestDirection(d Direction) bool {
	if e.status != StatusPlaying {
		return false
	}
	if d == e.direction.Opposite() {
		return false
	}
	e.pending = d
	return true
}

// Tick advances the simulation by one step. It does nothing unless Playing.
func (e *Engine) Tick() TickResult {
	var res TickResult
	if e.status != StatusPlaying {
		return res
	}
	e.ticks++

	// The pending slot is validated on request, but the heading may have
	// been reset since; never apply a reversal.
	if e.pending == e.direction.Opposite() {
		e.pending = e.direction
	}
	e.direction = e.pending

	next := e.body.Head().Step(e.direction)

	if !e.grid.InBounds(next) {
		e.endGame(CollisionWall)
		res.Collision = CollisionWall
		return res
	}
	if e.body.OccupiesExceptTail(next) {
		e.endGame(CollisionSelf)
		res.Collision = CollisionSelf
		return res
	}

	grows := next == e.food
	e.body.Advance(next, grows)
	res.Moved = true

	if grows {
		e.eat(&res)
	}
	return res
}

// eat applies scoring, speed-up and respawn after the head lands on food.
func (e *Engine) eat(res *TickResult) {
	res.Ate = true
	reward := e.cfg.Scoring.FoodReward
	e.score += reward
	e.foodEaten++

	if e.score > e.highScore {
		e.highScore = e.score
		res.NewHighScore = true
		if e.store != nil {
			e.store.SetHighScore(e.score)
		}
	}

	if (e.score/reward)%e.cfg.Speed.EveryFood == 0 {
		next := max(e.cfg.Speed.Min(), e.interval-e.cfg.Speed.Decrement())
		if next < e.interval {
			e.interval = next
			res.SpedUp = true
		}
	}

	food, ok := e.spawner.Spawn(e.body)
	if !ok {
		e.food = Cell{X: -1, Y: -1}
		e.cleared = true
		e.status = StatusGameOver
		res.Cleared = true
		return
	}
	e.food = food
}

func (e *Engine) endGame(cause Collision) {
	e.collision = cause
	e.status = StatusGameOver
}

// Status returns the current lifecycle state.
func (e *Engine) Status() Status {
	return e.status
}

// Interval returns the current logical tick interval.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// HighScore returns the best score seen, including the current game.
func (e *Engine) HighScore() int {
	return e.highScore
}

// Grid returns the playfield dimensions.
func (e *Engine) Grid() Grid {
	return e.grid
}
