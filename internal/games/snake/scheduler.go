package snake

import (
	"time"

	"github.com/vovakirdan/neon-snake/internal/core"
)

// Frame is what one display refresh produced.
type Frame struct {
	Snapshot Snapshot
	Ticked   bool       // whether the engine stepped this frame
	Tick     TickResult // valid when Ticked
}

// Scheduler drives the engine from a display refresh of arbitrary rate at
// the engine's own logical interval. It is the only way the host touches
// the engine.
type Scheduler struct {
	engine      *Engine
	accumulator time.Duration
	last        time.Time
	stopped     bool
}

// NewScheduler wraps an engine.
func NewScheduler(e *Engine) *Scheduler {
	return &Scheduler{engine: e}
}

// Engine returns the driven engine.
func (s *Scheduler) Engine() *Engine {
	return s.engine
}

// Frame handles one display refresh at wall time now.
// The first call only establishes the reference time.
func (s *Scheduler) Frame(now time.Time) Frame {
	var delta time.Duration
	if !s.last.IsZero() {
		delta = max(now.Sub(s.last), 0)
	}
	s.last = now
	return s.Advance(delta)
}

// Advance adds delta to the accumulator and steps the engine at most once.
// When the accumulator reaches the interval it is reset to zero rather than
// reduced, so a long stall costs one step instead of a burst of them.
// Time only accumulates while Playing.
func (s *Scheduler) Advance(delta time.Duration) Frame {
	var f Frame
	if !s.stopped && s.engine.Status() == StatusPlaying {
		s.accumulator += delta
		if s.accumulator >= s.engine.Interval() {
			f.Tick = s.engine.Tick()
			f.Ticked = true
			s.accumulator = 0
		}
	}
	f.Snapshot = s.engine.Snapshot()
	return f
}

// Handle applies one input action. It reports whether the game state
// changed. Quit and Screenshot belong to the host and are ignored here.
func (s *Scheduler) Handle(a core.Action) bool {
	if s.stopped {
		return false
	}
	e := s.engine

	switch a {
	case core.ActionUp:
		return e.RequestDirection(DirUp)
	case core.ActionDown:
		return e.RequestDirection(DirDown)
	case core.ActionLeft:
		return e.RequestDirection(DirLeft)
	case core.ActionRight:
		return e.RequestDirection(DirRight)
	case core.ActionPause:
		return e.TogglePause()
	case core.ActionRestart:
		return s.begin(e.Restart)
	case core.ActionConfirm:
		switch e.Status() {
		case StatusIdle:
			return s.begin(e.Start)
		case StatusGameOver:
			return s.begin(e.Restart)
		case StatusPaused:
			return e.TogglePause()
		}
	}
	return false
}

func (s *Scheduler) begin(transition func() bool) bool {
	if !transition() {
		return false
	}
	s.accumulator = 0
	return true
}

// Stop detaches the scheduler: later frames and actions leave the engine
// untouched.
func (s *Scheduler) Stop() {
	s.stopped = true
}

// Stopped reports whether Stop was called.
func (s *Scheduler) Stopped() bool {
	return s.stopped
}
