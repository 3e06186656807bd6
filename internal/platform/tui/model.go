package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-snake/internal/core"
	"github.com/vovakirdan/neon-snake/internal/games/snake"
	"github.com/vovakirdan/neon-snake/internal/storage"
)

// helpHeight is the line below the board used for key hints when the
// terminal has a row to spare.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a play session.
type Options struct {
	Runtime       core.RuntimeConfig
	Store         *storage.Store // nil disables score history
	Logger        *log.Logger    // nil uses log.Default()
	ScreenshotDir string         // empty disables ctrl+s
}

// Model is the Bubble Tea model for one play session.
type Model struct {
	scheduler *snake.Scheduler
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	keys      KeyMap
	help      help.Model
	config    core.RuntimeConfig
	shotDir   string

	last     snake.Snapshot
	showHelp bool
	newBest  bool // current game beat the previous best
	recorded bool // current game over has been logged and saved
	quitting bool
}

// NewModel creates a session around an idle scheduler.
func NewModel(sched *snake.Scheduler, opts Options) Model {
	cfg := opts.Runtime
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = core.DefaultConfig().FrameRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	m := Model{
		scheduler: sched,
		screen:    core.NewScreen(0, 0),
		store:     opts.Store,
		logger:    logger,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		config:    cfg,
		shotDir:   opts.ScreenshotDir,
		last:      sched.Engine().Snapshot(),
	}
	m.layout()
	return m
}

// layout sizes the screen buffer, keeping a help row only if the board
// still fits above it.
func (m *Model) layout() {
	w, h := m.config.ScreenW, m.config.ScreenH
	_, fits := snake.BoardRect(w, h-helpHeight, m.last)
	m.showHelp = fits
	if fits {
		h -= helpHeight
	}
	m.screen.Resize(w, max(h, 0))
	m.help.Width = w
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("session started",
		"grid", fmt.Sprintf("%dx%d", m.last.Width, m.last.Height),
		"fps", m.config.FrameRate,
		"best", m.last.HighScore)
	return tickCmd(m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.scheduler.Stop()
		m.quitting = true
		m.logger.Info("session ended", "score", m.last.Score, "best", m.last.HighScore)
		return m, tea.Quit
	case core.ActionScreenshot:
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	before := m.last.Status
	if !m.scheduler.Handle(action) {
		return m, nil
	}
	m.last = m.scheduler.Engine().Snapshot()

	// From Idle or GameOver only a start or restart can succeed.
	if before == snake.StatusIdle || before == snake.StatusGameOver {
		m.newBest = false
		m.recorded = false
		m.logger.Info("game started", "restart", before == snake.StatusGameOver)
	}
	return m, nil
}

// handleTick feeds one refresh to the scheduler and reacts to what the
// engine did.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	f := m.scheduler.Frame(now)
	m.last = f.Snapshot

	if f.Ticked {
		if f.Tick.SpedUp {
			m.logger.Debug("speed up", "interval", f.Snapshot.Interval, "score", f.Snapshot.Score)
		}
		if f.Tick.NewHighScore && !m.newBest {
			m.newBest = true
			m.logger.Info("new high score", "score", f.Snapshot.Score)
		}
	}

	if m.last.Status == snake.StatusGameOver && !m.recorded {
		m.finishGame(m.last)
		m.recorded = true
	}

	return m, tickCmd(m.config.FrameRate)
}

// finishGame logs the result and records it once per game.
func (m *Model) finishGame(s snake.Snapshot) {
	cause := s.Collision.String()
	if s.Cleared {
		cause = "cleared"
	}
	m.logger.Info("game over", "cause", cause, "score", s.Score, "length", len(s.Snake), "ticks", s.Ticks)
	m.logger.Debug("final state\n" + s.DebugState() + s.Board())

	if m.store == nil || s.Score <= 0 {
		return
	}
	_, err := m.store.SaveScore(storage.ScoreEntry{
		Score:  s.Score,
		Length: len(s.Snake),
		Ticks:  s.Ticks,
	})
	if err != nil {
		m.logger.Warn("could not record game", "error", err)
	}
}

// saveScreenshot writes the current frame as plain text and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	if m.shotDir == "" {
		return "", fmt.Errorf("no screenshot directory")
	}
	snake.Render(m.screen, m.last)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.shotDir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Snapshot returns the state shown by the last refresh.
func (m Model) Snapshot() snake.Snapshot {
	return m.last
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snake.Render(m.screen, m.last)
	out := RenderScreen(m.screen)
	if m.showHelp {
		out += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	return out
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(sched *snake.Scheduler, opts Options) error {
	p := tea.NewProgram(
		NewModel(sched, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	sched.Stop()
	return err
}
