package snake

import (
	"fmt"

	"github.com/vovakirdan/neon-snake/internal/core"
)

const (
	hudHeight  = 2 // title line + separator
	cellWidth  = 2 // terminal columns per grid cell, keeps cells roughly square
	boardFrame = 2 // border on both sides
)

// BoardRect returns where the bordered board goes on a screen of the given
// size, and whether it fits at all.
func BoardRect(screenW, screenH int, s Snapshot) (core.Rect, bool) {
	w := s.Width*cellWidth + boardFrame
	h := s.Height + boardFrame
	if screenW < w || screenH < h+hudHeight {
		return core.Rect{}, false
	}
	return core.NewRect((screenW-w)/2, hudHeight, w, h), true
}

// Render draws a snapshot: HUD, board, snake, food and the status overlay.
func Render(dst *core.Screen, s Snapshot) {
	dst.Clear()
	renderHUD(dst, s)

	board, ok := BoardRect(dst.Width(), dst.Height(), s)
	if !ok {
		w := s.Width*cellWidth + boardFrame
		h := s.Height + boardFrame + hudHeight
		renderOverlay(dst, dst.Bounds(), core.ColorYellow,
			"Window too small", fmt.Sprintf("Resize to at least %dx%d", w, h))
		return
	}

	dst.DrawBox(board, core.ColorGray)
	renderGrid(dst, board, s)
	renderFood(dst, board, s)
	renderSnake(dst, board, s)

	switch {
	case s.Status == StatusIdle:
		renderOverlay(dst, board, core.ColorBrightCyan,
			"NEON SNAKE", "Use arrows or WASD to move", "Press Enter to start")
	case s.Status == StatusPaused:
		renderOverlay(dst, board, core.ColorBrightWhite,
			"PAUSED", "Press Space to resume")
	case s.Status == StatusGameOver && s.Cleared:
		renderOverlay(dst, board, core.ColorBrightGreen,
			"BOARD CLEARED", fmt.Sprintf("Final Score: %d", s.Score), "Press R to play again")
	case s.Status == StatusGameOver:
		renderOverlay(dst, board, core.ColorBrightRed,
			"GAME OVER", fmt.Sprintf("Final Score: %d", s.Score), "Press R to try again")
	}
}

// renderHUD draws the score line and separator.
func renderHUD(dst *core.Screen, s Snapshot) {
	left := fmt.Sprintf(" Score: %d   Best: %d   Speed: %dms", s.Score, s.HighScore, s.Interval.Milliseconds())
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	hint := "Space to Pause "
	if x := dst.Width() - len(hint); x > len(left)+1 {
		dst.DrawTextColored(x, 0, hint, core.ColorGray)
	}

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', core.ColorDarkGray)
	}
}

// cellOrigin maps a grid cell to its left screen column and row.
func cellOrigin(board core.Rect, c Cell) (int, int) {
	return board.X + 1 + c.X*cellWidth, board.Y + 1 + c.Y
}

func renderGrid(dst *core.Screen, board core.Rect, s Snapshot) {
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			sx, sy := cellOrigin(board, Cell{X: x, Y: y})
			dst.SetColored(sx, sy, '·', core.ColorDarkGray)
		}
	}
}

func renderFood(dst *core.Screen, board core.Rect, s Snapshot) {
	if s.Food.X < 0 || s.Food.Y < 0 {
		return
	}
	sx, sy := cellOrigin(board, s.Food)
	dst.SetColored(sx, sy, '●', core.ColorBrightRed)
}

func renderSnake(dst *core.Screen, board core.Rect, s Snapshot) {
	for i := len(s.Snake) - 1; i >= 0; i-- {
		color := core.ColorGreen
		if i == 0 {
			color = core.ColorBrightGreen
		}
		sx, sy := cellOrigin(board, s.Snake[i])
		for dx := 0; dx < cellWidth; dx++ {
			dst.SetColored(sx+dx, sy, '█', color)
		}
	}
}

// renderOverlay draws a centered framed message inside area.
// The first line is the title and gets the accent color.
func renderOverlay(dst *core.Screen, area core.Rect, accent core.Color, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	box := area.Centered(maxLen+6, len(lines)*2+3)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, accent)
	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = accent
		}
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColored(x, box.Y+2+i*2, l, color)
	}
}
