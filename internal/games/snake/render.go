package snake

import (
	"fmt"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

const cellW = 2 // terminal columns per field cell

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(g.screenH/2, "Window too small")
		dst.DrawTextCentered(g.screenH/2+1, "Please resize terminal")
		return
	}

	n := g.cfg.GridSize
	frame := core.CenterIn(g.screenW, g.screenH, n*cellW+2, n+2)
	ox, oy := frame.X+1, frame.Y+1

	dst.DrawTextColor(frame.X, frame.Y-1, "SNAKE RELAX", core.ColorBrightYellow)
	score := fmt.Sprintf("Score %d", g.score)
	dst.DrawText(frame.Right()-len(score), frame.Y-1, score)
	dst.DrawBox(frame, core.ColorCyan)

	for y := range n {
		for x := range n {
			if (x+y)%2 == 0 {
				dst.SetColor(ox+x*cellW+1, oy+y, '·', core.ColorGray)
			}
		}
	}

	if g.apple.X >= 0 {
		dst.DrawTextColor(ox+g.apple.X*cellW, oy+g.apple.Y, "()", core.ColorRed)
	}

	body, head := core.ColorGreen, core.ColorBrightYellow
	if g.resetting {
		body, head = core.ColorGray, core.ColorGray
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		c := body
		if i == 0 {
			c = head
		}
		s := g.snake[i]
		dst.DrawTextColor(ox+s.X*cellW, oy+s.Y, "██", c)
	}

	dst.DrawTextCenteredColor(frame.Bottom(), "Arrows/WASD steer  P pause  R restart", core.ColorGray)

	if g.paused {
		mid := frame.Y + frame.H/2
		dst.DrawRect(core.NewRect(frame.X+1, mid, frame.W-2, 1), ' ', core.ColorDefault)
		dst.DrawTextCenteredColor(mid, "PAUSED  P to resume", core.ColorBrightYellow)
	}
}
