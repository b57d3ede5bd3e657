package flappy

import (
	"fmt"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

// minFieldH is the fewest terminal rows the world is squeezed into.
const minFieldH = 16

// Visual characters for rendering
const (
	birdChar   = '▓'
	beakChar   = '▶'
	pipeChar   = '█'
	groundChar = '═'
)

// cellX maps a world x to a field column.
func (g *Game) cellX(x float64) int {
	return int(x / g.cfg.Field.Width * float64(g.fieldW))
}

// cellY maps a world y to a field row.
func (g *Game) cellY(y float64) int {
	return int(y / g.cfg.Field.Height * float64(g.fieldH))
}

// worldX is the world x at the center of field column c.
func (g *Game) worldX(c int) float64 {
	return (float64(c) + 0.5) * g.cfg.Field.Width / float64(g.fieldW)
}

// worldY is the world y at the center of field row r.
func (g *Game) worldY(r int) float64 {
	return (float64(r) + 0.5) * g.cfg.Field.Height / float64(g.fieldH)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(g.screenH/2, "Window too small")
		dst.DrawTextCentered(g.screenH/2+1, "Please resize terminal")
		return
	}

	frame := core.NewRect((g.screenW-g.fieldW-2)/2, 1, g.fieldW+2, g.fieldH+2)
	ox, oy := frame.X+1, frame.Y+1

	dst.DrawTextColor(frame.X, 0, fmt.Sprintf("Score %d", g.score), core.ColorBrightYellow)
	best := fmt.Sprintf("Best %d", g.Best())
	dst.DrawText(frame.Right()-len(best), 0, best)
	dst.DrawBox(frame, core.ColorGray)
	for x := frame.X + 1; x < frame.Right()-1; x++ {
		dst.SetColor(x, frame.Bottom()-1, groundChar, core.ColorOrange)
	}

	g.renderPipes(dst, ox, oy)
	g.renderBird(dst, ox, oy)
	g.renderOverlay(dst, frame)
}

func (g *Game) renderPipes(dst *core.Screen, ox, oy int) {
	o := g.cfg.Obstacles
	for _, p := range g.pipes.Pipes() {
		for c := max(0, g.cellX(p.X)); c < g.fieldW; c++ {
			wx := g.worldX(c)
			if wx >= p.X+o.PipeWidth {
				break
			}
			if wx < p.X {
				continue
			}
			for r := range g.fieldH {
				if wy := g.worldY(r); wy < p.GapTop || wy > p.GapTop+o.PipeGap {
					dst.SetColor(ox+c, oy+r, pipeChar, core.ColorGreen)
				}
			}
		}
	}
}

func (g *Game) renderBird(dst *core.Screen, ox, oy int) {
	size := g.cfg.Player.Size
	x0, x1 := g.cellX(g.cfg.Player.X), g.cellX(g.cfg.Player.X+size)
	y0, y1 := g.cellY(g.birdY), g.cellY(g.birdY+size)
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)

	color := core.ColorBrightYellow
	if g.gameOver {
		color = core.ColorBrightRed
	}
	for y := y0; y < min(y1, g.fieldH); y++ {
		for x := x0; x < x1; x++ {
			r := birdChar
			if x == x1-1 {
				r = beakChar
			}
			dst.SetColor(ox+x, oy+y, r, color)
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen, frame core.Rect) {
	var lines []string
	switch {
	case g.gameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("Score %d", g.score), "Space to fly again"}
	case !g.running:
		lines = []string{"FLAPPY BIRD", "Space to start"}
	case g.paused:
		lines = []string{"PAUSED", "P to resume"}
	default:
		return
	}

	midY := frame.Y + frame.H/3
	for i, line := range lines {
		dst.DrawRect(core.NewRect(frame.X+1, midY+i, frame.W-2, 1), ' ', core.ColorDefault)
		dst.DrawTextColor(frame.X+(frame.W-len(line))/2, midY+i, line, core.ColorBrightYellow)
	}
}
