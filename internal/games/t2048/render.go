package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

const (
	cellWidth  = 7 // terminal columns per cell, left border included
	cellHeight = 2 // terminal rows per cell, top border included
	hudHeight  = 2
)

// tileColor picks a color per power of two, cycling past 2048.
func tileColor(v int) core.Color {
	palette := [...]core.Color{
		core.ColorWhite,        // 2
		core.ColorYellow,       // 4
		core.ColorOrange,       // 8
		core.ColorRed,          // 16
		core.ColorMagenta,      // 32
		core.ColorBlue,         // 64
		core.ColorCyan,         // 128
		core.ColorGreen,        // 256
		core.ColorBrightYellow, // 512
		core.ColorBrightRed,    // 1024
	}
	n := 0
	for v > 2 {
		v >>= 1
		n++
	}
	return palette[n%len(palette)]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(g.screenH/2, "Window too small")
		dst.DrawTextCentered(g.screenH/2+1, "Please resize terminal")
		return
	}

	boardW := BoardSize*cellWidth + 1
	boardH := BoardSize*cellHeight + 1
	boardX := (g.screenW - boardW) / 2
	boardY := (g.screenH-boardH-hudHeight)/2 + hudHeight

	g.renderHUD(dst, boardX, boardY-hudHeight, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlay(dst, core.NewRect(boardX, boardY, boardW, boardH))
	dst.DrawTextCenteredColor(boardY+boardH, "Arrows move  P pause  R restart", core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, x, y, w int) {
	dst.DrawTextColor(x, y, "2048", core.ColorBrightYellow)
	score := fmt.Sprintf("Score %d", g.score)
	dst.DrawText(x+w-len(score), y, score)
	dst.DrawTextColor(x, y+1, fmt.Sprintf("Goal %d  Max %d", g.cfg.Target, MaxTile(g.board)), core.ColorGray)
}

// gridRune returns the box-drawing character at grid intersection (x, y).
func gridRune(x, y int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == BoardSize:
		return '┐'
	case y == BoardSize && x == 0:
		return '└'
	case y == BoardSize && x == BoardSize:
		return '┘'
	case y == 0:
		return '┬'
	case y == BoardSize:
		return '┴'
	case x == 0:
		return '├'
	case x == BoardSize:
		return '┤'
	default:
		return '┼'
	}
}

func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range BoardSize + 1 {
		for x := range BoardSize + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight
			dst.SetColor(px, py, gridRune(x, y), core.ColorGray)
			if x < BoardSize {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < BoardSize {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for y := range BoardSize {
		for x := range BoardSize {
			val := g.board[y][x]
			if val == 0 {
				continue
			}
			s := strconv.Itoa(val)
			pad := max(0, (cellWidth-1-len(s))/2)
			dst.DrawTextColor(boardX+x*cellWidth+1+pad, boardY+y*cellHeight+1, s, tileColor(val))
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen, frame core.Rect) {
	var lines []string
	switch {
	case g.won:
		lines = []string{"YOU WIN!", fmt.Sprintf("Score %d", g.score), "R restart"}
	case g.gameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("Max tile %d", MaxTile(g.board)), "R restart"}
	case g.paused:
		lines = []string{"PAUSED", "P to resume"}
	default:
		return
	}

	midY := frame.Y + frame.H/2 - len(lines)/2
	for i, line := range lines {
		x := frame.X + (frame.W-len(line))/2
		dst.DrawRect(core.NewRect(frame.X+1, midY+i, frame.W-2, 1), ' ', core.ColorDefault)
		dst.DrawTextColor(x, midY+i, line, core.ColorBrightYellow)
	}
}
