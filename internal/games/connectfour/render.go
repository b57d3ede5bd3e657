package connectfour

import (
	"fmt"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

const (
	cellW      = 3 // terminal columns per slot
	panelWidth = 20
	boardW     = Cols*cellW + 2
	boardH     = Rows + 2
	layoutH    = boardH + 6

	minScreenW = boardW + 2 + panelWidth
	minScreenH = layoutH
)

const (
	tokenChar  = '●'
	emptyChar  = '·'
	cursorChar = '▼'
	winChar    = '◆'
)

// playerColor returns the token color: player 1 red, player 2 yellow.
func playerColor(p int) core.Color {
	switch p {
	case Player1:
		return core.ColorRed
	case Player2:
		return core.ColorYellow
	}
	return core.ColorGray
}

func playerName(p int) string {
	if p == Player2 {
		return "Yellow"
	}
	return "Red"
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(g.screenH/2, "Window too small")
		dst.DrawTextCentered(g.screenH/2+1, "Please resize terminal")
		return
	}

	area := core.CenterIn(g.screenW, g.screenH, boardW+2+panelWidth, layoutH)
	dst.DrawTextColor(area.X, area.Y, "CONNECT FOUR", core.ColorBrightYellow)

	frame := core.NewRect(area.X, area.Y+3, boardW, boardH)
	g.renderCursor(dst, frame.X+1, area.Y+2)
	dst.DrawBox(frame, core.ColorBlue)
	g.renderBoard(dst, frame.X+1, frame.Y+1)
	g.renderPanel(dst, frame.Right()+2, area.Y+2)

	statusColor := playerColor(g.current)
	if g.over() {
		statusColor = core.ColorBrightYellow
	}
	dst.DrawTextColor(area.X, frame.Bottom()+1, g.status(), statusColor)
	if g.paused {
		dst.DrawTextColor(area.X, frame.Bottom()+2, "PAUSED - P to resume", core.ColorBrightYellow)
	}
}

func (g *Game) renderCursor(dst *core.Screen, ox, y int) {
	if g.over() || g.cpuTurn() {
		return
	}
	dst.SetColor(ox+g.cursor*cellW+1, y, cursorChar, playerColor(g.current))
}

func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	winning := make(map[Cell]bool, len(g.winCells))
	for _, c := range g.winCells {
		winning[c] = true
	}

	for r := range Rows {
		for c := range Cols {
			x := ox + c*cellW + 1
			switch p := g.board[r][c]; {
			case p == Empty:
				dst.SetColor(x, oy+r, emptyChar, core.ColorGray)
			case winning[Cell{Row: r, Col: c}]:
				dst.SetColor(x, oy+r, winChar, core.ColorBrightYellow)
			default:
				dst.SetColor(x, oy+r, tokenChar, playerColor(p))
			}
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	mode := "Hot-seat"
	if g.vsCPU {
		mode = fmt.Sprintf("vs CPU (%s)", g.difficulty)
	}
	dst.DrawText(x, y, mode)
	if g.vsCPU {
		dst.DrawTextColor(x, y+1, "You: "+playerName(g.human), playerColor(g.human))
	}

	dst.DrawText(x, y+3, "Score")
	dst.DrawTextColor(x, y+4, fmt.Sprintf("Red    %d", g.scores.Player1), core.ColorRed)
	dst.DrawTextColor(x, y+5, fmt.Sprintf("Yellow %d", g.scores.Player2), core.ColorYellow)
	dst.DrawText(x, y+6, fmt.Sprintf("Draws  %d", g.scores.Draws))

	dst.DrawTextColor(x, y+8, "←→ column", core.ColorGray)
	dst.DrawTextColor(x, y+9, "Space/Enter drop", core.ColorGray)
	dst.DrawTextColor(x, y+10, "U undo R restart", core.ColorGray)
}
