package tetris

import (
	"fmt"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

const (
	cellW          = 2 // terminal columns per board cell
	sidePanelWidth = 14
)

// Visual characters for rendering
const (
	blockChar = '█'
	ghostChar = '░'
	emptyChar = '·'
)

var typeColors = [...]core.Color{
	None: core.ColorGray,
	I:    core.ColorCyan,
	O:    core.ColorYellow,
	T:    core.ColorMagenta,
	S:    core.ColorGreen,
	Z:    core.ColorRed,
	J:    core.ColorBlue,
	L:    core.ColorOrange,
}

// ColorOf returns the display color of a tetromino.
func ColorOf(t Type) core.Color {
	if int(t) >= len(typeColors) {
		return core.ColorDefault
	}
	return typeColors[t]
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(g.screenH/2, "Window too small")
		dst.DrawTextCentered(g.screenH/2+1, "Please resize terminal")
		return
	}

	boardW := BoardWidth*cellW + 2
	boardH := BoardHeight + 2
	totalW := boardW + 1 + sidePanelWidth
	originX := (g.screenW - totalW) / 2
	originY := (g.screenH - boardH) / 2

	frame := core.NewRect(originX, originY, boardW, boardH)
	dst.DrawBox(frame, core.ColorGray)

	g.renderBoard(dst, frame.X+1, frame.Y+1)
	g.renderPanel(dst, frame.Right()+1, frame.Y)
	g.renderOverlay(dst, frame)
}

func drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellW {
		dst.SetColor(x+i, y, r, c)
	}
}

func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	for y := range BoardHeight {
		for x := range BoardWidth {
			sx := ox + x*cellW
			if t := g.board[y][x]; t != None {
				drawCell(dst, sx, oy+y, blockChar, ColorOf(t))
			} else {
				dst.SetColor(sx, oy+y, ' ', core.ColorDefault)
				dst.SetColor(sx+1, oy+y, emptyChar, core.ColorGray)
			}
		}
	}

	if g.gameOver {
		return
	}

	if g.cfg.Ghost {
		g.renderPiece(dst, ox, oy, g.current.Type, g.current.Rotation, g.Ghost(), ghostChar, core.ColorGray)
	}
	g.renderPiece(dst, ox, oy, g.current.Type, g.current.Rotation, g.current.Pos, blockChar, ColorOf(g.current.Type))
}

// renderPiece draws the visible cells of a piece; rows above the board are skipped.
func (g *Game) renderPiece(dst *core.Screen, ox, oy int, t Type, rotation int, pos Position, r rune, c core.Color) {
	shape := Shape(t, rotation)
	for row := range 4 {
		for col := range 4 {
			if !shape[row][col] {
				continue
			}
			x, y := pos.X+col, pos.Y+row
			if y < 0 || y >= BoardHeight || x < 0 || x >= BoardWidth {
				continue
			}
			drawCell(dst, ox+x*cellW, oy+y, r, c)
		}
	}
}

// renderPreview draws a piece in rotation 0 inside a small 4x2 box.
func renderPreview(dst *core.Screen, x, y int, t Type) {
	if t == None {
		dst.DrawTextColor(x, y, "  --", core.ColorGray)
		return
	}
	shape := Shape(t, 0)
	for row := range 2 {
		for col := range 4 {
			if shape[row][col] {
				drawCell(dst, x+col*cellW, y+row, blockChar, ColorOf(t))
			}
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	dst.DrawTextColor(x, y+1, "TETRIS", core.ColorBrightYellow)

	dst.DrawText(x, y+3, "Next")
	renderPreview(dst, x, y+4, g.next)

	holdLabel := "Hold"
	if !g.canHold {
		holdLabel = "Hold (used)"
	}
	dst.DrawText(x, y+7, holdLabel)
	renderPreview(dst, x, y+8, g.hold)

	dst.DrawText(x, y+11, fmt.Sprintf("Score %d", g.score))
	dst.DrawText(x, y+12, fmt.Sprintf("Lines %d", g.lines))
	dst.DrawText(x, y+13, fmt.Sprintf("Level %d", g.level))

	dst.DrawTextColor(x, y+15, "←→ move", core.ColorGray)
	dst.DrawTextColor(x, y+16, "↑/X Z rotate", core.ColorGray)
	dst.DrawTextColor(x, y+17, "↓ soft drop", core.ColorGray)
	dst.DrawTextColor(x, y+18, "Space hard", core.ColorGray)
	dst.DrawTextColor(x, y+19, "C hold P pause", core.ColorGray)
}

func (g *Game) renderOverlay(dst *core.Screen, frame core.Rect) {
	var lines []string
	switch {
	case g.gameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("Score %d", g.score), "R restart"}
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
