package connectfour

// Board dimensions.
const (
	Rows = 6
	Cols = 7

	centerCol = Cols / 2
)

// Cell values.
const (
	Empty   = 0
	Player1 = 1
	Player2 = 2
)

// Board is the grid indexed [row][col]. Row 0 is the top.
// Tokens obey gravity: no token sits above an empty cell.
type Board [Rows][Cols]int

// Cell is a board coordinate.
type Cell struct {
	Row, Col int
}

// directions scanned by the win check: horizontal, vertical,
// diagonal down-right and diagonal up-right.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

// Opponent returns the other player.
func Opponent(p int) int {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// ValidPlayer reports whether p is 1 or 2.
func ValidPlayer(p int) bool {
	return p == Player1 || p == Player2
}

// AvailableColumns returns, left to right, the columns whose top cell is empty.
func AvailableColumns(b Board) []int {
	cols := make([]int, 0, Cols)
	for c := range Cols {
		if b[0][c] == Empty {
			cols = append(cols, c)
		}
	}
	return cols
}

// ColumnOpen reports whether a token can still be dropped in col.
func ColumnOpen(b Board, col int) bool {
	return col >= 0 && col < Cols && b[0][col] == Empty
}

// AvailableRow returns the lowest empty row of col, or -1 if the column is full.
func AvailableRow(b Board, col int) int {
	if col < 0 || col >= Cols {
		return -1
	}
	for r := Rows - 1; r >= 0; r-- {
		if b[r][col] == Empty {
			return r
		}
	}
	return -1
}

// DropInColumn returns a copy of the board with player's token in the lowest
// empty row of col. ok is false for a full or out-of-range column.
func DropInColumn(b Board, col, player int) (next Board, ok bool) {
	row := AvailableRow(b, col)
	if row < 0 {
		return b, false
	}
	next = b
	next[row][col] = player
	return next, true
}

func lineAt(b Board, row, col, dr, dc, player int) bool {
	for k := range 4 {
		r := row + dr*k
		c := col + dc*k
		if r < 0 || r >= Rows || c < 0 || c >= Cols || b[r][c] != player {
			return false
		}
	}
	return true
}

// HasWin reports whether player has four in a row anywhere on the board.
func HasWin(b Board, player int) bool {
	return len(WinningCells(b, player)) > 0
}

// WinningCells returns the first four-in-a-row of player found in scan order,
// or nil if there is none.
func WinningCells(b Board, player int) []Cell {
	for r := range Rows {
		for c := range Cols {
			for _, d := range directions {
				if !lineAt(b, r, c, d[0], d[1], player) {
					continue
				}
				cells := make([]Cell, 4)
				for k := range 4 {
					cells[k] = Cell{Row: r + d[0]*k, Col: c + d[1]*k}
				}
				return cells
			}
		}
	}
	return nil
}

// Winner returns the player with four in a row, checking player 1 first,
// or Empty when neither has one.
func Winner(b Board) int {
	if HasWin(b, Player1) {
		return Player1
	}
	if HasWin(b, Player2) {
		return Player2
	}
	return Empty
}

// IsFull reports whether every column is full.
func IsFull(b Board) bool {
	for c := range Cols {
		if b[0][c] == Empty {
			return false
		}
	}
	return true
}

// Count returns how many tokens player has on the board.
func Count(b Board, player int) int {
	n := 0
	for r := range Rows {
		for c := range Cols {
			if b[r][c] == player {
				n++
			}
		}
	}
	return n
}

// Settled reports whether every cell holds 0, 1 or 2 and no token floats
// above an empty cell.
func Settled(b Board) bool {
	for c := range Cols {
		seenEmpty := false
		for r := Rows - 1; r >= 0; r-- {
			switch v := b[r][c]; {
			case v == Empty:
				seenEmpty = true
			case v != Player1 && v != Player2:
				return false
			case seenEmpty:
				return false
			}
		}
	}
	return true
}

// Key packs a settled board into 49 bits: 7 bits per column holding one bit
// per token (set for player 1) plus a marker bit just above the top token.
// Boards that are not Settled do not have a unique key.
func Key(b Board) uint64 {
	var key uint64
	for c := range Cols {
		var col uint64
		h := 0
		for r := Rows - 1; r >= 0 && b[r][c] != Empty; r-- {
			if b[r][c] == Player1 {
				col |= 1 << h
			}
			h++
		}
		col |= 1 << h
		key |= col << (7 * c)
	}
	return key
}

// WinningLine returns four connected cells of player that include the token
// at (row, col), or nil. It only looks along lines through that cell, so it
// is the cheap check after a single drop.
func WinningLine(b Board, row, col, player int) []Cell {
	if row < 0 || row >= Rows || col < 0 || col >= Cols || b[row][col] != player {
		return nil
	}
	for _, d := range directions {
		// Walk back to the first connected cell, then collect forward.
		r, c := row, col
		for k := 1; k < 4; k++ {
			pr, pc := row-d[0]*k, col-d[1]*k
			if pr < 0 || pr >= Rows || pc < 0 || pc >= Cols || b[pr][pc] != player {
				break
			}
			r, c = pr, pc
		}

		var line []Cell
		for r >= 0 && r < Rows && c >= 0 && c < Cols && b[r][c] == player {
			line = append(line, Cell{Row: r, Col: c})
			r += d[0]
			c += d[1]
		}
		if len(line) < 4 {
			continue
		}
		// Prefer the first window of four that contains the dropped token.
		for i := 0; i+4 <= len(line); i++ {
			for _, cell := range line[i : i+4] {
				if cell.Row == row && cell.Col == col {
					return line[i : i+4]
				}
			}
		}
	}
	return nil
}
