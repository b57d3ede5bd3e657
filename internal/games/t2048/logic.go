package t2048

import (
	"errors"
	"fmt"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

var directionNames = [...]string{DirUp: "up", DirDown: "down", DirLeft: "left", DirRight: "right"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// ErrUnknownDirection is returned by ParseDirection for an unrecognized name.
var ErrUnknownDirection = errors.New("t2048: unknown direction")

// ParseDirection converts "up", "down", "left" or "right" into a Direction.
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownDirection, s)
}

// BoardSize is the board dimension.
const BoardSize = 4

// Board is the tile grid, indexed [row][column]; 0 is an empty cell.
type Board [BoardSize][BoardSize]int

// Cell is a board coordinate.
type Cell struct{ X, Y int }

// slideRow slides and merges a single row to the left.
// A tile merges at most once per move: [4 4 8 0] becomes [8 8 0 0].
// Returns the updated row and the score gained from merges.
func slideRow(row [BoardSize]int) (result [BoardSize]int, score int) {
	writePos := 0
	merged := false // result[writePos-1] is the product of a merge

	for i := range BoardSize {
		if row[i] == 0 {
			continue
		}

		if writePos > 0 && !merged && result[writePos-1] == row[i] {
			result[writePos-1] *= 2
			score += result[writePos-1]
			merged = true
		} else {
			result[writePos] = row[i]
			writePos++
			merged = false
		}
	}

	return result, score
}

func reverseRow(row [BoardSize]int) [BoardSize]int {
	var result [BoardSize]int
	for i := range BoardSize {
		result[i] = row[BoardSize-1-i]
	}
	return result
}

// SlideLeft slides all tiles left and merges.
// Returns the new board, score gained, and whether the board changed.
func SlideLeft(board Board) (Board, int, bool) {
	var newBoard Board
	total := 0
	for y := range BoardSize {
		newRow, score := slideRow(board[y])
		newBoard[y] = newRow
		total += score
	}
	return newBoard, total, newBoard != board
}

// SlideRight slides all tiles right and merges.
func SlideRight(board Board) (Board, int, bool) {
	var newBoard Board
	total := 0
	for y := range BoardSize {
		newRow, score := slideRow(reverseRow(board[y]))
		newBoard[y] = reverseRow(newRow)
		total += score
	}
	return newBoard, total, newBoard != board
}

// SlideUp slides all tiles up and merges.
func SlideUp(board Board) (Board, int, bool) {
	slid, score, changed := SlideLeft(transpose(board))
	return transpose(slid), score, changed
}

// SlideDown slides all tiles down and merges.
func SlideDown(board Board) (Board, int, bool) {
	slid, score, changed := SlideRight(transpose(board))
	return transpose(slid), score, changed
}

func transpose(board Board) Board {
	var result Board
	for y := range BoardSize {
		for x := range BoardSize {
			result[y][x] = board[x][y]
		}
	}
	return result
}

// Slide performs a move in the given direction.
// Returns the new board, score gained, and whether the board changed.
func Slide(board Board, dir Direction) (Board, int, bool) {
	switch dir {
	case DirLeft:
		return SlideLeft(board)
	case DirRight:
		return SlideRight(board)
	case DirUp:
		return SlideUp(board)
	case DirDown:
		return SlideDown(board)
	default:
		return board, 0, false
	}
}

// EmptyCells returns the empty cells in row-major order.
func EmptyCells(board Board) []Cell {
	var cells []Cell
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
func HasPossibleMerge(board Board) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			val := board[y][x]
			if x < BoardSize-1 && board[y][x+1] == val {
				return true
			}
			if y < BoardSize-1 && board[y+1][x] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(board Board) bool {
	return len(EmptyCells(board)) > 0 || HasPossibleMerge(board)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for y := range BoardSize {
		for x := range BoardSize {
			maxVal = max(maxVal, board[y][x])
		}
	}
	return maxVal
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(board Board) bool {
	return !CanMove(board)
}
