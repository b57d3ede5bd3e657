package connectfour

import (
	"errors"
	"fmt"
)

// Validation errors returned to callers that accept boards from outside,
// such as the HTTP API. The search itself never fails.
var (
	ErrInvalidBoard      = errors.New("connectfour: invalid board")
	ErrInvalidPlayer     = errors.New("connectfour: player must be 1 or 2")
	ErrUnknownDifficulty = errors.New("connectfour: unknown difficulty")
	ErrColumnFull        = errors.New("connectfour: column is full")
)

// Validate checks that b is a position reachable in a real game: only 0/1/2
// values, no floating tokens and a token count consistent with alternating
// turns.
func Validate(b Board) error {
	if !Settled(b) {
		return fmt.Errorf("%w: cells must be 0, 1 or 2 with no floating tokens", ErrInvalidBoard)
	}
	diff := Count(b, Player1) - Count(b, Player2)
	if diff < -1 || diff > 1 {
		return fmt.Errorf("%w: token counts differ by %d", ErrInvalidBoard, diff)
	}
	return nil
}

// BoardFromRows converts a row-major slice grid into a Board.
func BoardFromRows(rows [][]int) (Board, error) {
	var b Board
	if len(rows) != Rows {
		return b, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, Rows, len(rows))
	}
	for r, row := range rows {
		if len(row) != Cols {
			return b, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(row), Cols)
		}
		copy(b[r][:], row)
	}
	return b, nil
}

// Grid returns the board as a row-major slice grid.
func (b Board) Grid() [][]int {
	out := make([][]int, Rows)
	for r := range Rows {
		out[r] = append([]int(nil), b[r][:]...)
	}
	return out
}
