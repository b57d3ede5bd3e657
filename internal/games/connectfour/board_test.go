package connectfour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse builds a board from six rows of seven characters: '.' empty,
// 'R' player 1, 'Y' player 2. Row 0 is the top.
func parse(t *testing.T, rows ...string) Board {
	t.Helper()
	require.Len(t, rows, Rows)
	var b Board
	for r, row := range rows {
		require.Len(t, row, Cols, "row %d", r)
		for c, ch := range row {
			switch ch {
			case 'R':
				b[r][c] = Player1
			case 'Y':
				b[r][c] = Player2
			}
		}
	}
	return b
}

func TestAvailableColumns(t *testing.T) {
	b := parse(t,
		"R.Y....",
		"Y.R....",
		"R.Y....",
		"Y.R....",
		"R.Y....",
		"Y.R....",
	)
	assert.Equal(t, []int{1, 3, 4, 5, 6}, AvailableColumns(b))
	assert.False(t, ColumnOpen(b, 0))
	assert.True(t, ColumnOpen(b, 1))
	assert.False(t, ColumnOpen(b, -1))
	assert.False(t, ColumnOpen(b, Cols))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, AvailableColumns(Board{}))
}

func TestAvailableRow(t *testing.T) {
	var b Board
	assert.Equal(t, Rows-1, AvailableRow(b, 3))

	b[5][3] = Player1
	b[4][3] = Player2
	assert.Equal(t, 3, AvailableRow(b, 3))

	for r := range Rows {
		b[r][0] = Player1
	}
	assert.Equal(t, -1, AvailableRow(b, 0))
	assert.Equal(t, -1, AvailableRow(b, 7))
	assert.Equal(t, -1, AvailableRow(b, -1))
}

func TestDropInColumn(t *testing.T) {
	var b Board
	next, ok := DropInColumn(b, 2, Player1)
	require.True(t, ok)
	assert.Equal(t, Player1, next[5][2])
	assert.Equal(t, Board{}, b, "input board must be untouched")

	next, ok = DropInColumn(next, 2, Player2)
	require.True(t, ok)
	assert.Equal(t, Player2, next[4][2])

	full := next
	for r := range Rows {
		full[r][2] = Player1
	}
	same, ok := DropInColumn(full, 2, Player2)
	assert.False(t, ok)
	assert.Equal(t, full, same)
}

func TestHasWinDirections(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  int
	}{
		{"horizontal", parse(t,
			".......",
			".......",
			".......",
			".......",
			"YYY....",
			"RRRR...",
		), Player1},
		{"vertical", parse(t,
			".......",
			".......",
			"......Y",
			"R.....Y",
			"R.....Y",
			"RR....Y",
		), Player2},
		{"diagonal down-right", parse(t,
			".......",
			".......",
			"R......",
			"YR.....",
			"YYR....",
			"YRYR...",
		), Player1},
		{"diagonal up-right", parse(t,
			".......",
			".......",
			"......Y",
			".....YR",
			"....YRR",
			"...YRRY",
		), Player2},
		{"none", parse(t,
			".......",
			".......",
			".......",
			".......",
			"YYY....",
			"RRR....",
		), Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Winner(tt.board))
			if tt.want != Empty {
				assert.True(t, HasWin(tt.board, tt.want))
				assert.False(t, HasWin(tt.board, Opponent(tt.want)))
				assert.Len(t, WinningCells(tt.board, tt.want), 4)
			}
		})
	}
}

func TestWinnerChecksPlayerOneFirst(t *testing.T) {
	b := parse(t,
		".......",
		".......",
		".......",
		".......",
		"YYYY...",
		"RRRR...",
	)
	assert.Equal(t, Player1, Winner(b))
}

func TestWinningLineIncludesDroppedToken(t *testing.T) {
	b := parse(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"RRRRR..",
	)

	line := WinningLine(b, 5, 4, Player1)
	require.Len(t, line, 4)
	assert.Contains(t, line, Cell{Row: 5, Col: 4})
	assert.Equal(t, Cell{Row: 5, Col: 1}, line[0])

	line = WinningLine(b, 5, 0, Player1)
	assert.Equal(t, []Cell{{5, 0}, {5, 1}, {5, 2}, {5, 3}}, line)

	assert.Nil(t, WinningLine(b, 5, 4, Player2))
	assert.Nil(t, WinningLine(b, 4, 4, Player1))
	assert.Nil(t, WinningLine(b, -1, 0, Player1))
}

func TestIsFullAndCount(t *testing.T) {
	var b Board
	assert.False(t, IsFull(b))

	p := Player1
	for c := range Cols {
		for r := range Rows {
			b[r][c] = p
			p = Opponent(p)
		}
	}
	assert.True(t, IsFull(b))
	assert.Empty(t, AvailableColumns(b))
	assert.Equal(t, 21, Count(b, Player1))
	assert.Equal(t, 21, Count(b, Player2))
}

func TestSettled(t *testing.T) {
	assert.True(t, Settled(Board{}))

	var floating Board
	floating[3][0] = Player1
	assert.False(t, Settled(floating))

	var bad Board
	bad[5][0] = 3
	assert.False(t, Settled(bad))
}

func TestKeyIsUniquePerPosition(t *testing.T) {
	seen := map[uint64]Board{}
	var walk func(b Board, player, depth int)
	walk = func(b Board, player, depth int) {
		k := Key(b)
		if prev, ok := seen[k]; ok {
			require.Equal(t, prev, b, "key collision")
		}
		seen[k] = b
		if depth == 0 {
			return
		}
		for _, c := range AvailableColumns(b) {
			next, _ := DropInColumn(b, c, player)
			walk(next, Opponent(player), depth-1)
		}
	}
	walk(Board{}, Player1, 4)

	assert.Equal(t, uint64(0x40810204081), Key(Board{}))
	assert.Greater(t, len(seen), 7*7*7)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Board{}))

	var b Board
	b[5][0], b[5][1] = Player1, Player1
	assert.ErrorIs(t, Validate(b), ErrInvalidBoard)

	var floating Board
	floating[0][0] = Player1
	assert.ErrorIs(t, Validate(floating), ErrInvalidBoard)
}

func TestBoardFromRows(t *testing.T) {
	_, err := BoardFromRows([][]int{{0}})
	assert.ErrorIs(t, err, ErrInvalidBoard)

	grid := Board{}.Grid()
	grid[5][3] = Player2
	b, err := BoardFromRows(grid)
	require.NoError(t, err)
	assert.Equal(t, Player2, b[5][3])
	assert.Equal(t, grid, b.Grid())

	grid[2] = grid[2][:3]
	_, err = BoardFromRows(grid)
	assert.ErrorIs(t, err, ErrInvalidBoard)
}
