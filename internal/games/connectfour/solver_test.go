package connectfour

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand returns scripted values so tier behavior is predictable.
type fixedRand struct {
	float float64
	n     int
}

func (r fixedRand) Intn(n int) int   { return r.n % n }
func (r fixedRand) Float64() float64 { return r.float }

func TestParseDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		got, err := ParseDifficulty(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	got, err := ParseDifficulty("  EXPERT ")
	require.NoError(t, err)
	assert.Equal(t, Expert, got)

	_, err = ParseDifficulty("impossible")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestDifficultyDepth(t *testing.T) {
	assert.Equal(t, 0, Easy.Depth())
	assert.Equal(t, 0, Medium.Depth())
	assert.Equal(t, 4, Hard.Depth())
	assert.Equal(t, 6, Expert.Depth())
}

func TestPickMoveFullBoard(t *testing.T) {
	var b Board
	p := Player1
	for c := range Cols {
		for r := range Rows {
			b[r][c] = p
			p = Opponent(p)
		}
	}
	for _, d := range Difficulties {
		assert.Equal(t, 0, PickMove(b, d, Player2, fixedRand{}), d.String())
	}
}

func TestPickMoveAlwaysLegal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := parse(t,
		"RYRY...",
		"YRYR...",
		"RYRY...",
		"YRYR...",
		"RYRY...",
		"YRYR...",
	)
	for _, d := range Difficulties {
		for range 20 {
			col := PickMove(b, d, Player1, rng)
			assert.True(t, ColumnOpen(b, col), "%s picked full column %d", d, col)
		}
	}
}

func TestEasyBlocksOnlyOnLowRoll(t *testing.T) {
	b := parse(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"RRR....",
	)

	assert.Equal(t, 3, PickMove(b, Easy, Player2, fixedRand{float: 0.1, n: 6}))
	assert.Equal(t, 6, PickMove(b, Easy, Player2, fixedRand{float: 0.5, n: 6}))
}

func TestMediumPrefersWinThenBlockThenCenter(t *testing.T) {
	blockOnly := parse(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"RRR...Y",
	)
	assert.Equal(t, 3, PickMove(blockOnly, Medium, Player2, fixedRand{}))

	winAndBlock := parse(t,
		".......",
		".......",
		".......",
		"......Y",
		"......Y",
		"RRR...Y",
	)
	assert.Equal(t, 6, PickMove(winAndBlock, Medium, Player2, fixedRand{}))

	assert.Equal(t, 3, PickMove(Board{}, Medium, Player1, fixedRand{}))

	centerFull := parse(t,
		"...R...",
		"...Y...",
		"...R...",
		"...Y...",
		"...R...",
		"...Y...",
	)
	assert.Equal(t, 4, PickMove(centerFull, Medium, Player1, fixedRand{}))
}

func TestSearchTakesImmediateWin(t *testing.T) {
	b := parse(t,
		".......",
		".......",
		".......",
		"Y......",
		"Y......",
		"YRRR...",
	)
	for _, d := range []Difficulty{Hard, Expert} {
		assert.Equal(t, 0, PickMove(b, d, Player2, nil), d.String())
		assert.Equal(t, 4, PickMove(b, d, Player1, nil), d.String())
	}
}

func TestSearchBlocksThreat(t *testing.T) {
	b := parse(t,
		".......",
		".......",
		".......",
		".......",
		"...Y...",
		".RRRY..",
	)
	assert.Equal(t, 0, PickMove(b, Hard, Player2, nil))
	assert.Equal(t, 0, PickMove(b, Expert, Player2, nil))
}

func TestSearchTerminalRoot(t *testing.T) {
	b := parse(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"RRRR...",
	)
	var s Solver
	score, col := s.Search(b, 4, Player1)
	assert.Equal(t, noColumn, col)
	assert.Equal(t, winScore+4, score)

	score, col = s.Search(b, 4, Player2)
	assert.Equal(t, noColumn, col)
	assert.Equal(t, -winScore-4, score)

	// PickMove still returns a legal column.
	assert.True(t, ColumnOpen(b, PickMove(b, Hard, Player2, nil)))
}

func TestSearchDepthZeroEvaluates(t *testing.T) {
	b := parse(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"...R...",
	)
	var s Solver
	score, col := s.Search(b, 0, Player1)
	assert.Equal(t, noColumn, col)
	assert.Equal(t, Evaluate(b, Player1), score)
}

func TestEvaluate(t *testing.T) {
	assert.Equal(t, 0, Evaluate(Board{}, Player1))

	center := parse(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"...R...",
	)
	assert.Equal(t, centerWeight, Evaluate(center, Player1))
	assert.Zero(t, Evaluate(center, Player2))

	threat := parse(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"RRR....",
	)
	// An open three, an open two and a playable winning drop for player 1.
	assert.Equal(t, windowOppThree+windowOppTwo-threatPenalty, Evaluate(threat, Player2))
}

func TestScoreWindowWeights(t *testing.T) {
	tests := []struct {
		window [4]int
		want   int
	}{
		{[4]int{1, 1, 1, 1}, 100_000},
		{[4]int{2, 2, 2, 2}, -100_000},
		{[4]int{1, 1, 0, 1}, 120},
		{[4]int{0, 1, 1, 0}, 15},
		{[4]int{2, 0, 2, 2}, -110},
		{[4]int{2, 0, 0, 2}, -10},
		{[4]int{1, 2, 1, 0}, 0},
		{[4]int{1, 0, 0, 0}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scoreWindow(tt.window, Player1), "%v", tt.window)
	}
	assert.Equal(t, 120, scoreWindow([4]int{2, 2, 2, 0}, Player2), "weights are relative to me")
}

// searchPositions is a spread of mid-game positions reached by seeded random play.
func searchPositions(t *testing.T) []Board {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	var out []Board
	for range 8 {
		var b Board
		p := Player1
		plies := 4 + rng.Intn(10)
		for range plies {
			cols := AvailableColumns(b)
			next, _ := DropInColumn(b, cols[rng.Intn(len(cols))], p)
			if Winner(next) != Empty {
				break
			}
			b = next
			p = Opponent(p)
		}
		out = append(out, b)
	}
	return out
}

func TestSearchVariantsAgree(t *testing.T) {
	plain := &Solver{}
	cached := &Solver{Cache: true}
	parallel := &Solver{Parallel: true}
	both := &Solver{Cache: true, Parallel: true}

	for i, b := range searchPositions(t) {
		me := Player1
		if Count(b, Player1) > Count(b, Player2) {
			me = Player2
		}
		wantScore, wantCol := plain.Search(b, 4, me)

		for name, s := range map[string]*Solver{"cached": cached, "parallel": parallel, "both": both} {
			score, col := s.Search(b, 4, me)
			assert.Equal(t, wantCol, col, "position %d %s column", i, name)
			assert.Equal(t, wantScore, score, "position %d %s score", i, name)
		}
	}
}

func TestEvalCacheCountsHits(t *testing.T) {
	c := newEvalCache(16)
	b := parse(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		"...RY..",
	)
	first := c.evaluate(b, Player1)
	second := c.evaluate(b, Player1)
	assert.Equal(t, first, second)
	assert.Equal(t, Evaluate(b, Player1), first)
	assert.Equal(t, 1, c.hits)
	assert.Equal(t, 1, c.misses)
	assert.Equal(t, 1, c.Len())
}
