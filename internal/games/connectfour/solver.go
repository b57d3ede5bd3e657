package connectfour

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strings"
)

// Difficulty selects how the CPU picks its column.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// Difficulties lists every tier in ascending strength.
var Difficulties = []Difficulty{Easy, Medium, Hard, Expert}

// String returns the lower-case tier name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Depth returns the minimax search depth of the tier, or 0 for heuristic tiers.
func (d Difficulty) Depth() int {
	switch d {
	case Hard:
		return 4
	case Expert:
		return 6
	default:
		return 0
	}
}

// ParseDifficulty converts a tier name, in any case, into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "expert":
		return Expert, nil
	default:
		return Easy, fmt.Errorf("%w %q", ErrUnknownDifficulty, s)
	}
}

// Search scores and window weights of the static evaluation.
const (
	winScore       = 1_000_000
	centerWeight   = 6
	threatPenalty  = 80
	windowFour     = 100_000
	windowThree    = 120
	windowTwo      = 15
	windowOppThree = -110
	windowOppTwo   = -10
)

// Search bounds and the no-move sentinel.
const (
	negInf, posInf = math.MinInt, math.MaxInt
	noColumn       = -1
)

const (
	easyBlockChance   = 0.2     // chance the easy tier blocks an immediate threat
	defaultCacheSlots = 1 << 12 // initial evaluation cache capacity
)

// preferredColumns is the center-first move order shared by the heuristics
// and the search.
var preferredColumns = [Cols]int{3, 4, 2, 5, 1, 6, 0}

// Rand is the randomness the easy and medium tiers draw from.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) Intn(n int) int   { return rand.Intn(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Solver picks CPU moves. The zero value is usable: sequential search,
// no evaluation cache and the global random source.
type Solver struct {
	Rand Rand
	// Cache memoizes static evaluations by board key within one search.
	Cache bool
	// Parallel searches the root children concurrently.
	Parallel bool
}

// NewSolver returns a solver with the evaluation cache enabled.
// A nil rng uses the goroutine-safe global source.
func NewSolver(rng Rand) *Solver {
	return &Solver{Rand: rng, Cache: true}
}

func (s *Solver) rng() Rand {
	if s == nil || s.Rand == nil {
		return globalRand{}
	}
	return s.Rand
}

// PickMove is shorthand for a cached sequential solver drawing from rng.
func PickMove(b Board, d Difficulty, me int, rng Rand) int {
	return NewSolver(rng).PickMove(b, d, me)
}

// PickMove returns the column the CPU playing as me drops into.
// It returns 0 when the board has no open column.
func (s *Solver) PickMove(b Board, d Difficulty, me int) int {
	available := AvailableColumns(b)
	if len(available) == 0 {
		return 0
	}
	opp := Opponent(me)
	rng := s.rng()
	random := func() int { return available[rng.Intn(len(available))] }

	switch d {
	case Easy:
		if rng.Float64() < easyBlockChance {
			if col := immediateWin(b, available, opp); col != noColumn {
				return col
			}
		}
		return random()

	case Medium:
		if col := immediateWin(b, available, me); col != noColumn {
			return col
		}
		if col := immediateWin(b, available, opp); col != noColumn {
			return col
		}
		if col := firstPreferred(available); col != noColumn {
			return col
		}
		return random()
	}

	_, col := s.Search(b, d.Depth(), me)
	if col != noColumn {
		return col
	}
	if col := immediateWin(b, available, me); col != noColumn {
		return col
	}
	if col := firstPreferred(available); col != noColumn {
		return col
	}
	return random()
}

// Search runs depth-limited minimax with alpha-beta pruning for me and returns
// the root score and best column (-1 when the root is terminal).
func (s *Solver) Search(b Board, depth, me int) (score, col int) {
	useCache := s != nil && s.Cache && Settled(b)
	if s != nil && s.Parallel {
		return searchParallel(b, depth, me, useCache)
	}
	return newSearcher(me, useCache).minimax(b, depth, negInf, posInf, true)
}

// immediateWin returns the first available column where player wins at once.
func immediateWin(b Board, available []int, player int) int {
	for _, c := range available {
		if next, ok := DropInColumn(b, c, player); ok && HasWin(next, player) {
			return c
		}
	}
	return noColumn
}

func firstPreferred(available []int) int {
	for _, c := range preferredColumns {
		if slices.Contains(available, c) {
			return c
		}
	}
	return noColumn
}

// orderedMoves returns the open columns in preferred order.
func orderedMoves(b Board) []int {
	cols := make([]int, 0, Cols)
	for _, c := range preferredColumns {
		if b[0][c] == Empty {
			cols = append(cols, c)
		}
	}
	return cols
}

// searcher holds the per-search state: the maximizing side and an
// optional evaluation cache.
type searcher struct {
	me    int
	cache *evalCache
}

func newSearcher(me int, useCache bool) *searcher {
	s := &searcher{me: me}
	if useCache {
		s.cache = newEvalCache(defaultCacheSlots)
	}
	return s
}

func (s *searcher) evaluate(b Board) int {
	if s.cache == nil {
		return Evaluate(b, s.me)
	}
	return s.cache.evaluate(b, s.me)
}

func (s *searcher) minimax(b Board, depth, alpha, beta int, maximizing bool) (int, int) {
	opp := Opponent(s.me)
	switch Winner(b) {
	case s.me:
		return winScore + depth, noColumn
	case opp:
		return -winScore - depth, noColumn
	}
	if depth == 0 || IsFull(b) {
		return s.evaluate(b), noColumn
	}

	columns := orderedMoves(b)
	if len(columns) == 0 {
		return 0, noColumn
	}

	if maximizing {
		best, bestCol := negInf, columns[0]
		for _, col := range columns {
			next, ok := DropInColumn(b, col, s.me)
			if !ok {
				continue
			}
			score, _ := s.minimax(next, depth-1, alpha, beta, false)
			if score > best {
				best, bestCol = score, col
			}
			alpha = max(alpha, best)
			if alpha >= beta {
				break
			}
		}
		return best, bestCol
	}

	best, bestCol := posInf, columns[0]
	for _, col := range columns {
		next, ok := DropInColumn(b, col, opp)
		if !ok {
			continue
		}
		score, _ := s.minimax(next, depth-1, alpha, beta, true)
		if score < best {
			best, bestCol = score, col
		}
		beta = min(beta, best)
		if alpha >= beta {
			break
		}
	}
	return best, bestCol
}

// scoreWindow rates four cells from me's point of view.
func scoreWindow(w [4]int, me int) int {
	opp := Opponent(me)
	var mine, theirs, empty int
	for _, v := range w {
		switch v {
		case me:
			mine++
		case opp:
			theirs++
		case Empty:
			empty++
		}
	}

	switch {
	case mine == 4:
		return windowFour
	case theirs == 4:
		return -windowFour
	case mine == 3 && empty == 1:
		return windowThree
	case mine == 2 && empty == 2:
		return windowTwo
	case theirs == 3 && empty == 1:
		return windowOppThree
	case theirs == 2 && empty == 2:
		return windowOppTwo
	}
	return 0
}

// Evaluate is the static heuristic of a non-terminal board for me.
func Evaluate(b Board, me int) int {
	score := 0

	for r := range Rows {
		if b[r][centerCol] == me {
			score += centerWeight
		}
	}

	for r := range Rows {
		for c := 0; c <= Cols-4; c++ {
			score += scoreWindow([4]int{b[r][c], b[r][c+1], b[r][c+2], b[r][c+3]}, me)
		}
	}
	for c := range Cols {
		for r := 0; r <= Rows-4; r++ {
			score += scoreWindow([4]int{b[r][c], b[r+1][c], b[r+2][c], b[r+3][c]}, me)
		}
	}
	for r := 0; r <= Rows-4; r++ {
		for c := 0; c <= Cols-4; c++ {
			score += scoreWindow([4]int{b[r][c], b[r+1][c+1], b[r+2][c+2], b[r+3][c+3]}, me)
		}
	}
	for r := 3; r < Rows; r++ {
		for c := 0; c <= Cols-4; c++ {
			score += scoreWindow([4]int{b[r][c], b[r-1][c+1], b[r-2][c+2], b[r-3][c+3]}, me)
		}
	}

	opp := Opponent(me)
	for _, c := range AvailableColumns(b) {
		if next, ok := DropInColumn(b, c, opp); ok && HasWin(next, opp) {
			score -= threatPenalty
		}
	}

	return score
}
