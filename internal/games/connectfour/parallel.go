package connectfour

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// searchParallel evaluates every root child with a full window on its own
// goroutine and keeps the first child with the highest score in preferred
// order. Each goroutine owns its searcher, so nothing is shared.
// The chosen column matches the sequential alpha-beta search: a sequential
// child only replaces the best on a strictly greater exact score.
func searchParallel(b Board, depth, me int, useCache bool) (int, int) {
	root := newSearcher(me, useCache)
	if Winner(b) != Empty || depth == 0 || IsFull(b) {
		return root.minimax(b, depth, negInf, posInf, true)
	}

	columns := orderedMoves(b)
	scores := make([]int, len(columns))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, col := range columns {
		g.Go(func() error {
			next, _ := DropInColumn(b, col, me)
			scores[i], _ = newSearcher(me, useCache).minimax(next, depth-1, negInf, posInf, false)
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	best, bestCol := negInf, columns[0]
	for i, col := range columns {
		if scores[i] > best {
			best, bestCol = scores[i], col
		}
	}
	return best, bestCol
}
