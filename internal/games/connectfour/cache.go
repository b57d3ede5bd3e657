package connectfour

import "github.com/kamstrup/intmap"

// evalCache memoizes Evaluate by board key. The key does not encode the
// evaluating side, so one cache serves a single player per search.
type evalCache struct {
	m      *intmap.Map[uint64, int]
	hits   int
	misses int
}

func newEvalCache(capacity int) *evalCache {
	return &evalCache{m: intmap.New[uint64, int](capacity)}
}

func (c *evalCache) evaluate(b Board, me int) int {
	key := Key(b)
	if v, ok := c.m.Get(key); ok {
		c.hits++
		return v
	}
	c.misses++
	v := Evaluate(b, me)
	c.m.Put(key, v)
	return v
}

// Len returns the number of cached positions.
func (c *evalCache) Len() int {
	return c.m.Len()
}
