package flappy

import (
	"math/rand"

	"github.com/vovakirdan/mini-arcade/internal/config"
)

// Pipe is a pair of vertical obstacles with a gap for the bird to pass through.
// Coordinates are world pixels.
type Pipe struct {
	X      float64 // left edge
	GapTop float64
	Passed bool // the bird is past it and it has been scored
}

// PipeManager handles spawning, movement, and removal of pipes.
type PipeManager struct {
	pipes      []Pipe
	rng        *rand.Rand
	cfg        *config.FlappyConfig
	spawnTimer float64 // seconds since the last spawn
}

// NewPipeManager creates a pipe manager drawing gap positions from rng.
func NewPipeManager(rng *rand.Rand, cfg *config.FlappyConfig) *PipeManager {
	pm := &PipeManager{
		pipes: make([]Pipe, 0, 4),
		rng:   rng,
		cfg:   cfg,
	}
	pm.Reset()
	return pm
}

// Reset leaves a single pipe one spacing beyond the right edge.
func (pm *PipeManager) Reset() {
	pm.pipes = pm.pipes[:0]
	pm.spawnTimer = 0
	pm.spawn(pm.cfg.Obstacles.PipeSpacing)
}

// interval is the time between spawns: one spacing at pipe speed.
func (pm *PipeManager) interval() float64 {
	return pm.cfg.Obstacles.PipeSpacing / pm.cfg.Obstacles.PipeSpeed
}

// spawn adds a pipe offset px beyond the right edge with a random gap.
func (pm *PipeManager) spawn(offset float64) {
	o := pm.cfg.Obstacles
	minTop := o.TopMargin
	maxTop := pm.cfg.Field.Height - o.PipeGap - o.BottomMargin
	gapTop := minTop
	if maxTop > minTop {
		gapTop += pm.rng.Float64() * (maxTop - minTop)
	}
	pm.pipes = append(pm.pipes, Pipe{X: pm.cfg.Field.Width + offset, GapTop: gapTop})
}

// Update moves pipes left by dt seconds, drops the ones that left the field
// and spawns new ones on the timer. Returns the number of pipes the bird
// passed, for scoring.
func (pm *PipeManager) Update(dt, birdX float64) int {
	o := pm.cfg.Obstacles
	passed := 0

	kept := pm.pipes[:0]
	for _, p := range pm.pipes {
		p.X -= o.PipeSpeed * dt
		if !p.Passed && p.X+o.PipeWidth < birdX {
			p.Passed = true
			passed++
		}
		if p.X+o.PipeWidth > 0 {
			kept = append(kept, p)
		}
	}
	pm.pipes = kept

	pm.spawnTimer += dt
	for pm.spawnTimer >= pm.interval() {
		pm.spawnTimer -= pm.interval()
		offset := o.PipeSpacing
		if n := len(pm.pipes); n > 0 {
			rightmost := pm.pipes[n-1].X
			offset = max(o.PipeSpacing, rightmost+o.PipeSpacing-pm.cfg.Field.Width)
		}
		pm.spawn(offset)
	}

	return passed
}

// Collides reports whether a square bird of the given size at (x, y)
// overlaps any pipe outside its gap.
func (pm *PipeManager) Collides(x, y, size float64) bool {
	o := pm.cfg.Obstacles
	for _, p := range pm.pipes {
		if x+size <= p.X || x >= p.X+o.PipeWidth {
			continue
		}
		if y < p.GapTop || y+size > p.GapTop+o.PipeGap {
			return true
		}
	}
	return false
}

// Pipes returns the current pipes, leftmost first.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}
