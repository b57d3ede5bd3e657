package snake

import "github.com/vovakirdan/mini-arcade/internal/core"

// Phase is the coarse state of a session.
type Phase string

const (
	PhasePlaying   Phase = "playing"
	PhasePaused    Phase = "paused"
	PhaseResetting Phase = "resetting"
	PhaseTooSmall  Phase = "paused_small_window"
)

// Snapshot captures the complete session state for determinism tests.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Score     int
	Bites     int
	SnakeLen  int
	Head      core.Point
	Direction Direction
	Apple     core.Point
}

// Snapshot returns a value copy of the session.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case g.tooSmall:
		phase = PhaseTooSmall
	case g.paused:
		phase = PhasePaused
	case g.resetting:
		phase = PhaseResetting
	}

	return Snapshot{
		Tick:      g.tick,
		Phase:     phase,
		Score:     g.score,
		Bites:     g.bites,
		SnakeLen:  len(g.snake),
		Head:      g.snake[0],
		Direction: g.direction,
		Apple:     g.apple,
	}
}
