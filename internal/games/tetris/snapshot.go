package tetris

import "time"

// Phase is the coarse state of a session.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "game_over"
	PhaseTooSmall Phase = "paused_small_window"
)

// Snapshot captures the complete session state for determinism tests.
type Snapshot struct {
	Tick     uint64
	Phase    Phase
	Board    Board
	Current  Piece
	Ghost    Position
	Next     Type
	Hold     Type
	CanHold  bool
	Score    int
	Lines    int
	Level    int
	Interval time.Duration
	Timer    GravityTimer
}

// Snapshot returns a value copy of the session.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case g.tooSmall:
		phase = PhaseTooSmall
	case g.gameOver:
		phase = PhaseGameOver
	case g.paused:
		phase = PhasePaused
	}

	return Snapshot{
		Tick:     g.tick,
		Phase:    phase,
		Board:    g.board,
		Current:  g.current,
		Ghost:    g.Ghost(),
		Next:     g.next,
		Hold:     g.hold,
		CanHold:  g.canHold,
		Score:    g.score,
		Lines:    g.lines,
		Level:    g.level,
		Interval: g.DropInterval(),
		Timer:    g.timer,
	}
}
