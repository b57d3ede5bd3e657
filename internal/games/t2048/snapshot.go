package t2048

// Phase is the coarse state of a session.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseWon      Phase = "won"
	PhaseGameOver Phase = "game_over"
	PhaseTooSmall Phase = "paused_small_window"
)

// Snapshot captures the complete game state for determinism tests.
type Snapshot struct {
	Tick    uint64
	Phase   Phase
	Board   Board
	Score   int
	Moves   int
	Target  int
	MaxTile int
}

// Snapshot returns a value copy of the session.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case g.tooSmall:
		phase = PhaseTooSmall
	case g.won:
		phase = PhaseWon
	case g.gameOver:
		phase = PhaseGameOver
	case g.paused:
		phase = PhasePaused
	}

	return Snapshot{
		Tick:    g.tick,
		Phase:   phase,
		Board:   g.board,
		Score:   g.score,
		Moves:   g.moves,
		Target:  g.cfg.Target,
		MaxTile: MaxTile(g.board),
	}
}
