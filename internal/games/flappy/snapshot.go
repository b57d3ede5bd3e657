package flappy

// Phase is the coarse state of a session.
type Phase string

const (
	PhaseReady    Phase = "ready"
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "game_over"
	PhaseTooSmall Phase = "paused_small_window"
)

// Snapshot captures the session state for determinism tests.
type Snapshot struct {
	Tick    uint64
	Phase   Phase
	BirdY   float64
	BirdVel float64
	Score   int
	Best    int
	Runs    int
	Pipes   int
	NextGap float64 // gap top of the leftmost pipe
}

// Snapshot returns a value copy of the session.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case g.tooSmall:
		phase = PhaseTooSmall
	case g.gameOver:
		phase = PhaseGameOver
	case !g.running:
		phase = PhaseReady
	case g.paused:
		phase = PhasePaused
	}

	pipes := g.pipes.Pipes()
	var next float64
	if len(pipes) > 0 {
		next = pipes[0].GapTop
	}

	return Snapshot{
		Tick:    g.tick,
		Phase:   phase,
		BirdY:   g.birdY,
		BirdVel: g.birdVel,
		Score:   g.score,
		Best:    g.Best(),
		Runs:    g.runs,
		Pipes:   len(pipes),
		NextGap: next,
	}
}
