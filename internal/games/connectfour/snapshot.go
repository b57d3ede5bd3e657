package connectfour

// Snapshot captures a session for tests and the API.
type Snapshot struct {
	Tick       uint64
	Board      Board
	Current    int
	Cursor     int
	Winner     int
	WinCells   []Cell
	Draw       bool
	Moves      int
	Thinking   bool
	Paused     bool
	VsCPU      bool
	Difficulty Difficulty
	Human      int
	Scores     Scoreboard
}

// Snapshot returns a copy of the session state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:       g.tick,
		Board:      g.board,
		Current:    g.current,
		Cursor:     g.cursor,
		Winner:     g.winner,
		WinCells:   append([]Cell(nil), g.winCells...),
		Draw:       g.draw,
		Moves:      len(g.history),
		Thinking:   g.cpuTurn(),
		Paused:     g.paused,
		VsCPU:      g.vsCPU,
		Difficulty: g.difficulty,
		Human:      g.human,
		Scores:     g.scores,
	}
}
