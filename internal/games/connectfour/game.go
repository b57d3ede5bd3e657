// Package connectfour implements Connect Four on a 7x6 grid: board
// primitives, a minimax CPU opponent and a playable session with hot-seat
// and versus-CPU modes.
package connectfour

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "connect-four"

// Round scoring reported to the platform.
const (
	winPoints  = 100
	drawPoints = 10
)

// Move is one dropped token.
type Move struct {
	Row, Col int
	Player   int
}

// Scoreboard counts finished rounds in one session.
type Scoreboard struct {
	Player1 int
	Player2 int
	Draws   int
}

// Game is a Connect Four session.
type Game struct {
	cfg     config.ConnectFourConfig
	loaded  bool
	solver  *Solver
	pending map[string]string // menu choices applied on the next Reset

	vsCPU       bool
	difficulty  Difficulty
	human       int
	humanStarts bool

	board    Board
	current  int
	history  []Move
	winner   int
	winCells []Cell
	draw     bool
	cursor   int

	delayTicks int // CPU think time in ticks
	thinking   int // ticks left before the CPU moves; -1 when idle

	scores   Scoreboard
	roundPts int
	onResult func(core.MatchResult)

	tick     uint64
	paused   bool
	tooSmall bool
	screenW  int
	screenH  int
}

var (
	optsMu           sync.Mutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	pendingTier      string
	pendingSide      int
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	optsMu.Lock()
	defer optsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the shared difficulty preset. Unknown names reset it.
func SetDifficultyPreset(preset string) {
	optsMu.Lock()
	defer optsMu.Unlock()
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetOpponent selects the CPU tier ("off" for hot-seat) and the human's side
// for the next session. An empty tier or side 0 keeps the config value.
func SetOpponent(tier string, humanPlayer int) {
	optsMu.Lock()
	defer optsMu.Unlock()
	pendingTier = tier
	pendingSide = humanPlayer
}

// New creates a Connect Four game that loads its config on Reset.
func New() *Game {
	return &Game{thinking: -1}
}

// NewWithConfig creates a game that always uses cfg.
// A nil rng draws from the global random source.
func NewWithConfig(cfg config.ConnectFourConfig, rng Rand) *Game {
	g := &Game{thinking: -1}
	g.apply(cfg, rng)
	return g
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Connect Four"
}

// Description returns the one-line blurb shown in menus.
func (g *Game) Description() string {
	return "Drop tokens into a 7×6 grid and connect four in any direction."
}

// Rules returns the how-to-play text.
func (g *Game) Rules() []string {
	return []string{
		"Players take turns dropping a token into one of seven columns. Tokens fall to the lowest available slot.",
		"Connect four of your tokens horizontally, vertically, or diagonally to win the game.",
		"If the board fills up with no winning connection, the game ends in a draw.",
		"Use undo to revert the last move or restart to play a fresh match.",
	}
}

// Options offers the opponent, the human's side and who moves first.
func (g *Game) Options() []registry.Option {
	return []registry.Option{
		{
			Key:   "opponent",
			Label: "Opponent",
			Choices: []registry.Choice{
				{Value: "off", Label: "Hot-seat (two players)"},
				{Value: "easy", Label: "CPU Easy"},
				{Value: "medium", Label: "CPU Medium"},
				{Value: "hard", Label: "CPU Hard"},
				{Value: "expert", Label: "CPU Expert"},
			},
			Default: "medium",
		},
		{
			Key:     "side",
			Label:   "Your color",
			Choices: []registry.Choice{{Value: "1", Label: "Red"}, {Value: "2", Label: "Yellow"}},
			Default: "1",
		},
		{
			Key:     "first",
			Label:   "First move",
			Choices: []registry.Choice{{Value: "human", Label: "You"}, {Value: "cpu", Label: "CPU"}},
			Default: "human",
		},
	}
}

// SetOption applies a menu choice on the next Reset.
func (g *Game) SetOption(key, value string) error {
	if err := registry.ValidateOption(g.Options(), key, value); err != nil {
		return err
	}
	if g.pending == nil {
		g.pending = make(map[string]string)
	}
	g.pending[key] = value
	return nil
}

func (g *Game) applyPending() {
	if len(g.pending) == 0 {
		return
	}
	cfg := g.cfg
	for key, value := range g.pending {
		switch key {
		case "opponent":
			cfg.Difficulty = value
		case "side":
			cfg.HumanPlayer, _ = strconv.Atoi(value)
		case "first":
			cfg.HumanStarts = value == "human"
		}
	}
	clear(g.pending)
	g.apply(cfg, g.solver.Rand)
}

// OnMatchEnd registers a callback invoked once per finished round.
func (g *Game) OnMatchEnd(fn func(core.MatchResult)) {
	g.onResult = fn
}

func (g *Game) apply(cfg config.ConnectFourConfig, rng Rand) {
	g.cfg = cfg
	g.loaded = true
	g.human = cfg.HumanPlayer
	if !ValidPlayer(g.human) {
		g.human = Player1
	}
	g.humanStarts = cfg.HumanStarts

	tier := strings.ToLower(strings.TrimSpace(cfg.Difficulty))
	g.vsCPU = tier != "off" && tier != ""
	if g.vsCPU {
		d, err := ParseDifficulty(tier)
		if err != nil {
			d = Medium
		}
		g.difficulty = d
	}

	g.solver = &Solver{Rand: rng, Cache: cfg.EvalCache, Parallel: cfg.ParallelSearch}
}

// loadConfig resolves the config from package options on the first Reset.
func (g *Game) loadConfig(seed int64) {
	if g.loaded {
		return
	}

	optsMu.Lock()
	path, preset, tier, side := configPath, difficultyPreset, pendingTier, pendingSide
	pendingTier, pendingSide = "", 0
	optsMu.Unlock()

	cfg, err := config.LoadConnectFour(path)
	if err != nil {
		cfg = config.DefaultConnectFourConfig()
	}
	if preset != "" {
		config.ApplyConnectFourPreset(&cfg, preset)
	}
	if tier != "" {
		cfg.Difficulty = tier
	}
	if ValidPlayer(side) {
		cfg.HumanPlayer = side
	}
	g.apply(cfg, rand.New(rand.NewSource(seed)))
}

// Reset starts a fresh round. The session scoreboard survives restarts.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig(cfg.Seed)
	g.applyPending()

	g.board = Board{}
	g.history = g.history[:0]
	g.winner = Empty
	g.winCells = nil
	g.draw = false
	g.cursor = centerCol
	g.roundPts = 0
	g.paused = false
	g.tick = 0
	g.thinking = -1

	g.current = g.human
	if g.vsCPU && !g.humanStarts {
		g.current = g.cpu()
	}
	if !g.vsCPU {
		g.current = Player1
	}

	g.delayTicks = 0
	if g.vsCPU && g.difficulty != Expert {
		tickDur := cfg.TickDuration()
		g.delayTicks = int((g.cfg.ThinkDelay() + tickDur - 1) / tickDur)
	}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts to a new screen size without touching the round.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// cpu returns the CPU's player number.
func (g *Game) cpu() int {
	return Opponent(g.human)
}

func (g *Game) over() bool {
	return g.winner != Empty || g.draw
}

// cpuTurn reports whether the CPU is to move.
func (g *Game) cpuTurn() bool {
	return g.vsCPU && !g.over() && g.current == g.cpu()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.over() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionUndo) {
		g.undo()
	}

	if in.Has(core.ActionLeft) {
		g.cursor = core.Wrap(g.cursor-1, Cols)
	}
	if in.Has(core.ActionRight) {
		g.cursor = core.Wrap(g.cursor+1, Cols)
	}

	if in.Has(core.ActionDrop) && !g.cpuTurn() {
		g.play(g.cursor)
	}

	g.stepCPU()

	return core.StepResult{State: g.State()}
}

// stepCPU counts down the think delay and then plays the solver's move.
func (g *Game) stepCPU() {
	if !g.cpuTurn() {
		g.thinking = -1
		return
	}
	if g.thinking < 0 {
		g.thinking = g.delayTicks
	}
	if g.thinking > 0 {
		g.thinking--
		return
	}
	g.thinking = -1

	available := AvailableColumns(g.board)
	if len(available) == 0 {
		return
	}
	col := g.solver.PickMove(g.board, g.difficulty, g.cpu())
	if !ColumnOpen(g.board, col) {
		col = available[0]
	}
	g.play(col)
}

// play drops the current player's token in col. Full columns and finished
// rounds are ignored.
func (g *Game) play(col int) bool {
	if g.over() {
		return false
	}
	row := AvailableRow(g.board, col)
	if row < 0 {
		return false
	}

	player := g.current
	g.board[row][col] = player
	g.history = append(g.history, Move{Row: row, Col: col, Player: player})

	if cells := WinningLine(g.board, row, col, player); cells != nil {
		g.winner = player
		g.winCells = cells
		g.finishRound()
		return true
	}
	if IsFull(g.board) {
		g.draw = true
		g.finishRound()
		return true
	}

	g.current = Opponent(player)
	return true
}

// undo takes back the last move. Against the CPU it keeps taking back moves
// until the human is to move again. Finished rounds cannot be undone.
func (g *Game) undo() {
	if g.over() {
		return
	}
	for len(g.history) > 0 {
		last := g.history[len(g.history)-1]
		g.history = g.history[:len(g.history)-1]
		g.board[last.Row][last.Col] = Empty
		g.current = last.Player
		if !g.vsCPU || last.Player == g.human {
			break
		}
	}
	g.thinking = -1
}

func (g *Game) finishRound() {
	var result core.MatchResult
	result.Moves = len(g.history)
	result.Winner = g.winner
	result.Opponent = "human"
	if g.vsCPU {
		result.Opponent = g.difficulty.String()
	}

	switch {
	case g.draw:
		g.scores.Draws++
		result.Outcome = core.OutcomeDraw
		g.roundPts = drawPoints
	default:
		if g.winner == Player1 {
			g.scores.Player1++
		} else {
			g.scores.Player2++
		}
		side := g.human
		if !g.vsCPU {
			side = Player1
		}
		if g.winner == side {
			result.Outcome = core.OutcomeWin
		} else {
			result.Outcome = core.OutcomeLoss
		}
		g.roundPts = g.winPoints()
	}
	result.Score = g.roundPts

	if g.onResult != nil {
		g.onResult(result)
	}
}

// winPoints scales the round score by opponent strength. A CPU win scores
// nothing for the human.
func (g *Game) winPoints() int {
	if !g.vsCPU {
		return winPoints
	}
	if g.winner != g.human {
		return 0
	}
	return winPoints * (int(g.difficulty) + 1)
}

// Scores returns the session scoreboard.
func (g *Game) Scores() Scoreboard {
	return g.scores
}

// ResetScores clears the session scoreboard.
func (g *Game) ResetScores() {
	g.scores = Scoreboard{}
}

// Board returns a copy of the current grid.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) status() string {
	switch {
	case g.winner != Empty:
		return fmt.Sprintf("Player %d wins!", g.winner)
	case g.draw:
		return "Draw game, board is full."
	case g.cpuTurn():
		return fmt.Sprintf("CPU (%s) is thinking...", g.difficulty)
	default:
		return fmt.Sprintf("Player %d (%s) to move", g.current, playerName(g.current))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.roundPts,
		GameOver: g.over(),
		Paused:   g.paused || g.tooSmall,
		Status:   g.status(),
	}
}

// ThinkDelay returns the CPU delay in wall time for the given tick rate.
func (g *Game) ThinkDelay(tickRate int) time.Duration {
	cfg := core.RuntimeConfig{TickRate: tickRate}
	return time.Duration(g.delayTicks) * cfg.TickDuration()
}
