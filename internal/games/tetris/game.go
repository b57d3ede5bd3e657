// Package tetris implements falling-block Tetris: a pure engine of board
// operations plus a session that drives it from fixed simulation ticks.
package tetris

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "tetris"

// MaxStartLevel is the highest starting level offered by the menu.
const MaxStartLevel = 9

// Piece is the falling tetromino.
type Piece struct {
	Type     Type
	Rotation int
	Pos      Position
}

// Game is one Tetris session.
type Game struct {
	cfg    config.TetrisConfig
	curve  GravityCurve
	loaded bool
	rng    *rand.Rand

	tick    uint64
	tickDur time.Duration
	now     time.Duration // simulated clock, advances only while playing
	timer   GravityTimer

	board   Board
	current Piece
	next    Type
	hold    Type // None while the slot is empty
	canHold bool

	score      int
	lines      int
	level      int
	startLevel int

	levelOverride int // menu choice applied on the next Reset; -1 when unset

	gameOver bool
	paused   bool
	tooSmall bool
	screenW  int
	screenH  int
}

var (
	optsMu           sync.Mutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       = -1
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	optsMu.Lock()
	defer optsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names reset to the config default.
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

// SetStartLevel overrides the starting level for the next Reset. Negative clears it.
func SetStartLevel(level int) {
	optsMu.Lock()
	defer optsMu.Unlock()
	startLevel = level
}

// GetStartLevel returns the pending start level override, or -1.
func GetStartLevel() int {
	optsMu.Lock()
	defer optsMu.Unlock()
	return startLevel
}

// New creates a Tetris game that loads its config on Reset.
func New() *Game {
	return &Game{levelOverride: -1}
}

// NewWithConfig creates a Tetris game that always uses cfg.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{cfg: cfg, curve: curveFor(cfg), loaded: true, levelOverride: -1}
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
	return "Tetris"
}

// Description returns the one-line blurb shown in menus.
func (g *Game) Description() string {
	return "Stack and clear lines with classic tetrominoes."
}

// Rules returns the how-to-play text.
func (g *Game) Rules() []string {
	return []string{
		"Move and rotate falling pieces to complete full horizontal lines.",
		"Clearing multiple lines at once yields higher scores.",
		"Speed increases with level; the game ends when pieces reach the top.",
		"Hold stores the current piece once per drop; the ghost shows where it lands.",
	}
}

// Options offers the starting level.
func (g *Game) Options() []registry.Option {
	choices := make([]registry.Choice, 0, MaxStartLevel+1)
	for l := 0; l <= MaxStartLevel; l++ {
		choices = append(choices, registry.Choice{Value: strconv.Itoa(l), Label: fmt.Sprintf("Level %d", l)})
	}
	return []registry.Option{{Key: "level", Label: "Starting level", Choices: choices, Default: "0"}}
}

// SetOption applies a menu choice on the next Reset.
func (g *Game) SetOption(key, value string) error {
	if err := registry.ValidateOption(g.Options(), key, value); err != nil {
		return err
	}
	g.levelOverride, _ = strconv.Atoi(value)
	return nil
}

func curveFor(cfg config.TetrisConfig) GravityCurve {
	return GravityCurve{
		Base: cfg.Gravity.Base(),
		Step: cfg.Gravity.Step(),
		Min:  cfg.Gravity.Min(),
	}
}

// loadConfig resolves the session config from package options on the first
// Reset. Restarts keep it; games built with NewWithConfig never load.
func (g *Game) loadConfig() {
	if g.loaded {
		return
	}

	optsMu.Lock()
	path, preset, level := configPath, difficultyPreset, startLevel
	startLevel = -1 // consumed by this Reset
	optsMu.Unlock()

	cfg, err := config.LoadTetris(path)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	if preset != "" {
		config.ApplyTetrisPreset(&cfg, preset)
	}
	if level >= 0 {
		cfg.StartLevel = level
	}
	g.cfg = cfg
	g.curve = curveFor(cfg)
	g.loaded = true
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig()
	if g.levelOverride >= 0 {
		g.cfg.StartLevel = g.levelOverride
		g.levelOverride = -1
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.tickDur = cfg.TickDuration()
	g.now = 0
	g.timer = GravityTimer{}

	g.board = NewBoard()
	g.hold = None
	g.canHold = true
	g.score = 0
	g.lines = 0
	g.startLevel = g.cfg.StartLevel
	g.level = g.startLevel
	g.gameOver = false
	g.paused = false

	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.current = Piece{Type: g.randomType(), Pos: SpawnPosition}
	g.next = g.randomType()
}

func (g *Game) randomType() Type {
	return Types[g.rng.Intn(len(Types))]
}

// Resize adapts to a new screen size without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize needs room for the framed board and the side panel.
func (g *Game) checkScreenSize() {
	minW := BoardWidth*cellW + 3 + sidePanelWidth
	minH := BoardHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.now += g.tickDur

	if g.handleInput(in) {
		// The piece locked; the new one starts with a fresh gravity window.
		g.timer = GravityTimer{Last: g.now}
		return core.StepResult{State: g.State()}
	}

	var fire bool
	g.timer, fire = g.timer.Advance(g.now, g.DropInterval())
	if fire {
		g.stepDown()
	}

	return core.StepResult{State: g.State()}
}

// handleInput applies this tick's actions and reports whether a lock happened.
func (g *Game) handleInput(in core.InputFrame) bool {
	if in.Has(core.ActionHold) {
		g.holdCurrent()
	}
	if in.Has(core.ActionRotate) {
		g.rotate(1)
	}
	if in.Has(core.ActionRotateCCW) {
		g.rotate(3)
	}
	if in.Has(core.ActionLeft) {
		g.move(-1)
	}
	if in.Has(core.ActionRight) {
		g.move(1)
	}
	if in.Has(core.ActionHardDrop) {
		g.hardDrop()
		return true
	}
	if in.Has(core.ActionDown) {
		g.score += g.cfg.Scoring.SoftDrop
		return g.stepDown()
	}
	return false
}

func (g *Game) move(dx int) {
	pos := Position{X: g.current.Pos.X + dx, Y: g.current.Pos.Y}
	if CanPlace(g.board, g.current.Type, g.current.Rotation, pos) {
		g.current.Pos = pos
	}
}

// rotate applies n clockwise turns; three turns make a counter-clockwise one.
func (g *Game) rotate(n int) {
	for range n {
		g.current.Rotation, g.current.Pos = Rotate(g.board, g.current.Type, g.current.Rotation, g.current.Pos)
	}
}

// stepDown moves the piece one row or locks it. Returns true on lock.
func (g *Game) stepDown() bool {
	pos := Position{X: g.current.Pos.X, Y: g.current.Pos.Y + 1}
	if CanPlace(g.board, g.current.Type, g.current.Rotation, pos) {
		g.current.Pos = pos
		return false
	}
	g.lock(g.current.Pos)
	return true
}

func (g *Game) hardDrop() {
	land := DropPosition(g.board, g.current.Type, g.current.Rotation, g.current.Pos)
	g.score += (land.Y - g.current.Pos.Y) * g.cfg.Scoring.HardDrop
	g.lock(land)
}

// lock merges the piece at pos, clears lines, scores and spawns the next piece.
func (g *Game) lock(pos Position) {
	merged := MergePiece(g.board, g.current.Type, g.current.Rotation, pos)
	cleared, count := ClearLines(merged)
	g.board = cleared

	if count > 0 {
		g.score += ScoreForClears(count, g.level)
		g.lines += count
		if g.cfg.Progression {
			g.level = g.startLevel + LevelForLines(g.lines)
		}
	}

	g.spawn(g.next)
	g.next = g.randomType()
}

// spawn puts t at the spawn position and ends the game if it does not fit.
func (g *Game) spawn(t Type) {
	g.current = Piece{Type: t, Rotation: 0, Pos: SpawnPosition}
	g.canHold = true
	if !CanPlace(g.board, t, 0, SpawnPosition) {
		g.gameOver = true
	}
}

// holdCurrent swaps the falling piece with the hold slot, once per spawn.
func (g *Game) holdCurrent() {
	if !g.canHold {
		return
	}
	cur := g.current.Type
	if g.hold == None {
		g.hold = cur
		g.current = Piece{Type: g.next, Pos: SpawnPosition}
		g.next = g.randomType()
	} else {
		g.current = Piece{Type: g.hold, Pos: SpawnPosition}
		g.hold = cur
	}
	g.canHold = false
}

// DropInterval returns the current gravity period.
func (g *Game) DropInterval() time.Duration {
	return g.curve.Interval(g.level)
}

// Ghost returns where the falling piece would land.
func (g *Game) Ghost() Position {
	return DropPosition(g.board, g.current.Type, g.current.Rotation, g.current.Pos)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	status := "Playing"
	switch {
	case g.gameOver:
		status = "Game Over"
	case g.paused || g.tooSmall:
		status = "Paused"
	}
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
		Status:   status,
	}
}
