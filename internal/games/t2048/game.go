// Package t2048 implements the 2048 sliding-tile puzzle.
package t2048

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "2048"

// startTiles is the number of tiles on a fresh board.
const startTiles = 2

// Game implements the 2048 puzzle game.
type Game struct {
	cfg    config.Game2048Config
	loaded bool
	rng    *rand.Rand
	tick   uint64

	board Board
	score int
	moves int

	targetOverride int // menu choice applied on the next Reset; 0 when unset

	won      bool
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

// New creates a 2048 game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a 2048 game that always uses cfg.
func NewWithConfig(cfg config.Game2048Config) *Game {
	return &Game{cfg: cfg, loaded: true}
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
	return "2048"
}

// Description returns the one-line blurb shown in menus.
func (g *Game) Description() string {
	return "Merge numbered tiles to reach 2048."
}

// Rules returns the how-to-play text.
func (g *Game) Rules() []string {
	return []string{
		"Use the arrow keys to slide all tiles in a direction.",
		"Tiles with matching numbers merge into one and increase your score.",
		"Create a tile with the number 2048 to win. No moves left? The game ends.",
	}
}

var targets = []int{512, 1024, 2048, 4096}

// Options offers the winning tile.
func (g *Game) Options() []registry.Option {
	choices := make([]registry.Choice, 0, len(targets))
	for _, t := range targets {
		v := strconv.Itoa(t)
		choices = append(choices, registry.Choice{Value: v, Label: v})
	}
	return []registry.Option{{Key: "target", Label: "Winning tile", Choices: choices, Default: "2048"}}
}

// SetOption applies a menu choice on the next Reset.
func (g *Game) SetOption(key, value string) error {
	if err := registry.ValidateOption(g.Options(), key, value); err != nil {
		return err
	}
	g.targetOverride, _ = strconv.Atoi(value)
	return nil
}

// loadConfig resolves the session config from package options on the first Reset.
func (g *Game) loadConfig() {
	if g.loaded {
		return
	}

	optsMu.Lock()
	path, preset := configPath, difficultyPreset
	optsMu.Unlock()

	cfg, err := config.Load2048(path)
	if err != nil {
		cfg = config.Default2048Config()
	}
	if preset != "" {
		config.Apply2048Preset(&cfg, preset)
	}
	g.cfg = cfg
	g.loaded = true
}

// Reset initializes or restarts the game with two starting tiles.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig()
	if g.targetOverride > 0 {
		g.cfg.Target = g.targetOverride
		g.targetOverride = 0
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.board = Board{}
	g.score = 0
	g.moves = 0
	g.won = false
	g.gameOver = false
	g.paused = false

	for range startTiles {
		g.spawnTile()
	}

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// spawnTile puts a 2, or a 4 with the configured chance, in a random empty cell.
func (g *Game) spawnTile() {
	cells := EmptyCells(g.board)
	if len(cells) == 0 {
		return
	}
	cell := cells[g.rng.Intn(len(cells))]
	value := 2
	if g.rng.Float64() < g.cfg.SpawnFourChance {
		value = 4
	}
	g.board[cell.Y][cell.X] = value
}

// Resize adapts to a new screen size without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	minW := BoardSize*cellWidth + 1
	minH := BoardSize*cellHeight + 1 + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick; at most one move is applied per tick.
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

	switch {
	case in.Has(core.ActionUp):
		g.Move(DirUp)
	case in.Has(core.ActionDown):
		g.Move(DirDown)
	case in.Has(core.ActionLeft):
		g.Move(DirLeft)
	case in.Has(core.ActionRight):
		g.Move(DirRight)
	}

	return core.StepResult{State: g.State()}
}

// Move slides the board. A move that changes nothing spawns no tile.
// Reaching the target tile wins and ends the game, as does a board with no moves left.
func (g *Game) Move(dir Direction) bool {
	if g.gameOver {
		return false
	}
	next, gained, changed := Slide(g.board, dir)
	if !changed {
		return false
	}

	g.board = next
	g.score += gained
	g.moves++
	g.spawnTile()

	switch {
	case MaxTile(g.board) >= g.cfg.Target:
		g.won = true
		g.gameOver = true
	case IsGameOver(g.board):
		g.gameOver = true
	}
	return true
}

// Target returns the winning tile of the session.
func (g *Game) Target() int {
	return g.cfg.Target
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	status := "Playing"
	switch {
	case g.won:
		status = "You Win!"
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
