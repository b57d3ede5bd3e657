// Package snake implements Snake Relax: a wrap-around snake with no game
// over, where biting yourself only restarts the snake.
package snake

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "snake-relax"

// maxTurns bounds the turn buffer so quick presses stay responsive.
const maxTurns = 2

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

var deltas = [...]core.Point{
	DirRight: {X: 1},
	DirDown:  {Y: 1},
	DirLeft:  {X: -1},
	DirUp:    {Y: -1},
}

// Delta returns the one-cell offset of a move in d.
func (d Direction) Delta() core.Point {
	return deltas[d]
}

// Opposite reports whether d reverses e.
func (d Direction) Opposite(e Direction) bool {
	return (d+2)%4 == e
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Game is one Snake Relax session.
type Game struct {
	cfg    config.SnakeConfig
	loaded bool
	rng    *rand.Rand

	tick     uint64
	tickDur  time.Duration
	now      time.Duration // simulated clock, advances only while playing
	lastMove time.Duration

	snake     []core.Point // head first
	direction Direction
	turns     []Direction // pending turns, one applied per move
	apple     core.Point

	score int
	bites int // soft resets so far

	resetting bool
	resetAt   time.Duration

	speedOverride int // step in ms applied on the next Reset; 0 when unset

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

// New creates a Snake Relax game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a Snake Relax game that always uses cfg.
func NewWithConfig(cfg config.SnakeConfig) *Game {
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
	return "Snake Relax"
}

// Description returns the one-line blurb shown in menus.
func (g *Game) Description() string {
	return "Serpent zen: wrap-around edges, apples and a calm pace."
}

// Rules returns the how-to-play text.
func (g *Game) Rules() []string {
	return []string{
		"The snake moves one cell every 120 ms; the edges wrap around.",
		"Eat apples to grow and earn a point each.",
		"Biting yourself restarts the snake softly. There is no game over.",
		"Steer with the arrow keys or WASD. P pauses.",
	}
}

var speeds = []struct {
	value string
	label string
	ms    int
}{
	{"slow", "Slow", 150},
	{"normal", "Normal", 120},
	{"fast", "Fast", 90},
}

// Options offers the movement speed.
func (g *Game) Options() []registry.Option {
	choices := make([]registry.Choice, 0, len(speeds))
	for _, s := range speeds {
		choices = append(choices, registry.Choice{Value: s.value, Label: s.label})
	}
	return []registry.Option{{Key: "speed", Label: "Speed", Choices: choices, Default: "normal"}}
}

// SetOption applies a menu choice on the next Reset.
func (g *Game) SetOption(key, value string) error {
	if err := registry.ValidateOption(g.Options(), key, value); err != nil {
		return err
	}
	for _, s := range speeds {
		if s.value == value {
			g.speedOverride = s.ms
		}
	}
	return nil
}

// Endless reports that the session never ends on its own.
func (g *Game) Endless() bool {
	return true
}

func (g *Game) loadConfig() {
	if g.loaded {
		return
	}

	optsMu.Lock()
	path, preset := configPath, difficultyPreset
	optsMu.Unlock()

	cfg, err := config.LoadSnake(path)
	if err != nil {
		cfg = config.DefaultSnakeConfig()
	}
	if preset != "" {
		config.ApplySnakePreset(&cfg, preset)
	}
	g.cfg = cfg
	g.loaded = true
}

// Reset initializes or restarts the game. The score starts over.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig()
	if g.speedOverride > 0 {
		g.cfg.StepMS = g.speedOverride
		g.speedOverride = 0
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.tickDur = cfg.TickDuration()
	g.now = 0
	g.score = 0
	g.bites = 0
	g.paused = false

	g.respawn()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// respawn puts a three-cell snake heading right in the middle of the field.
func (g *Game) respawn() {
	mid := g.cfg.GridSize / 2
	g.snake = []core.Point{{X: mid + 1, Y: mid}, {X: mid, Y: mid}, {X: mid - 1, Y: mid}}
	g.direction = DirRight
	g.turns = g.turns[:0]
	g.resetting = false
	g.lastMove = g.now
	g.placeApple()
}

// placeApple picks a random cell not covered by the snake.
func (g *Game) placeApple() {
	free := make([]core.Point, 0, g.cfg.GridSize*g.cfg.GridSize)
	for y := range g.cfg.GridSize {
		for x := range g.cfg.GridSize {
			p := core.Point{X: x, Y: y}
			if !g.occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.apple = core.Point{X: -1, Y: -1}
		return
	}
	g.apple = free[g.rng.Intn(len(free))]
}

func (g *Game) occupied(p core.Point) bool {
	for _, s := range g.snake {
		if s == p {
			return true
		}
	}
	return false
}

// Resize adapts to a new screen size without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	minW := g.cfg.GridSize*cellW + 2
	minH := g.cfg.GridSize + 4
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.now += g.tickDur

	if g.resetting {
		if g.now >= g.resetAt {
			g.respawn()
		}
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)

	step := g.cfg.Step()
	for !g.resetting && g.now-g.lastMove >= step {
		g.lastMove += step
		g.advance()
	}

	return core.StepResult{State: g.State()}
}

// handleInput buffers a turn. Each turn is checked against the one before
// it and applied on its own move, so quick presses never reverse the snake.
func (g *Game) handleInput(in core.InputFrame) {
	var next Direction
	switch {
	case in.Has(core.ActionUp):
		next = DirUp
	case in.Has(core.ActionDown):
		next = DirDown
	case in.Has(core.ActionLeft):
		next = DirLeft
	case in.Has(core.ActionRight):
		next = DirRight
	default:
		return
	}

	last := g.direction
	if n := len(g.turns); n > 0 {
		last = g.turns[n-1]
	}
	if next == last || next.Opposite(last) || len(g.turns) == maxTurns {
		return
	}
	g.turns = append(g.turns, next)
}

// advance moves the snake one cell, wrapping at the edges.
func (g *Game) advance() {
	if len(g.turns) > 0 {
		g.direction = g.turns[0]
		g.turns = g.turns[1:]
	}

	d := g.direction.Delta()
	head := g.snake[0]
	next := core.Point{
		X: core.Wrap(head.X+d.X, g.cfg.GridSize),
		Y: core.Wrap(head.Y+d.Y, g.cfg.GridSize),
	}
	ate := next == g.apple

	// The tail moves away this step unless the snake grows.
	body := g.snake
	if !ate {
		body = body[:len(body)-1]
	}
	for _, s := range body {
		if s == next {
			g.bite()
			return
		}
	}

	g.snake = append([]core.Point{next}, body...)
	if ate {
		g.score++
		g.placeApple()
	}
}

// bite freezes the snake for the soft reset pause; the score is kept.
func (g *Game) bite() {
	g.bites++
	g.resetting = true
	g.resetAt = g.now + g.cfg.SoftReset()
}

// State returns the current game state. The session never ends by itself.
func (g *Game) State() core.GameState {
	status := "Playing"
	switch {
	case g.paused || g.tooSmall:
		status = "Paused"
	case g.resetting:
		status = "Ouch"
	}
	return core.GameState{
		Score:  g.score,
		Paused: g.paused || g.tooSmall,
		Status: status,
	}
}
