// Package flappy implements a Flappy Bird-style game.
// The bird flaps through gaps in scrolling pipes; the world is simulated in
// pixels and projected onto the terminal when drawn.
package flappy

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "flappy-bird"

// Game implements the Flappy Bird game logic.
type Game struct {
	cfg    config.FlappyConfig
	loaded bool
	rng    *rand.Rand
	pipes  *PipeManager

	tick    uint64
	tickDur time.Duration

	birdY   float64 // top of the bird
	birdVel float64 // pixels per second, negative is up

	score int
	best  int
	runs  int

	gapOverride float64 // menu choice applied on the next Reset; 0 when unset

	running  bool
	gameOver bool
	paused   bool
	tooSmall bool
	screenW  int
	screenH  int
	fieldW   int // terminal cells the world is projected onto
	fieldH   int
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

// New creates a Flappy Bird game that loads its config on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a Flappy Bird game that always uses cfg.
func NewWithConfig(cfg config.FlappyConfig) *Game {
	return &Game{cfg: cfg, loaded: true}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Description returns the one-line blurb shown in menus.
func (g *Game) Description() string {
	return "Tap to flap through the pipes without touching them."
}

// Rules returns the how-to-play text.
func (g *Game) Rules() []string {
	return []string{
		"Press Space or Up to make the bird flap upward.",
		"Navigate through the gaps between the pipes; touching them ends the run.",
		"Each pair of pipes you pass earns one point. Try to beat your best score!",
	}
}

var gaps = []struct {
	value string
	label string
	px    float64
}{
	{"wide", "Wide", 220},
	{"normal", "Normal", 190},
	{"narrow", "Narrow", 160},
}

// Options offers the pipe gap.
func (g *Game) Options() []registry.Option {
	choices := make([]registry.Choice, 0, len(gaps))
	for _, c := range gaps {
		choices = append(choices, registry.Choice{Value: c.value, Label: c.label})
	}
	return []registry.Option{{Key: "gap", Label: "Pipe gap", Choices: choices, Default: "normal"}}
}

// SetOption applies a menu choice on the next Reset.
func (g *Game) SetOption(key, value string) error {
	if err := registry.ValidateOption(g.Options(), key, value); err != nil {
		return err
	}
	for _, c := range gaps {
		if c.value == value {
			g.gapOverride = c.px
		}
	}
	return nil
}

func (g *Game) loadConfig() {
	if g.loaded {
		return
	}

	optsMu.Lock()
	path, preset := configPath, difficultyPreset
	optsMu.Unlock()

	cfg, err := config.LoadFlappy(path)
	if err != nil {
		cfg = config.DefaultFlappyConfig()
	}
	if preset != "" {
		config.ApplyFlappyPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.loaded = true
}

// Reset initializes or restarts the game. The bird waits for the first flap.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig()
	if g.gapOverride > 0 {
		g.cfg.Obstacles.PipeGap = g.gapOverride
		g.gapOverride = 0
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.pipes = NewPipeManager(g.rng, &g.cfg)
	g.tick = 0
	g.tickDur = cfg.TickDuration()
	g.runs = 0
	g.running = false
	g.gameOver = false
	g.paused = false
	g.resetRun()

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// resetRun puts the bird mid-field with fresh pipes and a zero score.
func (g *Game) resetRun() {
	g.birdY = g.cfg.Field.Height/2 - g.cfg.Player.Size/2
	g.birdVel = 0
	g.score = 0
	g.pipes.Reset()
}

// Resize adapts to a new screen size without touching the session.
// The field keeps the world's aspect ratio with cells twice as tall as wide.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.fieldH = h - 3
	g.fieldW = int(float64(g.fieldH)*g.cfg.Field.Width/g.cfg.Field.Height*2 + 0.5)
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	g.tooSmall = g.fieldH < minFieldH || g.fieldW+2 > g.screenW
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	flap := in.Has(core.ActionJump)

	// Before the first run and after a crash a flap starts a new run.
	if !g.running {
		if flap {
			g.startRun()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := min(g.tickDur, g.maxStep()).Seconds()
	if flap {
		g.birdVel = g.cfg.Physics.JumpImpulse
	}
	if g.advance(dt) {
		g.crash()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) maxStep() time.Duration {
	return time.Duration(g.cfg.Physics.MaxStepMS) * time.Millisecond
}

func (g *Game) startRun() {
	if g.gameOver {
		g.resetRun()
	}
	g.runs++
	g.running = true
	g.gameOver = false
}

// advance integrates dt seconds of flight and reports a hit.
func (g *Game) advance(dt float64) bool {
	size := g.cfg.Player.Size
	g.birdVel += g.cfg.Physics.Gravity * dt
	g.birdY += g.birdVel * dt

	hit := false
	if g.birdY <= 0 {
		g.birdY = 0
		hit = true
	}
	if g.birdY+size >= g.cfg.Field.Height {
		g.birdY = g.cfg.Field.Height - size
		hit = true
	}

	g.score += g.pipes.Update(dt, g.cfg.Player.X)
	return g.pipes.Collides(g.cfg.Player.X, g.birdY, size) || hit
}

func (g *Game) crash() {
	g.running = false
	g.gameOver = true
	g.best = max(g.best, g.score)
}

// Best returns the highest score of the session.
func (g *Game) Best() int {
	return max(g.best, g.score)
}

// State returns the current game state. The game reports paused while it
// waits for the first flap.
func (g *Game) State() core.GameState {
	status := "Playing"
	switch {
	case g.gameOver:
		status = "Game Over"
	case g.paused || g.tooSmall:
		status = "Paused"
	case !g.running:
		status = "Ready"
	}
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall || (!g.running && !g.gameOver),
		Status:   status,
	}
}
