package flappy

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
)

const eps = 1e-6

// At 50 ticks per second one tick is 20ms of flight.
func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 50,
		Seed:     seed,
	}
}

func newTestGame(seed int64) *Game {
	g := NewWithConfig(config.DefaultFlappyConfig())
	g.Reset(testConfig(seed))
	return g
}

func idle(g *Game, n int) {
	for range n {
		g.Step(core.NewInputFrame())
	}
}

func flap(g *Game) core.GameState {
	return g.Step(core.FrameOf(core.ActionJump)).State
}

func TestWaitsForFirstFlap(t *testing.T) {
	g := newTestGame(1)
	y := g.birdY

	idle(g, 100)

	if g.birdY != y || g.Snapshot().Phase != PhaseReady {
		t.Errorf("bird moved before the first flap: %+v", g.Snapshot())
	}
	if st := g.State(); !st.Paused || st.GameOver {
		t.Errorf("state = %+v, want paused while ready", st)
	}
	if y != 298 {
		t.Errorf("bird starts at y=%v, want mid-field 298", y)
	}
}

func TestFlapImpulse(t *testing.T) {
	g := newTestGame(1)
	flap(g) // starts the run
	if g.Snapshot().Phase != PhasePlaying {
		t.Fatal("a flap should start the run")
	}

	flap(g)
	// v = -520 + 1800*0.02, y = 298 + v*0.02
	if math.Abs(g.birdVel-(-484)) > eps {
		t.Errorf("velocity = %v, want -484", g.birdVel)
	}
	if math.Abs(g.birdY-288.32) > eps {
		t.Errorf("y = %v, want 288.32", g.birdY)
	}
}

func TestStepIsClamped(t *testing.T) {
	g := NewWithConfig(config.DefaultFlappyConfig())
	cfg := testConfig(1)
	cfg.TickRate = 10 // 100ms ticks
	g.Reset(cfg)

	flap(g)
	idle(g, 1)
	if math.Abs(g.birdVel-90) > eps {
		t.Errorf("velocity = %v, want one clamped 50ms slice of gravity", g.birdVel)
	}
}

func TestFallingHitsGround(t *testing.T) {
	g := newTestGame(1)
	flap(g)
	idle(g, 100)

	snap := g.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatalf("phase = %s, want game over", snap.Phase)
	}
	if snap.BirdY != 640-44 {
		t.Errorf("bird y = %v, want clamped to the ground", snap.BirdY)
	}
	if !g.State().GameOver {
		t.Error("state should report game over")
	}
}

func TestCeilingHit(t *testing.T) {
	g := newTestGame(1)
	flap(g)
	for range 100 {
		if flap(g).GameOver {
			break
		}
	}
	if g.birdY != 0 || !g.gameOver {
		t.Errorf("y = %v over = %v, flapping forever should hit the ceiling", g.birdY, g.gameOver)
	}
}

func TestFlapAfterCrashStartsNewRun(t *testing.T) {
	g := newTestGame(1)
	flap(g)
	idle(g, 100)
	g.score = 5
	g.crash()

	flap(g)

	snap := g.Snapshot()
	if snap.Phase != PhasePlaying || snap.Score != 0 || snap.Runs != 2 {
		t.Errorf("snapshot = %+v, want a fresh second run", snap)
	}
	if snap.Best != 5 {
		t.Errorf("best = %d, want 5 kept", snap.Best)
	}
	if snap.BirdY != 298 {
		t.Errorf("bird y = %v, want reset", snap.BirdY)
	}
}

func TestPauseOnlyWhileRunning(t *testing.T) {
	g := newTestGame(1)
	flap(g)
	g.Step(core.FrameOf(core.ActionPause))
	y := g.birdY
	idle(g, 20)
	if g.birdY != y || g.Snapshot().Phase != PhasePaused {
		t.Error("bird moved while paused")
	}
}

func newTestPipes() (*PipeManager, *config.FlappyConfig) {
	cfg := config.DefaultFlappyConfig()
	return NewPipeManager(rand.New(rand.NewSource(1)), &cfg), &cfg
}

func TestPipeScoring(t *testing.T) {
	pm, _ := newTestPipes()
	pm.pipes = []Pipe{{X: 12, GapTop: 200}}

	// 12 - 190*0.02 = 8.2 and 8.2 + 70 < 80.
	if got := pm.Update(0.02, 80); got != 1 {
		t.Errorf("passed = %d, want 1", got)
	}
	if got := pm.Update(0.02, 80); got != 0 {
		t.Errorf("passed = %d, a pipe scores once", got)
	}
}

func TestPipeCollision(t *testing.T) {
	pm, _ := newTestPipes()
	pm.pipes = []Pipe{{X: 100, GapTop: 200}}

	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"inside gap", 250, false},
		{"gap top edge", 200, false},
		{"gap bottom edge", 200 + 190 - 44, false},
		{"above gap", 150, true},
		{"below gap", 360, true},
	}
	for _, tt := range tests {
		if got := pm.Collides(80, tt.y, 44); got != tt.want {
			t.Errorf("%s: Collides(y=%v) = %v, want %v", tt.name, tt.y, got, tt.want)
		}
	}

	if pm.Collides(80, 0, 44) != true {
		t.Error("overlapping the top pipe should collide")
	}
	pm.pipes[0].X = 124
	if pm.Collides(80, 0, 44) {
		t.Error("a pipe starting at the bird's right edge does not overlap")
	}
}

func TestPipeSpawning(t *testing.T) {
	pm, cfg := newTestPipes()
	if n := len(pm.Pipes()); n != 1 || pm.Pipes()[0].X != 620 {
		t.Fatalf("fresh pipes = %+v, want one at 620", pm.Pipes())
	}

	for range 300 {
		pm.Update(0.02, 80)
	}

	pipes := pm.Pipes()
	if len(pipes) < 2 {
		t.Fatalf("got %d pipes after 6s", len(pipes))
	}
	for i, p := range pipes {
		if p.GapTop < cfg.Obstacles.TopMargin || p.GapTop > 640-190-120 {
			t.Errorf("pipe %d gap top %v outside [80, 330]", i, p.GapTop)
		}
		if i > 0 {
			if d := p.X - pipes[i-1].X; math.Abs(d-260) > 5 {
				t.Errorf("pipes %d and %d are %v apart, want about 260", i-1, i, d)
			}
		}
		if p.X+cfg.Obstacles.PipeWidth <= 0 {
			t.Errorf("pipe %d left the field but was kept", i)
		}
	}
}

func TestGapOption(t *testing.T) {
	g := newTestGame(1)
	if err := g.SetOption("gap", "wide"); err != nil {
		t.Fatal(err)
	}
	if err := g.SetOption("gap", "huge"); err == nil {
		t.Error("unknown gap should be rejected")
	}
	g.Reset(testConfig(1))
	if g.cfg.Obstacles.PipeGap != 220 {
		t.Errorf("gap = %v, want 220", g.cfg.Obstacles.PipeGap)
	}
}

func TestDeterminism(t *testing.T) {
	play := func() Snapshot {
		g := newTestGame(12345)
		for i := range 600 {
			if i%16 == 0 {
				flap(g)
			} else {
				idle(g, 1)
			}
		}
		return g.Snapshot()
	}

	if a, b := play(), play(); a != b {
		t.Errorf("same seed and input diverged:\n%+v\n%+v", a, b)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(1)
	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()
	for _, want := range []string{"Score 0", "Space to start", string(beakChar)} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	g.Resize(20, 10)
	if !g.State().Paused {
		t.Error("a tiny window pauses the game")
	}
	g.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Error("small window should show a resize hint")
	}
}
