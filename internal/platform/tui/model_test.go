package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

// stubGame records what the platform asks of it.
type stubGame struct {
	resets   int
	resizes  int
	steps    int
	state    core.GameState
	options  map[string]string
	onResult func(core.MatchResult)
}

func newStubGame() *stubGame {
	return &stubGame{options: map[string]string{}}
}

func (g *stubGame) ID() string {
	return "stub"
}

func (g *stubGame) Title() string {
	return "Stub"
}

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return g.state
}

func (g *stubGame) Resize(int, int) {
	g.resizes++
}

func (g *stubGame) OnMatchEnd(fn func(core.MatchResult)) {
	g.onResult = fn
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Options() []registry.Option {
	return []registry.Option{{
		Key:   "speed",
		Label: "Speed",
		Choices: []registry.Choice{
			{Value: "slow", Label: "Slow"},
			{Value: "fast", Label: "Fast"},
		},
		Default: "slow",
	}}
}

func (g *stubGame) SetOption(key, value string) error {
	if err := registry.ValidateOption(g.Options(), key, value); err != nil {
		return err
	}
	g.options[key] = value
	return nil
}

func init() {
	registry.Register("stub", func() registry.Game { return newStubGame() })
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	next, _ := m.Update(TickMsg(time.Now()))
	return next.(GameModel)
}

func press(t *testing.T, m GameModel, msg tea.KeyMsg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store := openTestStore(t)
	game := newStubGame()
	m := NewGameModel(game, store, nil, core.DefaultConfig())
	m.Init()

	game.state = core.GameState{Score: 120, GameOver: true}
	m = tick(t, m)
	m = tick(t, m)

	scores, err := store.AllScores("stub")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 120 {
		t.Errorf("scores = %+v, want one entry of 120", scores)
	}
	if !m.State().GameOver {
		t.Error("model did not pick up game over")
	}
}

func TestGameModelSavesEachSelfStartedRun(t *testing.T) {
	store := openTestStore(t)
	game := newStubGame()
	m := NewGameModel(game, store, nil, core.DefaultConfig())
	m.Init()

	game.state = core.GameState{Score: 4, GameOver: true}
	m = tick(t, m)
	// The game starts a new run on its own, without a platform restart.
	game.state = core.GameState{Score: 0}
	m = tick(t, m)
	game.state = core.GameState{Score: 9, GameOver: true}
	m = tick(t, m)
	tick(t, m)

	scores, err := store.AllScores("stub")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(scores) != 2 {
		t.Errorf("scores = %+v, want one per run", scores)
	}
	if game.resets != 1 {
		t.Errorf("resets = %d, the platform should not have restarted", game.resets)
	}
}

// endlessGame never ends; the platform saves its score when the player leaves.
type endlessGame struct{ *stubGame }

func (endlessGame) Endless() bool {
	return true
}

func TestGameModelSavesEndlessScore(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
	}{
		{"quit", []tea.KeyMsg{runeKey('q')}},
		{"restart", []tea.KeyMsg{runeKey('r')}},
		{"back", []tea.KeyMsg{runeKey('p'), runeKey('b')}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openTestStore(t)
			game := endlessGame{newStubGame()}
			m := NewGameModel(game, store, nil, core.DefaultConfig())
			m.Init()
			game.state = core.GameState{Score: 17}
			m = tick(t, m)

			for _, k := range tt.keys {
				m = press(t, m, k)
				m = tick(t, m)
			}
			press(t, m, runeKey('q'))

			scores, err := store.AllScores("stub")
			if err != nil {
				t.Fatalf("AllScores: %v", err)
			}
			if len(scores) != 1 || scores[0].Score != 17 {
				t.Errorf("scores = %+v, want one entry of 17", scores)
			}
		})
	}
}

func TestGameModelSkipsZeroScore(t *testing.T) {
	store := openTestStore(t)
	game := newStubGame()
	m := NewGameModel(game, store, nil, core.DefaultConfig())

	game.state = core.GameState{GameOver: true}
	tick(t, m)

	if best, _ := store.HighScore("stub"); best != 0 {
		t.Errorf("HighScore = %d, want 0", best)
	}
}

func TestGameModelSavesMatches(t *testing.T) {
	store := openTestStore(t)
	game := newStubGame()
	NewGameModel(game, store, nil, core.DefaultConfig())

	if game.onResult == nil {
		t.Fatal("match hook not installed")
	}
	game.onResult(core.MatchResult{Opponent: "hard", Winner: 1, Outcome: core.OutcomeWin, Moves: 7, Score: 300})

	tallies, err := store.MatchTallies("stub")
	if err != nil {
		t.Fatalf("MatchTallies: %v", err)
	}
	if len(tallies) != 1 || tallies[0].Wins != 1 || tallies[0].Opponent != "hard" {
		t.Errorf("tallies = %+v", tallies)
	}
}

func TestGameModelRestart(t *testing.T) {
	game := newStubGame()
	m := NewGameModel(game, nil, nil, core.DefaultConfig())
	m.Init()

	m = press(t, m, runeKey('r'))
	m = tick(t, m)

	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if game.steps != 0 {
		t.Errorf("restart tick should not step, got %d steps", game.steps)
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	game := newStubGame()
	m := NewGameModel(game, nil, nil, core.DefaultConfig())
	m.Init()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(GameModel)

	if game.resizes != 1 || game.resets != 1 {
		t.Errorf("resizes = %d, resets = %d; want 1 and 1", game.resizes, game.resets)
	}
	if w, h := m.screen.Width(), m.screen.Height(); w != 100 || h != 40 {
		t.Errorf("screen = %dx%d, want 100x40", w, h)
	}
}

func TestGameModelBackOnlyWhenPaused(t *testing.T) {
	game := newStubGame()
	m := NewGameModel(game, nil, nil, core.DefaultConfig())
	m.Init()

	// First Esc pauses.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("Esc while playing should not leave the game")
	}
	m = tick(t, m)
	if !m.State().Paused {
		t.Fatal("Esc should pause")
	}

	m = press(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("B while paused should go back to the menu")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(newStubGame(), nil, nil, core.DefaultConfig())
	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(nil, nil, core.DefaultConfig())

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}

	// Only the stub is registered in this package's tests.
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if m.stage != stageOptions {
		t.Fatalf("stage = %v, want options", m.stage)
	}

	step(tea.KeyMsg{Type: tea.KeyRight})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if m.stage != stageGame {
		t.Fatalf("stage = %v, want game", m.stage)
	}
	stub := m.game.(*stubGame)
	if stub.options["speed"] != "fast" {
		t.Errorf("speed = %q, want fast", stub.options["speed"])
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	step(TickMsg(time.Now()))
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if m.stage != stageMenu {
		t.Fatalf("stage = %v, want menu", m.stage)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if m.stage != stageScoreboard {
		t.Fatalf("stage = %v, want scoreboard", m.stage)
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if m.stage != stageMenu || m.quitting {
		t.Errorf("scoreboard back should return to the menu")
	}
}
