package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var tetris TetrisConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("tetris"), &tetris))
	assert.Equal(t, DefaultTetrisConfig(), tetris)

	var c4 ConnectFourConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("connect-four"), &c4))
	assert.Equal(t, DefaultConnectFourConfig(), c4)

	var snake SnakeConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("snake-relax"), &snake))
	assert.Equal(t, DefaultSnakeConfig(), snake)

	var g2048 Game2048Config
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("2048"), &g2048))
	assert.Equal(t, Default2048Config(), g2048)

	var flappy FlappyConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("flappy-bird"), &flappy))
	assert.Equal(t, DefaultFlappyConfig(), flappy)

	assert.Nil(t, GetDefaultYAML("pong"))
}

func TestLoadTetrisPartialOverride(t *testing.T) {
	path := writeFile(t, "tetris.yaml", "start_level: 3\ngravity:\n  min_ms: 200\n")

	cfg, err := LoadTetris(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.StartLevel)
	assert.Equal(t, 200, cfg.Gravity.MinMS)
	assert.Equal(t, 800, cfg.Gravity.BaseMS, "unnamed keys keep their defaults")
	assert.Equal(t, 2, cfg.Scoring.HardDrop)
	assert.True(t, cfg.Progression)
}

func TestLoadTetrisNormalizes(t *testing.T) {
	path := writeFile(t, "tetris.yaml", "start_level: -4\ngravity:\n  base_ms: 0\n  step_ms: -1\n")

	cfg, err := LoadTetris(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.StartLevel)
	assert.Equal(t, 800, cfg.Gravity.BaseMS)
	assert.Equal(t, 0, cfg.Gravity.StepMS)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "start_level: [1, 2\n")
	cfg, err := LoadConnectFour(bad)
	assert.Error(t, err)
	assert.Equal(t, DefaultConnectFourConfig(), cfg)
}

func TestLoadConnectFour(t *testing.T) {
	path := writeFile(t, "c4.yaml", "difficulty: expert\nhuman_player: 7\nthink_delay_ms: -10\n")

	cfg, err := LoadConnectFour(path)
	require.NoError(t, err)
	assert.Equal(t, "expert", cfg.Difficulty)
	assert.Equal(t, 1, cfg.HumanPlayer, "invalid side falls back to player 1")
	assert.Equal(t, 0, cfg.ThinkDelayMS)
	assert.True(t, cfg.EvalCache)
}

func TestLoadSnakeNormalizes(t *testing.T) {
	path := writeFile(t, "snake.yaml", "grid_size: 2\nstep_ms: 0\nsoft_reset_ms: -5\n")

	cfg, err := LoadSnake(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.GridSize)
	assert.Equal(t, 120, cfg.StepMS)
	assert.Equal(t, 0, cfg.SoftResetMS)
}

func TestLoad2048Normalizes(t *testing.T) {
	tests := []struct {
		body   string
		target int
		chance float64
	}{
		{"target: 512\n", 512, 0.1},
		{"target: 1000\n", 2048, 0.1},
		{"target: 4\n", 2048, 0.1},
		{"spawn_four_chance: 1.5\n", 2048, 0.1},
		{"spawn_four_chance: 0\n", 2048, 0},
	}
	for _, tt := range tests {
		cfg, err := Load2048(writeFile(t, "2048.yaml", tt.body))
		require.NoError(t, err, tt.body)
		assert.Equal(t, tt.target, cfg.Target, tt.body)
		assert.InDelta(t, tt.chance, cfg.SpawnFourChance, 1e-9, tt.body)
	}
}

func TestLoadFlappyNormalizes(t *testing.T) {
	cfg, err := LoadFlappy(writeFile(t, "flappy.yaml", "physics:\n  jump_impulse: 300\nobstacles:\n  pipe_speed: 250\n"))
	require.NoError(t, err)
	assert.Equal(t, -520.0, cfg.Physics.JumpImpulse, "a flap must push upwards")
	assert.Equal(t, 250.0, cfg.Obstacles.PipeSpeed)

	// A gap narrower than the bird cannot be flown through.
	cfg, err = LoadFlappy(writeFile(t, "flappy.yaml", "obstacles:\n  pipe_gap: 30\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultFlappyConfig(), cfg)
}

func TestApplyArcadePresets(t *testing.T) {
	snake := DefaultSnakeConfig()
	ApplySnakePreset(&snake, DifficultyHard)
	assert.Equal(t, 90, snake.StepMS)
	ApplySnakePreset(&snake, DifficultyFixed)
	assert.Equal(t, 90, snake.StepMS, "fixed keeps the configured speed")

	g := Default2048Config()
	Apply2048Preset(&g, DifficultyEasy)
	assert.InDelta(t, 0.05, g.SpawnFourChance, 1e-9)

	f := DefaultFlappyConfig()
	ApplyFlappyPreset(&f, DifficultyEasy)
	assert.Greater(t, f.Obstacles.PipeGap, DefaultFlappyConfig().Obstacles.PipeGap)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset(" Hard ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParsePreset("insane")
	assert.Error(t, err)
}

func TestApplyTetrisPreset(t *testing.T) {
	cfg := DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyHard)
	assert.Equal(t, 5, cfg.StartLevel)
	assert.True(t, cfg.Progression)

	cfg.StartLevel = 7
	ApplyTetrisPreset(&cfg, DifficultyFixed)
	assert.Equal(t, 7, cfg.StartLevel)
	assert.False(t, cfg.Progression)
}

func TestApplyConnectFourPreset(t *testing.T) {
	cfg := DefaultConnectFourConfig()
	ApplyConnectFourPreset(&cfg, DifficultyEasy)
	assert.Equal(t, "easy", cfg.Difficulty)

	cfg.Difficulty = "expert"
	ApplyConnectFourPreset(&cfg, DifficultyFixed)
	assert.Equal(t, "expert", cfg.Difficulty)
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("ARCADE_LOG_LEVEL", "debug")
	t.Setenv("ARCADE_HTTP_ADDR", "127.0.0.1:9999")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "127.0.0.1:9999", s.HTTP.Address)
	assert.Equal(t, ":23234", s.SSH.Address)
	assert.Equal(t, 30, s.SSH.IdleMinutes)
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := writeFile(t, "settings.yaml", "db-path: /tmp/x.db\nssh:\n  address: \":2222\"\n")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", s.DBPath)
	assert.Equal(t, ":2222", s.SSH.Address)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoadSettingsMissingFileUsesEnv(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", s.HTTP.Address)
}
