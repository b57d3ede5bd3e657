// Package config provides YAML-based game configuration loading,
// difficulty presets and platform settings for the arcade.
package config

import "time"

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	StartLevel  int           `yaml:"start_level"`
	Progression bool          `yaml:"progression"` // level rises every 10 lines
	Ghost       bool          `yaml:"ghost"`       // show landing preview
	Gravity     TetrisGravity `yaml:"gravity"`
	Scoring     TetrisScoring `yaml:"scoring"`
}

// TetrisGravity is the drop-interval curve in milliseconds:
// max(min_ms, base_ms - level*step_ms).
type TetrisGravity struct {
	BaseMS int `yaml:"base_ms"`
	StepMS int `yaml:"step_ms"`
	MinMS  int `yaml:"min_ms"`
}

// TetrisScoring sets the bonus points for manual drops.
type TetrisScoring struct {
	SoftDrop int `yaml:"soft_drop"` // per soft-drop key press
	HardDrop int `yaml:"hard_drop"` // per row travelled by a hard drop
}

// Base returns the level-0 drop interval.
func (g TetrisGravity) Base() time.Duration { return time.Duration(g.BaseMS) * time.Millisecond }

// Step returns the per-level interval reduction.
func (g TetrisGravity) Step() time.Duration { return time.Duration(g.StepMS) * time.Millisecond }

// Min returns the fastest allowed interval.
func (g TetrisGravity) Min() time.Duration { return time.Duration(g.MinMS) * time.Millisecond }

// ConnectFourConfig contains all configuration for the Connect Four game.
type ConnectFourConfig struct {
	// Difficulty is the CPU tier: off (hot-seat), easy, medium, hard or expert.
	Difficulty string `yaml:"difficulty"`
	// HumanPlayer is the side the human plays against the CPU, 1 or 2.
	HumanPlayer int `yaml:"human_player"`
	// HumanStarts decides who drops the first token of a round.
	HumanStarts bool `yaml:"human_starts"`
	// ThinkDelayMS is the pause before the CPU moves. Expert always moves at once.
	ThinkDelayMS int `yaml:"think_delay_ms"`
	// ParallelSearch fans the root of the minimax search out over goroutines.
	ParallelSearch bool `yaml:"parallel_search"`
	// EvalCache memoizes static evaluations during a search.
	EvalCache bool `yaml:"eval_cache"`
}

// ThinkDelay returns the configured CPU delay.
func (c ConnectFourConfig) ThinkDelay() time.Duration {
	return time.Duration(c.ThinkDelayMS) * time.Millisecond
}

// SnakeConfig contains all configuration for Snake Relax.
type SnakeConfig struct {
	GridSize    int `yaml:"grid_size"`     // cells per side of the square field
	StepMS      int `yaml:"step_ms"`       // one cell of movement
	SoftResetMS int `yaml:"soft_reset_ms"` // pause after biting yourself
}

// Step returns the movement interval.
func (c SnakeConfig) Step() time.Duration { return time.Duration(c.StepMS) * time.Millisecond }

// SoftReset returns the pause before a bitten snake starts over.
func (c SnakeConfig) SoftReset() time.Duration {
	return time.Duration(c.SoftResetMS) * time.Millisecond
}

// Game2048Config contains all configuration for 2048.
type Game2048Config struct {
	Target          int     `yaml:"target"`            // tile that wins the game
	SpawnFourChance float64 `yaml:"spawn_four_chance"` // otherwise a 2 spawns
}

// FlappyConfig contains all configuration for the Flappy Bird game.
// Distances are in world pixels, speeds in pixels per second.
type FlappyConfig struct {
	Field     FlappyField     `yaml:"field"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Player    FlappyPlayer    `yaml:"player"`
}

// FlappyField is the size of the simulated world.
type FlappyField struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlappyPhysics defines physics parameters for Flappy Bird.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"` // velocity set by a flap, negative is up
	MaxStepMS   int     `yaml:"max_step_ms"`  // longest simulated slice per tick
}

// FlappyObstacles defines pipe parameters for Flappy Bird.
type FlappyObstacles struct {
	PipeWidth    float64 `yaml:"pipe_width"`
	PipeGap      float64 `yaml:"pipe_gap"`
	PipeSpacing  float64 `yaml:"pipe_spacing"`
	PipeSpeed    float64 `yaml:"pipe_speed"`
	TopMargin    float64 `yaml:"top_margin"`    // smallest gap top
	BottomMargin float64 `yaml:"bottom_margin"` // space kept under the lowest gap
}

// FlappyPlayer defines the bird's column and size.
type FlappyPlayer struct {
	X    float64 `yaml:"x"`
	Size float64 `yaml:"size"`
}

// DifficultyPreset represents a named difficulty level shared by all games.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)
