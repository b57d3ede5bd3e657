package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

//go:embed defaults/connectfour.yaml
var defaultConnectFourYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/2048.yaml
var default2048YAML []byte

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		StartLevel:  0,
		Progression: true,
		Ghost:       true,
		Gravity: TetrisGravity{
			BaseMS: 800,
			StepMS: 80,
			MinMS:  120,
		},
		Scoring: TetrisScoring{
			SoftDrop: 1,
			HardDrop: 2,
		},
	}
}

// DefaultConnectFourConfig returns the default Connect Four configuration.
func DefaultConnectFourConfig() ConnectFourConfig {
	return ConnectFourConfig{
		Difficulty:     "medium",
		HumanPlayer:    1,
		HumanStarts:    true,
		ThinkDelayMS:   150,
		ParallelSearch: false,
		EvalCache:      true,
	}
}

// DefaultSnakeConfig returns the default Snake Relax configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		GridSize:    20,
		StepMS:      120,
		SoftResetMS: 260,
	}
}

// Default2048Config returns the default 2048 configuration.
func Default2048Config() Game2048Config {
	return Game2048Config{
		Target:          2048,
		SpawnFourChance: 0.1,
	}
}

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Field: FlappyField{
			Width:  360,
			Height: 640,
		},
		Physics: FlappyPhysics{
			Gravity:     1800,
			JumpImpulse: -520,
			MaxStepMS:   50,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:    70,
			PipeGap:      190,
			PipeSpacing:  260,
			PipeSpeed:    190,
			TopMargin:    80,
			BottomMargin: 120,
		},
		Player: FlappyPlayer{
			X:    80,
			Size: 44,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris":
		return defaultTetrisYAML
	case "connect-four":
		return defaultConnectFourYAML
	case "snake-relax":
		return defaultSnakeYAML
	case "2048":
		return default2048YAML
	case "flappy-bird":
		return defaultFlappyYAML
	default:
		return nil
	}
}
