package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTetris loads Tetris configuration.
// Search order: customPath -> ~/.arcade/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg, err := load("tetris.yaml", customPath, defaultTetrisYAML, DefaultTetrisConfig)
	if err != nil {
		return cfg, err
	}
	return normalizeTetris(cfg), nil
}

// LoadConnectFour loads Connect Four configuration.
// Search order: customPath -> ~/.arcade/configs/connectfour.yaml -> ./configs/connectfour.yaml -> embedded default
func LoadConnectFour(customPath string) (ConnectFourConfig, error) {
	cfg, err := load("connectfour.yaml", customPath, defaultConnectFourYAML, DefaultConnectFourConfig)
	if err != nil {
		return cfg, err
	}
	return normalizeConnectFour(cfg), nil
}

// LoadSnake loads Snake Relax configuration.
// Search order: customPath -> ~/.arcade/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg, err := load("snake.yaml", customPath, defaultSnakeYAML, DefaultSnakeConfig)
	if err != nil {
		return cfg, err
	}
	return normalizeSnake(cfg), nil
}

// Load2048 loads 2048 configuration.
// Search order: customPath -> ~/.arcade/configs/2048.yaml -> ./configs/2048.yaml -> embedded default
func Load2048(customPath string) (Game2048Config, error) {
	cfg, err := load("2048.yaml", customPath, default2048YAML, Default2048Config)
	if err != nil {
		return cfg, err
	}
	return normalize2048(cfg), nil
}

// LoadFlappy loads Flappy Bird configuration.
// Search order: customPath -> ~/.arcade/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
func LoadFlappy(customPath string) (FlappyConfig, error) {
	cfg, err := load("flappy.yaml", customPath, defaultFlappyYAML, DefaultFlappyConfig)
	if err != nil {
		return cfg, err
	}
	return normalizeFlappy(cfg), nil
}

// load decodes the first readable config in the search order on top of the
// hardcoded defaults, so a partial file only overrides the keys it names.
func load[T any](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	// A custom path is explicit: failing to read or parse it is an error.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return defaults(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		attempt := defaults()
		if err := yaml.Unmarshal(data, &attempt); err == nil {
			return attempt, nil
		}
	}

	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

func normalizeTetris(cfg TetrisConfig) TetrisConfig {
	def := DefaultTetrisConfig()
	if cfg.StartLevel < 0 {
		cfg.StartLevel = 0
	}
	if cfg.Gravity.BaseMS <= 0 {
		cfg.Gravity.BaseMS = def.Gravity.BaseMS
	}
	if cfg.Gravity.MinMS <= 0 {
		cfg.Gravity.MinMS = def.Gravity.MinMS
	}
	if cfg.Gravity.StepMS < 0 {
		cfg.Gravity.StepMS = 0
	}
	if cfg.Scoring.SoftDrop < 0 {
		cfg.Scoring.SoftDrop = 0
	}
	if cfg.Scoring.HardDrop < 0 {
		cfg.Scoring.HardDrop = 0
	}
	return cfg
}

func normalizeConnectFour(cfg ConnectFourConfig) ConnectFourConfig {
	if cfg.HumanPlayer != 1 && cfg.HumanPlayer != 2 {
		cfg.HumanPlayer = 1
	}
	if cfg.ThinkDelayMS < 0 {
		cfg.ThinkDelayMS = 0
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = DefaultConnectFourConfig().Difficulty
	}
	return cfg
}

func normalizeSnake(cfg SnakeConfig) SnakeConfig {
	def := DefaultSnakeConfig()
	if cfg.GridSize < 5 {
		cfg.GridSize = def.GridSize
	}
	if cfg.StepMS <= 0 {
		cfg.StepMS = def.StepMS
	}
	if cfg.SoftResetMS < 0 {
		cfg.SoftResetMS = 0
	}
	return cfg
}

func normalize2048(cfg Game2048Config) Game2048Config {
	def := Default2048Config()
	// The target must be a power of two a spawned tile can grow into.
	if cfg.Target < 8 || cfg.Target&(cfg.Target-1) != 0 {
		cfg.Target = def.Target
	}
	if cfg.SpawnFourChance < 0 || cfg.SpawnFourChance > 1 {
		cfg.SpawnFourChance = def.SpawnFourChance
	}
	return cfg
}

func normalizeFlappy(cfg FlappyConfig) FlappyConfig {
	def := DefaultFlappyConfig()
	if cfg.Field.Width <= 0 || cfg.Field.Height <= 0 {
		cfg.Field = def.Field
	}
	if cfg.Physics.Gravity <= 0 {
		cfg.Physics.Gravity = def.Physics.Gravity
	}
	if cfg.Physics.JumpImpulse >= 0 {
		cfg.Physics.JumpImpulse = def.Physics.JumpImpulse
	}
	if cfg.Physics.MaxStepMS <= 0 {
		cfg.Physics.MaxStepMS = def.Physics.MaxStepMS
	}
	if cfg.Player.Size <= 0 || cfg.Player.Size >= cfg.Field.Height {
		cfg.Player = def.Player
	}
	o := &cfg.Obstacles
	if o.PipeWidth <= 0 {
		o.PipeWidth = def.Obstacles.PipeWidth
	}
	if o.PipeSpacing <= o.PipeWidth {
		o.PipeSpacing = o.PipeWidth + def.Obstacles.PipeSpacing
	}
	if o.PipeSpeed <= 0 {
		o.PipeSpeed = def.Obstacles.PipeSpeed
	}
	if o.TopMargin < 0 {
		o.TopMargin = 0
	}
	if o.BottomMargin < 0 {
		o.BottomMargin = 0
	}
	// The bird must fit through the gap, and the gap between the margins.
	if o.PipeGap <= cfg.Player.Size || o.TopMargin+o.PipeGap+o.BottomMargin > cfg.Field.Height {
		return def
	}
	return cfg
}
