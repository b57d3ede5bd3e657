package config

import (
	"fmt"
	"strings"
)

// Presets lists every preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a user-supplied name into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty preset %q", s)
}

// StartLevelForPreset returns the Tetris starting level for a preset.
// The second result is false when the preset keeps the configured level.
func StartLevelForPreset(preset DifficultyPreset) (int, bool) {
	switch preset {
	case DifficultyEasy:
		return 0, true
	case DifficultyNormal:
		return 2, true
	case DifficultyHard:
		return 5, true
	default:
		return 0, false
	}
}

// TierForPreset returns the Connect Four CPU tier for a preset.
// The second result is false when the preset keeps the configured tier.
func TierForPreset(preset DifficultyPreset) (string, bool) {
	switch preset {
	case DifficultyEasy:
		return "easy", true
	case DifficultyNormal:
		return "medium", true
	case DifficultyHard:
		return "hard", true
	default:
		return "", false
	}
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
// Fixed keeps the starting level and freezes it for the whole game.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Progression = false
		return
	}
	cfg.Progression = true
	if level, ok := StartLevelForPreset(preset); ok {
		cfg.StartLevel = level
	}
}

// ApplyConnectFourPreset modifies the config based on a difficulty preset.
func ApplyConnectFourPreset(cfg *ConnectFourConfig, preset DifficultyPreset) {
	if tier, ok := TierForPreset(preset); ok {
		cfg.Difficulty = tier
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.StepMS = 150
	case DifficultyNormal:
		cfg.StepMS = 120
	case DifficultyHard:
		cfg.StepMS = 90
	}
}

// Apply2048Preset modifies the config based on a difficulty preset.
// Harder presets spawn more fours.
func Apply2048Preset(cfg *Game2048Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.SpawnFourChance = 0.05
	case DifficultyNormal:
		cfg.SpawnFourChance = 0.1
	case DifficultyHard:
		cfg.SpawnFourChance = 0.2
	}
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.PipeGap = 220
		cfg.Obstacles.PipeSpeed = 170
	case DifficultyNormal:
		cfg.Obstacles.PipeGap = 190
		cfg.Obstacles.PipeSpeed = 190
	case DifficultyHard:
		cfg.Obstacles.PipeGap = 160
		cfg.Obstacles.PipeSpeed = 220
	}
}
