package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/games/connectfour"
	"github.com/vovakirdan/mini-arcade/internal/games/flappy"
	"github.com/vovakirdan/mini-arcade/internal/games/snake"
	"github.com/vovakirdan/mini-arcade/internal/games/t2048"
	"github.com/vovakirdan/mini-arcade/internal/games/tetris"
	"github.com/vovakirdan/mini-arcade/internal/platform/tui"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagCPU        string
	flagSide       int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game. Without game flags a settings
screen is shown first.

Tetris controls:
  Left/Right     - Move
  Up/X, Z        - Rotate clockwise, counter-clockwise
  Down           - Soft drop
  Space          - Hard drop
  C              - Hold

Connect Four controls:
  Left/Right     - Choose column
  Space/Enter    - Drop token
  U              - Undo

2048 and Snake Relax controls:
  Arrows/WASD    - Slide tiles, steer

Flappy Bird controls:
  Space/Up       - Flap (also starts a run)

Common:
  P/Esc          - Pause
  R              - Restart
  B/Esc          - Back (when paused or over)
  Ctrl+S         - Save a text screenshot
  Q/Ctrl+C       - Quit

Difficulty presets:
  easy, normal, hard, fixed - Tetris start level, Connect Four CPU tier,
                              Snake speed, 2048 four-tile odds, Flappy pipe gap

Examples:
  arcade play tetris
  arcade play tetris --level 5
  arcade play connect-four --cpu hard --side 2
  arcade play connect-four --cpu off
  arcade play 2048 --difficulty easy
  arcade play flappy-bird --config ./flappy.yaml
  arcade play tetris --config ./my-tetris.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", -1, "Tetris starting level (0-9)")
	playCmd.Flags().StringVar(&flagCPU, "cpu", "", "Connect Four opponent: off, easy, medium, hard, expert")
	playCmd.Flags().IntVar(&flagSide, "side", 0, "Connect Four human side: 1 (Red) or 2 (Yellow)")
}

// applyGameFlags hands the game flags to the game packages. It reports
// whether any game-specific flag was given, which skips the settings screen.
func applyGameFlags(cmd *cobra.Command, gameID string) (bool, error) {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return false, err
		}
	}

	switch gameID {
	case tetris.ID:
		tetris.SetConfigPath(flagConfig)
		tetris.SetDifficultyPreset(flagDifficulty)
		if !cmd.Flags().Changed("level") {
			return false, nil
		}
		if flagLevel < 0 || flagLevel > tetris.MaxStartLevel {
			return false, fmt.Errorf("--level must be between 0 and %d", tetris.MaxStartLevel)
		}
		tetris.SetStartLevel(flagLevel)
		return true, nil

	case connectfour.ID:
		connectfour.SetConfigPath(flagConfig)
		connectfour.SetDifficultyPreset(flagDifficulty)
		if !cmd.Flags().Changed("cpu") && !cmd.Flags().Changed("side") {
			return false, nil
		}
		if flagCPU != "" && flagCPU != "off" {
			if _, err := connectfour.ParseDifficulty(flagCPU); err != nil {
				return false, err
			}
		}
		if flagSide != 0 && !connectfour.ValidPlayer(flagSide) {
			return false, fmt.Errorf("--side must be 1 or 2, got %d", flagSide)
		}
		connectfour.SetOpponent(flagCPU, flagSide)
		return true, nil

	case snake.ID:
		snake.SetConfigPath(flagConfig)
		snake.SetDifficultyPreset(flagDifficulty)
	case t2048.ID:
		t2048.SetConfigPath(flagConfig)
		t2048.SetDifficultyPreset(flagDifficulty)
	case flappy.ID:
		flappy.SetConfigPath(flagConfig)
		flappy.SetDifficultyPreset(flagDifficulty)
	}
	return false, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	configured, err := applyGameFlags(cmd, gameID)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	cfg := runtimeConfig()

	if !configured {
		res, err := tui.RunOptions(game, cfg)
		if err != nil {
			return err
		}
		if !res.Start {
			return nil
		}
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	tuiLog, closeLog := tuiLogger()
	defer closeLog()

	if _, err := tui.Run(game, store, tuiLog, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
