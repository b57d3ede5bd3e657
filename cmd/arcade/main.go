// arcade is a terminal arcade: Tetris, Connect Four, 2048, Snake Relax and Flappy Bird.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade api               - Start the JSON HTTP API
//	arcade scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--settings <path>    - Platform settings file (default: ~/.arcade/settings.yaml)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/mini-arcade/internal/games/connectfour"
	_ "github.com/vovakirdan/mini-arcade/internal/games/flappy"
	_ "github.com/vovakirdan/mini-arcade/internal/games/snake"
	_ "github.com/vovakirdan/mini-arcade/internal/games/t2048"
	_ "github.com/vovakirdan/mini-arcade/internal/games/tetris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagSettings string

	settings *config.Settings
	logger   = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "arcade"})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Mini Arcade - Tetris, Connect Four and friends in your terminal",
	Long: `Mini Arcade is a terminal game platform with Tetris, Connect Four
against a minimax CPU, 2048, Snake Relax and Flappy Bird.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  api      - Start the JSON HTTP API
  scores   - View high scores

Examples:
  arcade list
  arcade play tetris --level 5
  arcade play connect-four --cpu expert
  arcade menu
  arcade serve --ssh :2222
  arcade api --http :8080
  arcade scores tetris`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from settings)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from settings)")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", config.SettingsPath(), "Path to platform settings YAML")

	rootCmd.SetUsageTemplate(rootCmd.UsageTemplate() + "\nEnvironment:\n" + config.SettingsHelp() + "\n")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadSettings merges the settings file and environment with the flags.
// Flags win.
func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings(flagSettings)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		s.DBPath = flagDBPath
	}
	if cmd.Flags().Changed("log-level") {
		s.LogLevel = flagLogLevel
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	logger.SetLevel(level)

	settings = s
	return nil
}

// runtimeConfig builds the game config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database. A failure is logged and play
// continues without saving.
func openStore() *storage.Store {
	store, err := storage.Open(settings.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", settings.DBPath, "error", err)
		return nil
	}
	return store
}

// tuiLogger returns a logger for full-screen commands, where stderr would
// draw over the game. It writes to ~/.arcade/arcade.log when possible.
func tuiLogger() (*log.Logger, func()) {
	l := logger.With()
	home, err := os.UserHomeDir()
	if err != nil {
		l.SetOutput(io.Discard)
		return l, func() {}
	}
	path := filepath.Join(home, ".arcade", "arcade.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		l.SetOutput(io.Discard)
		return l, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		l.SetOutput(io.Discard)
		return l, func() {}
	}
	l.SetOutput(f)
	return l, func() { f.Close() }
}
