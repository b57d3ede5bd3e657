package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the high scores for the specified game. Connect Four also
shows the win/loss/draw record against each CPU tier and the latest rounds.

Examples:
  arcade scores tetris
  arcade scores connect-four
  arcade scores tetris --limit 25
  arcade scores tetris --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and matches of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]
	info, err := registry.Info(gameID)
	if err != nil {
		return fmt.Errorf("%w, run 'arcade list' to see available games", err)
	}

	store, err := storage.Open(settings.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
		if stats, err := store.GetGameStats(gameID); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d  Games: %d\n", stats.HighScore, stats.GamesCount)
		}
	}

	return printMatches(store, gameID)
}

// printMatches shows the per-opponent record and the latest rounds, if any.
func printMatches(store *storage.Store, gameID string) error {
	tallies, err := store.MatchTallies(gameID)
	if err != nil {
		return fmt.Errorf("retrieving matches: %w", err)
	}
	if len(tallies) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Record")
	fmt.Printf("  %-8s  %4s  %4s  %4s  %6s\n", "Opponent", "Won", "Lost", "Draw", "Played")
	for _, t := range tallies {
		fmt.Printf("  %-8s  %4d  %4d  %4d  %6d\n", t.Opponent, t.Wins, t.Losses, t.Draws, t.Played())
	}

	recent, err := store.RecentMatches(gameID, 5)
	if err != nil {
		return fmt.Errorf("retrieving matches: %w", err)
	}
	fmt.Println()
	fmt.Println("Latest rounds")
	for _, m := range recent {
		fmt.Printf("  %s  %-8s  %-4s  %2d moves  %s\n",
			m.CreatedAt.Format("2006-01-02 15:04"), m.Opponent, m.Outcome, m.Moves, m.MatchID[:8])
	}
	return nil
}
