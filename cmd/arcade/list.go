package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/registry"
)

var flagListVerbose bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func init() {
	listCmd.Flags().BoolVarP(&flagListVerbose, "verbose", "v", false, "Show rules and options")
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
		if !flagListVerbose {
			continue
		}
		if g.Description != "" {
			fmt.Printf("  %-*s  %s\n", maxIDLen, "", g.Description)
		}
		for _, rule := range g.Rules {
			fmt.Printf("  %-*s    - %s\n", maxIDLen, "", rule)
		}
		for _, o := range g.Options {
			values := make([]string, len(o.Choices))
			for i, c := range o.Choices {
				values[i] = c.Value
			}
			fmt.Printf("  %-*s    %s: %s (default %s)\n", maxIDLen, "", o.Label, strings.Join(values, ", "), o.Default)
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
