package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/api"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the JSON HTTP API",
	Long: `Start a stateless JSON API for browser front ends.

Routes:
  GET  /healthz
  GET  /api/games
  GET  /api/games/{id}
  POST /api/connect-four/move   {"board": [[...6 rows of 7]], "difficulty": "hard", "player": 2}
  POST /api/tetris/score        {"lines": 4, "level": 3}
  GET  /api/scores/{game}?limit=10

Examples:
  arcade api
  arcade api --http 127.0.0.1:9000`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (default from settings, :8080)")
}

func runAPI(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signalContext()
	defer stop()

	apiLog := logger.WithPrefix("api")
	return api.Serve(ctx, apiAddress(), api.NewServer(store, apiLog), apiLog)
}

// apiAddress is the HTTP listen address: the --http flag, then settings.
func apiAddress() string {
	return firstNonEmpty(flagHTTPAddr, settings.HTTP.Address)
}
