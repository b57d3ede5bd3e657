package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mini-arcade/internal/core"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Store) http.Handler {
	t.Helper()
	return NewServer(store, log.New(io.Discard))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func moveBody(t *testing.T, board [][]int, difficulty string, player int) string {
	t.Helper()
	b, err := json.Marshal(moveRequest{Board: board, Difficulty: difficulty, Player: player})
	require.NoError(t, err)
	return string(b)
}

func emptyGrid() [][]int {
	g := make([][]int, 6)
	for i := range g {
		g[i] = make([]int, 7)
	}
	return g
}

func TestHealth(t *testing.T) {
	rr := do(t, newTestServer(t, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestListGames(t *testing.T) {
	rr := do(t, newTestServer(t, nil), http.MethodGet, "/api/games", "")
	require.Equal(t, http.StatusOK, rr.Code)

	games := decodeBody[[]registry.GameInfo](t, rr)
	ids := make([]string, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	assert.Contains(t, ids, "tetris")
	assert.Contains(t, ids, "connect-four")
}

func TestGetGame(t *testing.T) {
	h := newTestServer(t, nil)

	rr := do(t, h, http.MethodGet, "/api/games/connect-four", "")
	require.Equal(t, http.StatusOK, rr.Code)
	info := decodeBody[registry.GameInfo](t, rr)
	assert.Equal(t, "Connect Four", info.Title)
	assert.NotEmpty(t, info.Rules)
	assert.NotEmpty(t, info.Options)

	rr = do(t, h, http.MethodGet, "/api/games/pacman", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestConnectFourMoveBlocks(t *testing.T) {
	g := emptyGrid()
	g[5] = []int{1, 1, 1, 0, 0, 0, 0}
	g[4] = []int{2, 2, 0, 0, 0, 0, 0}

	rr := do(t, newTestServer(t, nil), http.MethodPost, "/api/connect-four/move", moveBody(t, g, "medium", 0))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeBody[moveResponse](t, rr)
	assert.Equal(t, 3, resp.Column)
	assert.Equal(t, 5, resp.Row)
	assert.Equal(t, 2, resp.Board[5][3], "player 2 is to move")
	assert.False(t, resp.Win)
	assert.False(t, resp.Draw)
}

func TestConnectFourMoveWins(t *testing.T) {
	g := emptyGrid()
	g[5] = []int{1, 1, 1, 0, 0, 0, 0}
	g[4] = []int{2, 2, 2, 0, 0, 0, 0}

	for _, tier := range []string{"medium", "hard", "expert"} {
		t.Run(tier, func(t *testing.T) {
			rr := do(t, newTestServer(t, nil), http.MethodPost, "/api/connect-four/move", moveBody(t, g, tier, 1))
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			resp := decodeBody[moveResponse](t, rr)
			assert.Equal(t, 3, resp.Column)
			assert.True(t, resp.Win)
		})
	}
}

func TestConnectFourMoveDefaults(t *testing.T) {
	rr := do(t, newTestServer(t, nil), http.MethodPost, "/api/connect-four/move", moveBody(t, emptyGrid(), "", 0))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeBody[moveResponse](t, rr)
	assert.Equal(t, 3, resp.Column, "medium opens in the center")
	assert.Equal(t, 1, resp.Board[5][3])
}

func TestConnectFourMoveRejects(t *testing.T) {
	floating := emptyGrid()
	floating[0][0] = 1

	decided := emptyGrid()
	decided[5] = []int{1, 1, 1, 1, 0, 0, 0}
	decided[4] = []int{2, 2, 2, 0, 0, 0, 0}

	lopsided := emptyGrid()
	lopsided[5] = []int{1, 1, 1, 0, 0, 0, 0}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"not json", "{", http.StatusBadRequest},
		{"unknown field", `{"board":[],"color":"red"}`, http.StatusBadRequest},
		{"short board", moveBody(t, emptyGrid()[:5], "easy", 1), http.StatusBadRequest},
		{"floating token", moveBody(t, floating, "easy", 2), http.StatusBadRequest},
		{"token counts", moveBody(t, lopsided, "easy", 2), http.StatusBadRequest},
		{"difficulty", moveBody(t, emptyGrid(), "impossible", 1), http.StatusBadRequest},
		{"player", moveBody(t, emptyGrid(), "easy", 3), http.StatusBadRequest},
		{"decided", moveBody(t, decided, "easy", 2), http.StatusUnprocessableEntity},
	}

	h := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/api/connect-four/move", tt.body)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
			assert.NotEmpty(t, decodeBody[errorResponse](t, rr).Error)
		})
	}
}

func TestTetrisScore(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		body   string
		status int
		points int
	}{
		{`{"lines":4,"level":2}`, http.StatusOK, 3600},
		{`{"lines":1,"level":0}`, http.StatusOK, 40},
		{`{"lines":0,"level":9}`, http.StatusOK, 0},
		{`{"lines":5,"level":0}`, http.StatusBadRequest, 0},
		{`{"lines":2,"level":-1}`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		rr := do(t, h, http.MethodPost, "/api/tetris/score", tt.body)
		require.Equal(t, tt.status, rr.Code, tt.body)
		if tt.status == http.StatusOK {
			assert.Equal(t, tt.points, decodeBody[scoreResponse](t, rr).Points, tt.body)
		}
	}
}

func TestSlide2048(t *testing.T) {
	h := newTestServer(t, nil)

	rr := do(t, h, http.MethodPost, "/api/2048/slide",
		`{"board":[[2,2,4,0],[4,4,8,0],[0,0,0,0],[0,0,0,2]],"direction":"left"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[slideResponse](t, rr)
	assert.True(t, resp.Moved)
	assert.False(t, resp.Over)
	assert.Equal(t, 12, resp.Score)
	assert.Equal(t, [4]int{4, 4, 0, 0}, resp.Board[0])
	assert.Equal(t, [4]int{8, 8, 0, 0}, resp.Board[1])
	assert.Equal(t, [4]int{2, 0, 0, 0}, resp.Board[3])

	rr = do(t, h, http.MethodPost, "/api/2048/slide",
		`{"board":[[2,0,0,0],[0,0,0,0],[0,0,0,0],[0,0,0,0]],"direction":"left"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decodeBody[slideResponse](t, rr).Moved)

	for _, body := range []string{
		`{"board":[[2,0,0,0]],"direction":"sideways"}`,
		`{"board":[[3,0,0,0]],"direction":"up"}`,
		`{"board":[[1,0,0,0]],"direction":"up"}`,
		`{"board":"nope","direction":"up"}`,
	} {
		rr := do(t, h, http.MethodPost, "/api/2048/slide", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
}

func TestScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, s := range []int{300, 1200, 40} {
		_, err := store.SaveScore("tetris", s)
		require.NoError(t, err)
	}
	_, err = store.SaveMatch("connect-four", core.MatchResult{Opponent: "expert", Winner: 2, Outcome: core.OutcomeLoss, Moves: 20})
	require.NoError(t, err)

	h := newTestServer(t, store)

	rr := do(t, h, http.MethodGet, "/api/scores/tetris?limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeBody[scoresResponse](t, rr)
	assert.Equal(t, 1200, resp.High)
	require.Len(t, resp.Scores, 2)
	assert.Equal(t, 1200, resp.Scores[0].Score)
	assert.Equal(t, 300, resp.Scores[1].Score)

	rr = do(t, h, http.MethodGet, "/api/scores/connect-four", "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp = decodeBody[scoresResponse](t, rr)
	assert.Empty(t, resp.Scores)
	require.Len(t, resp.Tallies, 1)
	assert.Equal(t, storage.MatchTally{Opponent: "expert", Losses: 1}, resp.Tallies[0])

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/scores/tetris?limit=x", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/scores/pacman", "").Code)
}

func TestScoresWithoutStore(t *testing.T) {
	rr := do(t, newTestServer(t, nil), http.MethodGet, "/api/scores/tetris", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"game":"tetris","high":0,"scores":[]}`, rr.Body.String())
}
