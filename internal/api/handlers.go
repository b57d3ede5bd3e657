package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/mini-arcade/internal/games/connectfour"
	"github.com/vovakirdan/mini-arcade/internal/games/t2048"
	"github.com/vovakirdan/mini-arcade/internal/games/tetris"
	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

const (
	defaultScoreLimit = 10
	maxScoreLimit     = 100
	maxBodyBytes      = 1 << 16
)

// Request validation errors.
var (
	ErrBadRequest = errors.New("api: malformed request")
	ErrGameOver   = errors.New("api: game is already decided")
	ErrBadLines   = errors.New("api: lines must be between 0 and 4")
	ErrBadLevel   = errors.New("api: level must not be negative")
	ErrBadTile    = errors.New("api: tiles must be 0 or a power of two")
)

type handlers struct {
	store  *storage.Store
	logger *log.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrUnknownGame):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrBadLines),
		errors.Is(err, ErrBadLevel),
		errors.Is(err, ErrBadTile),
		errors.Is(err, t2048.ErrUnknownDirection),
		errors.Is(err, connectfour.ErrInvalidBoard),
		errors.Is(err, connectfour.ErrInvalidPlayer),
		errors.Is(err, connectfour.ErrUnknownDifficulty):
		return http.StatusBadRequest
	case errors.Is(err, connectfour.ErrColumnFull),
		errors.Is(err, ErrGameOver):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) listGames(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, registry.List())
}

func (h *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	info, err := registry.Info(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type moveRequest struct {
	Board      [][]int `json:"board"`
	Difficulty string  `json:"difficulty"`
	// Player is the side the CPU plays. Zero means whoever is to move.
	Player int `json:"player"`
}

type moveResponse struct {
	Column int     `json:"column"`
	Row    int     `json:"row"`
	Board  [][]int `json:"board"`
	Win    bool    `json:"win"`
	Draw   bool    `json:"draw"`
}

func (h *handlers) connectFourMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	resp, err := cpuMove(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// cpuMove validates the request and plays one CPU move on the board.
func cpuMove(req moveRequest) (moveResponse, error) {
	board, err := connectfour.BoardFromRows(req.Board)
	if err != nil {
		return moveResponse{}, err
	}
	if err := connectfour.Validate(board); err != nil {
		return moveResponse{}, err
	}

	difficulty := connectfour.Medium
	if req.Difficulty != "" {
		if difficulty, err = connectfour.ParseDifficulty(req.Difficulty); err != nil {
			return moveResponse{}, err
		}
	}

	player := req.Player
	if player == 0 {
		player = toMove(board)
	}
	if !connectfour.ValidPlayer(player) {
		return moveResponse{}, fmt.Errorf("%w: got %d", connectfour.ErrInvalidPlayer, player)
	}

	if connectfour.Winner(board) != connectfour.Empty {
		return moveResponse{}, ErrGameOver
	}
	if connectfour.IsFull(board) {
		return moveResponse{}, fmt.Errorf("%w: no open column", connectfour.ErrColumnFull)
	}

	solver := &connectfour.Solver{Cache: true, Parallel: difficulty == connectfour.Expert}
	col := solver.PickMove(board, difficulty, player)
	row := connectfour.AvailableRow(board, col)
	next, ok := connectfour.DropInColumn(board, col, player)
	if !ok {
		return moveResponse{}, fmt.Errorf("%w: column %d", connectfour.ErrColumnFull, col)
	}

	win := connectfour.WinningLine(next, row, col, player) != nil
	return moveResponse{
		Column: col,
		Row:    row,
		Board:  next.Grid(),
		Win:    win,
		Draw:   !win && connectfour.IsFull(next),
	}, nil
}

// toMove returns the player whose turn it is, assuming player 1 starts.
func toMove(b connectfour.Board) int {
	if connectfour.Count(b, connectfour.Player1) > connectfour.Count(b, connectfour.Player2) {
		return connectfour.Player2
	}
	return connectfour.Player1
}

type scoreRequest struct {
	Lines int `json:"lines"`
	Level int `json:"level"`
}

type scoreResponse struct {
	Points int `json:"points"`
	Level  int `json:"level"`
}

func (h *handlers) tetrisScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Lines < 0 || req.Lines > 4 {
		h.fail(w, r, fmt.Errorf("%w: got %d", ErrBadLines, req.Lines))
		return
	}
	if req.Level < 0 {
		h.fail(w, r, fmt.Errorf("%w: got %d", ErrBadLevel, req.Level))
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		Points: tetris.ScoreForClears(req.Lines, req.Level),
		Level:  req.Level,
	})
}

type slideRequest struct {
	Board     t2048.Board `json:"board"`
	Direction string      `json:"direction"`
}

type slideResponse struct {
	Board t2048.Board `json:"board"`
	Score int         `json:"score"`
	Moved bool        `json:"moved"`
	Over  bool        `json:"over"`
}

// slide2048 applies one slide without spawning; the client places the new tile.
func (h *handlers) slide2048(w http.ResponseWriter, r *http.Request) {
	var req slideRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	dir, err := t2048.ParseDirection(req.Direction)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	for _, row := range req.Board {
		for _, v := range row {
			if v < 0 || v == 1 || v&(v-1) != 0 {
				h.fail(w, r, fmt.Errorf("%w: got %d", ErrBadTile, v))
				return
			}
		}
	}

	next, score, moved := t2048.Slide(req.Board, dir)
	writeJSON(w, http.StatusOK, slideResponse{
		Board: next,
		Score: score,
		Moved: moved,
		Over:  t2048.IsGameOver(next),
	})
}

type scoresResponse struct {
	Game    string               `json:"game"`
	High    int                  `json:"high"`
	Scores  []storage.ScoreEntry `json:"scores"`
	Tallies []storage.MatchTally `json:"tallies,omitempty"`
}

func (h *handlers) scores(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game")
	if !registry.Exists(gameID) {
		h.fail(w, r, fmt.Errorf("%w %q", registry.ErrUnknownGame, gameID))
		return
	}

	limit := defaultScoreLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			h.fail(w, r, fmt.Errorf("%w: limit %q", ErrBadRequest, s))
			return
		}
		limit = min(n, maxScoreLimit)
	}

	resp := scoresResponse{Game: gameID, Scores: []storage.ScoreEntry{}}
	if h.store != nil {
		scores, err := h.store.TopScores(gameID, limit)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		resp.Scores = append(resp.Scores, scores...)
		if resp.High, err = h.store.HighScore(gameID); err != nil {
			h.fail(w, r, err)
			return
		}
		if resp.Tallies, err = h.store.MatchTallies(gameID); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
