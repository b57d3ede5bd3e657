package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/mini-arcade/internal/core"
)

// MatchRecord is a stored round of a turn-based game.
type MatchRecord struct {
	ID        int64        `json:"-"`
	MatchID   string       `json:"match_id"`
	GameID    string       `json:"game"`
	Opponent  string       `json:"opponent"`
	Winner    int          `json:"winner"`
	Outcome   core.Outcome `json:"outcome"`
	Moves     int          `json:"moves"`
	Score     int          `json:"score"`
	CreatedAt time.Time    `json:"created_at"`
}

// MatchTally aggregates results against one opponent.
type MatchTally struct {
	Opponent string `json:"opponent"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
}

// Played returns the number of recorded rounds.
func (t MatchTally) Played() int {
	return t.Wins + t.Losses + t.Draws
}

// SaveMatch records a finished round and returns its generated match id.
func (s *Store) SaveMatch(gameID string, r core.MatchResult) (string, error) {
	matchID := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO cpu_matches (match_id, game_id, opponent, winner, outcome, moves, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		matchID, gameID, r.Opponent, r.Winner, string(r.Outcome), r.Moves, r.Score,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}
	return matchID, nil
}

const matchColumns = `id, match_id, game_id, opponent, winner, outcome, moves, score, created_at`

func scanMatch(scan func(dest ...any) error) (MatchRecord, error) {
	var m MatchRecord
	var outcome string
	var createdAt any
	if err := scan(&m.ID, &m.MatchID, &m.GameID, &m.Opponent, &m.Winner, &outcome, &m.Moves, &m.Score, &createdAt); err != nil {
		return m, err
	}
	m.Outcome = core.Outcome(outcome)
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// MatchByID retrieves a match by its match id. It returns nil, nil when no
// such match exists.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	if _, err := uuid.Parse(matchID); err != nil {
		return nil, nil
	}
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM cpu_matches WHERE match_id = ?`, matchID)
	m, err := scanMatch(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches retrieves the most recent matches of a game, newest first.
// A non-positive limit defaults to 20.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM cpu_matches
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// MatchTallies returns win/loss/draw counts per opponent for a game,
// ordered by opponent name.
func (s *Store) MatchTallies(gameID string) ([]MatchTally, error) {
	rows, err := s.db.Query(
		`SELECT opponent,
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END)
		 FROM cpu_matches
		 WHERE game_id = ?
		 GROUP BY opponent
		 ORDER BY opponent`,
		string(core.OutcomeWin), string(core.OutcomeLoss), string(core.OutcomeDraw), gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match tallies: %w", err)
	}
	defer rows.Close()

	var out []MatchTally
	for rows.Next() {
		var t MatchTally
		if err := rows.Scan(&t.Opponent, &t.Wins, &t.Losses, &t.Draws); err != nil {
			return nil, fmt.Errorf("storage: cannot scan tally row: %w", err)
		}
		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
